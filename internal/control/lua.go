package control

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"
)

// LuaMapping runs a user script as the controller mapping. The script
// defines control(track, ctrl, value, prev) and may call set(name, v),
// toggle(name) and get(name). It must only be driven from the poller
// goroutine.
type LuaMapping struct {
	set *Set
	L   *lua.LState
	fn  lua.LValue
}

// LoadLuaFile compiles the script at path.
func LoadLuaFile(set *Set, path string) (*LuaMapping, error) {
	return loadLua(set, func(L *lua.LState) error { return L.DoFile(path) })
}

// LoadLuaString compiles src.
func LoadLuaString(set *Set, src string) (*LuaMapping, error) {
	return loadLua(set, func(L *lua.LState) error { return L.DoString(src) })
}

func loadLua(set *Set, load func(*lua.LState) error) (*LuaMapping, error) {
	m := &LuaMapping{set: set, L: lua.NewState()}

	m.L.SetGlobal("set", m.L.NewFunction(m.luaSet))
	m.L.SetGlobal("toggle", m.L.NewFunction(m.luaToggle))
	m.L.SetGlobal("get", m.L.NewFunction(m.luaGet))

	if err := load(m.L); err != nil {
		m.L.Close()
		return nil, fmt.Errorf("control: lua: %w", err)
	}

	m.fn = m.L.GetGlobal("control")
	if m.fn.Type() != lua.LTFunction {
		m.L.Close()
		return nil, errors.New("control: lua: script does not define control(track, ctrl, value, prev)")
	}

	return m, nil
}

// Control calls the script's control function.
func (m *LuaMapping) Control(track, ctrl int, value, prev float64) error {
	err := m.L.CallByParam(lua.P{Fn: m.fn, NRet: 0, Protect: true},
		lua.LNumber(track), lua.LNumber(ctrl), lua.LNumber(value), lua.LNumber(prev))
	if err != nil {
		return fmt.Errorf("control: lua: %w", err)
	}
	return nil
}

// Close releases the interpreter.
func (m *LuaMapping) Close() error {
	m.L.Close()
	return nil
}

func (m *LuaMapping) luaSet(L *lua.LState) int {
	name := L.CheckString(1)
	v := float64(L.CheckNumber(2))
	if err := m.set.Store(name, v); err != nil {
		L.RaiseError("%s", err.Error())
	}
	return 0
}

func (m *LuaMapping) luaToggle(L *lua.LState) int {
	on, err := m.set.Flip(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LBool(on))
	return 1
}

func (m *LuaMapping) luaGet(L *lua.LState) int {
	v, err := m.set.Load(L.CheckString(1))
	if err != nil {
		L.RaiseError("%s", err.Error())
	}
	L.Push(lua.LNumber(v))
	return 1
}
