package control

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testScript = `
function control(track, ctrl, value, prev)
  if track == 1 and ctrl == 17 then
    set("freq", 1 - value)
  elseif ctrl == 40 and value > 0.5 and prev < 0.5 then
    toggle("delay")
    set("volume", get("delay"))
  elseif ctrl == 99 then
    set("nothing", value)
  end
end
`

func TestLuaMapping(t *testing.T) {
	set := newTestSet()
	m, err := LoadLuaString(set, testScript)
	require.NoError(t, err)
	defer m.Close()

	p := NewPoller(set, m)
	p.Handle(Event{Kind: StepTrack, Value: 1})
	p.Handle(ControllerEvent(17, 0.25))
	v, _ := set.Load("freq")
	assert.InDelta(t, 0.75, v, 1e-12)

	p.Handle(ControllerEvent(40, 1))
	v, _ = set.Load("volume")
	assert.InDelta(t, 1.0, v, 0)

	require.Error(t, m.Control(0, 99, 1, 0))
}

func TestLuaLoadErrors(t *testing.T) {
	set := newTestSet()

	_, err := LoadLuaString(set, "x = 1")
	require.Error(t, err)

	_, err = LoadLuaString(set, "function control(")
	require.Error(t, err)

	_, err = LoadLuaFile(set, filepath.Join(t.TempDir(), "missing.lua"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "map.lua")
	require.NoError(t, os.WriteFile(path, []byte(testScript), 0o600))
	m, err := LoadLuaFile(set, path)
	require.NoError(t, err)
	require.NoError(t, m.Close())
}
