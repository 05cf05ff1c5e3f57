// Command compakt runs the live instrument: a metronome-driven sampler
// through an STFT pitch shifter, comb, filter, delay, bit crusher and
// looper, controlled by MIDI, keyboard, Lua scripts or the panel.
//
// Usage:
//
//	compakt [flags]
//
// Examples:
//
//	compakt -samples ./samples -ui
//	compakt -backend oto -keyboard
//	compakt -midi-list
//	compakt -midi 3 -script mapping.lua
//	compakt -backend offline -offline-seconds 4 -out render.wav
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/cwbudde/compakt/dsp/core"
	"github.com/cwbudde/compakt/dsp/engine"
	"github.com/cwbudde/compakt/internal/audiofile"
	"github.com/cwbudde/compakt/internal/control"
	"github.com/cwbudde/compakt/internal/driver"
	"github.com/cwbudde/compakt/internal/instrument"
	"github.com/cwbudde/compakt/internal/ui"
)

func main() {
	cfg, out := parseFlags(os.Args[1:])

	if err := setupLogging(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	if cfg.MIDIList {
		listMIDI()
		return
	}

	if err := run(cfg, out); err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "main",
			"error":    err,
		}).Fatal("compakt failed")
	}
}

func parseFlags(args []string) (instrument.Config, string) {
	cfg := instrument.DefaultConfig()
	fs := flag.NewFlagSet("compakt", flag.ExitOnError)

	fs.Float64Var(&cfg.SampleRate, "rate", cfg.SampleRate, "requested sample rate in Hz")
	fs.IntVar(&cfg.BlockSize, "block", cfg.BlockSize, "block size in frames")
	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "audio backend: malgo, oto or offline")
	fs.StringVar(&cfg.SamplesDir, "samples", cfg.SamplesDir, "directory of .wav/.mp3 kit samples")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "seed for kit selection")
	fs.IntVar(&cfg.MIDIDevice, "midi", cfg.MIDIDevice, "MIDI input device id (-1 disables)")
	fs.BoolVar(&cfg.MIDIList, "midi-list", cfg.MIDIList, "list MIDI devices and exit")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "Lua controller mapping script")
	fs.BoolVar(&cfg.Keyboard, "keyboard", cfg.Keyboard, "enable keyboard control on stdin")
	fs.BoolVar(&cfg.UI, "ui", cfg.UI, "open the control panel")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.BoolVar(&cfg.LogJSON, "log-json", cfg.LogJSON, "log as JSON")
	fs.Float64Var(&cfg.OfflineSeconds, "offline-seconds", cfg.OfflineSeconds, "render length of the offline backend")
	fs.IntVar(&cfg.FrameSize, "fft-size", cfg.FrameSize, "STFT frame size")
	fs.IntVar(&cfg.HopSize, "fft-hop", cfg.HopSize, "STFT hop size")
	fs.StringVar(&cfg.DualTapInterp, "shift-interp", cfg.DualTapInterp, "input shifter tap read: truncate, linear or hermite")
	out := fs.String("out", "", "offline backend: write the render to this WAV file")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: compakt [flags]\n\nFlags:\n")
		fs.PrintDefaults()
	}
	_ = fs.Parse(args)

	return cfg, *out
}

func setupLogging(cfg instrument.Config) error {
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(lvl)
	if cfg.LogJSON {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
	return nil
}

func listMIDI() {
	devs, err := control.ListMIDIDevices()
	if err != nil {
		logrus.WithField("error", err).Fatal("cannot list MIDI devices")
	}
	for _, d := range devs {
		fmt.Println(d)
	}
}

// run builds everything in dependency order and tears it down in reverse.
func run(cfg instrument.Config, out string) error {
	log := logrus.WithField("function", "run")

	backend, err := driver.ParseBackend(cfg.Backend)
	if err != nil {
		return err
	}
	drv, err := driver.Open(backend, driver.Config{
		SampleRate: cfg.SampleRate,
		Period:     cfg.BlockSize,
		Periods:    3,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := drv.Close(); err != nil {
			log.WithField("error", err).Warn("driver close failed")
		}
	}()
	rate := drv.SampleRate()

	eng, err := engine.New(core.WithSampleRate(rate), core.WithBlockSize(cfg.BlockSize))
	if err != nil {
		return err
	}

	kit, err := instrument.LoadKit(cfg.SamplesDir, rate)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		log.WithField("dir", cfg.SamplesDir).Warn("sample directory missing, sampler is silent")
	}

	set := instrument.NewSet()
	inst, err := instrument.New(cfg, rate, set, kit)
	if err != nil {
		return err
	}
	eng.Attach(inst)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	poller, sources, err := startControl(cfg, set, inst, cancel)
	if err != nil {
		return err
	}
	defer closeSources(sources)

	if backend == driver.BackendOffline {
		err := renderOffline(drv, eng, inst, rate, cfg.OfflineSeconds, out)
		poller.Stop()
		return err
	}

	if err := drv.Start(eng); err != nil {
		poller.Stop()
		return err
	}
	log.WithFields(logrus.Fields{
		"rate":    rate,
		"latency": inst.Latency(),
		"kit":     len(kit),
	}).Info("compakt running")

	if cfg.UI {
		panel := ui.NewPanel(set, sources.ui, inst, inst.Shifter().Bins(), poller.Track)
		go func() {
			<-ctx.Done()
			panel.Close()
		}()
		if err := panel.Run("compakt"); err != nil {
			log.WithField("error", err).Error("panel failed")
		}
		cancel()
	}
	<-ctx.Done()

	if err := drv.Stop(); err != nil {
		log.WithField("error", err).Warn("driver stop failed")
	}
	poller.Stop()
	log.WithField("frames", eng.Processed()).Info("compakt stopped")
	return nil
}

type sourceSet struct {
	ui   *control.ChanSource
	list []control.Source
	lua  *control.LuaMapping
}

func startControl(cfg instrument.Config, set *control.Set, inst *instrument.Instrument, quit func()) (*control.Poller, *sourceSet, error) {
	src := &sourceSet{ui: control.NewChanSource(256)}
	src.list = append(src.list, src.ui)

	var mapping control.Mapping
	if cfg.Script != "" {
		lm, err := control.LoadLuaFile(set, cfg.Script)
		if err != nil {
			closeSources(src)
			return nil, nil, err
		}
		src.lua = lm
		mapping = lm
	} else {
		bm, err := instrument.DefaultMapping(set)
		if err != nil {
			closeSources(src)
			return nil, nil, err
		}
		mapping = bm
	}

	if cfg.MIDIDevice >= 0 {
		m, err := control.OpenMIDI(cfg.MIDIDevice)
		if err != nil {
			closeSources(src)
			return nil, nil, err
		}
		src.list = append(src.list, m)
	}
	if cfg.Keyboard {
		k, err := control.NewKeyboard(os.Stdin, int(os.Stdin.Fd()))
		if err != nil {
			closeSources(src)
			return nil, nil, err
		}
		src.list = append(src.list, k)
	}

	var faults uint64
	p := control.NewPoller(set, mapping,
		control.WithQuitHandler(quit),
		control.WithTick(func() {
			if n := inst.Faults(); n != faults {
				logrus.WithFields(logrus.Fields{
					"function": "poller",
					"faults":   n,
				}).Warn("pitch shifter skipped hops")
				faults = n
			}
		}),
	)
	for _, s := range src.list {
		p.AddSource(s)
	}
	p.Start()

	return p, src, nil
}

func closeSources(s *sourceSet) {
	for _, src := range s.list {
		if err := src.Close(); err != nil {
			logrus.WithField("error", err).Warn("control source close failed")
		}
	}
	if s.lua != nil {
		_ = s.lua.Close()
	}
}

func renderOffline(drv driver.Driver, eng *engine.Engine, inst *instrument.Instrument, rate, seconds float64, out string) error {
	off, ok := drv.(*driver.Offline)
	if !ok {
		return fmt.Errorf("offline render needs the offline backend, got %T", drv)
	}
	if err := off.Start(eng); err != nil {
		return err
	}
	defer off.Stop()

	frames := eng.SecondsToFrames(seconds)
	planar, err := off.RenderFrames(frames)
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"function": "renderOffline",
		"frames":   frames,
		"faults":   inst.Faults(),
	}).Info("offline render done")

	if out == "" {
		return nil
	}
	return audiofile.WriteWAV(out, int(rate), planar)
}
