package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cwbudde/compakt/internal/audiofile"
)

func TestParseFlags(t *testing.T) {
	cfg, out := parseFlags([]string{"-backend", "offline", "-rate", "44100", "-midi", "2", "-out", "x.wav", "-ui"})

	if cfg.Backend != "offline" || cfg.SampleRate != 44100 || cfg.MIDIDevice != 2 || !cfg.UI {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if out != "x.wav" {
		t.Fatalf("out = %q", out)
	}
	if cfg.FrameSize != 1024 || cfg.HopSize != 256 {
		t.Fatalf("STFT defaults changed: %d/%d", cfg.FrameSize, cfg.HopSize)
	}
}

func TestRunOfflineRender(t *testing.T) {
	dir := t.TempDir()
	kit := filepath.Join(dir, "kit")
	if err := os.Mkdir(kit, 0o700); err != nil {
		t.Fatal(err)
	}
	hit := make([]float32, 2400)
	for i := range hit {
		hit[i] = 0.5
	}
	if err := audiofile.WriteWAV(filepath.Join(kit, "0.wav"), 48000, [][]float32{hit, hit}); err != nil {
		t.Fatal(err)
	}

	cfg, out := parseFlags([]string{
		"-backend", "offline",
		"-samples", kit,
		"-offline-seconds", "0.25",
		"-out", filepath.Join(dir, "render.wav"),
		"-log-level", "error",
	})
	if err := setupLogging(cfg); err != nil {
		t.Fatal(err)
	}
	if err := run(cfg, out); err != nil {
		t.Fatal(err)
	}

	f, err := audiofile.Decode(out)
	if err != nil {
		t.Fatal(err)
	}
	if f.Frames() != 12000 || f.Channels() != 2 {
		t.Fatalf("render has %d frames, %d channels", f.Frames(), f.Channels())
	}
}

func TestRunMissingKitIsNotFatal(t *testing.T) {
	cfg, _ := parseFlags([]string{
		"-backend", "offline",
		"-samples", filepath.Join(t.TempDir(), "none"),
		"-offline-seconds", "0.01",
		"-log-level", "error",
	})
	if err := run(cfg, ""); err != nil {
		t.Fatal(err)
	}
}

func TestRunRejectsUnknownBackend(t *testing.T) {
	cfg, _ := parseFlags([]string{"-backend", "jack"})
	if err := run(cfg, ""); err == nil {
		t.Fatal("expected error")
	}
}
