package core

import "math"

// ProcessorConfig defines common DSP processing settings.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns the live defaults: 48 kHz with 256-frame blocks.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  256,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// SecondsToFrames converts seconds to whole frames at the configured rate (floored).
func (c ProcessorConfig) SecondsToFrames(sec float64) int {
	return secondsToFrames(sec, c.SampleRate)
}

// FramesToSeconds converts frames to seconds at the configured rate.
func (c ProcessorConfig) FramesToSeconds(frames int) float64 {
	if c.SampleRate <= 0 {
		return 0
	}
	return float64(frames) / c.SampleRate
}

func secondsToFrames(sec, rate float64) int {
	return int(math.Floor(sec * rate))
}
