package instrument

// Config is the application configuration.
type Config struct {
	SampleRate float64
	BlockSize  int
	Backend    string

	SamplesDir string
	Seed       uint64

	MIDIDevice int
	MIDIList   bool
	Script     string
	Keyboard   bool
	UI         bool

	LogLevel string
	LogJSON  bool

	// OfflineSeconds is the render length of the offline backend.
	OfflineSeconds float64

	FrameSize   int
	HopSize     int
	OctaveRange float64

	DelaySeconds   float64
	LooperSeconds  float64
	CaptureSeconds float64
	MetroSeconds   float64
	GrainSize      int
	DualTapLength  int
	// DualTapInterp names the shifter tap read: truncate, linear or hermite.
	DualTapInterp string
}

// DefaultConfig returns the stock instrument.
func DefaultConfig() Config {
	return Config{
		SampleRate: 48000,
		BlockSize:  256,
		Backend:    "malgo",
		SamplesDir: "samples",
		Seed:       1,
		MIDIDevice: -1,
		LogLevel:   "info",

		OfflineSeconds: 2,

		FrameSize:   1024,
		HopSize:     256,
		OctaveRange: 4,

		DelaySeconds:   2,
		LooperSeconds:  1,
		CaptureSeconds: 2,
		MetroSeconds:   0.1,
		GrainSize:      256,
		DualTapLength:  5120,
		DualTapInterp:  "truncate",
	}
}
