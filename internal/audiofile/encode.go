package audiofile

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// WriteWAV stores planar float frames as 16-bit PCM. Samples are clipped
// to [-1, 1].
func WriteWAV(path string, rate int, planar [][]float32) error {
	if len(planar) == 0 {
		return errors.New("audiofile: no channels to write")
	}
	if rate <= 0 {
		return fmt.Errorf("audiofile: sample rate must be > 0: %d", rate)
	}

	frames := len(planar[0])
	for _, ch := range planar[1:] {
		frames = min(frames, len(ch))
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	defer f.Close()

	chans := len(planar)
	enc := wav.NewEncoder(f, rate, 16, chans, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: chans, SampleRate: rate},
		Data:           make([]int, frames*chans),
		SourceBitDepth: 16,
	}
	for i := range frames {
		for c := range chans {
			v := math.Max(-1, math.Min(1, float64(planar[c][i])))
			buf.Data[i*chans+c] = int(math.Round(v * 32767))
		}
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audiofile: %w", err)
	}
	return nil
}
