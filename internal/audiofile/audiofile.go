// Package audiofile decodes WAV and MP3 files into interleaved float
// frames that a buffer.Buffer can adopt.
package audiofile

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-audio/wav"
	"github.com/hajimehoshi/go-mp3"
	"github.com/sirupsen/logrus"

	"github.com/cwbudde/compakt/dsp/buffer"
)

// ErrUnsupportedFormat is returned for files that are neither WAV nor MP3.
var ErrUnsupportedFormat = errors.New("audiofile: unsupported format")

// File is a decoded audio file. It implements buffer.Source.
type File struct {
	path     string
	channels int
	rate     float64
	data     []float64
}

var _ buffer.Source = (*File)(nil)

// Path returns the file the audio was decoded from.
func (f *File) Path() string { return f.path }

// Channels returns the channel count.
func (f *File) Channels() int { return f.channels }

// SampleRate returns the native rate in Hz.
func (f *File) SampleRate() float64 { return f.rate }

// Frames returns the number of frames.
func (f *File) Frames() int {
	if f.channels == 0 {
		return 0
	}
	return len(f.data) / f.channels
}

// Interleaved returns the samples in [-1, 1].
func (f *File) Interleaved() []float64 { return f.data }

// Duration returns the length in seconds.
func (f *File) Duration() float64 {
	if f.rate <= 0 {
		return 0
	}
	return float64(f.Frames()) / f.rate
}

// Supported reports whether path has a decodable extension.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav", ".mp3":
		return true
	}
	return false
}

// Decode reads the file at path, choosing the decoder by extension.
func Decode(path string) (*File, error) {
	if !Supported(path) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("audiofile: %w", err)
	}
	defer fh.Close()

	var f *File
	if strings.EqualFold(filepath.Ext(path), ".wav") {
		f, err = DecodeWAV(fh)
	} else {
		f, err = DecodeMP3(fh)
	}
	if err != nil {
		return nil, fmt.Errorf("audiofile: %s: %w", path, err)
	}
	f.path = path

	logrus.WithFields(logrus.Fields{
		"function": "Decode",
		"path":     path,
		"channels": f.channels,
		"rate":     f.rate,
		"frames":   f.Frames(),
	}).Debug("decoded audio file")

	return f, nil
}

// DecodeWAV decodes integer PCM WAV data, scaling by 2^(bitDepth-1).
func DecodeWAV(r io.ReadSeeker) (*File, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, errors.New("invalid WAV file")
	}

	pcm, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, err
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth == 0 {
		bitDepth = pcm.SourceBitDepth
	}
	if bitDepth == 0 {
		return nil, errors.New("unknown WAV bit depth")
	}

	channels := int(dec.NumChans)
	if pcm.Format != nil && pcm.Format.NumChannels > 0 {
		channels = pcm.Format.NumChannels
	}
	if channels <= 0 {
		return nil, errors.New("WAV file has no channels")
	}

	factor := math.Pow(2, float64(bitDepth-1))
	n := len(pcm.Data) - len(pcm.Data)%channels
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(pcm.Data[i]) / factor
	}

	return &File{
		channels: channels,
		rate:     float64(dec.SampleRate),
		data:     data,
	}, nil
}

// DecodeMP3 decodes MP3 data. go-mp3 always produces 16-bit little-endian
// stereo.
func DecodeMP3(r io.Reader) (*File, error) {
	dec, err := mp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}

	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, err
	}

	const channels = 2
	n := len(raw) / 2
	n -= n % channels
	data := make([]float64, n)
	for i := range data {
		data[i] = float64(int16(binary.LittleEndian.Uint16(raw[2*i:]))) / 32768
	}

	return &File{
		channels: channels,
		rate:     float64(dec.SampleRate()),
		data:     data,
	}, nil
}

// LoadKit decodes every WAV and MP3 file in dir in lexical order. A
// directory without audio files yields an empty kit.
func LoadKit(dir string) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("audiofile: kit: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() && Supported(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	kit := make([]*File, 0, len(names))
	for _, name := range names {
		f, err := Decode(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		kit = append(kit, f)
	}

	logrus.WithFields(logrus.Fields{
		"function": "LoadKit",
		"dir":      dir,
		"files":    len(kit),
	}).Info("loaded sample kit")

	return kit, nil
}
