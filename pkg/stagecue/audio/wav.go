package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/wav"
)

var (
	ErrNotWAV             = errors.New("not a WAV/RIFF file")
	ErrUnsupportedFormat  = errors.New("unsupported WAV audio format: only PCM supported")
	ErrUnsupportedDepth   = errors.New("unsupported bits per sample: only 16, 24 or 32-bit supported")
	ErrUnsupportedChannel = errors.New("unsupported channel count: only mono/stereo supported")
)

// ReadWav reads a PCM WAV file and returns mono samples normalized to [-1,1]
// together with the sample rate. Stereo is averaged to mono.
func ReadWav(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return DecodeWav(f)
}

// DecodeWav is ReadWav over any seekable reader.
func DecodeWav(r io.ReadSeeker) ([]float64, int, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, 0, ErrNotWAV
	}
	if dec.WavAudioFormat != 1 {
		return nil, 0, ErrUnsupportedFormat
	}
	switch dec.BitDepth {
	case 16, 24, 32:
	default:
		return nil, 0, ErrUnsupportedDepth
	}
	if dec.NumChans != 1 && dec.NumChans != 2 {
		return nil, 0, ErrUnsupportedChannel
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decoding PCM samples: %w", err)
	}

	scale := 1.0 / float64(int64(1)<<(dec.BitDepth-1))
	if dec.NumChans == 1 {
		out := make([]float64, len(buf.Data))
		for i, s := range buf.Data {
			out[i] = float64(s) * scale
		}
		return out, int(dec.SampleRate), nil
	}

	frames := len(buf.Data) / 2
	out := make([]float64, frames)
	for i := 0; i < frames; i++ {
		l := float64(buf.Data[2*i]) * scale
		r := float64(buf.Data[2*i+1]) * scale
		out[i] = (l + r) * 0.5
	}
	return out, int(dec.SampleRate), nil
}
