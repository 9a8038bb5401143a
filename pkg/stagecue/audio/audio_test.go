package audio

import (
	"context"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWav(t *testing.T, path string, rate, chans int, data []int) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, chans, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: chans, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func repeat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestMeasure(t *testing.T) {
	samples := append(repeat(0.05, 4*1024), repeat(0, 2*1024)...)
	m := Measure(samples, 16000, DefaultMeterConfig())

	require.Len(t, m.AmplitudeHistory, 6)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 0.4, m.AmplitudeHistory[i], 1e-9)
	}
	assert.InDelta(t, 0.0, m.AmplitudeHistory[5], 1e-9)

	mean := 1.6 / 6
	wantStd := math.Sqrt((4*(0.4-mean)*(0.4-mean) + 2*mean*mean) / 6)
	assert.InDelta(t, mean, m.AverageAmplitude, 1e-9)
	assert.InDelta(t, 0.4, m.PeakAmplitude, 1e-9)
	assert.InDelta(t, wantStd, m.AmplitudeVariation, 1e-9)
	assert.InDelta(t, 2.0/6, m.SilenceRatio, 1e-9)
	assert.InDelta(t, 6144.0/16000, m.DurationSec, 1e-9)
}

func TestMeterCapsAndClamps(t *testing.T) {
	m := NewMeter(DefaultMeterConfig(), 16000)
	m.PushFrame(repeat(0.5, 1024))
	m.Push(-3)
	m.Push(7)

	got := m.Metrics()
	assert.Equal(t, []float64{1, 0, 1}, got.AmplitudeHistory)
	assert.InDelta(t, 1.0/3, got.SilenceRatio, 1e-9)
}

func TestMeterTruncatesAtMaxDuration(t *testing.T) {
	cfg := MeterConfig{FrameSize: 1024, MaxDuration: time.Second}
	m := NewMeter(cfg, 2048)

	more := m.Write(repeat(0.1, 5000))
	assert.False(t, more)
	assert.Equal(t, 2, m.Len())
	assert.InDelta(t, 1.0, m.Metrics().DurationSec, 1e-9)

	m.Reset()
	assert.Zero(t, m.Len())
}

func TestMeterIgnoresPartialFrame(t *testing.T) {
	m := NewMeter(MeterConfig{}, 16000)
	assert.True(t, m.Write(repeat(0.1, 1500)))
	assert.Equal(t, 1, m.Len())
}

func TestMeterEmpty(t *testing.T) {
	got := NewMeter(MeterConfig{}, 16000).Metrics()
	assert.NotNil(t, got.AmplitudeHistory)
	assert.Empty(t, got.AmplitudeHistory)
	assert.Zero(t, got.AverageAmplitude)
	assert.Zero(t, got.SilenceRatio)
}

func TestReadWav(t *testing.T) {
	dir := t.TempDir()

	t.Run("mono", func(t *testing.T) {
		path := filepath.Join(dir, "mono.wav")
		writeWav(t, path, 16000, 1, []int{8192, -8192, 0, 16384})

		samples, rate, err := ReadWav(path)
		require.NoError(t, err)
		assert.Equal(t, 16000, rate)
		assert.Equal(t, []float64{0.25, -0.25, 0, 0.5}, samples)
	})

	t.Run("stereo is averaged", func(t *testing.T) {
		path := filepath.Join(dir, "stereo.wav")
		writeWav(t, path, 8000, 2, []int{8192, 0, 16384, 16384})

		samples, rate, err := ReadWav(path)
		require.NoError(t, err)
		assert.Equal(t, 8000, rate)
		assert.Equal(t, []float64{0.125, 0.5}, samples)
	})

	t.Run("not a wav", func(t *testing.T) {
		path := filepath.Join(dir, "notes.wav")
		require.NoError(t, os.WriteFile(path, []byte("INVALID HEADER DATA"), 0o644))

		_, _, err := ReadWav(path)
		assert.ErrorIs(t, err, ErrNotWAV)
	})

	t.Run("missing", func(t *testing.T) {
		_, _, err := ReadWav(filepath.Join(dir, "nope.wav"))
		assert.Error(t, err)
	})
}

func TestAnalyzeFileWav(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.wav")
	data := make([]int, 16000)
	for i := range data {
		if i < 8192 {
			data[i] = 1638 // ~0.05
		}
	}
	writeWav(t, path, 16000, 1, data)

	m, err := AnalyzeFile(context.Background(), path, AnalyzeConfig{Meter: DefaultMeterConfig()})
	require.NoError(t, err)
	require.Len(t, m.AmplitudeHistory, 15)
	assert.InDelta(t, 1.0, m.DurationSec, 1e-9)
	assert.InDelta(t, 7.0/15, m.SilenceRatio, 1e-9)
	assert.Greater(t, m.AverageAmplitude, 0.0)
}

func TestAnalyzeFileMissing(t *testing.T) {
	_, err := AnalyzeFile(context.Background(), filepath.Join(t.TempDir(), "gone.m4a"), AnalyzeConfig{})
	assert.Error(t, err)
}

func TestConvertToMonoWAV(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}
	dir := t.TempDir()
	in := filepath.Join(dir, "stereo.wav")
	data := make([]int, 2*44100)
	for i := range data {
		data[i] = int(8000 * math.Sin(float64(i/2)*0.05))
	}
	writeWav(t, in, 44100, 2, data)

	out, err := ConvertToMonoWAV(context.Background(), in, filepath.Join(dir, "out"), ConvertWAVConfig{})
	require.NoError(t, err)

	samples, rate, err := ReadWav(out)
	require.NoError(t, err)
	assert.Equal(t, 16000, rate)
	assert.InDelta(t, 16000, len(samples), 100)
}

func TestParseProbe(t *testing.T) {
	out := []byte(`{
		"streams": [
			{"codec_type": "video", "codec_name": "h264"},
			{"codec_type": "audio", "codec_name": "aac", "sample_rate": "48000", "channels": 2}
		],
		"format": {"duration": "12.480000", "format_name": "mov,mp4,m4a"}
	}`)

	info, err := parseProbe("/tmp/take.m4a", out)
	require.NoError(t, err)
	assert.Equal(t, &RecordingInfo{
		Filename:    "take.m4a",
		Format:      "mov,mp4,m4a",
		Codec:       "aac",
		DurationSec: 12.48,
		SampleRate:  48000,
		Channels:    2,
	}, info)

	_, err = parseProbe("x", []byte(`{"streams": []}`))
	assert.Error(t, err)
}
