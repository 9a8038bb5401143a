// Package audio turns recorded speech into loudness metrics.
//
// A Meter consumes PCM samples in fixed-size frames, converts each frame to
// a scaled RMS amplitude in [0,1] and accumulates the history that scoring
// needs. Files that are not already PCM WAV are converted with ffmpeg first.
package audio

import (
	"math"
	"time"

	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
)

// MeterConfig controls how samples become amplitudes.
type MeterConfig struct {
	FrameSize    int           // samples per amplitude reading
	Gain         float64       // RMS multiplier before capping at 1
	SilenceFloor float64       // amplitudes below this count as silence
	MaxDuration  time.Duration // audio past this point is ignored
}

// DefaultMeterConfig matches the recorder the scoring thresholds were tuned
// on.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		FrameSize:    1024,
		Gain:         8.0,
		SilenceFloor: 0.05,
		MaxDuration:  20 * time.Second,
	}
}

func (c MeterConfig) withDefaults() MeterConfig {
	d := DefaultMeterConfig()
	if c.FrameSize <= 0 {
		c.FrameSize = d.FrameSize
	}
	if c.Gain <= 0 {
		c.Gain = d.Gain
	}
	if c.SilenceFloor < 0 {
		c.SilenceFloor = d.SilenceFloor
	}
	if c.MaxDuration <= 0 {
		c.MaxDuration = d.MaxDuration
	}
	return c
}

// Meter accumulates amplitude readings. It is not safe for concurrent use.
type Meter struct {
	cfg        MeterConfig
	sampleRate int
	maxSamples int

	pending []float64
	samples int
	history []float64
	silent  int
}

// NewMeter returns a Meter for audio at sampleRate. Zero-valued config
// fields take their defaults.
func NewMeter(cfg MeterConfig, sampleRate int) *Meter {
	cfg = cfg.withDefaults()
	if sampleRate <= 0 {
		sampleRate = 16000
	}
	return &Meter{
		cfg:        cfg,
		sampleRate: sampleRate,
		maxSamples: int(cfg.MaxDuration.Seconds() * float64(sampleRate)),
		pending:    make([]float64, 0, cfg.FrameSize),
	}
}

// Write feeds mono samples in [-1,1]. Complete frames are measured as soon
// as they fill; samples past MaxDuration are dropped. It reports whether
// the meter can take more audio.
func (m *Meter) Write(samples []float64) bool {
	for _, s := range samples {
		if m.samples >= m.maxSamples {
			return false
		}
		m.samples++
		m.pending = append(m.pending, s)
		if len(m.pending) == m.cfg.FrameSize {
			m.PushFrame(m.pending)
			m.pending = m.pending[:0]
		}
	}
	return m.samples < m.maxSamples
}

// PushFrame measures one frame of samples directly.
func (m *Meter) PushFrame(frame []float64) {
	if len(frame) == 0 {
		return
	}
	var sum float64
	for _, s := range frame {
		sum += s * s
	}
	rms := math.Sqrt(sum / float64(len(frame)))
	m.Push(min(rms*m.cfg.Gain, 1))
}

// Push records an amplitude reading that was measured elsewhere.
func (m *Meter) Push(amplitude float64) {
	amplitude = min(max(amplitude, 0), 1)
	m.history = append(m.history, amplitude)
	if amplitude < m.cfg.SilenceFloor {
		m.silent++
	}
}

// Len returns the number of readings so far.
func (m *Meter) Len() int { return len(m.history) }

// Metrics summarizes the readings so far. A trailing partial frame is not
// measured. Duration counts written samples when Write was used, and frames
// otherwise.
func (m *Meter) Metrics() scoring.PerformanceMetrics {
	n := len(m.history)
	duration := float64(m.samples) / float64(m.sampleRate)
	if m.samples == 0 {
		duration = float64(n*m.cfg.FrameSize) / float64(m.sampleRate)
	}
	if n == 0 {
		return scoring.PerformanceMetrics{DurationSec: duration, AmplitudeHistory: []float64{}}
	}

	var sum, peak float64
	for _, a := range m.history {
		sum += a
		peak = max(peak, a)
	}
	mean := sum / float64(n)

	var sq float64
	for _, a := range m.history {
		d := a - mean
		sq += d * d
	}

	history := make([]float64, n)
	copy(history, m.history)

	return scoring.PerformanceMetrics{
		AverageAmplitude:   mean,
		PeakAmplitude:      peak,
		AmplitudeVariation: math.Sqrt(sq / float64(n)),
		DurationSec:        duration,
		SilenceRatio:       float64(m.silent) / float64(n),
		AmplitudeHistory:   history,
	}
}

// Reset clears all readings.
func (m *Meter) Reset() {
	m.pending = m.pending[:0]
	m.samples = 0
	m.history = nil
	m.silent = 0
}

// Measure runs a fresh Meter over mono samples.
func Measure(samples []float64, sampleRate int, cfg MeterConfig) scoring.PerformanceMetrics {
	m := NewMeter(cfg, sampleRate)
	m.Write(samples)
	return m.Metrics()
}
