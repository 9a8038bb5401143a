// Package scoring rates a vocal performance against the delivery its
// character context calls for.
//
// A context is turned into an Expectation (amplitude band, minimum
// variation, silence ceiling). Four independent scorers compare the measured
// PerformanceMetrics with it, their weighted sum becomes a 2.5 to 5.0 score,
// and templated feedback explains the result in the character's terms.
package scoring

// PerformanceMetrics summarize the loudness of one recorded take.
// Amplitudes are in [0,1].
type PerformanceMetrics struct {
	AverageAmplitude   float64   `json:"average_amplitude"`
	PeakAmplitude      float64   `json:"peak_amplitude"`
	AmplitudeVariation float64   `json:"amplitude_variation"`
	DurationSec        float64   `json:"duration_sec"`
	SilenceRatio       float64   `json:"silence_ratio"`
	AmplitudeHistory   []float64 `json:"amplitude_history,omitempty"`
}

// Range is a closed interval [Lo, Hi].
type Range struct {
	Lo float64 `json:"lo"`
	Hi float64 `json:"hi"`
}

// Contains reports whether v lies in the closed interval.
func (r Range) Contains(v float64) bool { return v >= r.Lo && v <= r.Hi }

// Mid returns the centre of the interval.
func (r Range) Mid() float64 { return (r.Lo + r.Hi) / 2 }

// Width returns Hi - Lo.
func (r Range) Width() float64 { return r.Hi - r.Lo }

// Expectation is what a context asks of the voice.
type Expectation struct {
	Amplitude    Range   `json:"amplitude"`
	MinVariation float64 `json:"min_variation"`
	MaxSilence   float64 `json:"max_silence"`
}

// Components holds the raw per-metric scores. Values are unbounded; roughly
// 1 is ideal and negative is far off target.
type Components struct {
	Amplitude   float64 `json:"amplitude"`
	Variation   float64 `json:"variation"`
	Pacing      float64 `json:"pacing"`
	Consistency float64 `json:"consistency"`
}

// Result is the outcome of scoring one take.
type Result struct {
	Score        float64     `json:"score"`
	Summary      string      `json:"summary"`
	Strengths    []string    `json:"strengths"`
	Improvements []string    `json:"improvements"`
	PracticalTip string      `json:"practical_tip"`
	Components   Components  `json:"components"`
	Expectation  Expectation `json:"expectation"`
}
