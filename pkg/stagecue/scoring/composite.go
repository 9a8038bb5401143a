package scoring

import "math"

const (
	weightAmplitude   = 0.35
	weightVariation   = 0.25
	weightPacing      = 0.20
	weightConsistency = 0.20

	// encouragement lifts every raw score before clamping.
	encouragement = 0.25

	MinScore = 2.5
	MaxScore = 5.0
)

// Weighted returns the weighted sum of the components before any buffer or
// clamping.
func (c Components) Weighted() float64 {
	return weightAmplitude*c.Amplitude +
		weightVariation*c.Variation +
		weightPacing*c.Pacing +
		weightConsistency*c.Consistency
}

// Composite maps components onto the [MinScore, MaxScore] scale. A NaN
// weighted sum counts as zero.
func Composite(c Components) float64 {
	w := c.Weighted()
	if math.IsNaN(w) {
		w = 0
	}
	clamped := min(1, max(0, w+encouragement))
	return MinScore + (MaxScore-MinScore)*clamped
}
