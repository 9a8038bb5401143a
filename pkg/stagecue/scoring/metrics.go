package scoring

import "math"

const (
	// consistencyMinSamples is the shortest history the consistency scorer
	// will judge; shorter takes get the neutral score.
	consistencyMinSamples = 21
	consistencyNeutral    = 0.5
	flatThreshold         = 0.01
)

// ScoreAmplitude is 1.0 at the centre of the band falling linearly to 0.3 at
// its edges, and drops by 5 per unit of distance outside it.
func ScoreAmplitude(avg float64, exp Expectation) float64 {
	r := exp.Amplitude
	if r.Contains(avg) {
		half := r.Width() / 2
		if half == 0 {
			return 1.0
		}
		return 1.0 - 0.7*math.Abs(avg-r.Mid())/half
	}
	dist := avg - r.Hi
	if avg < r.Lo {
		dist = r.Lo - avg
	}
	return 0.3 - 5.0*dist
}

// ScoreVariation rewards meeting the minimum variation (0.8, plus 0.2 per
// multiple beyond it) and goes negative below it.
func ScoreVariation(variation float64, exp Expectation) float64 {
	if exp.MinVariation <= 0 {
		return 0.8
	}
	ratio := variation / exp.MinVariation
	if ratio >= 1 {
		return 0.8 + 0.2*(ratio-1)
	}
	return ratio - 1
}

// ScorePacing peaks when the silence ratio sits at half the allowed maximum
// and falls off quadratically either side.
func ScorePacing(silence float64, exp Expectation) float64 {
	if exp.MaxSilence <= 0 {
		return 0
	}
	ideal := 0.5 * exp.MaxSilence
	dev := math.Abs(silence-ideal) / exp.MaxSilence
	return 1 - dev*dev
}

// ScoreConsistency penalizes the longest flat stretch of the amplitude
// history, where adjacent samples differ by less than 0.01.
func ScoreConsistency(history []float64) float64 {
	if len(history) < consistencyMinSamples {
		return consistencyNeutral
	}
	run, longest := 0, 0
	for i := 1; i < len(history); i++ {
		if math.Abs(history[i]-history[i-1]) < flatThreshold {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	flat := float64(longest) / float64(len(history))
	return 1 - flat*flat
}

// Score runs all four scorers.
func Score(m PerformanceMetrics, exp Expectation) Components {
	return Components{
		Amplitude:   ScoreAmplitude(m.AverageAmplitude, exp),
		Variation:   ScoreVariation(m.AmplitudeVariation, exp),
		Pacing:      ScorePacing(m.SilenceRatio, exp),
		Consistency: ScoreConsistency(m.AmplitudeHistory),
	}
}
