package scoring

import (
	"github.com/himanishpuri/StageCue/internal/rules"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

var amplitudeByEnergy = rules.Table[Range]{
	Rules: []rules.Rule[Range]{
		{Keywords: []string{"explosive", "high", "urgent", "power"}, Value: Range{0.35, 1.0}},
		{Keywords: []string{"strong", "commanding", "engaged"}, Value: Range{0.25, 0.75}},
		{Keywords: []string{"calm", "composed", "controlled"}, Value: Range{0.12, 0.50}},
		{Keywords: []string{"restrained", "measured", "subtle", "soothing"}, Value: Range{0.02, 0.25}},
	},
	Default: Range{0.12, 0.50},
}

var variationByEnergy = rules.Table[float64]{
	Rules: []rules.Rule[float64]{
		{Keywords: []string{"explosive", "dynamic", "urgent"}, Value: 0.10},
		{Keywords: []string{"strong", "engaged"}, Value: 0.07},
		{Keywords: []string{"composed", "calm", "controlled"}, Value: 0.04},
	},
	Default: 0.01,
}

var silenceByPace = rules.Table[float64]{
	Rules: []rules.Rule[float64]{
		{Keywords: []string{"fast", "urgent", "building"}, Value: 0.25},
		{Keywords: []string{"steady", "deliberate", "methodical"}, Value: 0.35},
		{Keywords: []string{"slower", "reassuring", "charging"}, Value: 0.40},
	},
	Default: 0.30,
}

// Expectations maps vocal characteristics to measurable targets. Energy
// drives the amplitude band and minimum variation, pace drives the silence
// ceiling. The result depends on nothing but vc.
func Expectations(vc guidance.VocalCharacteristics) Expectation {
	return Expectation{
		Amplitude:    amplitudeByEnergy.Lookup(vc.Energy),
		MinVariation: variationByEnergy.Lookup(vc.Energy),
		MaxSilence:   silenceByPace.Lookup(vc.Pace),
	}
}
