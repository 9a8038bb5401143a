package scoring

import (
	"strings"

	"github.com/himanishpuri/StageCue/internal/rules"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

const (
	strengthAbove    = 0.4
	improvementBelow = 0.2
	maxListed        = 2

	// hesitationSilence is the silence ratio above which a weak pacing score
	// is read as hesitation rather than a lack of pauses.
	hesitationSilence = 0.4
)

// phrase is a feedback template with {intent} and {motivation} slots.
type phrase string

// render fills the slots with the lower-cased context fields.
func (p phrase) render(ctx guidance.CharacterContext) string {
	return strings.NewReplacer(
		"{intent}", strings.ToLower(ctx.Intent),
		"{motivation}", strings.ToLower(ctx.Motivation),
	).Replace(string(p))
}

type band struct {
	min     float64
	summary phrase
}

// summaryBands are checked top down; the last one catches everything else.
var summaryBands = []band{
	{4.5, "You captured the {motivation} — a commanding performance."},
	{3.8, "Strong delivery of your {intent}. Push deeper into the stakes."},
	{2.8, "The {motivation} is there — let it drive your voice."},
	{2.6, "You're finding the truth. Trust the impulse of your {intent}."},
	{0, "You've laid a foundation. Explore the {motivation} on the next take."},
}

var amplitudeStrength = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"power", "explosive", "high"}, Value: "Strong vocal projection that commands the space."},
		{Keywords: []string{"urgent", "engaged"}, Value: "Well-projected delivery that serves your intent."},
	},
	Default: "Measured volume that draws the listener closer.",
}

var variationStrength = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"dynamic", "urgent"}, Value: "Dynamic shifts that reveal the emotional landscape of your {intent}."},
	},
	Default: "Thoughtful tonal variation that reinforces your {motivation}.",
}

var pacingStrength = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"fast", "urgent"}, Value: "Forward momentum that drives the intention home."},
	},
	Default: "Intentional pacing that lets each word land with impact.",
}

const consistencyStrength phrase = "Sustained engagement throughout the delivery."

var tooQuiet = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"power", "explosive"}, Value: "Push the emotional stakes — let your {intent} fill the room."},
	},
	Default: "Allow more vocal presence to support your {motivation}.",
}

var tooLoud = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"restrained", "subtle"}, Value: "Pull back — find the power in restraint and control for your {intent}."},
	},
	Default: "The projection overshot the {motivation}. Find the right ceiling.",
}

var variationImprovement = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"dynamic", "urgent"}, Value: "Allow more dynamic rise and fall to reinforce your {intent}."},
	},
	Default: "Introduce subtle tonal shifts to keep the {motivation} alive.",
}

const (
	hesitantPacing      phrase = "Your pacing hesitated — trust your {motivation} and stay connected to the line."
	rushedPacing        phrase = "Create more intentional pauses to build tension within your {intent}."
	consistencyImprove  phrase = "Avoid letting the energy drop mid-phrase."
	fallbackStrength    phrase = "You committed to the {intent} performance."
	fallbackImprovement phrase = "Explore deeper contrast between phrases to emphasize your {motivation}."
)

var amplitudeTip = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"power", "explosive", "urgent"}, Value: "To support your {motivation}: take a deep breath and imagine projecting to fill a large space."},
	},
	Default: "For your {intent}: try whispering first, then find the minimal volume needed to be heard.",
}

const variationTip phrase = "To emphasize your {motivation}: pause half a second before a key word, then shift your tone as you land it."

var pacingTip = rules.Table[phrase]{
	Rules: []rules.Rule[phrase]{
		{Keywords: []string{"urgent", "explosive"}, Value: "Ground yourself with one breath cycle before starting. Let the {motivation} launch the first word."},
	},
	Default: "Read the line silently first, marking where your {intent} naturally builds. Honor those beats.",
}

// feedback carries everything the phrase tables look at.
type feedback struct {
	ctx     guidance.CharacterContext
	vc      guidance.VocalCharacteristics
	exp     Expectation
	scores  Components
	metrics PerformanceMetrics
}

// Summary picks the sentence for a final score.
func Summary(score float64, ctx guidance.CharacterContext) string {
	for _, b := range summaryBands {
		if score >= b.min {
			return b.summary.render(ctx)
		}
	}
	return summaryBands[len(summaryBands)-1].summary.render(ctx)
}

func (f feedback) strengths() []string {
	var out []phrase
	if f.scores.Amplitude > strengthAbove {
		out = append(out, amplitudeStrength.Lookup(f.vc.Energy))
	}
	if f.scores.Variation > strengthAbove {
		out = append(out, variationStrength.Lookup(f.vc.Energy))
	}
	if f.scores.Pacing > strengthAbove {
		out = append(out, pacingStrength.Lookup(f.vc.Pace))
	}
	if f.scores.Consistency > strengthAbove {
		out = append(out, consistencyStrength)
	}
	if len(out) == 0 {
		out = append(out, fallbackStrength)
	}
	return f.render(out)
}

func (f feedback) improvements() []string {
	var out []phrase
	if f.scores.Amplitude < improvementBelow {
		if f.metrics.AverageAmplitude < f.exp.Amplitude.Lo {
			out = append(out, tooQuiet.Lookup(f.vc.Energy))
		} else {
			out = append(out, tooLoud.Lookup(f.vc.Energy))
		}
	}
	if f.scores.Variation < improvementBelow {
		out = append(out, variationImprovement.Lookup(f.vc.Energy))
	}
	if f.scores.Pacing < improvementBelow {
		if f.metrics.SilenceRatio > hesitationSilence {
			out = append(out, hesitantPacing)
		} else {
			out = append(out, rushedPacing)
		}
	}
	if f.scores.Consistency < improvementBelow {
		out = append(out, consistencyImprove)
	}
	if len(out) == 0 {
		out = append(out, fallbackImprovement)
	}
	return f.render(out)
}

// tip targets the weakest of amplitude, variation and pacing. Ties go to the
// earlier metric in that order.
func (f feedback) tip() string {
	candidates := []struct {
		score float64
		tip   phrase
	}{
		{f.scores.Amplitude, amplitudeTip.Lookup(f.vc.Energy)},
		{f.scores.Variation, variationTip},
		{f.scores.Pacing, pacingTip.Lookup(f.vc.Energy)},
	}
	weakest := candidates[0]
	for _, c := range candidates[1:] {
		if c.score < weakest.score {
			weakest = c
		}
	}
	return weakest.tip.render(f.ctx)
}

func (f feedback) render(ps []phrase) []string {
	if len(ps) > maxListed {
		ps = ps[:maxListed]
	}
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.render(f.ctx)
	}
	return out
}
