package guidance

import (
	"slices"

	"github.com/himanishpuri/StageCue/internal/rules"
)

// motivationTable picks guidance by motivation once the intent is known.
type motivationTable = rules.Table[DeliveryGuidance]

var restrainedThreat = DeliveryGuidance{
	Tips: []string{
		"Lower your pitch slightly to convey controlled danger",
		"Use direct, punchy delivery with minimal filler words",
		"Emphasize key words with intentional pauses before/after",
		"Maintain steady tempo even when emotional",
		"End phrases with downward inflection for authority",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Low to mid",
		Pace:         "Deliberate and controlled",
		Emphasis:     "High on key words",
		BreathPauses: "Strategic pauses for impact",
		Energy:       "Restrained intensity",
	},
}

var commandingThreat = DeliveryGuidance{
	Tips: []string{
		"Project confidence through steady volume and pace",
		"Use longer phrases to show command of the situation",
		"Vary tone only for calculated effect",
		"Place emphasis on verbs and action words",
		"Maintain forward momentum without rushing",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Mid to low",
		Pace:         "Steady and commanding",
		Emphasis:     "On action words",
		BreathPauses: "Minimal, confident",
		Energy:       "Controlled power",
	},
}

var containedThreat = DeliveryGuidance{
	Tips: []string{
		"Use lower pitch to suggest danger",
		"Speak with clear enunciation and controlled volume",
		"Pause briefly before delivering the threat",
		"Avoid sounding angry—sound determined instead",
		"End on a strong note to reinforce the message",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Lower than normal",
		Pace:         "Controlled",
		Emphasis:     "Deliberate",
		BreathPauses: "Strategic",
		Energy:       "Contained",
	},
}

var urgentPersuasion = DeliveryGuidance{
	Tips: []string{
		"Let some emotional urgency show in your voice",
		"Use conversational, direct language patterns",
		"Place emphasis on reasons and benefits",
		"Vary pitch to keep the listener engaged",
		"Create space for the listener to feel heard",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Varied, conversational",
		Pace:         "Engaged, slightly faster",
		Emphasis:     "On compelling reasons",
		BreathPauses: "Natural, breathing points",
		Energy:       "Urgent but controlled",
	},
}

var reasonedPersuasion = DeliveryGuidance{
	Tips: []string{
		"Speak clearly and methodically—like presenting facts",
		"Use even pacing to suggest confidence in your argument",
		"Emphasize logical connectors: 'therefore,' 'because'",
		"Avoid emotional variation; let your words do the work",
		"Build from point to point with slight crescendo",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Even, rational",
		Pace:         "Methodical",
		Emphasis:     "On logical points",
		BreathPauses: "Between ideas",
		Energy:       "Calm, reasoned",
	},
}

var warmPersuasion = DeliveryGuidance{
	Tips: []string{
		"Speak with genuine interest in the listener's perspective",
		"Use warm, inviting tone throughout",
		"Vary your pitch to show enthusiasm",
		"Place emphasis on shared benefits",
		"End on an upward note to invite agreement",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Warm, varied",
		Pace:         "Natural, conversational",
		Emphasis:     "On benefits",
		BreathPauses: "Natural",
		Energy:       "Engaging",
	},
}

var seduction = DeliveryGuidance{
	Tips: []string{
		"Use a lower, slower pitch than your natural speaking voice",
		"Add subtle breathiness to your delivery",
		"Emphasize words that create intimacy or connection",
		"Use longer pauses to create tension and anticipation",
		"Let your voice suggest confidence and ease",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Lower, sultry",
		Pace:         "Slower, deliberate",
		Emphasis:     "On intimate words",
		BreathPauses: "Longer, charged pauses",
		Energy:       "Suggestive, confident",
	},
}

var plea = DeliveryGuidance{
	Tips: []string{
		"Allow your voice to show vulnerability and emotion",
		"Use higher pitch than normal to convey pleading",
		"Vary volume to emphasize desperation",
		"Use shorter, building phrases for escalation",
		"Let your breath show—don't hide the strain",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Higher, strained",
		Pace:         "Urgent, building",
		Emphasis:     "On emotional words",
		BreathPauses: "Ragged, emotional",
		Energy:       "Desperate, vulnerable",
	},
}

var protectiveLie = DeliveryGuidance{
	Tips: []string{
		"Deliver with apparent confidence—not hesitation",
		"Keep volume and pace steady to seem believable",
		"Avoid over-explaining; let the lie sit simply",
		"Place emphasis on believable details",
		"End strong, as if there's nothing more to say",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Normal, convinced-sounding",
		Pace:         "Steady, not defensive",
		Emphasis:     "On credible details",
		BreathPauses: "Natural, assured",
		Energy:       "Calm conviction",
	},
}

var composedLie = DeliveryGuidance{
	Tips: []string{
		"Keep the lie simple and delivered matter-of-factly",
		"Use the same vocal patterns as truth-telling",
		"Avoid defensive over-explanation",
		"Maintain eye contact energy (imagine it)",
		"End decisively without trailing off",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Neutral, believable",
		Pace:         "Confident",
		Emphasis:     "Minimal, natural",
		BreathPauses: "Normal",
		Energy:       "Composed",
	},
}

var comfort = DeliveryGuidance{
	Tips: []string{
		"Use a warm, gentle tone throughout",
		"Speak slightly slower than normal for reassurance",
		"Lower your pitch slightly to suggest safety",
		"Emphasize words of support and understanding",
		"Use longer, sustained phrases to convey calm",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Warm, slightly lowered",
		Pace:         "Slower, reassuring",
		Emphasis:     "On comforting words",
		BreathPauses: "Gentle, present",
		Energy:       "Soothing, supportive",
	},
}

// Fallback is returned when no intent rule matches.
var Fallback = DeliveryGuidance{
	Tips: []string{
		"Speak clearly and naturally",
		"Maintain consistent energy throughout",
		"Let your character's emotional state guide your delivery",
		"Use pauses to emphasize important moments",
		"Trust your instincts and commit fully to the intention",
	},
	Characteristics: VocalCharacteristics{
		PitchRange:   "Natural",
		Pace:         "Conversational",
		Emphasis:     "On key words",
		BreathPauses: "Natural",
		Energy:       "Committed",
	},
}

func only(g DeliveryGuidance) motivationTable {
	return motivationTable{Default: g}
}

// intentTable is evaluated against the intent; the selected motivation table
// is then evaluated against the motivation. Order matters: "desperate"
// intents only reach the plea row when no earlier intent keyword matched.
var intentTable = rules.Table[motivationTable]{
	Rules: []rules.Rule[motivationTable]{
		{
			Keywords: []string{"threaten", "intimidate"},
			Value: motivationTable{
				Rules: []rules.Rule[DeliveryGuidance]{
					{Keywords: []string{"desper"}, Value: restrainedThreat},
					{Keywords: []string{"power", "control"}, Value: commandingThreat},
				},
				Default: containedThreat,
			},
		},
		{
			Keywords: []string{"persuade", "convince"},
			Value: motivationTable{
				Rules: []rules.Rule[DeliveryGuidance]{
					{Keywords: []string{"desper"}, Value: urgentPersuasion},
					{Keywords: []string{"logical", "reason"}, Value: reasonedPersuasion},
				},
				Default: warmPersuasion,
			},
		},
		{Keywords: []string{"seduce", "charm", "attract"}, Value: only(seduction)},
		{Keywords: []string{"plead", "beg", "desperate"}, Value: only(plea)},
		{
			Keywords: []string{"deceive", "lie"},
			Value: motivationTable{
				Rules: []rules.Rule[DeliveryGuidance]{
					{Keywords: []string{"self-protect", "survival"}, Value: protectiveLie},
				},
				Default: composedLie,
			},
		},
		{Keywords: []string{"comfort", "console"}, Value: only(comfort)},
	},
	Default: only(Fallback),
}

// Derive returns the guidance for ctx using the built-in table. Matching is
// a case-insensitive substring test, so "Threatening" selects the threaten
// row. The returned Tips slice is a fresh copy.
func Derive(ctx CharacterContext) DeliveryGuidance {
	g := intentTable.Lookup(ctx.Intent).Lookup(ctx.Motivation)
	g.Tips = slices.Clone(g.Tips)
	return g
}

// Default is the Deriver backed by the built-in table.
var Default Deriver = DeriverFunc(Derive)
