package guidance

import (
	"slices"
	"strings"
)

// Preset is a named, ready-made CharacterContext.
type Preset struct {
	Label   string           `json:"label"`
	Context CharacterContext `json:"context"`
}

// Presets lists the picker options offered for each context field and a few
// common scenarios. "Custom" is always the last option.
type Presets struct {
	Origins      []string `json:"origins"`
	Destinations []string `json:"destinations"`
	Intents      []string `json:"intents"`
	Motivations  []string `json:"motivations"`
	Scenarios    []Preset `json:"scenarios"`
}

var presets = Presets{
	Origins: []string{
		"Confrontation", "Deception", "Plea", "Revelation", "Accusation", "Offering",
		"Demand", "Confession", "Seduction", "Negotiation", "Custom",
	},
	Destinations: []string{
		"Reconciliation", "Escape", "Manipulation", "Understanding", "Justice",
		"Gain/Acquisition", "Submission", "Forgiveness", "Connection", "Agreement", "Custom",
	},
	Intents: []string{
		"Threaten", "Persuade", "Seduce", "Plead", "Deceive", "Comfort",
		"Accuse", "Confess", "Demand", "Manipulate", "Custom",
	},
	Motivations: []string{
		"Desperation", "Power/Control", "Logical Reason", "Self-Protection", "Love/Connection",
		"Revenge", "Survival", "Ambition", "Redemption", "Fear", "Custom",
	},
	Scenarios: []Preset{
		{Label: "Threatening villain", Context: CharacterContext{Origin: "Confrontation", Destination: "Submission", Intent: "Threaten", Motivation: "Power/Control"}},
		{Label: "Desperate plea", Context: CharacterContext{Origin: "Plea", Destination: "Reconciliation", Intent: "Plead", Motivation: "Desperation"}},
		{Label: "Seductive charm", Context: CharacterContext{Origin: "Seduction", Destination: "Connection", Intent: "Seduce", Motivation: "Love/Connection"}},
		{Label: "Logical persuasion", Context: CharacterContext{Origin: "Negotiation", Destination: "Agreement", Intent: "Persuade", Motivation: "Logical Reason"}},
		{Label: "Guilty confession", Context: CharacterContext{Origin: "Confession", Destination: "Forgiveness", Intent: "Confess", Motivation: "Redemption"}},
	},
}

// DefaultPresets returns a copy of the built-in presets.
func DefaultPresets() Presets {
	return Presets{
		Origins:      slices.Clone(presets.Origins),
		Destinations: slices.Clone(presets.Destinations),
		Intents:      slices.Clone(presets.Intents),
		Motivations:  slices.Clone(presets.Motivations),
		Scenarios:    slices.Clone(presets.Scenarios),
	}
}

// Scenario looks up a common scenario by label, ignoring case.
func Scenario(label string) (Preset, bool) {
	for _, p := range presets.Scenarios {
		if strings.EqualFold(p.Label, label) {
			return p, true
		}
	}
	return Preset{}, false
}
