// Package guidance turns a character context (where the scene starts, where
// it is heading, what the character wants and why) into delivery guidance:
// coaching tips plus the vocal characteristics a performance should show.
package guidance

// CharacterContext describes the dramatic situation of a line.
type CharacterContext struct {
	Origin      string `json:"origin" yaml:"origin"`
	Destination string `json:"destination" yaml:"destination"`
	Intent      string `json:"intent" yaml:"intent"`
	Motivation  string `json:"motivation" yaml:"motivation"`
}

// IsZero reports whether no field is set.
func (c CharacterContext) IsZero() bool {
	return c == CharacterContext{}
}

// VocalCharacteristics are short free-text descriptors of how the line
// should sound. Scoring reads Pace and Energy.
type VocalCharacteristics struct {
	PitchRange   string `json:"pitch_range"`
	Pace         string `json:"pace"`
	Emphasis     string `json:"emphasis"`
	BreathPauses string `json:"breath_pauses"`
	Energy       string `json:"energy"`
}

// DeliveryGuidance is the coaching derived for a CharacterContext.
type DeliveryGuidance struct {
	Tips            []string             `json:"tips"`
	Characteristics VocalCharacteristics `json:"characteristics"`
}

// Deriver derives guidance for a context. Implementations must be
// deterministic.
type Deriver interface {
	Derive(ctx CharacterContext) DeliveryGuidance
}

// DeriverFunc adapts a plain function to Deriver.
type DeriverFunc func(ctx CharacterContext) DeliveryGuidance

// Derive calls f.
func (f DeriverFunc) Derive(ctx CharacterContext) DeliveryGuidance {
	return f(ctx)
}
