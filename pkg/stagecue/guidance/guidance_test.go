package guidance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		name       string
		intent     string
		motivation string
		wantEnergy string
		wantPace   string
	}{
		{"threat out of desperation", "Threaten", "Desperation", "Restrained intensity", "Deliberate and controlled"},
		{"threat for power", "Intimidate", "Power/Control", "Controlled power", "Steady and commanding"},
		{"threat otherwise", "threaten", "Revenge", "Contained", "Controlled"},
		{"desperate persuasion", "Persuade", "desperate times", "Urgent but controlled", "Engaged, slightly faster"},
		{"logical persuasion", "Convince", "Logical Reason", "Calm, reasoned", "Methodical"},
		{"warm persuasion", "Persuade", "Love/Connection", "Engaging", "Natural, conversational"},
		{"seduction", "Charm", "", "Suggestive, confident", "Slower, deliberate"},
		{"plea", "Plead", "Fear", "Desperate, vulnerable", "Urgent, building"},
		{"desperate intent is a plea", "Desperate", "", "Desperate, vulnerable", "Urgent, building"},
		{"lie for survival", "Deceive", "Survival", "Calm conviction", "Steady, not defensive"},
		{"lie otherwise", "Lie", "Ambition", "Composed", "Confident"},
		{"comfort", "Console", "", "Soothing, supportive", "Slower, reassuring"},
		{"unknown intent", "Accuse", "Revenge", "Committed", "Conversational"},
		{"empty context", "", "", "Committed", "Conversational"},
		{"first intent rule wins", "Threaten to persuade", "Logical Reason", "Contained", "Controlled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Derive(CharacterContext{Intent: tt.intent, Motivation: tt.motivation})
			assert.Equal(t, tt.wantEnergy, g.Characteristics.Energy)
			assert.Equal(t, tt.wantPace, g.Characteristics.Pace)
			assert.Len(t, g.Tips, 5)
		})
	}
}

func TestDeriveIgnoresOriginAndDestination(t *testing.T) {
	a := Derive(CharacterContext{Origin: "Plea", Destination: "Escape", Intent: "Comfort"})
	b := Derive(CharacterContext{Origin: "Demand", Destination: "Justice", Intent: "Comfort"})
	assert.Equal(t, a, b)
}

func TestDeriveReturnsFreshTips(t *testing.T) {
	g := Derive(CharacterContext{Intent: "Seduce"})
	g.Tips[0] = "changed"

	again := Default.Derive(CharacterContext{Intent: "Seduce"})
	assert.Equal(t, "Use a lower, slower pitch than your natural speaking voice", again.Tips[0])
}

func TestPresets(t *testing.T) {
	p := DefaultPresets()
	for _, opts := range [][]string{p.Origins, p.Destinations, p.Intents, p.Motivations} {
		require.NotEmpty(t, opts)
		assert.Equal(t, "Custom", opts[len(opts)-1])
	}
	require.Len(t, p.Scenarios, 5)

	p.Intents[0] = "mutated"
	assert.Equal(t, "Threaten", DefaultPresets().Intents[0])

	s, ok := Scenario("desperate PLEA")
	require.True(t, ok)
	assert.Equal(t, "Plead", s.Context.Intent)
	assert.Equal(t, "Desperate, vulnerable", Derive(s.Context).Characteristics.Energy)

	_, ok = Scenario("nope")
	assert.False(t, ok)
}

func TestIsZero(t *testing.T) {
	assert.True(t, CharacterContext{}.IsZero())
	assert.False(t, CharacterContext{Intent: "Plead"}.IsZero())
}
