package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"blank", "  \n\n ", []string{}},
		{"sentences", "Beautiful! Great God!", []string{"Beautiful", "Great God"}},
		{"question", "You know why? It was too damn hard.", []string{"You know why", "It was too damn hard"}},
		{"repeated marks", "buy his future!!\nAnd that", []string{"buy his future", "And that"}},
		{"semicolons kept", "It is the cause. Yet I'll not shed her blood;\nNor scar", []string{"It is the cause", "Yet I'll not shed her blood;", "Nor scar"}},
		{"no terminator", "  to be or not  ", []string{"to be or not"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text))
		})
	}
}

func TestParseBeats(t *testing.T) {
	beats := ParseBeats("To die, to sleep.\nTo sleep, perchance to dream")
	require.Len(t, beats, 2)
	assert.Equal(t, "To die, to sleep", beats[0].Text)
	assert.NotEmpty(t, beats[0].ID)
	assert.NotEqual(t, beats[0].ID, beats[1].ID)
	assert.Equal(t, DefaultIntensity, beats[1].Intensity)
	assert.Empty(t, beats[1].Emotion)
	assert.False(t, beats[1].HasPause)
}

func TestParseEmotion(t *testing.T) {
	e, err := ParseEmotion("conflicted")
	require.NoError(t, err)
	assert.Equal(t, Conflicted, e)

	e, err = ParseEmotion("")
	require.NoError(t, err)
	assert.Empty(t, e)

	_, err = ParseEmotion("bored")
	assert.Error(t, err)
}

func TestLoadFileYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "othello.yaml")
	doc := `title: Othello
context:
  origin: Accusation
  destination: Justice
  intent: Threaten
  motivation: Desperation
text: |
  It is the cause, it is the cause, my soul.
  Put out the light, and then put out the light.
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Othello", f.Title)
	assert.Equal(t, "Threaten", f.Context.Intent)
	require.Len(t, f.Beats, 2)
	assert.Equal(t, "Put out the light, and then put out the light", f.Beats[1].Text)
}

func TestLoadFileYAMLBeats(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plea.yml")
	doc := `beats:
  - text: Please
    emotion: fearful
    pause: true
    intensity: 8
  - text: "  "
  - text: Don't go
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "plea", f.Title)
	assert.Equal(t, "Please\nDon't go", f.Text)
	require.Len(t, f.Beats, 2)
	assert.Equal(t, Fearful, f.Beats[0].Emotion)
	assert.True(t, f.Beats[0].HasPause)
	assert.Equal(t, 8.0, f.Beats[0].Intensity)
	assert.Equal(t, DefaultIntensity, f.Beats[1].Intensity)
	assert.NotEmpty(t, f.Beats[1].ID)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
	}{
		{"empty text", "", ".txt"},
		{"empty yaml", "", ".yaml"},
		{"unknown field", "title: x\nspeaker: y\n", ".yaml"},
		{"bad emotion", "beats:\n  - text: hi\n    emotion: bored\n", ".yaml"},
		{"bad intensity", "beats:\n  - text: hi\n    intensity: 11\n", ".yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			assert.Error(t, err)
		})
	}

	_, err := Parse(nil, ".txt")
	assert.ErrorIs(t, err, ErrNoBeats)
}

func TestLoadFilePlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "monologue.txt")
	require.NoError(t, os.WriteFile(path, []byte("Beautiful! Great God!"), 0o644))

	f, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "monologue", f.Title)
	assert.Len(t, f.Beats, 2)
}

func TestSamples(t *testing.T) {
	s := Samples()
	require.Len(t, s, 5)
	for _, sample := range s {
		assert.NotEmpty(t, ParseBeats(sample.Text), sample.Title)
		assert.False(t, sample.Context.IsZero(), sample.Title)
	}
	assert.Equal(t, "Hamlet", s[0].Title)
}
