// Package script splits script text into beats and loads scripts from disk.
package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// DefaultIntensity is the intensity a beat starts with, on a 0 to 10 scale.
const DefaultIntensity = 5.0

var ErrNoBeats = errors.New("script has no lines")

// Emotion is an optional label an actor can put on a beat.
type Emotion string

const (
	Calm       Emotion = "Calm"
	Angry      Emotion = "Angry"
	Fearful    Emotion = "Fearful"
	Conflicted Emotion = "Conflicted"
	Loving     Emotion = "Loving"
)

// Emotions lists every label in display order.
var Emotions = []Emotion{Calm, Angry, Fearful, Conflicted, Loving}

// ParseEmotion accepts a label in any case. The empty string means no
// emotion.
func ParseEmotion(s string) (Emotion, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	for _, e := range Emotions {
		if strings.EqualFold(string(e), s) {
			return e, nil
		}
	}
	return "", fmt.Errorf("unknown emotion %q", s)
}

// Beat is one line of a script as the actor rehearses it.
type Beat struct {
	ID        string  `json:"id" yaml:"id,omitempty"`
	Text      string  `json:"text" yaml:"text"`
	Emotion   Emotion `json:"emotion,omitempty" yaml:"emotion,omitempty"`
	HasPause  bool    `json:"has_pause" yaml:"pause,omitempty"`
	Intensity float64 `json:"intensity" yaml:"intensity,omitempty"`
}

// NewBeat returns a beat with a fresh ID and the default intensity.
func NewBeat(text string) Beat {
	return Beat{ID: uuid.NewString(), Text: text, Intensity: DefaultIntensity}
}

func isBreak(r rune) bool {
	switch r {
	case '.', '?', '!', '\n':
		return true
	}
	return false
}

// Split breaks text into sentences on '.', '?', '!' and newlines, trims
// each and drops the empty ones.
func Split(text string) []string {
	parts := strings.FieldsFunc(text, isBreak)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ParseBeats splits text into beats with fresh IDs.
func ParseBeats(text string) []Beat {
	lines := Split(text)
	beats := make([]Beat, len(lines))
	for i, l := range lines {
		beats[i] = NewBeat(l)
	}
	return beats
}
