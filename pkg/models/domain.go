package models

import (
	"strings"
	"time"

	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

// Script is a piece of text the actor is learning, split into beats.
type Script struct {
	ID        string                    `json:"id"`    // UUID
	Title     string                    `json:"title"` // Display title
	RawText   string                    `json:"raw_text"`
	Context   guidance.CharacterContext `json:"context"`
	Beats     []Beat                    `json:"beats"` // In script order
	CreatedAt time.Time                 `json:"created_at"`
}

// Text returns the script text the beats were taken from, or the beats
// joined by newlines when no raw text was kept.
func (s *Script) Text() string {
	if s.RawText != "" {
		return s.RawText
	}
	lines := make([]string, len(s.Beats))
	for i, b := range s.Beats {
		lines[i] = b.Text
	}
	return strings.Join(lines, "\n")
}

// Beat is one rehearsable line of a script.
type Beat struct {
	ID        string  `json:"id"`
	ScriptID  string  `json:"script_id"`
	Position  int     `json:"position"` // 0-based order within the script
	Text      string  `json:"text"`
	Emotion   string  `json:"emotion,omitempty"`
	HasPause  bool    `json:"has_pause"`
	Intensity float64 `json:"intensity"` // 0-10
}

// ScriptSummary is a script listing row.
type ScriptSummary struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Intent     string    `json:"intent,omitempty"`
	Motivation string    `json:"motivation,omitempty"`
	BeatCount  int       `json:"beat_count"`
	CreatedAt  time.Time `json:"created_at"`
}
