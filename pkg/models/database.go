package models

import "time"

// TakeKind says what a take was rehearsing.
type TakeKind string

const (
	// KindMemorization is a recitation checked word by word.
	KindMemorization TakeKind = "memorization"
	// KindPerformance is a delivery scored against its character context.
	KindPerformance TakeKind = "performance"
)

// Take is one recorded rehearsal attempt.
type Take struct {
	ID         string    `json:"id"`
	ScriptID   string    `json:"script_id,omitempty"`
	BeatID     string    `json:"beat_id,omitempty"` // empty when the whole script was rehearsed
	Kind       TakeKind  `json:"kind"`
	Score      float64   `json:"score,omitempty"`    // performance score, 2.5-5.0
	Accuracy   float64   `json:"accuracy,omitempty"` // memorization accuracy, 0-1
	Transcript string    `json:"transcript,omitempty"`
	Summary    string    `json:"summary,omitempty"`
	Detail     string    `json:"detail,omitempty"` // JSON of the full report
	CreatedAt  time.Time `json:"created_at"`
}
