//go:build !js && !wasm

package main

import (
	"fmt"
	"strings"

	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
)

// MaxScriptChars bounds the text accepted by POST /api/scripts and
// POST /api/align.
const MaxScriptChars = 100_000

// ErrorResponse is the body of every non-2xx response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

// CreateScriptRequest is the request body for POST /api/scripts
type CreateScriptRequest struct {
	Title   string                    `json:"title"`
	Text    string                    `json:"text"`
	Context guidance.CharacterContext `json:"context"`
}

func (r *CreateScriptRequest) Validate() error {
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text cannot be empty")
	}
	if len(r.Text) > MaxScriptChars {
		return fmt.Errorf("text too long: %d characters (maximum: %d)", len(r.Text), MaxScriptChars)
	}
	return nil
}

// ListScriptsResponse is the response for GET /api/scripts
type ListScriptsResponse struct {
	Scripts []models.ScriptSummary `json:"scripts"`
	Count   int                    `json:"count"`
}

// DeleteScriptResponse is the response for DELETE /api/scripts/{id}
type DeleteScriptResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// UpdateBeatRequest is the request body for PUT /api/scripts/{id}/beats/{beatID}.
// Omitted fields keep their current value.
type UpdateBeatRequest struct {
	Text      *string  `json:"text"`
	Emotion   *string  `json:"emotion"`
	HasPause  *bool    `json:"has_pause"`
	Intensity *float64 `json:"intensity"`
}

// apply copies the set fields onto b.
func (r *UpdateBeatRequest) apply(b *models.Beat) {
	if r.Text != nil {
		b.Text = *r.Text
	}
	if r.Emotion != nil {
		b.Emotion = *r.Emotion
	}
	if r.HasPause != nil {
		b.HasPause = *r.HasPause
	}
	if r.Intensity != nil {
		b.Intensity = *r.Intensity
	}
}

// ListTakesResponse is the response for GET /api/scripts/{id}/takes
type ListTakesResponse struct {
	Takes []models.Take `json:"takes"`
	Count int           `json:"count"`
}

// AlignRequest is the request body for POST /api/align
type AlignRequest struct {
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (r *AlignRequest) Validate() error {
	if len(r.Expected) > MaxScriptChars || len(r.Actual) > MaxScriptChars {
		return fmt.Errorf("text too long (maximum: %d characters)", MaxScriptChars)
	}
	return nil
}

// RecitationRequest is the request body for POST /api/recitations
type RecitationRequest struct {
	ScriptID   string `json:"script_id"`
	BeatID     string `json:"beat_id"`
	Transcript string `json:"transcript"`
}

func (r *RecitationRequest) Validate() error {
	if r.ScriptID == "" {
		return fmt.Errorf("script_id is required")
	}
	if len(r.Transcript) > MaxScriptChars {
		return fmt.Errorf("transcript too long (maximum: %d characters)", MaxScriptChars)
	}
	return nil
}

// ScoreRequest is the request body for POST /api/score and the JSON form of
// POST /api/performances
type ScoreRequest struct {
	ScriptID string                     `json:"script_id,omitempty"`
	BeatID   string                     `json:"beat_id,omitempty"`
	Context  guidance.CharacterContext  `json:"context"`
	Metrics  scoring.PerformanceMetrics `json:"metrics"`
}

func (r *ScoreRequest) Validate() error {
	m := r.Metrics
	if m.AverageAmplitude < 0 || m.PeakAmplitude < 0 || m.AmplitudeVariation < 0 {
		return fmt.Errorf("amplitudes cannot be negative")
	}
	if m.DurationSec < 0 {
		return fmt.Errorf("duration_sec cannot be negative")
	}
	if m.SilenceRatio < 0 || m.SilenceRatio > 1 {
		return fmt.Errorf("silence_ratio must be between 0 and 1, got %g", m.SilenceRatio)
	}
	return nil
}

// ScoreResponse is the response for the stateless POST /api/score
type ScoreResponse struct {
	Guidance guidance.DeliveryGuidance `json:"guidance"`
	Result   scoring.Result            `json:"result"`
}
