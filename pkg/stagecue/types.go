package stagecue

import (
	"github.com/himanishpuri/StageCue/pkg/stagecue/align"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
)

// WordResult is one aligned word of a recitation.
type WordResult struct {
	Kind        string  `json:"kind"` // correct, substitution, missing, extra
	Expected    string  `json:"expected,omitempty"`
	Actual      string  `json:"actual,omitempty"`
	Similarity  float64 `json:"similarity,omitempty"`
	SoundsAlike bool    `json:"sounds_alike,omitempty"`
}

// NewWordResults converts an alignment for display or encoding.
func NewWordResults(results []align.Result) []WordResult {
	out := make([]WordResult, len(results))
	for i, r := range results {
		out[i] = WordResult{
			Kind:        r.Kind.String(),
			Expected:    r.Expected,
			Actual:      r.Actual,
			Similarity:  r.Similarity,
			SoundsAlike: r.SoundsAlike,
		}
	}
	return out
}

// RecitationReport is the word-by-word check of a memorization take.
type RecitationReport struct {
	TakeID     string        `json:"take_id,omitempty"`
	ScriptID   string        `json:"script_id,omitempty"`
	BeatID     string        `json:"beat_id,omitempty"`
	Expected   string        `json:"expected"`
	Transcript string        `json:"transcript"`
	Words      []WordResult  `json:"words"`
	Summary    align.Summary `json:"summary"`
}

// CheckText aligns a transcript against expected text without storing
// anything.
func CheckText(expected, transcript string) *RecitationReport {
	results := align.Annotate(align.Match(expected, transcript))
	return &RecitationReport{
		Expected:   expected,
		Transcript: transcript,
		Words:      NewWordResults(results),
		Summary:    align.Summarize(results),
	}
}

// PerformanceRequest says what a performance take was for. ScriptID and
// BeatID are optional; with a zero Context the script's own context is used.
type PerformanceRequest struct {
	ScriptID string                    `json:"script_id,omitempty"`
	BeatID   string                    `json:"beat_id,omitempty"`
	Context  guidance.CharacterContext `json:"context"`
}

// PerformanceReport is a scored performance take.
type PerformanceReport struct {
	TakeID   string                     `json:"take_id,omitempty"`
	ScriptID string                     `json:"script_id,omitempty"`
	BeatID   string                     `json:"beat_id,omitempty"`
	Context  guidance.CharacterContext  `json:"context"`
	Guidance guidance.DeliveryGuidance  `json:"guidance"`
	Metrics  scoring.PerformanceMetrics `json:"metrics"`
	Result   scoring.Result             `json:"result"`
}
