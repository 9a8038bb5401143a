//go:build !js && !wasm

package stagecue

import (
	"context"
	"encoding/json"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himanishpuri/StageCue/pkg/logger"
	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/align"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
	"github.com/himanishpuri/StageCue/pkg/stagecue/script"
)

var villain = guidance.CharacterContext{
	Origin:      "Confrontation",
	Destination: "Dominance",
	Intent:      "Threaten",
	Motivation:  "Controlled power",
}

func newTestService(t *testing.T, opts ...Option) Service {
	t.Helper()
	quiet := logger.New(logger.Config{Level: logger.ERROR, Output: io.Discard})
	base := []Option{
		WithDBPath(filepath.Join(t.TempDir(), "test.sqlite3")),
		WithTempDir(t.TempDir()),
		WithLogger(quiet),
	}
	svc, err := NewService(append(base, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestImportAndListScripts(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	sc, err := svc.ImportScript(ctx, "Villain", "You will leave. Now! Do you understand?", villain)
	require.NoError(t, err)
	require.NotEmpty(t, sc.ID)
	require.Len(t, sc.Beats, 3)
	assert.Equal(t, "Now", sc.Beats[1].Text)
	assert.Equal(t, script.DefaultIntensity, sc.Beats[0].Intensity)

	got, err := svc.GetScript(sc.ID)
	require.NoError(t, err)
	assert.Equal(t, villain, got.Context)
	assert.Equal(t, sc.Beats[2].ID, got.Beats[2].ID)

	list, err := svc.ListScripts()
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 3, list[0].BeatCount)
	assert.Equal(t, "Threaten", list[0].Intent)

	require.NoError(t, svc.DeleteScript(sc.ID))
	_, err = svc.GetScript(sc.ID)
	assert.ErrorIs(t, err, ErrScriptNotFound)
	assert.ErrorIs(t, svc.DeleteScript(sc.ID), ErrScriptNotFound)
}

func TestImportEmptyScript(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.ImportScript(context.Background(), "Blank", " \n ... ", guidance.CharacterContext{})
	assert.ErrorIs(t, err, ErrEmptyScript)
}

func TestImportScriptFile(t *testing.T) {
	svc := newTestService(t)
	path := filepath.Join(t.TempDir(), "othello.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`title: Othello
context:
  intent: Confess
  motivation: Fear
text: |
  It is the cause, it is the cause, my soul.
  Let me not name it to you.
`), 0o644))

	sc, err := svc.ImportScriptFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "Othello", sc.Title)
	assert.Equal(t, "Confess", sc.Context.Intent)
	assert.Len(t, sc.Beats, 2)
}

func TestImportSamples(t *testing.T) {
	svc := newTestService(t)
	scripts, err := svc.ImportSamples(context.Background())
	require.NoError(t, err)
	assert.Len(t, scripts, len(script.Samples()))

	list, err := svc.ListScripts()
	require.NoError(t, err)
	assert.Len(t, list, len(scripts))
}

func TestUpdateBeat(t *testing.T) {
	svc := newTestService(t)
	sc, err := svc.ImportScript(context.Background(), "Lines", "First line. Second line.", guidance.CharacterContext{})
	require.NoError(t, err)

	beat := sc.Beats[1]
	beat.Text = "Second line, rewritten"
	beat.Emotion = "Angry"
	beat.HasPause = true
	beat.Intensity = 0

	updated, err := svc.UpdateBeat(beat)
	require.NoError(t, err)
	assert.Equal(t, "Second line, rewritten", updated.Text)
	assert.Equal(t, string(script.Angry), updated.Emotion)
	assert.True(t, updated.HasPause)
	assert.Zero(t, updated.Intensity)
	assert.Equal(t, 1, updated.Position)

	bad := beat
	bad.Emotion = "bored"
	_, err = svc.UpdateBeat(bad)
	assert.ErrorIs(t, err, ErrInvalidBeat)

	bad = beat
	bad.Intensity = 11
	_, err = svc.UpdateBeat(bad)
	assert.ErrorIs(t, err, ErrInvalidBeat)

	bad = beat
	bad.ID = "no-such-beat"
	_, err = svc.UpdateBeat(bad)
	assert.ErrorIs(t, err, ErrBeatNotFound)
}

func TestCheckRecitation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sc, err := svc.ImportScript(ctx, "Cat", "The cat sat on the mat.\nIt was happy.", guidance.CharacterContext{})
	require.NoError(t, err)

	report, err := svc.CheckRecitation(ctx, sc.ID, sc.Beats[0].ID, "the cat sat on a mat")
	require.NoError(t, err)
	assert.Equal(t, "The cat sat on the mat", report.Expected)
	require.Len(t, report.Words, 6)
	assert.Equal(t, align.Substitution.String(), report.Words[4].Kind)
	assert.Equal(t, 5, report.Summary.Correct)
	assert.InDelta(t, 5.0/6.0, report.Summary.Accuracy, 1e-9)
	require.NotEmpty(t, report.TakeID)

	take, err := svc.GetTake(report.TakeID)
	require.NoError(t, err)
	assert.Equal(t, models.KindMemorization, take.Kind)
	assert.Equal(t, sc.Beats[0].ID, take.BeatID)
	assert.Equal(t, "5/6 words correct", take.Summary)

	var detail RecitationReport
	require.NoError(t, json.Unmarshal([]byte(take.Detail), &detail))
	assert.Equal(t, report.Summary, detail.Summary)

	whole, err := svc.CheckRecitation(ctx, sc.ID, "", "")
	require.NoError(t, err)
	assert.Equal(t, 9, whole.Summary.Missing)
	assert.Zero(t, whole.Summary.Accuracy)

	_, err = svc.CheckRecitation(ctx, sc.ID, "missing-beat", "x")
	assert.ErrorIs(t, err, ErrBeatNotFound)
	_, err = svc.CheckRecitation(ctx, "missing-script", "", "x")
	assert.ErrorIs(t, err, ErrScriptNotFound)

	takes, err := svc.ListTakes(sc.ID, 0)
	require.NoError(t, err)
	assert.Len(t, takes, 2)
}

func TestScorePerformanceUsesScriptContext(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	sc, err := svc.ImportScript(ctx, "Villain", "You will leave now.", villain)
	require.NoError(t, err)

	metrics := scoring.PerformanceMetrics{
		AverageAmplitude:   0.5,
		PeakAmplitude:      0.8,
		AmplitudeVariation: 0.2,
		DurationSec:        4,
		SilenceRatio:       0.1,
	}
	report, err := svc.ScorePerformance(ctx, PerformanceRequest{ScriptID: sc.ID}, metrics)
	require.NoError(t, err)

	assert.Equal(t, villain, report.Context)
	assert.Equal(t, scoring.Analyze(villain, metrics), report.Result)
	assert.Equal(t, guidance.Derive(villain), report.Guidance)

	take, err := svc.GetTake(report.TakeID)
	require.NoError(t, err)
	assert.Equal(t, models.KindPerformance, take.Kind)
	assert.Equal(t, report.Result.Score, take.Score)

	// beat alone resolves its script
	report, err = svc.ScorePerformance(ctx, PerformanceRequest{BeatID: sc.Beats[0].ID, Context: villain}, metrics)
	require.NoError(t, err)
	assert.Equal(t, sc.ID, report.ScriptID)

	// explicit context wins over the script's
	other := guidance.CharacterContext{Intent: "Comfort", Motivation: "Love"}
	report, err = svc.ScorePerformance(ctx, PerformanceRequest{ScriptID: sc.ID, Context: other}, metrics)
	require.NoError(t, err)
	assert.Equal(t, other, report.Context)

	_, err = svc.ScorePerformance(ctx, PerformanceRequest{BeatID: "nope"}, metrics)
	assert.ErrorIs(t, err, ErrBeatNotFound)
}

func TestScorePerformanceBeatOnlyUsesScriptContext(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	plea := guidance.CharacterContext{Intent: "Plead", Motivation: "Desperation"}
	sc, err := svc.ImportScript(ctx, "Plea", "Please don't go.\nNot tonight.", plea)
	require.NoError(t, err)

	metrics := scoring.PerformanceMetrics{AverageAmplitude: 0.1, DurationSec: 3, SilenceRatio: 0.3}
	report, err := svc.ScorePerformance(ctx, PerformanceRequest{BeatID: sc.Beats[1].ID}, metrics)
	require.NoError(t, err)

	assert.Equal(t, sc.ID, report.ScriptID)
	assert.Equal(t, sc.Beats[1].ID, report.BeatID)
	assert.Equal(t, plea, report.Context)
	assert.Equal(t, "Desperate, vulnerable", report.Guidance.Characteristics.Energy)
	assert.Equal(t, scoring.Analyze(plea, metrics), report.Result)
}

func TestScorePerformanceWithoutScript(t *testing.T) {
	svc := newTestService(t)
	report, err := svc.ScorePerformance(context.Background(), PerformanceRequest{}, scoring.PerformanceMetrics{})
	require.NoError(t, err)
	assert.Equal(t, guidance.Fallback.Characteristics, report.Guidance.Characteristics)
	assert.GreaterOrEqual(t, report.Result.Score, scoring.MinScore)
}

func TestWithGuidance(t *testing.T) {
	custom := guidance.DeriverFunc(func(guidance.CharacterContext) guidance.DeliveryGuidance {
		return guidance.DeliveryGuidance{
			Tips:            []string{"Whisper"},
			Characteristics: guidance.VocalCharacteristics{Energy: "Low, restrained", Pace: "Slow"},
		}
	})
	svc := newTestService(t, WithGuidance(custom))

	assert.Equal(t, []string{"Whisper"}, svc.Guidance(villain).Tips)

	report, err := svc.ScorePerformance(context.Background(), PerformanceRequest{Context: villain}, scoring.PerformanceMetrics{})
	require.NoError(t, err)
	assert.Equal(t, "Low, restrained", report.Guidance.Characteristics.Energy)
}

func writeTone(t *testing.T, path string, rate int, seconds float64) {
	t.Helper()
	n := int(float64(rate) * seconds)
	data := make([]int, n)
	for i := range data {
		data[i] = int(8000 * math.Sin(2*math.Pi*220*float64(i)/float64(rate)))
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	enc := wav.NewEncoder(f, rate, 16, 1, 1)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: rate},
		Data:           data,
		SourceBitDepth: 16,
	}
	require.NoError(t, enc.Write(buf))
	require.NoError(t, enc.Close())
}

func TestPerformRecording(t *testing.T) {
	svc := newTestService(t)
	path := filepath.Join(t.TempDir(), "take.wav")
	writeTone(t, path, 16000, 2)

	report, err := svc.PerformRecording(context.Background(), PerformanceRequest{Context: villain}, path)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, report.Metrics.DurationSec, 0.1)
	assert.Greater(t, report.Metrics.AverageAmplitude, 0.0)
	assert.NotEmpty(t, report.Metrics.AmplitudeHistory)
	assert.NotEmpty(t, report.TakeID)

	_, err = svc.PerformRecording(context.Background(), PerformanceRequest{}, filepath.Join(t.TempDir(), "none.wav"))
	assert.Error(t, err)
}

func TestGetTakeNotFound(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.GetTake("nope")
	assert.ErrorIs(t, err, ErrTakeNotFound)
	assert.True(t, IsNotFound(err))
}

func TestCheckText(t *testing.T) {
	r := CheckText("meet me there", "meat me their")
	require.Len(t, r.Words, 3)
	assert.True(t, r.Words[0].SoundsAlike)
	assert.Empty(t, r.TakeID)
	assert.Equal(t, 2, r.Summary.SoundsAlike)
}
