//go:build !js && !wasm

package stagecue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/himanishpuri/StageCue/pkg/logger"
	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/audio"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
	"github.com/himanishpuri/StageCue/pkg/stagecue/script"
)

// rehearsalService is the default implementation of the Service interface.
type rehearsalService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.Guidance == nil {
		cfg.Guidance = guidance.Default
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &rehearsalService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// ImportScript splits text into beats and stores it as a new script.
func (s *rehearsalService) ImportScript(ctx context.Context, title, text string, cc guidance.CharacterContext) (*models.Script, error) {
	f, err := script.Parse([]byte(text), "")
	if err != nil {
		return nil, err
	}
	f.Title = title
	f.Context = cc
	return s.store(f)
}

// ImportScriptFile stores a plain text or YAML script file.
func (s *rehearsalService) ImportScriptFile(ctx context.Context, path string) (*models.Script, error) {
	f, err := script.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return s.store(f)
}

// ImportSamples stores every built-in monologue as its own script.
func (s *rehearsalService) ImportSamples(ctx context.Context) ([]*models.Script, error) {
	var out []*models.Script
	for _, sample := range script.Samples() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		sc, err := s.ImportScript(ctx, sample.Title, sample.Text, sample.Context)
		if err != nil {
			return out, fmt.Errorf("importing %s: %w", sample.Title, err)
		}
		out = append(out, sc)
	}
	return out, nil
}

func (s *rehearsalService) store(f *script.File) (*models.Script, error) {
	if strings.TrimSpace(f.Title) == "" {
		f.Title = "Untitled"
	}
	sc := &models.Script{
		Title:   f.Title,
		RawText: f.Text,
		Context: f.Context,
		Beats:   make([]models.Beat, len(f.Beats)),
	}
	for i, b := range f.Beats {
		sc.Beats[i] = models.Beat{
			ID:        b.ID,
			Text:      b.Text,
			Emotion:   string(b.Emotion),
			HasPause:  b.HasPause,
			Intensity: b.Intensity,
		}
	}

	if err := s.storage.CreateScript(sc); err != nil {
		return nil, fmt.Errorf("failed to store script: %w", err)
	}
	s.log.Infof("Stored script %q (%s) with %d beats", sc.Title, sc.ID, len(sc.Beats))
	return sc, nil
}

func (s *rehearsalService) GetScript(scriptID string) (*models.Script, error) {
	return s.storage.GetScript(scriptID)
}

func (s *rehearsalService) ListScripts() ([]models.ScriptSummary, error) {
	return s.storage.ListScripts()
}

// DeleteScript removes a script with its beats and takes.
func (s *rehearsalService) DeleteScript(scriptID string) error {
	if err := s.storage.DeleteScriptByID(scriptID); err != nil {
		return err
	}
	s.log.Infof("Deleted script %s", scriptID)
	return nil
}

func (s *rehearsalService) GetBeat(beatID string) (*models.Beat, error) {
	return s.storage.GetBeat(beatID)
}

// UpdateBeat edits a beat's text, emotion, pause and intensity. Position and
// owning script never change.
func (s *rehearsalService) UpdateBeat(beat models.Beat) (*models.Beat, error) {
	if strings.TrimSpace(beat.Text) == "" {
		return nil, fmt.Errorf("%w: empty text", ErrInvalidBeat)
	}
	if beat.Emotion != "" {
		e, err := script.ParseEmotion(beat.Emotion)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidBeat, err)
		}
		beat.Emotion = string(e)
	}
	if beat.Intensity < 0 || beat.Intensity > 10 {
		return nil, fmt.Errorf("%w: intensity %.1f outside 0-10", ErrInvalidBeat, beat.Intensity)
	}

	if err := s.storage.UpdateBeat(beat); err != nil {
		return nil, err
	}
	return s.storage.GetBeat(beat.ID)
}

func (s *rehearsalService) Guidance(cc guidance.CharacterContext) guidance.DeliveryGuidance {
	return s.config.Guidance.Derive(cc)
}

// CheckRecitation aligns a transcript with a beat, or with the whole script
// when beatID is empty, and records the take.
func (s *rehearsalService) CheckRecitation(ctx context.Context, scriptID, beatID, transcript string) (*RecitationReport, error) {
	sc, err := s.storage.GetScript(scriptID)
	if err != nil {
		return nil, err
	}

	expected := sc.Text()
	if beatID != "" {
		beat, err := findBeat(sc, beatID)
		if err != nil {
			return nil, err
		}
		expected = beat.Text
	}

	report := CheckText(expected, transcript)
	report.ScriptID = sc.ID
	report.BeatID = beatID

	take := &models.Take{
		ScriptID:   sc.ID,
		BeatID:     beatID,
		Kind:       models.KindMemorization,
		Accuracy:   report.Summary.Accuracy,
		Transcript: transcript,
		Summary: fmt.Sprintf("%d/%d words correct",
			report.Summary.Correct, report.Summary.Correct+report.Summary.Substituted+report.Summary.Missing),
	}
	if err := s.saveTake(take, report); err != nil {
		return nil, err
	}
	report.TakeID = take.ID

	s.log.Debugf("Recitation take %s: accuracy %.2f, %d edits",
		take.ID, report.Summary.Accuracy, report.Summary.EditDistance)
	return report, nil
}

// ScorePerformance scores measured metrics against the request's character
// context and records the take. A zero context falls back to the script's.
func (s *rehearsalService) ScorePerformance(ctx context.Context, req PerformanceRequest, metrics scoring.PerformanceMetrics) (*PerformanceReport, error) {
	cc := req.Context
	if req.ScriptID != "" {
		sc, err := s.storage.GetScript(req.ScriptID)
		if err != nil {
			return nil, err
		}
		if req.BeatID != "" {
			if _, err := findBeat(sc, req.BeatID); err != nil {
				return nil, err
			}
		}
		if cc.IsZero() {
			cc = sc.Context
		}
	} else if req.BeatID != "" {
		beat, err := s.storage.GetBeat(req.BeatID)
		if err != nil {
			return nil, err
		}
		sc, err := s.storage.GetScript(beat.ScriptID)
		if err != nil {
			return nil, err
		}
		req.ScriptID = sc.ID
		if cc.IsZero() {
			cc = sc.Context
		}
	}

	dg := s.config.Guidance.Derive(cc)
	result := scoring.Evaluate(cc, dg.Characteristics, metrics)
	report := &PerformanceReport{
		ScriptID: req.ScriptID,
		BeatID:   req.BeatID,
		Context:  cc,
		Guidance: dg,
		Metrics:  metrics,
		Result:   result,
	}

	take := &models.Take{
		ScriptID: req.ScriptID,
		BeatID:   req.BeatID,
		Kind:     models.KindPerformance,
		Score:    result.Score,
		Summary:  result.Summary,
	}
	if err := s.saveTake(take, report); err != nil {
		return nil, err
	}
	report.TakeID = take.ID

	s.log.Debugf("Performance take %s: score %.1f", take.ID, result.Score)
	return report, nil
}

// AnalyzeRecording measures loudness, variation and silence in an audio file.
func (s *rehearsalService) AnalyzeRecording(ctx context.Context, audioPath string) (scoring.PerformanceMetrics, error) {
	s.log.Infof("Analyzing recording: %s", audioPath)

	if info, err := audio.ProbeRecording(ctx, audioPath); err != nil {
		s.log.Debugf("ffprobe unavailable for %s: %v", audioPath, err)
	} else {
		s.log.Debugf("Recording %s: %s, %d Hz, %d channel(s), %.1fs",
			audioPath, info.Codec, info.SampleRate, info.Channels, info.DurationSec)
	}

	metrics, err := audio.AnalyzeFile(ctx, audioPath, audio.AnalyzeConfig{
		TempDir:    s.config.TempDir,
		SampleRate: s.config.SampleRate,
		Meter:      s.config.Meter,
	})
	if err != nil {
		return scoring.PerformanceMetrics{}, fmt.Errorf("audio analysis failed: %w", err)
	}
	return metrics, nil
}

// PerformRecording analyzes a recording and scores it in one step.
func (s *rehearsalService) PerformRecording(ctx context.Context, req PerformanceRequest, audioPath string) (*PerformanceReport, error) {
	metrics, err := s.AnalyzeRecording(ctx, audioPath)
	if err != nil {
		return nil, err
	}
	return s.ScorePerformance(ctx, req, metrics)
}

func (s *rehearsalService) ListTakes(scriptID string, limit int) ([]models.Take, error) {
	return s.storage.ListTakes(scriptID, limit)
}

func (s *rehearsalService) GetTake(takeID string) (*models.Take, error) {
	return s.storage.GetTake(takeID)
}

func (s *rehearsalService) Close() error {
	return s.storage.Close()
}

func (s *rehearsalService) saveTake(take *models.Take, report any) error {
	detail, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding take detail: %w", err)
	}
	take.ID = uuid.NewString()
	take.Detail = string(detail)
	take.CreatedAt = time.Now().UTC()
	if err := s.storage.CreateTake(take); err != nil {
		return fmt.Errorf("failed to store take: %w", err)
	}
	return nil
}

func findBeat(sc *models.Script, beatID string) (*models.Beat, error) {
	for i := range sc.Beats {
		if sc.Beats[i].ID == beatID {
			return &sc.Beats[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s in script %s", ErrBeatNotFound, beatID, sc.ID)
}

// IsNotFound reports whether err means a script, beat or take does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrScriptNotFound) || errors.Is(err, ErrBeatNotFound) || errors.Is(err, ErrTakeNotFound)
}
