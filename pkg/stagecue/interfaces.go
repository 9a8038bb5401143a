package stagecue

import (
	"context"

	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
)

type Service interface {
	ImportScript(ctx context.Context, title, text string, cc guidance.CharacterContext) (*models.Script, error)
	ImportScriptFile(ctx context.Context, path string) (*models.Script, error)
	ImportSamples(ctx context.Context) ([]*models.Script, error)
	GetScript(scriptID string) (*models.Script, error)
	ListScripts() ([]models.ScriptSummary, error)
	DeleteScript(scriptID string) error
	GetBeat(beatID string) (*models.Beat, error)
	UpdateBeat(beat models.Beat) (*models.Beat, error)

	Guidance(cc guidance.CharacterContext) guidance.DeliveryGuidance
	CheckRecitation(ctx context.Context, scriptID, beatID, transcript string) (*RecitationReport, error)
	ScorePerformance(ctx context.Context, req PerformanceRequest, metrics scoring.PerformanceMetrics) (*PerformanceReport, error)
	AnalyzeRecording(ctx context.Context, audioPath string) (scoring.PerformanceMetrics, error)
	PerformRecording(ctx context.Context, req PerformanceRequest, audioPath string) (*PerformanceReport, error)

	ListTakes(scriptID string, limit int) ([]models.Take, error)
	GetTake(takeID string) (*models.Take, error)
	Close() error
}

type Storage interface {
	CreateScript(script *models.Script) error
	GetScript(scriptID string) (*models.Script, error)
	ListScripts() ([]models.ScriptSummary, error)
	DeleteScriptByID(scriptID string) error
	GetBeat(beatID string) (*models.Beat, error)
	UpdateBeat(beat models.Beat) error
	CreateTake(take *models.Take) error
	GetTake(takeID string) (*models.Take, error)
	ListTakes(scriptID string, limit int) ([]models.Take, error)
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
