//go:build !js && !wasm

package stagecue

import (
	"errors"

	"gorm.io/gorm"

	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/storage"
)

// storageAdapter adapts the storage.DBClient to implement the Storage
// interface, translating missing rows into this package's sentinels.
type storageAdapter struct {
	db *storage.DBClient
}

// NewSQLiteStorage creates a new SQLite storage backend.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	db, err := storage.NewDBClientWithPath(dbPath)
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db}, nil
}

func notFound(err, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}

func (s *storageAdapter) CreateScript(script *models.Script) error {
	return s.db.CreateScript(script)
}

func (s *storageAdapter) GetScript(scriptID string) (*models.Script, error) {
	script, err := s.db.GetScript(scriptID)
	if err != nil {
		return nil, notFound(err, ErrScriptNotFound)
	}
	return script, nil
}

func (s *storageAdapter) ListScripts() ([]models.ScriptSummary, error) {
	return s.db.ListScripts()
}

func (s *storageAdapter) DeleteScriptByID(scriptID string) error {
	return notFound(s.db.DeleteScriptByID(scriptID), ErrScriptNotFound)
}

func (s *storageAdapter) GetBeat(beatID string) (*models.Beat, error) {
	beat, err := s.db.GetBeat(beatID)
	if err != nil {
		return nil, notFound(err, ErrBeatNotFound)
	}
	return beat, nil
}

func (s *storageAdapter) UpdateBeat(beat models.Beat) error {
	return notFound(s.db.UpdateBeat(beat), ErrBeatNotFound)
}

func (s *storageAdapter) CreateTake(take *models.Take) error {
	return s.db.CreateTake(take)
}

func (s *storageAdapter) GetTake(takeID string) (*models.Take, error) {
	take, err := s.db.GetTake(takeID)
	if err != nil {
		return nil, notFound(err, ErrTakeNotFound)
	}
	return take, nil
}

func (s *storageAdapter) ListTakes(scriptID string, limit int) ([]models.Take, error) {
	return s.db.ListTakes(scriptID, limit)
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}
