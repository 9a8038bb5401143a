//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

const DefaultDBFile = "stagecue.sqlite3"
const errDBClientNil = "db client is nil"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Script struct {
	ID          string `gorm:"primaryKey;type:varchar(36)"`
	Title       string `gorm:"index:idx_script_title"`
	RawText     string `gorm:"type:text"`
	Origin      string
	Destination string
	Intent      string
	Motivation  string
	Beats       []Beat `gorm:"constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time
}

type Beat struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	ScriptID  string `gorm:"type:varchar(36);index:idx_beat_script,priority:1"`
	Position  int    `gorm:"index:idx_beat_script,priority:2"`
	Text      string `gorm:"type:text"`
	Emotion   string
	HasPause  bool
	Intensity float64
}

type Take struct {
	ID         string `gorm:"primaryKey;type:varchar(36)"`
	ScriptID   string `gorm:"type:varchar(36);index:idx_take_script"`
	BeatID     string `gorm:"type:varchar(36);index:idx_take_beat"`
	Kind       string `gorm:"index:idx_take_kind"`
	Score      float64
	Accuracy   float64
	Transcript string `gorm:"type:text"`
	Summary    string
	Detail     string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"index:idx_take_created"`
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("STAGECUE_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_pragma=foreign_keys(1)"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Script{}, &Beat{}, &Take{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

func (c *DBClient) ready() error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	return nil
}

// CreateScript stores a script and its beats in one transaction. Missing
// IDs are generated and beat positions are renumbered to slice order; the
// assigned values are written back into s.
func (c *DBClient) CreateScript(s *models.Script) error {
	if err := c.ready(); err != nil {
		return err
	}
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	for i := range s.Beats {
		if s.Beats[i].ID == "" {
			s.Beats[i].ID = uuid.NewString()
		}
		s.Beats[i].ScriptID = s.ID
		s.Beats[i].Position = i
	}

	row := scriptRow(s)
	err := c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Beats").Create(&row).Error; err != nil {
			return fmt.Errorf("creating script: %w", err)
		}
		if len(row.Beats) > 0 {
			if err := tx.CreateInBatches(row.Beats, 100).Error; err != nil {
				return fmt.Errorf("creating beats: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.CreatedAt = row.CreatedAt
	return nil
}

// GetScript loads a script with its beats in order. It returns
// gorm.ErrRecordNotFound for an unknown id.
func (c *DBClient) GetScript(id string) (*models.Script, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var row Script
	err := c.DB.Preload("Beats", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, err
	}
	return row.toModel(), nil
}

// ListScripts returns every script, newest first, with beat counts.
func (c *DBClient) ListScripts() ([]models.ScriptSummary, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var rows []struct {
		ID         string
		Title      string
		Intent     string
		Motivation string
		BeatCount  int
		CreatedAt  time.Time
	}
	err := c.DB.Model(&Script{}).
		Select("scripts.id, scripts.title, scripts.intent, scripts.motivation, scripts.created_at, COUNT(beats.id) AS beat_count").
		Joins("LEFT JOIN beats ON beats.script_id = scripts.id").
		Group("scripts.id").
		Order("scripts.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing scripts: %w", err)
	}

	out := make([]models.ScriptSummary, len(rows))
	for i, r := range rows {
		out[i] = models.ScriptSummary{
			ID:         r.ID,
			Title:      r.Title,
			Intent:     r.Intent,
			Motivation: r.Motivation,
			BeatCount:  r.BeatCount,
			CreatedAt:  r.CreatedAt,
		}
	}
	return out, nil
}

// DeleteScriptByID removes a script with its beats and takes.
func (c *DBClient) DeleteScriptByID(id string) error {
	if err := c.ready(); err != nil {
		return err
	}
	return c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("script_id = ?", id).Delete(&Take{}).Error; err != nil {
			return err
		}
		if err := tx.Where("script_id = ?", id).Delete(&Beat{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&Script{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetBeat loads one beat.
func (c *DBClient) GetBeat(id string) (*models.Beat, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var row Beat
	if err := c.DB.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	b := row.toModel()
	return &b, nil
}

// UpdateBeat overwrites a beat's text, emotion, pause and intensity. The
// script and position are left alone.
func (c *DBClient) UpdateBeat(b models.Beat) error {
	if err := c.ready(); err != nil {
		return err
	}
	res := c.DB.Model(&Beat{ID: b.ID}).
		Select("Text", "Emotion", "HasPause", "Intensity").
		Updates(Beat{Text: b.Text, Emotion: b.Emotion, HasPause: b.HasPause, Intensity: b.Intensity})
	if res.Error != nil {
		return fmt.Errorf("updating beat: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CreateTake stores a take, filling in its ID and CreatedAt.
func (c *DBClient) CreateTake(t *models.Take) error {
	if err := c.ready(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	row := takeRow(t)
	if err := c.DB.Create(&row).Error; err != nil {
		return fmt.Errorf("creating take: %w", err)
	}
	t.CreatedAt = row.CreatedAt
	return nil
}

// GetTake loads one take.
func (c *DBClient) GetTake(id string) (*models.Take, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	var row Take
	if err := c.DB.Where("id = ?", id).First(&row).Error; err != nil {
		return nil, err
	}
	t := row.toModel()
	return &t, nil
}

// ListTakes returns the takes of a script, newest first. limit <= 0 means
// no limit.
func (c *DBClient) ListTakes(scriptID string, limit int) ([]models.Take, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	q := c.DB.Where("script_id = ?", scriptID).Order("created_at DESC").Order("id")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var rows []Take
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("listing takes: %w", err)
	}
	out := make([]models.Take, len(rows))
	for i, r := range rows {
		out[i] = r.toModel()
	}
	return out, nil
}

func scriptRow(s *models.Script) Script {
	row := Script{
		ID:          s.ID,
		Title:       s.Title,
		RawText:     s.RawText,
		Origin:      s.Context.Origin,
		Destination: s.Context.Destination,
		Intent:      s.Context.Intent,
		Motivation:  s.Context.Motivation,
		Beats:       make([]Beat, len(s.Beats)),
	}
	for i, b := range s.Beats {
		row.Beats[i] = Beat{
			ID:        b.ID,
			ScriptID:  b.ScriptID,
			Position:  b.Position,
			Text:      b.Text,
			Emotion:   b.Emotion,
			HasPause:  b.HasPause,
			Intensity: b.Intensity,
		}
	}
	return row
}

func (r Script) toModel() *models.Script {
	s := &models.Script{
		ID:      r.ID,
		Title:   r.Title,
		RawText: r.RawText,
		Context: guidance.CharacterContext{
			Origin:      r.Origin,
			Destination: r.Destination,
			Intent:      r.Intent,
			Motivation:  r.Motivation,
		},
		Beats:     make([]models.Beat, len(r.Beats)),
		CreatedAt: r.CreatedAt,
	}
	for i, b := range r.Beats {
		s.Beats[i] = b.toModel()
	}
	return s
}

func (b Beat) toModel() models.Beat {
	return models.Beat{
		ID:        b.ID,
		ScriptID:  b.ScriptID,
		Position:  b.Position,
		Text:      b.Text,
		Emotion:   b.Emotion,
		HasPause:  b.HasPause,
		Intensity: b.Intensity,
	}
}

func takeRow(t *models.Take) Take {
	return Take{
		ID:         t.ID,
		ScriptID:   t.ScriptID,
		BeatID:     t.BeatID,
		Kind:       string(t.Kind),
		Score:      t.Score,
		Accuracy:   t.Accuracy,
		Transcript: t.Transcript,
		Summary:    t.Summary,
		Detail:     t.Detail,
	}
}

func (t Take) toModel() models.Take {
	return models.Take{
		ID:         t.ID,
		ScriptID:   t.ScriptID,
		BeatID:     t.BeatID,
		Kind:       models.TakeKind(t.Kind),
		Score:      t.Score,
		Accuracy:   t.Accuracy,
		Transcript: t.Transcript,
		Summary:    t.Summary,
		Detail:     t.Detail,
		CreatedAt:  t.CreatedAt,
	}
}
