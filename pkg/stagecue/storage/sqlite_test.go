//go:build !js && !wasm

package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/himanishpuri/StageCue/pkg/models"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

// Helper function to create a temporary test database
func setupTestDB(t *testing.T) (*DBClient, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_stagecue.sqlite3")
	t.Setenv("STAGECUE_DB_PATH", dbPath)

	client, err := NewDBClient()
	if err != nil {
		t.Fatalf("Failed to create test DB client: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})

	return client, dbPath
}

func sampleScript() *models.Script {
	return &models.Script{
		Title:   "Othello",
		RawText: "It is the cause. Put out the light.",
		Context: guidance.CharacterContext{Intent: "Threaten", Motivation: "Desperation"},
		Beats: []models.Beat{
			{Text: "It is the cause", Intensity: 5},
			{Text: "Put out the light", Emotion: "Conflicted", HasPause: true, Intensity: 7},
		},
	}
}

func TestNewDBClient(t *testing.T) {
	client, dbPath := setupTestDB(t)

	if client.DB == nil || client.db == nil {
		t.Fatal("Expected non-nil database handles")
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("Database file was not created at %s", dbPath)
	}
	for _, table := range []any{&Script{}, &Beat{}, &Take{}} {
		if !client.DB.Migrator().HasTable(table) {
			t.Errorf("table for %T was not migrated", table)
		}
	}
}

func TestNilClient(t *testing.T) {
	var client *DBClient
	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
	if _, err := client.GetScript("x"); err == nil {
		t.Error("expected error from nil client")
	}
}

func TestCreateAndGetScript(t *testing.T) {
	client, _ := setupTestDB(t)

	s := sampleScript()
	if err := client.CreateScript(s); err != nil {
		t.Fatalf("CreateScript failed: %v", err)
	}
	if s.ID == "" || s.CreatedAt.IsZero() {
		t.Fatal("CreateScript should fill ID and CreatedAt")
	}
	for i, b := range s.Beats {
		if b.ID == "" || b.ScriptID != s.ID || b.Position != i {
			t.Errorf("beat %d not stamped: %+v", i, b)
		}
	}

	got, err := client.GetScript(s.ID)
	if err != nil {
		t.Fatalf("GetScript failed: %v", err)
	}
	if got.Title != "Othello" || got.Context.Intent != "Threaten" || got.RawText != s.RawText {
		t.Errorf("unexpected script: %+v", got)
	}
	if len(got.Beats) != 2 {
		t.Fatalf("expected 2 beats, got %d", len(got.Beats))
	}
	if got.Beats[0].Text != "It is the cause" || got.Beats[1].Text != "Put out the light" {
		t.Errorf("beats out of order: %+v", got.Beats)
	}
	if !got.Beats[1].HasPause || got.Beats[1].Emotion != "Conflicted" || got.Beats[1].Intensity != 7 {
		t.Errorf("beat fields lost: %+v", got.Beats[1])
	}

	if _, err := client.GetScript("missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestListScripts(t *testing.T) {
	client, _ := setupTestDB(t)

	list, err := client.ListScripts()
	if err != nil {
		t.Fatalf("ListScripts failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %d", len(list))
	}

	a := sampleScript()
	b := &models.Script{Title: "Empty"}
	for _, s := range []*models.Script{a, b} {
		if err := client.CreateScript(s); err != nil {
			t.Fatalf("CreateScript failed: %v", err)
		}
	}

	list, err = client.ListScripts()
	if err != nil {
		t.Fatalf("ListScripts failed: %v", err)
	}
	counts := map[string]int{}
	for _, row := range list {
		counts[row.Title] = row.BeatCount
	}
	if counts["Othello"] != 2 || counts["Empty"] != 0 || len(list) != 2 {
		t.Errorf("unexpected listing: %+v", list)
	}
}

func TestUpdateBeat(t *testing.T) {
	client, _ := setupTestDB(t)
	s := sampleScript()
	if err := client.CreateScript(s); err != nil {
		t.Fatalf("CreateScript failed: %v", err)
	}

	b := s.Beats[1]
	b.Text = "Put out the light, and then put out the light"
	b.HasPause = false
	b.Emotion = ""
	b.Intensity = 9
	b.Position = 42
	if err := client.UpdateBeat(b); err != nil {
		t.Fatalf("UpdateBeat failed: %v", err)
	}

	got, err := client.GetBeat(b.ID)
	if err != nil {
		t.Fatalf("GetBeat failed: %v", err)
	}
	if got.Text != b.Text || got.HasPause || got.Emotion != "" || got.Intensity != 9 {
		t.Errorf("update not applied: %+v", got)
	}
	if got.Position != 1 {
		t.Errorf("position must not change, got %d", got.Position)
	}

	if err := client.UpdateBeat(models.Beat{ID: "missing", Text: "x"}); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestTakes(t *testing.T) {
	client, _ := setupTestDB(t)
	s := sampleScript()
	if err := client.CreateScript(s); err != nil {
		t.Fatalf("CreateScript failed: %v", err)
	}

	takes := []*models.Take{
		{ScriptID: s.ID, BeatID: s.Beats[0].ID, Kind: models.KindMemorization, Accuracy: 0.75, Transcript: "it is the course"},
		{ScriptID: s.ID, Kind: models.KindPerformance, Score: 4.1, Summary: "Strong delivery"},
	}
	for _, tk := range takes {
		if err := client.CreateTake(tk); err != nil {
			t.Fatalf("CreateTake failed: %v", err)
		}
		if tk.ID == "" || tk.CreatedAt.IsZero() {
			t.Fatal("CreateTake should fill ID and CreatedAt")
		}
	}

	list, err := client.ListTakes(s.ID, 0)
	if err != nil {
		t.Fatalf("ListTakes failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 takes, got %d", len(list))
	}

	limited, err := client.ListTakes(s.ID, 1)
	if err != nil {
		t.Fatalf("ListTakes failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("expected 1 take, got %d", len(limited))
	}

	got, err := client.GetTake(takes[0].ID)
	if err != nil {
		t.Fatalf("GetTake failed: %v", err)
	}
	if got.Kind != models.KindMemorization || got.Accuracy != 0.75 || got.Transcript != "it is the course" {
		t.Errorf("unexpected take: %+v", got)
	}
}

func TestDeleteScriptByID(t *testing.T) {
	client, _ := setupTestDB(t)
	s := sampleScript()
	if err := client.CreateScript(s); err != nil {
		t.Fatalf("CreateScript failed: %v", err)
	}
	if err := client.CreateTake(&models.Take{ScriptID: s.ID, Kind: models.KindPerformance, Score: 3}); err != nil {
		t.Fatalf("CreateTake failed: %v", err)
	}

	if err := client.DeleteScriptByID(s.ID); err != nil {
		t.Fatalf("DeleteScriptByID failed: %v", err)
	}

	if _, err := client.GetScript(s.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("script still present: %v", err)
	}
	if _, err := client.GetBeat(s.Beats[0].ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("beat still present: %v", err)
	}
	takes, err := client.ListTakes(s.ID, 0)
	if err != nil || len(takes) != 0 {
		t.Errorf("takes not removed: %v %v", takes, err)
	}

	if err := client.DeleteScriptByID(s.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("second delete should report not found, got %v", err)
	}
}
