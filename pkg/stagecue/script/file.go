package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

// File is a script as read from disk.
//
// YAML files look like:
//
//	title: Othello
//	context:
//	  intent: Threaten
//	  motivation: Desperation
//	text: |
//	  It is the cause, it is the cause, my soul.
//	beats:            # optional, replaces the split of text
//	  - text: It is the cause
//	    emotion: conflicted
//	    pause: true
//	    intensity: 7
//
// Any other file is read as plain text titled after its file name.
type File struct {
	Title   string                    `yaml:"title"`
	Text    string                    `yaml:"text"`
	Context guidance.CharacterContext `yaml:"context"`
	Beats   []Beat                    `yaml:"beats"`
}

// LoadFile reads and parses a script file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if f.Title == "" {
		base := filepath.Base(path)
		f.Title = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return f, nil
}

// Parse decodes script data. ext selects the format (".yaml" or ".yml" for
// YAML, anything else for plain text). The result always has beats, with
// IDs and intensities filled in, or ErrNoBeats is returned.
func Parse(data []byte, ext string) (*File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		f.Text = string(data)
	}

	if len(f.Beats) == 0 {
		f.Beats = ParseBeats(f.Text)
	} else if err := f.normalizeBeats(); err != nil {
		return nil, err
	}
	if len(f.Beats) == 0 {
		return nil, ErrNoBeats
	}
	if strings.TrimSpace(f.Text) == "" {
		f.Text = joinBeats(f.Beats)
	}
	return &f, nil
}

func (f *File) normalizeBeats() error {
	beats := f.Beats[:0]
	for i, b := range f.Beats {
		b.Text = strings.TrimSpace(b.Text)
		if b.Text == "" {
			continue
		}
		e, err := ParseEmotion(string(b.Emotion))
		if err != nil {
			return fmt.Errorf("beat %d: %w", i+1, err)
		}
		b.Emotion = e
		if b.ID == "" {
			b.ID = NewBeat("").ID
		}
		if b.Intensity == 0 {
			b.Intensity = DefaultIntensity
		}
		if b.Intensity < 0 || b.Intensity > 10 {
			return fmt.Errorf("beat %d: intensity %.1f out of range 0-10", i+1, b.Intensity)
		}
		beats = append(beats, b)
	}
	f.Beats = beats
	return nil
}

func joinBeats(beats []Beat) string {
	lines := make([]string, len(beats))
	for i, b := range beats {
		lines[i] = b.Text
	}
	return strings.Join(lines, "\n")
}
