package stagecue

import (
	"github.com/himanishpuri/StageCue/pkg/stagecue/audio"
	"github.com/himanishpuri/StageCue/pkg/stagecue/guidance"
)

type Config struct {
	DBPath     string
	TempDir    string
	SampleRate int
	Logger     Logger
	Storage    Storage
	Guidance   guidance.Deriver
	Meter      audio.MeterConfig
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

func WithTempDir(dir string) Option {
	return func(c *Config) {
		c.TempDir = dir
	}
}

// WithSampleRate sets the rate recordings are resampled to when they need
// converting.
func WithSampleRate(rate int) Option {
	return func(c *Config) {
		c.SampleRate = rate
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

// WithGuidance replaces the built-in delivery guidance table.
func WithGuidance(d guidance.Deriver) Option {
	return func(c *Config) {
		c.Guidance = d
	}
}

func WithMeterConfig(mc audio.MeterConfig) Option {
	return func(c *Config) {
		c.Meter = mc
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:     "stagecue.sqlite3",
		TempDir:    "/tmp",
		SampleRate: 16000,
		Logger:     nil,
		Guidance:   guidance.Default,
		Meter:      audio.DefaultMeterConfig(),
	}
}
