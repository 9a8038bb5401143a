// Package config loads StageCue's binary configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/himanishpuri/StageCue/pkg/logger"
	"github.com/himanishpuri/StageCue/pkg/stagecue/audio"
)

// Prefix is prepended to every variable name, so DB_PATH is read from
// STAGECUE_DB_PATH. The bare name is used as a fallback.
const Prefix = "stagecue"

// Config holds all configuration for the CLI and the server
type Config struct {
	// Storage
	DBPath  string `envconfig:"DB_PATH" default:"stagecue.sqlite3"`
	TempDir string `envconfig:"TEMP_DIR" default:"/tmp"`

	// Server configuration
	Port           string   `envconfig:"PORT" default:"8080"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"` // comma separated
	MaxUploadMB    int64    `envconfig:"MAX_UPLOAD_MB" default:"32"`

	// Audio measurement
	SampleRate          int     `envconfig:"SAMPLE_RATE" default:"16000"`
	MaxRecordingSeconds int     `envconfig:"MAX_RECORDING_SECONDS" default:"20"`
	SilenceFloor        float64 `envconfig:"SILENCE_FLOOR" default:"0.05"`
	AmplitudeGain       float64 `envconfig:"AMPLITUDE_GAIN" default:"8.0"`
	FrameSize           int     `envconfig:"FRAME_SIZE" default:"1024"`

	// Observability configuration
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`       // debug, info, warn, error
	LogPretty      bool   `envconfig:"LOG_PRETTY" default:"true"`      // console lines instead of JSON
	MetricsEnabled bool   `envconfig:"METRICS_ENABLED" default:"true"` // expose /metrics
}

// Load reads an optional .env file and then the environment.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()
	return LoadFromEnv()
}

// LoadFromEnv reads the environment only.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values the audio pipeline or server cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.DBPath == "" {
		errs = append(errs, errors.New("DB_PATH must not be empty"))
	}
	if c.SampleRate <= 0 {
		errs = append(errs, fmt.Errorf("SAMPLE_RATE must be positive, got %d", c.SampleRate))
	}
	if c.FrameSize <= 0 {
		errs = append(errs, fmt.Errorf("FRAME_SIZE must be positive, got %d", c.FrameSize))
	}
	if c.MaxRecordingSeconds <= 0 {
		errs = append(errs, fmt.Errorf("MAX_RECORDING_SECONDS must be positive, got %d", c.MaxRecordingSeconds))
	}
	if c.AmplitudeGain <= 0 {
		errs = append(errs, fmt.Errorf("AMPLITUDE_GAIN must be positive, got %g", c.AmplitudeGain))
	}
	if c.SilenceFloor < 0 || c.SilenceFloor >= 1 {
		errs = append(errs, fmt.Errorf("SILENCE_FLOOR must be in [0,1), got %g", c.SilenceFloor))
	}
	if c.MaxUploadMB <= 0 {
		errs = append(errs, fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB))
	}
	if _, ok := logger.ParseLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL %q is not one of debug, info, warn, error, fatal", c.LogLevel))
	}
	return errors.Join(errs...)
}

// MeterConfig returns the loudness meter settings.
func (c *Config) MeterConfig() audio.MeterConfig {
	return audio.MeterConfig{
		FrameSize:    c.FrameSize,
		Gain:         c.AmplitudeGain,
		SilenceFloor: c.SilenceFloor,
		MaxDuration:  time.Duration(c.MaxRecordingSeconds) * time.Second,
	}
}

// Logger builds a logger from the observability settings.
func (c *Config) Logger() *logger.Logger {
	lc := logger.DefaultConfig()
	lc.Level, _ = logger.ParseLevel(c.LogLevel)
	lc.JSON = !c.LogPretty
	lc.Output = os.Stderr
	return logger.New(lc)
}
