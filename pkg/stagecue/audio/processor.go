package audio

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/himanishpuri/StageCue/pkg/stagecue/scoring"
	"github.com/himanishpuri/StageCue/pkg/utils"
)

type ConvertWAVConfig struct {
	SampleRate int
}

// ConvertToMonoWAV transcodes any ffmpeg-readable recording into a 16-bit
// mono PCM WAV inside outputDir and returns its path.
func ConvertToMonoWAV(
	ctx context.Context,
	inputPath string,
	outputDir string,
	cfg ConvertWAVConfig,
) (string, error) {

	if cfg.SampleRate == 0 {
		cfg.SampleRate = 16000
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
	}

	if err := utils.MakeDir(outputDir); err != nil {
		return "", err
	}

	outputPath, tmpPath := utils.StagedPaths(outputDir, inputPath)
	defer utils.DeleteFile(tmpPath)

	cmd := exec.CommandContext(
		ctx,
		"ffmpeg",
		"-y",
		"-v", "quiet",
		"-i", inputPath,
		"-ac", "1", // mono
		"-ar", fmt.Sprintf("%d", cfg.SampleRate),
		"-c:a", "pcm_s16le",
		tmpPath,
	)

	if out, err := cmd.CombinedOutput(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("ffmpeg failed: %v (%s)", err, out)
	}

	if err := utils.MoveFile(tmpPath, outputPath); err != nil {
		return "", err
	}

	return outputPath, nil
}

// AnalyzeConfig bundles what AnalyzeFile needs besides the recording.
type AnalyzeConfig struct {
	TempDir    string
	SampleRate int
	Meter      MeterConfig
}

// AnalyzeFile measures a recording. PCM WAV files are read directly;
// anything else, or a WAV the decoder rejects, is converted with ffmpeg into
// TempDir first and the converted copy is removed afterwards.
func AnalyzeFile(ctx context.Context, path string, cfg AnalyzeConfig) (scoring.PerformanceMetrics, error) {
	if _, err := os.Stat(path); err != nil {
		return scoring.PerformanceMetrics{}, err
	}

	if strings.EqualFold(filepath.Ext(path), ".wav") {
		samples, rate, err := ReadWav(path)
		if err == nil {
			return Measure(samples, rate, cfg.Meter), nil
		}
	}

	tempDir := cfg.TempDir
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	converted, err := ConvertToMonoWAV(ctx, path, tempDir, ConvertWAVConfig{SampleRate: cfg.SampleRate})
	if err != nil {
		return scoring.PerformanceMetrics{}, fmt.Errorf("converting %s: %w", path, err)
	}
	defer utils.DeleteFile(converted)

	samples, rate, err := ReadWav(converted)
	if err != nil {
		return scoring.PerformanceMetrics{}, fmt.Errorf("reading converted audio: %w", err)
	}
	return Measure(samples, rate, cfg.Meter), nil
}
