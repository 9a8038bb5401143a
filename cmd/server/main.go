//go:build !js && !wasm

package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/himanishpuri/StageCue/internal/config"
	"github.com/himanishpuri/StageCue/pkg/logger"
	"github.com/himanishpuri/StageCue/pkg/stagecue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&cfg.TempDir, "temp", cfg.TempDir, "Temporary directory for uploads")
	flag.Parse()

	logger.SetDefault(cfg.Logger())
	log := logger.GetLogger()

	service, err := stagecue.NewService(
		stagecue.WithDBPath(cfg.DBPath),
		stagecue.WithTempDir(cfg.TempDir),
		stagecue.WithSampleRate(cfg.SampleRate),
		stagecue.WithMeterConfig(cfg.MeterConfig()),
		stagecue.WithLogger(log),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	server := NewServer(service, &ServerConfig{
		Port:           cfg.Port,
		DBPath:         cfg.DBPath,
		TempDir:        cfg.TempDir,
		SampleRate:     cfg.SampleRate,
		AllowedOrigins: cfg.AllowedOrigins,
		MaxUploadBytes: cfg.MaxUploadMB << 20,
		MetricsEnabled: cfg.MetricsEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		log.Errorf("Server failed: %v", err)
		os.Exit(1)
	}
}
