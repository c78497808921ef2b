package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"entrain/internal/config"
	"entrain/internal/heuristic"
	"entrain/internal/liveprobe"
	"entrain/internal/localstore"
	"entrain/internal/logging"
	"entrain/internal/mediasession"
	"entrain/internal/probes"
	"entrain/internal/reconciler"
	"entrain/internal/services/brainapi"
)

func buildLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: os.Stderr,
	})
}

// buildSession wires every collaborator from the configuration. The
// local store serves double duty: baseline state for the reconciler and
// credential text for the API client.
func buildSession(cfg *config.Config, logger *slog.Logger) *reconciler.Session {
	runner := probes.ExecRunner{}
	cmdTimeout := time.Duration(cfg.Probes.CommandTimeoutSeconds) * time.Second

	parser := heuristic.NewParser()
	process := probes.NewProcess(runner, cmdTimeout, logger)
	store := localstore.New(cfg.Paths.DataDir, logger)
	detector := liveprobe.NewDetector(cfg.Paths.DataDir, cfg.App.ProcessName, process, parser, logger)
	media := mediasession.NewProbe(runner, cfg.Probes.MediaSessionCommand, cfg.App.BundleID, cmdTimeout, logger)
	api := brainapi.New(store,
		brainapi.WithBaseURL(cfg.API.BaseURL),
		brainapi.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}),
		brainapi.WithLogger(logger))

	return reconciler.NewSession(reconciler.Options{
		Baseline:      store,
		Process:       process,
		Detector:      detector,
		Media:         media,
		API:           api,
		Parser:        parser,
		Logger:        logger,
		ProcessName:   cfg.App.ProcessName,
		RefreshCycles: cfg.Reconcile.RefreshCycles,
	})
}
