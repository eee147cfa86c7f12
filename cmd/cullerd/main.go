package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"culler/internal/config"
	"culler/internal/daemon"
	"culler/internal/history"
	"culler/internal/logging"
	"culler/internal/workflow"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, _, _, err := config.Load("")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("ensure directories: %v", err)
	}

	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	store, err := history.Open(cfg)
	if err != nil {
		logger.Error("open history store", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	workflowManager := workflow.NewManager(cfg, store, logger)

	d, err := daemon.New(cfg, store, logger, workflowManager)
	if err != nil {
		logger.Error("create daemon", "error", err)
		os.Exit(1)
	}
	defer d.Close()

	if err := d.Start(ctx); err != nil {
		logger.Error("daemon start", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("cullerd shutting down")
}
