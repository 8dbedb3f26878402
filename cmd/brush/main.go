package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/jo-hoe/gobrush/internal/config"
	"github.com/jo-hoe/gobrush/internal/core"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := config.ConfigPath()
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return err
	}
	if err := core.SetupLogging(os.Stderr, cfg.LogLevel); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	coreService, err := core.NewCoreService(ctx, cfg, afero.NewOsFs())
	if err != nil {
		return err
	}
	defer func() {
		if err := coreService.Close(); err != nil {
			slog.Error("core service close error", "error", err)
		}
	}()

	report, err := coreService.Run(ctx)
	if err != nil {
		return err
	}
	slog.Info("all jobs completed", "jobs", len(report.Completed))
	return nil
}
