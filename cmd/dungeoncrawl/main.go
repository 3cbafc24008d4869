// Package main is the entry point for dungeoncrawl.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"github.com/samdwyer/dungeoncrawl/internal/config"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/logger"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/ui"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "dungeoncrawl: %v\n", err)
		os.Exit(2)
	}

	closer := logger.Init(logger.Options{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
	})
	defer closer.Close()

	if err := run(cfg); err != nil {
		logger.Log.WithError(err).Error("Game exited with error.")
		fmt.Fprintf(os.Stderr, "dungeoncrawl: %v\n", err)
		closer.Close()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Telemetry.Enabled {
		telemetry.ConfigureEnv(cfg.Telemetry.Endpoint, cfg.Telemetry.APIKey, cfg.Telemetry.Dataset)
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			// The game still works without traces.
			logger.Log.WithError(err).Warn("Telemetry setup failed.")
		} else {
			defer func() {
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(flushCtx); err != nil {
					logger.Log.WithError(err).Warn("Error shutting down telemetry.")
				}
			}()
		}
	}

	g, err := game.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize game: %w", err)
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	defer screen.Close()

	renderer := ui.NewRenderer(screen)
	input := ui.NewInput(screen)

	logger.Log.WithFields(logrus.Fields{
		"seed":     g.Seed(),
		"frame_ms": cfg.Game.FrameMS,
	}).Info("Main loop starting.")

	ticker := time.NewTicker(cfg.FrameInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-input.Quit():
			logger.Log.WithField("turn", g.Turn()).Info("Player quit.")
			return nil
		case <-ticker.C:
			renderer.Render(g.Tick(ctx, input))
		}
	}
}
