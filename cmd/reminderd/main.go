// AngelaMos | 2026
// main.go

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/carterperez-dev/eventhub/internal/config"
	"github.com/carterperez-dev/eventhub/internal/core"
	"github.com/carterperez-dev/eventhub/internal/event"
	"github.com/carterperez-dev/eventhub/internal/mailer"
	"github.com/carterperez-dev/eventhub/internal/reminder"
	"github.com/carterperez-dev/eventhub/internal/rsvp"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	once := flag.Bool("once", false, "run a single dispatch pass and exit")
	flag.Parse()

	if err := run(*configPath, *once); err != nil {
		slog.Error("reminderd error", "error", err)
		os.Exit(1)
	}
}

func run(configPath string, once bool) error {
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger := setupLogger(cfg.Log)
	slog.SetDefault(logger)

	logger.Info("starting reminder dispatcher",
		"interval", cfg.Reminder.Interval,
		"once", once,
	)

	db, err := core.NewDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Error("database close error", "error", closeErr)
		}
	}()

	mailSender, err := mailer.New(cfg.Mailer, logger)
	if err != nil {
		return err
	}

	store := reminder.NewStore(
		db.DB,
		event.NewRepository(db.DB),
		rsvp.NewRepository(db.DB),
	)
	dispatcher := reminder.NewDispatcher(store, mailSender, logger)

	if once {
		return dispatchOnce(ctx, dispatcher, logger)
	}

	// Run immediately on startup, then on every tick.
	if err := dispatchOnce(ctx, dispatcher, logger); err != nil {
		logger.Error("dispatch pass failed", "error", err)
	}

	ticker := time.NewTicker(cfg.Reminder.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("reminder dispatcher stopped")
			return nil
		case <-ticker.C:
			if err := dispatchOnce(ctx, dispatcher, logger); err != nil {
				logger.Error("dispatch pass failed", "error", err)
			}
		}
	}
}

func dispatchOnce(
	ctx context.Context,
	dispatcher *reminder.Dispatcher,
	logger *slog.Logger,
) error {
	stats, err := dispatcher.Dispatch(ctx)
	if err != nil {
		return err
	}

	logger.Info("dispatch pass complete",
		"scanned", stats.Scanned,
		"sent", stats.Sent,
		"skipped", stats.Skipped,
		"failed", stats.Failed,
	)
	return nil
}

func setupLogger(cfg config.LogConfig) *slog.Logger {
	var handler slog.Handler

	level := slog.LevelInfo
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	return slog.New(handler)
}
