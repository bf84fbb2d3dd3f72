package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/plannerd/internal/notify"
	"github.com/sandeepkv93/plannerd/internal/plan"
	"github.com/sandeepkv93/plannerd/internal/storage"
	"github.com/sandeepkv93/plannerd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "plannerd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())
	dbPath := flag.String("db", cfg.DBPath, "path to the sqlite database")
	logPath := flag.String("log", cfg.LogPath, "path to the log file")
	hours := flag.String("hours", "", "day window as start-end hours, e.g. 7-21")
	flag.Parse()
	cfg.DBPath = *dbPath
	cfg.LogPath = *logPath

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	logFile, err := os.OpenFile(cfg.LogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log := zerolog.New(logFile).With().Timestamp().Logger()

	repo, err := storage.OpenSQLite(cfg.DBPath)
	if err != nil {
		return err
	}
	defer repo.Close()
	if err := storage.MigrateUp(repo.DB()); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	if *hours != "" {
		settings, err := parseHoursFlag(*hours)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := repo.SaveSettings(ctx, settings); err != nil {
			return fmt.Errorf("save day window: %w", err)
		}
	}

	engine := notify.NewEngine(cfg.AlertBuffer)
	engine.Start()
	defer engine.Stop()

	if cfg.MorningDigest {
		digest := notify.Alert{
			ID:     "morning-digest",
			Title:  "Plan your day",
			Body:   "Review today's checklist and plan",
			At:     time.Now().Add(time.Minute),
			Repeat: "0 8 * * *",
		}
		if err := engine.Schedule(digest); err != nil {
			log.Warn().Err(err).Msg("morning digest not scheduled")
		}
	}

	log.Info().Str("db", cfg.DBPath).Msg("plannerd starting")
	program := tea.NewProgram(update.NewModelWithConfig(repo, engine, log, cfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	log.Info().Uint64("dropped_alerts", engine.Dropped()).Msg("plannerd stopped")
	return nil
}

func parseHoursFlag(raw string) (storage.Settings, error) {
	parts := strings.SplitN(raw, "-", 2)
	if len(parts) != 2 {
		return storage.Settings{}, fmt.Errorf("bad -hours value %q, want start-end", raw)
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return storage.Settings{}, fmt.Errorf("bad -hours start %q", parts[0])
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return storage.Settings{}, fmt.Errorf("bad -hours end %q", parts[1])
	}
	settings := storage.Settings{StartHour: start, EndHour: end}
	if err := (plan.Window{StartHour: start, EndHour: end}).Validate(); err != nil {
		return storage.Settings{}, err
	}
	return settings, nil
}
