package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/pthm-cable/farmstead/config"
	"github.com/pthm-cable/farmstead/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	days := flag.Int("days", 0, "Number of days to simulate (0 = use config)")
	water := flag.Int("water", -1, "Starting water (negative = use config)")
	food := flag.Int("food", -1, "Starting food (negative = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, config and state snapshots")
	logStats := flag.Bool("log-stats", false, "Output daily stats via slog")
	logLevel := flag.String("log-level", "info", "Log level: debug, info, warn, error")
	quiet := flag.Bool("quiet", false, "Suppress the day report on stdout")

	flag.Parse()

	// Set up slog (JSON to stderr; stdout carries the report)
	var level slog.Level
	if err := level.UnmarshalText([]byte(*logLevel)); err != nil {
		slog.Error("invalid log level", "level", *logLevel, "error", err)
		os.Exit(1)
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *water >= 0 {
		cfg.Pools.Water = *water
	}
	if *food >= 0 {
		cfg.Pools.Food = *food
	}
	totalDays := cfg.Run.Days
	if *days > 0 {
		totalDays = *days
	}

	var report io.Writer = os.Stdout
	if *quiet {
		report = io.Discard
	}

	farm, err := game.NewFarm(cfg, game.Options{
		Report:    report,
		OutputDir: *outputDir,
		LogStats:  *logStats,
		Logger:    logger,
	})
	if err != nil {
		slog.Error("failed to create farm", "error", err)
		os.Exit(1)
	}

	slog.Debug("starting simulation",
		"run_id", farm.RunID(),
		"days", totalDays,
		"water", cfg.Pools.Water,
		"food", cfg.Pools.Food,
	)

	farm.Run(totalDays)

	if err := farm.Close(); err != nil {
		slog.Error("failed to write run artifacts", "error", err)
		os.Exit(1)
	}
	slog.Info("simulation complete", "summary", farm.Summary())
}
