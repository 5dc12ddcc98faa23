// Package telemetry provides farm statistics, bookmarking, run summaries and output files.
package telemetry

import (
	"log/slog"
)

// DayStats holds aggregated statistics for one simulated day.
type DayStats struct {
	Day int `csv:"day"`

	// Pools at end of day
	Water int `csv:"water"`
	Food  int `csv:"food"`

	// Population at end of day, after injections
	Crops    int `csv:"crops"`
	Animals  int `csv:"animals"`
	Entities int `csv:"entities"` // live entities in the ECS world

	// Events during the day
	Grown           int `csv:"grown"`
	Shortages       int `csv:"shortages"` // types that could not be fed
	Harvested       int `csv:"harvested"`
	Yield           int `csv:"yield"`
	InjectedCrops   int `csv:"injected_crops"`
	InjectedAnimals int `csv:"injected_animals"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s DayStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("day", s.Day),
		slog.Int("water", s.Water),
		slog.Int("food", s.Food),
		slog.Int("crops", s.Crops),
		slog.Int("animals", s.Animals),
		slog.Int("entities", s.Entities),
		slog.Int("grown", s.Grown),
		slog.Int("shortages", s.Shortages),
		slog.Int("harvested", s.Harvested),
		slog.Int("yield", s.Yield),
		slog.Int("injected_crops", s.InjectedCrops),
		slog.Int("injected_animals", s.InjectedAnimals),
	)
}

// LogStats logs the day stats using slog.
func (s DayStats) LogStats(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("day", "stats", s)
}

// OutcomeRecord is one type's result for one day, as written to outcomes.csv.
type OutcomeRecord struct {
	Day        int    `csv:"day"`
	Kind       string `csv:"kind"`
	Type       string `csv:"type"`
	Resource   string `csv:"resource"`
	Required   int    `csv:"required"`
	Sufficient bool   `csv:"sufficient"`
	Empty      bool   `csv:"empty"`
	Grown      int    `csv:"grown"`
	Harvested  int    `csv:"harvested"`
	Yield      int    `csv:"yield"`
	Population int    `csv:"population"`
}
