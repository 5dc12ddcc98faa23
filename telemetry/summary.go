package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// PoolSummary describes one pool's level across a run.
type PoolSummary struct {
	Final int     `json:"final"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// Summary describes a complete run.
type Summary struct {
	RunID          string      `json:"run_id"`
	Days           int         `json:"days"`
	Water          PoolSummary `json:"water"`
	Food           PoolSummary `json:"food"`
	ShortageDays   int         `json:"shortage_days"`
	Shortages      int         `json:"shortages"`
	TotalGrown     int         `json:"total_grown"`
	TotalHarvested int         `json:"total_harvested"`
	TotalYield     int         `json:"total_yield"`
	FinalCrops     int         `json:"final_crops"`
	FinalAnimals   int         `json:"final_animals"`
	Bookmarks      int         `json:"bookmarks"`
	ReportDigest   string      `json:"report_digest"` // xxhash64 of the text report
}

// Summarize computes run statistics from the per-day history.
func Summarize(runID string, days []DayStats) Summary {
	s := Summary{RunID: runID, Days: len(days)}
	if len(days) == 0 {
		return s
	}

	water := make([]float64, len(days))
	food := make([]float64, len(days))
	for i, d := range days {
		water[i] = float64(d.Water)
		food[i] = float64(d.Food)
		if d.Shortages > 0 {
			s.ShortageDays++
		}
		s.Shortages += d.Shortages
		s.TotalGrown += d.Grown
		s.TotalHarvested += d.Harvested
		s.TotalYield += d.Yield
	}

	last := days[len(days)-1]
	s.Water = summarizePool(water, last.Water)
	s.Food = summarizePool(food, last.Food)
	s.FinalCrops = last.Crops
	s.FinalAnimals = last.Animals

	return s
}

func summarizePool(levels []float64, final int) PoolSummary {
	ps := PoolSummary{
		Final: final,
		Mean:  stat.Mean(levels, nil),
		Min:   floats.Min(levels),
		Max:   floats.Max(levels),
	}
	// Sample std is undefined for a single day.
	if len(levels) > 1 {
		ps.Std = stat.StdDev(levels, nil)
	}
	return ps
}

// LogValue implements slog.LogValuer for structured logging.
func (s Summary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("run_id", s.RunID),
		slog.Int("days", s.Days),
		slog.Int("final_water", s.Water.Final),
		slog.Int("final_food", s.Food.Final),
		slog.Float64("water_mean", s.Water.Mean),
		slog.Float64("food_mean", s.Food.Mean),
		slog.Int("shortage_days", s.ShortageDays),
		slog.Int("total_harvested", s.TotalHarvested),
		slog.Int("total_yield", s.TotalYield),
		slog.Int("bookmarks", s.Bookmarks),
		slog.String("report_digest", s.ReportDigest),
	)
}
