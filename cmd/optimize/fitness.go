package main

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/farmstead/config"
	"github.com/pthm-cable/farmstead/game"
	"github.com/pthm-cable/farmstead/telemetry"
)

// FitnessEvaluator runs quiet farms over several horizons and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	horizons   []int
	baseConfig *config.Config
	penalty    float64

	mu            sync.Mutex
	evals         int
	lastShortages int // shortages from the most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, horizons []int, baseCfg *config.Config, penalty float64) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		horizons:   horizons,
		baseConfig: baseCfg,
		penalty:    penalty,
	}
}

// LastShortages returns the shortage count from the most recent evaluation.
func (fe *FitnessEvaluator) LastShortages() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastShortages
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness = water + food + penalty × shortages summed over every horizon.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)

	fe.mu.Lock()
	fe.evals++
	eval := fe.evals
	fe.mu.Unlock()

	summaries, err := fe.runHorizons(cfg, eval)
	if err != nil {
		slog.Error("evaluation failed", "eval", eval, "error", err)
		return math.Inf(1)
	}

	shortages := 0
	for _, s := range summaries {
		shortages += s.Shortages
	}

	fe.mu.Lock()
	fe.lastShortages = shortages
	fe.mu.Unlock()

	return fitness(cfg.Pools.Water, cfg.Pools.Food, shortages, fe.penalty)
}

// runHorizons runs one independent farm per horizon concurrently.
func (fe *FitnessEvaluator) runHorizons(cfg *config.Config, eval int) ([]telemetry.Summary, error) {
	summaries := make([]telemetry.Summary, len(fe.horizons))
	var g errgroup.Group

	for i, days := range fe.horizons {
		g.Go(func() error {
			s, err := runFarm(cfg.Clone(), days, fmt.Sprintf("eval-%d-h%d", eval, days))
			if err != nil {
				return fmt.Errorf("horizon %d: %w", days, err)
			}
			summaries[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

// runFarm simulates a single farm for days and returns its summary.
func runFarm(cfg *config.Config, days int, runID string) (telemetry.Summary, error) {
	farm, err := game.NewFarm(cfg, game.Options{
		Report: io.Discard,
		Logger: slog.New(slog.DiscardHandler),
		RunID:  runID,
	})
	if err != nil {
		return telemetry.Summary{}, err
	}
	farm.Run(days)
	if err := farm.Close(); err != nil {
		return telemetry.Summary{}, err
	}
	return farm.Summary(), nil
}

func fitness(water, food, shortages int, penalty float64) float64 {
	return float64(water+food) + penalty*float64(shortages)
}
