// Package game runs the farm: it owns the pools, the crop and animal
// registries and the ECS world they live in, and advances them one day at a time.
package game

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/farmstead/components"
	"github.com/pthm-cable/farmstead/config"
	"github.com/pthm-cable/farmstead/systems"
	"github.com/pthm-cable/farmstead/telemetry"
)

// Options configures a farm beyond what the config file holds.
type Options struct {
	Report    io.Writer    // Day report destination (nil = stdout)
	OutputDir string       // Directory for CSV/JSON/YAML artifacts (empty = disabled)
	LogStats  bool         // Log DayStats and bookmarks via slog
	Logger    *slog.Logger // nil = slog.Default()
	RunID     string       // empty = random UUID
}

// Farm holds the complete simulation state.
type Farm struct {
	cfg *config.Config

	world        *ecs.World
	entityFilter *ecs.Filter1[components.Tag]
	pool         *systems.ResourcePool
	crops        *systems.EntityRegistry
	animals      *systems.EntityRegistry
	schedule     systems.Schedule

	day   int
	runID string

	report *reporter
	digest *xxhash.Digest
	logger *slog.Logger

	// Telemetry
	collector        *telemetry.Collector
	bookmarkDetector *telemetry.BookmarkDetector
	outputManager    *telemetry.OutputManager
	perf             *telemetry.PerfCollector
	history          []telemetry.DayStats
	bookmarkCount    int
	logStats         bool
}

// NewFarm creates a farm seeded from cfg.
func NewFarm(cfg *config.Config, opts Options) (*Farm, error) {
	world := ecs.NewWorld()

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Report
	if out == nil {
		out = os.Stdout
	}

	f := &Farm{
		cfg:              cfg,
		world:            world,
		entityFilter:     ecs.NewFilter1[components.Tag](world),
		pool:             systems.NewResourcePool(cfg.Pools.Water, cfg.Pools.Food),
		crops:            systems.NewEntityRegistry(world, components.KindCrop),
		animals:          systems.NewEntityRegistry(world, components.KindAnimal),
		runID:            runID,
		digest:           xxhash.New(),
		logger:           logger.With("run_id", runID),
		collector:        telemetry.NewCollector(),
		bookmarkDetector: telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize, cfg.Telemetry.HarvestBoomFactor),
		perf:             telemetry.NewPerfCollector(cfg.Run.Days),
		logStats:         opts.LogStats,
	}
	f.report = newReporter(io.MultiWriter(out, f.digest))

	for _, s := range cfg.Crops {
		f.crops.Add(s.Name, s.Initial, paramsOf(s))
	}
	for _, s := range cfg.Animals {
		f.animals.Add(s.Name, s.Initial, paramsOf(s))
	}

	schedule, err := buildSchedule(cfg)
	if err != nil {
		return nil, err
	}
	f.schedule = schedule

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output manager: %w", err)
	}
	f.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	return f, nil
}

func paramsOf(s config.SpeciesConfig) systems.GrowthParams {
	return systems.GrowthParams{DaysToGrow: s.DaysToGrow, Required: s.Required, Yield: s.Yield}
}

// buildSchedule resolves each configured rule to its species' standard parameters.
func buildSchedule(cfg *config.Config) (systems.Schedule, error) {
	schedule := make(systems.Schedule, 0, len(cfg.Schedule))
	for i, r := range cfg.Schedule {
		species, ok := cfg.Species(r.Kind, r.Type)
		if !ok {
			return nil, fmt.Errorf("schedule[%d]: unknown %s type %q", i, r.Kind, r.Type)
		}
		kind := components.KindCrop
		if r.Kind == config.KindAnimal {
			kind = components.KindAnimal
		}
		schedule = append(schedule, systems.Rule{
			Kind:      kind,
			Type:      r.Type,
			EveryDays: r.EveryDays,
			Count:     r.Count,
			Params:    paramsOf(species),
		})
	}
	return schedule, nil
}

// Run simulates days one after another until totalDays more days have passed.
func (f *Farm) Run(totalDays int) {
	for i := 0; i < totalDays; i++ {
		f.Step()
	}
}

// Step simulates one day and returns its statistics.
func (f *Farm) Step() telemetry.DayStats {
	f.perf.StartDay()
	f.day++
	f.collector.Begin(f.day)
	f.report.dayHeader(f.day)

	var outcomes []systems.Outcome
	for _, phase := range []struct {
		name string
		reg  *systems.EntityRegistry
	}{
		{telemetry.PhaseCrops, f.crops},
		{telemetry.PhaseAnimals, f.animals},
	} {
		f.perf.StartPhase(phase.name)
		for _, o := range systems.Distribute(phase.reg, f.pool) {
			f.report.outcome(o)
			f.collector.RecordOutcome(o)
			outcomes = append(outcomes, o)
		}
	}

	f.perf.StartPhase(telemetry.PhaseInjection)
	injections := f.schedule.Apply(f.day, f.crops, f.animals)
	for _, inj := range injections {
		f.collector.RecordInjection(inj)
	}

	f.report.dayFooter(f.day, f.pool.Water(), f.pool.Food())

	f.perf.StartPhase(telemetry.PhaseTelemetry)
	stats := f.collector.Flush(f.pool.Water(), f.pool.Food(), f.crops.Total(), f.animals.Total(), f.countEntities())
	f.history = append(f.history, stats)
	f.flushTelemetry(stats, outcomes, injections)
	f.perf.EndDay()

	return stats
}

// countEntities counts live entities in the ECS world.
func (f *Farm) countEntities() int {
	n := 0
	query := f.entityFilter.Query()
	for query.Next() {
		n++
	}
	return n
}

// Summary returns statistics for the days simulated so far.
func (f *Farm) Summary() telemetry.Summary {
	s := telemetry.Summarize(f.runID, f.history)
	s.Bookmarks = f.bookmarkCount
	s.ReportDigest = fmt.Sprintf("%016x", f.digest.Sum64())
	return s
}

// Snapshot returns a copy of the current farm state.
func (f *Farm) Snapshot() *telemetry.Snapshot {
	s := &telemetry.Snapshot{
		Version: telemetry.SnapshotVersion,
		RunID:   f.runID,
		Day:     f.day,
		Water:   f.pool.Water(),
		Food:    f.pool.Food(),
	}
	s.AddRegistry(f.crops)
	s.AddRegistry(f.animals)
	return s
}

// Perf returns step timing over the most recent days.
func (f *Farm) Perf() telemetry.PerfStats {
	return f.perf.Stats()
}

// Close writes the run summary and final state, then closes output files.
func (f *Farm) Close() error {
	if f.logStats {
		f.logger.Info("perf", "stats", f.Perf())
	}
	if f.outputManager == nil {
		return nil
	}
	dir := f.outputManager.Dir()
	var firstErr error
	if err := f.outputManager.WriteSummary(f.Summary()); err != nil {
		firstErr = err
	}
	if err := f.outputManager.WriteSnapshot(f.Snapshot()); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := f.outputManager.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	f.outputManager = nil
	if firstErr == nil {
		f.logger.Info("run artifacts written", "dir", dir)
	}
	return firstErr
}

// Day returns the last simulated day (0 before the first Step).
func (f *Farm) Day() int {
	return f.day
}

// Pools returns the current water and food stocks.
func (f *Farm) Pools() (water, food int) {
	return f.pool.Water(), f.pool.Food()
}

// Crops returns the crop registry.
func (f *Farm) Crops() *systems.EntityRegistry {
	return f.crops
}

// Animals returns the animal registry.
func (f *Farm) Animals() *systems.EntityRegistry {
	return f.animals
}

// RunID returns the identifier stamped on this run's logs and summary.
func (f *Farm) RunID() string {
	return f.runID
}

// History returns the statistics of every simulated day.
func (f *Farm) History() []telemetry.DayStats {
	return f.history
}
