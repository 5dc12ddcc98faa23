package telemetry

import (
	"log/slog"
	"time"
)

// Phase names for one simulated day.
const (
	PhaseCrops     = "crops"
	PhaseAnimals   = "animals"
	PhaseInjection = "injection"
	PhaseTelemetry = "telemetry"
)

var phaseOrder = []string{PhaseCrops, PhaseAnimals, PhaseInjection, PhaseTelemetry}

// PerfSample holds timing data for a single day.
type PerfSample struct {
	DayDuration time.Duration
	Phases      map[string]time.Duration
}

// PerfCollector tracks step timing over a rolling window of days.
type PerfCollector struct {
	windowSize  int
	samples     []PerfSample
	writeIndex  int
	sampleCount int

	now func() time.Time

	current    map[string]time.Duration
	dayStart   time.Time
	phaseStart time.Time
	lastPhase  string
}

// NewPerfCollector creates a collector averaging over windowSize days.
func NewPerfCollector(windowSize int) *PerfCollector {
	if windowSize < 1 {
		windowSize = 30
	}
	return &PerfCollector{
		windowSize: windowSize,
		samples:    make([]PerfSample, windowSize),
		now:        time.Now,
		current:    make(map[string]time.Duration),
	}
}

// StartDay begins timing a new day.
func (p *PerfCollector) StartDay() {
	p.dayStart = p.now()
	p.current = make(map[string]time.Duration)
	p.lastPhase = ""
}

// StartPhase ends the running phase, if any, and starts timing phase.
func (p *PerfCollector) StartPhase(phase string) {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}
	p.phaseStart = now
	p.lastPhase = phase
}

// EndDay finishes timing the current day and records the sample.
func (p *PerfCollector) EndDay() {
	now := p.now()
	if p.lastPhase != "" {
		p.current[p.lastPhase] += now.Sub(p.phaseStart)
	}

	p.samples[p.writeIndex] = PerfSample{
		DayDuration: now.Sub(p.dayStart),
		Phases:      p.current,
	}
	p.writeIndex = (p.writeIndex + 1) % p.windowSize
	if p.sampleCount < p.windowSize {
		p.sampleCount++
	}
}

// PerfStats holds aggregated timing over the window.
type PerfStats struct {
	Days       int
	AvgDay     time.Duration
	MinDay     time.Duration
	MaxDay     time.Duration
	PhaseAvg   map[string]time.Duration
	PhasePct   map[string]float64
	DaysPerSec float64
}

// Stats computes aggregated statistics over the current window.
func (p *PerfCollector) Stats() PerfStats {
	stats := PerfStats{
		Days:     p.sampleCount,
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
	}
	if p.sampleCount == 0 {
		return stats
	}

	var total time.Duration
	phaseSum := make(map[string]time.Duration)
	for i := 0; i < p.sampleCount; i++ {
		s := p.samples[i]
		total += s.DayDuration
		if i == 0 || s.DayDuration < stats.MinDay {
			stats.MinDay = s.DayDuration
		}
		if s.DayDuration > stats.MaxDay {
			stats.MaxDay = s.DayDuration
		}
		for phase, d := range s.Phases {
			phaseSum[phase] += d
		}
	}

	stats.AvgDay = total / time.Duration(p.sampleCount)
	for phase, sum := range phaseSum {
		avg := sum / time.Duration(p.sampleCount)
		stats.PhaseAvg[phase] = avg
		if stats.AvgDay > 0 {
			stats.PhasePct[phase] = float64(avg) / float64(stats.AvgDay) * 100
		}
	}
	if stats.AvgDay > 0 {
		stats.DaysPerSec = float64(time.Second) / float64(stats.AvgDay)
	}
	return stats
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("days", s.Days),
		slog.Int64("avg_day_us", s.AvgDay.Microseconds()),
		slog.Int64("min_day_us", s.MinDay.Microseconds()),
		slog.Int64("max_day_us", s.MaxDay.Microseconds()),
		slog.Float64("days_per_sec", s.DaysPerSec),
	}
	for _, phase := range phaseOrder {
		if pct, ok := s.PhasePct[phase]; ok {
			attrs = append(attrs, slog.Float64(phase+"_pct", pct))
		}
	}
	return slog.GroupValue(attrs...)
}
