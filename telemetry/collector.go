package telemetry

import (
	"github.com/pthm-cable/farmstead/components"
	"github.com/pthm-cable/farmstead/systems"
)

// Collector accumulates events within one day and produces DayStats.
type Collector struct {
	day int

	grown           int
	shortages       int
	harvested       int
	yield           int
	injectedCrops   int
	injectedAnimals int

	records []OutcomeRecord
}

// NewCollector creates a new stats collector.
func NewCollector() *Collector {
	return &Collector{}
}

// Begin starts a new day, discarding anything not flushed.
func (c *Collector) Begin(day int) {
	*c = Collector{day: day, records: c.records[:0]}
}

// RecordOutcome records one type's distribution result.
func (c *Collector) RecordOutcome(o systems.Outcome) {
	c.grown += o.Grown
	if !o.Sufficient {
		c.shortages++
	}
	c.harvested += o.Harvested
	c.yield += o.Yield

	c.records = append(c.records, OutcomeRecord{
		Day:        c.day,
		Kind:       o.Kind.String(),
		Type:       o.Type,
		Resource:   o.Resource.String(),
		Required:   o.Required,
		Sufficient: o.Sufficient,
		Empty:      o.Empty,
		Grown:      o.Grown,
		Harvested:  o.Harvested,
		Yield:      o.Yield,
		Population: o.Population,
	})
}

// RecordInjection records entities added by the schedule.
func (c *Collector) RecordInjection(inj systems.Injection) {
	if inj.Kind == components.KindAnimal {
		c.injectedAnimals += inj.Count
	} else {
		c.injectedCrops += inj.Count
	}
}

// Records returns the outcome records gathered since Begin.
// The slice is reused on the next Begin.
func (c *Collector) Records() []OutcomeRecord {
	return c.records
}

// Flush produces the DayStats for the current day.
// The caller provides end-of-day pool levels and population counts.
func (c *Collector) Flush(water, food, crops, animals, entities int) DayStats {
	return DayStats{
		Day:             c.day,
		Water:           water,
		Food:            food,
		Crops:           crops,
		Animals:         animals,
		Entities:        entities,
		Grown:           c.grown,
		Shortages:       c.shortages,
		Harvested:       c.harvested,
		Yield:           c.yield,
		InjectedCrops:   c.injectedCrops,
		InjectedAnimals: c.injectedAnimals,
	}
}
