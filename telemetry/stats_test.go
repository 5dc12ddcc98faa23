package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/farmstead/components"
	"github.com/pthm-cable/farmstead/systems"
)

func TestSummarize(t *testing.T) {
	days := []DayStats{
		{Day: 1, Water: 90, Food: 44, Grown: 7},
		{Day: 2, Water: 80, Food: 38, Grown: 7, Shortages: 1},
		{Day: 3, Water: 70, Food: 57, Grown: 7, Harvested: 5, Yield: 25, Crops: 1, Animals: 2},
	}

	s := Summarize("run-1", days)

	assert.Equal(t, "run-1", s.RunID)
	assert.Equal(t, 3, s.Days)
	assert.Equal(t, 70, s.Water.Final)
	assert.InDelta(t, 80.0, s.Water.Mean, 1e-9)
	assert.InDelta(t, 10.0, s.Water.Std, 1e-9)
	assert.Equal(t, 70.0, s.Water.Min)
	assert.Equal(t, 90.0, s.Water.Max)
	assert.Equal(t, 57, s.Food.Final)
	assert.Equal(t, 38.0, s.Food.Min)
	assert.Equal(t, 1, s.ShortageDays)
	assert.Equal(t, 21, s.TotalGrown)
	assert.Equal(t, 5, s.TotalHarvested)
	assert.Equal(t, 25, s.TotalYield)
	assert.Equal(t, 1, s.FinalCrops)
	assert.Equal(t, 2, s.FinalAnimals)
}

func TestSummarizeEdgeCases(t *testing.T) {
	empty := Summarize("x", nil)
	assert.Zero(t, empty.Days)
	assert.Zero(t, empty.Water.Mean)

	single := Summarize("x", []DayStats{{Day: 1, Water: 5, Food: 6}})
	assert.Equal(t, 5.0, single.Water.Mean)
	assert.Zero(t, single.Water.Std, "one day has no spread")
}

func TestCollectorFlush(t *testing.T) {
	c := NewCollector()
	c.Begin(4)
	c.RecordOutcome(systems.Outcome{
		Kind: components.KindCrop, Type: "wheat", Resource: components.ResourceWater,
		Required: 4, Sufficient: true, Grown: 2, Harvested: 2, Yield: 10,
	})
	c.RecordOutcome(systems.Outcome{
		Kind: components.KindAnimal, Type: "cow", Resource: components.ResourceFood,
		Required: 9, Population: 3,
	})
	c.RecordInjection(systems.Injection{Kind: components.KindCrop, Type: "wheat", Count: 1})
	c.RecordInjection(systems.Injection{Kind: components.KindAnimal, Type: "cow", Count: 2})

	stats := c.Flush(12, 30, 1, 5, 6)

	assert.Equal(t, DayStats{
		Day: 4, Water: 12, Food: 30, Crops: 1, Animals: 5, Entities: 6,
		Grown: 2, Shortages: 1, Harvested: 2, Yield: 10, InjectedCrops: 1, InjectedAnimals: 2,
	}, stats)

	records := c.Records()
	require.Len(t, records, 2)
	assert.Equal(t, OutcomeRecord{
		Day: 4, Kind: "animal", Type: "cow", Resource: "food", Required: 9, Population: 3,
	}, records[1])

	c.Begin(5)
	assert.Empty(t, c.Records())
	assert.Equal(t, DayStats{Day: 5}, c.Flush(0, 0, 0, 0, 0))
}
