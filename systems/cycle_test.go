package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/farmstead/components"
)

func TestResourcePoolArithmetic(t *testing.T) {
	p := NewResourcePool(100, 50)
	p.Debit(components.ResourceWater, 120)
	assert.Equal(t, -20, p.Water(), "pool has no bounds of its own")
	p.Credit(components.ResourceWater, 120)
	p.Credit(components.ResourceFood, 7)
	assert.Equal(t, 100, p.Level(components.ResourceWater))
	assert.Equal(t, 57, p.Level(components.ResourceFood))
	assert.Panics(t, func() { p.Debit(components.Resource(9), 1) })
}

func TestDistributeDayOne(t *testing.T) {
	w := ecs.NewWorld()
	crops := NewEntityRegistry(w, components.KindCrop)
	animals := NewEntityRegistry(w, components.KindAnimal)
	crops.Add("wheat", 5, wheatParams)
	animals.Add("cow", 2, cowParams)
	pool := NewResourcePool(100, 50)

	cropOut := Distribute(crops, pool)
	animalOut := Distribute(animals, pool)

	require.Len(t, cropOut, 1)
	assert.Equal(t, Outcome{
		Kind: components.KindCrop, Type: "wheat", Resource: components.ResourceWater,
		Required: 10, Sufficient: true, Grown: 5, Population: 5,
	}, cropOut[0])
	require.Len(t, animalOut, 1)
	assert.Equal(t, 6, animalOut[0].Required)
	assert.True(t, animalOut[0].Sufficient)

	assert.Equal(t, 90, pool.Water())
	assert.Equal(t, 44, pool.Food())
	for _, s := range crops.Snapshot("wheat") {
		assert.Equal(t, 1, s.Stage)
	}
	for _, s := range animals.Snapshot("cow") {
		assert.Equal(t, 1, s.Stage)
	}
}

func TestDistributeShortageRollsBack(t *testing.T) {
	crops := newCrops()
	crops.Add("wheat", 5, wheatParams)
	pool := NewResourcePool(1, 50)

	out := Distribute(crops, pool)

	require.Len(t, out, 1)
	assert.False(t, out[0].Sufficient)
	assert.Zero(t, out[0].Grown)
	assert.Equal(t, 10, out[0].Required)
	assert.Equal(t, 1, pool.Water(), "debit and rollback cancel out")
	assert.Equal(t, 50, pool.Food())
	for _, s := range crops.Snapshot("wheat") {
		assert.Equal(t, 0, s.Stage)
	}
}

func TestDistributeHarvestRunsDuringShortage(t *testing.T) {
	crops := newCrops()
	crops.Add("wheat", 2, wheatParams)
	for i := 0; i < wheatParams.DaysToGrow; i++ {
		crops.GrowAll("wheat")
	}
	pool := NewResourcePool(0, 0)

	out := Distribute(crops, pool)

	require.Len(t, out, 1)
	assert.False(t, out[0].Sufficient)
	assert.Equal(t, 2, out[0].Harvested)
	assert.Equal(t, 10, out[0].Yield)
	assert.Equal(t, 0, pool.Water())
	assert.Equal(t, 10, pool.Food())
}

func TestDistributeSufficiencyIsPerType(t *testing.T) {
	crops := newCrops()
	crops.Add("melon", 1, GrowthParams{DaysToGrow: 4, Required: 8, Yield: 9})
	crops.Add("wheat", 2, wheatParams)
	pool := NewResourcePool(5, 0)

	out := Distribute(crops, pool)

	require.Len(t, out, 2)
	assert.Equal(t, "melon", out[0].Type)
	assert.False(t, out[0].Sufficient)
	assert.Equal(t, "wheat", out[1].Type)
	assert.True(t, out[1].Sufficient, "a starving type does not block the next one")
	assert.Equal(t, 1, pool.Water())
}

func TestDistributeAnimalYieldGoesToFood(t *testing.T) {
	animals := NewEntityRegistry(ecs.NewWorld(), components.KindAnimal)
	animals.Add("hen", 3, GrowthParams{DaysToGrow: 1, Required: 1, Yield: 4})
	pool := NewResourcePool(20, 10)

	out := Distribute(animals, pool)

	require.Len(t, out, 1)
	assert.Equal(t, 3, out[0].Harvested)
	assert.Equal(t, 20, pool.Water())
	assert.Equal(t, 10-3+12, pool.Food())
}

func TestDistributeEmptyType(t *testing.T) {
	crops := newCrops()
	crops.Add("wheat", 1, GrowthParams{DaysToGrow: 1, Required: 2, Yield: 5})
	pool := NewResourcePool(10, 0)
	Distribute(crops, pool)
	require.Zero(t, crops.Count("wheat"))

	out := Distribute(crops, pool)

	require.Len(t, out, 1)
	assert.True(t, out[0].Empty)
	assert.True(t, out[0].Sufficient)
	assert.Zero(t, out[0].Required)
	assert.Zero(t, out[0].Grown)
	assert.Zero(t, out[0].Harvested)
	assert.Equal(t, 8, pool.Water())
}

func TestScheduleApply(t *testing.T) {
	w := ecs.NewWorld()
	crops := NewEntityRegistry(w, components.KindCrop)
	animals := NewEntityRegistry(w, components.KindAnimal)
	s := Schedule{
		{Kind: components.KindCrop, Type: "wheat", EveryDays: 3, Count: 1, Params: wheatParams},
		{Kind: components.KindAnimal, Type: "cow", EveryDays: 5, Count: 1, Params: cowParams},
	}

	assert.Empty(t, s.Apply(1, crops, animals))
	assert.Equal(t, []Injection{{Kind: components.KindCrop, Type: "wheat", Count: 1}}, s.Apply(3, crops, animals))
	assert.Equal(t, []Injection{{Kind: components.KindAnimal, Type: "cow", Count: 1}}, s.Apply(5, crops, animals))
	assert.Len(t, s.Apply(15, crops, animals), 2)

	assert.Equal(t, 2, crops.Count("wheat"))
	assert.Equal(t, 2, animals.Count("cow"))
}

func TestRuleDue(t *testing.T) {
	r := Rule{EveryDays: 3}
	assert.False(t, r.Due(1))
	assert.True(t, r.Due(3))
	assert.True(t, r.Due(6))
	assert.False(t, Rule{}.Due(3))
}
