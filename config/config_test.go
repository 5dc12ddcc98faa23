package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Pools.Water)
	assert.Equal(t, 50, cfg.Pools.Food)
	assert.Equal(t, 10, cfg.Run.Days)

	wheat, ok := cfg.Species(KindCrop, "wheat")
	require.True(t, ok)
	assert.Equal(t, SpeciesConfig{Name: "wheat", Initial: 5, DaysToGrow: 3, Required: 2, Yield: 5}, wheat)

	cow, ok := cfg.Species(KindAnimal, "cow")
	require.True(t, ok)
	assert.Equal(t, SpeciesConfig{Name: "cow", Initial: 2, DaysToGrow: 5, Required: 3, Yield: 2}, cow)

	require.Len(t, cfg.Schedule, 2)
	assert.Equal(t, RuleConfig{Kind: KindCrop, Type: "wheat", EveryDays: 3, Count: 1}, cfg.Schedule[0])
	assert.Equal(t, RuleConfig{Kind: KindAnimal, Type: "cow", EveryDays: 5, Count: 1}, cfg.Schedule[1])
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farm.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pools:\n  water: 7\nrun:\n  days: 3\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Pools.Water)
	assert.Equal(t, 50, cfg.Pools.Food, "keys absent from the user file keep their default")
	assert.Equal(t, 3, cfg.Run.Days)
	assert.Len(t, cfg.Crops, 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidateSuggestsTypeName(t *testing.T) {
	cfg := Default()
	cfg.Schedule[0].Type = "wheet"

	err := cfg.Validate()
	require.Error(t, err)

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "schedule[0].type", fe.Field)
	assert.Contains(t, fe.Msg, `did you mean "wheat"`)
}

func TestValidateCollectsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Pools.Water = -1
	cfg.Crops[0].DaysToGrow = 0
	cfg.Schedule[1].Kind = "tractor"

	err := cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "pools.water")
	assert.Contains(t, msg, "crops[0].days_to_grow")
	assert.Contains(t, msg, "schedule[1].kind")
}

func TestValidateNoSuggestionWhenFarAway(t *testing.T) {
	cfg := Default()
	cfg.Schedule[1].Type = "chicken"

	err := cfg.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "did you mean")
}

func TestCloneIsIndependent(t *testing.T) {
	cfg := Default()
	clone := cfg.Clone()
	clone.Crops[0].Initial = 99
	clone.Pools.Water = 1

	assert.Equal(t, 5, cfg.Crops[0].Initial)
	assert.Equal(t, 100, cfg.Pools.Water)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Pools.Food = 12
	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, cfg.WriteYAML(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 12, loaded.Pools.Food)
	assert.Equal(t, cfg.Schedule, loaded.Schedule)
}

func TestMustInit(t *testing.T) {
	t.Cleanup(func() { global = nil })

	assert.Panics(t, func() { MustInit(filepath.Join(t.TempDir(), "nope.yaml")) })

	require.NotPanics(t, func() { MustInit("") })
	assert.Equal(t, 100, Cfg().Pools.Water)
}
