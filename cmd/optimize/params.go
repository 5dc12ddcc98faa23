// Package main searches for the smallest starting pools that keep a farm supplied.
package main

import (
	"math"

	"github.com/pthm-cable/farmstead/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the starting-pool parameters, defaulting to the base config.
func NewParamVector(base *config.Config, maxPool float64) *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "water", Path: "pools.water", Min: 0, Max: maxPool, Default: float64(base.Pools.Water)},
			{Name: "food", Path: "pools.food", Min: 0, Max: maxPool, Default: float64(base.Pools.Food)},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = math.Min(math.Max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Pools rounds clamped values to whole pool units.
func (pv *ParamVector) Pools(values []float64) (water, food int) {
	clamped := pv.Clamp(values)
	return int(math.Round(clamped[0])), int(math.Round(clamped[1]))
}

// ApplyToConfig applies parameter values to a Config struct.
// Order must match Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	cfg.Pools.Water, cfg.Pools.Food = pv.Pools(values)
}
