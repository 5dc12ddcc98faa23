package config

import (
	"errors"
	"fmt"

	"github.com/agnivade/levenshtein"
)

// FieldError describes one invalid configuration value.
type FieldError struct {
	Field string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Msg
}

// maxSuggestDistance bounds how far a misspelled type name may be from a
// configured one before no suggestion is offered.
const maxSuggestDistance = 3

// Validate checks the configuration and returns every problem found, joined.
func (c *Config) Validate() error {
	var errs []error
	add := func(field, format string, args ...any) {
		errs = append(errs, &FieldError{Field: field, Msg: fmt.Sprintf(format, args...)})
	}

	if c.Pools.Water < 0 {
		add("pools.water", "must not be negative, got %d", c.Pools.Water)
	}
	if c.Pools.Food < 0 {
		add("pools.food", "must not be negative, got %d", c.Pools.Food)
	}
	if c.Run.Days < 0 {
		add("run.days", "must not be negative, got %d", c.Run.Days)
	}

	crops := validateSpecies("crops", c.Crops, add)
	animals := validateSpecies("animals", c.Animals, add)

	for i, r := range c.Schedule {
		field := fmt.Sprintf("schedule[%d]", i)
		var known []string
		switch r.Kind {
		case KindCrop:
			known = crops
		case KindAnimal:
			known = animals
		default:
			add(field+".kind", "must be %q or %q, got %q", KindCrop, KindAnimal, r.Kind)
			continue
		}
		if !contains(known, r.Type) {
			if s := suggest(r.Type, known); s != "" {
				add(field+".type", "unknown %s type %q (did you mean %q?)", r.Kind, r.Type, s)
			} else {
				add(field+".type", "unknown %s type %q", r.Kind, r.Type)
			}
		}
		if r.EveryDays <= 0 {
			add(field+".every_days", "must be positive, got %d", r.EveryDays)
		}
		if r.Count < 0 {
			add(field+".count", "must not be negative, got %d", r.Count)
		}
	}

	return errors.Join(errs...)
}

// validateSpecies checks one species list and returns the names it declares.
func validateSpecies(list string, species []SpeciesConfig, add func(field, format string, args ...any)) []string {
	names := make([]string, 0, len(species))
	for i, s := range species {
		field := fmt.Sprintf("%s[%d]", list, i)
		if s.Name == "" {
			add(field+".name", "must not be empty")
		} else if contains(names, s.Name) {
			add(field+".name", "duplicate type %q", s.Name)
		}
		if s.DaysToGrow <= 0 {
			add(field+".days_to_grow", "must be positive, got %d", s.DaysToGrow)
		}
		if s.Required < 0 {
			add(field+".required", "must not be negative, got %d", s.Required)
		}
		if s.Yield < 0 {
			add(field+".yield", "must not be negative, got %d", s.Yield)
		}
		if s.Initial < 0 {
			add(field+".initial", "must not be negative, got %d", s.Initial)
		}
		names = append(names, s.Name)
	}
	return names
}

// suggest returns the closest known name within maxSuggestDistance edits, or "".
func suggest(name string, known []string) string {
	best, bestDist := "", maxSuggestDistance+1
	for _, k := range known {
		if d := levenshtein.ComputeDistance(name, k); d < bestDist {
			best, bestDist = k, d
		}
	}
	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
