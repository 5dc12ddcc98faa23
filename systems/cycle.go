package systems

import (
	"github.com/pthm-cable/farmstead/components"
)

// Outcome records what happened to one type during one day's distribution.
type Outcome struct {
	Kind       components.Kind
	Type       string
	Resource   components.Resource
	Required   int  // total upkeep demanded by the type
	Sufficient bool // pool covered the demand and the type grew
	Empty      bool // no entities of the type were present
	Grown      int
	Harvested  int
	Yield      int // food credited by the harvest
	Population int // entities left after harvest
}

// Distribute runs one day of growth and harvest for every type in reg.
//
// Each type is tested on its own: its whole demand is debited from the
// registry's pool, and if that drives the pool negative the debit is rolled
// back and the type does not grow today. Harvest runs regardless, and the
// yield of every harvested entity is credited to the food pool whatever the
// registry's own resource is.
func Distribute(reg *EntityRegistry, pool *ResourcePool) []Outcome {
	resource := reg.Resource()
	outcomes := make([]Outcome, 0, len(reg.types))

	for _, typeName := range reg.types {
		out := Outcome{
			Kind:     reg.Kind(),
			Type:     typeName,
			Resource: resource,
			Empty:    reg.Count(typeName) == 0,
		}

		out.Required = reg.Demand(typeName)
		pool.Debit(resource, out.Required)
		if pool.Level(resource) >= 0 {
			out.Sufficient = true
			out.Grown = reg.GrowAll(typeName)
		} else {
			pool.Credit(resource, out.Required)
		}

		out.Harvested, out.Yield = reg.RemoveMatured(typeName)
		pool.Credit(components.ResourceFood, out.Yield)
		out.Population = reg.Count(typeName)

		outcomes = append(outcomes, out)
	}

	return outcomes
}
