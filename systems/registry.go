// Package systems provides the farm ECS systems: resource pools, entity registries and the daily distribution cycle.
package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/farmstead/components"
)

// GrowthParams are the immutable parameters given to every new entity of a type.
type GrowthParams struct {
	DaysToGrow int
	Required   int
	Yield      int
}

// EntityState is a read-only copy of one entity's components.
type EntityState struct {
	Type       string `json:"type"`
	Stage      int    `json:"stage"`
	DaysToGrow int    `json:"days_to_grow"`
	Required   int    `json:"required"`
	Yield      int    `json:"yield"`
}

// EntityRegistry groups the entities of one kind by type name.
// Component data lives in the ECS world; the registry keeps per-type order.
// Types are enumerated in the order they were first added.
type EntityRegistry struct {
	kind  components.Kind
	world *ecs.World

	mapper  *ecs.Map4[components.Growth, components.Upkeep, components.Produce, components.Tag]
	growth  *ecs.Map1[components.Growth]
	upkeep  *ecs.Map1[components.Upkeep]
	produce *ecs.Map1[components.Produce]

	types  []string
	byType map[string][]ecs.Entity
}

// NewEntityRegistry creates an empty registry of the given kind on world w.
func NewEntityRegistry(w *ecs.World, kind components.Kind) *EntityRegistry {
	return &EntityRegistry{
		kind:    kind,
		world:   w,
		mapper:  ecs.NewMap4[components.Growth, components.Upkeep, components.Produce, components.Tag](w),
		growth:  ecs.NewMap1[components.Growth](w),
		upkeep:  ecs.NewMap1[components.Upkeep](w),
		produce: ecs.NewMap1[components.Produce](w),
		byType:  make(map[string][]ecs.Entity),
	}
}

// Kind returns the kind of entity this registry holds.
func (r *EntityRegistry) Kind() components.Kind {
	return r.kind
}

// Resource returns the pool this registry's entities draw on.
func (r *EntityRegistry) Resource() components.Resource {
	return r.kind.Resource()
}

// Add appends count new entities of typeName at stage 0.
func (r *EntityRegistry) Add(typeName string, count int, params GrowthParams) {
	list, ok := r.byType[typeName]
	if !ok {
		r.types = append(r.types, typeName)
	}
	for i := 0; i < count; i++ {
		growth := components.Growth{DaysToGrow: params.DaysToGrow}
		upkeep := components.Upkeep{Required: params.Required}
		produce := components.Produce{Yield: params.Yield}
		tag := components.Tag{Kind: r.kind, Type: typeName}
		list = append(list, r.mapper.NewEntity(&growth, &upkeep, &produce, &tag))
	}
	r.byType[typeName] = list
}

// Types returns all registered type names in first-seen order.
func (r *EntityRegistry) Types() []string {
	return append([]string(nil), r.types...)
}

// Each calls fn for every registered type in first-seen order.
// fn must not add or remove entities.
func (r *EntityRegistry) Each(fn func(typeName string, entities []ecs.Entity)) {
	for _, t := range r.types {
		fn(t, r.byType[t])
	}
}

// Count returns the number of entities of typeName.
func (r *EntityRegistry) Count(typeName string) int {
	return len(r.byType[typeName])
}

// Total returns the number of entities across all types.
func (r *EntityRegistry) Total() int {
	n := 0
	for _, list := range r.byType {
		n += len(list)
	}
	return n
}

// Demand returns the summed upkeep of all entities of typeName.
func (r *EntityRegistry) Demand(typeName string) int {
	total := 0
	for _, e := range r.byType[typeName] {
		total += r.upkeep.Get(e).Required
	}
	return total
}

// GrowAll advances every entity of typeName by one stage and returns how many were fed.
func (r *EntityRegistry) GrowAll(typeName string) int {
	list := r.byType[typeName]
	for _, e := range list {
		r.growth.Get(e).Grow()
	}
	return len(list)
}

// RemoveMatured removes every mature entity of typeName in one pass and
// returns how many were removed and the sum of their yields.
// Remaining entities keep their relative order.
func (r *EntityRegistry) RemoveMatured(typeName string) (removed, totalYield int) {
	list := r.byType[typeName]
	kept := list[:0]
	for _, e := range list {
		if !r.growth.Get(e).IsMature() {
			kept = append(kept, e)
			continue
		}
		totalYield += r.produce.Get(e).Yield
		removed++
		r.world.RemoveEntity(e)
	}
	if _, ok := r.byType[typeName]; ok {
		r.byType[typeName] = kept
	}
	return removed, totalYield
}

// Snapshot returns a copy of the state of every entity of typeName.
func (r *EntityRegistry) Snapshot(typeName string) []EntityState {
	list := r.byType[typeName]
	out := make([]EntityState, 0, len(list))
	for _, e := range list {
		g := r.growth.Get(e)
		out = append(out, EntityState{
			Type:       typeName,
			Stage:      g.Stage,
			DaysToGrow: g.DaysToGrow,
			Required:   r.upkeep.Get(e).Required,
			Yield:      r.produce.Get(e).Yield,
		})
	}
	return out
}
