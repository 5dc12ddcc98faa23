// Package components defines ECS components for the farm simulation.
package components

import "fmt"

// Kind distinguishes crops from animals. Each kind draws on exactly one pool.
type Kind uint8

const (
	KindCrop Kind = iota
	KindAnimal
)

// String returns the display name for a Kind.
func (k Kind) String() string {
	switch k {
	case KindCrop:
		return "crop"
	case KindAnimal:
		return "animal"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Resource returns the pool this kind consumes while growing.
func (k Kind) Resource() Resource {
	switch k {
	case KindCrop:
		return ResourceWater
	case KindAnimal:
		return ResourceFood
	}
	panic(fmt.Sprintf("components: no resource for %v", k))
}

// Resource names one of the shared pools.
type Resource uint8

const (
	ResourceWater Resource = iota
	ResourceFood
)

// String returns the pool name as it appears in the day report.
func (r Resource) String() string {
	switch r {
	case ResourceWater:
		return "water"
	case ResourceFood:
		return "food"
	}
	return fmt.Sprintf("Resource(%d)", uint8(r))
}

// Growth tracks progress towards maturity.
// Stage never exceeds DaysToGrow.
type Growth struct {
	Stage      int
	DaysToGrow int
}

// Grow advances one stage unless already mature.
func (g *Growth) Grow() {
	if g.Stage < g.DaysToGrow {
		g.Stage++
	}
}

// IsMature reports whether the entity can be harvested.
func (g *Growth) IsMature() bool {
	return g.Stage >= g.DaysToGrow
}

// Upkeep is the amount of the kind's pool resource consumed per day of growth.
type Upkeep struct {
	Required int
}

// Produce is the amount credited to the food pool when harvested.
type Produce struct {
	Yield int
}

// Tag identifies the entity's kind and type name.
type Tag struct {
	Kind Kind
	Type string
}
