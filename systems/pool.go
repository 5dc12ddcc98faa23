package systems

import (
	"fmt"

	"github.com/pthm-cable/farmstead/components"
)

// ResourcePool holds the shared water and food stocks.
// It does no bounds checking; Distribute owns the sufficiency and rollback policy.
type ResourcePool struct {
	water int
	food  int
}

// NewResourcePool creates a pool with the given starting stocks.
func NewResourcePool(water, food int) *ResourcePool {
	return &ResourcePool{water: water, food: food}
}

// Debit subtracts amount from the named stock.
func (p *ResourcePool) Debit(r components.Resource, amount int) {
	*p.stock(r) -= amount
}

// Credit adds amount to the named stock.
func (p *ResourcePool) Credit(r components.Resource, amount int) {
	*p.stock(r) += amount
}

// Level returns the current value of the named stock.
func (p *ResourcePool) Level(r components.Resource) int {
	return *p.stock(r)
}

// Water returns the water stock.
func (p *ResourcePool) Water() int { return p.water }

// Food returns the food stock.
func (p *ResourcePool) Food() int { return p.food }

func (p *ResourcePool) stock(r components.Resource) *int {
	switch r {
	case components.ResourceWater:
		return &p.water
	case components.ResourceFood:
		return &p.food
	}
	panic(fmt.Sprintf("systems: unknown resource %v", r))
}
