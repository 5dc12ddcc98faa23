package systems

import "github.com/pthm-cable/farmstead/components"

// Rule adds Count entities of Type on every day divisible by EveryDays.
type Rule struct {
	Kind      components.Kind
	Type      string
	EveryDays int
	Count     int
	Params    GrowthParams
}

// Due reports whether the rule fires on day.
func (r Rule) Due(day int) bool {
	return r.EveryDays > 0 && day%r.EveryDays == 0
}

// Injection records entities added by a rule.
type Injection struct {
	Kind  components.Kind
	Type  string
	Count int
}

// Schedule is an ordered list of injection rules.
type Schedule []Rule

// Apply adds the entities of every rule due on day, in rule order.
// Crop rules go to crops and animal rules to animals.
func (s Schedule) Apply(day int, crops, animals *EntityRegistry) []Injection {
	var injected []Injection
	for _, r := range s {
		if !r.Due(day) || r.Count == 0 {
			continue
		}
		reg := crops
		if r.Kind == components.KindAnimal {
			reg = animals
		}
		reg.Add(r.Type, r.Count, r.Params)
		injected = append(injected, Injection{Kind: r.Kind, Type: r.Type, Count: r.Count})
	}
	return injected
}
