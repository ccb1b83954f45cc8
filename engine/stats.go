package engine

import "github.com/arcov/driftdeck/types"

// Modifier is one active stat modifier: a lane-scoped buff or debuff.
// Lane -1 applies to a whole side.
type Modifier struct {
	Side  string
	Lane  int
	Stat  string
	Delta int
}

// ModifierStats is the effective-stats routine shared with the combat
// layer: base stat plus the sum of matching active modifiers. Condition
// evaluation uses it for attack/speed when full context is available.
type ModifierStats struct {
	Modifiers []Modifier
}

// Effective returns the drone's stat with active modifiers applied. A
// missing base stat counts as 0.
func (m *ModifierStats) Effective(d types.DroneSnapshot, stat string) (int, bool) {
	v := d.Stats[stat]
	for _, mod := range m.Modifiers {
		if mod.Stat != stat {
			continue
		}
		if mod.Side != "" && mod.Side != d.Side {
			continue
		}
		if mod.Lane != -1 && mod.Lane != d.Lane {
			continue
		}
		v += mod.Delta
	}
	return v, true
}
