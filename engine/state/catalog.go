// Package state holds the immutable compiled catalog and the mutable
// exploration-run state, with lookup helpers layered over both.
package state

import "github.com/arcov/driftdeck/types"

// Catalog holds the immutable game content compiled from Lua. Slices keep
// declaration order so every filter-then-pick walk is deterministic.
type Catalog struct {
	Game      types.GameDef
	Cards     []types.Card
	Drones    []types.Drone
	Salvage   []types.SalvageItem
	Packs     map[string]types.PackDef
	POIs      map[string]types.POIDef
	Opponents map[string]types.OpponentDef

	// Starter pools: content treated as always-owned and valueless.
	// Excluded from every reward stage.
	StarterCards  map[string]bool
	StarterDrones map[string]bool

	cardByID map[string]int
}

// Index builds the internal lookup maps. Called once after compilation.
func (c *Catalog) Index() {
	c.cardByID = make(map[string]int, len(c.Cards))
	for i, card := range c.Cards {
		c.cardByID[card.ID] = i
	}
	if c.StarterCards == nil {
		c.StarterCards = map[string]bool{}
	}
	if c.StarterDrones == nil {
		c.StarterDrones = map[string]bool{}
	}
}

// CardByID returns a card by id.
func (c *Catalog) CardByID(id string) (types.Card, bool) {
	i, ok := c.cardByID[id]
	if !ok {
		return types.Card{}, false
	}
	return c.Cards[i], true
}

// IsStarterCard reports whether a card belongs to the permanent starter
// catalog.
func (c *Catalog) IsStarterCard(id string) bool {
	return c.StarterCards[id]
}

// IsStarterDrone reports whether a drone belongs to the permanent starter
// catalog.
func (c *Catalog) IsStarterDrone(name string) bool {
	return c.StarterDrones[name]
}

// FilterCards returns catalog cards passing the predicate, in declaration
// order, always excluding starter cards.
func (c *Catalog) FilterCards(keep func(types.Card) bool) []types.Card {
	var out []types.Card
	for _, card := range c.Cards {
		if c.StarterCards[card.ID] {
			continue
		}
		if keep(card) {
			out = append(out, card)
		}
	}
	return out
}

// FilterDrones returns catalog drones passing the predicate, in
// declaration order, always excluding starter drones.
func (c *Catalog) FilterDrones(keep func(types.Drone) bool) []types.Drone {
	var out []types.Drone
	for _, d := range c.Drones {
		if c.StarterDrones[d.Name] {
			continue
		}
		if keep(d) {
			out = append(out, d)
		}
	}
	return out
}

// SalvageForValue maps a rolled credit value to the salvage item whose own
// value range brackets it. When no range brackets the value, the item with
// the nearest band edge wins; ties resolve to the earlier declaration.
// One-way and deterministic for the same value.
func (c *Catalog) SalvageForValue(value int) (types.SalvageItem, bool) {
	if len(c.Salvage) == 0 {
		return types.SalvageItem{}, false
	}
	best := -1
	bestDist := 0
	for i, item := range c.Salvage {
		if value >= item.MinValue && value <= item.MaxValue {
			return item, true
		}
		d := item.MinValue - value
		if value > item.MaxValue {
			d = value - item.MaxValue
		}
		if best == -1 || d < bestDist {
			best = i
			bestDist = d
		}
	}
	return c.Salvage[best], true
}

// SalvageOfRarity returns the salvage items of exactly the given rarity.
func (c *Catalog) SalvageOfRarity(r types.Rarity) []types.SalvageItem {
	var out []types.SalvageItem
	for _, item := range c.Salvage {
		if item.Rarity == r {
			out = append(out, item)
		}
	}
	return out
}
