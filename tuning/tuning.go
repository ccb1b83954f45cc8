// Package tuning loads the numeric balance configuration: per-tier rarity
// weights and detection rates, per-zone slot weights and multipliers, and
// threat-banded opponent tables. Content identity lives in the Lua
// catalog; everything here is numbers.
package tuning

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/arcov/driftdeck/types"
)

// Range is an inclusive integer interval rolled uniformly.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

// Tier holds the numeric tuning for one map tier.
type Tier struct {
	// Rarity weights keyed by rarity name; iterated in canonical ladder
	// order, so rolls stay deterministic despite the YAML map.
	Rarity map[string]int `yaml:"rarity"`

	// DetectRate is the random per-move detection increment band.
	DetectRate Range `yaml:"detect_rate"`

	// ThreatBonus is one POI security bonus band. Medium threat rolls it
	// once; high threat sums two independent rolls.
	ThreatBonus Range `yaml:"threat_bonus"`

	// EmptyHexChance is the encounter chance for hexes without a POI.
	EmptyHexChance int `yaml:"empty_hex_chance"`

	// ClassBands maps a POI reward band index to weights over drone
	// class tiers (index 0 = class 1).
	ClassBands map[int][]int `yaml:"class_bands"`
}

// Zone holds the numeric tuning for one map zone.
type Zone struct {
	// SlotWeights weight salvage slot counts 1..5 (index 0 = one slot).
	// A zero weight means that count is never produced in this zone.
	SlotWeights []int `yaml:"slot_weights"`

	// CardCounts optionally weight pack card counts (index = count).
	// Empty means uniform over the pack's [min, max].
	CardCounts []int `yaml:"card_counts"`

	CreditMultiplier float64 `yaml:"credit_multiplier"`
	EncounterBonus   int     `yaml:"encounter_bonus"`
}

// OpponentWeight is one entry of a threat-banded opponent table.
type OpponentWeight struct {
	ID     string `yaml:"id"`
	Weight int    `yaml:"weight"`
}

// Config is the full tuning document.
type Config struct {
	Tiers map[int]Tier    `yaml:"tiers"`
	Zones map[string]Zone `yaml:"zones"`

	// Opponents tables keyed by threat band: "low", "medium", "high".
	Opponents map[string][]OpponentWeight `yaml:"opponents"`
}

// Default returns the embedded baseline tuning. A tuning file overrides
// whole sections of it.
func Default() *Config {
	return &Config{
		Tiers: map[int]Tier{
			1: {
				Rarity:         map[string]int{"common": 60, "uncommon": 25, "rare": 11, "epic": 3, "legendary": 1},
				DetectRate:     Range{Min: 4, Max: 10},
				ThreatBonus:    Range{Min: 5, Max: 12},
				EmptyHexChance: 10,
				ClassBands:     map[int][]int{1: {70, 25, 5}, 2: {40, 40, 20}},
			},
			2: {
				Rarity:         map[string]int{"common": 40, "uncommon": 30, "rare": 20, "epic": 8, "legendary": 2},
				DetectRate:     Range{Min: 6, Max: 14},
				ThreatBonus:    Range{Min: 8, Max: 18},
				EmptyHexChance: 15,
				ClassBands:     map[int][]int{1: {50, 35, 15}, 2: {25, 45, 30}},
			},
			3: {
				Rarity:         map[string]int{"common": 25, "uncommon": 30, "rare": 25, "epic": 15, "legendary": 5},
				DetectRate:     Range{Min: 8, Max: 18},
				ThreatBonus:    Range{Min: 10, Max: 25},
				EmptyHexChance: 20,
				ClassBands:     map[int][]int{1: {35, 40, 25}, 2: {15, 40, 45}},
			},
		},
		Zones: map[string]Zone{
			"fringe": {
				SlotWeights:      []int{30, 40, 25, 5, 0},
				CreditMultiplier: 1.0,
				EncounterBonus:   0,
			},
			"midline": {
				SlotWeights:      []int{10, 30, 35, 20, 5},
				CardCounts:       []int{0, 0, 30, 50, 20},
				CreditMultiplier: 1.25,
				EncounterBonus:   5,
			},
			"core": {
				SlotWeights:      []int{0, 15, 35, 35, 15},
				CardCounts:       []int{0, 0, 10, 40, 50},
				CreditMultiplier: 1.6,
				EncounterBonus:   12,
			},
		},
		Opponents: map[string][]OpponentWeight{
			"low":    {{ID: "scavenger", Weight: 70}, {ID: "patrol", Weight: 30}},
			"medium": {{ID: "patrol", Weight: 50}, {ID: "hunter", Weight: 40}, {ID: "scavenger", Weight: 10}},
			"high":   {{ID: "hunter", Weight: 55}, {ID: "enforcer", Weight: 40}, {ID: "patrol", Weight: 5}},
		},
	}
}

// Load reads a YAML tuning file and merges its sections over the
// defaults. A missing path returns the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading tuning file %s: %w", path, err)
	}
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing tuning file %s: %w", path, err)
	}
	cfg.merge(&file)
	return cfg, nil
}

// merge overlays non-empty sections of file onto c, per key.
func (c *Config) merge(file *Config) {
	for k, v := range file.Tiers {
		c.Tiers[k] = v
	}
	for k, v := range file.Zones {
		c.Zones[k] = v
	}
	for k, v := range file.Opponents {
		c.Opponents[k] = v
	}
}

// Tier returns the tuning for a tier, clamped to the nearest defined
// tier when the requested one is missing — out of range or an interior
// gap alike. Ties resolve to the lower tier. With no tiers defined at
// all it returns a zero Tier.
func (c *Config) Tier(tier int) Tier {
	if t, ok := c.Tiers[tier]; ok {
		return t
	}
	best, found := 0, false
	for k := range c.Tiers {
		if !found {
			best, found = k, true
			continue
		}
		dk, db := absInt(k-tier), absInt(best-tier)
		if dk < db || (dk == db && k < best) {
			best = k
		}
	}
	if !found {
		return Tier{}
	}
	return c.Tiers[best]
}

func absInt(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// Zone returns the tuning for a zone, or a neutral default for unknown
// zones (uniform slot weights, multiplier 1).
func (c *Config) Zone(zone string) Zone {
	if z, ok := c.Zones[zone]; ok {
		return z
	}
	return Zone{
		SlotWeights:      []int{20, 20, 20, 20, 20},
		CreditMultiplier: 1.0,
	}
}

// RarityTable builds the tier's rarity weight table in canonical ladder
// order, so the walk order never depends on map iteration.
func (c *Config) RarityTable(tier int) []types.WeightEntry {
	t := c.Tier(tier)
	entries := make([]types.WeightEntry, 0, len(t.Rarity))
	for _, r := range types.RarityOrder() {
		entries = append(entries, types.WeightEntry{Label: r.String(), Weight: t.Rarity[r.String()]})
	}
	return entries
}

// AllowedRarities returns the rarities with weight > 0 for a tier.
func (c *Config) AllowedRarities(tier int) map[types.Rarity]bool {
	t := c.Tier(tier)
	allowed := map[types.Rarity]bool{}
	for _, r := range types.RarityOrder() {
		if t.Rarity[r.String()] > 0 {
			allowed[r] = true
		}
	}
	return allowed
}
