// Package types defines the shared data structures for the DriftDeck
// procedural core. This package contains only type definitions — no logic.
package types

// Rarity is the fixed reward rarity ladder, ordered lowest to highest.
type Rarity int

const (
	Common Rarity = iota
	Uncommon
	Rare
	Epic
	Legendary
)

// MaxRarity is the top of the ladder; exhaustion fallbacks cap here.
const MaxRarity = Legendary

// rarityNames is the canonical order used for weight-table iteration.
var rarityNames = [...]string{"common", "uncommon", "rare", "epic", "legendary"}

func (r Rarity) String() string {
	if r < Common || r > Legendary {
		return "common"
	}
	return rarityNames[r]
}

// ParseRarity maps a rarity name to its ladder position.
func ParseRarity(name string) (Rarity, bool) {
	for i, n := range rarityNames {
		if n == name {
			return Rarity(i), true
		}
	}
	return Common, false
}

// RarityOrder lists all rarities lowest to highest, for stable iteration.
func RarityOrder() []Rarity {
	return []Rarity{Common, Uncommon, Rare, Epic, Legendary}
}

// WeightEntry is one label→weight pair. Tables preserve declaration order;
// zero-weight entries are excluded from the sampling space.
type WeightEntry struct {
	Label  string
	Weight int
}

// Card is a playable card from the static catalog.
type Card struct {
	ID           string
	Name         string
	Type         string // "assault", "support", "tactic", ...
	Rarity       Rarity
	Stats        map[string]int
	Conditionals []ConditionalEffectDef
}

// Drone is an unlockable drone blueprint from the static catalog.
type Drone struct {
	Name   string
	Class  int // class band, 1..N
	Rarity Rarity
	Stats  map[string]int
}

// SalvageItem is a named loot item covering a credit-value band.
type SalvageItem struct {
	ID       string
	Name     string
	Rarity   Rarity
	MinValue int
	MaxValue int
}

// PackDef describes how to roll a batch of card rewards. Immutable
// configuration compiled from Lua; the resolver never mutates it.
type PackDef struct {
	Type           string
	MinCards       int
	MaxCards       int
	GuaranteedType string        // forced type for slot 0; empty = none
	TypeWeights    []WeightEntry // secondary-slot card type weights
	CreditMin      int
	CreditMax      int
	Token          string // non-empty: cache pack with a guaranteed token slot
}

// POIDef is a map point of interest: its reward band, security value and
// encounter odds.
type POIDef struct {
	ID              string
	Name            string
	Zone            string
	RewardBand      int // drone class-band distribution index
	BaseSecurity    int // 0..100, POI-arrival combat threshold base
	EncounterChance int // 0..100, movement-roll base chance
}

// OpponentDef identifies a combat opponent that ambushes or guards a POI.
type OpponentDef struct {
	ID   string
	Name string
}

// Hex is one map cell during exploration.
type Hex struct {
	Q    int
	R    int
	Zone string
	POI  string // POI id, empty for an open hex
}

// SlotKind discriminates RewardSlot contents.
type SlotKind string

const (
	SlotCard               SlotKind = "card"
	SlotSalvage            SlotKind = "salvage"
	SlotToken              SlotKind = "token"
	SlotBlueprintExhausted SlotKind = "blueprint_exhausted"
)

// RewardSlot is one produced reward. Revealed starts false and is flipped
// by the presentation layer, never by the resolver.
type RewardSlot struct {
	Kind     SlotKind
	Card     *Card
	Salvage  *SalvageItem
	Token    string
	Revealed bool
}

// Timing says when a conditional effect is evaluated relative to its
// owning card/ability's primary effect.
type Timing string

const (
	Pre  Timing = "pre"
	Post Timing = "post"
)

// Condition is a predicate checked against a combat context.
type Condition struct {
	Type   string // "target_stat_lte", "destroyed", "lane_advantage", ...
	Params map[string]any
}

// Effect is a single effect instruction, routed by type.
type Effect struct {
	Type   string // "damage", "bonus_damage", "repeat_turn", "draw_card", ...
	Params map[string]any
}

// ConditionalEffectDef is a statically declared "if X then grant Y" clause
// attached to a card or ability.
type ConditionalEffectDef struct {
	ID        string
	Timing    Timing
	Condition Condition
	Effect    Effect
}

// EffectResult is the outcome of a primary effect's execution. Fields
// populate only for effects that produce the corresponding signal.
type EffectResult struct {
	WasDestroyed  bool
	ShieldDamage  int
	HullDamage    int
	WasSuccessful bool
	FromLane      int
	ToLane        int
	HasMove       bool // true when FromLane/ToLane are meaningful
}

// DroneSnapshot is an immutable view of a drone during condition
// evaluation. Stats holds base values; effective values come from an
// EffectiveStats calculator when full context is available.
type DroneSnapshot struct {
	Name      string
	Side      string // "player" or "enemy"; empty when unknown
	Lane      int    // -1 when unknown
	Marked    bool
	Exhausted bool
	Stats     map[string]int
}

// EffectiveStats computes a drone's stat including active modifiers.
// Supplied by the combat layer; the evaluator falls back to the base stat
// when it is nil or the snapshot lacks side/lane context.
type EffectiveStats interface {
	Effective(d DroneSnapshot, stat string) (int, bool)
}

// CombatContext is the evaluation context for conditions. Lanes maps a
// side to all of its drones; a nil map means lane context is unavailable.
type CombatContext struct {
	Target       *DroneSnapshot
	ActorSide    string
	Lanes        map[string][]DroneSnapshot
	ActionsTaken int
	ActionsKnown bool // false: action counter not supplied
	Result       *EffectResult
	Stats        EffectiveStats
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title     string
	Author    string
	Version   string
	StartZone string
	Intro     string
}

// Event is emitted by engine operations for the shells to display or act on.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single engine operation.
type Result struct {
	Events []Event
	Output []string
}
