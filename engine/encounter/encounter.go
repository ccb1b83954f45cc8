// Package encounter implements the two-roll detection model that decides
// when exploration produces combat: a signal-lock roll against the run's
// accumulated detection, then a per-hex encounter roll. Arrival at a
// point of interest uses a single security roll with threat-scaled
// bonuses. Every stream derives from the run seed plus a positional
// offset, so replaying identical decisions reproduces identical
// encounters.
package encounter

import (
	"github.com/arcov/driftdeck/engine"
	"github.com/arcov/driftdeck/engine/state"
	"github.com/arcov/driftdeck/tuning"
	"github.com/arcov/driftdeck/types"
)

// Threat is the coarse banding of the run's detection value.
type Threat string

const (
	ThreatLow    Threat = "low"
	ThreatMedium Threat = "medium"
	ThreatHigh   Threat = "high"
)

// ThreatLevel bands a detection value: low under 34, medium under 67,
// high above.
func ThreatLevel(detection int) Threat {
	switch {
	case detection < 34:
		return ThreatLow
	case detection < 67:
		return ThreatMedium
	default:
		return ThreatHigh
	}
}

// Outcome of a point-of-interest arrival roll.
type Outcome string

const (
	OutcomeCombat Outcome = "combat"
	OutcomeLoot   Outcome = "loot"
)

// Encounter describes a combat encounter produced by exploration. Reward
// calculation always delegates to the reward resolver; this package never
// invents loot.
type Encounter struct {
	OpponentID string
	Ambush     bool // combat on an otherwise-empty hex
	Hex        types.Hex
}

// Resolver owns the encounter rolls for a run.
type Resolver struct {
	Catalog *state.Catalog
	Tuning  *tuning.Config
}

// NewResolver creates an encounter resolver.
func NewResolver(cat *state.Catalog, tun *tuning.Config) *Resolver {
	return &Resolver{Catalog: cat, Tuning: tun}
}

// AdvanceDetection applies the per-move detection increase: a random
// increment from the tier's detect-rate band, capped at 100. The stream
// derives from the run seed and move index so the ramp replays exactly,
// on an offset of its own so it never shares a stream with any hex roll
// of the same move.
func (r *Resolver) AdvanceDetection(run *state.Run) int {
	t := r.Tuning.Tier(run.Tier)
	stream := engine.NewStream(engine.SubSeed(run.Seed, engine.DetectOffset(run.MoveIndex)))
	inc := stream.Range(t.DetectRate.Min, t.DetectRate.Max)
	run.RaiseDetection(inc)
	return inc
}

// CheckMovement runs the two-roll model for one hex step. Roll one is
// the signal lock against the run's detection chance: if it fails, no
// encounter is possible for this hex, full stop. Roll two draws against
// the hex's own encounter chance — POI base plus zone bonus, or the
// tier's empty-hex default — and on success yields combat: an ambush on
// an open hex, or reinforced odds at a POI.
func (r *Resolver) CheckMovement(run *state.Run, hex types.Hex) *Encounter {
	stream := engine.NewStream(engine.SubSeed(run.Seed, engine.HexOffset(hex.Q, hex.R, run.MoveIndex)))

	if !stream.Percent(run.Detection) {
		return nil
	}

	chance := r.hexChance(run, hex)
	if !stream.Percent(chance) {
		return nil
	}

	return &Encounter{
		OpponentID: r.pickOpponent(ThreatLevel(run.Detection), stream),
		Ambush:     hex.POI == "",
		Hex:        hex,
	}
}

// hexChance is the hex's own encounter chance for roll two.
func (r *Resolver) hexChance(run *state.Run, hex types.Hex) int {
	z := r.Tuning.Zone(hex.Zone)
	if hex.POI != "" {
		if poi, ok := r.Catalog.POIs[hex.POI]; ok {
			return poi.EncounterChance + z.EncounterBonus
		}
	}
	return r.Tuning.Tier(run.Tier).EmptyHexChance + z.EncounterBonus
}

// CheckPOIArrival rolls once against baseSecurity plus the threat bonus:
// zero at low threat, one rolled tier bonus band at medium, and the sum
// of two independently-rolled bands at high — two rolls, not one doubled
// value. Rolling below the threshold means combat; otherwise safe loot.
func (r *Resolver) CheckPOIArrival(run *state.Run, poi types.POIDef, q, rr int) Outcome {
	stream := engine.NewStream(engine.SubSeed(run.Seed, engine.POIOffset(q, rr)))
	t := r.Tuning.Tier(run.Tier)

	threshold := poi.BaseSecurity
	switch ThreatLevel(run.Detection) {
	case ThreatMedium:
		threshold += stream.Range(t.ThreatBonus.Min, t.ThreatBonus.Max)
	case ThreatHigh:
		threshold += stream.Range(t.ThreatBonus.Min, t.ThreatBonus.Max)
		threshold += stream.Range(t.ThreatBonus.Min, t.ThreatBonus.Max)
	}

	if stream.Float64()*100 < float64(threshold) {
		return OutcomeCombat
	}
	return OutcomeLoot
}

// PickOpponent draws an opponent for a POI fight, seeded from the POI's
// coordinates so the guard is reproducible for that location and run.
func (r *Resolver) PickOpponent(run *state.Run, q, rr int) string {
	stream := engine.NewStream(engine.SubSeed(run.Seed, engine.POIOffset(q, rr)+1))
	return r.pickOpponent(ThreatLevel(run.Detection), stream)
}

// pickOpponent draws from the threat band's weighted opponent table.
// An empty or all-zero table returns the first catalog-known id of the
// band, or empty — callers treat empty as "generic opposition".
func (r *Resolver) pickOpponent(threat Threat, stream *engine.Stream) string {
	table := r.Tuning.Opponents[string(threat)]
	if len(table) == 0 {
		return ""
	}
	entries := make([]types.WeightEntry, len(table))
	for i, o := range table {
		entries[i] = types.WeightEntry{Label: o.ID, Weight: o.Weight}
	}
	wt := engine.WeightTable{Entries: entries, Default: table[0].ID}
	return wt.Roll(stream)
}
