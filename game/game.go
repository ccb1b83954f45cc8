// Package game wires the compiled catalog, numeric tuning and run state
// into step-style operations for the CLI and TUI shells. It is thin glue:
// all algorithmic weight lives in the engine subpackages it delegates to.
package game

import (
	"fmt"

	"github.com/arcov/driftdeck/engine"
	"github.com/arcov/driftdeck/engine/conditional"
	"github.com/arcov/driftdeck/engine/conditions"
	"github.com/arcov/driftdeck/engine/encounter"
	"github.com/arcov/driftdeck/engine/reward"
	"github.com/arcov/driftdeck/engine/state"
	"github.com/arcov/driftdeck/tuning"
	"github.com/arcov/driftdeck/types"
)

// Engine holds the immutable content and the mutable run.
type Engine struct {
	Catalog    *state.Catalog
	Tuning     *tuning.Config
	Run        *state.Run
	Rewards    *reward.Resolver
	Encounters *encounter.Resolver
	Evaluator  *conditions.Evaluator
	Processor  *conditional.Processor
}

// New creates an engine and starts a run in the catalog's start zone.
func New(cat *state.Catalog, tun *tuning.Config, seed int64, tier int) *Engine {
	eval := conditions.New()
	return &Engine{
		Catalog:    cat,
		Tuning:     tun,
		Run:        state.NewRun(seed, tier, cat.Game.StartZone),
		Rewards:    reward.NewResolver(cat, tun),
		Encounters: encounter.NewResolver(cat, tun),
		Evaluator:  eval,
		Processor:  conditional.New(eval),
	}
}

// Move advances one hex step: detection rises, then the two-roll model
// decides whether this step produces an encounter.
func (e *Engine) Move(hex types.Hex) types.Result {
	var res types.Result
	e.Run.MoveIndex++
	inc := e.Encounters.AdvanceDetection(e.Run)
	res.Output = append(res.Output,
		fmt.Sprintf("Moved to (%d,%d). Detection +%d → %d%% (%s threat).",
			hex.Q, hex.R, inc, e.Run.Detection, encounter.ThreatLevel(e.Run.Detection)))

	enc := e.Encounters.CheckMovement(e.Run, hex)
	if enc == nil {
		res.Output = append(res.Output, "No contacts.")
		return res
	}
	name := e.opponentName(enc.OpponentID)
	if enc.Ambush {
		res.Output = append(res.Output, fmt.Sprintf("Ambush! %s intercepts you.", name))
	} else {
		res.Output = append(res.Output, fmt.Sprintf("%s is guarding the signal.", name))
	}
	res.Events = append(res.Events, types.Event{
		Type: "encounter",
		Data: map[string]any{"opponent": enc.OpponentID, "ambush": enc.Ambush},
	})
	return res
}

// Arrive resolves a point-of-interest arrival: combat or safe loot.
func (e *Engine) Arrive(poiID string, q, r int) types.Result {
	var res types.Result
	poi, ok := e.Catalog.POIs[poiID]
	if !ok {
		res.Output = append(res.Output, fmt.Sprintf("Unknown point of interest %q.", poiID))
		return res
	}
	outcome := e.Encounters.CheckPOIArrival(e.Run, poi, q, r)
	if outcome == encounter.OutcomeCombat {
		opp := e.Encounters.PickOpponent(e.Run, q, r)
		res.Output = append(res.Output, fmt.Sprintf("%s: security engages — %s moves in.", poi.Name, e.opponentName(opp)))
		res.Events = append(res.Events, types.Event{
			Type: "encounter",
			Data: map[string]any{"opponent": opp, "poi": poiID},
		})
		return res
	}

	seed := engine.SubSeed(e.Run.Seed, engine.POIOffset(q, r)+2)
	slots, warnings := e.Rewards.SalvageSlots("poi_cache", e.Run.Tier, poi.Zone, seed)
	for _, w := range warnings {
		res.Output = append(res.Output, "warning: "+w)
	}
	res.Output = append(res.Output, fmt.Sprintf("%s: clear. %d reward slots:", poi.Name, len(slots)))
	for _, slot := range slots {
		res.Output = append(res.Output, "  "+reward.DescribeSlot(slot))
		e.collect(slot)
	}
	res.Events = append(res.Events, types.Event{Type: "loot", Data: map[string]any{"poi": poiID, "slots": len(slots)}})
	return res
}

// OpenPack opens a reward pack, seeded from the run so replays match.
func (e *Engine) OpenPack(packType string) types.Result {
	var res types.Result
	seed := engine.SubSeed(e.Run.Seed, engine.SlotOffset(e.Run.MoveIndex+len(e.Run.Cards)))
	payload := e.Rewards.OpenPack(packType, e.Run.Tier, e.Run.Zone, seed)
	for _, w := range payload.Warnings {
		res.Output = append(res.Output, "warning: "+w)
	}
	if len(payload.Cards) == 0 && payload.Salvage == nil {
		res.Output = append(res.Output, "The pack is empty.")
		return res
	}
	res.Output = append(res.Output, fmt.Sprintf("Opened %s pack:", packType))
	for _, c := range payload.Cards {
		res.Output = append(res.Output, fmt.Sprintf("  card %s (%s %s)", c.Name, c.Rarity, c.Type))
		e.Run.Cards = append(e.Run.Cards, c.ID)
	}
	if payload.Salvage != nil {
		res.Output = append(res.Output, fmt.Sprintf("  salvage %s (%s)", payload.Salvage.Name, payload.Salvage.Rarity))
		e.Run.Salvage = append(e.Run.Salvage, payload.Salvage.ID)
	}
	return res
}

// Blueprint rolls a drone blueprint for a reward band, substituting the
// boosted salvage fallback on exhaustion.
func (e *Engine) Blueprint(band int) types.Result {
	var res types.Result
	seed := engine.SubSeed(e.Run.Seed, engine.SlotOffset(e.Run.MoveIndex)+int64(band))
	br := e.Rewards.DroneBlueprint(band, e.Run.Tier, e.Run.UnlockedBlueprints, seed)
	if br.Exhausted {
		item, ok := e.Rewards.ExhaustionFallback(br.Tier, seed+1)
		if ok {
			res.Output = append(res.Output,
				fmt.Sprintf("No new blueprints in band %d — recovered %s instead.", band, item.Name))
			e.Run.Salvage = append(e.Run.Salvage, item.ID)
		} else {
			res.Output = append(res.Output, fmt.Sprintf("No new blueprints in band %d.", band))
		}
		res.Events = append(res.Events, types.Event{Type: "blueprint_exhausted", Data: map[string]any{"band": band}})
		return res
	}
	e.Run.Unlock(br.Drone.Name)
	res.Output = append(res.Output, fmt.Sprintf("Blueprint unlocked: %s (class %d, %s).", br.Drone.Name, br.Drone.Class, br.Drone.Rarity))
	res.Events = append(res.Events, types.Event{Type: "blueprint", Data: map[string]any{"drone": br.Drone.Name}})
	return res
}

// Victory records a combat win: the run's signal lock resets to zero.
func (e *Engine) Victory() types.Result {
	e.Run.ResetDetection()
	return types.Result{
		Output: []string{"Victory. Signal lock broken — detection back to 0%."},
		Events: []types.Event{{Type: "victory", Data: map[string]any{"victories": e.Run.Victories}}},
	}
}

// PlayCard simulates resolving a collected card against a practice
// target, running its PRE and POST conditionals around a synthetic
// primary effect. The shells use it to inspect conditional behavior.
func (e *Engine) PlayCard(cardID string) types.Result {
	var res types.Result
	card, ok := e.Catalog.CardByID(cardID)
	if !ok {
		res.Output = append(res.Output, fmt.Sprintf("Unknown card %q.", cardID))
		return res
	}

	ctx := e.practiceContext()
	primary := types.Effect{Type: "damage", Params: map[string]any{"value": card.Stats["damage"]}}

	pre := e.Processor.ProcessPre(card.Conditionals, primary, ctx)
	dmg, _ := effectValue(pre.Primary)
	res.Output = append(res.Output, fmt.Sprintf("%s resolves for %d damage.", card.Name, dmg))
	for _, q := range pre.Queued {
		res.Output = append(res.Output, e.routeQueued(q))
	}

	result := e.simulateHit(ctx, dmg)
	post := e.Processor.ProcessPost(card.Conditionals, ctx, result)
	if post.RepeatTurn {
		res.Output = append(res.Output, "Conditional: take another turn.")
		res.Events = append(res.Events, types.Event{Type: "repeat_turn", Data: map[string]any{"source": post.RepeatFrom}})
	}
	for _, q := range post.Queued {
		res.Output = append(res.Output, e.routeQueued(q))
	}
	e.Run.ActionsTaken++
	return res
}

// practiceContext builds a small deterministic combat context from the
// first non-starter drone in the catalog.
func (e *Engine) practiceContext() *types.CombatContext {
	target := types.DroneSnapshot{Name: "practice target", Side: "enemy", Lane: 0,
		Stats: map[string]int{"hull": 4, "shield": 2, "attack": 2, "speed": 1}}
	if drones := e.Catalog.FilterDrones(func(types.Drone) bool { return true }); len(drones) > 0 {
		d := drones[0]
		target.Name = d.Name
		target.Stats = map[string]int{}
		for k, v := range d.Stats {
			target.Stats[k] = v
		}
	}
	return &types.CombatContext{
		Target:    &target,
		ActorSide: "player",
		Lanes: map[string][]types.DroneSnapshot{
			"enemy": {target},
		},
		ActionsTaken: e.Run.ActionsTaken,
		ActionsKnown: true,
		Stats:        &engine.ModifierStats{},
	}
}

// simulateHit produces the primary effect's result: damage soaks shield
// first, then hull; destruction when hull runs out.
func (e *Engine) simulateHit(ctx *types.CombatContext, dmg int) types.EffectResult {
	shield := ctx.Target.Stats["shield"]
	hull := ctx.Target.Stats["hull"]
	toShield := dmg
	if toShield > shield {
		toShield = shield
	}
	toHull := dmg - toShield
	if toHull > hull {
		toHull = hull
	}
	return types.EffectResult{
		WasDestroyed:  toHull >= hull && hull > 0,
		ShieldDamage:  toShield,
		HullDamage:    toHull,
		WasSuccessful: dmg > 0,
	}
}

// routeQueued executes a queued additional effect through the same
// routing primaries use. Unknown types are reported, not fatal.
func (e *Engine) routeQueued(q conditional.QueuedEffect) string {
	switch q.Effect.Type {
	case "draw_card":
		seed := engine.SubSeed(e.Run.Seed, engine.SlotOffset(len(e.Run.Cards))+7)
		payload := e.Rewards.OpenShopPack("recon", e.Run.Tier, seed)
		if len(payload.Cards) > 0 {
			c := payload.Cards[0]
			e.Run.Cards = append(e.Run.Cards, c.ID)
			return fmt.Sprintf("Conditional [%s]: drew %s.", q.SourceID, c.Name)
		}
		return fmt.Sprintf("Conditional [%s]: nothing to draw.", q.SourceID)
	case "mark_target":
		return fmt.Sprintf("Conditional [%s]: target marked.", q.SourceID)
	default:
		return fmt.Sprintf("Conditional [%s]: queued %s.", q.SourceID, q.Effect.Type)
	}
}

func (e *Engine) collect(slot types.RewardSlot) {
	switch slot.Kind {
	case types.SlotCard:
		if slot.Card != nil {
			e.Run.Cards = append(e.Run.Cards, slot.Card.ID)
		}
	case types.SlotSalvage:
		if slot.Salvage != nil {
			e.Run.Salvage = append(e.Run.Salvage, slot.Salvage.ID)
		}
	}
}

func (e *Engine) opponentName(id string) string {
	if opp, ok := e.Catalog.Opponents[id]; ok {
		return opp.Name
	}
	if id == "" {
		return "An unidentified craft"
	}
	return id
}

func effectValue(eff types.Effect) (int, bool) {
	switch n := eff.Params["value"].(type) {
	case int:
		return n, true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
