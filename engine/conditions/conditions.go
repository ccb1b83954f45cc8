// Package conditions evaluates card/ability condition predicates against
// a combat context snapshot. Dispatch is an open handler table keyed by
// condition type: new predicates plug in via Register without touching
// the dispatcher. Evaluation is pure — no handler may mutate state.
package conditions

import "github.com/arcov/driftdeck/types"

// Handler evaluates one condition type. Handlers must treat the context
// as read-only and must return false for malformed parameters rather
// than panic.
type Handler func(c types.Condition, ctx *types.CombatContext) bool

// Evaluator dispatches conditions to registered handlers.
type Evaluator struct {
	handlers map[string]Handler
}

// New creates an evaluator with the built-in condition families
// registered.
func New() *Evaluator {
	e := &Evaluator{handlers: map[string]Handler{}}
	e.registerBuiltins()
	return e
}

// Register adds or replaces the handler for a condition type.
func (e *Evaluator) Register(condType string, h Handler) {
	e.handlers[condType] = h
}

// Evaluate returns the condition's truth value. Unknown type, empty type
// or nil parameters where required all evaluate to false, never an error:
// a malformed condition must not stall resolution.
func (e *Evaluator) Evaluate(c types.Condition, ctx *types.CombatContext) bool {
	if c.Type == "" {
		return false
	}
	h, ok := e.handlers[c.Type]
	if !ok {
		return false
	}
	if ctx == nil {
		ctx = &types.CombatContext{}
	}
	return h(c, ctx)
}

// All returns true if every condition passes. Empty list is vacuously
// true.
func (e *Evaluator) All(conds []types.Condition, ctx *types.CombatContext) bool {
	for _, c := range conds {
		if !e.Evaluate(c, ctx) {
			return false
		}
	}
	return true
}

func (e *Evaluator) registerBuiltins() {
	// State predicates on the target entity.
	e.Register("target_marked", func(c types.Condition, ctx *types.CombatContext) bool {
		return ctx.Target != nil && ctx.Target.Marked
	})
	e.Register("target_exhausted", func(c types.Condition, ctx *types.CombatContext) bool {
		return ctx.Target != nil && ctx.Target.Exhausted
	})
	// Ready = not exhausted; an undefined flag counts as ready.
	e.Register("target_ready", func(c types.Condition, ctx *types.CombatContext) bool {
		return ctx.Target != nil && !ctx.Target.Exhausted
	})

	// Stat comparisons.
	e.Register("target_stat_gte", statCompare(func(v, want int) bool { return v >= want }))
	e.Register("target_stat_lte", statCompare(func(v, want int) bool { return v <= want }))
	e.Register("target_stat_gt", statCompare(func(v, want int) bool { return v > want }))
	e.Register("target_stat_lt", statCompare(func(v, want int) bool { return v < want }))

	// Outcome predicates (POST-only). Absent result ⇒ false.
	e.Register("destroyed", func(c types.Condition, ctx *types.CombatContext) bool {
		return ctx.Result != nil && ctx.Result.WasDestroyed
	})
	e.Register("damage_dealt", func(c types.Condition, ctx *types.CombatContext) bool {
		if ctx.Result == nil {
			return false
		}
		if paramBool(c.Params, "hull_only") {
			// Shield-only damage must not satisfy a hull-only predicate.
			return ctx.Result.HullDamage > 0
		}
		return ctx.Result.HullDamage > 0 || ctx.Result.ShieldDamage > 0
	})
	e.Register("move_succeeded", func(c types.Condition, ctx *types.CombatContext) bool {
		return ctx.Result != nil && ctx.Result.WasSuccessful
	})

	// Relative lane comparison (POST-only, movement-specific).
	e.Register("lane_advantage", laneAdvantage)

	// Turn-context predicates. Unknown counter ⇒ treated as first action.
	e.Register("not_first_action", func(c types.Condition, ctx *types.CombatContext) bool {
		return ctx.ActionsKnown && ctx.ActionsTaken > 0
	})
}

// effectiveStats lists the stats that use the combat layer's effective
// computation when full context is available. Hull and other resources
// always read the current value, never a recomputation.
var effectiveStats = map[string]bool{"attack": true, "speed": true}

func statCompare(cmp func(v, want int) bool) Handler {
	return func(c types.Condition, ctx *types.CombatContext) bool {
		if ctx.Target == nil {
			return false
		}
		stat := paramString(c.Params, "stat")
		if stat == "" {
			return false
		}
		want, ok := paramInt(c.Params, "value")
		if !ok {
			return false
		}
		return cmp(statValue(ctx, stat), want)
	}
}

// statValue resolves a stat for the target. Attack/speed use the
// effective-stats calculator when one is supplied and the snapshot
// carries side and lane context; otherwise the base stat. Missing stats
// are 0.
func statValue(ctx *types.CombatContext, stat string) int {
	t := ctx.Target
	if effectiveStats[stat] && ctx.Stats != nil && t.Side != "" && t.Lane >= 0 {
		if v, ok := ctx.Stats.Effective(*t, stat); ok {
			return v
		}
	}
	return t.Stats[stat]
}

// laneAdvantage compares the acting side's drone count against the
// opposing side's in the movement's source or destination lane. Requires
// the move lanes in the result; otherwise false.
func laneAdvantage(c types.Condition, ctx *types.CombatContext) bool {
	if ctx.Result == nil || !ctx.Result.HasMove {
		return false
	}
	if ctx.ActorSide == "" || ctx.Lanes == nil {
		return false
	}
	lane := ctx.Result.ToLane
	if paramString(c.Params, "lane") == "from" {
		lane = ctx.Result.FromLane
	}
	filter := paramString(c.Params, "filter") // "", "ready" or "exhausted"

	mine := countInLane(ctx.Lanes[ctx.ActorSide], lane, filter)
	theirs := countInLane(ctx.Lanes[opposingSide(ctx.ActorSide)], lane, filter)

	switch paramString(c.Params, "op") {
	case "gte":
		return mine >= theirs
	case "lt":
		return mine < theirs
	case "lte":
		return mine <= theirs
	default:
		return mine > theirs
	}
}

func countInLane(drones []types.DroneSnapshot, lane int, filter string) int {
	n := 0
	for _, d := range drones {
		if d.Lane != lane {
			continue
		}
		switch filter {
		case "ready":
			if d.Exhausted {
				continue
			}
		case "exhausted":
			if !d.Exhausted {
				continue
			}
		}
		n++
	}
	return n
}

func opposingSide(side string) string {
	if side == "player" {
		return "enemy"
	}
	return "player"
}

func paramString(params map[string]any, key string) string {
	if params == nil {
		return ""
	}
	s, _ := params[key].(string)
	return s
}

func paramBool(params map[string]any, key string) bool {
	if params == nil {
		return false
	}
	b, _ := params[key].(bool)
	return b
}

// paramInt accepts int, int64 and float64, the numeric shapes produced by
// Go literals, JSON and Lua respectively.
func paramInt(params map[string]any, key string) (int, bool) {
	if params == nil {
		return 0, false
	}
	switch n := params[key].(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	default:
		return 0, false
	}
}
