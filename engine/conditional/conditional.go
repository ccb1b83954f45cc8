// Package conditional orchestrates PRE/POST conditional-effect evaluation
// around a primary effect. The processor decides whether and what to
// queue; executing queued effects is the caller's job, through the same
// routing used for primary effects.
package conditional

import (
	"github.com/arcov/driftdeck/engine/conditions"
	"github.com/arcov/driftdeck/engine/state"
	"github.com/arcov/driftdeck/types"
)

// QueuedEffect is a granted effect tagged with the id of the definition
// that produced it, for downstream tracing.
type QueuedEffect struct {
	SourceID string
	Effect   types.Effect
}

// PreResult is the outcome of the PRE phase: the (possibly modified)
// primary effect plus any queued additional effects.
type PreResult struct {
	Primary types.Effect
	Queued  []QueuedEffect
}

// PostResult is the outcome of the POST phase. RepeatTurn is a flag for
// the caller to honor — the processor never grants the extra turn itself,
// and never queues repeat-turn as a generic additional effect.
type PostResult struct {
	RepeatTurn bool
	RepeatFrom string // definition id that set RepeatTurn, for tracing
	Queued     []QueuedEffect
}

// Processor runs the two conditional phases of a card/ability resolution.
// Definitions re-arm on every resolution; there is no persistent
// already-fired memory.
type Processor struct {
	eval *conditions.Evaluator
}

// New creates a processor over the given evaluator.
func New(eval *conditions.Evaluator) *Processor {
	if eval == nil {
		eval = conditions.New()
	}
	return &Processor{eval: eval}
}

// ProcessPre runs the PRE-timed definitions before the primary effect
// executes. Satisfied damage-modifier grants merge additively into the
// primary's value, in declaration order; any other grant is queued. A
// nil or empty definition list is a no-op returning the primary
// unchanged.
func (p *Processor) ProcessPre(defs []types.ConditionalEffectDef, primary types.Effect, ctx *types.CombatContext) PreResult {
	res := PreResult{Primary: cloneEffect(primary)}
	if len(defs) == 0 {
		return res
	}
	snapshot := state.CloneContext(ctx)
	// PRE conditions must not see an effect result; it does not exist yet.
	snapshot.Result = nil

	for _, def := range defs {
		if def.Timing != types.Pre {
			continue
		}
		if !p.eval.Evaluate(def.Condition, snapshot) {
			continue
		}
		if def.Effect.Type == "bonus_damage" {
			bonus, _ := intParam(def.Effect.Params, "amount")
			mergeDamage(&res.Primary, bonus)
			continue
		}
		res.Queued = append(res.Queued, QueuedEffect{SourceID: def.ID, Effect: cloneEffect(def.Effect)})
	}
	return res
}

// ProcessPost runs the POST-timed definitions after the primary effect
// resolved, with its result merged into the evaluation context so outcome
// predicates can fire.
func (p *Processor) ProcessPost(defs []types.ConditionalEffectDef, ctx *types.CombatContext, result types.EffectResult) PostResult {
	var res PostResult
	if len(defs) == 0 {
		return res
	}
	snapshot := state.CloneContext(ctx)
	snapshot.Result = &result

	for _, def := range defs {
		if def.Timing != types.Post {
			continue
		}
		if !p.eval.Evaluate(def.Condition, snapshot) {
			continue
		}
		if def.Effect.Type == "repeat_turn" {
			res.RepeatTurn = true
			res.RepeatFrom = def.ID
			continue
		}
		res.Queued = append(res.Queued, QueuedEffect{SourceID: def.ID, Effect: cloneEffect(def.Effect)})
	}
	return res
}

// mergeDamage adds a bonus into the primary effect's numeric value.
func mergeDamage(primary *types.Effect, bonus int) {
	if primary.Params == nil {
		primary.Params = map[string]any{}
	}
	v, _ := intParam(primary.Params, "value")
	primary.Params["value"] = v + bonus
}

// cloneEffect copies an effect so queued and modified effects never alias
// the caller's definitions.
func cloneEffect(e types.Effect) types.Effect {
	out := types.Effect{Type: e.Type}
	if e.Params != nil {
		out.Params = make(map[string]any, len(e.Params))
		for k, v := range e.Params {
			out.Params[k] = v
		}
	}
	return out
}

func intParam(params map[string]any, key string) (int, bool) {
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
