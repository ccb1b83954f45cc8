package state

import (
	"github.com/google/uuid"

	"github.com/arcov/driftdeck/types"
)

// Run is the mutable state of one exploration run. It persists across
// calls for the duration of the run and is mutated only through its
// defined transitions: detection rises on movement and resets to zero on
// a combat victory. Callers must not read-modify-write it concurrently.
type Run struct {
	ID        string
	Seed      int64
	Tier      int
	Zone      string
	MoveIndex int
	Detection int // 0..100 signal-lock chance
	Victories int

	// ActionsTaken counts actions this combat turn, for turn-context
	// predicates. Reset by the combat layer.
	ActionsTaken int

	UnlockedBlueprints map[string]bool
	Cards              []string // collected card ids
	Salvage            []string // collected salvage item ids
}

// NewRun starts a fresh run from a seed.
func NewRun(seed int64, tier int, zone string) *Run {
	return &Run{
		ID:                 uuid.NewString(),
		Seed:               seed,
		Tier:               tier,
		Zone:               zone,
		UnlockedBlueprints: map[string]bool{},
		Cards:              []string{},
		Salvage:            []string{},
	}
}

// RaiseDetection applies a movement increase, capped at 100.
func (r *Run) RaiseDetection(amount int) {
	if amount < 0 {
		amount = 0
	}
	r.Detection += amount
	if r.Detection > 100 {
		r.Detection = 100
	}
}

// ResetDetection is the victory transition: signal lock drops to zero.
func (r *Run) ResetDetection() {
	r.Detection = 0
	r.Victories++
}

// Unlock records a drone blueprint as owned.
func (r *Run) Unlock(droneName string) {
	if r.UnlockedBlueprints == nil {
		r.UnlockedBlueprints = map[string]bool{}
	}
	r.UnlockedBlueprints[droneName] = true
}

// CloneDrones deep-copies a drone snapshot list so condition evaluation
// can never touch the caller's state.
func CloneDrones(drones []types.DroneSnapshot) []types.DroneSnapshot {
	if drones == nil {
		return nil
	}
	out := make([]types.DroneSnapshot, len(drones))
	for i, d := range drones {
		out[i] = d
		if d.Stats != nil {
			stats := make(map[string]int, len(d.Stats))
			for k, v := range d.Stats {
				stats[k] = v
			}
			out[i].Stats = stats
		}
	}
	return out
}

// CloneContext deep-copies the lane and target snapshots of a combat
// context. The effective-stats calculator and result are shared; they are
// read-only during evaluation.
func CloneContext(ctx *types.CombatContext) *types.CombatContext {
	if ctx == nil {
		return &types.CombatContext{}
	}
	out := *ctx
	if ctx.Target != nil {
		t := *ctx.Target
		if ctx.Target.Stats != nil {
			stats := make(map[string]int, len(ctx.Target.Stats))
			for k, v := range ctx.Target.Stats {
				stats[k] = v
			}
			t.Stats = stats
		}
		out.Target = &t
	}
	if ctx.Lanes != nil {
		lanes := make(map[string][]types.DroneSnapshot, len(ctx.Lanes))
		for side, drones := range ctx.Lanes {
			lanes[side] = CloneDrones(drones)
		}
		out.Lanes = lanes
	}
	return &out
}
