package reward

import (
	"github.com/arcov/driftdeck/engine"
	"github.com/arcov/driftdeck/types"
)

// blueprintAttempts bounds the class/rarity reroll loop. The only retry
// construct in the core; it must terminate deterministically when a pool
// is exhausted.
const blueprintAttempts = 10

// BlueprintResult is the outcome of a blueprint roll. Exhaustion is a
// first-class result variant carrying the original band and tier — never
// an error, never nil — signaling the caller to substitute a fallback
// reward via ExhaustionFallback.
type BlueprintResult struct {
	Drone     *types.Drone
	Exhausted bool
	Band      int
	Tier      int
}

// DroneBlueprint resolves a POI reward band and map tier into a concrete
// drone blueprint. Each attempt rolls a class from the band's weighted
// distribution and a rarity from the tier table, filters the catalog to
// that pair excluding the starter set and the caller's unlocked set, and
// picks uniformly from the survivors.
func (r *Resolver) DroneBlueprint(band, tier int, unlocked map[string]bool, seed int64) BlueprintResult {
	stream := engine.NewStream(seed)

	t := r.Tuning.Tier(tier)
	classWeights, ok := t.ClassBands[band]
	if !ok || len(classWeights) == 0 {
		// Configuration miss: a flat distribution over three classes
		// keeps generation alive rather than failing.
		classWeights = []int{1, 1, 1}
	}
	rarityTable := engine.WeightTable{Entries: r.Tuning.RarityTable(tier), Default: types.Common.String()}

	for attempt := 0; attempt < blueprintAttempts; attempt++ {
		classIdx := engine.WeightedIndex(classWeights, stream)
		if classIdx < 0 {
			break
		}
		class := classIdx + 1
		rarity, _ := types.ParseRarity(rarityTable.Roll(stream))

		pool := r.Catalog.FilterDrones(func(d types.Drone) bool {
			return d.Class == class && d.Rarity == rarity && !unlocked[d.Name]
		})
		if len(pool) == 0 {
			continue
		}
		drone, _ := engine.PickUniform(pool, stream)
		return BlueprintResult{Drone: &drone, Band: band, Tier: tier}
	}
	return BlueprintResult{Exhausted: true, Band: band, Tier: tier}
}
