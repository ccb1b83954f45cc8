package reward

import (
	"fmt"

	"github.com/arcov/driftdeck/engine"
	"github.com/arcov/driftdeck/types"
)

// bonusCardChance is the documented probability of the extra card slot in
// a cache pack, in percent.
const bonusCardChance = 25

// SalvageSlots generates the reward slots for looting a point of
// interest. The slot count (1–5) comes from the zone's weight table —
// zones with no weight for a count never produce it, a hard invariant.
// Card slots are filled by the pack's card logic capped at the slot
// count; the remainder is salvage. An unknown pack type returns no slots
// plus a warning — generation always completes. All slots start
// unrevealed; only the presentation layer flips Revealed.
func (r *Resolver) SalvageSlots(packType string, tier int, zone string, seed int64) ([]types.RewardSlot, []string) {
	pack, ok := r.Catalog.Packs[packType]
	if !ok {
		return nil, []string{fmt.Sprintf("unknown pack type %q", packType)}
	}
	stream := engine.NewStream(seed)
	slotCount := r.rollSlotCount(zone, stream)

	if pack.Token != "" {
		return r.cacheSlots(pack, tier, zone, slotCount, stream), nil
	}

	cardCount := r.rollCardCount(pack, zone, stream)
	if cardCount > slotCount {
		cardCount = slotCount
	}
	cards := r.rollCards(pack, tier, cardCount, stream)
	engine.Shuffle(cards, stream)

	slots := make([]types.RewardSlot, 0, slotCount)
	for i := range cards {
		c := cards[i]
		slots = append(slots, types.RewardSlot{Kind: types.SlotCard, Card: &c})
	}
	for len(slots) < slotCount {
		slots = append(slots, r.salvageSlot(pack, zone, stream))
	}
	return slots, nil
}

// cacheSlots handles the special cache pack type: a guaranteed token
// slot first, a 25% bonus card slot of any type, remaining slots
// salvage. The bonus card occupies one of the rolled slots — the zone's
// slot-count invariant holds for cache packs too, so when the table
// rolls a single slot the token is all there is.
func (r *Resolver) cacheSlots(pack types.PackDef, tier int, zone string, slotCount int, stream *engine.Stream) []types.RewardSlot {
	slots := []types.RewardSlot{{Kind: types.SlotToken, Token: pack.Token}}

	if len(slots) < slotCount && stream.Percent(bonusCardChance) {
		rarityTable := engine.WeightTable{Entries: r.Tuning.RarityTable(tier), Default: types.Common.String()}
		rarity, _ := types.ParseRarity(rarityTable.Roll(stream))
		// Any type: the cascade skips its type-restricted stages.
		if card, ok := r.selectCard("", rarity, tier, stream); ok {
			slots = append(slots, types.RewardSlot{Kind: types.SlotCard, Card: &card})
		}
	}
	for len(slots) < slotCount {
		slots = append(slots, r.salvageSlot(pack, zone, stream))
	}
	return slots
}

// salvageSlot rolls one salvage item slot. A catalog with no salvage at
// all degrades to a token-less empty salvage slot rather than failing.
func (r *Resolver) salvageSlot(pack types.PackDef, zone string, stream *engine.Stream) types.RewardSlot {
	if item, ok := r.rollSalvage(pack, zone, stream); ok {
		return types.RewardSlot{Kind: types.SlotSalvage, Salvage: &item}
	}
	return types.RewardSlot{Kind: types.SlotSalvage}
}

// rollSlotCount draws the 1–5 slot count from the zone table. An all-zero
// table degrades to a single slot, the defined default.
func (r *Resolver) rollSlotCount(zone string, stream *engine.Stream) int {
	z := r.Tuning.Zone(zone)
	idx := engine.WeightedIndex(z.SlotWeights, stream)
	if idx < 0 {
		return 1
	}
	return idx + 1
}

// ExhaustionFallback substitutes a salvage item for an exhausted
// blueprint drop: one rarity tier above what would have dropped, capped
// at the maximum rarity. Steps down when the catalog has no item of the
// boosted rarity so the fallback itself can never come up empty-handed.
func (r *Resolver) ExhaustionFallback(tier int, seed int64) (types.SalvageItem, bool) {
	stream := engine.NewStream(seed)
	rarityTable := engine.WeightTable{Entries: r.Tuning.RarityTable(tier), Default: types.Common.String()}
	rolled, _ := types.ParseRarity(rarityTable.Roll(stream))

	boosted := rolled + 1
	if boosted > types.MaxRarity {
		boosted = types.MaxRarity
	}
	for rar := boosted; rar >= types.Common; rar-- {
		pool := r.Catalog.SalvageOfRarity(rar)
		if len(pool) > 0 {
			return engine.PickUniform(pool, stream)
		}
	}
	return types.SalvageItem{}, false
}

// DescribeSlot renders a slot for logs and the shells.
func DescribeSlot(s types.RewardSlot) string {
	switch s.Kind {
	case types.SlotCard:
		if s.Card != nil {
			return fmt.Sprintf("card %s (%s)", s.Card.Name, s.Card.Rarity)
		}
	case types.SlotSalvage:
		if s.Salvage != nil {
			return fmt.Sprintf("salvage %s", s.Salvage.Name)
		}
	case types.SlotToken:
		return fmt.Sprintf("token %s", s.Token)
	case types.SlotBlueprintExhausted:
		return "exhausted blueprint"
	}
	return string(s.Kind)
}
