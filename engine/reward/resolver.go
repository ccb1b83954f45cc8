// Package reward resolves pack and point-of-interest definitions into
// concrete loot: cards, salvage items and drone blueprints. Every public
// operation is a total function of its typed inputs and a seed — the same
// call replayed produces the same payload, card for card.
package reward

import (
	"fmt"

	"github.com/arcov/driftdeck/engine"
	"github.com/arcov/driftdeck/engine/state"
	"github.com/arcov/driftdeck/tuning"
	"github.com/arcov/driftdeck/types"
)

// Resolver turns pack/POI definitions into reward payloads. It owns no
// state; the catalog and tuning it reads are immutable.
type Resolver struct {
	Catalog *state.Catalog
	Tuning  *tuning.Config
}

// NewResolver creates a resolver over a compiled catalog and tuning.
func NewResolver(cat *state.Catalog, tun *tuning.Config) *Resolver {
	return &Resolver{Catalog: cat, Tuning: tun}
}

// Payload is the result of opening a pack. Warnings carry recoverable
// configuration misses; they never abort generation.
type Payload struct {
	Cards    []types.Card
	Salvage  *types.SalvageItem
	Warnings []string
}

// OpenPack resolves a card-and-salvage pack. Unknown pack types return an
// empty payload with a warning — reward generation always completes.
// Seed 0 callers that need no replay guarantee should pass
// engine.TimeSeed().
func (r *Resolver) OpenPack(packType string, tier int, zone string, seed int64) Payload {
	pack, ok := r.Catalog.Packs[packType]
	if !ok {
		return Payload{Warnings: []string{fmt.Sprintf("unknown pack type %q", packType)}}
	}
	stream := engine.NewStream(seed)

	count := r.rollCardCount(pack, zone, stream)
	payload := Payload{}
	payload.Cards = r.rollCards(pack, tier, count, stream)

	// Card identity and position are both functions of the seed: the
	// shuffle uses the same stream, not a separate one.
	engine.Shuffle(payload.Cards, stream)

	if item, ok := r.rollSalvage(pack, zone, stream); ok {
		payload.Salvage = &item
	}
	return payload
}

// OpenShopPack resolves a shop-purchased pack: always the maximum card
// count, never salvage or credits. A deliberately separate path so its
// guarantees are independently testable.
func (r *Resolver) OpenShopPack(packType string, tier int, seed int64) Payload {
	pack, ok := r.Catalog.Packs[packType]
	if !ok {
		return Payload{Warnings: []string{fmt.Sprintf("unknown pack type %q", packType)}}
	}
	stream := engine.NewStream(seed)
	payload := Payload{Cards: r.rollCards(pack, tier, pack.MaxCards, stream)}
	engine.Shuffle(payload.Cards, stream)
	return payload
}

// rollCardCount picks the number of card slots: zone-specific count
// weights when any exist over the pack's range, else uniform [min, max].
func (r *Resolver) rollCardCount(pack types.PackDef, zone string, stream *engine.Stream) int {
	z := r.Tuning.Zone(zone)
	if len(z.CardCounts) > 0 {
		weights := make([]int, 0, pack.MaxCards-pack.MinCards+1)
		any := false
		for n := pack.MinCards; n <= pack.MaxCards; n++ {
			w := 0
			if n >= 0 && n < len(z.CardCounts) {
				w = z.CardCounts[n]
			}
			if w > 0 {
				any = true
			}
			weights = append(weights, w)
		}
		if any {
			return pack.MinCards + engine.WeightedIndex(weights, stream)
		}
	}
	return stream.Range(pack.MinCards, pack.MaxCards)
}

// rollCards fills up to count card slots. Slot 0 is forced to the pack's
// guaranteed type when one exists; later slots roll the secondary type
// table. A slot whose cascade finds no candidate is skipped — the count
// is advisory, not a hard guarantee.
func (r *Resolver) rollCards(pack types.PackDef, tier int, count int, stream *engine.Stream) []types.Card {
	rarityTable := engine.WeightTable{Entries: r.Tuning.RarityTable(tier), Default: types.Common.String()}
	typeTable := engine.WeightTable{Entries: pack.TypeWeights, Default: pack.GuaranteedType}

	var cards []types.Card
	for slot := 0; slot < count; slot++ {
		cardType := typeTable.Roll(stream)
		if slot == 0 && pack.GuaranteedType != "" {
			cardType = pack.GuaranteedType
		}
		rarityName := rarityTable.Roll(stream)
		rarity, _ := types.ParseRarity(rarityName)

		if card, ok := r.selectCard(cardType, rarity, tier, stream); ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// selectCard picks a concrete card via the cascading fallback: exact
// (type, rarity) → same type any allowed rarity → any type exact rarity →
// any type any allowed rarity. Starter cards are excluded from every
// stage (the catalog filter enforces it). An empty cardType skips the
// type-restricted stages.
func (r *Resolver) selectCard(cardType string, rarity types.Rarity, tier int, stream *engine.Stream) (types.Card, bool) {
	allowed := r.Tuning.AllowedRarities(tier)

	stages := []func(types.Card) bool{
		func(c types.Card) bool { return cardType != "" && c.Type == cardType && c.Rarity == rarity },
		func(c types.Card) bool { return cardType != "" && c.Type == cardType && allowed[c.Rarity] },
		func(c types.Card) bool { return c.Rarity == rarity },
		func(c types.Card) bool { return allowed[c.Rarity] },
	}
	for _, keep := range stages {
		pool := r.Catalog.FilterCards(keep)
		if len(pool) > 0 {
			return engine.PickUniform(pool, stream)
		}
	}
	return types.Card{}, false
}

// rollSalvage rolls the pack's credit value, applies the zone multiplier
// and converts the number one-way into a named salvage item of the
// bracketing value band.
func (r *Resolver) rollSalvage(pack types.PackDef, zone string, stream *engine.Stream) (types.SalvageItem, bool) {
	if pack.CreditMax <= 0 {
		return types.SalvageItem{}, false
	}
	value := stream.Range(pack.CreditMin, pack.CreditMax)
	z := r.Tuning.Zone(zone)
	if z.CreditMultiplier > 0 {
		value = int(float64(value) * z.CreditMultiplier)
	}
	return r.Catalog.SalvageForValue(value)
}
