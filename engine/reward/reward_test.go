package reward

import (
	"testing"

	"github.com/arcov/driftdeck/engine"
	"github.com/arcov/driftdeck/engine/state"
	"github.com/arcov/driftdeck/tuning"
	"github.com/arcov/driftdeck/types"
)

func testCatalog() *state.Catalog {
	cat := &state.Catalog{
		Cards: []types.Card{
			{ID: "basic_strike", Name: "Basic Strike", Type: "assault", Rarity: types.Common},
			{ID: "lance", Name: "Lance", Type: "assault", Rarity: types.Common},
			{ID: "cutter", Name: "Cutter", Type: "assault", Rarity: types.Rare},
			{ID: "patch", Name: "Patch", Type: "support", Rarity: types.Common},
			{ID: "shield_wall", Name: "Shield Wall", Type: "support", Rarity: types.Uncommon},
			{ID: "gambit", Name: "Gambit", Type: "tactic", Rarity: types.Epic},
		},
		Drones: []types.Drone{
			{Name: "Vesper", Class: 1, Rarity: types.Common},
			{Name: "Wasp", Class: 1, Rarity: types.Common},
			{Name: "Mantis", Class: 2, Rarity: types.Rare},
			{Name: "Colossus", Class: 3, Rarity: types.Epic},
		},
		Salvage: []types.SalvageItem{
			{ID: "scrap", Name: "Scrap", Rarity: types.Common, MinValue: 0, MaxValue: 49},
			{ID: "alloy", Name: "Alloy", Rarity: types.Uncommon, MinValue: 50, MaxValue: 149},
			{ID: "core_frag", Name: "Core Fragment", Rarity: types.Rare, MinValue: 150, MaxValue: 400},
		},
		Packs: map[string]types.PackDef{
			"strike": {
				Type: "strike", MinCards: 2, MaxCards: 4,
				GuaranteedType: "assault",
				TypeWeights: []types.WeightEntry{
					{Label: "assault", Weight: 50},
					{Label: "support", Weight: 35},
					{Label: "tactic", Weight: 15},
				},
				CreditMin: 20, CreditMax: 120,
			},
			"cache": {
				Type: "cache", MinCards: 0, MaxCards: 1,
				Token:     "access_chit",
				CreditMin: 30, CreditMax: 90,
			},
		},
		StarterCards:  map[string]bool{"basic_strike": true},
		StarterDrones: map[string]bool{"Vesper": true},
	}
	cat.Index()
	return cat
}

func testResolver() *Resolver {
	return NewResolver(testCatalog(), tuning.Default())
}

func TestOpenPack_Deterministic(t *testing.T) {
	r := testResolver()

	a := r.OpenPack("strike", 1, "fringe", 4242)
	b := r.OpenPack("strike", 1, "fringe", 4242)

	if len(a.Cards) != len(b.Cards) {
		t.Fatalf("same seed, different card counts: %d vs %d", len(a.Cards), len(b.Cards))
	}
	for i := range a.Cards {
		if a.Cards[i].ID != b.Cards[i].ID {
			t.Fatalf("slot %d: got %q and %q from same seed", i, a.Cards[i].ID, b.Cards[i].ID)
		}
	}
	if (a.Salvage == nil) != (b.Salvage == nil) {
		t.Fatal("same seed, salvage presence differs")
	}
	if a.Salvage != nil && a.Salvage.ID != b.Salvage.ID {
		t.Fatalf("same seed, different salvage: %q vs %q", a.Salvage.ID, b.Salvage.ID)
	}
}

func TestOpenPack_UnknownTypeWarns(t *testing.T) {
	r := testResolver()
	p := r.OpenPack("no_such_pack", 1, "fringe", 1)

	if len(p.Cards) != 0 || p.Salvage != nil {
		t.Error("unknown pack should produce an empty payload")
	}
	if len(p.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", p.Warnings)
	}
}

func TestOpenPack_CardCountInRange(t *testing.T) {
	r := testResolver()
	for seed := int64(0); seed < 200; seed++ {
		p := r.OpenPack("strike", 1, "fringe", seed)
		if len(p.Cards) < 1 || len(p.Cards) > 4 {
			t.Fatalf("seed %d: card count %d outside pack range", seed, len(p.Cards))
		}
	}
}

func TestOpenPack_NeverContainsStarters(t *testing.T) {
	r := testResolver()
	for seed := int64(0); seed < 300; seed++ {
		p := r.OpenPack("strike", 1, "fringe", seed)
		for _, c := range p.Cards {
			if c.ID == "basic_strike" {
				t.Fatalf("seed %d: starter card in pack", seed)
			}
		}
	}
}

func TestOpenPack_GuaranteedTypePresent(t *testing.T) {
	r := testResolver()
	for seed := int64(0); seed < 100; seed++ {
		p := r.OpenPack("strike", 1, "fringe", seed)
		found := false
		for _, c := range p.Cards {
			if c.Type == "assault" {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("seed %d: no assault card despite guaranteed type", seed)
		}
	}
}

func TestOpenShopPack_MaxCountNoSalvage(t *testing.T) {
	r := testResolver()
	for seed := int64(0); seed < 50; seed++ {
		p := r.OpenShopPack("strike", 1, seed)
		if len(p.Cards) != 4 {
			t.Fatalf("seed %d: shop pack has %d cards, want max 4", seed, len(p.Cards))
		}
		if p.Salvage != nil {
			t.Fatalf("seed %d: shop pack produced salvage", seed)
		}
	}
}

func TestSelectCard_CascadeFallsBack(t *testing.T) {
	r := testResolver()

	// No tactic card at common: the cascade must still produce something,
	// and something of the requested type if any exists.
	for seed := int64(0); seed < 50; seed++ {
		stream := engine.NewStream(seed)
		card, ok := r.selectCard("tactic", types.Common, 1, stream)
		if !ok {
			t.Fatalf("seed %d: cascade came up empty with a non-empty catalog", seed)
		}
		// Stage 2 should serve: the one tactic card, whatever its rarity.
		if card.Type != "tactic" {
			t.Fatalf("seed %d: same-type fallback skipped: got type %q", seed, card.Type)
		}
	}
}

func TestSelectCard_UnknownTypeStillProduces(t *testing.T) {
	r := testResolver()
	stream := engine.NewStream(7)
	card, ok := r.selectCard("no_such_type", types.Rare, 1, stream)
	if !ok {
		t.Fatal("cascade should fall through to any-type stages")
	}
	if card.Rarity != types.Rare {
		t.Errorf("any-type exact-rarity stage skipped: got %s", card.Rarity)
	}
}

func TestSalvageSlots_CountMatchesZoneWeights(t *testing.T) {
	r := testResolver()

	// Fringe weights are {30,40,25,5,0}: five slots must never appear.
	counts := map[int]int{}
	for seed := int64(0); seed < 300; seed++ {
		slots, _ := r.SalvageSlots("strike", 1, "fringe", seed)
		n := len(slots)
		if n < 1 || n > 4 {
			t.Fatalf("seed %d: slot count %d outside weighted range", seed, n)
		}
		counts[n]++
	}
	if counts[5] != 0 {
		t.Errorf("zero-weight slot count 5 produced %d times", counts[5])
	}
}

func TestSalvageSlots_CoreNeverSingleSlot(t *testing.T) {
	r := testResolver()

	// Core weights are {0,15,35,35,15}: one slot has zero weight.
	for seed := int64(0); seed < 300; seed++ {
		slots, _ := r.SalvageSlots("strike", 1, "core", seed)
		if len(slots) == 1 {
			t.Fatalf("seed %d: zero-weight single slot produced", seed)
		}
	}
}

func TestSalvageSlots_UnknownTypeWarns(t *testing.T) {
	r := testResolver()
	slots, warnings := r.SalvageSlots("no_such_pack", 1, "fringe", 1)

	if len(slots) != 0 {
		t.Errorf("unknown pack produced %d slots", len(slots))
	}
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %v", warnings)
	}
}

func TestSalvageSlots_Unrevealed(t *testing.T) {
	r := testResolver()
	slots, _ := r.SalvageSlots("strike", 1, "fringe", 99)
	for _, slot := range slots {
		if slot.Revealed {
			t.Error("resolver must not flip Revealed")
		}
	}
}

func TestSalvageSlots_CachePackTokenFirst(t *testing.T) {
	r := testResolver()
	sawBonus := false
	for seed := int64(0); seed < 200; seed++ {
		slots, _ := r.SalvageSlots("cache", 1, "fringe", seed)
		if len(slots) == 0 {
			t.Fatalf("seed %d: cache produced no slots", seed)
		}
		if slots[0].Kind != types.SlotToken || slots[0].Token != "access_chit" {
			t.Fatalf("seed %d: first cache slot is %v, want the token", seed, slots[0])
		}
		for i, s := range slots[1:] {
			if s.Kind == types.SlotToken {
				t.Fatalf("seed %d: second token at slot %d", seed, i+1)
			}
			if s.Kind == types.SlotCard {
				sawBonus = true
			}
		}
	}
	if !sawBonus {
		t.Error("bonus card slot never appeared over 200 seeds")
	}
}

func TestSalvageSlots_CachePackHonorsZoneSlotCount(t *testing.T) {
	cfg := tuning.Default()
	// Only a single slot is ever weighted: the token must be the whole
	// payload, with the bonus card suppressed rather than overflowing.
	cfg.Zones["solo"] = tuning.Zone{
		SlotWeights:      []int{100, 0, 0, 0, 0},
		CreditMultiplier: 1.0,
	}
	r := NewResolver(testCatalog(), cfg)

	for seed := int64(0); seed < 300; seed++ {
		slots, _ := r.SalvageSlots("cache", 1, "solo", seed)
		if len(slots) != 1 {
			t.Fatalf("seed %d: %d slots in a zone weighting only count 1", seed, len(slots))
		}
		if slots[0].Kind != types.SlotToken {
			t.Fatalf("seed %d: single slot is %v, want the token", seed, slots[0])
		}
	}
}

func TestDroneBlueprint_Deterministic(t *testing.T) {
	r := testResolver()
	unlocked := map[string]bool{}

	a := r.DroneBlueprint(1, 1, unlocked, 777)
	b := r.DroneBlueprint(1, 1, unlocked, 777)

	if a.Exhausted != b.Exhausted {
		t.Fatal("same seed, different exhaustion")
	}
	if a.Drone != nil && b.Drone != nil && a.Drone.Name != b.Drone.Name {
		t.Fatalf("same seed, different drones: %q vs %q", a.Drone.Name, b.Drone.Name)
	}
}

func TestDroneBlueprint_ExcludesStarterAndUnlocked(t *testing.T) {
	r := testResolver()
	unlocked := map[string]bool{"Wasp": true}

	for seed := int64(0); seed < 300; seed++ {
		br := r.DroneBlueprint(1, 1, unlocked, seed)
		if br.Exhausted {
			continue
		}
		if br.Drone.Name == "Vesper" {
			t.Fatalf("seed %d: starter drone rolled", seed)
		}
		if unlocked[br.Drone.Name] {
			t.Fatalf("seed %d: already-unlocked drone rolled", seed)
		}
	}
}

func TestDroneBlueprint_ExhaustionIsResultNotError(t *testing.T) {
	r := testResolver()
	// Everything eligible is already unlocked: every attempt must miss.
	unlocked := map[string]bool{"Wasp": true, "Mantis": true, "Colossus": true}

	br := r.DroneBlueprint(1, 1, unlocked, 5)
	if !br.Exhausted {
		t.Fatal("fully-unlocked pool should exhaust")
	}
	if br.Drone != nil {
		t.Error("exhausted result should carry no drone")
	}
	if br.Band != 1 || br.Tier != 1 {
		t.Errorf("exhausted result lost its band/tier: %+v", br)
	}
}

func TestDroneBlueprint_UnknownBandStillRolls(t *testing.T) {
	r := testResolver()
	br := r.DroneBlueprint(99, 1, map[string]bool{}, 12)
	if br.Exhausted {
		t.Fatal("unknown band should fall back to a flat distribution, not exhaust")
	}
}

func TestExhaustionFallback_AlwaysProduces(t *testing.T) {
	r := testResolver()
	for seed := int64(0); seed < 100; seed++ {
		item, ok := r.ExhaustionFallback(1, seed)
		if !ok {
			t.Fatalf("seed %d: fallback came up empty with salvage in the catalog", seed)
		}
		if item.ID == "" {
			t.Fatalf("seed %d: fallback produced an unnamed item", seed)
		}
	}
}

func TestExhaustionFallback_BoostsRarity(t *testing.T) {
	r := testResolver()

	// At tier 1 most rolls land common; the fallback boosts one step, so
	// uncommon should dominate and common should appear only as a
	// step-down from boosted rarities with no catalog entry.
	counts := map[types.Rarity]int{}
	for seed := int64(0); seed < 500; seed++ {
		item, ok := r.ExhaustionFallback(1, seed)
		if !ok {
			t.Fatal("fallback empty")
		}
		counts[item.Rarity]++
	}
	if counts[types.Uncommon] <= counts[types.Common] {
		t.Errorf("boost missing: common %d, uncommon %d", counts[types.Common], counts[types.Uncommon])
	}
}

func TestDescribeSlot(t *testing.T) {
	card := types.Card{Name: "Lance", Rarity: types.Rare}
	item := types.SalvageItem{Name: "Alloy"}

	tests := []struct {
		slot types.RewardSlot
		want string
	}{
		{types.RewardSlot{Kind: types.SlotCard, Card: &card}, "card Lance (rare)"},
		{types.RewardSlot{Kind: types.SlotSalvage, Salvage: &item}, "salvage Alloy"},
		{types.RewardSlot{Kind: types.SlotToken, Token: "chit"}, "token chit"},
		{types.RewardSlot{Kind: types.SlotBlueprintExhausted}, "exhausted blueprint"},
	}
	for _, tt := range tests {
		if got := DescribeSlot(tt.slot); got != tt.want {
			t.Errorf("DescribeSlot(%v) = %q, want %q", tt.slot.Kind, got, tt.want)
		}
	}
}
