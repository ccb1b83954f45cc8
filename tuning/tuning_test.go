package tuning

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arcov/driftdeck/types"
)

func TestDefault_Complete(t *testing.T) {
	cfg := Default()

	for tier := 1; tier <= 3; tier++ {
		tt := cfg.Tier(tier)
		if len(tt.Rarity) == 0 {
			t.Errorf("tier %d: no rarity weights", tier)
		}
		if tt.DetectRate.Max < tt.DetectRate.Min {
			t.Errorf("tier %d: inverted detect band", tier)
		}
	}
	for _, zone := range []string{"fringe", "midline", "core"} {
		z := cfg.Zone(zone)
		if len(z.SlotWeights) != 5 {
			t.Errorf("zone %s: expected 5 slot weights, got %d", zone, len(z.SlotWeights))
		}
		if z.CreditMultiplier <= 0 {
			t.Errorf("zone %s: non-positive credit multiplier", zone)
		}
	}
	for _, band := range []string{"low", "medium", "high"} {
		if len(cfg.Opponents[band]) == 0 {
			t.Errorf("opponent band %s empty", band)
		}
	}
}

func TestTier_ClampsOutOfRange(t *testing.T) {
	cfg := Default()

	if got := cfg.Tier(0); got.EmptyHexChance != cfg.Tier(1).EmptyHexChance {
		t.Error("tier below range should clamp to the lowest defined tier")
	}
	if got := cfg.Tier(99); got.EmptyHexChance != cfg.Tier(3).EmptyHexChance {
		t.Error("tier above range should clamp to the highest defined tier")
	}
}

func TestTier_InteriorGapClampsToNearest(t *testing.T) {
	cfg := &Config{
		Tiers: map[int]Tier{
			1: {EmptyHexChance: 10},
			4: {EmptyHexChance: 40},
		},
	}

	if got := cfg.Tier(3); got.EmptyHexChance != 40 {
		t.Errorf("tier 3 clamped to EmptyHexChance %d, want nearest tier 4", got.EmptyHexChance)
	}
	if got := cfg.Tier(2); got.EmptyHexChance != 10 {
		t.Errorf("tier 2 clamped to EmptyHexChance %d, want nearest tier 1", got.EmptyHexChance)
	}

	// A true tie resolves to the lower tier.
	cfg.Tiers = map[int]Tier{1: {EmptyHexChance: 10}, 3: {EmptyHexChance: 30}}
	if got := cfg.Tier(2); got.EmptyHexChance != 10 {
		t.Errorf("tied tier 2 clamped to EmptyHexChance %d, want lower tier 1", got.EmptyHexChance)
	}
}

func TestTier_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	got := cfg.Tier(1) // must not panic
	if len(got.Rarity) != 0 {
		t.Errorf("empty config produced tuning: %+v", got)
	}
}

func TestZone_UnknownFallsBackNeutral(t *testing.T) {
	cfg := Default()
	z := cfg.Zone("nowhere")
	if z.CreditMultiplier != 1.0 {
		t.Errorf("neutral multiplier = %v, want 1.0", z.CreditMultiplier)
	}
	if len(z.SlotWeights) != 5 {
		t.Errorf("neutral slot weights = %v", z.SlotWeights)
	}
	for i, w := range z.SlotWeights {
		if w != z.SlotWeights[0] {
			t.Errorf("neutral weights not uniform at %d: %v", i, z.SlotWeights)
		}
	}
}

func TestRarityTable_CanonicalOrder(t *testing.T) {
	cfg := Default()
	entries := cfg.RarityTable(1)

	want := []string{"common", "uncommon", "rare", "epic", "legendary"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(entries))
	}
	for i, label := range want {
		if entries[i].Label != label {
			t.Errorf("entry %d = %q, want %q", i, entries[i].Label, label)
		}
	}
}

func TestAllowedRarities_ZeroWeightExcluded(t *testing.T) {
	cfg := &Config{
		Tiers: map[int]Tier{
			1: {Rarity: map[string]int{"common": 10, "uncommon": 0, "rare": 5}},
		},
	}
	allowed := cfg.AllowedRarities(1)
	if !allowed[types.Common] || !allowed[types.Rare] {
		t.Errorf("positive-weight rarities missing: %v", allowed)
	}
	if allowed[types.Uncommon] {
		t.Error("zero-weight rarity allowed")
	}
	if allowed[types.Legendary] {
		t.Error("absent rarity allowed")
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tuning.yaml")
	doc := `
tiers:
  1:
    rarity:
      common: 100
    detect_rate: {min: 1, max: 2}
zones:
  fringe:
    slot_weights: [100, 0, 0, 0, 0]
    credit_multiplier: 2.0
`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Overridden sections replace whole keys.
	if cfg.Tier(1).Rarity["common"] != 100 {
		t.Errorf("tier 1 override lost: %v", cfg.Tier(1).Rarity)
	}
	if cfg.Zone("fringe").CreditMultiplier != 2.0 {
		t.Errorf("zone override lost: %v", cfg.Zone("fringe"))
	}

	// Untouched keys keep defaults.
	if cfg.Tier(2).Rarity["common"] != Default().Tier(2).Rarity["common"] {
		t.Error("untouched tier changed")
	}
	if cfg.Zone("core").CreditMultiplier != Default().Zone("core").CreditMultiplier {
		t.Error("untouched zone changed")
	}
	if len(cfg.Opponents["low"]) == 0 {
		t.Error("untouched opponents section lost")
	}
}

func TestLoad_EmptyPathIsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if cfg.Tier(1).EmptyHexChance != Default().Tier(1).EmptyHexChance {
		t.Error("empty path should return defaults")
	}
}

func TestLoad_Errors(t *testing.T) {
	if _, err := Load("/no/such/tuning.yaml"); err == nil {
		t.Error("missing file should error")
	}

	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte(":\n  - not: [valid"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("malformed yaml should error")
	}
}
