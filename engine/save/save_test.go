package save

import (
	"testing"

	"github.com/arcov/driftdeck/engine/state"
)

func TestSaveLoadApply_RoundTrip(t *testing.T) {
	run := state.NewRun(4242, 2, "midline")
	run.MoveIndex = 17
	run.Detection = 55
	run.Victories = 3
	run.Unlock("Mantis")
	run.Cards = []string{"lance", "gambit"}
	run.Salvage = []string{"alloy"}

	data, err := Save(run, "1.0.0")
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	sd, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sd.Version != "1.0.0" {
		t.Errorf("version = %q", sd.Version)
	}

	restored := state.NewRun(0, 0, "")
	Apply(restored, sd)

	if restored.ID != run.ID {
		t.Errorf("id = %q, want %q", restored.ID, run.ID)
	}
	if restored.Seed != 4242 || restored.Tier != 2 || restored.Zone != "midline" {
		t.Errorf("identity fields lost: %+v", restored)
	}
	if restored.MoveIndex != 17 || restored.Detection != 55 || restored.Victories != 3 {
		t.Errorf("progress fields lost: %+v", restored)
	}
	if !restored.UnlockedBlueprints["Mantis"] {
		t.Error("unlocked blueprints lost")
	}
	if len(restored.Cards) != 2 || restored.Cards[0] != "lance" {
		t.Errorf("cards lost: %v", restored.Cards)
	}
	if len(restored.Salvage) != 1 || restored.Salvage[0] != "alloy" {
		t.Errorf("salvage lost: %v", restored.Salvage)
	}
}

func TestLoad_NormalizesNils(t *testing.T) {
	sd, err := Load([]byte(`{"version":"1.0.0","seed":1}`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sd.Unlocked == nil {
		t.Error("Unlocked not normalized")
	}
	if sd.Cards == nil {
		t.Error("Cards not normalized")
	}
	if sd.Salvage == nil {
		t.Error("Salvage not normalized")
	}
}

func TestLoad_RejectsGarbage(t *testing.T) {
	if _, err := Load([]byte("not json")); err == nil {
		t.Error("garbage input should error")
	}
}
