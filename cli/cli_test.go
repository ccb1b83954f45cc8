package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arcov/driftdeck/engine/state"
	"github.com/arcov/driftdeck/game"
	"github.com/arcov/driftdeck/tuning"
	"github.com/arcov/driftdeck/types"
)

func testEngine() *game.Engine {
	cat := &state.Catalog{
		Game: types.GameDef{Title: "Test Run", Version: "0.1.0", StartZone: "fringe",
			Intro: "Signal acquired."},
		Cards: []types.Card{
			{ID: "lance", Name: "Lance", Type: "assault", Rarity: types.Common,
				Stats: map[string]int{"damage": 2}},
		},
		Drones: []types.Drone{
			{Name: "Mantis", Class: 2, Rarity: types.Rare, Stats: map[string]int{"hull": 3}},
		},
		Salvage: []types.SalvageItem{
			{ID: "scrap", Name: "Scrap", Rarity: types.Common, MinValue: 0, MaxValue: 500},
		},
		Packs: map[string]types.PackDef{
			"recon": {Type: "recon", MinCards: 1, MaxCards: 2, GuaranteedType: "assault",
				CreditMin: 10, CreditMax: 60},
			"poi_cache": {Type: "poi_cache", MinCards: 1, MaxCards: 2, GuaranteedType: "assault",
				CreditMin: 20, CreditMax: 100},
		},
		POIs: map[string]types.POIDef{
			"relay": {ID: "relay", Name: "Relay", Zone: "fringe", RewardBand: 1, BaseSecurity: 0, EncounterChance: 40},
		},
		Opponents: map[string]types.OpponentDef{
			"scavenger": {ID: "scavenger", Name: "Scavenger Skiff"},
		},
	}
	cat.Index()
	return game.New(cat, tuning.Default(), 42, 1)
}

func runScript(t *testing.T, script string) string {
	t.Helper()
	eng := testEngine()
	var out bytes.Buffer
	c := New(eng)
	c.In = strings.NewReader(script)
	c.Out = &out
	c.SaveDir = t.TempDir()
	c.Run()
	return out.String()
}

func TestRun_PrintsIntroAndStatus(t *testing.T) {
	out := runScript(t, "/quit\n")
	if !strings.Contains(out, "Signal acquired.") {
		t.Error("intro missing")
	}
	if !strings.Contains(out, "Tier 1, zone fringe") {
		t.Errorf("status missing:\n%s", out)
	}
	if !strings.Contains(out, "Goodbye.") {
		t.Error("quit message missing")
	}
}

func TestDispatch_Move(t *testing.T) {
	out := runScript(t, "move 1 0\n/quit\n")
	if !strings.Contains(out, "Moved to (1,0)") {
		t.Errorf("move output missing:\n%s", out)
	}
}

func TestDispatch_MoveUsage(t *testing.T) {
	out := runScript(t, "move\n/quit\n")
	if !strings.Contains(out, "Usage: move") {
		t.Errorf("usage missing:\n%s", out)
	}
}

func TestDispatch_OpenPack(t *testing.T) {
	out := runScript(t, "open recon\n/quit\n")
	if !strings.Contains(out, "Opened recon pack") {
		t.Errorf("pack output missing:\n%s", out)
	}
}

func TestDispatch_ArriveLoot(t *testing.T) {
	// Security 0 at low threat: arrival always loots.
	out := runScript(t, "arrive relay 2 3\n/quit\n")
	if !strings.Contains(out, "Relay: clear.") {
		t.Errorf("loot output missing:\n%s", out)
	}
}

func TestDispatch_Play(t *testing.T) {
	out := runScript(t, "play lance\n/quit\n")
	if !strings.Contains(out, "Lance resolves for 2 damage") {
		t.Errorf("play output missing:\n%s", out)
	}
}

func TestDispatch_Victory(t *testing.T) {
	out := runScript(t, "move 1 0\nvictory\n/state\n/quit\n")
	if !strings.Contains(out, "detection back to 0%") {
		t.Errorf("victory output missing:\n%s", out)
	}
	if !strings.Contains(out, "detection 0%") {
		t.Errorf("state after victory should show 0%%:\n%s", out)
	}
}

func TestDispatch_Unknown(t *testing.T) {
	out := runScript(t, "dance\n/quit\n")
	if !strings.Contains(out, `Unknown command "dance"`) {
		t.Errorf("unknown command message missing:\n%s", out)
	}
}

func TestMeta_UnknownCommand(t *testing.T) {
	out := runScript(t, "/frobnicate\n/quit\n")
	if !strings.Contains(out, "Unknown command: /frobnicate") {
		t.Errorf("unknown meta message missing:\n%s", out)
	}
}

func TestMeta_Help(t *testing.T) {
	out := runScript(t, "/help\n/quit\n")
	for _, want := range []string{"/save", "move <q> <r>", "blueprint"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q:\n%s", want, out)
		}
	}
}

func TestMeta_SaveLoadRoundTrip(t *testing.T) {
	eng := testEngine()
	dir := t.TempDir()

	var out bytes.Buffer
	c := New(eng)
	c.In = strings.NewReader("move 1 0\nmove 2 0\n/save trip\n/quit\n")
	c.Out = &out
	c.SaveDir = dir
	c.Run()

	if !strings.Contains(out.String(), "Run saved to trip.") {
		t.Fatalf("save confirmation missing:\n%s", out.String())
	}
	if _, err := os.Stat(filepath.Join(dir, "trip.json")); err != nil {
		t.Fatalf("save file missing: %v", err)
	}
	savedDetection := eng.Run.Detection

	// Load into a fresh engine.
	eng2 := testEngine()
	var out2 bytes.Buffer
	c2 := New(eng2)
	c2.In = strings.NewReader("/load trip\n/quit\n")
	c2.Out = &out2
	c2.SaveDir = dir
	c2.Run()

	if !strings.Contains(out2.String(), "Run loaded from trip (move 2).") {
		t.Fatalf("load confirmation missing:\n%s", out2.String())
	}
	if eng2.Run.MoveIndex != 2 {
		t.Errorf("move index = %d, want 2", eng2.Run.MoveIndex)
	}
	if eng2.Run.Detection != savedDetection {
		t.Errorf("detection = %d, want %d", eng2.Run.Detection, savedDetection)
	}
}

func TestMeta_LoadMissing(t *testing.T) {
	out := runScript(t, "/load nothing\n/quit\n")
	if !strings.Contains(out, "Load failed") {
		t.Errorf("load failure message missing:\n%s", out)
	}
}

func TestRun_SkipsCommentsAndBlankLines(t *testing.T) {
	out := runScript(t, "# a comment\n\nmove 1 0\n/quit\n")
	if strings.Contains(out, "Unknown command") {
		t.Errorf("comment or blank line reached dispatch:\n%s", out)
	}
}

func TestRun_EchoInput(t *testing.T) {
	eng := testEngine()
	var out bytes.Buffer
	c := New(eng)
	c.In = strings.NewReader("victory\n/quit\n")
	c.Out = &out
	c.SaveDir = t.TempDir()
	c.EchoInput = true
	c.Run()

	if !strings.Contains(out.String(), "> victory") {
		t.Errorf("echoed input missing:\n%s", out.String())
	}
}
