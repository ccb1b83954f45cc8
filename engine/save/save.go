// Package save implements JSON serialization of exploration-run state.
// A save replayed with the same seed reproduces the same rewards and
// encounters; nothing non-deterministic is stored.
package save

import (
	"encoding/json"

	"github.com/arcov/driftdeck/engine/state"
)

// SaveData is the JSON-serializable save format.
type SaveData struct {
	Version   string          `json:"version"`
	RunID     string          `json:"run_id"`
	Seed      int64           `json:"seed"`
	Tier      int             `json:"tier"`
	Zone      string          `json:"zone"`
	MoveIndex int             `json:"move_index"`
	Detection int             `json:"detection"`
	Victories int             `json:"victories"`
	Unlocked  map[string]bool `json:"unlocked_blueprints"`
	Cards     []string        `json:"cards"`
	Salvage   []string        `json:"salvage"`
}

// Save serializes a run to JSON bytes.
func Save(run *state.Run, version string) ([]byte, error) {
	data := SaveData{
		Version:   version,
		RunID:     run.ID,
		Seed:      run.Seed,
		Tier:      run.Tier,
		Zone:      run.Zone,
		MoveIndex: run.MoveIndex,
		Detection: run.Detection,
		Victories: run.Victories,
		Unlocked:  run.UnlockedBlueprints,
		Cards:     run.Cards,
		Salvage:   run.Salvage,
	}
	return json.MarshalIndent(data, "", "  ")
}

// Load deserializes JSON bytes into SaveData, normalizing nil maps and
// slices so callers never need nil checks.
func Load(data []byte) (*SaveData, error) {
	var sd SaveData
	if err := json.Unmarshal(data, &sd); err != nil {
		return nil, err
	}
	if sd.Unlocked == nil {
		sd.Unlocked = map[string]bool{}
	}
	if sd.Cards == nil {
		sd.Cards = []string{}
	}
	if sd.Salvage == nil {
		sd.Salvage = []string{}
	}
	return &sd, nil
}

// Apply overwrites a run with loaded save data.
func Apply(run *state.Run, sd *SaveData) {
	run.ID = sd.RunID
	run.Seed = sd.Seed
	run.Tier = sd.Tier
	run.Zone = sd.Zone
	run.MoveIndex = sd.MoveIndex
	run.Detection = sd.Detection
	run.Victories = sd.Victories
	run.UnlockedBlueprints = sd.Unlocked
	run.Cards = sd.Cards
	run.Salvage = sd.Salvage
}
