package loader

import (
	"fmt"
	"strings"

	"github.com/arcov/driftdeck/engine/state"
)

// validate cross-checks catalog references after compilation. All
// problems are collected before reporting so content authors see the
// full list in one pass.
func validate(cat *state.Catalog) error {
	var problems []string

	cardTypes := map[string]bool{}
	cardIDs := map[string]bool{}
	for _, c := range cat.Cards {
		if cardIDs[c.ID] {
			problems = append(problems, fmt.Sprintf("duplicate card id %q", c.ID))
		}
		cardIDs[c.ID] = true
		cardTypes[c.Type] = true
	}

	droneNames := map[string]bool{}
	for _, d := range cat.Drones {
		if droneNames[d.Name] {
			problems = append(problems, fmt.Sprintf("duplicate drone %q", d.Name))
		}
		droneNames[d.Name] = true
	}

	salvageIDs := map[string]bool{}
	for _, s := range cat.Salvage {
		if salvageIDs[s.ID] {
			problems = append(problems, fmt.Sprintf("duplicate salvage id %q", s.ID))
		}
		salvageIDs[s.ID] = true
	}

	for _, pack := range cat.Packs {
		if pack.CreditMax > 0 && len(cat.Salvage) == 0 {
			problems = append(problems,
				fmt.Sprintf("pack %q: rolls credits but catalog has no salvage items", pack.Type))
		}
		if pack.GuaranteedType != "" && !cardTypes[pack.GuaranteedType] {
			problems = append(problems,
				fmt.Sprintf("pack %q: guaranteed_type %q matches no card", pack.Type, pack.GuaranteedType))
		}
		for _, w := range pack.TypeWeights {
			if w.Weight > 0 && !cardTypes[w.Label] {
				problems = append(problems,
					fmt.Sprintf("pack %q: type weight for %q matches no card", pack.Type, w.Label))
			}
		}
	}

	for id, poi := range cat.POIs {
		if poi.Zone == "" {
			problems = append(problems, fmt.Sprintf("poi %q: missing zone", id))
		}
		if poi.BaseSecurity < 0 || poi.BaseSecurity > 100 {
			problems = append(problems, fmt.Sprintf("poi %q: security out of 0..100", id))
		}
	}

	for id := range cat.StarterCards {
		if !cardIDs[id] {
			problems = append(problems, fmt.Sprintf("starter card %q not in catalog", id))
		}
	}
	for name := range cat.StarterDrones {
		if !droneNames[name] {
			problems = append(problems, fmt.Sprintf("starter drone %q not in catalog", name))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("catalog validation failed:\n  %s", strings.Join(problems, "\n  "))
	}
	return nil
}
