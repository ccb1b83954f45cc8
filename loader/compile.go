package loader

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/arcov/driftdeck/engine/state"
	"github.com/arcov/driftdeck/types"
)

// compile converts the collected Lua tables into a typed catalog.
// Declaration order is preserved everywhere selection walks a pool.
func compile(coll *collector) (*state.Catalog, error) {
	cat := &state.Catalog{
		Packs:         map[string]types.PackDef{},
		POIs:          map[string]types.POIDef{},
		Opponents:     map[string]types.OpponentDef{},
		StarterCards:  map[string]bool{},
		StarterDrones: map[string]bool{},
	}

	if coll.game != nil {
		cat.Game = types.GameDef{
			Title:     tblString(coll.game, "title"),
			Author:    tblString(coll.game, "author"),
			Version:   tblString(coll.game, "version"),
			StartZone: tblString(coll.game, "start_zone"),
			Intro:     tblString(coll.game, "intro"),
		}
	}

	for _, raw := range coll.cards {
		card, err := compileCard(raw)
		if err != nil {
			return nil, err
		}
		cat.Cards = append(cat.Cards, card)
	}
	for _, raw := range coll.drones {
		d, err := compileDrone(raw)
		if err != nil {
			return nil, err
		}
		cat.Drones = append(cat.Drones, d)
	}
	for _, raw := range coll.salvage {
		item, err := compileSalvage(raw)
		if err != nil {
			return nil, err
		}
		cat.Salvage = append(cat.Salvage, item)
	}
	for _, raw := range coll.packs {
		pack, err := compilePack(raw)
		if err != nil {
			return nil, err
		}
		cat.Packs[pack.Type] = pack
	}
	for _, raw := range coll.pois {
		cat.POIs[raw.id] = types.POIDef{
			ID:              raw.id,
			Name:            tblString(raw.table, "name"),
			Zone:            tblString(raw.table, "zone"),
			RewardBand:      tblInt(raw.table, "band"),
			BaseSecurity:    tblInt(raw.table, "security"),
			EncounterChance: tblInt(raw.table, "encounter"),
		}
	}
	for _, raw := range coll.opponents {
		cat.Opponents[raw.id] = types.OpponentDef{ID: raw.id, Name: tblString(raw.table, "name")}
	}
	for _, id := range coll.starterCards {
		cat.StarterCards[id] = true
	}
	for _, name := range coll.starterDrones {
		cat.StarterDrones[name] = true
	}
	return cat, nil
}

func compileCard(raw rawDef) (types.Card, error) {
	rarity, err := rarityOf(raw.table, raw.id)
	if err != nil {
		return types.Card{}, err
	}
	card := types.Card{
		ID:     raw.id,
		Name:   tblString(raw.table, "name"),
		Type:   tblString(raw.table, "type"),
		Rarity: rarity,
		Stats:  tblIntMap(raw.table, "stats"),
	}
	if card.Name == "" {
		card.Name = raw.id
	}
	if card.Type == "" {
		return types.Card{}, fmt.Errorf("card %s: missing type", raw.id)
	}

	if conds, ok := raw.table.RawGetString("conditionals").(*lua.LTable); ok {
		var cerr error
		conds.ForEach(func(_, v lua.LValue) {
			tbl, ok := v.(*lua.LTable)
			if !ok || cerr != nil {
				return
			}
			def, err := compileConditional(raw.id, tbl)
			if err != nil {
				cerr = err
				return
			}
			card.Conditionals = append(card.Conditionals, def)
		})
		if cerr != nil {
			return types.Card{}, cerr
		}
	}
	return card, nil
}

func compileConditional(cardID string, tbl *lua.LTable) (types.ConditionalEffectDef, error) {
	timing := types.Timing(tblString(tbl, "timing"))
	if timing != types.Pre && timing != types.Post {
		return types.ConditionalEffectDef{}, fmt.Errorf("card %s: conditional timing must be pre or post", cardID)
	}
	cond, ok := tbl.RawGetString("condition").(*lua.LTable)
	if !ok {
		return types.ConditionalEffectDef{}, fmt.Errorf("card %s: conditional missing condition", cardID)
	}
	eff, ok := tbl.RawGetString("effect").(*lua.LTable)
	if !ok {
		return types.ConditionalEffectDef{}, fmt.Errorf("card %s: conditional missing effect", cardID)
	}
	return types.ConditionalEffectDef{
		ID:        tblString(tbl, "id"),
		Timing:    timing,
		Condition: types.Condition{Type: tblString(cond, "type"), Params: tblParams(cond)},
		Effect:    types.Effect{Type: tblString(eff, "type"), Params: tblParams(eff)},
	}, nil
}

func compileDrone(raw rawDef) (types.Drone, error) {
	rarity, err := rarityOf(raw.table, raw.id)
	if err != nil {
		return types.Drone{}, err
	}
	class := tblInt(raw.table, "class")
	if class <= 0 {
		return types.Drone{}, fmt.Errorf("drone %s: class must be positive", raw.id)
	}
	return types.Drone{
		Name:   raw.id,
		Class:  class,
		Rarity: rarity,
		Stats:  tblIntMap(raw.table, "stats"),
	}, nil
}

func compileSalvage(raw rawDef) (types.SalvageItem, error) {
	rarity, err := rarityOf(raw.table, raw.id)
	if err != nil {
		return types.SalvageItem{}, err
	}
	item := types.SalvageItem{
		ID:     raw.id,
		Name:   tblString(raw.table, "name"),
		Rarity: rarity,
	}
	if item.Name == "" {
		item.Name = raw.id
	}
	if vals, ok := raw.table.RawGetString("value").(*lua.LTable); ok {
		item.MinValue = intOf(vals.RawGetInt(1))
		item.MaxValue = intOf(vals.RawGetInt(2))
	}
	if item.MaxValue < item.MinValue {
		return types.SalvageItem{}, fmt.Errorf("salvage %s: value range inverted", raw.id)
	}
	return item, nil
}

func compilePack(raw rawDef) (types.PackDef, error) {
	pack := types.PackDef{
		Type:           raw.id,
		MinCards:       tblInt(raw.table, "min_cards"),
		MaxCards:       tblInt(raw.table, "max_cards"),
		GuaranteedType: tblString(raw.table, "guaranteed_type"),
		CreditMin:      tblInt(raw.table, "credit_min"),
		CreditMax:      tblInt(raw.table, "credit_max"),
		Token:          tblString(raw.table, "token"),
	}
	if pack.MaxCards < pack.MinCards {
		return types.PackDef{}, fmt.Errorf("pack %s: max_cards below min_cards", raw.id)
	}

	// type_weights is an array of {label, weight} pairs: Lua hash tables
	// would lose the declaration order the roll walk depends on.
	if tw, ok := raw.table.RawGetString("type_weights").(*lua.LTable); ok {
		var err error
		tw.ForEach(func(_, v lua.LValue) {
			pair, ok := v.(*lua.LTable)
			if !ok || err != nil {
				if err == nil {
					err = fmt.Errorf("pack %s: type_weights entries must be {label, weight} pairs", raw.id)
				}
				return
			}
			label, _ := pair.RawGetInt(1).(lua.LString)
			pack.TypeWeights = append(pack.TypeWeights, types.WeightEntry{
				Label:  string(label),
				Weight: intOf(pair.RawGetInt(2)),
			})
		})
		if err != nil {
			return types.PackDef{}, err
		}
	}
	return pack, nil
}

// rarityOf reads and parses the rarity field.
func rarityOf(tbl *lua.LTable, id string) (types.Rarity, error) {
	name := tblString(tbl, "rarity")
	r, ok := types.ParseRarity(name)
	if !ok {
		return types.Common, fmt.Errorf("%s: unknown rarity %q", id, name)
	}
	return r, nil
}

// Lua value helpers.

func tblString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

func tblInt(tbl *lua.LTable, key string) int {
	return intOf(tbl.RawGetString(key))
}

func intOf(v lua.LValue) int {
	if n, ok := v.(lua.LNumber); ok {
		return int(n)
	}
	return 0
}

// tblIntMap reads a {name = number} table, e.g. stats.
func tblIntMap(tbl *lua.LTable, key string) map[string]int {
	sub, ok := tbl.RawGetString(key).(*lua.LTable)
	if !ok {
		return nil
	}
	out := map[string]int{}
	sub.ForEach(func(k, v lua.LValue) {
		ks, kok := k.(lua.LString)
		vn, vok := v.(lua.LNumber)
		if kok && vok {
			out[string(ks)] = int(vn)
		}
	})
	return out
}

// tblParams converts a condition/effect table to generic params,
// dropping the type tag. Numbers stay float64, matching what the
// evaluator's numeric coercion accepts.
func tblParams(tbl *lua.LTable) map[string]any {
	out := map[string]any{}
	tbl.ForEach(func(k, v lua.LValue) {
		ks, ok := k.(lua.LString)
		if !ok || string(ks) == "type" {
			return
		}
		switch val := v.(type) {
		case lua.LString:
			out[string(ks)] = string(val)
		case lua.LNumber:
			out[string(ks)] = float64(val)
		case lua.LBool:
			out[string(ks)] = bool(val)
		}
	})
	if len(out) == 0 {
		return nil
	}
	return out
}
