package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerConditionHelpers(L)
	registerEffectHelpers(L)
}

// curried registers a global of the form `Name "id" { ... }`.
func curried(L *lua.LState, name string, sink func(rawDef)) {
	L.SetGlobal(name, L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			sink(rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	}))
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	curried(L, "Card", func(d rawDef) { coll.cards = append(coll.cards, d) })
	curried(L, "Drone", func(d rawDef) { coll.drones = append(coll.drones, d) })
	curried(L, "Salvage", func(d rawDef) { coll.salvage = append(coll.salvage, d) })
	curried(L, "Pack", func(d rawDef) { coll.packs = append(coll.packs, d) })
	curried(L, "POI", func(d rawDef) { coll.pois = append(coll.pois, d) })
	curried(L, "Opponent", func(d rawDef) { coll.opponents = append(coll.opponents, d) })

	// StarterCards { "id", ... } / StarterDrones { "name", ... }
	L.SetGlobal("StarterCards", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				coll.starterCards = append(coll.starterCards, string(s))
			}
		})
		return 0
	}))
	L.SetGlobal("StarterDrones", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		tbl.ForEach(func(_, v lua.LValue) {
			if s, ok := v.(lua.LString); ok {
				coll.starterDrones = append(coll.starterDrones, string(s))
			}
		})
		return 0
	}))

	// Pre("id", condition, effect) / Post("id", condition, effect) —
	// build a conditional-effect clause table.
	timed := func(timing string) *lua.LFunction {
		return L.NewFunction(func(L *lua.LState) int {
			id := L.CheckString(1)
			cond := L.CheckTable(2)
			eff := L.CheckTable(3)
			tbl := L.NewTable()
			tbl.RawSetString("id", lua.LString(id))
			tbl.RawSetString("timing", lua.LString(timing))
			tbl.RawSetString("condition", cond)
			tbl.RawSetString("effect", eff)
			L.Push(tbl)
			return 1
		})
	}
	L.SetGlobal("Pre", timed("pre"))
	L.SetGlobal("Post", timed("post"))
}

// tagged builds a helper returning {type=..., <extra fields>}.
func tagged(L *lua.LState, condType string, fill func(L *lua.LState, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString(condType))
		if fill != nil {
			fill(L, tbl)
		}
		L.Push(tbl)
		return 1
	})
}

func registerConditionHelpers(L *lua.LState) {
	L.SetGlobal("TargetMarked", tagged(L, "target_marked", nil))
	L.SetGlobal("TargetExhausted", tagged(L, "target_exhausted", nil))
	L.SetGlobal("TargetReady", tagged(L, "target_ready", nil))

	// TargetStat("lte", "hull", 2)
	L.SetGlobal("TargetStat", L.NewFunction(func(L *lua.LState) int {
		op := L.CheckString(1)
		stat := L.CheckString(2)
		value := L.CheckNumber(3)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("target_stat_"+op))
		tbl.RawSetString("stat", lua.LString(stat))
		tbl.RawSetString("value", value)
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("Destroyed", tagged(L, "destroyed", nil))
	L.SetGlobal("AnyDamage", tagged(L, "damage_dealt", nil))
	L.SetGlobal("HullDamage", tagged(L, "damage_dealt", func(L *lua.LState, tbl *lua.LTable) {
		tbl.RawSetString("hull_only", lua.LTrue)
	}))
	L.SetGlobal("MoveSucceeded", tagged(L, "move_succeeded", nil))

	// LaneAdvantage { lane = "to", filter = "ready", op = "gt" }
	L.SetGlobal("LaneAdvantage", L.NewFunction(func(L *lua.LState) int {
		opts := L.OptTable(1, L.NewTable())
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("lane_advantage"))
		opts.ForEach(func(k, v lua.LValue) {
			if ks, ok := k.(lua.LString); ok {
				tbl.RawSetString(string(ks), v)
			}
		})
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("NotFirstAction", tagged(L, "not_first_action", nil))
}

func registerEffectHelpers(L *lua.LState) {
	// BonusDamage(2)
	L.SetGlobal("BonusDamage", L.NewFunction(func(L *lua.LState) int {
		amount := L.CheckNumber(1)
		tbl := L.NewTable()
		tbl.RawSetString("type", lua.LString("bonus_damage"))
		tbl.RawSetString("amount", amount)
		L.Push(tbl)
		return 1
	}))

	L.SetGlobal("RepeatTurn", tagged(L, "repeat_turn", nil))
	L.SetGlobal("DrawCard", tagged(L, "draw_card", nil))
	L.SetGlobal("MarkTarget", tagged(L, "mark_target", nil))
}
