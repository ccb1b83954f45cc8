// Package loader reads the Lua content catalog — cards, drones, salvage,
// packs, points of interest, opponents and starter pools — and compiles
// it into the immutable state.Catalog the engine consumes. The Lua VM is
// sandboxed and discarded after loading; content cannot reach the
// filesystem or the clock.
package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/arcov/driftdeck/engine/state"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game          *lua.LTable
	cards         []rawDef
	drones        []rawDef
	salvage       []rawDef
	packs         []rawDef
	pois          []rawDef
	opponents     []rawDef
	starterCards  []string
	starterDrones []string
}

// rawDef is one uncompiled "Constructor \"id\" { ... }" declaration.
type rawDef struct {
	id    string
	table *lua.LTable
}

// Load reads all .lua files from dir, compiles them into catalog
// definitions, validates references, and returns the immutable Catalog.
func Load(dir string) (*state.Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading content directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}
	sortLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		path := filepath.Join(dir, f)
		if err := L.DoFile(path); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	cat, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling catalog: %w", err)
	}
	if err := validate(cat); err != nil {
		return nil, err
	}
	cat.Index()
	return cat, nil
}

// sortLuaFiles orders game.lua first, rest alphabetical, so metadata is
// in place before content files run.
func sortLuaFiles(files []string) {
	sort.Slice(files, func(i, j int) bool {
		if files[i] == "game.lua" {
			return true
		}
		if files[j] == "game.lua" {
			return false
		}
		return files[i] < files[j]
	})
}

// openSafeLibs opens only the safe subset of Lua standard libraries.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox removes dangerous globals and functions.
func sandbox(L *lua.LState) {
	dangerous := []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage",
	}
	for _, name := range dangerous {
		L.SetGlobal(name, lua.LNil)
	}
	// math.random in content would break reward determinism.
	if mathTbl := L.GetGlobal("math"); mathTbl != lua.LNil {
		if tbl, ok := mathTbl.(*lua.LTable); ok {
			tbl.RawSetString("random", lua.LNil)
			tbl.RawSetString("randomseed", lua.LNil)
		}
	}
}
