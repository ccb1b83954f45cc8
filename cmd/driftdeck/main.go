// DriftDeck is a deterministic reward and conditional-effect engine for a
// tactical drone card game, wrapped in a run simulator.
// Usage: driftdeck [--version] [--plain] [--script <file>] [--seed <n>]
// [--tier <n>] [--tuning <file>] <content_directory>
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/arcov/driftdeck/cli"
	"github.com/arcov/driftdeck/engine"
	"github.com/arcov/driftdeck/game"
	"github.com/arcov/driftdeck/loader"
	"github.com/arcov/driftdeck/tui"
	"github.com/arcov/driftdeck/tuning"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	plain := false
	var contentDir string
	var scriptFile string
	var tuningFile string
	seed := int64(0)
	seedSet := false
	tier := 1

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("driftdeck %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--script":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--script requires a file path\n")
				os.Exit(1)
			}
			i++
			scriptFile = args[i]
		case "--seed":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--seed requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.ParseInt(args[i], 10, 64)
			if err != nil {
				fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
				os.Exit(1)
			}
			seed = n
			seedSet = true
		case "--tier":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--tier requires a number\n")
				os.Exit(1)
			}
			i++
			n, err := strconv.Atoi(args[i])
			if err != nil {
				fmt.Fprintf(os.Stderr, "--tier: %v\n", err)
				os.Exit(1)
			}
			tier = n
		case "--tuning":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "--tuning requires a file path\n")
				os.Exit(1)
			}
			i++
			tuningFile = args[i]
		default:
			if contentDir == "" {
				contentDir = args[i]
			}
		}
	}

	if contentDir == "" {
		fmt.Fprintf(os.Stderr, "Usage: driftdeck [--version] [--plain] [--script <file>] [--seed <n>] [--tier <n>] [--tuning <file>] <content_directory>\n")
		os.Exit(1)
	}

	// Load and compile Lua content.
	cat, err := loader.Load(contentDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading content: %v\n", err)
		os.Exit(1)
	}

	cfg := tuning.Default()
	if tuningFile != "" {
		cfg, err = tuning.Load(tuningFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading tuning: %v\n", err)
			os.Exit(1)
		}
	}

	if !seedSet {
		seed = engine.TimeSeed()
	}

	eng := game.New(cat, cfg, seed, tier)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		fmt.Printf("%s v%s by %s (seed %d)\n\n", cat.Game.Title, cat.Game.Version, cat.Game.Author, seed)
		c := cli.New(eng)
		c.In = f
		c.EchoInput = true
		c.Run()
		return
	}

	// Use plain CLI if --plain flag or stdout is not a terminal.
	if plain || !isTerminal() {
		fmt.Printf("%s v%s by %s (seed %d)\n\n", cat.Game.Title, cat.Game.Version, cat.Game.Author, seed)
		c := cli.New(eng)
		c.Run()
		return
	}

	if err := tui.Run(eng); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
