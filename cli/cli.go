// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the DriftDeck run simulator.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arcov/driftdeck/engine/encounter"
	"github.com/arcov/driftdeck/engine/save"
	"github.com/arcov/driftdeck/game"
	"github.com/arcov/driftdeck/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *game.Engine
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool // echo each input line after the prompt (for script playback)
}

// New creates a CLI wired to the given engine.
func New(eng *game.Engine) *CLI {
	home, _ := os.UserHomeDir()
	return &CLI{
		Engine:  eng,
		In:      os.Stdin,
		Out:     os.Stdout,
		SaveDir: filepath.Join(home, ".driftdeck", "saves"),
	}
}

// Run starts the simulator loop: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if intro := c.Engine.Catalog.Game.Intro; intro != "" {
		c.printLine(intro)
		c.printLine("")
	}
	c.printStatus()

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		c.printResult(c.Dispatch(input))
	}
}

// Dispatch runs one simulator command and returns its result.
func (c *CLI) Dispatch(input string) types.Result {
	parts := strings.Fields(input)
	verb := strings.ToLower(parts[0])
	args := parts[1:]

	switch verb {
	case "move":
		q, r, ok := twoInts(args)
		if !ok {
			return say("Usage: move <q> <r>")
		}
		hex := types.Hex{Q: q, R: r, Zone: c.Engine.Run.Zone}
		if len(args) > 2 {
			hex.POI = args[2]
		}
		return c.Engine.Move(hex)

	case "arrive":
		if len(args) < 3 {
			return say("Usage: arrive <poi> <q> <r>")
		}
		q, r, ok := twoInts(args[1:])
		if !ok {
			return say("Usage: arrive <poi> <q> <r>")
		}
		return c.Engine.Arrive(args[0], q, r)

	case "open":
		if len(args) < 1 {
			return say("Usage: open <pack_type>")
		}
		return c.Engine.OpenPack(args[0])

	case "blueprint":
		band := 1
		if len(args) > 0 {
			if n, err := strconv.Atoi(args[0]); err == nil {
				band = n
			}
		}
		return c.Engine.Blueprint(band)

	case "play":
		if len(args) < 1 {
			return say("Usage: play <card_id>")
		}
		return c.Engine.PlayCard(args[0])

	case "victory":
		return c.Engine.Victory()

	default:
		return say(fmt.Sprintf("Unknown command %q. Type /help for available commands.", verb))
	}
}

// handleMeta dispatches meta-commands. Returns true if the simulator
// should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.printStatus()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}
	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}
	data, err := save.Save(c.Engine.Run, c.Engine.Catalog.Game.Version)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Run saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}
	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	save.Apply(c.Engine.Run, sd)
	c.printSystem(fmt.Sprintf("Run loaded from %s (move %d).", name, sd.MoveIndex))
	c.printStatus()
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /save [name]   — Save run (default: quicksave)",
		"  /load [name]   — Load run (default: quicksave)",
		"  /state         — Show run status",
		"  /quit          — Exit",
		"",
		"Simulator commands:",
		"  move <q> <r> [poi]    — Step one hex (raises detection, rolls encounters)",
		"  arrive <poi> <q> <r>  — Arrive at a point of interest",
		"  open <pack_type>      — Open a reward pack",
		"  blueprint [band]      — Roll a drone blueprint",
		"  play <card_id>        — Resolve a card against a practice target",
		"  victory               — Record a combat win (resets detection)",
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) printStatus() {
	run := c.Engine.Run
	c.printSystem(fmt.Sprintf("Tier %d, zone %s — move %d, detection %d%% (%s threat), %d victories",
		run.Tier, run.Zone, run.MoveIndex, run.Detection,
		encounter.ThreatLevel(run.Detection), run.Victories))
	c.printSystem(fmt.Sprintf("Collected: %d cards, %d salvage, %d blueprints",
		len(run.Cards), len(run.Salvage), len(run.UnlockedBlueprints)))
}

func (c *CLI) printResult(result types.Result) {
	for _, line := range result.Output {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}

func say(text string) types.Result {
	return types.Result{Output: []string{text}}
}

func twoInts(args []string) (int, int, bool) {
	if len(args) < 2 {
		return 0, 0, false
	}
	q, err1 := strconv.Atoi(args[0])
	r, err2 := strconv.Atoi(args[1])
	return q, r, err1 == nil && err2 == nil
}
