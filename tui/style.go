package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleDanger = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	styleConditional = lipgloss.NewStyle().
				Foreground(lipgloss.Color("117"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleWarning = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindReward
	kindDanger
	kindConditional
	kindSystem
	kindWarning
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	trimmed := strings.TrimLeft(line, " ")
	switch {
	case strings.HasPrefix(line, "warning:"):
		return kindWarning
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "Ambush!"), strings.Contains(line, "moves in."),
		strings.Contains(line, "guarding the signal"):
		return kindDanger
	case strings.HasPrefix(trimmed, "card "), strings.HasPrefix(trimmed, "salvage "),
		strings.HasPrefix(trimmed, "token "), strings.HasPrefix(line, "Blueprint unlocked"):
		return kindReward
	case strings.HasPrefix(line, "Conditional"):
		return kindConditional
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindReward:
		return styleReward.Render(line)
	case kindDanger:
		return styleDanger.Render(line)
	case kindConditional:
		return styleConditional.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindWarning:
		return styleWarning.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledPlayerInput renders the echoed player input in green with "> " prefix.
func styledPlayerInput(input string) string {
	return stylePlayerInput.Render("> " + input)
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
