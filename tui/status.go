package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/arcov/driftdeck/engine/encounter"
)

// renderStatusBar produces a full-width inverted status line showing the
// run's tier, zone, detection/threat, and collection counts.
func (m Model) renderStatusBar() string {
	run := m.engine.Run

	left := fmt.Sprintf(" T%d %s | Det %d%% (%s)",
		run.Tier, run.Zone, run.Detection, encounter.ThreatLevel(run.Detection))
	right := fmt.Sprintf("Mv:%d ", run.MoveIndex)

	candidate := fmt.Sprintf("Cards:%d Slv:%d BP:%d | Mv:%d ",
		len(run.Cards), len(run.Salvage), len(run.UnlockedBlueprints), run.MoveIndex)
	if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
		right = candidate
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}
	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
