// Package tui provides a Bubble Tea terminal UI for the DriftDeck run
// simulator.
package tui

// History is a bounded command-history buffer with cursor navigation.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{entries: make([]string, 0, max), max: max, cursor: -1}
}

// Push adds a command. Consecutive duplicates are skipped; the oldest
// entry drops once the buffer is full.
func (h *History) Push(cmd string) {
	if n := len(h.entries); n > 0 && h.entries[n-1] == cmd {
		return
	}
	h.entries = append(h.entries, cmd)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Prev returns the previous (older) entry, false if history is empty.
func (h *History) Prev() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	if h.cursor == -1 {
		h.cursor = len(h.entries) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Next returns the next (newer) entry, false when navigation runs past
// the most recent entry and input is fresh again.
func (h *History) Next() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
