package engine

import "github.com/arcov/driftdeck/types"

// WeightTable is a weighted-categorical distribution over labels. Entries
// are walked in declaration order so selection is a pure function of the
// stream state. Zero-weight entries are excluded from the sampling space;
// an empty or all-zero table degrades to Default rather than erroring,
// because reward generation must always terminate with something.
type WeightTable struct {
	Entries []types.WeightEntry
	Default string
}

// Total sums the positive weights.
func (t WeightTable) Total() int {
	total := 0
	for _, e := range t.Entries {
		if e.Weight > 0 {
			total += e.Weight
		}
	}
	return total
}

// Labels returns the labels with weight > 0, in declaration order.
func (t WeightTable) Labels() []string {
	var out []string
	for _, e := range t.Entries {
		if e.Weight > 0 {
			out = append(out, e.Label)
		}
	}
	return out
}

// Roll draws a label. Never fails: an all-zero or empty table returns
// Default.
func (t WeightTable) Roll(s *Stream) string {
	total := t.Total()
	if total <= 0 {
		return t.Default
	}
	r := s.Float64() * float64(total)
	cumulative := 0
	for _, e := range t.Entries {
		if e.Weight <= 0 {
			continue
		}
		cumulative += e.Weight
		if r < float64(cumulative) {
			return e.Label
		}
	}
	// Float edge: r landed exactly on the total.
	return t.Entries[len(t.Entries)-1].Label
}

// WeightedIndex returns an index drawn from integer weights, or -1 when
// all weights are zero. Zero-weight indices are never produced.
func WeightedIndex(weights []int, s *Stream) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total <= 0 {
		return -1
	}
	r := s.Float64() * float64(total)
	cumulative := 0
	last := -1
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		last = i
		if r < float64(cumulative) {
			return i
		}
	}
	return last
}

// Shuffle permutes list in place with a Fisher–Yates walk: descending i,
// swapping with a uniform j in [0, i]. Same seed, same permutation.
func Shuffle[T any](list []T, s *Stream) {
	for i := len(list) - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		list[i], list[j] = list[j], list[i]
	}
}

// PickUniform draws one element uniformly. ok is false for an empty list.
func PickUniform[T any](list []T, s *Stream) (v T, ok bool) {
	if len(list) == 0 {
		return v, false
	}
	return list[s.IntN(len(list))], true
}
