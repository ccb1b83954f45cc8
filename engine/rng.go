// Package engine provides the deterministic random stream and weighted
// selection primitives the reward, encounter and run subsystems build on.
package engine

import "time"

// Linear congruential generator constants (glibc family). Fixed so two
// streams with the same seed produce bit-identical sequences on every
// platform, which is what makes reward replay verifiable.
const (
	lcgMultiplier = 1103515245
	lcgIncrement  = 12345
	lcgModulus    = 1 << 31
)

// Stream is a deterministic pseudo-random stream. Instances are created
// fresh per call and discarded; no shared RNG state crosses calls.
// Position increments with every draw, enabling save/restore.
type Stream struct {
	seed  int64
	state int64
	pos   int64
}

// NewStream creates a deterministic stream from a seed.
func NewStream(seed int64) *Stream {
	s := seed % lcgModulus
	if s < 0 {
		s += lcgModulus
	}
	return &Stream{seed: seed, state: s}
}

// Float64 returns the next value in [0, 1).
func (s *Stream) Float64() float64 {
	s.state = (s.state*lcgMultiplier + lcgIncrement) % lcgModulus
	s.pos++
	return float64(s.state) / float64(lcgModulus)
}

// IntN returns a uniform integer in [0, n). n <= 0 returns 0.
func (s *Stream) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return int(s.Float64() * float64(n))
}

// Range returns a uniform integer in [lo, hi] inclusive. A degenerate
// range collapses to lo.
func (s *Stream) Range(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.IntN(hi-lo+1)
}

// Percent draws against a 0..100 chance: true with probability chance/100.
func (s *Stream) Percent(chance int) bool {
	if chance <= 0 {
		return false
	}
	if chance >= 100 {
		return true
	}
	return s.Float64()*100 < float64(chance)
}

// Seed returns the seed the stream was created with.
func (s *Stream) Seed() int64 { return s.seed }

// Position returns the number of draws made since creation.
func (s *Stream) Position() int64 { return s.pos }

// Restore creates a stream and advances it to the given position,
// reproducing the exact state for save/load.
func Restore(seed int64, position int64) *Stream {
	st := NewStream(seed)
	for i := int64(0); i < position; i++ {
		st.Float64()
	}
	st.pos = position
	return st
}

// Positional offsets are fixed arithmetic functions of stable identifiers,
// never wall-clock time, so any sub-stream can be reconstructed from its
// inputs alone.
const (
	hexOffsetQ    = 7919
	hexOffsetR    = 104729
	hexOffsetMove = 1299721
	slotOffsetMul = 6151
	detectOffset  = 15485863
)

// SubSeed derives a child seed from a base seed and a positional offset.
func SubSeed(base, offset int64) int64 {
	return base + offset
}

// HexOffset computes the positional offset for a hex step: coordinates
// plus the move index, so revisiting a hex later rolls independently.
func HexOffset(q, r, moveIndex int) int64 {
	return int64(q)*hexOffsetQ + int64(r)*hexOffsetR + int64(moveIndex)*hexOffsetMove
}

// DetectOffset computes the positional offset for the per-move detection
// advance. Its base keeps the stream disjoint from every hex roll of the
// same move, so the ramp never correlates with movement encounters.
func DetectOffset(moveIndex int) int64 {
	return detectOffset + int64(moveIndex)*hexOffsetMove
}

// POIOffset computes the positional offset for a point-of-interest roll.
func POIOffset(q, r int) int64 {
	return int64(q)*hexOffsetQ + int64(r)*hexOffsetR
}

// SlotOffset computes the positional offset for a reward slot index.
func SlotOffset(slot int) int64 {
	return int64(slot) * slotOffsetMul
}

// TimeSeed returns a wall-clock seed. Allowed only where determinism is
// not required, e.g. combat salvage with no replay guarantee.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}
