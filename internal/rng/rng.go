// Package rng provides the splittable/cloneable pseudo-random source that
// spec.md §9 specifies only by contract: deterministic given a seed,
// independent streams on Split/Clone, and save/restore for the Select
// snapshot protocol.
//
// Built on math/rand/v2's ChaCha8 source (stdlib): spec.md explicitly
// scopes the RNG to "specified only by their contract" (§1, §9), so no
// third-party PRNG is pulled in — see DESIGN.md for the stdlib
// justification.
package rng

import (
	"encoding/binary"
	"math/rand/v2"
)

// Source is a deterministic, splittable, cloneable random source. Two
// Sources created with the same seed, and driven by the same sequence of
// calls, produce identical output streams — the determinism contract of
// spec §5 ("For a fixed context seed ... results must be bit-identical").
type Source struct {
	seed [32]byte
	r    *rand.ChaCha8
	// streamID distinguishes Split children derived from the same parent
	// seed so their streams diverge instead of coinciding.
	streamID uint64
}

// New creates a Source seeded deterministically from seed.
func New(seed uint64) *Source {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return &Source{seed: key, r: rand.NewChaCha8(key), streamID: 0}
}

// Uint64 returns the next pseudo-random uint64 in the stream.
func (s *Source) Uint64() uint64 {
	return s.r.Uint64()
}

// IntN returns a pseudo-random integer in [0, n). Panics if n <= 0.
func (s *Source) IntN(n int) int {
	if n <= 0 {
		panic("rng: IntN called with n <= 0")
	}
	return int(s.r.Uint64() % uint64(n))
}

// Float64 returns a pseudo-random float64 in [0, 1).
func (s *Source) Float64() float64 {
	// 53 significant bits, matching math/rand's Float64 construction.
	return float64(s.r.Uint64()>>11) / (1 << 53)
}

// Shuffle permutes a slice of length n in place via swap(i, j), using the
// Fisher-Yates algorithm, deterministically given the Source's state.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := s.IntN(i + 1)
		swap(i, j)
	}
}

// Split derives an independent child stream from the same root seed,
// distinguished by index. Used when a recursive step (e.g. the two
// children of threadLaunchSplit, or a coarsened sub-problem) needs its own
// reproducible stream without correlating with its sibling.
func (s *Source) Split(index uint64) *Source {
	child := &Source{seed: s.seed, streamID: s.streamID*31 + index + 1}
	var key [32]byte
	copy(key[:], child.seed[:])
	binary.LittleEndian.PutUint64(key[24:], child.streamID)
	child.r = rand.NewChaCha8(key)
	return child
}

// Clone returns an independent copy of s sharing the current state — the
// clone's future draws do not affect s's, and vice versa. Used by
// Context.Clone (spec §5) and by the Select node's snapshot protocol.
func (s *Source) Clone() *Source {
	clone := &Source{seed: s.seed, streamID: s.streamID}
	state, err := s.r.MarshalBinary()
	if err != nil {
		// ChaCha8 always marshals successfully; this is unreachable.
		clone.r = rand.NewChaCha8(s.seed)
		return clone
	}
	clone.r = rand.NewChaCha8(s.seed)
	_ = clone.r.UnmarshalBinary(state)
	return clone
}

// Snapshot is an opaque save point for a Source, returned by Save and
// consumed by Restore — the RNG half of the Active "store/update/exit"
// protocol (spec §9: re-expressed as save/restore, never a raw memcpy).
type Snapshot struct {
	state []byte
}

// Save captures the current state of s as a Snapshot.
func (s *Source) Save() Snapshot {
	state, _ := s.r.MarshalBinary()
	saved := make([]byte, len(state))
	copy(saved, state)
	return Snapshot{state: saved}
}

// Restore resets s to a previously captured Snapshot.
func (s *Source) Restore(snap Snapshot) {
	_ = s.r.UnmarshalBinary(snap.state)
}
