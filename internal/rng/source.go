// Package rng implements the engine's evolving pseudo-random source.
//
// Every draw hashes {fresh external entropy, the caller identity, the
// current seed} and the digest becomes both the returned value and the next
// seed. This is deliberately weak pseudo-randomness: a caller who can
// predict the entropy input can bias outcomes. Deployments that need
// unbiasable draws should supply an EntropyFunc backed by a verifiable
// randomness oracle; the Draw contract does not change.
package rng

import (
	"crypto/sha256"
	"encoding/binary"
	"math/big"
	"sync"
	"time"
)

// SeedBytes is the width of the seed state in bytes (256 bits).
const SeedBytes = 32

// seedModulus reduces operator-supplied seeds into the 256-bit state width.
var seedModulus = new(big.Int).Lsh(big.NewInt(1), SeedBytes*8)

// EntropyFunc supplies the external entropy input consumed by each draw.
type EntropyFunc func() []byte

// ClockEntropy returns entropy derived from the current wall clock and a
// process-local counter. It stands in for the block-hash input of the
// original environment and is just as predictable.
func ClockEntropy() EntropyFunc {
	var mu sync.Mutex
	var counter uint64
	return func() []byte {
		mu.Lock()
		counter++
		n := counter
		mu.Unlock()

		buf := make([]byte, 16)
		binary.BigEndian.PutUint64(buf[0:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(buf[8:16], n)
		return buf
	}
}

// FixedEntropy returns entropy that cycles through the given inputs, for
// reproducible draw sequences in tests.
func FixedEntropy(inputs ...[]byte) EntropyFunc {
	var mu sync.Mutex
	i := 0
	return func() []byte {
		mu.Lock()
		defer mu.Unlock()
		if len(inputs) == 0 {
			return nil
		}
		in := inputs[i%len(inputs)]
		i++
		return in
	}
}

// Snapshot is an opaque copy of the seed state, used by the engine's
// rollback boundary around each box-opening call.
type Snapshot [SeedBytes]byte

// Source holds the single mutable seed. Draws both consume and replace it;
// there is no peek operation.
type Source struct {
	mu      sync.Mutex
	seed    [SeedBytes]byte
	entropy EntropyFunc
}

// NewSource creates a Source seeded with the given initial value.
// A nil seed starts from zero state; a nil entropy func defaults to
// ClockEntropy.
func NewSource(seed *big.Int, entropy EntropyFunc) *Source {
	if entropy == nil {
		entropy = ClockEntropy()
	}
	s := &Source{entropy: entropy}
	if seed != nil {
		new(big.Int).Mod(seed, seedModulus).FillBytes(s.seed[:])
	}
	return s
}

// Draw evolves the seed as sha256(entropy || caller || seed), stores the
// digest as the new seed, and returns it as a non-negative integer.
func (s *Source) Draw(caller string) *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := sha256.New()
	h.Write(s.entropy())
	h.Write([]byte(caller))
	h.Write(s.seed[:])
	sum := h.Sum(nil)

	copy(s.seed[:], sum)
	return new(big.Int).SetBytes(sum)
}

// SetSeed overrides the seed state. Administrative operation, used to harden
// against prediction after the current seed may have leaked.
func (s *Source) SetSeed(seed *big.Int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = [SeedBytes]byte{}
	if seed != nil {
		new(big.Int).Mod(seed, seedModulus).FillBytes(s.seed[:])
	}
}

// Seed returns a copy of the current seed state.
func (s *Source) Seed() *big.Int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return new(big.Int).SetBytes(s.seed[:])
}

// Snapshot captures the current seed state.
func (s *Source) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seed
}

// Restore rewinds the seed to a previously captured snapshot. A failed
// box-opening must not leave the seed advanced without a visible effect.
func (s *Source) Restore(snap Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seed = snap
}
