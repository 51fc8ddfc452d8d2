package rng

import (
	"testing"

	"pgregory.net/rapid"
)

// TestProperty_DeterministicSequence: for any seed, constructing two
// generators and drawing the same number of values yields identical
// sequences. Whole-dungeon determinism is built on this layer.
func TestProperty_DeterministicSequence(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		n := rapid.IntRange(0, 64).Draw(rt, "n")

		a := New(seed)
		b := New(seed)
		for i := 0; i < n; i++ {
			if a.NextU64() != b.NextU64() {
				rt.Fatalf("sequences diverged at draw %d for seed %d", i, seed)
			}
		}
	})
}

// TestProperty_Float64InRange checks NextF64 never leaves [0, 1) no matter
// the seed.
func TestProperty_Float64InRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		r := New(seed)
		for i := 0; i < 32; i++ {
			v := r.NextF64()
			if v < 0 || v >= 1 {
				rt.Fatalf("NextF64 = %v out of [0,1)", v)
			}
		}
	})
}

// TestProperty_SaveLoadRoundtrip checks that any mid-sequence snapshot can
// be restored to reproduce the following draws exactly.
func TestProperty_SaveLoadRoundtrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Uint64().Draw(rt, "seed")
		warmup := rapid.IntRange(0, 32).Draw(rt, "warmup")

		r := New(seed)
		for i := 0; i < warmup; i++ {
			r.NextU64()
		}
		l0, l1 := r.SaveState()

		want := make([]uint64, 8)
		for i := range want {
			want[i] = r.NextU64()
		}

		r.LoadState(l0, l1)
		for i := range want {
			if got := r.NextU64(); got != want[i] {
				rt.Fatalf("restore mismatch at %d: got %d want %d", i, got, want[i])
			}
		}
	})
}
