// Package rng provides the deterministic pseudo-random generator used by
// every dungeon generation pass.
//
// # Overview
//
// RNG implements xorshift128+ seeded via two independent SplitMix64 mixes
// of the constructor's input. Given the same seed, an RNG produces the
// exact same sequence of outputs on every run, on every platform — this
// is the foundation the whole generation pipeline's determinism rests on.
//
// A dungeon generation run does not share a single RNG across passes.
// Instead, pkg/seed derives five independent streams (layout, rooms,
// connections, details, plus the primary) from one root seed, and each
// pipeline pass is handed only the streams it declares in its
// RequiredStreams list. Adding or removing a NextU64 call inside one pass
// can therefore never perturb the output of another.
//
// # Usage
//
//	r := rng.New(12345)
//	roomCount := r.IntRange(10, 50)
//	if r.Bool() {
//	    // ...
//	}
//
// # Save/restore
//
// SaveState and LoadState expose the two xorshift128+ lanes directly, so a
// pass can snapshot an RNG before a speculative attempt and roll back to
// retry with the same sequence.
package rng
