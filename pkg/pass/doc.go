// Package pass provides the Pass/Pipeline abstraction the dungeon
// generators compose: an ordered chain of pure artifact-to-artifact steps,
// each declaring the RNG streams it consumes, run with optional tracing
// and snapshotting.
//
// Pass[C, T] maps T to T rather than chaining distinct input/output
// types, since every dungeon generation pass transforms the same working
// artifact; what varies between passes is which streams they draw from
// and what they add to the artifact.
package pass
