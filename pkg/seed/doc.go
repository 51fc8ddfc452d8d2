// Package seed derives the five independent PRNG streams a dungeon
// generation run consumes from one primary seed, and encodes/decodes the
// share-code wire format players exchange to reproduce a run.
//
// A DungeonSeed never stores live generators, only the unsigned integers
// the streams are constructed from; pkg/rng.New(stream) produces the
// actual *rng.RNG for a pass to consume. Deriving streams this way (hash
// mixing off the primary rather than, say, primary+offset) means adding a
// new stream never perturbs the numeric sequence of an existing one.
package seed
