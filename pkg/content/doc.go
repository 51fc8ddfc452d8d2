// Package content implements the deterministic weighted spawn-descriptor
// generator: given a finished room/connection layout and a ContentConfig,
// it emits SpawnDescriptors using only the dedicated "details" PRNG
// stream, so enabling or disabling content features never perturbs the
// terrain a BSP/Cellular/Hybrid run produced.
//
// Selection is driven by difficulty-windowed weighted template pools,
// YAML-loadable so games can swap in their own tables without touching
// the placement logic.
package content
