// Package worldload adopts a generated dungeonstate.Artifact into a live
// ecs.World: it installs the terrain as a GameMap resource, spawns the
// player prefab at the artifact's entry point, and spawns one prefab
// instance per SpawnDescriptor. It performs no heavy computation; the
// terrain array is adopted, never copied.
package worldload
