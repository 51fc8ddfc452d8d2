// Package dungeonstate defines the artifact types that flow through the
// generation pipeline in pkg/generate: the working State a pass mutates
// (grid plus rooms/connections/spawns discovered so far) and the final
// immutable Artifact a completed run produces, plus the Config a caller
// supplies to pkg/generate.Generate.
//
// These types intentionally carry no generation logic of their own;
// they are the shared vocabulary pkg/generate, pkg/content and
// pkg/validation all read and write.
package dungeonstate
