// Package generate implements the three concrete generator compositions,
// BSP, Cellular and Hybrid, each expressed as a chain of pkg/pass.Pass
// steps over a pkg/dungeonstate.State artifact, plus the shared
// corridor-carving and room-graph-connection helpers all three
// compositions use.
package generate
