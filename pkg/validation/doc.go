// Package validation implements post-generation invariant checks over a
// finished Artifact (room bounds/overlap/ids, connection path sanity,
// grid-dimension agreement, and flood-fill reachability from the first
// room), returning a categorized ConstraintResult report plus a boolean
// Valid flag. It also collects spatial/connectivity/content statistics
// folded into the same report.
package validation
