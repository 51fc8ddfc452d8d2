// Package traceexport renders a finished dungeonstate.Artifact (and,
// optionally, the pass.Trace that produced it) to human-inspectable
// formats for debugging a generation run. Nothing here runs in the hot
// generation path; callers invoke it only when a trace was requested.
package traceexport
