package pass

import (
	"context"
	"time"

	"github.com/dshills/roguecore/pkg/rerr"
	"github.com/dshills/roguecore/pkg/result"
	"github.com/dshills/roguecore/pkg/rng"
	"github.com/dshills/roguecore/pkg/seed"
)

// Stream names one of the four per-purpose generation PRNG streams a
// pass may declare as required. The runtime only exposes the streams a
// pass lists, so a pass that forgets to declare "rooms" panics loudly in
// Context.Stream rather than silently drawing from the wrong sequence.
type Stream string

const (
	StreamLayout      Stream = "layout"
	StreamRooms       Stream = "rooms"
	StreamConnections Stream = "connections"
	StreamDetails     Stream = "details"
)

// Context carries everything a running pass may read: its scoped RNG
// streams, the seed record, the validated config, and a trace collector.
// C is the configuration type (dungeonstate.Config in this module); it is
// left generic here so pkg/pass has no dependency on pkg/dungeonstate.
type Context[C any] struct {
	Config  C
	Seed    seed.DungeonSeed
	streams map[Stream]*rng.RNG
	Trace   *Trace
}

// NewContext builds a pass context exposing exactly the streams listed in
// streams (a pipeline computes this per-pass from each Pass's
// RequiredStreams before invoking Run).
func NewContext[C any](cfg C, sd seed.DungeonSeed, streams map[Stream]*rng.RNG, trace *Trace) *Context[C] {
	return &Context[C]{Config: cfg, Seed: sd, streams: streams, Trace: trace}
}

// Stream returns the RNG for name. It panics if the calling pass did not
// declare name in RequiredStreams — an undeclared stream access is a
// programming error in the pass, not a runtime condition to recover from.
func (c *Context[C]) Stream(name Stream) *rng.RNG {
	r, ok := c.streams[name]
	if !ok {
		panic("pass: stream " + string(name) + " was not declared as required")
	}
	return r
}

// Event is one structured decision a pass recorded: what question the
// pass was answering, the options it weighed, and what it chose.
// Trace.Record is a no-op on a nil receiver so passes can call it
// unconditionally.
type Event struct {
	System      string
	Question    string
	Options     []string
	Chosen      string
	Reason      string
	Confidence  float64
	RngConsumed int
}

// Trace collects Events and per-pass timing for one pipeline run.
type Trace struct {
	Events []Event
	Steps  []StepTrace
}

// StepTrace records one executed pass's identity and duration.
type StepTrace struct {
	PassID   string
	Duration time.Duration
	Err      error
}

// Record appends ev to the trace. Safe to call on a nil *Trace.
func (t *Trace) Record(ev Event) {
	if t == nil {
		return
	}
	t.Events = append(t.Events, ev)
}

func (t *Trace) recordStep(id string, d time.Duration, err error) {
	if t == nil {
		return
	}
	t.Steps = append(t.Steps, StepTrace{PassID: id, Duration: d, Err: err})
}

// Pass is one pure, named transform from an artifact to a new artifact of
// the same type. Run must not mutate anything outside the artifact it
// returns.
type Pass[C, T any] struct {
	ID              string
	RequiredStreams []Stream
	Run             func(ctx context.Context, pc *Context[C], in T) (T, error)
}

func (p Pass[C, T]) streamSet() map[Stream]bool {
	set := make(map[Stream]bool, len(p.RequiredStreams))
	for _, s := range p.RequiredStreams {
		set[s] = true
	}
	return set
}

// Snapshot is a captured copy of the artifact after one pass ran.
type Snapshot[T any] struct {
	PassID string
	State  T
}

// Pipeline is an ordered chain of passes sharing one artifact type.
type Pipeline[C, T any] struct {
	Passes       []Pass[C, T]
	CaptureSnaps bool
	cloneForSnap func(T) T
}

// NewPipeline builds a Pipeline over the given passes. Run constructs
// every stream from the seed it is given; each pass is handed only the
// subset it declared in RequiredStreams. cloneForSnap, if non-nil, is used to
// deep-copy the artifact when capturing a snapshot so later passes
// mutating their copy-on-write artifact cannot retroactively change a
// recorded snapshot; if nil, snapshots alias the live value.
func NewPipeline[C, T any](passes []Pass[C, T], captureSnapshots bool, cloneForSnap func(T) T) *Pipeline[C, T] {
	return &Pipeline[C, T]{Passes: passes, CaptureSnaps: captureSnapshots, cloneForSnap: cloneForSnap}
}

// Outcome is the result of running a Pipeline: either a completed
// artifact with its trace and snapshots, or a failure carrying the error
// and the trace recorded up to the failing pass.
type Outcome[T any] struct {
	Artifact  result.Result[T]
	Trace     *Trace
	Snapshots []Snapshot[T]
	Duration  time.Duration
}

// Run executes every pass in order against in, threading the artifact
// through copy-on-write: each pass receives the previous pass's output
// and returns a new value, never mutating a value another pass still
// holds a reference to in a way that is visible outside the returned
// artifact.
//
// sd is the seed this run derives its streams from; streams are
// constructed fresh per call using rng.New(seed-per-stream) so pipeline
// reruns with the same seed reproduce bit-identical sequences.
func (p *Pipeline[C, T]) Run(ctx context.Context, cfg C, sd seed.DungeonSeed, in T) Outcome[T] {
	start := time.Now()
	trace := &Trace{}

	streams := map[Stream]*rng.RNG{
		StreamLayout:      sd.LayoutRNG(),
		StreamRooms:       sd.RoomsRNG(),
		StreamConnections: sd.ConnectionsRNG(),
		StreamDetails:     sd.DetailsRNG(),
	}

	current := in
	var snapshots []Snapshot[T]

	for _, ps := range p.Passes {
		if err := ctx.Err(); err != nil {
			trace.recordStep(ps.ID, time.Since(start), err)
			return Outcome[T]{
				Artifact:  result.Err[T](rerr.Wrap(err, rerr.CodePipelineFailed, "pipeline canceled before pass "+ps.ID)),
				Trace:     trace,
				Snapshots: snapshots,
				Duration:  time.Since(start),
			}
		}

		scoped := make(map[Stream]*rng.RNG, len(ps.RequiredStreams))
		for name := range ps.streamSet() {
			scoped[name] = streams[name]
		}

		pc := NewContext(cfg, sd, scoped, trace)

		stepStart := time.Now()
		out, err := ps.Run(ctx, pc, current)
		elapsed := time.Since(stepStart)
		trace.recordStep(ps.ID, elapsed, err)

		if err != nil {
			return Outcome[T]{
				Artifact:  result.Err[T](rerr.Wrap(err, rerr.CodePipelineFailed, "pass "+ps.ID+" failed")),
				Trace:     trace,
				Snapshots: snapshots,
				Duration:  time.Since(start),
			}
		}

		current = out
		if p.CaptureSnaps {
			snap := current
			if p.cloneForSnap != nil {
				snap = p.cloneForSnap(current)
			}
			snapshots = append(snapshots, Snapshot[T]{PassID: ps.ID, State: snap})
		}
	}

	return Outcome[T]{
		Artifact:  result.Ok(current),
		Trace:     trace,
		Snapshots: snapshots,
		Duration:  time.Since(start),
	}
}
