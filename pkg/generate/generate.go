package generate

import (
	"context"
	"time"

	"github.com/dshills/roguecore/pkg/content"
	"github.com/dshills/roguecore/pkg/dungeonstate"
	"github.com/dshills/roguecore/pkg/pass"
	"github.com/dshills/roguecore/pkg/rerr"
	"github.com/dshills/roguecore/pkg/result"
)

// buildPipeline selects the pass chain for cfg.Algorithm. Validation is
// not part of this chain; callers that want it run pkg/validation
// separately over the finished Artifact.
func buildPipeline(cfg dungeonstate.Config) (*pass.Pipeline[dungeonstate.Config, *dungeonstate.State], error) {
	var passes []pass.Pass[dungeonstate.Config, *dungeonstate.State]
	switch cfg.Algorithm {
	case dungeonstate.AlgorithmBSP:
		passes = []pass.Pass[dungeonstate.Config, *dungeonstate.State]{BSPLayoutPass, BSPCorridorPass}
	case dungeonstate.AlgorithmCellular:
		passes = []pass.Pass[dungeonstate.Config, *dungeonstate.State]{CellularPass, CellularConnectPass}
	case dungeonstate.AlgorithmHybrid:
		passes = []pass.Pass[dungeonstate.Config, *dungeonstate.State]{HybridPass}
	default:
		return nil, rerr.Newf(rerr.CodeConfigInvalid, "unknown algorithm %q", cfg.Algorithm)
	}
	passes = append(passes, ContentPass(content.DefaultPools()))
	return pass.NewPipeline(passes, cfg.Snapshots, func(s *dungeonstate.State) *dungeonstate.State { return s.Clone() }), nil
}

// Outcome is the full generation result: a success flag, the artifact
// (nil on failure), the error, and the trace/snapshots/duration
// preserved regardless of outcome so a caller can inspect what happened
// before the failing pass.
type Outcome struct {
	Success    bool
	Artifact   *dungeonstate.Artifact
	Err        error
	Trace      *pass.Trace
	Snapshots  []pass.Snapshot[*dungeonstate.State]
	DurationMs int64
}

// GenerateWithTrace runs the full generation entry point, validating cfg
// first so configuration errors surface before any pass runs.
func GenerateWithTrace(ctx context.Context, cfg dungeonstate.Config) Outcome {
	start := time.Now()
	if err := cfg.Validate(); err != nil {
		return Outcome{Success: false, Err: err, DurationMs: time.Since(start).Milliseconds()}
	}

	pipeline, err := buildPipeline(cfg)
	if err != nil {
		return Outcome{Success: false, Err: err, DurationMs: time.Since(start).Milliseconds()}
	}

	initial := dungeonstate.NewState(cfg.Width, cfg.Height)
	out := pipeline.Run(ctx, cfg, cfg.Seed, initial)

	finalState, err := out.Artifact.Unwrap()
	if err != nil {
		return Outcome{
			Success: false, Err: err, Trace: out.Trace, Snapshots: out.Snapshots,
			DurationMs: out.Duration.Milliseconds(),
		}
	}

	artifact := dungeonstate.Finalize(finalState, cfg.Seed)
	return Outcome{
		Success: true, Artifact: artifact, Trace: out.Trace, Snapshots: out.Snapshots,
		DurationMs: out.Duration.Milliseconds(),
	}
}

// Generate is the Result-returning entry point for callers that only
// need the artifact or the error, not the trace.
func Generate(ctx context.Context, cfg dungeonstate.Config) result.Result[*dungeonstate.Artifact] {
	o := GenerateWithTrace(ctx, cfg)
	if !o.Success {
		return result.Err[*dungeonstate.Artifact](o.Err)
	}
	return result.Ok(o.Artifact)
}
