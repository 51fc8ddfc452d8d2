package pass

import (
	"context"
	"errors"
	"testing"

	"github.com/dshills/roguecore/pkg/rng"
	"github.com/dshills/roguecore/pkg/seed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConfig struct{ Width int }

type fakeArtifact struct {
	Visited []string
	Drawn   uint64
}

func appendPass(id string, streams ...Stream) Pass[fakeConfig, fakeArtifact] {
	return Pass[fakeConfig, fakeArtifact]{
		ID:              id,
		RequiredStreams: streams,
		Run: func(ctx context.Context, pc *Context[fakeConfig], in fakeArtifact) (fakeArtifact, error) {
			out := in
			out.Visited = append(append([]string(nil), in.Visited...), id)
			for _, s := range streams {
				out.Drawn += pc.Stream(s).NextU64()
			}
			return out, nil
		},
	}
}

func TestPipeline_RunsPassesInOrder(t *testing.T) {
	p := NewPipeline([]Pass[fakeConfig, fakeArtifact]{
		appendPass("a", StreamLayout),
		appendPass("b", StreamRooms),
		appendPass("c"),
	}, false, nil)

	sd := seed.FromPrimary(42)
	out := p.Run(context.Background(), fakeConfig{Width: 10}, sd, fakeArtifact{})

	artifact, err := out.Artifact.Unwrap()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, artifact.Visited)
	assert.Len(t, out.Trace.Steps, 3)
}

func TestPipeline_Deterministic(t *testing.T) {
	passes := []Pass[fakeConfig, fakeArtifact]{
		appendPass("rooms", StreamRooms),
		appendPass("connections", StreamConnections),
	}
	sd := seed.FromPrimary(7)

	out1 := NewPipeline(passes, false, nil).Run(context.Background(), fakeConfig{}, sd, fakeArtifact{})
	out2 := NewPipeline(passes, false, nil).Run(context.Background(), fakeConfig{}, sd, fakeArtifact{})

	a1, err1 := out1.Artifact.Unwrap()
	a2, err2 := out2.Artifact.Unwrap()
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, a1.Drawn, a2.Drawn)
}

func TestPipeline_StreamIsolation(t *testing.T) {
	// A pass declaring only "rooms" must not perturb a pass declaring
	// only "connections": removing the rooms pass entirely should not
	// change what the connections pass draws.
	sd := seed.FromPrimary(99)

	withRooms := []Pass[fakeConfig, fakeArtifact]{
		appendPass("rooms", StreamRooms),
		appendPass("connections", StreamConnections),
	}
	withoutRooms := []Pass[fakeConfig, fakeArtifact]{
		appendPass("connections", StreamConnections),
	}

	outWith := NewPipeline(withRooms, false, nil).Run(context.Background(), fakeConfig{}, sd, fakeArtifact{})
	outWithout := NewPipeline(withoutRooms, false, nil).Run(context.Background(), fakeConfig{}, sd, fakeArtifact{})

	aWith, err := outWith.Artifact.Unwrap()
	require.NoError(t, err)
	aWithout, err := outWithout.Artifact.Unwrap()
	require.NoError(t, err)

	// Isolate the connections contribution: rerun a connections-only
	// pipeline and compare against both runs' accumulated draw.
	connOnly := NewPipeline([]Pass[fakeConfig, fakeArtifact]{appendPass("connections", StreamConnections)}, false, nil).
		Run(context.Background(), fakeConfig{}, sd, fakeArtifact{})
	connArtifact, err := connOnly.Artifact.Unwrap()
	require.NoError(t, err)

	assert.Equal(t, connArtifact.Drawn, aWithout.Drawn)
	assert.NotEqual(t, aWith.Drawn, aWithout.Drawn, "rooms pass should contribute its own draws on top")
}

func TestPipeline_FailureStopsAndRecordsTrace(t *testing.T) {
	boom := errors.New("boom")
	p := NewPipeline([]Pass[fakeConfig, fakeArtifact]{
		appendPass("ok"),
		{
			ID: "fails",
			Run: func(ctx context.Context, pc *Context[fakeConfig], in fakeArtifact) (fakeArtifact, error) {
				return in, boom
			},
		},
		appendPass("never-runs"),
	}, false, nil)

	sd := seed.FromPrimary(1)
	out := p.Run(context.Background(), fakeConfig{}, sd, fakeArtifact{})

	assert.True(t, out.Artifact.IsErr())
	require.Len(t, out.Trace.Steps, 2)
	assert.Equal(t, "fails", out.Trace.Steps[1].PassID)
}

func TestPipeline_CancellationStopsBeforeNextPass(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline([]Pass[fakeConfig, fakeArtifact]{appendPass("a")}, false, nil)
	out := p.Run(ctx, fakeConfig{}, seed.FromPrimary(1), fakeArtifact{})

	assert.True(t, out.Artifact.IsErr())
}

func TestPipeline_CapturesSnapshotsWithClone(t *testing.T) {
	p := NewPipeline([]Pass[fakeConfig, fakeArtifact]{
		appendPass("a"),
		appendPass("b"),
	}, true, func(a fakeArtifact) fakeArtifact {
		return fakeArtifact{Visited: append([]string(nil), a.Visited...), Drawn: a.Drawn}
	})

	out := p.Run(context.Background(), fakeConfig{}, seed.FromPrimary(1), fakeArtifact{})
	require.Len(t, out.Snapshots, 2)
	assert.Equal(t, []string{"a"}, out.Snapshots[0].State.Visited)
	assert.Equal(t, []string{"a", "b"}, out.Snapshots[1].State.Visited)
}

func TestContext_StreamPanicsWhenUndeclared(t *testing.T) {
	pc := NewContext(fakeConfig{}, seed.FromPrimary(1), map[Stream]*rng.RNG{}, nil)
	assert.Panics(t, func() { pc.Stream(StreamLayout) })
}
