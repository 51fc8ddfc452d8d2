package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Position struct{ X, Y int }
type Velocity struct{ X, Y int }

const (
	keyPosition = "Position"
	keyVelocity = "Velocity"
)

// TestWorld_MovementTick spawns 10 entities with Position{i,i} and
// Velocity{1,0}, runs one movement system through the scheduler, and
// checks Position.X advances by one while the modified-query count
// matches exactly this tick and drops to zero the next.
func TestWorld_MovementTick(t *testing.T) {
	w := NewWorld(16)
	for i := 0; i < 10; i++ {
		e, err := w.CreateEntity()
		require.NoError(t, err)
		AddComponent(w, keyPosition, e, Position{X: i, Y: i})
		AddComponent(w, keyVelocity, e, Velocity{X: 1, Y: 0})
	}

	sched := NewScheduler()
	sched.Register(System{
		Name:  "movement",
		Phase: PhaseUpdate,
		Run: func(w *World) {
			NewQuery2[Position, Velocity](w, keyPosition, keyVelocity).Each(func(e EntityID, pos Position, vel Velocity) {
				SetComponent(w, keyPosition, e, func(p Position) Position {
					return Position{X: p.X + vel.X, Y: p.Y + vel.Y}
				})
			})
		},
	})

	w.NextTick()
	sched.RunTick(w)

	i := 0
	NewQuery1[Position](w, keyPosition).Each(func(e EntityID, p Position) {
		assert.Equal(t, i+1, p.X)
		i++
	})
	assert.Equal(t, 10, i)

	modifiedNow := NewQuery1[Position](w, keyPosition).Modified().Count()
	assert.Equal(t, 10, modifiedNow)

	w.NextTick()
	modifiedNext := NewQuery1[Position](w, keyPosition).Modified().Count()
	assert.Equal(t, 0, modifiedNext)
}

// TestWorld_RelationCascadeOnDestroy creates A, B, C with B ChildOf A
// and C ChildOf B, destroys A, and checks every entity in the chain dies
// with the relation fully cleared.
func TestWorld_RelationCascadeOnDestroy(t *testing.T) {
	w := NewWorld(8)
	a, err := w.CreateEntity()
	require.NoError(t, err)
	b, err := w.CreateEntity()
	require.NoError(t, err)
	c, err := w.CreateEntity()
	require.NoError(t, err)

	require.NoError(t, w.Relations().Relate(b, a, ChildOf, nil))
	require.NoError(t, w.Relations().Relate(c, b, ChildOf, nil))

	w.DestroyEntity(a)

	assert.False(t, w.IsAlive(a))
	assert.False(t, w.IsAlive(b))
	assert.False(t, w.IsAlive(c))
	assert.Equal(t, 0, w.Relations().CountTargets(b, ChildOf))
	assert.Equal(t, 0, w.Relations().CountTargets(c, ChildOf))
	assert.Equal(t, 0, w.Relations().CountSources(a, ChildOf))
}

func TestWorld_StaleHandleOperationsAreSilentNoOps(t *testing.T) {
	w := NewWorld(4)
	e, err := w.CreateEntity()
	require.NoError(t, err)
	w.DestroyEntity(e)

	assert.False(t, w.IsAlive(e))
	assert.NotPanics(t, func() {
		AddComponent(w, keyPosition, e, Position{X: 1, Y: 1})
		w.DestroyEntity(e)
	})
	_, ok := GetComponent[Position](w, keyPosition, e)
	assert.False(t, ok)
}

func TestWorld_ResourceRoundTrip(t *testing.T) {
	w := NewWorld(1)
	SetResource(w, "seed", uint64(42))

	v, ok := GetResource[uint64](w, "seed")
	require.True(t, ok)
	assert.Equal(t, uint64(42), v)

	DeleteResource(w, "seed")
	_, ok = GetResource[uint64](w, "seed")
	assert.False(t, ok)
}
