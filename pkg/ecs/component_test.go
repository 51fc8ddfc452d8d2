package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComponentStore_AddStampsTicks(t *testing.T) {
	c := NewComponentStore[int]()
	e := newEntityID(0, 0)

	c.Add(e, 5, 10)
	v, ok := c.Get(e)
	require.True(t, ok)
	assert.Equal(t, 5, v)

	write, _ := c.LastWriteTick(e)
	first, _ := c.FirstAppearanceTick(e)
	assert.Equal(t, uint64(10), write)
	assert.Equal(t, uint64(10), first)
}

func TestComponentStore_Added_Modified_Changed(t *testing.T) {
	c := NewComponentStore[int]()
	e := newEntityID(0, 0)

	c.Add(e, 1, 10)
	assert.True(t, c.Added(e, 10))
	assert.False(t, c.Modified(e, 10))
	assert.True(t, c.Changed(e, 10))

	c.Add(e, 2, 11) // overwrite on a later tick
	assert.False(t, c.Added(e, 11))
	assert.True(t, c.Modified(e, 11))
	assert.True(t, c.Changed(e, 11))

	assert.False(t, c.Changed(e, 10), "tick 10 is no longer the write tick")
}

func TestComponentStore_SetIsNoOpWhenAbsent(t *testing.T) {
	c := NewComponentStore[int]()
	e := newEntityID(0, 0)
	called := false
	c.Set(e, 5, func(v int) int { called = true; return v + 1 })
	assert.False(t, called)
	_, ok := c.Get(e)
	assert.False(t, ok)
}

func TestComponentStore_RemoveStampsMovedNeighbor(t *testing.T) {
	c := NewComponentStore[int]()
	e0 := newEntityID(0, 0)
	e1 := newEntityID(1, 0)

	c.Add(e0, 10, 1)
	c.Add(e1, 20, 1)

	ok := c.Remove(e0, 99)
	assert.True(t, ok)

	write, present := c.LastWriteTick(e1)
	require.True(t, present)
	assert.Equal(t, uint64(99), write, "moved neighbor must be stamped as changed this tick")
}

func TestComponentStore_RemoveAbsentReturnsFalse(t *testing.T) {
	c := NewComponentStore[int]()
	assert.False(t, c.Remove(newEntityID(1, 0), 1))
}
