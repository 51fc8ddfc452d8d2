package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type Health struct{ Current, Max int }

func TestPrefabRegistry_SpawnAppliesSingleParentInheritance(t *testing.T) {
	r := NewPrefabRegistry()
	RegisterComponentKind[Position](r, keyPosition)
	RegisterComponentKind[Health](r, "Health")

	require.NoError(t, r.Register(Prefab{
		Name: "creature",
		Components: []ComponentSpec{
			{Key: "Health", Init: func() any { return Health{Current: 10, Max: 10} }},
		},
		Tags: []string{"creature"},
	}))
	require.NoError(t, r.Register(Prefab{
		Name:    "goblin",
		Extends: "creature",
		Components: []ComponentSpec{
			{Key: keyPosition, Init: func() any { return Position{X: 0, Y: 0} }},
		},
		Tags: []string{"hostile"},
	}))

	w := NewWorld(4)
	e, err := r.Spawn(w, "goblin", nil)
	require.NoError(t, err)

	hp, ok := GetComponent[Health](w, "Health", e)
	require.True(t, ok)
	assert.Equal(t, 10, hp.Max)

	pos, ok := GetComponent[Position](w, keyPosition, e)
	require.True(t, ok)
	assert.Equal(t, Position{X: 0, Y: 0}, pos)
}

func TestPrefabRegistry_SpawnOverridesWinOverPrefabDefaults(t *testing.T) {
	r := NewPrefabRegistry()
	RegisterComponentKind[Position](r, keyPosition)
	require.NoError(t, r.Register(Prefab{
		Name: "player",
		Components: []ComponentSpec{
			{Key: keyPosition, Init: func() any { return Position{X: 0, Y: 0} }},
		},
	}))

	w := NewWorld(2)
	e, err := r.Spawn(w, "player", map[string]ComponentInit{
		keyPosition: func() any { return Position{X: 5, Y: 7} },
	})
	require.NoError(t, err)

	pos, ok := GetComponent[Position](w, keyPosition, e)
	require.True(t, ok)
	assert.Equal(t, Position{X: 5, Y: 7}, pos)
}

func TestPrefabRegistry_RegisterUnknownParentFails(t *testing.T) {
	r := NewPrefabRegistry()
	err := r.Register(Prefab{Name: "orphan", Extends: "nobody"})
	assert.Error(t, err)
}

func TestPrefabRegistry_RegisterDuplicateNameFails(t *testing.T) {
	r := NewPrefabRegistry()
	require.NoError(t, r.Register(Prefab{Name: "rat"}))
	err := r.Register(Prefab{Name: "rat"})
	assert.Error(t, err)
}

func TestPrefabRegistry_RemoveRejectsPrefabWithChildren(t *testing.T) {
	r := NewPrefabRegistry()
	require.NoError(t, r.Register(Prefab{Name: "creature"}))
	require.NoError(t, r.Register(Prefab{Name: "goblin", Extends: "creature"}))

	err := r.Remove("creature")
	assert.Error(t, err)
}

func TestPrefabRegistry_SpawnUnknownPrefabFails(t *testing.T) {
	r := NewPrefabRegistry()
	w := NewWorld(1)
	_, err := r.Spawn(w, "nonexistent", nil)
	assert.Error(t, err)
}
