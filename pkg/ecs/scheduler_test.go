package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_PhasesRunInFixedOrder(t *testing.T) {
	w := NewWorld(1)
	var order []string

	s := NewScheduler()
	s.Register(System{Name: "late", Phase: PhaseLateUpdate, Run: func(*World) { order = append(order, "late") }})
	s.Register(System{Name: "pre", Phase: PhasePreUpdate, Run: func(*World) { order = append(order, "pre") }})
	s.Register(System{Name: "post", Phase: PhasePostUpdate, Run: func(*World) { order = append(order, "post") }})
	s.Register(System{Name: "update", Phase: PhaseUpdate, Run: func(*World) { order = append(order, "update") }})
	s.Register(System{Name: "init", Phase: PhaseInit, Run: func(*World) { order = append(order, "init") }})

	s.RunTick(w)
	assert.Equal(t, []string{"init", "pre", "update", "post", "late"}, order)
}

func TestScheduler_InitRunsOnlyOnce(t *testing.T) {
	w := NewWorld(1)
	count := 0

	s := NewScheduler()
	s.Register(System{Name: "boot", Phase: PhaseInit, Run: func(*World) { count++ }})

	s.RunTick(w)
	s.RunTick(w)
	s.RunTick(w)

	assert.Equal(t, 1, count)
}

func TestScheduler_TopologicalOrderRespectsBeforeAfter(t *testing.T) {
	w := NewWorld(1)
	var order []string

	s := NewScheduler()
	s.Register(System{Name: "c", Phase: PhaseUpdate, After: []string{"b"}, Run: func(*World) { order = append(order, "c") }})
	s.Register(System{Name: "a", Phase: PhaseUpdate, Before: []string{"b"}, Run: func(*World) { order = append(order, "a") }})
	s.Register(System{Name: "b", Phase: PhaseUpdate, Run: func(*World) { order = append(order, "b") }})

	s.RunTick(w)
	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestScheduler_TieBreaksByRegistrationOrder(t *testing.T) {
	w := NewWorld(1)
	var order []string

	s := NewScheduler()
	s.Register(System{Name: "first", Phase: PhaseUpdate, Run: func(*World) { order = append(order, "first") }})
	s.Register(System{Name: "second", Phase: PhaseUpdate, Run: func(*World) { order = append(order, "second") }})

	s.RunTick(w)
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestScheduler_DependencyCycleFallsBackToAlphabeticOrder(t *testing.T) {
	w := NewWorld(1)
	var order []string

	s := NewScheduler()
	s.Register(System{Name: "zeta", Phase: PhaseUpdate, After: []string{"alpha"}, Run: func(*World) { order = append(order, "zeta") }})
	s.Register(System{Name: "alpha", Phase: PhaseUpdate, After: []string{"zeta"}, Run: func(*World) { order = append(order, "alpha") }})

	s.RunTick(w)
	assert.Equal(t, []string{"alpha", "zeta"}, order)
}
