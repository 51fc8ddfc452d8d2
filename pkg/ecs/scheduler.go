package ecs

import (
	"log/slog"
	"sort"
)

// Phase names the five fixed scheduler phases, run in this order every
// tick except Init, which runs once on the tick the scheduler first
// executes.
type Phase string

const (
	PhaseInit        Phase = "init"
	PhasePreUpdate   Phase = "preUpdate"
	PhaseUpdate      Phase = "update"
	PhasePostUpdate  Phase = "postUpdate"
	PhaseLateUpdate  Phase = "lateUpdate"
)

var phaseOrder = []Phase{PhasePreUpdate, PhaseUpdate, PhasePostUpdate, PhaseLateUpdate}

// System is one named unit of per-tick work. Before/After name other
// systems in the same phase this one must run before or after.
type System struct {
	Name   string
	Phase  Phase
	Before []string
	After  []string
	Run    func(w *World)
}

// Scheduler runs registered systems phase by phase, each phase
// topologically sorted by Before/After with ties broken by registration
// order. Execution is single-threaded and cooperative: a system runs to
// completion before the next one starts.
type Scheduler struct {
	bySystemPhase map[Phase][]System
	initRan       bool

	// Logger receives the cycle-fallback warning event; defaults to
	// slog.Default() when nil.
	Logger *slog.Logger
}

// NewScheduler constructs an empty Scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{bySystemPhase: make(map[Phase][]System)}
}

// Register adds sys to its declared phase, in registration order.
func (s *Scheduler) Register(sys System) {
	s.bySystemPhase[sys.Phase] = append(s.bySystemPhase[sys.Phase], sys)
}

// RunTick executes init (once, only the first time RunTick is called)
// then every regular phase in fixed order, against w.
func (s *Scheduler) RunTick(w *World) {
	if !s.initRan {
		s.runPhase(w, PhaseInit)
		s.initRan = true
	}
	for _, phase := range phaseOrder {
		s.runPhase(w, phase)
	}
}

func (s *Scheduler) runPhase(w *World, phase Phase) {
	ordered := s.order(phase)
	for _, sys := range ordered {
		sys.Run(w)
	}
}

// order returns phase's systems in dependency-respecting order: Kahn's
// algorithm over the Before/After edges, ties broken by registration
// index. A cycle falls back to a stable alphabetic ordering with a
// logged warning rather than failing the tick.
func (s *Scheduler) order(phase Phase) []System {
	systems := s.bySystemPhase[phase]
	if len(systems) <= 1 {
		return systems
	}

	indexOf := make(map[string]int, len(systems))
	for i, sys := range systems {
		indexOf[sys.Name] = i
	}

	adj := make([][]int, len(systems))
	indegree := make([]int, len(systems))

	addEdge := func(from, to int) {
		adj[from] = append(adj[from], to)
		indegree[to]++
	}

	for i, sys := range systems {
		for _, name := range sys.After {
			if j, ok := indexOf[name]; ok {
				addEdge(j, i)
			}
		}
		for _, name := range sys.Before {
			if j, ok := indexOf[name]; ok {
				addEdge(i, j)
			}
		}
	}

	var queue []int
	for i := range systems {
		if indegree[i] == 0 {
			queue = append(queue, i)
		}
	}
	sort.Ints(queue)

	var order []int
	remaining := indegree
	for len(queue) > 0 {
		sort.Ints(queue)
		cur := queue[0]
		queue = queue[1:]
		order = append(order, cur)
		for _, next := range adj[cur] {
			remaining[next]--
			if remaining[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	if len(order) != len(systems) {
		logger := s.Logger
		if logger == nil {
			logger = slog.Default()
		}
		logger.Warn("ecs: scheduler dependency cycle detected, falling back to alphabetic order", "phase", phase)
		fallback := append([]System(nil), systems...)
		sort.Slice(fallback, func(i, j int) bool { return fallback[i].Name < fallback[j].Name })
		return fallback
	}

	result := make([]System, len(order))
	for i, idx := range order {
		result[i] = systems[idx]
	}
	return result
}
