package ecs

import (
	"sort"

	"github.com/dshills/roguecore/pkg/rerr"
)

// RelationType names a typed directed edge kind and its semantics.
type RelationType string

// Built-in relation types every World provides.
const (
	ChildOf  RelationType = "ChildOf"
	Contains RelationType = "Contains"
	Targets  RelationType = "Targets"
)

// RelationSpec declares one relation type's semantics: Exclusive caps a
// source to one target at a time (a later relate replaces the prior
// target); Symmetric mirrors relate/unrelate onto the reverse edge;
// CascadeDelete destroys every source of a destroyed target.
type RelationSpec struct {
	Exclusive     bool
	Symmetric     bool
	CascadeDelete bool
}

type edgeKey struct {
	rel    RelationType
	source EntityID
	target EntityID
}

// RelationStore holds typed directed edges between entities, with
// optional payloads, keyed by (type, source, target). Forward and
// reverse indices are kept sorted by entity index so iteration is
// deterministic across replays.
type RelationStore struct {
	specs     map[RelationType]RelationSpec
	payloads  map[edgeKey]any
	forward   map[RelationType]map[EntityID][]EntityID // source -> targets
	reverse   map[RelationType]map[EntityID][]EntityID // target -> sources
}

// NewRelationStore constructs a store preloaded with the built-in
// ChildOf/Contains/Targets types.
func NewRelationStore() *RelationStore {
	s := &RelationStore{
		specs:    make(map[RelationType]RelationSpec),
		payloads: make(map[edgeKey]any),
		forward:  make(map[RelationType]map[EntityID][]EntityID),
		reverse:  make(map[RelationType]map[EntityID][]EntityID),
	}
	s.Declare(ChildOf, RelationSpec{Exclusive: true, CascadeDelete: true})
	s.Declare(Contains, RelationSpec{})
	s.Declare(Targets, RelationSpec{Exclusive: true})
	return s
}

// Declare registers or overwrites rel's spec. Application code calls this
// to add relation types beyond the three built-ins.
func (s *RelationStore) Declare(rel RelationType, spec RelationSpec) {
	s.specs[rel] = spec
	if s.forward[rel] == nil {
		s.forward[rel] = make(map[EntityID][]EntityID)
	}
	if s.reverse[rel] == nil {
		s.reverse[rel] = make(map[EntityID][]EntityID)
	}
}

func (s *RelationStore) spec(rel RelationType) RelationSpec {
	return s.specs[rel]
}

// entityLess orders entities by index, then by the full id, so sorted
// lists follow entity index whatever the generations.
func entityLess(a, b EntityID) bool {
	if a.Index() != b.Index() {
		return a.Index() < b.Index()
	}
	return a < b
}

func insertSorted(list []EntityID, e EntityID) []EntityID {
	i := sort.Search(len(list), func(i int) bool { return !entityLess(list[i], e) })
	if i < len(list) && list[i] == e {
		return list
	}
	list = append(list, NullEntity)
	copy(list[i+1:], list[i:])
	list[i] = e
	return list
}

func removeSorted(list []EntityID, e EntityID) []EntityID {
	i := sort.Search(len(list), func(i int) bool { return !entityLess(list[i], e) })
	if i >= len(list) || list[i] != e {
		return list
	}
	return append(list[:i], list[i+1:]...)
}

// Relate adds the edge (source, rel, target) with an optional payload.
// If rel is Exclusive and source already has a different target under
// rel, the prior edge is removed first. If rel is Symmetric, the mirror
// edge (target, rel, source) is added too. Relating an entity to itself
// returns a CodeSelfParent error for ChildOf, where a self-edge would
// make the cascade graph cyclic by construction; other relation types
// permit self-edges.
func (s *RelationStore) Relate(source, target EntityID, rel RelationType, payload any) error {
	if rel == ChildOf && source == target {
		return rerr.New(rerr.CodeSelfParent, "entity cannot be its own parent")
	}

	spec := s.spec(rel)

	if spec.Exclusive {
		for _, existing := range s.forward[rel][source] {
			if existing != target {
				s.unrelateOneDirection(source, existing, rel)
			}
		}
	}

	s.addEdge(source, target, rel, payload)
	if spec.Symmetric {
		s.addEdge(target, source, rel, payload)
	}
	return nil
}

func (s *RelationStore) addEdge(source, target EntityID, rel RelationType, payload any) {
	s.forward[rel][source] = insertSorted(s.forward[rel][source], target)
	s.reverse[rel][target] = insertSorted(s.reverse[rel][target], source)
	s.payloads[edgeKey{rel, source, target}] = payload
}

func (s *RelationStore) unrelateOneDirection(source, target EntityID, rel RelationType) {
	s.forward[rel][source] = removeSorted(s.forward[rel][source], target)
	s.reverse[rel][target] = removeSorted(s.reverse[rel][target], source)
	delete(s.payloads, edgeKey{rel, source, target})
}

// Unrelate removes the edge (source, rel, target). If rel is Symmetric
// the mirror edge is removed too.
func (s *RelationStore) Unrelate(source, target EntityID, rel RelationType) {
	s.unrelateOneDirection(source, target, rel)
	if s.spec(rel).Symmetric {
		s.unrelateOneDirection(target, source, rel)
	}
}

// HasRelation reports whether (source, rel, target) holds.
func (s *RelationStore) HasRelation(source, target EntityID, rel RelationType) bool {
	for _, t := range s.forward[rel][source] {
		if t == target {
			return true
		}
	}
	return false
}

// GetTarget returns source's single target under an exclusive relation,
// if any. It always returns false for a non-exclusive relation type.
func (s *RelationStore) GetTarget(source EntityID, rel RelationType) (EntityID, bool) {
	if !s.spec(rel).Exclusive {
		return NullEntity, false
	}
	targets := s.forward[rel][source]
	if len(targets) == 0 {
		return NullEntity, false
	}
	return targets[0], true
}

// GetTargets returns source's targets under rel, sorted by entity index.
// The returned slice aliases internal storage.
func (s *RelationStore) GetTargets(source EntityID, rel RelationType) []EntityID {
	return s.forward[rel][source]
}

// GetSources returns target's sources under rel, sorted by entity index.
func (s *RelationStore) GetSources(target EntityID, rel RelationType) []EntityID {
	return s.reverse[rel][target]
}

// CountTargets returns len(GetTargets(source, rel)).
func (s *RelationStore) CountTargets(source EntityID, rel RelationType) int {
	return len(s.forward[rel][source])
}

// CountSources returns len(GetSources(target, rel)).
func (s *RelationStore) CountSources(target EntityID, rel RelationType) int {
	return len(s.reverse[rel][target])
}

// ClearByType removes every edge of relation type rel.
func (s *RelationStore) ClearByType(rel RelationType) {
	for source, targets := range s.forward[rel] {
		for _, target := range targets {
			delete(s.payloads, edgeKey{rel, source, target})
		}
	}
	s.forward[rel] = make(map[EntityID][]EntityID)
	s.reverse[rel] = make(map[EntityID][]EntityID)
}

// cascadeClose returns every entity transitively destroyed by cascade
// rules when target is destroyed: for every cascade-delete relation
// type, every source related to target, and recursively every source of
// those sources, guarded by a visited set against cycles.
func (s *RelationStore) cascadeClose(target EntityID) []EntityID {
	visited := map[EntityID]bool{target: true}
	queue := []EntityID{target}
	var closure []EntityID

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for rel, spec := range s.specs {
			if !spec.CascadeDelete {
				continue
			}
			for _, src := range s.reverse[rel][cur] {
				if visited[src] {
					continue
				}
				visited[src] = true
				closure = append(closure, src)
				queue = append(queue, src)
			}
		}
	}

	sort.Slice(closure, func(i, j int) bool { return closure[i] < closure[j] })
	return closure
}

// removeEntity drops every edge touching e, forward and reverse, across
// all relation types. Called by World.DestroyEntity after cascade
// closure has been computed.
func (s *RelationStore) removeEntity(e EntityID) {
	for rel := range s.specs {
		for _, target := range append([]EntityID(nil), s.forward[rel][e]...) {
			s.unrelateOneDirection(e, target, rel)
		}
		for _, source := range append([]EntityID(nil), s.reverse[rel][e]...) {
			s.unrelateOneDirection(source, e, rel)
		}
	}
}
