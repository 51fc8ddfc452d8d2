package ecs

import (
	"log/slog"
	"sort"
)

// World owns every entity, component store, resource, and the relation
// graph for one simulation. It is not safe for concurrent use; all
// mutation is expected from one logical thread.
type World struct {
	entities  *EntityManager
	stores    map[string]any
	resources *resourceStore
	relations *RelationStore
	observers map[string]any
	tick      uint64

	// Logger receives warnings for recovered observer panics. Defaults
	// to slog.Default() when nil.
	Logger *slog.Logger
}

// NewWorld constructs a World with an initial entity capacity hint.
func NewWorld(initialCapacity int) *World {
	return &World{
		entities:  NewEntityManager(initialCapacity),
		stores:    make(map[string]any),
		resources: newResourceStore(),
		relations: NewRelationStore(),
		observers: make(map[string]any),
	}
}

// Tick returns the world's current tick counter.
func (w *World) Tick() uint64 { return w.tick }

// NextTick advances the tick counter and returns the new value. Change
// filters are windowed against tick values, not reset by this call —
// a store's last-write-tick simply becomes "in the past" relative to the
// new tick.
func (w *World) NextTick() uint64 {
	w.tick++
	return w.tick
}

// Relations exposes the world's RelationStore.
func (w *World) Relations() *RelationStore { return w.relations }

// CreateEntity allocates a fresh entity with no components.
func (w *World) CreateEntity() (EntityID, error) {
	return w.entities.Create()
}

// IsAlive reports whether e is a currently live entity.
func (w *World) IsAlive(e EntityID) bool { return w.entities.IsAlive(e) }

func storeFor[T any](w *World, key string) *ComponentStore[T] {
	if v, ok := w.stores[key]; ok {
		return v.(*ComponentStore[T])
	}
	s := NewComponentStore[T]()
	w.stores[key] = s
	return s
}

// HasComponent reports whether e currently holds a T at key.
func HasComponent[T any](w *World, key string, e EntityID) bool {
	return storeFor[T](w, key).Has(e)
}

// GetComponent returns e's T at key and whether it is present. A stale
// or absent handle returns the zero value and false, never an error.
func GetComponent[T any](w *World, key string, e EntityID) (T, bool) {
	return storeFor[T](w, key).Get(e)
}

// AddComponent creates or overwrites e's T at key, firing on_add+on_change
// (fresh insert) or on_set+on_change (overwrite) synchronously before
// returning. A stale handle is silently ignored.
func AddComponent[T any](w *World, key string, e EntityID, value T) {
	if !w.entities.IsAlive(e) {
		return
	}
	store := storeFor[T](w, key)
	old, existed := store.Get(e)
	store.Add(e, value, w.tick)
	if existed {
		fireSet[T](w, key, e, old, value)
	} else {
		fireAdd[T](w, key, e, value)
	}
}

// SetComponent mutates e's existing T at key through updater, firing
// on_set/on_change. No-op if e has no T at key.
func SetComponent[T any](w *World, key string, e EntityID, updater func(T) T) {
	store := storeFor[T](w, key)
	old, existed := store.Get(e)
	if !existed {
		return
	}
	store.Set(e, w.tick, updater)
	new, _ := store.Get(e)
	fireSet[T](w, key, e, old, new)
}

// RemoveComponent removes e's T at key, firing on_remove before the row
// is actually dropped so the callback can still read the old payload.
// Returns whether a value was present.
func RemoveComponent[T any](w *World, key string, e EntityID) bool {
	store := storeFor[T](w, key)
	old, existed := store.Get(e)
	if !existed {
		return false
	}
	fireRemove[T](w, key, e, old)
	return store.Remove(e, w.tick)
}

// DestroyEntity removes e from every component store it appears in, then
// from the entity manager, then cascades relation deletes. Stale handles
// are silently ignored.
func (w *World) DestroyEntity(e EntityID) {
	if !w.entities.IsAlive(e) {
		return
	}

	closure := append([]EntityID{e}, w.relations.cascadeClose(e)...)
	for _, victim := range closure {
		w.destroyOne(victim)
	}
}

func (w *World) destroyOne(e EntityID) {
	if !w.entities.IsAlive(e) {
		return
	}
	// Sorted key order so on_remove observers fire in the same sequence
	// on every run.
	keys := make([]string, 0, len(w.stores))
	for key := range w.stores {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		removeFromErasedStore(w, key, w.stores[key], e)
	}
	w.relations.removeEntity(e)
	w.entities.Destroy(e)
}

// removeFromErasedStore is a thin indirection so DestroyEntity can remove
// e from a type-erased store without knowing T; each ComponentStore
// registers itself behind a small interface for this one operation.
func removeFromErasedStore(w *World, key string, store any, e EntityID) {
	if r, ok := store.(erasedRemover); ok {
		r.removeErased(w, key, e)
	}
}

type erasedRemover interface {
	removeErased(w *World, key string, e EntityID)
}

func (c *ComponentStore[T]) removeErased(w *World, key string, e EntityID) {
	if !c.Has(e) {
		return
	}
	old, _ := c.Get(e)
	fireRemove[T](w, key, e, old)
	c.Remove(e, w.tick)
}

// Resource accessors delegate to GetResource/SetResource/DeleteResource
// (package-level generic functions, since a method cannot introduce its
// own type parameter).
