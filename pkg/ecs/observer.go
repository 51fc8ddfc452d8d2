package ecs

import "log/slog"

// Unsubscribe cancels an observer registration. Calling it more than
// once is safe.
type Unsubscribe func()

// componentObservers holds the four callback kinds for one component
// type, keyed by a monotonically increasing registration id so an
// Unsubscribe can delete its own entry without touching other
// registrations. Callbacks of one kind run in map iteration order, which
// is not defined.
type componentObservers[T any] struct {
	nextID   int
	onAdd    map[int]func(EntityID, T)
	onSet    map[int]func(e EntityID, old, new T)
	onRemove map[int]func(EntityID, T)
	onChange map[int]func(e EntityID, old, new T)
}

func newComponentObservers[T any]() *componentObservers[T] {
	return &componentObservers[T]{
		onAdd:    make(map[int]func(EntityID, T)),
		onSet:    make(map[int]func(EntityID, T, T)),
		onRemove: make(map[int]func(EntityID, T)),
		onChange: make(map[int]func(EntityID, T, T)),
	}
}

func observersFor[T any](w *World, key string) *componentObservers[T] {
	if v, ok := w.observers[key]; ok {
		return v.(*componentObservers[T])
	}
	o := newComponentObservers[T]()
	w.observers[key] = o
	return o
}

// OnAdd registers cb to fire after a value of type T is stored for the
// first time at key (after defaults are applied). Returns an Unsubscribe.
func OnAdd[T any](w *World, key string, cb func(EntityID, T)) Unsubscribe {
	o := observersFor[T](w, key)
	id := o.nextID
	o.nextID++
	o.onAdd[id] = cb
	return func() { delete(o.onAdd, id) }
}

// OnSet registers cb to fire when an existing T at key is overwritten,
// receiving the old and new payloads.
func OnSet[T any](w *World, key string, cb func(e EntityID, old, new T)) Unsubscribe {
	o := observersFor[T](w, key)
	id := o.nextID
	o.nextID++
	o.onSet[id] = cb
	return func() { delete(o.onSet, id) }
}

// OnRemove registers cb to fire before a T is removed at key; the old
// payload is still readable.
func OnRemove[T any](w *World, key string, cb func(EntityID, T)) Unsubscribe {
	o := observersFor[T](w, key)
	id := o.nextID
	o.nextID++
	o.onRemove[id] = cb
	return func() { delete(o.onRemove, id) }
}

// OnChange registers cb to fire on either an add or an overwrite of T at
// key. For an add, old equals new (there is no prior value).
func OnChange[T any](w *World, key string, cb func(e EntityID, old, new T)) Unsubscribe {
	o := observersFor[T](w, key)
	id := o.nextID
	o.nextID++
	o.onChange[id] = cb
	return func() { delete(o.onChange, id) }
}

// fireAdd, fireSet, fireRemove dispatch the registered callbacks for one
// mutation, recovering and logging any callback panic so a failing
// observer can never corrupt the store it watches.
func fireAdd[T any](w *World, key string, e EntityID, value T) {
	o := observersFor[T](w, key)
	for _, cb := range o.onAdd {
		safeCall(w, key, "on_add", func() { cb(e, value) })
	}
	for _, cb := range o.onChange {
		safeCall(w, key, "on_change", func() { cb(e, value, value) })
	}
}

func fireSet[T any](w *World, key string, e EntityID, old, new T) {
	o := observersFor[T](w, key)
	for _, cb := range o.onSet {
		safeCall(w, key, "on_set", func() { cb(e, old, new) })
	}
	for _, cb := range o.onChange {
		safeCall(w, key, "on_change", func() { cb(e, old, new) })
	}
}

func fireRemove[T any](w *World, key string, e EntityID, old T) {
	o := observersFor[T](w, key)
	for _, cb := range o.onRemove {
		safeCall(w, key, "on_remove", func() { cb(e, old) })
	}
}

func safeCall(w *World, key, kind string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger := w.Logger
			if logger == nil {
				logger = slog.Default()
			}
			logger.Warn("ecs: observer callback panicked",
				"component", key, "kind", kind, "recovered", r)
		}
	}()
	fn()
}
