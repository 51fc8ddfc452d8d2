package ecs

// changeFilter selects which entities a query yields based on their
// change ticks, relative to a reference tick (normally World.Tick()).
type changeFilter int

const (
	filterNone changeFilter = iota
	filterAdded
	filterModified
	filterChanged
)

func storeLen(w *World, key string) int {
	if v, ok := w.stores[key]; ok {
		if l, ok := v.(interface{ Len() int }); ok {
			return l.Len()
		}
	}
	return 0
}

func storeHas(w *World, key string, e EntityID) bool {
	if v, ok := w.stores[key]; ok {
		if h, ok := v.(interface{ HasErased(EntityID) bool }); ok {
			return h.HasErased(e)
		}
	}
	return false
}

// HasErased lets query.go check membership in a type-erased store
// without knowing T.
func (c *ComponentStore[T]) HasErased(e EntityID) bool { return c.Has(e) }

func storeChangeErased(w *World, key string, e EntityID, now uint64, filter changeFilter) bool {
	v, ok := w.stores[key]
	if !ok {
		return false
	}
	cf, ok := v.(changeFilterErased)
	if !ok {
		return false
	}
	switch filter {
	case filterAdded:
		return cf.AddedErased(e, now)
	case filterModified:
		return cf.ModifiedErased(e, now)
	case filterChanged:
		return cf.ChangedErased(e, now)
	}
	return false
}

type changeFilterErased interface {
	AddedErased(e EntityID, now uint64) bool
	ModifiedErased(e EntityID, now uint64) bool
	ChangedErased(e EntityID, now uint64) bool
}

func (c *ComponentStore[T]) AddedErased(e EntityID, now uint64) bool    { return c.Added(e, now) }
func (c *ComponentStore[T]) ModifiedErased(e EntityID, now uint64) bool { return c.Modified(e, now) }
func (c *ComponentStore[T]) ChangedErased(e EntityID, now uint64) bool  { return c.Changed(e, now) }

// driverKey picks the smallest store among withKeys: its dense array
// bounds the iteration, so every other store is only probed per
// candidate.
func driverKey(w *World, withKeys []string) (string, bool) {
	best := ""
	bestLen := -1
	for _, k := range withKeys {
		l := storeLen(w, k)
		if bestLen == -1 || l < bestLen {
			best = k
			bestLen = l
		}
	}
	return best, bestLen != -1
}

func passesQueryFilters(w *World, e EntityID, withKeys, notKeys []string, changedSince *uint64, filter changeFilter, filterKeys []string) bool {
	for _, k := range notKeys {
		if storeHas(w, k, e) {
			return false
		}
	}
	for _, k := range withKeys {
		if !storeHas(w, k, e) {
			return false
		}
	}
	if changedSince != nil {
		if !anyStoreWrittenSince(w, withKeys, e, *changedSince) {
			return false
		}
	}
	if filter != filterNone {
		keys := withKeys
		if len(filterKeys) > 0 {
			keys = filterKeys
		}
		matched := false
		for _, k := range keys {
			if storeChangeErased(w, k, e, w.tick, filter) {
				matched = true
				break
			}
		}
		if !matched {
			return false
		}
	}
	return true
}

func anyStoreWrittenSince(w *World, keys []string, e EntityID, since uint64) bool {
	for _, k := range keys {
		v, ok := w.stores[k]
		if !ok {
			continue
		}
		lw, ok := v.(interface {
			LastWriteTickErased(EntityID) (uint64, bool)
		})
		if !ok {
			continue
		}
		if tick, present := lw.LastWriteTickErased(e); present && tick > since {
			return true
		}
	}
	return false
}

// LastWriteTickErased exposes LastWriteTick without the payload type.
func (c *ComponentStore[T]) LastWriteTickErased(e EntityID) (uint64, bool) { return c.LastWriteTick(e) }

// Query1 iterates entities holding a single component type A.
type Query1[A any] struct {
	world      *World
	keyA       string
	not        []string
	changed    *uint64
	filter     changeFilter
	filterKeys []string
}

// NewQuery1 builds a query over component A at keyA.
func NewQuery1[A any](w *World, keyA string) *Query1[A] { return &Query1[A]{world: w, keyA: keyA} }

// Not excludes entities holding any of the named component keys.
func (q *Query1[A]) Not(keys ...string) *Query1[A] { q.not = keys; return q }

// ChangedSince restricts results to entities with at least one with-store
// write tick greater than since.
func (q *Query1[A]) ChangedSince(since uint64) *Query1[A] { q.changed = &since; return q }

// Added restricts to entities whose A was added this tick.
func (q *Query1[A]) Added() *Query1[A] { q.filter = filterAdded; return q }

// Modified restricts to entities whose A was written (not added) this tick.
func (q *Query1[A]) Modified() *Query1[A] { q.filter = filterModified; return q }

// Changed restricts to entities whose A was added or modified this tick.
func (q *Query1[A]) Changed() *Query1[A] { q.filter = filterChanged; return q }

// Each calls fn for every matching entity, in driver-store dense order.
func (q *Query1[A]) Each(fn func(EntityID, A)) {
	store := storeFor[A](q.world, q.keyA)
	for _, e := range store.DenseEntities() {
		if !passesQueryFilters(q.world, e, []string{q.keyA}, q.not, q.changed, q.filter, q.filterKeys) {
			continue
		}
		a, ok := store.Get(e)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// Count returns the number of entities Each would visit.
func (q *Query1[A]) Count() int {
	n := 0
	q.Each(func(EntityID, A) { n++ })
	return n
}

// Query2 iterates entities holding components A and B.
type Query2[A, B any] struct {
	world      *World
	keyA, keyB string
	not        []string
	changed    *uint64
	filter     changeFilter
	filterKeys []string
}

// NewQuery2 builds a query over A at keyA and B at keyB.
func NewQuery2[A, B any](w *World, keyA, keyB string) *Query2[A, B] {
	return &Query2[A, B]{world: w, keyA: keyA, keyB: keyB}
}

func (q *Query2[A, B]) Not(keys ...string) *Query2[A, B] { q.not = keys; return q }

func (q *Query2[A, B]) ChangedSince(since uint64) *Query2[A, B] { q.changed = &since; return q }

func (q *Query2[A, B]) Added() *Query2[A, B] { q.filter = filterAdded; return q }

func (q *Query2[A, B]) Modified() *Query2[A, B] { q.filter = filterModified; return q }

func (q *Query2[A, B]) Changed() *Query2[A, B] { q.filter = filterChanged; return q }

// ChangedComponent restricts a Changed/Added/Modified filter to the
// named subset of with-keys instead of OR-ing across all of them.
func (q *Query2[A, B]) ChangedComponent(keys ...string) *Query2[A, B] {
	q.filterKeys = keys
	return q
}

func (q *Query2[A, B]) Each(fn func(EntityID, A, B)) {
	withKeys := []string{q.keyA, q.keyB}
	driver, ok := driverKey(q.world, withKeys)
	if !ok {
		return
	}
	storeA := storeFor[A](q.world, q.keyA)
	storeB := storeFor[B](q.world, q.keyB)

	var candidates []EntityID
	switch driver {
	case q.keyA:
		candidates = storeA.DenseEntities()
	default:
		candidates = storeB.DenseEntities()
	}

	for _, e := range candidates {
		if !passesQueryFilters(q.world, e, withKeys, q.not, q.changed, q.filter, q.filterKeys) {
			continue
		}
		a, ok := storeA.Get(e)
		if !ok {
			continue
		}
		b, ok := storeB.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func (q *Query2[A, B]) Count() int {
	n := 0
	q.Each(func(EntityID, A, B) { n++ })
	return n
}

// Query3 iterates entities holding components A, B and C.
type Query3[A, B, C any] struct {
	world            *World
	keyA, keyB, keyC string
	not              []string
	changed          *uint64
	filter           changeFilter
	filterKeys       []string
}

func NewQuery3[A, B, C any](w *World, keyA, keyB, keyC string) *Query3[A, B, C] {
	return &Query3[A, B, C]{world: w, keyA: keyA, keyB: keyB, keyC: keyC}
}

func (q *Query3[A, B, C]) Not(keys ...string) *Query3[A, B, C] { q.not = keys; return q }

func (q *Query3[A, B, C]) ChangedSince(since uint64) *Query3[A, B, C] {
	q.changed = &since
	return q
}

func (q *Query3[A, B, C]) Changed() *Query3[A, B, C] { q.filter = filterChanged; return q }

func (q *Query3[A, B, C]) Each(fn func(EntityID, A, B, C)) {
	withKeys := []string{q.keyA, q.keyB, q.keyC}
	driver, ok := driverKey(q.world, withKeys)
	if !ok {
		return
	}

	storeA := storeFor[A](q.world, q.keyA)
	storeB := storeFor[B](q.world, q.keyB)
	storeC := storeFor[C](q.world, q.keyC)

	var candidates []EntityID
	switch driver {
	case q.keyA:
		candidates = storeA.DenseEntities()
	case q.keyB:
		candidates = storeB.DenseEntities()
	default:
		candidates = storeC.DenseEntities()
	}

	for _, e := range candidates {
		if !passesQueryFilters(q.world, e, withKeys, q.not, q.changed, q.filter, q.filterKeys) {
			continue
		}
		a, ok := storeA.Get(e)
		if !ok {
			continue
		}
		b, ok := storeB.Get(e)
		if !ok {
			continue
		}
		c, ok := storeC.Get(e)
		if !ok {
			continue
		}
		fn(e, a, b, c)
	}
}
