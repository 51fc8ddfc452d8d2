package ecs

// ComponentStore is a SparseSet[T] plus per-slot change-tick bookkeeping:
// the tick of an entity's first appearance in this store (addTick) and
// the tick of its most recent write (writeTick). Both are parallel to the
// SparseSet's dense arrays and are swap-remove-safe.
type ComponentStore[T any] struct {
	set       *SparseSet[T]
	addTick   []uint64
	writeTick []uint64
}

// NewComponentStore constructs an empty store.
func NewComponentStore[T any]() *ComponentStore[T] {
	return &ComponentStore[T]{set: NewSparseSet[T]()}
}

// Has reports whether e currently holds a value in this store.
func (c *ComponentStore[T]) Has(e EntityID) bool { return c.set.Has(e) }

// Get returns e's value and whether it is present.
func (c *ComponentStore[T]) Get(e EntityID) (T, bool) { return c.set.Get(e) }

// Add inserts or overwrites e's value, stamping writeTick with now, and
// addTick only on a fresh insert.
func (c *ComponentStore[T]) Add(e EntityID, value T, now uint64) {
	inserted := c.set.Set(e, value)
	d := c.set.denseIndexOf(e)
	c.growTicks(int(d) + 1)
	if inserted {
		c.addTick[d] = now
	}
	c.writeTick[d] = now
}

// Set mutates e's existing value through updater and stamps writeTick
// with now. It is a no-op (updater is not called) if e is absent.
func (c *ComponentStore[T]) Set(e EntityID, now uint64, updater func(T) T) {
	d := c.set.denseIndexOf(e)
	if d == sparseEmpty {
		return
	}
	c.set.denseData[d] = updater(c.set.denseData[d])
	c.writeTick[d] = now
}

// Remove deletes e's value via swap-remove. If another entity's slot was
// moved into the vacated position, that entity's writeTick is stamped
// with now: its dense index changed, so change-filter consumers must
// see it as modified this tick even though its payload did not change.
func (c *ComponentStore[T]) Remove(e EntityID, now uint64) bool {
	d := c.set.denseIndexOf(e)
	if d == sparseEmpty {
		return false
	}
	last := int32(c.set.Len()) - 1

	moved, removed := c.set.Remove(e)
	if !removed {
		return false
	}
	if moved != NullEntity {
		c.addTick[d] = c.addTick[last]
		c.writeTick[d] = now
	}
	c.addTick = c.addTick[:last]
	c.writeTick = c.writeTick[:last]
	return true
}

// LastWriteTick returns the tick of e's most recent write and whether e
// is present.
func (c *ComponentStore[T]) LastWriteTick(e EntityID) (uint64, bool) {
	d := c.set.denseIndexOf(e)
	if d == sparseEmpty {
		return 0, false
	}
	return c.writeTick[d], true
}

// FirstAppearanceTick returns the tick e was first added to this store
// and whether e is present.
func (c *ComponentStore[T]) FirstAppearanceTick(e EntityID) (uint64, bool) {
	d := c.set.denseIndexOf(e)
	if d == sparseEmpty {
		return 0, false
	}
	return c.addTick[d], true
}

// Added reports whether e was added to this store during tick now.
func (c *ComponentStore[T]) Added(e EntityID, now uint64) bool {
	d := c.set.denseIndexOf(e)
	if d == sparseEmpty {
		return false
	}
	return c.addTick[d] == now && c.writeTick[d] == now
}

// Modified reports whether e was written during tick now but was not
// added then.
func (c *ComponentStore[T]) Modified(e EntityID, now uint64) bool {
	d := c.set.denseIndexOf(e)
	if d == sparseEmpty {
		return false
	}
	return c.writeTick[d] == now && c.addTick[d] != now
}

// Changed reports whether e was written during tick now, added or not.
func (c *ComponentStore[T]) Changed(e EntityID, now uint64) bool {
	d := c.set.denseIndexOf(e)
	if d == sparseEmpty {
		return false
	}
	return c.writeTick[d] == now
}

// DenseEntities exposes the underlying SparseSet's dense entity order.
func (c *ComponentStore[T]) DenseEntities() []EntityID { return c.set.DenseEntities() }

// Len returns the number of entities currently holding a value.
func (c *ComponentStore[T]) Len() int { return c.set.Len() }

func (c *ComponentStore[T]) growTicks(n int) {
	for len(c.addTick) < n {
		c.addTick = append(c.addTick, 0)
		c.writeTick = append(c.writeTick, 0)
	}
}
