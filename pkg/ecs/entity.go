package ecs

import "github.com/dshills/roguecore/pkg/rerr"

// EntityID packs a 20-bit index and a 12-bit generation into one uint32:
// bits [0,20) are the index, bits [20,32) are the generation. NullEntity
// (the zero value) never compares alive.
type EntityID uint32

const (
	indexBits      = 20
	indexMask      = uint32(1)<<indexBits - 1
	generationMask = uint32(1)<<(32-indexBits) - 1

	// NullEntity is the reserved, never-alive handle.
	NullEntity EntityID = 0

	maxIndex      = indexMask
	maxGeneration = generationMask
)

func newEntityID(index, generation uint32) EntityID {
	return EntityID((generation&generationMask)<<indexBits | (index & indexMask))
}

// Index returns the entity's index component.
func (e EntityID) Index() uint32 { return uint32(e) & indexMask }

// Generation returns the entity's generation component.
func (e EntityID) Generation() uint32 { return (uint32(e) >> indexBits) & generationMask }

// entitySlot tracks one index's live/dead state.
type entitySlot struct {
	generation uint32
	alive      bool
}

// EntityManager allocates and recycles EntityIDs. Indices are recycled
// LIFO; destroying an index bumps its generation (mod 2^12) so any handle
// captured before destruction compares unequal to a subsequent reuse —
// except across exactly 2^12 wraparounds of the same index, a known,
// accepted limit of the 12-bit generation field.
type EntityManager struct {
	slots    []entitySlot
	freeList []uint32
}

// NewEntityManager constructs a manager with room for at least capacity
// entities without reallocating. capacity is a hint, not a hard limit;
// the manager still grows geometrically past it. Index 0 is permanently
// reserved and never allocated: newEntityID(0, 0) == NullEntity, so a
// real entity must never be assigned index 0 at generation 0 or it would
// be indistinguishable from NullEntity.
func NewEntityManager(capacity int) *EntityManager {
	if capacity < 0 {
		capacity = 0
	}
	slots := make([]entitySlot, 1, capacity+1)
	return &EntityManager{slots: slots}
}

// Create allocates a fresh EntityID, reusing a freed index when one is
// available. Returns a *rerr.Error tagged CodeCapacityExceeded when both
// the free list is empty and the index space (2^20 entries) is
// exhausted.
func (m *EntityManager) Create() (EntityID, error) {
	if n := len(m.freeList); n > 0 {
		index := m.freeList[n-1]
		m.freeList = m.freeList[:n-1]
		slot := &m.slots[index]
		slot.alive = true
		return newEntityID(index, slot.generation), nil
	}

	if uint32(len(m.slots)) > maxIndex {
		return NullEntity, rerr.New(rerr.CodeCapacityExceeded, "entity index space exhausted")
	}

	index := uint32(len(m.slots))
	m.slots = append(m.slots, entitySlot{alive: true})
	return newEntityID(index, 0), nil
}

// IsAlive reports whether id refers to a currently live entity.
func (m *EntityManager) IsAlive(id EntityID) bool {
	if id == NullEntity {
		return false
	}
	idx := id.Index()
	if int(idx) >= len(m.slots) {
		return false
	}
	slot := m.slots[idx]
	return slot.alive && slot.generation == id.Generation()
}

// Destroy retires id, bumping its slot's generation and pushing the index
// onto the free list. It is idempotent: destroying an already-dead or
// unknown handle is a silent no-op, like every other stale-handle
// operation on the World.
func (m *EntityManager) Destroy(id EntityID) {
	if !m.IsAlive(id) {
		return
	}
	idx := id.Index()
	slot := &m.slots[idx]
	slot.alive = false
	slot.generation = (slot.generation + 1) & maxGeneration
	m.freeList = append(m.freeList, idx)
}

// AliveCount returns the number of currently live entities.
func (m *EntityManager) AliveCount() int {
	return len(m.slots) - 1 - len(m.freeList)
}
