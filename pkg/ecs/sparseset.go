package ecs

// SparseSet maps an entity index to a dense payload slot, giving O(1)
// has/get/set/remove by entity. sparse[index(e)] holds the dense-array
// position of e's payload, or -1 if e has none; denseEntities and
// denseData are kept parallel and the same length.
type SparseSet[T any] struct {
	sparse        []int32
	denseEntities []EntityID
	denseData     []T
}

const sparseEmpty int32 = -1

// NewSparseSet constructs an empty SparseSet.
func NewSparseSet[T any]() *SparseSet[T] {
	return &SparseSet[T]{}
}

func (s *SparseSet[T]) growSparse(index uint32) {
	if int(index) < len(s.sparse) {
		return
	}
	grown := make([]int32, index+1)
	for i := range grown {
		grown[i] = sparseEmpty
	}
	copy(grown, s.sparse)
	s.sparse = grown
}

// Has reports whether e currently has a payload in this set.
func (s *SparseSet[T]) Has(e EntityID) bool {
	idx := e.Index()
	return int(idx) < len(s.sparse) && s.sparse[idx] != sparseEmpty && s.denseEntities[s.sparse[idx]] == e
}

// Get returns e's payload and whether it was present.
func (s *SparseSet[T]) Get(e EntityID) (T, bool) {
	idx := e.Index()
	if int(idx) >= len(s.sparse) || s.sparse[idx] == sparseEmpty {
		var zero T
		return zero, false
	}
	dense := s.sparse[idx]
	if s.denseEntities[dense] != e {
		var zero T
		return zero, false
	}
	return s.denseData[dense], true
}

// denseIndexOf returns the dense slot for e, or -1 if absent.
func (s *SparseSet[T]) denseIndexOf(e EntityID) int32 {
	idx := e.Index()
	if int(idx) >= len(s.sparse) {
		return sparseEmpty
	}
	d := s.sparse[idx]
	if d == sparseEmpty || s.denseEntities[d] != e {
		return sparseEmpty
	}
	return d
}

// Set inserts or overwrites e's payload, reporting whether this was a
// fresh insert (true) or an overwrite of an existing slot (false).
func (s *SparseSet[T]) Set(e EntityID, value T) (inserted bool) {
	idx := e.Index()
	s.growSparse(idx)

	if d := s.sparse[idx]; d != sparseEmpty && s.denseEntities[d] == e {
		s.denseData[d] = value
		return false
	}

	s.sparse[idx] = int32(len(s.denseEntities))
	s.denseEntities = append(s.denseEntities, e)
	s.denseData = append(s.denseData, value)
	return true
}

// Remove deletes e's payload via swap-with-last then pop, returning the
// entity that was moved into the vacated dense slot (NullEntity if e was
// the last element or absent) and whether e was present at all.
func (s *SparseSet[T]) Remove(e EntityID) (moved EntityID, removed bool) {
	d := s.denseIndexOf(e)
	if d == sparseEmpty {
		return NullEntity, false
	}

	last := int32(len(s.denseEntities)) - 1
	movedEntity := NullEntity
	if d != last {
		movedEntity = s.denseEntities[last]
		s.denseEntities[d] = movedEntity
		s.denseData[d] = s.denseData[last]
		s.sparse[movedEntity.Index()] = d
	}

	var zero T
	s.denseEntities = s.denseEntities[:last]
	s.denseData[last] = zero
	s.denseData = s.denseData[:last]
	s.sparse[e.Index()] = sparseEmpty

	return movedEntity, true
}

// Len returns the number of entities currently holding a payload.
func (s *SparseSet[T]) Len() int { return len(s.denseEntities) }

// DenseEntities returns the live entities in dense (insertion-with-swap-
// remove) order. The returned slice aliases internal storage and must
// not be retained across a mutating call.
func (s *SparseSet[T]) DenseEntities() []EntityID { return s.denseEntities }

// DenseData returns the payloads parallel to DenseEntities. Same aliasing
// caveat applies.
func (s *SparseSet[T]) DenseData() []T { return s.denseData }
