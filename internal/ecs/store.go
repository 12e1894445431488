package ecs

// Component is the marker every component value satisfies. It carries no
// methods; it exists so store-erasure code (World.stores) can talk about
// "a component of some type" without resorting to interface{}.
type Component interface{}

// Store is the typed, dense storage for one component kind, mirroring
// totodo713-vamplite's storage.SparseSet (sparse map + dense array) but
// storing the component value inline in the dense array instead of only the
// owning entity, and keyed by Entity (index+generation) rather than a bare
// EntityID so stale lookups resolve to "absent" instead of aliasing a reused
// slot (spec.md 4.1).
type Store[T any] struct {
	present *Bitset
	dense   []T
	// owner[i] is the entity index occupying dense[i]; kept in sync so
	// Remove's swap-to-last step can repoint the displaced entity's slot.
	owner []uint32
	// slot[entityIndex] is the position in dense holding that entity's
	// component, valid only where present is set for that index.
	slot []int32
}

func newStore[T any]() *Store[T] {
	return &Store[T]{present: NewBitset()}
}

func (s *Store[T]) ensureSlot(idx uint32) {
	for uint32(len(s.slot)) <= idx {
		s.slot = append(s.slot, -1)
	}
}

// Insert stores value under ent, overwriting and returning any prior value.
func (s *Store[T]) Insert(ent Entity, value T) (prev T, had bool) {
	idx := ent.Index()
	s.ensureSlot(idx)
	if s.present.Test(idx) {
		pos := s.slot[idx]
		prev = s.dense[pos]
		s.dense[pos] = value
		return prev, true
	}
	s.dense = append(s.dense, value)
	s.owner = append(s.owner, idx)
	s.slot[idx] = int32(len(s.dense) - 1)
	s.present.Set(idx)
	return prev, false
}

// Remove clears ent's component, returning the prior value if present. It
// uses swap-remove on the dense array (O(1)) and fixes up the displaced
// entity's slot, the same technique as the teacher's SparseSet.Remove.
func (s *Store[T]) Remove(ent Entity) (prev T, had bool) {
	idx := ent.Index()
	if !s.present.Test(idx) {
		return prev, false
	}
	pos := s.slot[idx]
	prev = s.dense[pos]
	last := int32(len(s.dense) - 1)
	if pos != last {
		s.dense[pos] = s.dense[last]
		movedIdx := s.owner[last]
		s.slot[movedIdx] = pos
		s.owner[pos] = movedIdx
	}
	s.dense = s.dense[:last]
	s.owner = s.owner[:last]
	s.slot[idx] = -1
	s.present.Clear(idx)
	return prev, true
}

// Get returns the component for ent and whether it was present.
func (s *Store[T]) Get(ent Entity) (T, bool) {
	idx := ent.Index()
	if !s.present.Test(idx) {
		var zero T
		return zero, false
	}
	return s.dense[s.slot[idx]], true
}

// GetPtr returns a pointer into the dense array for in-place mutation, or
// nil if absent. The pointer is invalidated by any subsequent Insert/Remove
// on this store (both may reallocate or swap the dense array).
func (s *Store[T]) GetPtr(ent Entity) *T {
	idx := ent.Index()
	if !s.present.Test(idx) {
		return nil
	}
	return &s.dense[s.slot[idx]]
}

// Has reports whether ent currently has this component.
func (s *Store[T]) Has(ent Entity) bool {
	return s.present.Test(ent.Index())
}

// Bitset returns the store's presence bitset, for use with iter_with_bitset
// and cross-store mask composition (AND/OR/NOT/AND-NOT).
func (s *Store[T]) Bitset() *Bitset { return s.present }

// Len returns the number of entities holding this component.
func (s *Store[T]) Len() int { return len(s.dense) }

// ForEach calls fn for every (entity index, component) pair in ascending
// entity-index order, matching spec.md's iter_with ordering guarantee.
func (s *Store[T]) ForEach(fn func(idx uint32, value T)) {
	s.present.ForEach(func(idx uint32) {
		fn(idx, s.dense[s.slot[idx]])
	})
}

// Clone returns an independent deep copy of the store. Component values must
// be plain, trivially-copyable structs (no pointers/slices/maps) for this to
// be a true deep copy; see spec.md 9 "Deep cloning for snapshots".
func (s *Store[T]) Clone() *Store[T] {
	return &Store[T]{
		present: s.present.Clone(),
		dense:   append([]T(nil), s.dense...),
		owner:   append([]uint32(nil), s.owner...),
		slot:    append([]int32(nil), s.slot...),
	}
}

// erasedStore is the type-agnostic view of a Store[T] that World uses to hold
// heterogeneous stores in one map and to clone/despawn-from across all of
// them without knowing T.
type erasedStore interface {
	removeEntity(Entity)
	cloneErased() erasedStore
	hasEntity(Entity) bool
	bitsetErased() *Bitset
}

func (s *Store[T]) removeEntity(ent Entity)  { s.Remove(ent) }
func (s *Store[T]) cloneErased() erasedStore { return s.Clone() }
func (s *Store[T]) hasEntity(ent Entity) bool { return s.Has(ent) }
func (s *Store[T]) bitsetErased() *Bitset     { return s.present }
