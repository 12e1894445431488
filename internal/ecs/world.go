package ecs

// World owns every entity, every component store, the resource set, and the
// borrow tracker that stage runs use to detect conflicting access. It is the
// unit of Clone for snapshot/restore (spec.md 9): cloning a World produces an
// independent copy that shares no mutable state with the original.
type World struct {
	entities  *Entities
	stores    map[ComponentTag]erasedStore
	resources *resources
	borrows   *borrowTracker
}

// NewWorld returns an empty world ready for entities and components.
func NewWorld() *World {
	return &World{
		entities:  NewEntities(),
		stores:    map[ComponentTag]erasedStore{},
		resources: newResources(),
		borrows:   newBorrowTracker(),
	}
}

// Spawn allocates a fresh, component-less entity.
func (w *World) Spawn() Entity {
	return w.entities.Spawn()
}

// Despawn retires ent and removes any components it holds from every store.
// Order of removal across stores is the map's natural (unspecified) order,
// which is safe because component removal never reads other stores.
func (w *World) Despawn(ent Entity) {
	for _, s := range w.stores {
		s.removeEntity(ent)
	}
	w.entities.Despawn(ent)
}

// IsAlive reports whether ent is still live.
func (w *World) IsAlive(ent Entity) bool { return w.entities.IsAlive(ent) }

// Len returns the number of live entities.
func (w *World) Len() int { return w.entities.Len() }

// getStore returns the store for T, lazily creating it on first reference.
// Lazy creation means a component kind that is never referenced (inserted,
// read, removed or iterated) never appears in w.stores, which keeps Snapshot
// cheap for worlds that only use a few of
// the registered kinds.
func getStore[T any](w *World) *Store[T] {
	tag := TagOf[T]()
	s, ok := w.stores[tag]
	if !ok {
		ns := newStore[T]()
		w.stores[tag] = ns
		return ns
	}
	return s.(*Store[T])
}

// GetStore exposes the typed store for T so systems can iterate it directly
// (ForEach, Bitset) without a per-call Insert/Get round trip.
func GetStore[T any](w *World) *Store[T] {
	return getStore[T](w)
}

// Insert attaches component value to ent, overwriting any existing value of
// the same type.
func Insert[T any](w *World, ent Entity, value T) {
	getStore[T](w).Insert(ent, value)
}

// Remove detaches T from ent, if present.
func Remove[T any](w *World, ent Entity) {
	getStore[T](w).Remove(ent)
}

// Get returns ent's component of type T and whether it is present.
func Get[T any](w *World, ent Entity) (T, bool) {
	if !w.IsAlive(ent) {
		var zero T
		return zero, false
	}
	return getStore[T](w).Get(ent)
}

// GetPtr returns a pointer to ent's component of type T for in-place
// mutation, or nil if absent.
func GetPtr[T any](w *World, ent Entity) *T {
	if !w.IsAlive(ent) {
		return nil
	}
	return getStore[T](w).GetPtr(ent)
}

// Has reports whether ent carries a component of type T.
func Has[T any](w *World, ent Entity) bool {
	if !w.IsAlive(ent) {
		return false
	}
	return getStore[T](w).Has(ent)
}

// Clone returns a deep, independent copy of the world: a new Entities
// allocator, a fresh store per component kind (each store's own Clone), and
// a cloned resource set. Borrow state is never cloned — a clone starts with
// no borrows held, matching the fact that Snapshot/Restore only ever run
// between stage executions, never concurrently with one.
func (w *World) Clone() *World {
	c := &World{
		entities:  w.entities.Clone(),
		stores:    make(map[ComponentTag]erasedStore, len(w.stores)),
		resources: w.resources.clone(),
		borrows:   newBorrowTracker(),
	}
	for tag, s := range w.stores {
		c.stores[tag] = s.cloneErased()
	}
	return c
}
