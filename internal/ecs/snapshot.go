package ecs

// Snapshot is an opaque, independent copy of a World at one point in time.
// It shares no mutable state with the world it was taken from or with any
// other Snapshot, so holding several (for rollback) is just holding several
// values (spec.md 9).
type Snapshot struct {
	world *World
}

// Snapshot captures the current state of w.
func (w *World) Snapshot() *Snapshot {
	return &Snapshot{world: w.Clone()}
}

// Restore returns a World equal in content to the one captured in s, again
// as an independent copy so restoring the same Snapshot twice never lets the
// two resulting worlds alias each other's storage.
func (s *Snapshot) Restore() *World {
	return s.world.Clone()
}
