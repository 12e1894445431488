package ecs

import "fmt"

// BorrowConflict is returned when a system's declared borrows would give it
// two incompatible accesses (two exclusive, or exclusive+shared) to the same
// component store or resource. Per spec.md 7, this is a programmer error: it
// is never produced by player input or world state, and Scheduler.RunStage
// propagates it out of advance() instead of absorbing it.
type BorrowConflict struct {
	Kind string // component tag name or resource name
	Want string // "shared" or "exclusive"
}

func (e *BorrowConflict) Error() string {
	return fmt.Sprintf("borrow conflict: %s access to %q denied by an existing incompatible borrow", e.Want, e.Kind)
}

// MissingComponent is a developer-visible warning (never fatal) raised when
// a system asserts a component that invariants say should already be present
// (spec.md 7). Systems that hit this skip the affected entity for the tick
// and try again next tick rather than panicking.
type MissingComponent struct {
	Entity Entity
	Kind   string
}

func (e *MissingComponent) Error() string {
	return fmt.Sprintf("entity %s missing expected component %q", e.Entity, e.Kind)
}
