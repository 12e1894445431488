package ecs

// Access describes how a system touches one component store or resource for
// the duration of a single stage run.
type Access int

const (
	// Shared allows any number of concurrent Shared borrows of the same kind
	// but no Exclusive borrow at the same time.
	Shared Access = iota
	// Exclusive allows exactly one borrow of the kind, and no other borrow
	// (shared or exclusive) concurrently.
	Exclusive
)

// Borrows is the set of accesses a system declares before it runs, checked
// against the borrows already taken for that same system. The scheduler
// releases a system's borrows as soon as it returns, so two systems of one
// stage never conflict with each other. Unlike a real mutex, a conflict here
// is never waited out: it is reported as a BorrowConflict and the stage run
// aborts, because a system declaring incompatible access to the same store
// is a scheduling bug, not transient contention (spec.md 7).
type Borrows struct {
	tracker *borrowTracker
	held    []borrowHandle
}

type borrowHandle struct {
	kind   string
	access Access
}

type borrowTracker struct {
	// active[kind] counts current shared borrows, or -1 while an exclusive
	// borrow is held.
	active map[string]int
}

func newBorrowTracker() *borrowTracker {
	return &borrowTracker{active: map[string]int{}}
}

// newBorrows returns a fresh, empty borrow set bound to tracker.
func newBorrows(tracker *borrowTracker) *Borrows {
	return &Borrows{tracker: tracker}
}

// Take acquires access to kind, returning a BorrowConflict if it is
// incompatible with a borrow already held on the tracker (under the
// scheduler, one taken earlier for the same system).
func (b *Borrows) Take(kind string, access Access) error {
	cur, ok := b.tracker.active[kind]
	switch {
	case !ok || cur == 0:
		if access == Exclusive {
			b.tracker.active[kind] = -1
		} else {
			b.tracker.active[kind] = 1
		}
	case cur == -1:
		return &BorrowConflict{Kind: kind, Want: accessLabel(access)}
	case cur > 0:
		if access == Exclusive {
			return &BorrowConflict{Kind: kind, Want: accessLabel(access)}
		}
		b.tracker.active[kind] = cur + 1
	}
	b.held = append(b.held, borrowHandle{kind: kind, access: access})
	return nil
}

// Release gives back every borrow this set holds. Called once a system's
// run (successful or not) completes, before the next system in the stage
// takes its own borrows.
func (b *Borrows) Release() {
	for _, h := range b.held {
		cur := b.tracker.active[h.kind]
		if cur == -1 {
			delete(b.tracker.active, h.kind)
			continue
		}
		if cur <= 1 {
			delete(b.tracker.active, h.kind)
		} else {
			b.tracker.active[h.kind] = cur - 1
		}
	}
	b.held = b.held[:0]
}

func accessLabel(a Access) string {
	if a == Exclusive {
		return "exclusive"
	}
	return "shared"
}
