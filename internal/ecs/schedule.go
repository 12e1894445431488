package ecs

import "fmt"

// Stage is one of the fixed points in a tick where systems run. Stages
// always run in the same relative order; within a stage, systems run in the
// order they were registered, never reordered by priority or cost, so two
// runs over equal input produce bitwise-equal output (spec.md 3).
type Stage int

const (
	StageFirst Stage = iota
	StagePreUpdate
	StageUpdate
	StagePostUpdate
	StageLast

	numStages
)

func (s Stage) String() string {
	switch s {
	case StageFirst:
		return "First"
	case StagePreUpdate:
		return "PreUpdate"
	case StageUpdate:
		return "Update"
	case StagePostUpdate:
		return "PostUpdate"
	case StageLast:
		return "Last"
	default:
		return "Unknown"
	}
}

// BorrowDecl is one component store or resource a system needs, and whether
// it needs to mutate it (Exclusive) or only read it (Shared). The scheduler
// checks a system's declared borrows against each other before running it
// and releases them once it returns, so stage-mates are never checked
// against one another.
type BorrowDecl struct {
	Kind   string
	Access Access
}

// SystemFunc is the signature every registered system implements. Structural
// edits (spawn/despawn/attach/detach) go through cmds rather than mutating w
// directly so a system never invalidates another store's in-flight iteration.
type SystemFunc func(w *World, cmds *Commands) error

type registeredSystem struct {
	name    string
	borrows []BorrowDecl
	run     SystemFunc
}

// Scheduler holds the systems registered for each stage and runs them in
// registration order, one stage at a time.
type Scheduler struct {
	stages [numStages][]registeredSystem
}

// NewScheduler returns a scheduler with no systems registered.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Add registers fn to run during stage, after any system already registered
// for that stage. borrows declares the stores/resources fn touches, for
// conflict detection among fn's own declarations.
func (s *Scheduler) Add(stage Stage, name string, borrows []BorrowDecl, fn SystemFunc) {
	s.stages[stage] = append(s.stages[stage], registeredSystem{name: name, borrows: borrows, run: fn})
}

// RunStage runs every system registered for stage, in registration order,
// against w. Each system gets a fresh Commands buffer, applied immediately
// after the system returns (and before the next system's borrows are taken),
// so later systems in the same stage observe earlier systems' structural
// edits. A BorrowConflict or a system error aborts the stage immediately.
func (s *Scheduler) RunStage(w *World, stage Stage) error {
	for _, sys := range s.stages[stage] {
		b := newBorrows(w.borrows)
		for _, d := range sys.borrows {
			if err := b.Take(d.Kind, d.Access); err != nil {
				b.Release()
				return fmt.Errorf("stage %s, system %q: %w", stage, sys.name, err)
			}
		}
		cmds := NewCommands()
		err := sys.run(w, cmds)
		b.Release()
		if err != nil {
			return fmt.Errorf("stage %s, system %q: %w", stage, sys.name, err)
		}
		cmds.Apply(w)
	}
	return nil
}

// Advance runs every stage, in fixed order, once. This is the scheduler half
// of one simulation tick; the caller (internal/session) is responsible for
// the fixed timestep that makes repeated Advance calls deterministic.
func (s *Scheduler) Advance(w *World) error {
	for stage := Stage(0); stage < numStages; stage++ {
		if err := s.RunStage(w, stage); err != nil {
			return err
		}
	}
	return nil
}
