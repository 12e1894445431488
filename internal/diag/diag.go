// Package diag is the simulation core's only logging surface: a tiny
// Warnf/Errorf sink that systems call for the MissingComponent/MissingAsset
// conditions spec.md 7 describes as "surface as a developer-visible
// warning, continue the tick." The core stays silent by default (no
// structured logging library, no stdout writes of its own) so headless and
// rollback use never produces unwanted output; an embedder that wants the
// warnings assigns its own function to Logger.
package diag

import "fmt"

// Logger is the function-valued sink every Warnf/Errorf call goes through.
// The zero Logger is a no-op, matching the teacher's convention of a silent
// simulation core (internal/core/ecs never writes to stdout on its own;
// only cmd/game does).
type Logger struct {
	Warn  func(msg string)
	Error func(msg string)
}

// NoOp returns a Logger that discards everything, the default every Session
// starts with. Kept as a constructor rather than a shared package variable
// so independent sessions never contend over one logger's state (spec.md
// 5: "Multiple sessions may be advanced in parallel on separate threads;
// they share no mutable state.").
func NoOp() Logger {
	return Logger{
		Warn:  func(string) {},
		Error: func(string) {},
	}
}

// Warnf formats and dispatches msg to l.Warn, or does nothing if l.Warn is
// nil.
func (l Logger) Warnf(format string, args ...any) {
	if l.Warn == nil {
		return
	}
	l.Warn(fmt.Sprintf(format, args...))
}

// Errorf formats and dispatches msg to l.Error, or does nothing if l.Error
// is nil.
func (l Logger) Errorf(format string, args ...any) {
	if l.Error == nil {
		return
	}
	l.Error(fmt.Sprintf(format, args...))
}
