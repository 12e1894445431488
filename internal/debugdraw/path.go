// Package debugdraw implements the debug draw queue (spec.md 4.11, 6):
// systems that want to visualize something (a collider box, a swept path,
// an AI target line) push a Path2d value onto the Queue resource instead of
// drawing directly, so the renderer-facing output stays data, not side
// effects.
package debugdraw

import "github.com/go-gl/mathgl/mgl64"

// Color is a simple RGBA debug draw color, independent of any sprite
// tinting component so debug overlays never interact with gameplay color
// state.
type Color struct {
	R, G, B, A uint8
}

// Path2d is a polyline debug draw request: a sequence of points, a color,
// and whether to close the loop back to the first point. One tick's worth
// of queued Path2d values is the renderer's entire debug-draw input; nothing
// here persists across ticks on its own (see Queue.Clear).
type Path2d struct {
	Points []mgl64.Vec2
	Color  Color
	Closed bool
}

// Queue collects Path2d values pushed during a tick and exposes them for
// the embedder to read afterward, then clears on the next tick's first
// stage. Kept as a resource rather than individual entities so pushing a
// debug shape never contends with component-store borrow checking.
type Queue struct {
	paths []Path2d
}

// NewQueue returns an empty debug draw queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends one path to the queue.
func (q *Queue) Push(p Path2d) {
	q.paths = append(q.paths, p)
}

// Rect pushes a closed four-point rectangle outline, a convenience wrapper
// used by systems that want to visualize a collider or zone bound.
func (q *Queue) Rect(min, max mgl64.Vec2, c Color) {
	q.Push(Path2d{
		Points: []mgl64.Vec2{
			{min.X(), min.Y()},
			{max.X(), min.Y()},
			{max.X(), max.Y()},
			{min.X(), max.Y()},
		},
		Color:  c,
		Closed: true,
	})
}

// Paths returns the paths queued so far this tick.
func (q *Queue) Paths() []Path2d {
	return q.paths
}

// Clear empties the queue, called once at the start of each tick (stage
// First) so debug draws never accumulate across ticks.
func (q *Queue) Clear() {
	q.paths = q.paths[:0]
}

// Clone returns an independent copy, satisfying the ecs resource clone
// hook.
func (q *Queue) Clone() *Queue {
	c := &Queue{paths: make([]Path2d, len(q.paths))}
	for i, p := range q.paths {
		c.paths[i] = Path2d{
			Points: append([]mgl64.Vec2(nil), p.Points...),
			Color:  p.Color,
			Closed: p.Closed,
		}
	}
	return c
}

// CloneResource satisfies internal/ecs's resource clone hook.
func (q *Queue) CloneResource() any {
	return q.Clone()
}
