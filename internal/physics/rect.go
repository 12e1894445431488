// Package physics implements the axis-separated collision world and the
// kinematic body integrator: tile-layer + actor/solid rectangle collision
// (collide_solids, move_h, move_v) and the per-tick body integration that
// drives position, rotation and friction from velocity.
//
// Grounded on totodo713-vamplite's internal/core/systems/physics.go
// (gravity/drag application shape, fixed-timestep field) generalized from
// its TODO-stubbed AABB overlap check into the full axis-separated sweep and
// jump-through semantics this simulation's rollback netcode needs.
package physics

import "github.com/go-gl/mathgl/mgl64"

// Rect is an axis-aligned rectangle in world space, used for both static
// solids and actor bodies.
type Rect struct {
	Pos  mgl64.Vec2
	W, H float64
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool {
	return r.Pos.X() < o.Pos.X()+o.W &&
		o.Pos.X() < r.Pos.X()+r.W &&
		r.Pos.Y() < o.Pos.Y()+o.H &&
		o.Pos.Y() < r.Pos.Y()+r.H
}

// ContainsPoint reports whether p lies within r.
func (r Rect) ContainsPoint(p mgl64.Vec2) bool {
	return p.X() >= r.Pos.X() && p.X() < r.Pos.X()+r.W &&
		p.Y() >= r.Pos.Y() && p.Y() < r.Pos.Y()+r.H
}
