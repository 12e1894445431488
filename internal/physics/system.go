package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
)

// System returns the PostUpdate system that advances every KinematicBody by
// one fixed tick via Integrate, per spec.md 4.5. gravity and dt are the
// same values for every body in a session, resolved once from map metadata
// at session.New time; the CollisionWorld itself is read fresh from the
// world's resources on every call rather than closed over, so a restore()
// that swaps in a different world's CollisionWorld takes effect immediately
// instead of the system going on integrating against a stale one.
func System(gravity mgl64.Vec2, dt float64) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		cw := ecs.MustResource[*CollisionWorld](w)
		ecs.With3(w, func(ent ecs.Entity, body *KinematicBody, collider *Collider, transform *Transform) {
			Integrate(cw, ent, body, collider, transform, gravity, dt)
		})
		return nil
	}
}
