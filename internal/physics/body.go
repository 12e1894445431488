package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
)

// KinematicBody is the per-entity physical state the integrator advances
// each tick: velocity plus the handful of flags/parameters spec.md 4.4's
// kinematic-body algorithm reads. Grounded on totodo713-vamplite's
// components.PhysicsComponent (Mass/Velocity/IsStatic field naming),
// extended with the jump-through and rotation behavior that component never
// implemented past its struct fields.
type KinematicBody struct {
	Velocity mgl64.Vec2
	Offset   mgl64.Vec2

	HasMass          bool
	Mass             float64
	Bounciness       float64
	TerminalVelocity float64

	CanRotate       bool
	AngularVelocity float64

	HasFriction   bool
	FrictionLerp  float64
	StopThreshold float64

	// IsSpawning is consumed on the first Integrate call: the body
	// registers itself in the collision world's actor set, then the flag
	// clears.
	IsSpawning bool
	// FallThrough requests a descent through a jump-through platform: the
	// next Integrate call latches Collider.Descent and clears the flag.
	// The player controller system does not set it.
	FallThrough bool

	WasOnGround  bool
	IsOnGround   bool
	IsOnPlatform bool
}

// groundProbeOffset is how far below the collider's current box Integrate
// samples to decide grounded state.
const groundProbeOffset = 1.0

// shoveAttempts bounds how many 1px nudges Integrate tries before giving up
// on unsticking a body embedded in a Solid overlap.
const shoveAttempts = 4

var shoveDirections = [4]mgl64.Vec2{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Integrate advances one entity's collider/transform by one fixed tick,
// following spec.md 4.4's eleven-step kinematic-body algorithm: unstick,
// spawn registration, fall-through latch, ground probe, horizontal sweep
// with bounce, gravity, vertical sweep with bounce, rotation, ground
// friction, and finally writing the transform back from the collider.
func Integrate(cw *CollisionWorld, self ecs.Entity, body *KinematicBody, collider *Collider, transform *Transform, gravity mgl64.Vec2, dt float64) {
	if body.HasMass {
		unstick(cw, collider, self)
	}

	if body.IsSpawning {
		cw.RegisterActor(self, Rect{Pos: collider.Pos, W: collider.Width, H: collider.Height})
		body.IsSpawning = false
	}

	if body.FallThrough {
		collider.Descent = true
		body.FallThrough = false
	}

	collider.Pos = transform.Translation.Add(body.Offset)

	below := collider.Pos
	below[1] += collider.Height + groundProbeOffset
	groundHit := cw.CollideSolids(below, collider.Width, 0, self)
	body.WasOnGround = body.IsOnGround
	body.IsOnGround = groundHit.Kind == HitSolidTile || groundHit.Kind == HitSolidEntity || groundHit.Kind == HitJumpThrough
	body.IsOnPlatform = groundHit.Kind == HitJumpThrough

	if !cw.MoveH(collider, body.Velocity.X()*dt, self) {
		body.Velocity[0] *= -body.Bounciness
	}

	if !body.IsOnGround && body.HasMass {
		body.Velocity = body.Velocity.Add(gravity.Mul(dt))
		if body.Velocity.Y() > body.TerminalVelocity {
			body.Velocity[1] = body.TerminalVelocity
		}
	}

	if !cw.MoveV(collider, body.Velocity.Y()*dt, self) {
		body.Velocity[1] *= -body.Bounciness
	}

	if body.CanRotate {
		if body.IsOnGround {
			transform.Rotation += math.Abs(body.Velocity.X()) * body.AngularVelocity
		} else {
			transform.Rotation += body.AngularVelocity * dt
		}
	}

	if body.IsOnGround && body.HasFriction {
		body.Velocity[0] *= body.FrictionLerp
		if math.Abs(body.Velocity.X()) < body.StopThreshold {
			body.Velocity[0] = 0
		}
	}

	cw.UpdateActor(self, Rect{Pos: collider.Pos, W: collider.Width, H: collider.Height})
	transform.Translation = collider.Pos.Sub(body.Offset)
}

// unstick repeatedly probes the four axis directions for a clear corner and
// nudges the collider one pixel that way; if no direction is clear it gives
// up and leaves the body embedded, per spec.md 4.4 step 1's accepted
// fail-safe.
func unstick(cw *CollisionWorld, c *Collider, self ecs.Entity) {
	for attempt := 0; attempt < shoveAttempts; attempt++ {
		hit := cw.CollideSolids(c.Pos, c.Width, c.Height, self)
		if hit.Kind != HitSolidTile && hit.Kind != HitSolidEntity {
			return
		}
		moved := false
		for _, dir := range shoveDirections {
			candidate := c.Pos.Add(dir)
			if h := cw.CollideSolids(candidate, c.Width, c.Height, self); h.Kind != HitSolidTile && h.Kind != HitSolidEntity {
				c.Pos = candidate
				moved = true
				break
			}
		}
		if !moved {
			return
		}
	}
}
