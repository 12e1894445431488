package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
)

// Collider is the per-entity sweep state move_h/move_v operate on: position,
// box size, the sub-pixel remainder carried between ticks so fractional
// velocity still accumulates into whole-pixel steps, and the two jump-
// through bookkeeping flags (spec.md 4.4).
type Collider struct {
	Pos        mgl64.Vec2
	Width      float64
	Height     float64
	XRemainder float64
	YRemainder float64
	// Descent is true while actively dropping through a jump-through
	// platform (entered by holding down while standing on one, or by
	// moving upward through one).
	Descent bool
	// SeenWood is true while overlapping, or just having exited, a
	// jump-through tile; kept permissive until the swept position clears.
	SeenWood bool
}

func truncateToInt(remainder float64) (whole int, leftover float64) {
	whole = int(remainder)
	leftover = remainder - float64(whole)
	return whole, leftover
}

func sign(n int) float64 {
	if n < 0 {
		return -1
	}
	return 1
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// clearJumpThroughIfClear implements spec.md 4.4 step 6: once the collider's
// current box no longer samples as JumpThrough, both flags reset.
func (cw *CollisionWorld) clearJumpThroughIfClear(c *Collider, self ecs.Entity) {
	hit := cw.CollideSolids(c.Pos, c.Width, c.Height, self)
	if hit.Kind != HitJumpThrough {
		c.SeenWood = false
		c.Descent = false
	}
}

// MoveH attempts to move c by dx pixels along X, one pixel at a time,
// stopping at the first Solid or solid-entity hit. self is excluded from
// solid-entity sampling so an actor never collides with its own rectangle.
// Jump-through tiles never block horizontal movement; only SeenWood is
// updated when the sweep passes over one. Returns true iff the full dx was
// applied.
func (cw *CollisionWorld) MoveH(c *Collider, dx float64, self ecs.Entity) bool {
	defer cw.clearJumpThroughIfClear(c, self)

	c.XRemainder += dx
	move, leftover := truncateToInt(c.XRemainder)
	c.XRemainder = leftover
	if move == 0 {
		return true
	}

	dir := sign(move)
	for i := 0; i < abs(move); i++ {
		next := c.Pos
		next[0] += dir
		hit := cw.CollideSolids(next, c.Width, c.Height, self)
		switch hit.Kind {
		case HitSolidTile, HitSolidEntity:
			c.Pos[0] = math.Floor(c.Pos.X())
			return false
		case HitJumpThrough:
			c.SeenWood = true
			c.Pos = next
		default:
			c.Pos = next
		}
	}
	return true
}

// MoveV is MoveH's vertical counterpart. Jump-through tiles block downward
// movement on first contact, coming to rest on the tile's top edge exactly
// like a solid; moving upward through one passes through and latches
// Descent, so a body that jumped up past a platform keeps falling through
// that same tile on the way back down until it clears it entirely
// (clearJumpThroughIfClear). Once Descent is latched, downward movement
// also passes through freely.
func (cw *CollisionWorld) MoveV(c *Collider, dy float64, self ecs.Entity) bool {
	defer cw.clearJumpThroughIfClear(c, self)

	c.YRemainder += dy
	move, leftover := truncateToInt(c.YRemainder)
	c.YRemainder = leftover
	if move == 0 {
		return true
	}

	dir := sign(move)
	movingDown := dir > 0
	for i := 0; i < abs(move); i++ {
		next := c.Pos
		next[1] += dir
		hit := cw.CollideSolids(next, c.Width, c.Height, self)
		switch hit.Kind {
		case HitJumpThrough:
			c.SeenWood = true
			if c.Descent {
				c.Pos = next
				continue
			}
			if !movingDown {
				c.Descent = true
				c.Pos = next
				continue
			}
			c.Pos[1] = math.Floor(c.Pos.Y())
			return false
		case HitSolidTile, HitSolidEntity:
			c.Pos[1] = math.Floor(c.Pos.Y())
			return false
		default:
			c.Pos = next
		}
	}
	return true
}
