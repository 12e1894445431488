package items

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/asset"
	"brawlcore/internal/ecs"
	"brawlcore/internal/hydration"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
	"brawlcore/internal/randx"
	"brawlcore/internal/render"
)

// CrabState is the crab critter's finite state (spec.md 4.9).
type CrabState int

const (
	CrabSpawning CrabState = iota
	CrabPaused
	CrabWalking
	CrabFleeing
	CrabDespawning
)

// Crab tracks its spawn point (to measure how far it has wandered),
// current walk direction, flee target, and the respawn timer that fires
// once it strays too far for too long.
type Crab struct {
	State      CrabState
	SpawnPoint mgl64.Vec2
	WalkLeft   bool
	FleeTarget ecs.Entity
	StrayTicks int
	PauseTicks int
}

// CrabFields is this element kind's KindFields payload.
type CrabFields struct {
	WalkSpeed         float64
	FleeSpeed         float64
	MaxPauseTicks     int
	StrayRadius       float64
	StrayTimeoutTicks int
}

const crabKind = "crab"

// InstallCrab registers the crab hydrator.
func InstallCrab(reg *hydration.Registry) {
	reg.Register(crabKind, hydrateCrab)
}

func hydrateCrab(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(CrabFields)
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, physics.Collider{Pos: sp.Pos, Width: meta.BodySize.X(), Height: meta.BodySize.Y()})
		ecs.Insert(w, ent, physics.KinematicBody{HasMass: true, HasFriction: true, FrictionLerp: 0.85, StopThreshold: 1, IsSpawning: true})
		ecs.Insert(w, ent, Crab{State: CrabSpawning, SpawnPoint: sp.Pos})
		ecs.Insert(w, ent, DehydrateOnRespawn{Spawner: spawnerEnt})
		ecs.Insert(w, ent, f)
	})
	return nil
}

// DehydrateOnRespawn mirrors hydration.DehydrateOutOfBounds for the crab's
// own wander-too-far rule, which is time-based rather than bounds-based, so
// it can't reuse that component directly.
type DehydrateOnRespawn struct {
	Spawner ecs.Entity
}

// CrabSystem is the RNG-driven state machine: Spawning settles into Paused
// immediately; Paused counts down into a random walk direction; Walking
// moves at WalkSpeed and flees any nearby player; straying beyond
// StrayRadius of the spawn point for StrayTimeoutTicks transitions to
// Despawning, which respawns the crab at its spawn point next tick.
func CrabSystem(rng *randx.Rng, fields func(ecs.Entity) (CrabFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[Crab](w).ForEach(func(idx uint32, c Crab) {
			ent := ecs.EntityAt(w, idx)
			f, ok := fields(ent)
			if !ok {
				return
			}
			body := ecs.GetPtr[physics.KinematicBody](w, ent)
			transform := ecs.GetPtr[physics.Transform](w, ent)
			if body == nil || transform == nil {
				return
			}

			if nearest, found := nearestPlayer(w, transform.Translation); found {
				c.State = CrabFleeing
				c.FleeTarget = nearest
			} else if c.State == CrabFleeing {
				c.State = CrabWalking
			}

			switch c.State {
			case CrabSpawning:
				c.State = CrabPaused
				c.PauseTicks = rng.IntN(f.MaxPauseTicks + 1)
			case CrabPaused:
				body.Velocity[0] = 0
				c.PauseTicks--
				if c.PauseTicks <= 0 {
					c.State = CrabWalking
					c.WalkLeft = rng.Bool()
				}
			case CrabWalking:
				dir := 1.0
				if c.WalkLeft {
					dir = -1.0
				}
				body.Velocity[0] = dir * f.WalkSpeed
			case CrabFleeing:
				if target, ok := ecs.Get[physics.Transform](w, c.FleeTarget); ok {
					dir := 1.0
					if target.Translation.X() > transform.Translation.X() {
						dir = -1.0
					}
					body.Velocity[0] = dir * f.FleeSpeed
				}
			case CrabDespawning:
				transform.Translation = c.SpawnPoint
				body.Velocity = mgl64.Vec2{}
				c.State = CrabSpawning
			}

			dist := transform.Translation.Sub(c.SpawnPoint).Len()
			if dist > f.StrayRadius {
				c.StrayTicks++
			} else {
				c.StrayTicks = 0
			}
			if c.StrayTicks >= f.StrayTimeoutTicks {
				c.State = CrabDespawning
				c.StrayTicks = 0
			}

			ecs.QueueInsert(cmds, ent, c)
		})
		return nil
	}
}

func nearestPlayer(w *ecs.World, pos mgl64.Vec2) (ecs.Entity, bool) {
	var best ecs.Entity
	bestDist := -1.0
	ecs.With2(w, func(ent ecs.Entity, _ *playerctl.PlayerState, t *physics.Transform) {
		d := t.Translation.Sub(pos).Len()
		if bestDist < 0 || d < bestDist {
			bestDist = d
			best = ent
		}
	})
	const fleeRadius = 40.0
	if bestDist >= 0 && bestDist < fleeRadius {
		return best, true
	}
	return ecs.Null, false
}
