package items

import (
	"brawlcore/internal/asset"
	"brawlcore/internal/ecs"
	"brawlcore/internal/hydration"
	"brawlcore/internal/physics"
	"brawlcore/internal/proto"
	"brawlcore/internal/render"
)

// Sproinger is stateless apart from the frame counter driving its
// fire animation once triggered (spec.md 4.9).
type Sproinger struct {
	Firing bool
	Frame  int
}

// SproingerFields is this element kind's KindFields payload.
type SproingerFields struct {
	Impulse float64
}

const sproingerKind = "sproinger"

// InstallSproinger registers the sproinger hydrator.
func InstallSproinger(reg *hydration.Registry) {
	reg.Register(sproingerKind, hydrateSproinger)
}

func hydrateSproinger(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(SproingerFields)
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, physics.Collider{Pos: sp.Pos, Width: meta.BodySize.X(), Height: meta.BodySize.Y()})
		ecs.Insert(w, ent, Sproinger{})
		ecs.Insert(w, ent, f)
	})
	return nil
}

// SproingerSystem: on contact by a body moving downward onto the
// sproinger's rectangle, sets that body's vertical velocity to the
// configured positive impulse and starts the bounce animation; the frame
// counter advances through proto.SproingerFrames until it completes.
func SproingerSystem(fields func(ecs.Entity) (SproingerFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[Sproinger](w).ForEach(func(idx uint32, sp Sproinger) {
			ent := ecs.EntityAt(w, idx)
			t, ok := ecs.Get[physics.Transform](w, ent)
			col, hasCol := ecs.Get[physics.Collider](w, ent)
			f, hasFields := fields(ent)
			if !ok || !hasCol || !hasFields {
				return
			}
			springRect := physics.Rect{Pos: t.Translation, W: col.Width, H: col.Height}

			if !sp.Firing {
				ecs.GetStore[physics.KinematicBody](w).ForEach(func(bodyIdx uint32, body physics.KinematicBody) {
					if sp.Firing || body.Velocity.Y() <= 0 {
						return
					}
					other := ecs.EntityAt(w, bodyIdx)
					otherCollider, ok := ecs.Get[physics.Collider](w, other)
					if !ok {
						return
					}
					otherRect := physics.Rect{Pos: otherCollider.Pos, W: otherCollider.Width, H: otherCollider.Height}
					if !springRect.Overlaps(otherRect) {
						return
					}
					body.Velocity[1] = -f.Impulse
					ecs.QueueInsert(cmds, other, body)
					sp.Firing = true
					sp.Frame = 0
				})
			}

			if sp.Firing {
				sp.Frame++
				if sp.Frame >= proto.SproingerFrames[len(proto.SproingerFrames)-1] {
					sp.Firing = false
					sp.Frame = 0
				}
			}
			ecs.QueueInsert(cmds, ent, sp)
		})
		return nil
	}
}
