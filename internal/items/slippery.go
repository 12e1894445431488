package items

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/asset"
	"brawlcore/internal/ecs"
	"brawlcore/internal/hydration"
	"brawlcore/internal/physics"
)

// SlipperySurface marks a static rectangle that overrides an overlapping
// actor's ground friction for the next integration step only (spec.md
// 4.9). It carries its own friction lerp rather than disabling friction
// outright, so "slippery" can mean "less friction than normal," not "none."
type SlipperySurface struct {
	Size         mgl64.Vec2
	FrictionLerp float64
}

// SlipperySeaweed is the snail element's dependency, per SPEC_FULL's Open
// Question decision: original_source's snail.rs references
// "slippery_seaweed::default()", apparently a typo; this inserts the
// component's zero value and nothing more.
type SlipperySeaweed struct{}

const slipperyKind = "slippery"

// InstallSlippery registers the slippery-surface hydrator.
func InstallSlippery(reg *hydration.Registry) {
	reg.Register(slipperyKind, hydrateSlippery)
}

func hydrateSlippery(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(SlipperySurface)
	if f.Size == (mgl64.Vec2{}) {
		f.Size = meta.BodySize
	}
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, f)
	})
	return nil
}

// SlipperySystem overrides every actor body's FrictionLerp for this tick
// only, when its collider overlaps a SlipperySurface; bodies that don't
// overlap any this tick are left at whatever FrictionLerp their own
// metadata set (the override is transient, per spec.md 4.9: "for the next
// integration step only").
func SlipperySystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		var surfaces []struct {
			rect physics.Rect
			lerp float64
		}
		ecs.With2(w, func(ent ecs.Entity, s *SlipperySurface, t *physics.Transform) {
			surfaces = append(surfaces, struct {
				rect physics.Rect
				lerp float64
			}{physics.Rect{Pos: t.Translation, W: s.Size.X(), H: s.Size.Y()}, s.FrictionLerp})
		})
		if len(surfaces) == 0 {
			return nil
		}
		ecs.With2(w, func(ent ecs.Entity, body *physics.KinematicBody, collider *physics.Collider) {
			actorRect := physics.Rect{Pos: collider.Pos, W: collider.Width, H: collider.Height}
			for _, s := range surfaces {
				if actorRect.Overlaps(s.rect) {
					body.FrictionLerp = s.lerp
					return
				}
			}
		})
		return nil
	}
}
