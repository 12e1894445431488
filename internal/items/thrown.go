package items

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/asset"
	"brawlcore/internal/ecs"
	"brawlcore/internal/events"
	"brawlcore/internal/hydration"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
	"brawlcore/internal/render"
)

// ThrownConsumable is the common state for grenade/mine/crate once thrown:
// an age timer, whether it has armed (changed animation, played a sound),
// and the velocity it was released with. ConsumableSystem moves it in a
// straight line at that velocity; no gravity or friction is applied.
type ThrownConsumable struct {
	Age      int
	Armed    bool
	Velocity mgl64.Vec2
}

// ConsumableFields is this element kind's KindFields payload, shared by
// mine/grenade/crate (spec.md 4.9 groups them as one pattern).
type ConsumableFields struct {
	ArmDelayTicks     int
	FuseTicks         int
	ThrowSpeed        float64
	ExplosionSize     mgl64.Vec2
	ExplosionLifetime int
	ExplosionTrauma   float64
	ArmSound          asset.AssetHandle
	ExplosionSound    asset.AssetHandle
}

const (
	mineKind    = "mine"
	grenadeKind = "grenade"
	crateKind   = "crate"
)

// InstallConsumables registers the mine/grenade/crate hydrators, all under
// the shared ThrownConsumable shape.
func InstallConsumables(reg *hydration.Registry) {
	reg.Register(mineKind, hydrateConsumable)
	reg.Register(grenadeKind, hydrateConsumable)
	reg.Register(crateKind, hydrateConsumable)
}

func hydrateConsumable(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(ConsumableFields)
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, playerctl.Grabbable{})
		ecs.Insert(w, ent, f)
		ecs.Insert(w, ent, hydration.DehydrateOutOfBounds{Spawner: spawnerEnt})
	})
	return nil
}

// ThrowItem converts a dropped item into a ThrownConsumable in flight with
// the throw velocity. It does not touch any Inventory: the controller has
// already cleared the holder's when it queued ItemDropped.
// Called by DropSystem when the dropped item is a consumable (items
// systems, not playerctl, decide this — playerctl only emits ItemDropped).
func ThrowItem(w *ecs.World, item ecs.Entity, velocity mgl64.Vec2) {
	ecs.Insert(w, item, ThrownConsumable{Velocity: velocity})
}

// DropSystem reacts to ItemDropped for consumables: mine/grenade/crate
// become airborne on release rather than just falling where they sit, with
// horizontal velocity set by the dropping player's facing and the element's
// configured throw speed (spec.md 4.9). Non-consumable drops and the
// ItemDropped marker itself are left for ClearItemMarkersSystem.
func DropSystem(fields func(ecs.Entity) (ConsumableFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[playerctl.ItemDropped](w).ForEach(func(idx uint32, dropped playerctl.ItemDropped) {
			ent := ecs.EntityAt(w, idx)
			f, ok := fields(ent)
			if !ok {
				return
			}
			dir := 1.0
			if atlas, ok := ecs.Get[render.AtlasSprite](w, dropped.Player); ok && atlas.FlipX {
				dir = -1.0
			}
			ThrowItem(w, ent, mgl64.Vec2{dir * f.ThrowSpeed, 0})
		})
		return nil
	}
}

// ConsumableSystem advances every ThrownConsumable: straight-line motion,
// arming at ArmDelayTicks (animation key change + sound), and exploding
// either on player contact or at fuse expiry.
func ConsumableSystem(dt float64, fields func(ecs.Entity) (ConsumableFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		audio, _ := ecs.GetResource[*events.AudioQueue](w)
		trauma, _ := ecs.GetResource[*events.TraumaQueue](w)
		cw := ecs.MustResource[*physics.CollisionWorld](w)

		ecs.GetStore[ThrownConsumable](w).ForEach(func(idx uint32, tc ThrownConsumable) {
			ent := ecs.EntityAt(w, idx)
			f, ok := fields(ent)
			if !ok {
				return
			}
			transform := ecs.GetPtr[physics.Transform](w, ent)
			if transform == nil {
				return
			}
			transform.Translation = transform.Translation.Add(tc.Velocity.Mul(dt))
			tc.Age++

			if !tc.Armed && tc.Age >= f.ArmDelayTicks {
				tc.Armed = true
				render.SetAnimation(w, ent, "armed", nil, 0, false)
				if audio != nil {
					audio.Push(events.PlaySound{Handle: f.ArmSound, Volume: 1})
				}
			}

			hitPlayer := false
			if tc.Armed {
				for _, other := range cw.ActorCollisions(ent) {
					if ecs.Has[playerctl.PlayerState](w, other) {
						hitPlayer = true
						break
					}
				}
			}
			expired := tc.Age >= f.ArmDelayTicks+f.FuseTicks

			if hitPlayer || expired {
				explode(w, cmds, ent, transform.Translation, f, audio, trauma)
				cmds.Despawn(ent)
				return
			}

			ecs.QueueInsert(cmds, ent, tc)
		})
		return nil
	}
}

func explode(w *ecs.World, cmds *ecs.Commands, owner ecs.Entity, pos mgl64.Vec2, f ConsumableFields, audio *events.AudioQueue, trauma *events.TraumaQueue) {
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: pos})
		ecs.Insert(w, ent, render.AtlasSprite{Color: render.Opaque()})
		ecs.Insert(w, ent, DamageRegion{Size: f.ExplosionSize})
		ecs.Insert(w, ent, DamageRegionOwner{Owner: owner})
		ecs.Insert(w, ent, Lifetime{TicksRemaining: f.ExplosionLifetime})
		render.SetAnimation(w, ent, "explosion", nil, 0, false)
	})
	if audio != nil {
		audio.Push(events.PlaySound{Handle: f.ExplosionSound, Volume: 1})
	}
	if trauma != nil {
		trauma.Push(f.ExplosionTrauma)
	}
}
