package items

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/asset"
	"brawlcore/internal/ecs"
	"brawlcore/internal/hydration"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
	"brawlcore/internal/render"
)

// Gun is the per-gun-entity state: remaining ammo and the cooldown timer
// ItemUsed checks before firing again (spec.md 4.9).
type Gun struct {
	Ammo           int
	CooldownTicks  int
	AnimationTicks int
}

// GunFields is this element kind's KindFields payload.
type GunFields struct {
	MaxAmmo          int
	CooldownTicks    int
	MuzzleOffset     mgl64.Vec2
	Kickback         float64
	BulletSpeed      float64
	BulletLifetime   int
	BulletDamageSize mgl64.Vec2
}

// Bullet marks a fired projectile; Velocity drives its straight-line
// motion each tick (bullets have no gravity/collision integration, just a
// DamageRegion riding along with them).
type Bullet struct {
	Velocity mgl64.Vec2
}

const gunKind = "gun"

// InstallGun registers the gun hydrator under the "gun" element kind.
func InstallGun(reg *hydration.Registry) {
	reg.Register(gunKind, hydrateGun)
}

func hydrateGun(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(GunFields)
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, playerctl.Grabbable{})
		ecs.Insert(w, ent, Gun{Ammo: f.MaxAmmo})
		ecs.Insert(w, ent, f)
		ecs.Insert(w, ent, hydration.DehydrateOutOfBounds{Spawner: spawnerEnt})
	})
	return nil
}

// GunSystem: on ItemUsed, if cooldown has elapsed and ammo remains, fires a
// bullet from the holder's muzzle offset (mirrored by sprite flip),
// imparts kickback to the holder, decrements ammo and resets cooldown.
// Every tick the cooldown counts down regardless.
func GunSystem(fields func(ecs.Entity) (GunFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[Gun](w).ForEach(func(idx uint32, gun Gun) {
			ent := ecs.EntityAt(w, idx)
			f, ok := fields(ent)
			if !ok {
				return
			}
			if gun.CooldownTicks > 0 {
				gun.CooldownTicks--
			}

			if _, used := ecs.Get[playerctl.ItemUsed](w, ent); used {
				ecs.QueueRemove[playerctl.ItemUsed](cmds, ent)
				if gun.CooldownTicks == 0 && gun.Ammo > 0 {
					fireGun(w, cmds, ent, f)
					gun.Ammo--
					gun.CooldownTicks = f.CooldownTicks
				}
			}

			ecs.QueueInsert(cmds, ent, gun)
		})
		return nil
	}
}

func fireGun(w *ecs.World, cmds *ecs.Commands, gun ecs.Entity, f GunFields) {
	held, ok := ecs.Get[playerctl.Held](w, gun)
	if !ok {
		return
	}
	muzzle := f.MuzzleOffset
	dir := mgl64.Vec2{1, 0}
	if atlas, ok := ecs.Get[render.AtlasSprite](w, held.Holder); ok && atlas.FlipX {
		muzzle[0] = -muzzle[0]
		dir[0] = -1
	}
	holderT, _ := ecs.Get[physics.Transform](w, held.Holder)
	spawnPos := holderT.Translation.Add(muzzle)
	vel := dir.Mul(f.BulletSpeed)

	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: spawnPos})
		ecs.Insert(w, ent, Bullet{Velocity: vel})
		ecs.Insert(w, ent, DamageRegion{Size: f.BulletDamageSize})
		ecs.Insert(w, ent, DamageRegionOwner{Owner: held.Holder})
		ecs.Insert(w, ent, Lifetime{TicksRemaining: f.BulletLifetime})
	})

	if holderBody := ecs.GetPtr[physics.KinematicBody](w, held.Holder); holderBody != nil {
		holderBody.Velocity = holderBody.Velocity.Sub(dir.Mul(f.Kickback))
	}
}

// BulletSystem advances every Bullet's straight-line motion.
func BulletSystem(dt float64) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.With2(w, func(ent ecs.Entity, b *Bullet, t *physics.Transform) {
			t.Translation = t.Translation.Add(b.Velocity.Mul(dt))
		})
		return nil
	}
}
