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

// SwordState is the sword's finite state (spec.md 4.9).
type SwordState int

const (
	SwordIdle SwordState = iota
	SwordSwinging
	SwordCooldown
)

// Sword is the per-sword-entity state: Frame counts ticks within the
// current state.
type Sword struct {
	State SwordState
	Frame int
}

// SwordFields is this element kind's KindFields payload, resolved from
// asset.ElementMeta.
type SwordFields struct {
	SwingFrames    int
	CooldownFrames int
	DamageOffset   mgl64.Vec2
	DamageSize     mgl64.Vec2
}

const swordKind = "sword"

// InstallSword registers the sword hydrator under the "sword" element kind.
func InstallSword(reg *hydration.Registry) {
	reg.Register(swordKind, hydrateSword)
}

func hydrateSword(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(SwordFields)
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, playerctl.Grabbable{})
		ecs.Insert(w, ent, Sword{})
		ecs.Insert(w, ent, f)
		ecs.Insert(w, ent, hydration.DehydrateOutOfBounds{Spawner: spawnerEnt})
	})
	return nil
}

// SwordSystem advances every Sword's state machine: ItemUsed from Idle
// starts a swing; each swing frame spawns a short-lived DamageRegion at the
// configured offset (mirrored by the wielder's sprite flip); the swing ends
// into Cooldown, then back to Idle.
func SwordSystem(fields func(ecs.Entity) (SwordFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[Sword](w).ForEach(func(idx uint32, sw Sword) {
			ent := ecs.EntityAt(w, idx)
			f, ok := fields(ent)
			if !ok {
				return
			}

			if _, hasUse := ecs.Get[playerctl.ItemUsed](w, ent); hasUse {
				if sw.State == SwordIdle {
					sw.State = SwordSwinging
					sw.Frame = 0
				}
				ecs.QueueRemove[playerctl.ItemUsed](cmds, ent)
			}

			switch sw.State {
			case SwordSwinging:
				spawnSwordDamage(w, cmds, ent, f)
				sw.Frame++
				if sw.Frame >= f.SwingFrames {
					sw.State = SwordCooldown
					sw.Frame = 0
				}
			case SwordCooldown:
				sw.Frame++
				if sw.Frame >= f.CooldownFrames {
					sw.State = SwordIdle
					sw.Frame = 0
				}
			}

			ecs.QueueInsert(cmds, ent, sw)
		})
		return nil
	}
}

func spawnSwordDamage(w *ecs.World, cmds *ecs.Commands, sword ecs.Entity, f SwordFields) {
	held, ok := ecs.Get[playerctl.Held](w, sword)
	if !ok {
		return
	}
	offset := f.DamageOffset
	if atlas, ok := ecs.Get[render.AtlasSprite](w, held.Holder); ok && atlas.FlipX {
		offset[0] = -offset[0]
	}
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: mustTranslation(w, held.Holder)})
		ecs.Insert(w, ent, DamageRegion{Offset: offset, Size: f.DamageSize})
		ecs.Insert(w, ent, DamageRegionOwner{Owner: held.Holder})
		ecs.Insert(w, ent, Lifetime{TicksRemaining: 2})
	})
}

func mustTranslation(w *ecs.World, ent ecs.Entity) mgl64.Vec2 {
	t, _ := ecs.Get[physics.Transform](w, ent)
	return t.Translation
}
