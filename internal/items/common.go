// Package items implements the representative item/element kinds spec.md
// 4.9 lists (sword, projectile weapon, thrown consumable, sproinger,
// slippery surface, crab critter) plus the urchin/snail/buss/decoration
// kinds original_source/src/core/elements supplies to fill in the
// distillation's "urchin, snail, etc." line. Every kind follows the same
// shape: hydrate, per-tick behavior, on-use effect, on-drop cleanup. None
// of these systems touch a renderer or audio device directly — they mutate
// components and push to internal/events' queues, per spec.md 4.9's
// "common contract."
package items

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
)

// DamageRegion is a transient rectangle (in the owner's local offset) that
// kills any player it overlaps, per spec.md S5/4.9.
type DamageRegion struct {
	Offset mgl64.Vec2
	Size   mgl64.Vec2
}

// DamageRegionOwner names the entity that spawned a DamageRegion, so a hit
// never damages its own source (a sword can't hit its wielder).
type DamageRegionOwner struct {
	Owner ecs.Entity
}

// Lifetime counts a transient entity's remaining ticks; LifetimeSystem
// despawns it at zero. Used for damage regions, bullets, explosion
// entities.
type Lifetime struct {
	TicksRemaining int
}

// LifetimeSystem decrements every Lifetime by one tick and despawns
// entities that reach zero.
func LifetimeSystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[Lifetime](w).ForEach(func(idx uint32, lt Lifetime) {
			ent := ecs.EntityAt(w, idx)
			lt.TicksRemaining--
			if lt.TicksRemaining <= 0 {
				cmds.Despawn(ent)
				return
			}
			ecs.QueueInsert(cmds, ent, lt)
		})
		return nil
	}
}

// ClearItemMarkersSystem removes every ItemGrabbed/ItemDropped marker still
// present at the end of PostUpdate. Per-kind systems (DropSystem, BussSystem
// via Held) react to these within the same tick they're queued; this system
// runs last among them so every reaction has already seen the marker, per
// playerctl.ItemGrabbed/ItemDropped's "read it... and remove it once
// handled" contract — centralized here since most kinds have no reaction of
// their own and would otherwise leave the marker dangling.
func ClearItemMarkersSystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[playerctl.ItemGrabbed](w).ForEach(func(idx uint32, _ playerctl.ItemGrabbed) {
			ecs.QueueRemove[playerctl.ItemGrabbed](cmds, ecs.EntityAt(w, idx))
		})
		ecs.GetStore[playerctl.ItemDropped](w).ForEach(func(idx uint32, _ playerctl.ItemDropped) {
			ecs.QueueRemove[playerctl.ItemDropped](cmds, ecs.EntityAt(w, idx))
		})
		return nil
	}
}

func worldRect(t physics.Transform, size mgl64.Vec2) physics.Rect {
	return physics.Rect{Pos: t.Translation, W: size.X(), H: size.Y()}
}

func damageRegionRect(t physics.Transform, dr DamageRegion) physics.Rect {
	return physics.Rect{Pos: t.Translation.Add(dr.Offset), W: dr.Size.X(), H: dr.Size.Y()}
}

// DamageSystem kills any player whose collider overlaps a live DamageRegion
// not owned by that same player, by inserting playerctl.LethalDamage.
func DamageSystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		var regions []struct {
			rect  physics.Rect
			owner ecs.Entity
		}
		ecs.With2(w, func(ent ecs.Entity, dr *DamageRegion, t *physics.Transform) {
			owner := ent
			if o, ok := ecs.Get[DamageRegionOwner](w, ent); ok {
				owner = o.Owner
			}
			regions = append(regions, struct {
				rect  physics.Rect
				owner ecs.Entity
			}{damageRegionRect(*t, *dr), owner})
		})
		if len(regions) == 0 {
			return nil
		}
		ecs.With2(w, func(ent ecs.Entity, collider *physics.Collider, _ *playerctl.PlayerState) {
			playerRect := physics.Rect{Pos: collider.Pos, W: collider.Width, H: collider.Height}
			for _, r := range regions {
				if r.owner == ent {
					continue
				}
				if playerRect.Overlaps(r.rect) {
					ecs.QueueInsert(cmds, ent, playerctl.LethalDamage{})
					break
				}
			}
		})
		return nil
	}
}
