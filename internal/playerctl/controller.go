package playerctl

import (
	"brawlcore/internal/ecs"
	"brawlcore/internal/physics"
)

// LethalDamage is queued onto a player entity by combat/hazard systems; the
// controller system transitions to Dead and queues the player's despawn
// the tick it sees this, applied as soon as the controller system returns.
type LethalDamage struct{}

// incapacitateZoneTag is the CollisionWorld zone tag that forces the
// Incapacitated state (e.g. slippery seaweed, per spec.md 4.7/4.9).
const incapacitateZoneTag = "incapacitate"

// Tuning is the handful of per-session constants the controller system
// needs that aren't fixed protocol constants (internal/proto), since a
// character's jump strength/move speed come from its resolved asset
// metadata, not a global.
type Tuning struct {
	JumpImpulse float64
	MoveSpeed   float64
}

// System returns the Update-stage system driving every InputSlot-bearing
// player: state machine transitions, jump impulse, horizontal move speed,
// and the grab/drop/use inventory protocol (spec.md 4.7).
func System(tuning Tuning) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		cw := ecs.MustResource[*physics.CollisionWorld](w)

		ecs.GetStore[InputSlot](w).ForEach(func(idx uint32, slot InputSlot) {
			ent := ecs.EntityAt(w, idx)
			body := ecs.GetPtr[physics.KinematicBody](w, ent)
			collider := ecs.GetPtr[physics.Collider](w, ent)
			transform := ecs.GetPtr[physics.Transform](w, ent)
			state := ecs.GetPtr[PlayerState](w, ent)
			inv := ecs.GetPtr[Inventory](w, ent)
			if body == nil || collider == nil || transform == nil || state == nil || inv == nil {
				return
			}

			_, incapacitated := cw.TagAt(transform.Translation, incapacitateZoneTag)
			_, lethal := ecs.Get[LethalDamage](w, ent)

			ctx := tickContext{
				grounded:      body.IsOnGround,
				moveX:         slot.Control.MoveDirection.X(),
				incapacitated: incapacitated,
				lethalDamage:  lethal,
				jumpPressed:   slot.Control.Jump.JustPressed,
			}
			next := nextState(state.Current, ctx)

			if next == Dead && state.Current != Dead {
				state.Current = Dead
				cmds.Despawn(ent)
				return
			}
			if slot.Control.Jump.JustPressed && body.IsOnGround {
				next = Midair
				body.Velocity[1] = -tuning.JumpImpulse
			}
			state.Current = next

			if next == Incapacitated {
				return
			}

			body.Velocity[0] = slot.Control.MoveDirection.X() * tuning.MoveSpeed

			handleInventory(w, cmds, cw, ent, slot.Control, inv)
		})
		return nil
	}
}

func handleInventory(w *ecs.World, cmds *ecs.Commands, cw *physics.CollisionWorld, ent ecs.Entity, ctl PlayerControl, inv *Inventory) {
	if ctl.Grab.JustPressed {
		if inv.Has() && ctl.MoveDirection.Y() > 0 {
			item := inv.Item
			inv.Item = ecs.Null
			ecs.QueueRemove[Held](cmds, item)
			ecs.QueueInsert(cmds, item, ItemDropped{Player: ent})
			return
		}
		if !inv.Has() {
			if item, ok := findGrabbableOverlap(w, cw, ent); ok {
				inv.Item = item
				ecs.QueueInsert(cmds, item, Held{Holder: ent})
				ecs.QueueInsert(cmds, item, ItemGrabbed{Player: ent})
			}
		}
	}

	if ctl.Shoot.JustPressed && inv.Has() {
		ecs.QueueInsert(cmds, inv.Item, ItemUsed{Owner: ent})
	}
}

func findGrabbableOverlap(w *ecs.World, cw *physics.CollisionWorld, ent ecs.Entity) (ecs.Entity, bool) {
	for _, other := range cw.ActorCollisions(ent) {
		if !ecs.Has[Grabbable](w, other) {
			continue
		}
		if ecs.Has[Held](w, other) {
			continue
		}
		return other, true
	}
	return ecs.Null, false
}
