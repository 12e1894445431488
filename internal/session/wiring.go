package session

import (
	"brawlcore/internal/asset"
	"brawlcore/internal/attach"
	"brawlcore/internal/debugdraw"
	"brawlcore/internal/ecs"
	"brawlcore/internal/hydration"
	"brawlcore/internal/items"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
	"brawlcore/internal/proto"
	"brawlcore/internal/randx"
	"brawlcore/internal/render"
)

// registerSystems wires every system into the scheduler in the fixed stage
// order spec.md 4.10 and this repo's packages assume: input ingestion first,
// hydration before gameplay, item/controller logic before physics
// integration (so this tick's intent is what gets integrated), damage and
// cleanup after, attachments last.
//
// Several systems here take a resource or a per-entity "fields" lookup as a
// constructor argument (internal/items' X-Fields closures, internal/randx's
// *Rng). Registering that argument once, captured at session.New time,
// would alias the World live when New ran — but Restore swaps in a
// different *ecs.World whose resources are independently cloned pointers
// (physics.CollisionWorld.CloneResource, randx.Rng.Clone, ...), so a
// closure built from the original World's pointers would silently keep
// reading stale state after any restore. Every such system is instead
// wrapped so the lookup/resource is rebuilt from the *ecs.World the
// scheduler actually passes in on that call.
func (s *Session) registerSystems(phys asset.PhysicsConstants) {
	sched := s.sched
	dt := proto.Dt
	registry := ecs.MustResource[*hydration.Registry](s.world)
	resolver := s.info.Meta.Resolver

	sched.Add(ecs.StageFirst, "debugdraw.clear", nil, clearDebugDrawSystem())
	sched.Add(ecs.StageFirst, "session.ingestInput", nil, ingestInputSystem())
	if s.info.Meta.AiInput != nil {
		sched.Add(ecs.StageFirst, "playerctl.ai", nil, playerctl.AiSystem(s.info.Meta.AiInput))
	}

	sched.Add(ecs.StagePreUpdate, "hydration.hydrate", nil, hydration.HydrateSystem(registry, resolver))

	sched.Add(ecs.StageUpdate, "playerctl.controller", nil, playerctl.System(s.info.Meta.Tuning))
	sched.Add(ecs.StageUpdate, "items.drop", nil, wrapFields(items.DropSystem))
	sched.Add(ecs.StageUpdate, "items.sword", nil, wrapFields(items.SwordSystem))
	sched.Add(ecs.StageUpdate, "items.gun", nil, wrapFields(items.GunSystem))
	sched.Add(ecs.StageUpdate, "items.bullet", nil, items.BulletSystem(dt))
	sched.Add(ecs.StageUpdate, "items.sproinger", nil, wrapFields(items.SproingerSystem))
	sched.Add(ecs.StageUpdate, "items.slippery", nil, items.SlipperySystem())
	sched.Add(ecs.StageUpdate, "items.crab", nil, wireCrab())
	sched.Add(ecs.StageUpdate, "items.urchin", nil, wrapFields(items.UrchinSystem))
	sched.Add(ecs.StageUpdate, "items.snail", nil, wireSnail())
	sched.Add(ecs.StageUpdate, "items.buss", nil, items.BussSystem())
	sched.Add(ecs.StageUpdate, "items.consumable", nil, wireConsumable(dt))
	sched.Add(ecs.StageUpdate, "physics.integrate", nil, physics.System(s.gravity, dt))
	sched.Add(ecs.StageUpdate, "render.advanceAnimations", nil, render.AdvanceAnimations(dt))
	sched.Add(ecs.StageUpdate, "playerctl.animation", nil, playerctl.AnimationSystem(s.animationLookup))

	sched.Add(ecs.StagePostUpdate, "items.damage", nil, items.DamageSystem())
	sched.Add(ecs.StagePostUpdate, "items.lifetime", nil, items.LifetimeSystem())
	sched.Add(ecs.StagePostUpdate, "hydration.dehydrate", nil, hydration.DehydrationSystem())
	sched.Add(ecs.StagePostUpdate, "items.clearMarkers", nil, items.ClearItemMarkersSystem())

	sched.Add(ecs.StageLast, "attach.playerBody", nil, attach.PlayerBodySystem(s.bodyBobLookup, s.info.Meta.HeadOffset))
	sched.Add(ecs.StageLast, "attach.sync", nil, attach.System())
}

// clearDebugDrawSystem empties the debug draw queue at the start of every
// tick (spec.md 4.11). It clears unconditionally; the session's DebugDraw
// setting is not consulted.
func clearDebugDrawSystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.MustResource[*debugdraw.Queue](w).Clear()
		return nil
	}
}

// wrapFields adapts an items.XSystem(fields func(ecs.Entity) (T, bool))
// constructor into a SystemFunc whose fields lookup is rebuilt from the
// live world on every call, rather than closed over once.
func wrapFields[T any](sys func(fields func(ecs.Entity) (T, bool)) ecs.SystemFunc) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		fields := func(ent ecs.Entity) (T, bool) { return ecs.Get[T](w, ent) }
		return sys(fields)(w, cmds)
	}
}

// wireCrab rebuilds both the *randx.Rng resource and the CrabFields lookup
// from the live world on every call, for the same restore-staleness reason
// wrapFields exists.
func wireCrab() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		rng := ecs.MustResource[*randx.Rng](w)
		fields := func(ent ecs.Entity) (items.CrabFields, bool) { return ecs.Get[items.CrabFields](w, ent) }
		return items.CrabSystem(rng, fields)(w, cmds)
	}
}

// wireSnail rebuilds the hit-marker predicate and the SnailFields lookup
// from the live world on every call.
func wireSnail() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		hitMarker := func(ent ecs.Entity) bool {
			_, ok := ecs.Get[playerctl.LethalDamage](w, ent)
			return ok
		}
		fields := func(ent ecs.Entity) (items.SnailFields, bool) { return ecs.Get[items.SnailFields](w, ent) }
		return items.SnailSystem(hitMarker, fields)(w, cmds)
	}
}

// wireConsumable rebuilds the ConsumableFields lookup from the live world
// on every call.
func wireConsumable(dt float64) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		fields := func(ent ecs.Entity) (items.ConsumableFields, bool) { return ecs.Get[items.ConsumableFields](w, ent) }
		return items.ConsumableSystem(dt, fields)(w, cmds)
	}
}
