// Package hydration implements map hydration/dehydration (spec.md 4.6): a
// map's element placements stay as lightweight, not-yet-hydrated spawner
// entities until a PreUpdate system dispatches each one, by its element
// kind, to a registered hydrator that builds out the full entity. A
// dehydration rule despawns anything that wanders out of bounds and clears
// its spawner's hydrated flag, which is what gives map items automatic
// respawn.
//
// Grounded on spec.md 4.6 directly; totodo713-vamplite has no analogous
// "lazy placement, dispatch by kind" system (its EntityManager spawns
// fully-formed entities up front), so the hydrator-registry shape here is
// this module's own, built in the teacher's plain map/struct idiom rather
// than adapted from a specific file.
package hydration

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/asset"
	"brawlcore/internal/ecs"
	"brawlcore/internal/physics"
)

// Spawner marks an entity as a not-yet-(or no-longer-)hydrated element
// placement: where it goes and which metadata record describes it.
type Spawner struct {
	Element  asset.ElementHandle
	Pos      mgl64.Vec2
	Hydrated bool
}

// DehydrateOutOfBounds marks an entity for despawn, and its spawner for
// re-hydration, once it leaves the slack-expanded map rectangle.
type DehydrateOutOfBounds struct {
	Spawner ecs.Entity
}

// Bounds is the map's world-space rectangle, read as a resource by the
// dehydration system. The configured slack is added on every side so an
// item doesn't get killed the instant it crosses the visible map edge.
type Bounds struct {
	Min, Max mgl64.Vec2
	Slack    float64
}

func (b Bounds) contains(p mgl64.Vec2) bool {
	return p.X() >= b.Min.X()-b.Slack && p.X() <= b.Max.X()+b.Slack &&
		p.Y() >= b.Min.Y()-b.Slack && p.Y() <= b.Max.Y()+b.Slack
}

// HydratorFunc builds out one element placement: it reads meta, attaches
// whatever components the element kind needs (Transform, Sprite,
// KinematicBody, Item*, kind-specific state), and returns an error only for
// conditions other than "asset not ready" (that case is handled by the
// dispatch system re-trying next tick instead of calling the hydrator at
// all).
type HydratorFunc func(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp Spawner, meta asset.ElementMeta) error

// Registry is the open, kind-keyed table of hydrators. items.Install fills
// it once, from session.New, in a fixed call order, so which hydrator
// exists for a kind never depends on map load order.
type Registry struct {
	byKind map[string]HydratorFunc
}

// NewRegistry returns an empty hydrator registry.
func NewRegistry() *Registry {
	return &Registry{byKind: map[string]HydratorFunc{}}
}

// Register associates fn with kind, overwriting any previous registration.
func (r *Registry) Register(kind string, fn HydratorFunc) {
	r.byKind[kind] = fn
}

// Lookup returns the hydrator for kind, if any.
func (r *Registry) Lookup(kind string) (HydratorFunc, bool) {
	fn, ok := r.byKind[kind]
	return fn, ok
}

// HydrateSystem returns a PreUpdate system that dispatches every
// not-yet-hydrated Spawner to its kind's hydrator. A spawner whose element
// handle doesn't resolve yet (asset.ErrMissingAsset) is left unhydrated and
// retried next tick, per spec.md 7's MissingAsset handling.
func HydrateSystem(registry *Registry, resolver asset.Resolver) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		var dispatchErr error
		ecs.GetStore[Spawner](w).ForEach(func(idx uint32, sp Spawner) {
			if sp.Hydrated || dispatchErr != nil {
				return
			}
			spawnerEnt := entityFor(w, idx)
			meta, err := resolver.ResolveElement(sp.Element)
			if err != nil {
				return
			}
			fn, ok := registry.Lookup(meta.Kind)
			if !ok {
				return
			}
			if err := fn(w, cmds, spawnerEnt, sp, meta); err != nil {
				dispatchErr = err
				return
			}
			ecs.QueueInsert(cmds, spawnerEnt, Spawner{Element: sp.Element, Pos: sp.Pos, Hydrated: true})
		})
		return dispatchErr
	}
}

// DehydrationSystem returns a PostUpdate system that despawns any entity
// carrying DehydrateOutOfBounds once its transform leaves the map's
// slack-expanded bounds, and clears its spawner's hydrated flag so the next
// HydrateSystem run respawns it.
func DehydrationSystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		bounds, ok := ecs.GetResource[Bounds](w)
		if !ok {
			return nil
		}
		ecs.With2(w, func(ent ecs.Entity, t *physics.Transform, tag *DehydrateOutOfBounds) {
			if bounds.contains(t.Translation) {
				return
			}
			cmds.Despawn(ent)
			if w.IsAlive(tag.Spawner) {
				if sp, ok := ecs.Get[Spawner](w, tag.Spawner); ok {
					sp.Hydrated = false
					ecs.QueueInsert(cmds, tag.Spawner, sp)
				}
			}
		})
		return nil
	}
}

// entityFor reconstructs the live entity at a dense-iteration index. Safe
// because Spawner.ForEach only visits indices currently present in that
// store, which by construction are currently alive entities.
func entityFor(w *ecs.World, idx uint32) ecs.Entity {
	return ecs.EntityAt(w, idx)
}
