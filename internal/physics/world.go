package physics

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
)

// HitKind classifies the result of a collide_solids sample. It carries one
// extra case beyond TileKind (HitSolidEntity) because a query can also land
// on a static solid *entity* rather than a tile, and callers that want to
// know which entity they hit need that distinguished from a tile hit.
type HitKind int

const (
	HitEmpty HitKind = iota
	HitJumpThrough
	HitSolidTile
	HitSolidEntity
)

func (k HitKind) severity() int {
	switch k {
	case HitSolidTile, HitSolidEntity:
		return 2
	case HitJumpThrough:
		return 1
	default:
		return 0
	}
}

// Hit is the outcome of one collide_solids sample: a kind plus, for
// HitSolidEntity, the entity that was hit.
type Hit struct {
	Kind   HitKind
	Entity ecs.Entity
}

func combineHit(a, b Hit) Hit {
	if b.Kind.severity() > a.Kind.severity() {
		return b
	}
	return a
}

func tileToHit(k TileKind) Hit {
	switch k {
	case TileSolid:
		return Hit{Kind: HitSolidTile}
	case TileJumpThrough:
		return Hit{Kind: HitJumpThrough}
	default:
		return Hit{Kind: HitEmpty}
	}
}

// taggedZone is a named, non-solid rectangle region (e.g. an incapacitate
// region) that TagAt can be queried against, independent of solidity.
type taggedZone struct {
	entity ecs.Entity
	rect   Rect
}

// CollisionWorld holds every tile layer, static solid, live actor rectangle
// and tagged zone that collide_solids, actor_collisions, solid_at and
// tag_at query against (spec.md 4.4).
type CollisionWorld struct {
	Layers []*TileLayer
	Solids []Rect

	actors map[ecs.Entity]Rect
	zones  map[string][]taggedZone
}

// NewCollisionWorld returns an empty collision world.
func NewCollisionWorld() *CollisionWorld {
	return &CollisionWorld{
		actors: map[ecs.Entity]Rect{},
		zones:  map[string][]taggedZone{},
	}
}

// AddLayer registers a tile layer.
func (cw *CollisionWorld) AddLayer(l *TileLayer) {
	cw.Layers = append(cw.Layers, l)
}

// AddSolid registers a static solid rectangle.
func (cw *CollisionWorld) AddSolid(r Rect) {
	cw.Solids = append(cw.Solids, r)
}

// RegisterActor records ent's current rectangle for actor_collisions
// queries. Called once when a kinematic body spawns (C5 step 2).
func (cw *CollisionWorld) RegisterActor(ent ecs.Entity, r Rect) {
	cw.actors[ent] = r
}

// UpdateActor refreshes ent's rectangle after it moves.
func (cw *CollisionWorld) UpdateActor(ent ecs.Entity, r Rect) {
	if _, ok := cw.actors[ent]; ok {
		cw.actors[ent] = r
	}
}

// UnregisterActor removes ent from actor-collision tracking, e.g. on
// despawn.
func (cw *CollisionWorld) UnregisterActor(ent ecs.Entity) {
	delete(cw.actors, ent)
}

// RegisterZone adds a tagged, non-solid region owned by ent.
func (cw *CollisionWorld) RegisterZone(tag string, ent ecs.Entity, r Rect) {
	cw.zones[tag] = append(cw.zones[tag], taggedZone{entity: ent, rect: r})
}

// UnregisterZone removes every zone owned by ent under tag.
func (cw *CollisionWorld) UnregisterZone(tag string, ent ecs.Entity) {
	zs := cw.zones[tag]
	out := zs[:0]
	for _, z := range zs {
		if z.entity != ent {
			out = append(out, z)
		}
	}
	cw.zones[tag] = out
}

func (cw *CollisionWorld) sampleTiles(p mgl64.Vec2) Hit {
	best := Hit{Kind: HitEmpty}
	for _, layer := range cw.Layers {
		best = combineHit(best, tileToHit(layer.KindAtWorld(p)))
	}
	return best
}

// sortedActorEntities returns cw.actors' keys in ascending Entity.Index
// order. Ranging over cw.actors directly would leak Go's randomized map
// iteration order into Hit.Entity and ActorCollisions' result order;
// callers that act on "the first match" (e.g. playerctl's grab handling)
// need the same entity picked every run given the same world state, per
// spec.md 4.2's bitwise-equal-world guarantee.
func (cw *CollisionWorld) sortedActorEntities() []ecs.Entity {
	out := make([]ecs.Entity, 0, len(cw.actors))
	for ent := range cw.actors {
		out = append(out, ent)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index() < out[j].Index() })
	return out
}

func (cw *CollisionWorld) sampleSolidEntities(pos mgl64.Vec2, w, h float64, exclude ecs.Entity) Hit {
	box := Rect{Pos: pos, W: w, H: h}
	best := Hit{Kind: HitEmpty}
	for _, s := range cw.Solids {
		if box.Overlaps(s) {
			best = combineHit(best, Hit{Kind: HitSolidEntity})
		}
	}
	for _, ent := range cw.sortedActorEntities() {
		if ent == exclude {
			continue
		}
		if box.Overlaps(cw.actors[ent]) {
			best = combineHit(best, Hit{Kind: HitSolidEntity, Entity: ent})
		}
	}
	return best
}

func tileStepCount(extent, tileSize float64) int {
	if tileSize <= 0 {
		return 0
	}
	n := int(math.Ceil(extent / tileSize))
	if n < 1 {
		n = 1
	}
	return n
}

// CollideSolids samples the rectangle at pos/w/h against every tile layer
// (corners, plus edge steps when the rectangle spans more than one tile
// along an axis) and falls back to an AABB overlap test against solid
// entities, per spec.md 4.4. exclude is left out of the solid-entity test so
// an actor never collides with its own registered rectangle.
func (cw *CollisionWorld) CollideSolids(pos mgl64.Vec2, w, h float64, exclude ecs.Entity) Hit {
	best := Hit{Kind: HitEmpty}
	corners := [4]mgl64.Vec2{
		{pos.X(), pos.Y()},
		{pos.X() + w, pos.Y()},
		{pos.X(), pos.Y() + h},
		{pos.X() + w, pos.Y() + h},
	}
	for _, c := range corners {
		best = combineHit(best, cw.sampleTiles(c))
	}

	for _, layer := range cw.Layers {
		ts := layer.TileSize
		if w > ts.X() {
			steps := tileStepCount(w, ts.X())
			for i := 0; i <= steps; i++ {
				x := pos.X() + math.Min(float64(i)*ts.X(), w)
				best = combineHit(best, tileToHit(layer.KindAtWorld(mgl64.Vec2{x, pos.Y()})))
				best = combineHit(best, tileToHit(layer.KindAtWorld(mgl64.Vec2{x, pos.Y() + h})))
			}
		}
		if h > ts.Y() {
			steps := tileStepCount(h, ts.Y())
			for i := 0; i <= steps; i++ {
				y := pos.Y() + math.Min(float64(i)*ts.Y(), h)
				best = combineHit(best, tileToHit(layer.KindAtWorld(mgl64.Vec2{pos.X(), y})))
				best = combineHit(best, tileToHit(layer.KindAtWorld(mgl64.Vec2{pos.X() + w, y})))
			}
		}
	}

	best = combineHit(best, cw.sampleSolidEntities(pos, w, h, exclude))
	return best
}

// ActorCollisions returns every registered actor (other than ent itself)
// whose rectangle overlaps ent's current rectangle, ordered by ascending
// Entity.Index so the result is stable run-to-run regardless of Go's map
// iteration order.
func (cw *CollisionWorld) ActorCollisions(ent ecs.Entity) []ecs.Entity {
	r, ok := cw.actors[ent]
	if !ok {
		return nil
	}
	var out []ecs.Entity
	for _, other := range cw.sortedActorEntities() {
		if other == ent {
			continue
		}
		if r.Overlaps(cw.actors[other]) {
			out = append(out, other)
		}
	}
	return out
}

// SolidAt is a point query: true if pos lands on a solid tile or inside a
// solid entity rectangle.
func (cw *CollisionWorld) SolidAt(pos mgl64.Vec2) bool {
	if cw.sampleTiles(pos).Kind == HitSolidTile {
		return true
	}
	for _, s := range cw.Solids {
		if s.ContainsPoint(pos) {
			return true
		}
	}
	return false
}

// TagAt returns the first tagged zone under tag containing pos, if any.
func (cw *CollisionWorld) TagAt(pos mgl64.Vec2, tag string) (ecs.Entity, bool) {
	for _, z := range cw.zones[tag] {
		if z.rect.ContainsPoint(pos) {
			return z.entity, true
		}
	}
	return ecs.Null, false
}

// Clone returns an independent deep copy, used by World.Snapshot via this
// resource's CloneResource hook.
func (cw *CollisionWorld) Clone() *CollisionWorld {
	c := NewCollisionWorld()
	for _, l := range cw.Layers {
		c.Layers = append(c.Layers, l.Clone())
	}
	c.Solids = append([]Rect(nil), cw.Solids...)
	for ent, r := range cw.actors {
		c.actors[ent] = r
	}
	for tag, zs := range cw.zones {
		c.zones[tag] = append([]taggedZone(nil), zs...)
	}
	return c
}

// CloneResource satisfies the ecs resource clone hook (see
// internal/ecs/resources.go), so a *CollisionWorld stored as a world
// resource deep-clones on Snapshot instead of aliasing.
func (cw *CollisionWorld) CloneResource() any {
	return cw.Clone()
}
