// Package session implements the session driver (spec.md 4.10, C10): the
// one entry point an embedder uses to create a world, feed it input, and
// step it forward a fixed tick at a time. It owns resource initialization,
// per-tick system wiring in the fixed stage order every other package's
// systems assume, and the snapshot/restore/restart surface spec.md 9
// describes. No rendering, audio device, network transport or asset
// decoding happens here (spec.md 1) — only resolved metadata records and
// plain data come in; Transform/Sprite/Path2d/event-queue values go out.
package session

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/asset"
	"brawlcore/internal/attach"
	"brawlcore/internal/debugdraw"
	"brawlcore/internal/diag"
	"brawlcore/internal/ecs"
	"brawlcore/internal/events"
	"brawlcore/internal/hydration"
	"brawlcore/internal/items"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
	"brawlcore/internal/proto"
	"brawlcore/internal/randx"
	"brawlcore/internal/render"
)

// ElementPlacement is one map element's initial spawner: which metadata
// record describes it and where it starts, per spec.md 4.6.
type ElementPlacement struct {
	Handle asset.ElementHandle
	Pos    mgl64.Vec2
}

// CoreMeta bundles everything session.New needs beyond the map/player
// handles themselves: the embedder's asset Resolver, the pre-built
// collision world, the map's out-of-bounds rectangle, the initial element
// placements, controller tuning, and the handful of knobs (RNG seed, debug
// drawing, an optional AI input source) that aren't part of any resolved
// metadata record.
//
// Decoding tile/solid geometry from a map asset is explicitly out of scope
// (spec.md 1); CollisionWorld is therefore supplied already built rather
// than derived from asset.MapMeta, which carries only the physics/camera
// constant records (see internal/asset's doc comment on MapMeta).
type CoreMeta struct {
	Resolver   asset.Resolver
	Collision  *physics.CollisionWorld
	Bounds     hydration.Bounds
	Placements []ElementPlacement
	Tuning     playerctl.Tuning
	HeadOffset mgl64.Vec2

	// RngSeed seeds the session's deterministic RNG; zero uses
	// randx.DefaultSeed, matching the original's GlobalRng::default.
	RngSeed uint64
	// AiInput, if set, drives every AiPlayer entity's input. Sessions with
	// no AI players leave this nil.
	AiInput playerctl.AiInputFunc
	// DebugDraw is carried with the rest of the initial conditions. New
	// does not install it as a resource and no system reads it; the debug
	// draw queue is cleared and filled regardless of its value.
	DebugDraw bool

	// Logger receives MissingComponent/MissingAsset-class warnings this
	// package itself observes (spec.md 7). The zero value is silent.
	Logger diag.Logger
}

// GameSessionInfo is the full set of initial conditions session.New
// consumes, and what restart() recreates the world from, per spec.md 4.10
// / 6.
type GameSessionInfo struct {
	Meta       CoreMeta
	Map        asset.MapHandle
	PlayerInfo [proto.MaxPlayers]asset.PlayerHandle
}

// Session owns one simulation's world, its fixed-stage scheduler, and the
// metadata needed to resolve animation banks without internal/playerctl or
// internal/attach importing internal/asset directly.
type Session struct {
	info    GameSessionInfo
	world   *ecs.World
	sched   *ecs.Scheduler
	gravity mgl64.Vec2
	logger  diag.Logger
	metrics *Metrics

	playerMeta map[ecs.Entity]asset.PlayerCharacterMeta
}

// New creates a world from info: resolves the map's physics constants,
// installs every item hydrator, spawns the initial element placements as
// not-yet-hydrated Spawners, spawns each present player, initializes every
// resource spec.md 4.10 names, and registers every system in fixed stage
// order.
func New(info GameSessionInfo) (*Session, error) {
	mapMeta, err := info.Meta.Resolver.ResolveMap(info.Map)
	if err != nil {
		return nil, fmt.Errorf("session: resolve map: %w", err)
	}
	phys := withPhysicsDefaults(mapMeta.Physics)

	s := &Session{
		info:       info,
		world:      ecs.NewWorld(),
		sched:      ecs.NewScheduler(),
		gravity:    phys.Gravity,
		logger:     info.Meta.Logger,
		metrics:    NewMetrics(),
		playerMeta: map[ecs.Entity]asset.PlayerCharacterMeta{},
	}

	s.initResources(phys)
	s.spawnPlacements()
	s.spawnPlayers(phys)
	s.registerSystems(phys)

	return s, nil
}

func withPhysicsDefaults(p asset.PhysicsConstants) asset.PhysicsConstants {
	if p.Gravity == (mgl64.Vec2{}) {
		p.Gravity = mgl64.Vec2{0, proto.DefaultGravityY}
	}
	if p.TerminalVelocity == 0 {
		p.TerminalVelocity = proto.DefaultTerminalVelocity
	}
	if p.FrictionLerp == 0 {
		p.FrictionLerp = proto.DefaultFrictionLerp
	}
	if p.StopThreshold == 0 {
		p.StopThreshold = proto.DefaultStopThreshold
	}
	return p
}

func (s *Session) initResources(phys asset.PhysicsConstants) {
	w := s.world
	ecs.InsertResource(w, Time{})
	ecs.InsertResource(w, PlayerInputs{})
	ecs.InsertResource(w, s.info.Map)
	ecs.InsertResource(w, phys)

	seed := s.info.Meta.RngSeed
	if seed == 0 {
		ecs.InsertResource(w, randx.NewDefault())
	} else {
		ecs.InsertResource(w, randx.New(seed))
	}

	ecs.InsertResource(w, events.NewAudioQueue())
	ecs.InsertResource(w, events.NewTraumaQueue())
	ecs.InsertResource(w, debugdraw.NewQueue())
	ecs.InsertResource(w, attach.NewTracker())
	ecs.InsertResource(w, s.info.Meta.Bounds)

	collision := s.info.Meta.Collision
	if collision == nil {
		collision = physics.NewCollisionWorld()
	}
	ecs.InsertResource(w, collision)
}

func (s *Session) spawnPlacements() {
	registry := hydration.NewRegistry()
	items.Install(registry)
	ecs.InsertResource(s.world, registry)

	for _, p := range s.info.Meta.Placements {
		ent := s.world.Spawn()
		ecs.Insert(s.world, ent, hydration.Spawner{Element: p.Handle, Pos: p.Pos})
	}
}

func (s *Session) spawnPlayers(phys asset.PhysicsConstants) {
	var inputs PlayerInputs
	for slot, handle := range s.info.PlayerInfo {
		if handle.IsNil() {
			inputs.Entities[slot] = ecs.Null
			continue
		}
		meta, err := s.info.Meta.Resolver.ResolvePlayer(handle)
		if err != nil {
			s.logger.Warnf("session: player slot %d: %s", slot, err)
			inputs.Entities[slot] = ecs.Null
			continue
		}
		ent := s.spawnPlayerEntity(meta, phys)
		s.playerMeta[ent] = meta
		inputs.Entities[slot] = ent
	}
	ecs.InsertResource(s.world, inputs)
}

// spawnPlayerEntity builds the body entity (layer 0) carrying every
// gameplay component, plus one attached sub-entity per additional character
// layer (fin, face, ...), each following the body via
// attach.PlayerBodyAttachment (spec.md 4.7/4.8).
func (s *Session) spawnPlayerEntity(meta asset.PlayerCharacterMeta, phys asset.PhysicsConstants) ecs.Entity {
	w := s.world
	body := w.Spawn()
	ecs.Insert(w, body, physics.Transform{Translation: mgl64.Vec2{}, Scale: mgl64.Vec2{1, 1}})
	ecs.Insert(w, body, physics.Collider{Width: meta.BodySize.X(), Height: meta.BodySize.Y()})
	ecs.Insert(w, body, physics.KinematicBody{
		HasMass:          true,
		TerminalVelocity: phys.TerminalVelocity,
		HasFriction:      true,
		FrictionLerp:     phys.FrictionLerp,
		StopThreshold:    phys.StopThreshold,
		IsSpawning:       true,
	})
	ecs.Insert(w, body, playerctl.InputSlot{})
	ecs.Insert(w, body, playerctl.PlayerState{Current: playerctl.Idle})
	ecs.Insert(w, body, playerctl.Inventory{Item: ecs.Null})
	if len(meta.Layers) > 0 {
		ecs.Insert(w, body, render.AtlasSprite{Atlas: meta.Layers[0].Atlas, Color: render.Opaque()})
	}

	for _, layer := range meta.Layers[minInt(1, len(meta.Layers)):] {
		child := w.Spawn()
		ecs.Insert(w, child, physics.Transform{Scale: mgl64.Vec2{1, 1}})
		ecs.Insert(w, child, render.AtlasSprite{Atlas: layer.Atlas, Color: render.Opaque()})
		ecs.Insert(w, child, attach.PlayerBodyAttachment{
			Player:        body,
			Head:          layer.Name == "face",
			SyncAnimation: true,
			SyncColor:     true,
		})
	}

	return body
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// animationLookup implements playerctl.AnimationLookup from the resolved
// PlayerCharacterMeta stored at spawn time (layer 0, the body layer, is
// the one every state's animation bank key is resolved against).
func (s *Session) animationLookup(player ecs.Entity, key string) (frames []int, fps int, loop bool, ok bool) {
	meta, ok := s.playerMeta[player]
	if !ok || len(meta.Layers) == 0 {
		return nil, 0, false, false
	}
	anim, ok := meta.Layers[0].Animations[key]
	if !ok {
		return nil, 0, false, false
	}
	frames = make([]int, len(anim.Frames))
	for i, f := range anim.Frames {
		frames[i] = f.AtlasIndex
	}
	return frames, anim.FPS, true, true
}

// bodyBobLookup implements attach.BodyBobLookup: it finds the
// AnimationFrame within the body layer's current animation whose AtlasIndex
// matches frameIndex (the value AnimationSystem wrote into the body's
// AtlasSprite) and returns its configured BodyOffset.
func (s *Session) bodyBobLookup(player ecs.Entity, animKey string, frameIndex int) (x, y float64, ok bool) {
	meta, ok := s.playerMeta[player]
	if !ok || len(meta.Layers) == 0 {
		return 0, 0, false
	}
	anim, ok := meta.Layers[0].Animations[animKey]
	if !ok {
		return 0, 0, false
	}
	for _, f := range anim.Frames {
		if f.AtlasIndex == frameIndex {
			return f.BodyOffset.X(), f.BodyOffset.Y(), true
		}
	}
	return 0, 0, false
}

// UpdateInput gives fn exclusive access to this tick's PlayerInputs
// resource, per spec.md 4.10's update_input(f).
func (s *Session) UpdateInput(fn func(*PlayerInputs)) {
	inputs := ecs.MustResource[PlayerInputs](s.world)
	fn(&inputs)
	ecs.InsertResource(s.world, inputs)
}

// Advance runs one fixed tick: every stage in order, then advances Time by
// proto.Dt, per spec.md 4.10. A non-nil error is always a BorrowConflict (or
// a system wiring bug) propagating out of the scheduler — spec.md 7 treats
// this as the one fatal, non-recoverable condition; the caller should stop
// calling Advance.
func (s *Session) Advance() error {
	started := time.Now()

	if err := s.sched.Advance(s.world); err != nil {
		s.metrics.BorrowConflicts.Inc()
		s.logger.Errorf("session: advance: %s", err)
		return err
	}

	t := ecs.MustResource[Time](s.world)
	t.Elapsed += proto.Dt
	t.Tick++
	ecs.InsertResource(s.world, t)

	s.metrics.observeTick(started, s.world.Len(), s.playerCount())
	return nil
}

func (s *Session) playerCount() int {
	n := 0
	ecs.GetStore[playerctl.PlayerState](s.world).ForEach(func(uint32, playerctl.PlayerState) { n++ })
	return n
}

// World exposes the live world for the embedder to read outputs from
// (Transform, Sprite/AtlasSprite, AnimatedSprite, Path2d, event queues)
// after Advance returns, per spec.md 6.
func (s *Session) World() *ecs.World { return s.world }

// Metrics returns the session's Prometheus collectors and their dedicated
// registry.
func (s *Session) Metrics() *Metrics { return s.metrics }

// Snapshot captures the current world, per spec.md 4.10's snapshot().
func (s *Session) Snapshot() *ecs.Snapshot {
	return s.world.Snapshot()
}

// Restore swaps the session's world for an independent copy of snap, per
// spec.md 4.10's restore(). playerMeta is keyed by entity handle, not by
// world pointer, and Clone preserves every entity's index/generation
// exactly, so the existing map stays valid against the restored world
// without rebuilding.
func (s *Session) Restore(snap *ecs.Snapshot) {
	s.world = snap.Restore()
}

// Restart recreates the session from its originally supplied
// GameSessionInfo, per spec.md 4.10's restart().
func (s *Session) Restart() error {
	fresh, err := New(s.info)
	if err != nil {
		return err
	}
	*s = *fresh
	return nil
}
