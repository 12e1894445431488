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

// Urchin is a stationary contact hazard with no locomotion state, per
// original_source/src/core/elements/urchin.rs: a plain AABB overlap check
// against any actor deals damage. The original's brief non-lethal stun is
// simplified here to lethal contact damage, consistent with how this
// module's only "player took damage" signal (playerctl.LethalDamage) is
// modeled — a non-lethal hit-stun state machine is out of scope until a
// health/stun system exists to drive it.
type Urchin struct{}

// UrchinFields is this element kind's KindFields payload.
type UrchinFields struct {
	Size      mgl64.Vec2
	StunTicks int
}

const urchinKind = "urchin"

// InstallUrchin registers the urchin hydrator.
func InstallUrchin(reg *hydration.Registry) {
	reg.Register(urchinKind, hydrateUrchin)
}

func hydrateUrchin(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(UrchinFields)
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, Urchin{})
		ecs.Insert(w, ent, f)
	})
	return nil
}

// UrchinSystem deals lethal contact damage (a single-state element needs no
// FSM: only a plain overlap check, per original_source/urchin.rs).
func UrchinSystem(fields func(ecs.Entity) (UrchinFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[Urchin](w).ForEach(func(idx uint32, _ Urchin) {
			ent := ecs.EntityAt(w, idx)
			f, ok := fields(ent)
			if !ok {
				return
			}
			t, ok := ecs.Get[physics.Transform](w, ent)
			if !ok {
				return
			}
			urchinRect := physics.Rect{Pos: t.Translation, W: f.Size.X(), H: f.Size.Y()}
			ecs.With2(w, func(playerEnt ecs.Entity, collider *physics.Collider, _ *playerctl.PlayerState) {
				playerRect := physics.Rect{Pos: collider.Pos, W: collider.Width, H: collider.Height}
				if urchinRect.Overlaps(playerRect) {
					ecs.QueueInsert(cmds, playerEnt, playerctl.LethalDamage{})
				}
			})
		})
		return nil
	}
}

// SnailState is the snail critter's finite state, per
// original_source/src/core/elements/snail.rs.
type SnailState int

const (
	SnailWalking SnailState = iota
	SnailFlipped
)

// Snail is a slow-walking critter that flips onto its back when hit and
// becomes a pushable shell until it rights itself after RightingTicks.
type Snail struct {
	State        SnailState
	WalkLeft     bool
	RightingLeft int
}

// SnailFields is this element kind's KindFields payload.
type SnailFields struct {
	WalkSpeed     float64
	RightingTicks int
}

const snailKind = "snail"

// InstallSnail registers the snail hydrator.
func InstallSnail(reg *hydration.Registry) {
	reg.Register(snailKind, hydrateSnail)
}

func hydrateSnail(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	f, _ := meta.KindFields.(SnailFields)
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, physics.Collider{Pos: sp.Pos, Width: meta.BodySize.X(), Height: meta.BodySize.Y()})
		ecs.Insert(w, ent, physics.KinematicBody{HasMass: true, HasFriction: true, FrictionLerp: 0.9, StopThreshold: 1, IsSpawning: true})
		ecs.Insert(w, ent, Snail{})
		ecs.Insert(w, ent, f)
		// The snail element's original source inserts a default
		// slippery_seaweed component here too (an apparent typo in that
		// source); we follow the spec's decision and insert only the
		// zero value, nothing more.
		ecs.Insert(w, ent, SlipperySeaweed{})
	})
	return nil
}

// SnailSystem: while Walking, moves at WalkSpeed; a LethalDamage marker
// (used here as "was hit," not "should die" — see DESIGN.md) flips it onto
// its back; while Flipped, it becomes a pushable shell (friction only, no
// self-driven velocity) until RightingTicks elapses.
func SnailSystem(hitMarker func(ecs.Entity) bool, fields func(ecs.Entity) (SnailFields, bool)) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[Snail](w).ForEach(func(idx uint32, s Snail) {
			ent := ecs.EntityAt(w, idx)
			f, ok := fields(ent)
			if !ok {
				return
			}
			body := ecs.GetPtr[physics.KinematicBody](w, ent)
			if body == nil {
				return
			}

			if s.State == SnailWalking && hitMarker(ent) {
				s.State = SnailFlipped
				s.RightingLeft = f.RightingTicks
			}

			switch s.State {
			case SnailWalking:
				dir := 1.0
				if s.WalkLeft {
					dir = -1.0
				}
				body.Velocity[0] = dir * f.WalkSpeed
			case SnailFlipped:
				s.RightingLeft--
				if s.RightingLeft <= 0 {
					s.State = SnailWalking
				}
			}

			ecs.QueueInsert(cmds, ent, s)
		})
		return nil
	}
}

// Buss (boombox) is a decorative, grabbable prop that plays an ambient
// sound while held, with no gameplay effect beyond that, per
// original_source/src/core/elements/buss.rs.
type Buss struct {
	Sound asset.AssetHandle
}

const bussKind = "buss"

// InstallBuss registers the buss hydrator.
func InstallBuss(reg *hydration.Registry) {
	reg.Register(bussKind, hydrateBuss)
}

func hydrateBuss(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, playerctl.Grabbable{})
		ecs.Insert(w, ent, Buss{Sound: meta.Sounds["ambient"]})
	})
	return nil
}

// BussSystem pushes an ambient PlaySound event every tick a buss is
// currently held (ItemGrabbed/ItemDropped drive start/stop, per spec.md
// 4.9: "plays an ambient sound while held").
func BussSystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		audio, ok := ecs.GetResource[*events.AudioQueue](w)
		if !ok {
			return nil
		}
		ecs.GetStore[Buss](w).ForEach(func(idx uint32, b Buss) {
			ent := ecs.EntityAt(w, idx)
			if _, held := ecs.Get[playerctl.Held](w, ent); held {
				audio.Push(events.PlaySound{Handle: b.Sound, Volume: 0.5})
			}
		})
		return nil
	}
}

// Decoration is a non-interactive, sprite-only map element: no
// KinematicBody, no Item. Exercises the hydrator registry's simplest path
// (spec.md 4.9 / SUPPLEMENTED FEATURES).
type Decoration struct{}

const decorationKind = "decoration"

// InstallDecoration registers the decoration hydrator.
func InstallDecoration(reg *hydration.Registry) {
	reg.Register(decorationKind, hydrateDecoration)
}

func hydrateDecoration(w *ecs.World, cmds *ecs.Commands, spawnerEnt ecs.Entity, sp hydration.Spawner, meta asset.ElementMeta) error {
	cmds.Spawn(func(w *ecs.World, ent ecs.Entity) {
		ecs.Insert(w, ent, physics.Transform{Translation: sp.Pos})
		ecs.Insert(w, ent, render.AtlasSprite{Atlas: meta.Atlas, Color: render.Opaque()})
		ecs.Insert(w, ent, Decoration{})
	})
	return nil
}
