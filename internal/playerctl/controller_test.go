package playerctl

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"brawlcore/internal/ecs"
	"brawlcore/internal/physics"
)

func newPlayer(t *testing.T, w *ecs.World, pos mgl64.Vec2, onGround bool) ecs.Entity {
	t.Helper()
	ent := w.Spawn()
	ecs.Insert(w, ent, InputSlot{})
	ecs.Insert(w, ent, PlayerState{Current: Idle})
	ecs.Insert(w, ent, Inventory{Item: ecs.Null})
	ecs.Insert(w, ent, physics.Transform{Translation: pos})
	ecs.Insert(w, ent, physics.Collider{Pos: pos, Width: 8, Height: 8})
	ecs.Insert(w, ent, physics.KinematicBody{IsOnGround: onGround})
	return ent
}

func newWorldWithCollisionWorld(t *testing.T) (*ecs.World, *physics.CollisionWorld) {
	t.Helper()
	w := ecs.NewWorld()
	cw := physics.NewCollisionWorld()
	ecs.InsertResource(w, cw)
	return w, cw
}

func Test_System_JumpWhileGroundedAppliesImpulseAndTransitionsMidair(t *testing.T) {
	// Arrange
	w, _ := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{0, 0}, true)
	UpdateInput(w, ent, mgl64.Vec2{}, RawButtons{Jump: true})

	// Act
	err := System(Tuning{JumpImpulse: 5, MoveSpeed: 2})(w, ecs.NewCommands())

	// Assert
	assert.NoError(t, err)
	body, _ := ecs.Get[physics.KinematicBody](w, ent)
	assert.Equal(t, -5.0, body.Velocity.Y())
	state, _ := ecs.Get[PlayerState](w, ent)
	assert.Equal(t, Midair, state.Current)
}

func Test_System_GroundedWithMoveInputIsWalkAndSetsVelocity(t *testing.T) {
	w, _ := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{0, 0}, true)
	UpdateInput(w, ent, mgl64.Vec2{1, 0}, RawButtons{})

	assert.NoError(t, System(Tuning{MoveSpeed: 3})(w, ecs.NewCommands()))

	state, _ := ecs.Get[PlayerState](w, ent)
	assert.Equal(t, Walk, state.Current)
	body, _ := ecs.Get[physics.KinematicBody](w, ent)
	assert.Equal(t, 3.0, body.Velocity.X())
}

func Test_System_LethalDamageDespawnsPlayer(t *testing.T) {
	// Arrange
	w, _ := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{0, 0}, true)
	ecs.Insert(w, ent, LethalDamage{})
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, System(Tuning{})(w, cmds))
	cmds.Apply(w)

	// Assert
	assert.False(t, w.IsAlive(ent))
}

func Test_System_IncapacitateZoneOverridesStateAndSkipsMovement(t *testing.T) {
	// Arrange
	w, cw := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{5, 5}, true)
	zoneOwner := w.Spawn()
	cw.RegisterZone("incapacitate", zoneOwner, physics.Rect{Pos: mgl64.Vec2{0, 0}, W: 10, H: 10})
	UpdateInput(w, ent, mgl64.Vec2{1, 0}, RawButtons{})

	// Act
	assert.NoError(t, System(Tuning{MoveSpeed: 9})(w, ecs.NewCommands()))

	// Assert
	state, _ := ecs.Get[PlayerState](w, ent)
	assert.Equal(t, Incapacitated, state.Current)
	body, _ := ecs.Get[physics.KinematicBody](w, ent)
	assert.Equal(t, 0.0, body.Velocity.X())
}

func Test_System_GrabPicksUpOverlappingGrabbableItem(t *testing.T) {
	// Arrange
	w, cw := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{0, 0}, true)
	cw.RegisterActor(ent, physics.Rect{Pos: mgl64.Vec2{0, 0}, W: 8, H: 8})
	item := w.Spawn()
	ecs.Insert(w, item, Grabbable{})
	cw.RegisterActor(item, physics.Rect{Pos: mgl64.Vec2{2, 2}, W: 4, H: 4})
	UpdateInput(w, ent, mgl64.Vec2{}, RawButtons{Grab: true})
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, System(Tuning{})(w, cmds))
	cmds.Apply(w)

	// Assert
	inv, _ := ecs.Get[Inventory](w, ent)
	assert.Equal(t, item, inv.Item)
	_, held := ecs.Get[Held](w, item)
	assert.True(t, held)
	_, grabbed := ecs.Get[ItemGrabbed](w, item)
	assert.True(t, grabbed)
}

func Test_System_GrabIgnoresAlreadyHeldItem(t *testing.T) {
	w, cw := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{0, 0}, true)
	cw.RegisterActor(ent, physics.Rect{Pos: mgl64.Vec2{0, 0}, W: 8, H: 8})
	item := w.Spawn()
	ecs.Insert(w, item, Grabbable{})
	ecs.Insert(w, item, Held{Holder: w.Spawn()})
	cw.RegisterActor(item, physics.Rect{Pos: mgl64.Vec2{2, 2}, W: 4, H: 4})
	UpdateInput(w, ent, mgl64.Vec2{}, RawButtons{Grab: true})

	assert.NoError(t, System(Tuning{})(w, ecs.NewCommands()))

	inv, _ := ecs.Get[Inventory](w, ent)
	assert.True(t, inv.Item.IsNull())
}

func Test_System_DropDirectionReleasesHeldItem(t *testing.T) {
	// Arrange
	w, _ := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{0, 0}, true)
	item := w.Spawn()
	ecs.Insert(w, item, Held{Holder: ent})
	inv, _ := ecs.Get[Inventory](w, ent)
	inv.Item = item
	ecs.Insert(w, ent, inv)
	UpdateInput(w, ent, mgl64.Vec2{0, 1}, RawButtons{Grab: true})
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, System(Tuning{})(w, cmds))
	cmds.Apply(w)

	// Assert
	gotInv, _ := ecs.Get[Inventory](w, ent)
	assert.True(t, gotInv.Item.IsNull())
	_, stillHeld := ecs.Get[Held](w, item)
	assert.False(t, stillHeld)
	_, dropped := ecs.Get[ItemDropped](w, item)
	assert.True(t, dropped)
}

func Test_System_ShootQueuesItemUsedOnHeldItem(t *testing.T) {
	// Arrange
	w, _ := newWorldWithCollisionWorld(t)
	ent := newPlayer(t, w, mgl64.Vec2{0, 0}, true)
	item := w.Spawn()
	inv, _ := ecs.Get[Inventory](w, ent)
	inv.Item = item
	ecs.Insert(w, ent, inv)
	UpdateInput(w, ent, mgl64.Vec2{}, RawButtons{Shoot: true})
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, System(Tuning{})(w, cmds))
	cmds.Apply(w)

	// Assert
	used, ok := ecs.Get[ItemUsed](w, item)
	assert.True(t, ok)
	assert.Equal(t, ent, used.Owner)
}
