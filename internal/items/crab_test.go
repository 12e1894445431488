package items

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"brawlcore/internal/ecs"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
	"brawlcore/internal/randx"
)

func newCrabWorld(t *testing.T, state CrabState, extra Crab) (*ecs.World, ecs.Entity) {
	t.Helper()
	w := ecs.NewWorld()
	ent := w.Spawn()
	extra.State = state
	ecs.Insert(w, ent, physics.Transform{Translation: extra.SpawnPoint})
	ecs.Insert(w, ent, physics.KinematicBody{})
	ecs.Insert(w, ent, extra)
	return w, ent
}

func Test_CrabSystem_SpawningSettlesIntoPausedWithBoundedPauseTicks(t *testing.T) {
	// Arrange
	w, ent := newCrabWorld(t, CrabSpawning, Crab{SpawnPoint: mgl64.Vec2{0, 0}})
	f := CrabFields{MaxPauseTicks: 10, StrayRadius: 100, StrayTimeoutTicks: 50}
	lookup := func(ecs.Entity) (CrabFields, bool) { return f, true }
	rng := randx.New(7)
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, CrabSystem(rng, lookup)(w, cmds))
	cmds.Apply(w)

	// Assert
	c, _ := ecs.Get[Crab](w, ent)
	assert.Equal(t, CrabPaused, c.State)
	assert.GreaterOrEqual(t, c.PauseTicks, 0)
	assert.LessOrEqual(t, c.PauseTicks, f.MaxPauseTicks)
}

func Test_CrabSystem_PausedCountsDownThenWalksInRngChosenDirection(t *testing.T) {
	// Arrange: two independently-seeded streams, one feeding the system and
	// one used as the expectation oracle, proving the walk direction is
	// exactly whatever rng.Bool() yields next (determinism, not a specific
	// hardcoded bit pattern).
	w, ent := newCrabWorld(t, CrabPaused, Crab{SpawnPoint: mgl64.Vec2{0, 0}, PauseTicks: 1})
	f := CrabFields{StrayRadius: 100, StrayTimeoutTicks: 50}
	lookup := func(ecs.Entity) (CrabFields, bool) { return f, true }

	rng := randx.New(42)
	oracle := randx.New(42)
	expectedLeft := oracle.Bool()
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, CrabSystem(rng, lookup)(w, cmds))
	cmds.Apply(w)

	// Assert
	c, _ := ecs.Get[Crab](w, ent)
	assert.Equal(t, CrabWalking, c.State)
	assert.Equal(t, expectedLeft, c.WalkLeft)
}

func Test_CrabSystem_WalksAtConfiguredSpeedInChosenDirection(t *testing.T) {
	w, ent := newCrabWorld(t, CrabWalking, Crab{SpawnPoint: mgl64.Vec2{0, 0}, WalkLeft: true})
	f := CrabFields{WalkSpeed: 20, StrayRadius: 100, StrayTimeoutTicks: 50}
	lookup := func(ecs.Entity) (CrabFields, bool) { return f, true }
	rng := randx.New(7)
	cmds := ecs.NewCommands()

	assert.NoError(t, CrabSystem(rng, lookup)(w, cmds))
	cmds.Apply(w)

	body, _ := ecs.Get[physics.KinematicBody](w, ent)
	assert.Equal(t, -20.0, body.Velocity.X())
}

func Test_CrabSystem_FleesNearbyPlayerTowardOppositeDirection(t *testing.T) {
	// Arrange
	w, ent := newCrabWorld(t, CrabWalking, Crab{SpawnPoint: mgl64.Vec2{0, 0}})
	player := w.Spawn()
	ecs.Insert(w, player, playerctl.PlayerState{Current: playerctl.Idle})
	ecs.Insert(w, player, physics.Transform{Translation: mgl64.Vec2{10, 0}})

	f := CrabFields{FleeSpeed: 30, StrayRadius: 100, StrayTimeoutTicks: 50}
	lookup := func(ecs.Entity) (CrabFields, bool) { return f, true }
	rng := randx.New(7)
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, CrabSystem(rng, lookup)(w, cmds))
	cmds.Apply(w)

	// Assert: player is to the right (+X), so the crab flees left (-X).
	c, _ := ecs.Get[Crab](w, ent)
	assert.Equal(t, CrabFleeing, c.State)
	body, _ := ecs.Get[physics.KinematicBody](w, ent)
	assert.Equal(t, -30.0, body.Velocity.X())
}

func Test_CrabSystem_StrayingTooLongTriggersDespawnAndRespawnAtSpawnPoint(t *testing.T) {
	// Arrange: already far past StrayRadius for StrayTimeoutTicks-1 ticks;
	// one more tick should push it over the timeout.
	w, ent := newCrabWorld(t, CrabWalking, Crab{
		SpawnPoint: mgl64.Vec2{0, 0},
		StrayTicks: 4,
	})
	ecs.Insert(w, ent, physics.Transform{Translation: mgl64.Vec2{500, 0}})

	f := CrabFields{WalkSpeed: 5, StrayRadius: 50, StrayTimeoutTicks: 5}
	lookup := func(ecs.Entity) (CrabFields, bool) { return f, true }
	rng := randx.New(7)
	cmds := ecs.NewCommands()

	// Act: this tick crosses the timeout, flips to Despawning.
	assert.NoError(t, CrabSystem(rng, lookup)(w, cmds))
	cmds.Apply(w)
	c, _ := ecs.Get[Crab](w, ent)
	assert.Equal(t, CrabDespawning, c.State)

	// Act: next tick, Despawning resets position to spawn and re-enters
	// Spawning.
	cmds2 := ecs.NewCommands()
	assert.NoError(t, CrabSystem(rng, lookup)(w, cmds2))
	cmds2.Apply(w)

	// Assert
	c, _ = ecs.Get[Crab](w, ent)
	assert.Equal(t, CrabSpawning, c.State)
	tr, _ := ecs.Get[physics.Transform](w, ent)
	assert.Equal(t, mgl64.Vec2{0, 0}, tr.Translation)
}
