package items

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"brawlcore/internal/ecs"
	"brawlcore/internal/events"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
)

func newConsumableWorld(t *testing.T) (*ecs.World, *events.AudioQueue, *events.TraumaQueue) {
	t.Helper()
	w := ecs.NewWorld()
	ecs.InsertResource(w, physics.NewCollisionWorld())
	audio := events.NewAudioQueue()
	trauma := events.NewTraumaQueue()
	ecs.InsertResource(w, audio)
	ecs.InsertResource(w, trauma)
	return w, audio, trauma
}

func Test_ConsumableSystem_ArmsAtArmDelayAndPushesSound(t *testing.T) {
	// Arrange
	w, audio, _ := newConsumableWorld(t)
	ent := w.Spawn()
	ecs.Insert(w, ent, physics.Transform{Translation: mgl64.Vec2{0, 0}})
	ecs.Insert(w, ent, ThrownConsumable{Age: 2})

	f := ConsumableFields{ArmDelayTicks: 3, FuseTicks: 10}
	lookup := func(ecs.Entity) (ConsumableFields, bool) { return f, true }
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, ConsumableSystem(1, lookup)(w, cmds))
	cmds.Apply(w)

	// Assert
	tc, _ := ecs.Get[ThrownConsumable](w, ent)
	assert.True(t, tc.Armed)
	assert.Equal(t, 1, len(audio.Drain()))
}

func Test_ConsumableSystem_TravelsInStraightLineBeforeArming(t *testing.T) {
	w, _, _ := newConsumableWorld(t)
	ent := w.Spawn()
	ecs.Insert(w, ent, physics.Transform{Translation: mgl64.Vec2{0, 0}})
	ecs.Insert(w, ent, ThrownConsumable{Velocity: mgl64.Vec2{4, 0}})

	f := ConsumableFields{ArmDelayTicks: 100, FuseTicks: 200}
	lookup := func(ecs.Entity) (ConsumableFields, bool) { return f, true }
	cmds := ecs.NewCommands()

	assert.NoError(t, ConsumableSystem(2, lookup)(w, cmds))
	cmds.Apply(w)

	tr, _ := ecs.Get[physics.Transform](w, ent)
	assert.Equal(t, 8.0, tr.Translation.X())
}

func Test_ConsumableSystem_ExplodesOnPlayerContactWhenArmed(t *testing.T) {
	// Arrange
	w, audio, trauma := newConsumableWorld(t)
	cw := ecs.MustResource[*physics.CollisionWorld](w)

	ent := w.Spawn()
	ecs.Insert(w, ent, physics.Transform{Translation: mgl64.Vec2{0, 0}})
	ecs.Insert(w, ent, ThrownConsumable{Armed: true, Age: 5})
	cw.RegisterActor(ent, physics.Rect{Pos: mgl64.Vec2{0, 0}, W: 4, H: 4})

	player := w.Spawn()
	ecs.Insert(w, player, playerctl.PlayerState{Current: playerctl.Idle})
	cw.RegisterActor(player, physics.Rect{Pos: mgl64.Vec2{1, 1}, W: 4, H: 4})

	f := ConsumableFields{ArmDelayTicks: 1, FuseTicks: 100, ExplosionTrauma: 0.5, ExplosionLifetime: 10}
	lookup := func(ecs.Entity) (ConsumableFields, bool) { return f, true }
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, ConsumableSystem(1, lookup)(w, cmds))
	cmds.Apply(w)

	// Assert
	assert.False(t, w.IsAlive(ent))
	assert.Equal(t, 1, len(audio.Drain()))
	assert.Equal(t, []float64{0.5}, trauma.Drain())

	var regions int
	ecs.GetStore[DamageRegion](w).ForEach(func(idx uint32, _ DamageRegion) { regions++ })
	assert.Equal(t, 1, regions)
}

func Test_ConsumableSystem_ExplodesOnFuseExpiryWithoutContact(t *testing.T) {
	w, _, _ := newConsumableWorld(t)
	ent := w.Spawn()
	ecs.Insert(w, ent, physics.Transform{Translation: mgl64.Vec2{0, 0}})
	ecs.Insert(w, ent, ThrownConsumable{Armed: true, Age: 9})

	f := ConsumableFields{ArmDelayTicks: 1, FuseTicks: 8}
	lookup := func(ecs.Entity) (ConsumableFields, bool) { return f, true }
	cmds := ecs.NewCommands()

	assert.NoError(t, ConsumableSystem(1, lookup)(w, cmds))
	cmds.Apply(w)

	assert.False(t, w.IsAlive(ent))
}

func Test_ThrowItem_GivesVelocityToReleasedItem(t *testing.T) {
	w := ecs.NewWorld()
	item := w.Spawn()

	ThrowItem(w, item, mgl64.Vec2{3, -2})

	tc, ok := ecs.Get[ThrownConsumable](w, item)
	assert.True(t, ok)
	assert.Equal(t, mgl64.Vec2{3, -2}, tc.Velocity)
}
