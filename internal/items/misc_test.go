package items

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"brawlcore/internal/asset"
	"brawlcore/internal/ecs"
	"brawlcore/internal/events"
	"brawlcore/internal/hydration"
	"brawlcore/internal/physics"
	"brawlcore/internal/playerctl"
)

func Test_UrchinSystem_DealsLethalContactDamageToOverlappingPlayer(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	urchin := w.Spawn()
	ecs.Insert(w, urchin, physics.Transform{Translation: mgl64.Vec2{0, 0}})
	ecs.Insert(w, urchin, Urchin{})

	player := w.Spawn()
	ecs.Insert(w, player, physics.Collider{Pos: mgl64.Vec2{1, 1}, Width: 2, Height: 2})
	ecs.Insert(w, player, playerctl.PlayerState{Current: playerctl.Idle})

	f := UrchinFields{Size: mgl64.Vec2{5, 5}}
	lookup := func(ecs.Entity) (UrchinFields, bool) { return f, true }
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, UrchinSystem(lookup)(w, cmds))
	cmds.Apply(w)

	// Assert
	_, dead := ecs.Get[playerctl.LethalDamage](w, player)
	assert.True(t, dead)
}

func Test_UrchinSystem_IgnoresPlayerOutOfRange(t *testing.T) {
	w := ecs.NewWorld()
	urchin := w.Spawn()
	ecs.Insert(w, urchin, physics.Transform{Translation: mgl64.Vec2{0, 0}})
	ecs.Insert(w, urchin, Urchin{})

	player := w.Spawn()
	ecs.Insert(w, player, physics.Collider{Pos: mgl64.Vec2{500, 500}, Width: 2, Height: 2})
	ecs.Insert(w, player, playerctl.PlayerState{Current: playerctl.Idle})

	f := UrchinFields{Size: mgl64.Vec2{5, 5}}
	lookup := func(ecs.Entity) (UrchinFields, bool) { return f, true }
	cmds := ecs.NewCommands()

	assert.NoError(t, UrchinSystem(lookup)(w, cmds))
	cmds.Apply(w)

	_, dead := ecs.Get[playerctl.LethalDamage](w, player)
	assert.False(t, dead)
}

func Test_SnailSystem_FlipsOntoItsBackWhenHit(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	ent := w.Spawn()
	ecs.Insert(w, ent, Snail{State: SnailWalking})
	ecs.Insert(w, ent, physics.KinematicBody{})

	f := SnailFields{WalkSpeed: 5, RightingTicks: 3}
	lookup := func(ecs.Entity) (SnailFields, bool) { return f, true }
	hit := func(ecs.Entity) bool { return true }
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, SnailSystem(hit, lookup)(w, cmds))
	cmds.Apply(w)

	// Assert
	s, _ := ecs.Get[Snail](w, ent)
	assert.Equal(t, SnailFlipped, s.State)
	// The flip tick itself already counts down once from RightingTicks.
	assert.Equal(t, 2, s.RightingLeft)
}

func Test_SnailSystem_RightsItselfAfterRightingTicksElapse(t *testing.T) {
	w := ecs.NewWorld()
	ent := w.Spawn()
	ecs.Insert(w, ent, Snail{State: SnailFlipped, RightingLeft: 1})
	ecs.Insert(w, ent, physics.KinematicBody{})

	f := SnailFields{WalkSpeed: 5, RightingTicks: 3}
	lookup := func(ecs.Entity) (SnailFields, bool) { return f, true }
	noHit := func(ecs.Entity) bool { return false }
	cmds := ecs.NewCommands()

	assert.NoError(t, SnailSystem(noHit, lookup)(w, cmds))
	cmds.Apply(w)

	s, _ := ecs.Get[Snail](w, ent)
	assert.Equal(t, SnailWalking, s.State)
}

func Test_SnailSystem_WalksAtConfiguredSpeedWhileUpright(t *testing.T) {
	w := ecs.NewWorld()
	ent := w.Spawn()
	ecs.Insert(w, ent, Snail{State: SnailWalking, WalkLeft: false})
	ecs.Insert(w, ent, physics.KinematicBody{})

	f := SnailFields{WalkSpeed: 7, RightingTicks: 3}
	lookup := func(ecs.Entity) (SnailFields, bool) { return f, true }
	noHit := func(ecs.Entity) bool { return false }
	cmds := ecs.NewCommands()

	assert.NoError(t, SnailSystem(noHit, lookup)(w, cmds))
	cmds.Apply(w)

	body, _ := ecs.Get[physics.KinematicBody](w, ent)
	assert.Equal(t, 7.0, body.Velocity.X())
}

func Test_BussSystem_PushesAmbientSoundOnlyWhileHeld(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	audio := events.NewAudioQueue()
	ecs.InsertResource(w, audio)

	sound := asset.NewHandle()
	held := w.Spawn()
	ecs.Insert(w, held, Buss{Sound: asset.AssetHandle(sound)})
	ecs.Insert(w, held, playerctl.Held{Holder: w.Spawn()})

	notHeld := w.Spawn()
	ecs.Insert(w, notHeld, Buss{Sound: asset.AssetHandle(sound)})
	cmds := ecs.NewCommands()

	// Act
	assert.NoError(t, BussSystem()(w, cmds))
	cmds.Apply(w)

	// Assert
	sounds := audio.Drain()
	assert.Len(t, sounds, 1)
}

func Test_BussSystem_SilentWithNoAudioQueueResource(t *testing.T) {
	w := ecs.NewWorld()
	ent := w.Spawn()
	ecs.Insert(w, ent, Buss{Sound: asset.AssetHandle(asset.NewHandle())})
	ecs.Insert(w, ent, playerctl.Held{Holder: w.Spawn()})
	cmds := ecs.NewCommands()

	assert.NoError(t, BussSystem()(w, cmds))
}

func Test_HydrateDecoration_InsertsSpriteOnlyNoBodyNoItem(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	spawnerEnt := w.Spawn()
	cmds := ecs.NewCommands()
	sp := hydration.Spawner{Pos: mgl64.Vec2{3, 4}}

	// Act
	err := hydrateDecoration(w, cmds, spawnerEnt, sp, asset.ElementMeta{Kind: decorationKind})
	assert.NoError(t, err)
	cmds.Apply(w)

	// Assert
	var found ecs.Entity
	ecs.GetStore[Decoration](w).ForEach(func(idx uint32, _ Decoration) {
		found = ecs.EntityAt(w, idx)
	})
	assert.False(t, found.IsNull())
	assert.False(t, ecs.Has[physics.KinematicBody](w, found))
	assert.False(t, ecs.Has[playerctl.Grabbable](w, found))
}
