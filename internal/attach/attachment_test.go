package attach

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"brawlcore/internal/ecs"
	"brawlcore/internal/physics"
	"brawlcore/internal/render"
)

func Test_System_CopiesTargetTransformPlusOffset(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	target := w.Spawn()
	ecs.Insert(w, target, physics.Transform{Translation: mgl64.Vec2{10, 20}})
	child := w.Spawn()
	ecs.Insert(w, child, physics.Transform{})
	ecs.Insert(w, child, Attachment{Target: target, Offset: mgl64.Vec2{1, 2}})

	// Act
	err := System()(w, ecs.NewCommands())

	// Assert
	assert.NoError(t, err)
	got, _ := ecs.Get[physics.Transform](w, child)
	assert.Equal(t, mgl64.Vec2{11, 22}, got.Translation)
}

func Test_System_MirrorsOffsetAndCopiesFlipWhenTargetFlipped(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	target := w.Spawn()
	ecs.Insert(w, target, physics.Transform{})
	ecs.Insert(w, target, render.AtlasSprite{FlipX: true, FrameIndex: 3})
	child := w.Spawn()
	ecs.Insert(w, child, physics.Transform{})
	ecs.Insert(w, child, render.AtlasSprite{})
	ecs.Insert(w, child, Attachment{Target: target, Offset: mgl64.Vec2{5, 0}, SyncAnimation: true})

	// Act
	assert.NoError(t, System()(w, ecs.NewCommands()))

	// Assert
	childT, _ := ecs.Get[physics.Transform](w, child)
	assert.Equal(t, -5.0, childT.Translation.X())
	childAtlas, _ := ecs.Get[render.AtlasSprite](w, child)
	assert.True(t, childAtlas.FlipX)
	assert.Equal(t, 3, childAtlas.FrameIndex)
}

func Test_System_SyncColorCopiesAlpha(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	target := w.Spawn()
	ecs.Insert(w, target, physics.Transform{})
	ecs.Insert(w, target, render.Sprite{Color: render.Color{A: 128}})
	child := w.Spawn()
	ecs.Insert(w, child, physics.Transform{})
	ecs.Insert(w, child, render.Sprite{Color: render.Opaque()})
	ecs.Insert(w, child, Attachment{Target: target, SyncColor: true})

	// Act
	assert.NoError(t, System()(w, ecs.NewCommands()))

	// Assert
	childSprite, _ := ecs.Get[render.Sprite](w, child)
	assert.Equal(t, uint8(128), childSprite.Color.A)
}

func Test_PlayerBodySystem_WritesAttachmentFromLookup(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	player := w.Spawn()
	ecs.Insert(w, player, render.AnimatedSprite{Key: "walk"})
	ecs.Insert(w, player, render.AtlasSprite{FrameIndex: 2})
	sword := w.Spawn()
	ecs.Insert(w, sword, PlayerBodyAttachment{Player: player})

	lookup := func(player ecs.Entity, animKey string, frameIndex int) (float64, float64, bool) {
		if animKey == "walk" && frameIndex == 2 {
			return 3, 4, true
		}
		return 0, 0, false
	}
	cmds := ecs.NewCommands()

	// Act
	err := PlayerBodySystem(lookup, mgl64.Vec2{0, 0})(w, cmds)
	cmds.Apply(w)

	// Assert
	assert.NoError(t, err)
	att, ok := ecs.Get[Attachment](w, sword)
	assert.True(t, ok)
	assert.Equal(t, mgl64.Vec2{3, 4}, att.Offset)
}

func Test_PlayerBodySystem_RemovesStaleAttachmentWhenComponentGone(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	player := w.Spawn()
	ecs.Insert(w, player, render.AnimatedSprite{Key: "idle"})
	ecs.Insert(w, player, render.AtlasSprite{})
	sword := w.Spawn()
	ecs.Insert(w, sword, PlayerBodyAttachment{Player: player})
	lookup := func(ecs.Entity, string, int) (float64, float64, bool) { return 1, 1, true }

	cmds := ecs.NewCommands()
	assert.NoError(t, PlayerBodySystem(lookup, mgl64.Vec2{})(w, cmds))
	cmds.Apply(w)
	_, hadAttachment := ecs.Get[Attachment](w, sword)
	assert.True(t, hadAttachment)

	// Act: remove the driving component, then run the system again
	ecs.Remove[PlayerBodyAttachment](w, sword)
	cmds2 := ecs.NewCommands()
	assert.NoError(t, PlayerBodySystem(lookup, mgl64.Vec2{})(w, cmds2))
	cmds2.Apply(w)

	// Assert
	_, stillThere := ecs.Get[Attachment](w, sword)
	assert.False(t, stillThere)
}
