package playerctl

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"brawlcore/internal/ecs"
	"brawlcore/internal/render"
)

func Test_AnimationSystem_SetsAnimationOnStateChange(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	ent := w.Spawn()
	ecs.Insert(w, ent, PlayerState{Current: Walk})
	lookup := func(ent ecs.Entity, key string) ([]int, int, bool, bool) {
		if key == "walk" {
			return []int{1, 2, 3}, 12, true, true
		}
		return nil, 0, false, false
	}

	// Act
	err := AnimationSystem(lookup)(w, ecs.NewCommands())

	// Assert
	assert.NoError(t, err)
	anim, ok := ecs.Get[render.AnimatedSprite](w, ent)
	assert.True(t, ok)
	assert.Equal(t, "walk", anim.Key)
	assert.Equal(t, []int{1, 2, 3}, anim.Frames)
}

func Test_AnimationSystem_SkipsWhenKeyUnchanged(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	ent := w.Spawn()
	ecs.Insert(w, ent, PlayerState{Current: Idle})
	ecs.Insert(w, ent, render.AnimatedSprite{Key: "idle", Elapsed: 2.5})
	calls := 0
	lookup := func(ecs.Entity, string) ([]int, int, bool, bool) {
		calls++
		return []int{9}, 1, true, true
	}

	// Act
	assert.NoError(t, AnimationSystem(lookup)(w, ecs.NewCommands()))

	// Assert: no reset since key is already "idle".
	assert.Equal(t, 0, calls)
	anim, _ := ecs.Get[render.AnimatedSprite](w, ent)
	assert.Equal(t, 2.5, anim.Elapsed)
}

func Test_AnimationSystem_EmotingUsesEmoteKey(t *testing.T) {
	// Arrange
	w := ecs.NewWorld()
	ent := w.Spawn()
	ecs.Insert(w, ent, PlayerState{Current: Emoting, EmoteKey: "wave"})
	lookup := func(ent ecs.Entity, key string) ([]int, int, bool, bool) {
		if key == "wave" {
			return []int{7}, 4, false, true
		}
		return nil, 0, false, false
	}

	// Act
	assert.NoError(t, AnimationSystem(lookup)(w, ecs.NewCommands()))

	// Assert
	anim, ok := ecs.Get[render.AnimatedSprite](w, ent)
	assert.True(t, ok)
	assert.Equal(t, "wave", anim.Key)
}
