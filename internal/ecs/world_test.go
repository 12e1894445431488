package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type worldTestHealth struct {
	HP int
}

type worldTestVelocity struct {
	DX, DY float64
}

func Test_World_InsertGetHas(t *testing.T) {
	// Arrange
	w := NewWorld()
	e := w.Spawn()

	// Act
	Insert(w, e, worldTestHealth{HP: 10})

	// Assert
	assert.True(t, Has[worldTestHealth](w, e))
	got, ok := Get[worldTestHealth](w, e)
	assert.True(t, ok)
	assert.Equal(t, 10, got.HP)
}

func Test_World_Despawn_RemovesComponentsFromAllStores(t *testing.T) {
	// Arrange
	w := NewWorld()
	e := w.Spawn()
	Insert(w, e, worldTestHealth{HP: 10})
	Insert(w, e, worldTestVelocity{DX: 1})

	// Act
	w.Despawn(e)

	// Assert
	assert.False(t, w.IsAlive(e))
	assert.False(t, GetStore[worldTestHealth](w).Has(e))
	assert.False(t, GetStore[worldTestVelocity](w).Has(e))
}

func Test_World_Clone_IsIndependent(t *testing.T) {
	// Arrange
	w := NewWorld()
	e := w.Spawn()
	Insert(w, e, worldTestHealth{HP: 10})
	clone := w.Clone()

	// Act
	GetPtr[worldTestHealth](w, e).HP = 0

	// Assert
	got, _ := Get[worldTestHealth](clone, e)
	assert.Equal(t, 10, got.HP)
}

func Test_World_Resources_InsertGetRemove(t *testing.T) {
	// Arrange
	w := NewWorld()

	// Act
	InsertResource(w, worldTestHealth{HP: 3})

	// Assert
	got, ok := GetResource[worldTestHealth](w)
	assert.True(t, ok)
	assert.Equal(t, 3, got.HP)

	// Act
	RemoveResource[worldTestHealth](w)

	// Assert
	_, ok = GetResource[worldTestHealth](w)
	assert.False(t, ok)
}

func Test_With2_JoinsOnlyEntitiesHavingBothComponents(t *testing.T) {
	// Arrange
	w := NewWorld()
	both := w.Spawn()
	Insert(w, both, worldTestHealth{HP: 1})
	Insert(w, both, worldTestVelocity{DX: 1})

	onlyHealth := w.Spawn()
	Insert(w, onlyHealth, worldTestHealth{HP: 2})

	// Act
	var visited []Entity
	With2(w, func(ent Entity, h *worldTestHealth, v *worldTestVelocity) {
		visited = append(visited, ent)
	})

	// Assert
	assert.Equal(t, []Entity{both}, visited)
}
