package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type testPosition struct {
	X, Y float64
}

func Test_Store_InsertGetRemove(t *testing.T) {
	// Arrange
	ents := NewEntities()
	e := ents.Spawn()
	s := newStore[testPosition]()

	// Act
	_, had := s.Insert(e, testPosition{X: 1, Y: 2})

	// Assert
	assert.False(t, had)
	got, ok := s.Get(e)
	assert.True(t, ok)
	assert.Equal(t, testPosition{X: 1, Y: 2}, got)

	// Act
	prev, removed := s.Remove(e)

	// Assert
	assert.True(t, removed)
	assert.Equal(t, testPosition{X: 1, Y: 2}, prev)
	_, ok = s.Get(e)
	assert.False(t, ok)
}

func Test_Store_Remove_SwapRemoveFixesDisplacedSlot(t *testing.T) {
	// Arrange
	ents := NewEntities()
	a := ents.Spawn()
	b := ents.Spawn()
	c := ents.Spawn()
	s := newStore[testPosition]()
	s.Insert(a, testPosition{X: 1})
	s.Insert(b, testPosition{X: 2})
	s.Insert(c, testPosition{X: 3})

	// Act: remove the middle entity, which forces a swap from the tail
	s.Remove(b)

	// Assert: a and c survive with their original values
	got, ok := s.Get(a)
	assert.True(t, ok)
	assert.Equal(t, testPosition{X: 1}, got)

	got, ok = s.Get(c)
	assert.True(t, ok)
	assert.Equal(t, testPosition{X: 3}, got)

	assert.Equal(t, 2, s.Len())
}

func Test_Store_Insert_OverwritesAndReturnsPrevious(t *testing.T) {
	// Arrange
	ents := NewEntities()
	e := ents.Spawn()
	s := newStore[testPosition]()
	s.Insert(e, testPosition{X: 1})

	// Act
	prev, had := s.Insert(e, testPosition{X: 9})

	// Assert
	assert.True(t, had)
	assert.Equal(t, testPosition{X: 1}, prev)
	got, _ := s.Get(e)
	assert.Equal(t, testPosition{X: 9}, got)
}

func Test_Store_GetPtr_MutatesInPlace(t *testing.T) {
	// Arrange
	ents := NewEntities()
	e := ents.Spawn()
	s := newStore[testPosition]()
	s.Insert(e, testPosition{X: 1})

	// Act
	s.GetPtr(e).X = 42

	// Assert
	got, _ := s.Get(e)
	assert.Equal(t, 42.0, got.X)
}

func Test_Store_ForEach_AscendingEntityOrder(t *testing.T) {
	// Arrange
	ents := NewEntities()
	a := ents.Spawn()
	b := ents.Spawn()
	s := newStore[testPosition]()
	s.Insert(b, testPosition{X: 2})
	s.Insert(a, testPosition{X: 1})

	// Act
	var order []uint32
	s.ForEach(func(idx uint32, v testPosition) { order = append(order, idx) })

	// Assert
	assert.Equal(t, []uint32{0, 1}, order)
}

func Test_Store_Clone_IsIndependent(t *testing.T) {
	// Arrange
	ents := NewEntities()
	e := ents.Spawn()
	s := newStore[testPosition]()
	s.Insert(e, testPosition{X: 1})
	clone := s.Clone()

	// Act
	s.GetPtr(e).X = 99

	// Assert
	got, _ := clone.Get(e)
	assert.Equal(t, 1.0, got.X)
}
