package physics

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func Test_TileLayer_SetAt_RoundTrips(t *testing.T) {
	// Arrange
	layer := NewTileLayer(4, 4, mgl64.Vec2{8, 8})

	// Act
	layer.Set(1, 1, TileSolid)

	// Assert
	assert.Equal(t, TileSolid, layer.At(1, 1))
	assert.Equal(t, TileEmpty, layer.At(0, 0))
}

func Test_TileLayer_At_OutOfRangeIsEmpty(t *testing.T) {
	// Arrange
	layer := NewTileLayer(2, 2, mgl64.Vec2{8, 8})

	// Act & Assert
	assert.Equal(t, TileEmpty, layer.At(-1, 0))
	assert.Equal(t, TileEmpty, layer.At(5, 5))
}

func Test_TileLayer_KindAtWorld_ConvertsCoordinates(t *testing.T) {
	// Arrange
	layer := NewTileLayer(4, 4, mgl64.Vec2{8, 8})
	layer.Set(2, 1, TileJumpThrough)

	// Act & Assert
	assert.Equal(t, TileJumpThrough, layer.KindAtWorld(mgl64.Vec2{17, 9}))
	assert.Equal(t, TileEmpty, layer.KindAtWorld(mgl64.Vec2{0, 0}))
}

func Test_TileKind_Or_SolidDominatesJumpThroughDominatesEmpty(t *testing.T) {
	assert.Equal(t, TileSolid, TileSolid.or(TileJumpThrough))
	assert.Equal(t, TileJumpThrough, TileJumpThrough.or(TileEmpty))
	assert.Equal(t, TileEmpty, TileEmpty.or(TileEmpty))
}

func Test_TileLayer_Clone_IsIndependent(t *testing.T) {
	// Arrange
	layer := NewTileLayer(2, 2, mgl64.Vec2{8, 8})
	clone := layer.Clone()

	// Act
	layer.Set(0, 0, TileSolid)

	// Assert
	assert.Equal(t, TileEmpty, clone.At(0, 0))
}
