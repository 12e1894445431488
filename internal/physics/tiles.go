package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// TileKind is the collision classification of one grid cell. The numeric
// order is the "or" lattice spec.md 4.4 describes: Solid dominates
// JumpThrough dominates Empty, so combining two samples is a plain max.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileJumpThrough
	TileSolid
)

// or returns the dominant of a and b per the Solid > JumpThrough > Empty
// lattice.
func (a TileKind) or(b TileKind) TileKind {
	if b > a {
		return b
	}
	return a
}

// TileLayer is one grid of tile collision markers. Out-of-range samples
// report Empty rather than erroring, so an actor that walks off the edge of
// a finite map simply falls, to be handled by the dehydration rule (C6)
// rather than a special-cased bounds check here.
type TileLayer struct {
	Cols, Rows int
	TileSize   mgl64.Vec2
	tiles      []TileKind
}

// NewTileLayer returns an all-Empty layer of the given grid dimensions.
func NewTileLayer(cols, rows int, tileSize mgl64.Vec2) *TileLayer {
	return &TileLayer{
		Cols:     cols,
		Rows:     rows,
		TileSize: tileSize,
		tiles:    make([]TileKind, cols*rows),
	}
}

func (t *TileLayer) inBounds(col, row int) bool {
	return col >= 0 && col < t.Cols && row >= 0 && row < t.Rows
}

// Set marks the tile at (col, row) with kind. Out-of-range writes are
// silently ignored.
func (t *TileLayer) Set(col, row int, kind TileKind) {
	if !t.inBounds(col, row) {
		return
	}
	t.tiles[row*t.Cols+col] = kind
}

// At returns the tile kind at (col, row), or TileEmpty if out of range.
func (t *TileLayer) At(col, row int) TileKind {
	if !t.inBounds(col, row) {
		return TileEmpty
	}
	return t.tiles[row*t.Cols+col]
}

// KindAtWorld converts a world-space point to a grid cell and returns its
// kind.
func (t *TileLayer) KindAtWorld(p mgl64.Vec2) TileKind {
	col := int(math.Floor(p.X() / t.TileSize.X()))
	row := int(math.Floor(p.Y() / t.TileSize.Y()))
	return t.At(col, row)
}

// Clone returns an independent copy of the layer.
func (t *TileLayer) Clone() *TileLayer {
	c := &TileLayer{Cols: t.Cols, Rows: t.Rows, TileSize: t.TileSize}
	c.tiles = append([]TileKind(nil), t.tiles...)
	return c
}
