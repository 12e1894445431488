// Package render holds the plain, trivially-copyable sprite components the
// session exposes to an embedder's renderer each tick (spec.md 6): Sprite,
// AtlasSprite and AnimatedSprite. None of them draw anything themselves;
// they are just data a renderer reads after advance() returns.
//
// Grounded on totodo713-vamplite's components.SpriteComponent (TextureID,
// SourceRect/AABB, Color, ZOrder, Visible, FlipX/FlipY field naming),
// stripped of its reflect-derived ComponentType method (this module
// identifies components via ecs.TagOf instead) and extended with the
// atlas-frame and named-animation-playback state the teacher's sprite
// component didn't need.
package render

import "brawlcore/internal/asset"

// Color is a plain RGBA tint, independent of debugdraw.Color so gameplay
// sprite tinting and debug overlays never share a type.
type Color struct {
	R, G, B, A uint8
}

// Opaque returns a fully-opaque white tint, the default for a freshly
// hydrated sprite.
func Opaque() Color {
	return Color{R: 255, G: 255, B: 255, A: 255}
}

// Sprite is a single, non-atlased image: a whole texture drawn at the
// entity's transform.
type Sprite struct {
	Texture asset.AssetHandle
	Color   Color
	ZOrder  int
	Visible bool
	FlipX   bool
	FlipY   bool
}

// AtlasSprite draws one cell of a shared texture atlas, selected by
// FrameIndex. Used for both static multi-frame art and as the target of
// AnimatedSprite's frame writes.
type AtlasSprite struct {
	Atlas      asset.AssetHandle
	FrameIndex int
	Color      Color
	ZOrder     int
	Visible    bool
	FlipX      bool
	FlipY      bool
}

// AnimatedSprite plays a named animation into a sibling AtlasSprite's
// FrameIndex: FPS frames per second, wrapping around when Loop is set and
// holding the last frame otherwise (Loop's zero value is false).
// AdvanceAnimations advances Elapsed each tick and writes the resulting
// frame index.
type AnimatedSprite struct {
	Key     string
	Frames  []int
	FPS     int
	Elapsed float64
	Loop    bool
}

// FrameAt returns the atlas frame index for elapsed seconds into the
// animation.
func (a AnimatedSprite) FrameAt(elapsed float64) int {
	if len(a.Frames) == 0 || a.FPS <= 0 {
		return 0
	}
	n := int(elapsed * float64(a.FPS))
	if a.Loop {
		n %= len(a.Frames)
	} else if n >= len(a.Frames) {
		n = len(a.Frames) - 1
	}
	return a.Frames[n]
}
