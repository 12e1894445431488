package physics

import "github.com/go-gl/mathgl/mgl64"

// Transform is a plain, trivially-copyable position/rotation/scale value.
// Unlike totodo713-vamplite's TransformComponent, it carries no parent/child
// pointers: attachments (C8) copy values between entities explicitly instead
// of relying on a hierarchy, which is what keeps a World.Clone a pure value
// copy.
type Transform struct {
	Translation mgl64.Vec2
	Rotation    float64
	Scale       mgl64.Vec2
}

// NewTransform returns a transform at the origin with unit scale.
func NewTransform() Transform {
	return Transform{Scale: mgl64.Vec2{1, 1}}
}
