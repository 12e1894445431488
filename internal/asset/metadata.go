package asset

import "github.com/go-gl/mathgl/mgl64"

// PhysicsConstants are the default gravity/terminal-velocity/friction
// values a map (or an element overriding them) supplies, per spec.md 6.
type PhysicsConstants struct {
	Gravity          mgl64.Vec2
	TerminalVelocity float64
	FrictionLerp     float64
	StopThreshold    float64
}

// CameraConstants configure the follow camera: how close the subject can
// get to the frame edge before the camera moves, how fast it lerps, and the
// bounds on how tightly or loosely it frames the subject.
type CameraConstants struct {
	Border      float64
	LerpFactor  float64
	MinSize     float64
	SubjectSize float64
}

// AnimationFrame is one frame of a sprite animation: which atlas cell to
// show and, for player character layers, the body-bob offset the
// attachment system (C8) reads to place fin/face sub-entities.
type AnimationFrame struct {
	AtlasIndex int
	BodyOffset mgl64.Vec2
}

// Animation is a named sequence of frames played at a fixed FPS.
type Animation struct {
	Frames []AnimationFrame
	FPS    int
}

// ElementMeta is the resolved metadata record for one placeable element
// kind: body size, atlas/sound handles, and whatever kind-specific fields
// that element's hydrator needs (cooldowns, ammo, timers). KindFields is
// intentionally untyped here — each item package (internal/items) asserts
// it to its own concrete struct after checking Kind, the same "open kind
// registry" shape spec.md 6 describes for hydration.
type ElementMeta struct {
	Kind       string
	BodySize   mgl64.Vec2
	Atlas      AssetHandle
	Sounds     map[string]AssetHandle
	KindFields any
}

// CharacterLayer is one visual layer of a player character (body, fin,
// face): its atlas and the named animations available on it.
type CharacterLayer struct {
	Name       string
	Atlas      AssetHandle
	Animations map[string]Animation
}

// PlayerCharacterMeta is the resolved metadata record for a player
// character: its layered sprite stack and shared body size.
type PlayerCharacterMeta struct {
	BodySize mgl64.Vec2
	Layers   []CharacterLayer
}

// MapMeta is the resolved metadata record for a map: its physics/camera
// defaults only. It carries no tile grid, element placements or element
// registry entries, and Resolver has no method that returns them.
type MapMeta struct {
	Physics PhysicsConstants
	Camera  CameraConstants
}

// Resolver is implemented by the embedder: given a handle, return the
// resolved metadata record. Decoding whatever on-disk or network format
// backs these records is entirely the embedder's concern (spec.md 1's
// non-goal); the core only ever calls these three methods.
type Resolver interface {
	ResolveMap(h MapHandle) (MapMeta, error)
	ResolveElement(h ElementHandle) (ElementMeta, error)
	ResolvePlayer(h PlayerHandle) (PlayerCharacterMeta, error)
}

// ErrMissingAsset is returned by a Resolver when a handle doesn't resolve
// to anything (spec.md 7's MissingAsset condition). Callers skip the
// affected entity's hydration this tick and retry next tick.
type ErrMissingAsset struct {
	Handle string
}

func (e *ErrMissingAsset) Error() string {
	return "asset: missing asset for handle " + e.Handle
}
