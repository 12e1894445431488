// Package proto holds the protocol-level constants that are part of the
// save/replay compatibility surface (spec.md 6): the fixed tick rate, the
// player-slot limit, and default metadata values used when an asset record
// doesn't override them. Changing any of these changes what a recorded
// input sequence replays to, so they are plain constants, never
// configuration read at runtime.
package proto

// FPS is the fixed simulation tick rate. Every per-tick update uses
// dt = 1/FPS; there is no variable timestep and no accumulator.
const FPS = 60

// Dt is the fixed per-tick timestep derived from FPS.
const Dt = 1.0 / float64(FPS)

// MaxPlayers is the maximum number of simultaneous player slots a session
// supports.
const MaxPlayers = 4

// SproingerFrames are the animation-frame triggers for a sproinger's bounce
// animation, fixed protocol constants per spec.md's design notes rather
// than asset-metadata-configurable values, so replays stay exact even if an
// element's other metadata changes.
var SproingerFrames = [5]int{1, 4, 8, 12, 20}

// Default physics constants, used when an element or map's metadata record
// doesn't override them (spec.md 6).
const (
	DefaultGravityY         = 980.0
	DefaultTerminalVelocity = 1000.0
	DefaultFrictionLerp     = 0.80
	DefaultStopThreshold    = 1.0
)

// Default camera constants.
const (
	DefaultCameraLerpFactor  = 0.08
	DefaultCameraMinSize     = 300.0
	DefaultCameraSubjectSize = 80.0
	DefaultCameraBorder      = 64.0
)
