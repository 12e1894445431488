// Package playerctl implements the player controller and state machine
// (spec.md 4.7): per-tick input with edge detection, a data-driven state
// machine over {Idle, Walk, Midair, Incapacitated, Dead, Emoting}, animation
// bank resolution, the grab/drop/use inventory protocol, and the AiPlayer
// input variant.
package playerctl

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
)

// RawButtons is one tick's raw, level-triggered button state as the
// embedder (or an AiInputFunc) reports it; "just pressed" is derived from
// this plus the previous tick's RawButtons, not reported by the caller.
type RawButtons struct {
	Jump  bool
	Grab  bool
	Shoot bool
}

// ButtonState is a button's resolved per-tick state: Pressed is the raw
// level, JustPressed is true only on the tick it transitioned false->true.
type ButtonState struct {
	Pressed     bool
	JustPressed bool
}

func deriveButton(prev, curr bool) ButtonState {
	return ButtonState{Pressed: curr, JustPressed: curr && !prev}
}

// PlayerControl is the resolved per-tick input the state machine reads.
type PlayerControl struct {
	MoveDirection mgl64.Vec2
	Jump          ButtonState
	Grab          ButtonState
	Shoot         ButtonState
}

// DeriveControl resolves one tick's PlayerControl from the raw move vector
// and buttons plus the previous tick's raw buttons, so callers (human input
// ingestion in internal/session, or an AiInputFunc) never have to track
// edges themselves.
func DeriveControl(move mgl64.Vec2, raw, prevRaw RawButtons) PlayerControl {
	return PlayerControl{
		MoveDirection: move,
		Jump:          deriveButton(prevRaw.Jump, raw.Jump),
		Grab:          deriveButton(prevRaw.Grab, raw.Grab),
		Shoot:         deriveButton(prevRaw.Shoot, raw.Shoot),
	}
}

// InputSlot is the per-player input component: Control is what the state
// machine reads this tick, prevRaw is kept only to derive next tick's edges.
type InputSlot struct {
	Control PlayerControl
	prevRaw RawButtons
}

// UpdateInput derives this tick's PlayerControl for ent from move/raw plus
// whatever raw buttons were recorded on ent's InputSlot last tick, and
// writes the result back. Used both for human input ingestion and, via
// AiSystem, for AiPlayer entities.
func UpdateInput(w *ecs.World, ent ecs.Entity, move mgl64.Vec2, raw RawButtons) {
	slot, _ := ecs.Get[InputSlot](w, ent)
	slot.Control = DeriveControl(move, raw, slot.prevRaw)
	slot.prevRaw = raw
	ecs.Insert(w, ent, slot)
}
