package session

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
	"brawlcore/internal/playerctl"
	"brawlcore/internal/proto"
)

// Time is the tick-clock resource: elapsed is advanced by proto.Dt at the
// end of every advance() call, tick counts how many advances have run.
// Grounded on spec.md 4.10's "advance(): runs stages in order, then
// increments Time.elapsed by 1/FPS".
//
// Time needs no CloneResource hook: every field is a plain value, so the
// shallow copy internal/ecs's default resource clone already performs is a
// deep one.
type Time struct {
	Elapsed float64
	Tick    uint64
}

// PlayerInputs is the one resource update_input(f) (UpdateInput here) gets
// exclusive access to: this tick's raw move vector and button state for
// each of the proto.MaxPlayers slots, plus which entity (if any) occupies
// each slot. Slots with no live player have Entities[i].IsNull() true and
// their Move/Raw values are never read.
// Like Time, every field here is a fixed-size array of plain values, so it
// needs no CloneResource hook.
type PlayerInputs struct {
	Entities [proto.MaxPlayers]ecs.Entity
	Move     [proto.MaxPlayers]mgl64.Vec2
	Raw      [proto.MaxPlayers]playerctl.RawButtons
}

// ingestInputSystem returns the StageFirst system that turns this tick's
// PlayerInputs into each live player's derived PlayerControl, via the same
// edge-detecting UpdateInput human and AI input both go through.
func ingestInputSystem() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		inputs := ecs.MustResource[PlayerInputs](w)
		for slot, ent := range inputs.Entities {
			if ent.IsNull() || !w.IsAlive(ent) {
				continue
			}
			if ecs.Has[playerctl.AiPlayer](w, ent) {
				continue
			}
			playerctl.UpdateInput(w, ent, inputs.Move[slot], inputs.Raw[slot])
		}
		return nil
	}
}
