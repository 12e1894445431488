package playerctl

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
)

// AiPlayer marks an entity as controlled by an AiInputFunc instead of human
// input. Everything downstream (System, AnimationSystem) reads InputSlot
// and PlayerState the same way regardless of which wrote them, so the
// physics/state-machine path is identical for AI and human players.
type AiPlayer struct{}

// AiInputFunc computes one tick's synthetic move vector and raw buttons for
// an AiPlayer entity. It must read only w (world state) and rng (the
// session's deterministic RNG resource) so replays stay reproducible —
// never wall-clock time or any other ambient source.
type AiInputFunc func(w *ecs.World, ent ecs.Entity) (move mgl64.Vec2, raw RawButtons)

// AiSystem returns the system that writes synthetic input into every
// AiPlayer's InputSlot via fn, using the same edge-detecting UpdateInput
// human input ingestion uses.
func AiSystem(fn AiInputFunc) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[AiPlayer](w).ForEach(func(idx uint32, _ AiPlayer) {
			ent := ecs.EntityAt(w, idx)
			if !ecs.Has[InputSlot](w, ent) {
				ecs.Insert(w, ent, InputSlot{})
			}
			move, raw := fn(w, ent)
			UpdateInput(w, ent, move, raw)
		})
		return nil
	}
}
