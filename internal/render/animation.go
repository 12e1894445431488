package render

import "brawlcore/internal/ecs"

// AdvanceAnimations returns an Update-stage system that advances every
// entity's AnimatedSprite by dt and writes the resulting frame into its
// sibling AtlasSprite.
func AdvanceAnimations(dt float64) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.With2(w, func(ent ecs.Entity, anim *AnimatedSprite, atlas *AtlasSprite) {
			anim.Elapsed += dt
			atlas.FrameIndex = anim.FrameAt(anim.Elapsed)
		})
		return nil
	}
}

// SetAnimation replaces ent's AnimatedSprite with a fresh run of key,
// resetting Elapsed to zero so a state transition (e.g. Idle -> Walk)
// restarts the animation rather than resuming mid-cycle.
func SetAnimation(w *ecs.World, ent ecs.Entity, key string, frames []int, fps int, loop bool) {
	ecs.Insert(w, ent, AnimatedSprite{Key: key, Frames: frames, FPS: fps, Loop: loop})
}
