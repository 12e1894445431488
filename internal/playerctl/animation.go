package playerctl

import (
	"brawlcore/internal/ecs"
	"brawlcore/internal/render"
)

// defaultAnimKeys maps each non-Emoting state to the animation bank key a
// resolved character's metadata is expected to define. Emoting has no fixed
// key: PlayerState.EmoteKey names it instead, since which emote plays is a
// player choice, not a function of state alone.
var defaultAnimKeys = map[State]string{
	Idle:          "idle",
	Walk:          "walk",
	Midair:        "midair",
	Incapacitated: "incapacitated",
	Dead:          "dead",
}

// animKeyFor resolves the animation bank key for s, given ps.EmoteKey for
// the Emoting case.
func animKeyFor(s State, emoteKey string) string {
	if s == Emoting {
		return emoteKey
	}
	return defaultAnimKeys[s]
}

// AnimationLookup resolves a bank key to the frame list and playback FPS a
// resolved character's metadata defines for it. Implemented by whatever
// holds the player's resolved asset.PlayerCharacterMeta (internal/session),
// keeping this package decoupled from asset decoding.
type AnimationLookup func(player ecs.Entity, key string) (frames []int, fps int, loop bool, ok bool)

// AnimationSystem returns the system that, for every PlayerState whose
// resolved animation key differs from the sprite's currently playing one,
// restarts playback via render.SetAnimation (spec.md 4.7's "animation
// bank"). Only entities carrying a PlayerState are touched. The face/fin
// sub-entities session.New spawns carry none; they follow the body through
// attach.PlayerBodyAttachment (SyncAnimation), not through this system.
func AnimationSystem(lookup AnimationLookup) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		ecs.GetStore[PlayerState](w).ForEach(func(idx uint32, ps PlayerState) {
			ent := ecs.EntityAt(w, idx)
			key := animKeyFor(ps.Current, ps.EmoteKey)
			if key == "" {
				return
			}
			anim, hasAnim := ecs.Get[render.AnimatedSprite](w, ent)
			if hasAnim && anim.Key == key {
				return
			}
			frames, fps, loop, ok := lookup(ent, key)
			if !ok {
				return
			}
			render.SetAnimation(w, ent, key, frames, fps, loop)
		})
		return nil
	}
}
