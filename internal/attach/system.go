package attach

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
	"brawlcore/internal/physics"
	"brawlcore/internal/render"
)

// System returns the stage-Last system that syncs every Attachment from its
// target, per spec.md 4.8: copy the target's transform, mirror the offset
// and copy sprite flips if the target has a flippable sprite, optionally
// copy atlas frame index and/or alpha, then add the (possibly mirrored)
// offset.
func System() ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		var syncErr error
		ecs.With2(w, func(ent ecs.Entity, att *Attachment, self *physics.Transform) {
			if syncErr != nil {
				return
			}
			targetT, ok := ecs.Get[physics.Transform](w, att.Target)
			if !ok {
				return
			}
			offset := att.Offset
			syncAttachmentSprite(w, ent, att, &offset)
			self.Translation = targetT.Translation.Add(offset)
			self.Rotation = targetT.Rotation
		})
		return syncErr
	}
}

func syncAttachmentSprite(w *ecs.World, self ecs.Entity, att *Attachment, offset *mgl64.Vec2) {
	if targetAtlas, ok := ecs.Get[render.AtlasSprite](w, att.Target); ok {
		if selfAtlas := ecs.GetPtr[render.AtlasSprite](w, self); selfAtlas != nil {
			mirrorFlip(targetAtlas.FlipX, targetAtlas.FlipY, &selfAtlas.FlipX, &selfAtlas.FlipY, offset)
			if att.SyncAnimation {
				selfAtlas.FrameIndex = targetAtlas.FrameIndex
			}
			if att.SyncColor {
				selfAtlas.Color.A = targetAtlas.Color.A
			}
		}
		return
	}
	if targetSprite, ok := ecs.Get[render.Sprite](w, att.Target); ok {
		if selfSprite := ecs.GetPtr[render.Sprite](w, self); selfSprite != nil {
			mirrorFlip(targetSprite.FlipX, targetSprite.FlipY, &selfSprite.FlipX, &selfSprite.FlipY, offset)
			if att.SyncColor {
				selfSprite.Color.A = targetSprite.Color.A
			}
		}
	}
}

func mirrorFlip(targetFlipX, targetFlipY bool, selfFlipX, selfFlipY *bool, offset *mgl64.Vec2) {
	*selfFlipX = targetFlipX
	*selfFlipY = targetFlipY
	if targetFlipX {
		offset[0] = -offset[0]
	}
	if targetFlipY {
		offset[1] = -offset[1]
	}
}

// PlayerBodyAttachmentTracker remembers which entities had a live
// PlayerBodyAttachment last tick, so PlayerBodySystem can tell
// "the component was just removed" apart from "never had one" and clean up
// the Attachment it wrote.
type PlayerBodyAttachmentTracker struct {
	Owners map[ecs.Entity]bool
}

// NewTracker returns an empty tracker.
func NewTracker() *PlayerBodyAttachmentTracker {
	return &PlayerBodyAttachmentTracker{Owners: map[ecs.Entity]bool{}}
}

// Clone returns an independent copy, satisfying the ecs resource clone hook.
func (t *PlayerBodyAttachmentTracker) Clone() *PlayerBodyAttachmentTracker {
	c := NewTracker()
	for k, v := range t.Owners {
		c.Owners[k] = v
	}
	return c
}

// CloneResource satisfies internal/ecs's resource clone hook.
func (t *PlayerBodyAttachmentTracker) CloneResource() any { return t.Clone() }

// PlayerBodySystem computes each PlayerBodyAttachment's current body-bob
// offset (via lookup, keyed by the player's current animation key and
// frame index) and writes a matching Attachment targeting the player, per
// spec.md 4.8. headOffset is added on top when Head is set. Entities whose
// PlayerBodyAttachment was removed since last tick have their stale
// Attachment removed.
func PlayerBodySystem(lookup BodyBobLookup, headOffset mgl64.Vec2) ecs.SystemFunc {
	return func(w *ecs.World, cmds *ecs.Commands) error {
		tracker, ok := ecs.GetResource[*PlayerBodyAttachmentTracker](w)
		if !ok {
			tracker = NewTracker()
		}
		seen := map[ecs.Entity]bool{}

		ecs.GetStore[PlayerBodyAttachment](w).ForEach(func(idx uint32, pba PlayerBodyAttachment) {
			ent := ecs.EntityAt(w, idx)
			seen[ent] = true

			anim, hasAnim := ecs.Get[render.AnimatedSprite](w, pba.Player)
			atlas, hasAtlas := ecs.Get[render.AtlasSprite](w, pba.Player)
			if !hasAnim || !hasAtlas {
				return
			}
			bobX, bobY, ok := lookup(pba.Player, anim.Key, atlas.FrameIndex)
			if !ok {
				return
			}
			offset := mgl64.Vec2{bobX, bobY}
			if pba.Head {
				offset[0] += headOffset[0]
				offset[1] += headOffset[1]
			}
			ecs.QueueInsert(cmds, ent, Attachment{
				Target:        pba.Player,
				Offset:        offset,
				SyncAnimation: pba.SyncAnimation,
				SyncColor:     pba.SyncColor,
			})
		})

		for owner := range tracker.Owners {
			if !seen[owner] && w.IsAlive(owner) {
				ecs.QueueRemove[Attachment](cmds, owner)
			}
		}
		tracker.Owners = seen
		ecs.InsertResource(w, tracker)
		return nil
	}
}
