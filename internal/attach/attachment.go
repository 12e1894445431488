// Package attach implements the attachment pattern (spec.md 4.8): a child
// entity that copies its target's transform (and optionally animation
// frame/tint) plus a fixed offset, each tick in stage Last. This is
// explicitly not a general parent/child hierarchy (spec.md's non-goal for
// C8) — there is no recursive propagation, no multi-level tree walk, just
// one flat read-copy-write per attached entity per tick.
package attach

import (
	"github.com/go-gl/mathgl/mgl64"

	"brawlcore/internal/ecs"
)

// Attachment makes its owning entity follow Target's transform plus Offset,
// each tick. SyncAnimation copies Target's AtlasSprite frame index;
// SyncColor copies Target's alpha.
type Attachment struct {
	Target        ecs.Entity
	Offset        mgl64.Vec2
	SyncAnimation bool
	SyncColor     bool
}

// PlayerBodyAttachment is the player-specific variant: its offset is not
// fixed but looked up per tick from the player's current animation and
// frame, via the asset metadata table's per-frame body-bob offsets (C8,
// C7's animation bank). Head adds a further fixed offset on top (used for
// face sub-entities riding the head rather than the body center).
type PlayerBodyAttachment struct {
	Player        ecs.Entity
	Head          bool
	SyncAnimation bool
	SyncColor     bool
	// HadAttachment is not read by PlayerBodySystem; that system tells
	// "just removed" apart from "never had one" through the
	// PlayerBodyAttachmentTracker resource instead.
	HadAttachment bool
}

// BodyBobLookup resolves (animation key, frame index) to the body-bob
// offset asset metadata carries for a player character's current pose.
// Implemented by whatever holds the resolved asset.PlayerCharacterMeta for
// each player (internal/playerctl).
type BodyBobLookup func(player ecs.Entity, animKey string, frameIndex int) (x, y float64, ok bool)
