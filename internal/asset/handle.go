// Package asset defines the opaque handle types the embedder uses to refer
// to maps, elements and player characters, plus the in-memory shape of the
// metadata records those handles resolve to. The core never decodes asset
// files itself (spec.md 1's non-goal); it only treats handles as inert,
// comparable/hashable keys and reads whatever record a Resolver hands back.
//
// Grounded on dm-vev-adamant's use of github.com/google/uuid for opaque,
// content-independent identifiers threaded through its world state.
package asset

import "github.com/google/uuid"

// Handle is the common shape of every opaque asset identifier: a UUID the
// embedder minted, meaningless to the core beyond equality and hashing.
type Handle uuid.UUID

// NewHandle returns a fresh random handle.
func NewHandle() Handle {
	return Handle(uuid.New())
}

// IsNil reports whether h is the zero-value handle.
func (h Handle) IsNil() bool {
	return h == Handle{}
}

func (h Handle) String() string {
	return uuid.UUID(h).String()
}

// MapHandle identifies a map asset.
type MapHandle Handle

func (h MapHandle) IsNil() bool    { return Handle(h).IsNil() }
func (h MapHandle) String() string { return Handle(h).String() }

// ElementHandle identifies one placeable element's metadata (sword, mine,
// sproinger, decoration, ...).
type ElementHandle Handle

func (h ElementHandle) IsNil() bool    { return Handle(h).IsNil() }
func (h ElementHandle) String() string { return Handle(h).String() }

// PlayerHandle identifies a player character's metadata (layers, atlases,
// animation tables).
type PlayerHandle Handle

func (h PlayerHandle) IsNil() bool    { return Handle(h).IsNil() }
func (h PlayerHandle) String() string { return Handle(h).String() }

// AssetHandle is a generic handle for assets with no more specific type
// here (sound effects, atlases referenced directly by path rather than
// through an element record).
type AssetHandle Handle

func (h AssetHandle) IsNil() bool    { return Handle(h).IsNil() }
func (h AssetHandle) String() string { return Handle(h).String() }
