// Package ecs implements the component-oriented world: typed component
// stores, a resource store, a stage-ordered scheduler, and the
// snapshot/restore facility the rest of brawlcore builds on.
//
// Grounded on totodo713-vamplite's internal/core/ecs package (sparse-set
// storage, bitset-driven queries, priority-ordered systems) adapted to the
// determinism and snapshot-equality requirements of a rollback simulation:
// components here are plain, trivially-copyable value types (no parent/child
// pointers, no reflect-derived type identity) so that cloning a World is a
// pure value copy.
package ecs

import "fmt"

// Entity is a stable handle to a simulation object: an index into every
// component store plus a generation counter that is bumped whenever that
// index is recycled. A stale Entity (wrong generation) is never confused
// with the live one that now occupies its index.
type Entity struct {
	index      uint32
	generation uint32
}

// Null is the zero-value Entity. No live entity ever compares equal to it.
var Null = Entity{}

// IsNull reports whether e is the zero-value Entity.
func (e Entity) IsNull() bool {
	return e == Null
}

func (e Entity) String() string {
	return fmt.Sprintf("Entity(%d#%d)", e.index, e.generation)
}

// Index returns the dense slot this entity occupies in every component store.
func (e Entity) Index() uint32 { return e.index }

// Generation returns the reuse counter for this entity's slot.
func (e Entity) Generation() uint32 { return e.generation }

// Entities is the allocator for Entity handles: a free list of indices plus
// the generation currently valid at each index. It contains no components;
// component presence lives in the per-type Store values held by a World.
type Entities struct {
	generations []uint32
	free        []uint32
	alive       int
}

// NewEntities returns an empty entity allocator.
func NewEntities() *Entities {
	return &Entities{}
}

// Spawn allocates a fresh Entity, reusing a recycled index when one is free.
func (e *Entities) Spawn() Entity {
	e.alive++
	if n := len(e.free); n > 0 {
		idx := e.free[n-1]
		e.free = e.free[:n-1]
		return Entity{index: idx, generation: e.generations[idx]}
	}
	// Fresh slots start at generation 1, so no live entity equals Null.
	idx := uint32(len(e.generations))
	e.generations = append(e.generations, 1)
	return Entity{index: idx, generation: 1}
}

// Despawn retires ent's index, bumping its generation so any entity value
// still holding the old generation is reported as dead by IsAlive. Despawning
// an already-dead entity is a no-op.
func (e *Entities) Despawn(ent Entity) {
	if !e.IsAlive(ent) {
		return
	}
	e.generations[ent.index]++
	e.free = append(e.free, ent.index)
	e.alive--
}

// IsAlive reports whether ent still refers to a live entity: its index is in
// range and its generation matches the one currently assigned to that index.
func (e *Entities) IsAlive(ent Entity) bool {
	if int(ent.index) >= len(e.generations) {
		return false
	}
	return e.generations[ent.index] == ent.generation
}

// Len returns the number of live entities.
func (e *Entities) Len() int { return e.alive }

// Cap returns the number of index slots ever allocated (live + retired).
func (e *Entities) Cap() int { return len(e.generations) }

// Clone returns an independent deep copy of the allocator, used by
// World.Snapshot.
func (e *Entities) Clone() *Entities {
	c := &Entities{alive: e.alive}
	c.generations = append([]uint32(nil), e.generations...)
	c.free = append([]uint32(nil), e.free...)
	return c
}
