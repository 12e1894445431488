package ecs

// Commands buffers structural edits (spawns, despawns, component attach and
// detach) raised while a system is mid-iteration, so a system walking a
// store's dense array never has that array mutated out from under it.
// The scheduler gives each system its own buffer and applies it in FIFO
// order as soon as that system returns, before the next system in the same
// stage runs; buffers are not held back until the end of the stage. This
// generalizes the spawner pattern spec.md 6 describes for map hydration.
type Commands struct {
	ops []func(*World)
}

// NewCommands returns an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

// Spawn defers spawning an entity. It returns nothing: fn receives the new
// entity's handle when Apply runs, and is where its components get attached.
func (c *Commands) Spawn(fn func(w *World, ent Entity)) {
	c.ops = append(c.ops, func(w *World) {
		fn(w, w.Spawn())
	})
}

// Despawn defers despawning ent.
func (c *Commands) Despawn(ent Entity) {
	c.ops = append(c.ops, func(w *World) {
		w.Despawn(ent)
	})
}

// QueueInsert defers attaching value to ent.
func QueueInsert[T any](c *Commands, ent Entity, value T) {
	c.ops = append(c.ops, func(w *World) {
		Insert(w, ent, value)
	})
}

// QueueRemove defers detaching T from ent.
func QueueRemove[T any](c *Commands, ent Entity) {
	c.ops = append(c.ops, func(w *World) {
		Remove[T](w, ent)
	})
}

// Apply runs every buffered op against w, in the order they were queued, and
// clears the buffer.
func (c *Commands) Apply(w *World) {
	for _, op := range c.ops {
		op(w)
	}
	c.ops = c.ops[:0]
}

// Len returns the number of buffered, not-yet-applied operations.
func (c *Commands) Len() int { return len(c.ops) }
