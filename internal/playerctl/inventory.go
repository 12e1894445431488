package playerctl

import "brawlcore/internal/ecs"

// Grabbable marks an item entity as eligible for the grab action. Populated
// by internal/items hydrators, read only here.
type Grabbable struct{}

// Held marks an item entity as currently carried, naming its holder. It is
// the inverse view of Inventory: the controller system sets and clears both
// together, so neither can point at a stale partner.
type Held struct {
	Holder ecs.Entity
}

// Inventory is the player-side half of the carry relationship. Item is
// ecs.Null when empty, since no live entity ever compares equal to it.
type Inventory struct {
	Item ecs.Entity
}

// Has reports whether the player is currently carrying an item.
func (inv Inventory) Has() bool { return !inv.Item.IsNull() }

// ItemGrabbed is queued onto an item the tick it is picked up. Item systems
// read it in PostUpdate (to react: attach, play a sound, arm a timer) and
// remove it once handled.
type ItemGrabbed struct {
	Player ecs.Entity
}

// ItemDropped is queued onto an item the tick it is released.
type ItemDropped struct {
	Player ecs.Entity
}

// ItemUsed is queued onto an item the tick its holder presses shoot.
type ItemUsed struct {
	Owner ecs.Entity
}
