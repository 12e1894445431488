package ecs

// With2 iterates every entity that holds both A and B, in ascending index
// order, calling fn with pointers into each store for in-place mutation.
// Mirrors spec.md's iter_with: the join is computed once as a bitset AND of
// the two stores' presence masks, not by probing B for every A.
func With2[A, B any](w *World, fn func(ent Entity, a *A, b *B)) {
	sa := getStore[A](w)
	sb := getStore[B](w)
	mask := sa.Bitset().And(sb.Bitset())
	mask.ForEach(func(idx uint32) {
		ent := entityAt(w, idx)
		fn(ent, sa.GetPtr(ent), sb.GetPtr(ent))
	})
}

// With3 is With2 extended to a three-way join.
func With3[A, B, C any](w *World, fn func(ent Entity, a *A, b *B, c *C)) {
	sa := getStore[A](w)
	sb := getStore[B](w)
	sc := getStore[C](w)
	mask := sa.Bitset().And(sb.Bitset()).And(sc.Bitset())
	mask.ForEach(func(idx uint32) {
		ent := entityAt(w, idx)
		fn(ent, sa.GetPtr(ent), sb.GetPtr(ent), sc.GetPtr(ent))
	})
}

// entityAt reconstructs the live Entity at index idx. Every index a store's
// bitset can report is, by construction, currently alive (stores only set a
// bit via Insert, and Despawn removes the entity from every store before its
// generation is bumped), so the current generation is always the right one.
func entityAt(w *World, idx uint32) Entity {
	return Entity{index: idx, generation: w.entities.generations[idx]}
}

// EntityAt exposes entityAt for callers outside this package that iterate a
// Store's dense index directly (e.g. Store[T].ForEach) and need to recover
// the owning Entity.
func EntityAt(w *World, idx uint32) Entity {
	return entityAt(w, idx)
}
