package ecs

import "reflect"

// resources is a singleton value store keyed by Go type, used for world-wide
// state that isn't per-entity: the deterministic RNG, the tile map, camera
// config, asset handles. One value per type, same borrow discipline as
// component stores (see borrow.go).
type resources struct {
	byType map[reflect.Type]any
}

func newResources() *resources {
	return &resources{byType: map[reflect.Type]any{}}
}

func resourceKey[T any]() reflect.Type {
	var zero T
	return reflect.TypeOf(zero)
}

// InsertResource stores value as the world's instance of T, replacing any
// prior value.
func InsertResource[T any](w *World, value T) {
	w.resources.byType[resourceKey[T]()] = value
}

// GetResource returns the world's instance of T and whether one is present.
func GetResource[T any](w *World) (T, bool) {
	v, ok := w.resources.byType[resourceKey[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return v.(T), true
}

// MustResource returns the world's instance of T, panicking if absent. Used
// by systems for resources the scheduler guarantees exist (e.g. the RNG),
// where absence is a wiring bug rather than a runtime condition to handle.
func MustResource[T any](w *World) T {
	v, ok := GetResource[T](w)
	if !ok {
		var zero T
		panic(resourceNotFoundMessage(reflect.TypeOf(zero)))
	}
	return v
}

func resourceNotFoundMessage(t reflect.Type) string {
	return "ecs: resource not found: " + t.String()
}

// RemoveResource deletes the world's instance of T, if any.
func RemoveResource[T any](w *World) {
	delete(w.resources.byType, resourceKey[T]())
}

func (r *resources) clone() *resources {
	c := &resources{byType: make(map[reflect.Type]any, len(r.byType))}
	for k, v := range r.byType {
		if cl, ok := v.(interface{ CloneResource() any }); ok {
			c.byType[k] = cl.CloneResource()
		} else {
			c.byType[k] = v
		}
	}
	return c
}
