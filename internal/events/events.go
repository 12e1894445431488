// Package events holds the two append-only output queues spec.md 6 names
// (AudioEvents, CameraTraumaEvents): plain world resources that gameplay
// systems push onto and the embedder drains between ticks. Kept standalone
// rather than folded into internal/session so internal/items (which pushes
// to both) never has to import the session package that, in turn, installs
// items' hydrators — avoiding an import cycle.
package events

import "brawlcore/internal/asset"

// PlaySound is one queued audio cue: a sound asset handle plus a 0..1
// volume.
type PlaySound struct {
	Handle asset.AssetHandle
	Volume float64
}

// AudioQueue collects PlaySound requests for one tick.
type AudioQueue struct {
	sounds []PlaySound
}

// NewAudioQueue returns an empty queue.
func NewAudioQueue() *AudioQueue {
	return &AudioQueue{}
}

// Push enqueues a sound.
func (q *AudioQueue) Push(s PlaySound) {
	q.sounds = append(q.sounds, s)
}

// Drain returns every queued sound and empties the queue, for the embedder
// to forward to a real audio device between ticks.
func (q *AudioQueue) Drain() []PlaySound {
	out := q.sounds
	q.sounds = nil
	return out
}

// Clone returns an independent copy.
func (q *AudioQueue) Clone() *AudioQueue {
	c := NewAudioQueue()
	c.sounds = append(c.sounds, q.sounds...)
	return c
}

// CloneResource satisfies internal/ecs's resource clone hook.
func (q *AudioQueue) CloneResource() any { return q.Clone() }

// TraumaQueue collects scalar 0..1 camera-trauma values for one tick, per
// spec.md 6: "scalar trauma values used to drive screen shake."
type TraumaQueue struct {
	values []float64
}

// NewTraumaQueue returns an empty queue.
func NewTraumaQueue() *TraumaQueue {
	return &TraumaQueue{}
}

// Push enqueues one trauma value.
func (q *TraumaQueue) Push(v float64) {
	q.values = append(q.values, v)
}

// Drain returns every queued value and empties the queue.
func (q *TraumaQueue) Drain() []float64 {
	out := q.values
	q.values = nil
	return out
}

// Clone returns an independent copy.
func (q *TraumaQueue) Clone() *TraumaQueue {
	c := NewTraumaQueue()
	c.values = append(c.values, q.values...)
	return c
}

// CloneResource satisfies internal/ecs's resource clone hook.
func (q *TraumaQueue) CloneResource() any { return q.Clone() }
