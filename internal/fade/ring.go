// Package fade implements the ring-buffered multi-keyframe interpolator
// driving opacity, background-opacity, and dim animations (§4.4). Grounded
// on original_source/src/window.h's struct Fading/struct FadeKeyframe
// (target/duration/time/ignore fields, FADE_KEYFRAMES == 10) and on
// willow's animation.go TweenGroup for the "own tweens, Update(dt) each
// tick, report done" shape — generalized here from "animate up to 4 Node
// fields" to "ring of up to 10 keyframes for one scalar".
package fade

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ringSize mirrors original_source/src/window.h's FADE_KEYFRAMES.
const ringSize = 10

// keyframe is one scheduled step toward a target value.
type keyframe struct {
	tween    *gween.Tween
	target   float64
	duration float64
	ignore   bool
	done     bool
}

// Ring is a circular buffer of up to ringSize keyframes animating a single
// scalar (opacity, bg-opacity, or dim). head is the currently-advancing
// keyframe; tail is the most recently scheduled one. value is the current
// interpolated output.
type Ring struct {
	keyframes  [ringSize]keyframe
	head, tail int
	value      float64
}

// NewRing returns a ring whose value starts at initial and is immediately
// done (no pending keyframes).
func NewRing(initial float64) *Ring {
	r := &Ring{value: initial}
	r.keyframes[0] = keyframe{target: initial, done: true}
	return r
}

// Value returns the current interpolated output.
func (r *Ring) Value() float64 { return r.value }

// Done reports whether the head keyframe has reached its target and there
// is no successor to advance to (§4.4 "head == tail and the head keyframe
// has reached its target").
func (r *Ring) Done() bool {
	r.settle()
	return r.keyframes[r.head].done
}

// settle advances head past any already-completed keyframes that have a
// successor waiting, so head always names the keyframe actually in
// progress (or, if none, the single completed one left at head == tail).
func (r *Ring) settle() {
	for r.head != r.tail && r.keyframes[r.head].done {
		r.head = (r.head + 1) % ringSize
	}
}

// Schedule appends a new keyframe animating toward target over duration
// seconds. Scheduling the same target as the current tail is a no-op
// (dedup). duration <= 0 applies the target instantaneously, discarding any
// still-pending keyframes. ignoreNext, if true, makes the new keyframe
// consume exactly one Update call without advancing, used to align timing
// with the next frame.
func (r *Ring) Schedule(target, duration float64, ignoreNext bool) {
	if r.keyframes[r.tail].target == target {
		return
	}
	if duration <= 0 {
		r.value = target
		r.head = r.tail
		r.keyframes[r.tail] = keyframe{target: target, done: true}
		return
	}
	next := (r.tail + 1) % ringSize
	if next == r.head {
		// Ring full: drop the oldest still-pending keyframe to make room.
		r.head = (r.head + 1) % ringSize
	}
	r.tail = next
	r.keyframes[r.tail] = keyframe{
		tween:    gween.New(float32(r.value), float32(target), float32(duration), ease.Linear),
		target:   target,
		duration: duration,
		ignore:   ignoreNext,
	}
	r.settle()
}

// Update advances the head keyframe by dt seconds (§4.4's per-tick rule).
func (r *Ring) Update(dt float64) {
	r.settle()
	h := &r.keyframes[r.head]
	if h.done {
		return
	}
	if h.ignore {
		h.ignore = false
		return
	}
	val, finished := h.tween.Update(float32(dt))
	r.value = float64(val)
	if finished {
		r.value = h.target
		h.done = true
		r.settle()
	}
}
