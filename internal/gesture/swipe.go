package gesture

import "math"

const (
	// SwipeNoise is the minimum horizontal travel, in points, before a
	// drag is treated as a directional swipe rather than jitter.
	SwipeNoise = 10.0
	// SwipeMax clamps the visual offset magnitude.
	SwipeMax = 80.0
	// SwipeTrigger is the release threshold: travel strictly beyond
	// half the maximum fires the reply action.
	SwipeTrigger = SwipeMax / 2
)

// Swipe tracks one horizontal drag on a message. Own messages may only
// swipe left (outward from their right-aligned bubble), others' only
// right; both directions mean reply.
type Swipe struct {
	MessageID string
	Own       bool

	originX float64
	originY float64
	offset  float64
	locked  bool
}

// StartSwipe records the drag origin on a message.
func StartSwipe(messageID string, own bool, x, y float64) *Swipe {
	return &Swipe{MessageID: messageID, Own: own, originX: x, originY: y}
}

// Move updates the drag position. The direction locks once horizontal
// travel dominates vertical travel beyond the noise threshold; until
// then the offset stays zero.
func (s *Swipe) Move(x, y float64) {
	dx := x - s.originX
	dy := y - s.originY

	if !s.locked {
		if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= SwipeNoise {
			s.offset = 0
			return
		}
		s.locked = true
	}

	// Only the outward direction is permitted per ownership.
	if s.Own {
		if dx > 0 {
			dx = 0
		}
	} else {
		if dx < 0 {
			dx = 0
		}
	}
	if dx > SwipeMax {
		dx = SwipeMax
	}
	if dx < -SwipeMax {
		dx = -SwipeMax
	}
	s.offset = dx
}

// Locked reports whether the drag has committed to a horizontal swipe.
func (s *Swipe) Locked() bool {
	return s.locked
}

// Offset returns the current clamped visual offset in points. Negative
// means leftward.
func (s *Swipe) Offset() float64 {
	return s.offset
}

// Release ends the drag and reports whether the reply action should
// fire. The offset is spent either way; callers drop the Swipe.
func (s *Swipe) Release() bool {
	triggered := math.Abs(s.offset) > SwipeTrigger
	s.offset = 0
	return triggered
}
