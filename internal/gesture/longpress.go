// Package gesture holds the pure state machines behind the hold-to-delete
// and swipe-to-reply interactions. They operate on clock readings and
// point coordinates only; the UI layer owns timers and event wiring.
package gesture

import "time"

// LongPressDuration is how long a sustained press must be held before
// the delete action fires.
const LongPressDuration = time.Second

// LongPress tracks one sustained press. Only one may be active at a
// time across the whole feed; starting a new one replaces any prior.
type LongPress struct {
	MessageID string
	startedAt time.Time
}

// StartLongPress begins tracking a press on the given message.
func StartLongPress(messageID string, now time.Time) *LongPress {
	return &LongPress{MessageID: messageID, startedAt: now}
}

// Progress returns the completion ratio in [0, 1].
func (p *LongPress) Progress(now time.Time) float64 {
	elapsed := now.Sub(p.startedAt)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= LongPressDuration {
		return 1
	}
	return float64(elapsed) / float64(LongPressDuration)
}

// Done reports whether the press has been held to completion.
func (p *LongPress) Done(now time.Time) bool {
	return now.Sub(p.startedAt) >= LongPressDuration
}
