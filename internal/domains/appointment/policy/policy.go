// Package policy holds the cancellation window rules for confirmed
// appointments. Evaluate is deterministic and side-effect free so the state
// machine can be tested separately from the clock.
package policy

const (
	// BlockWindowHours is the horizon under which cancellation is refused.
	BlockWindowHours = 24.0
	// FreeWindowHours is the horizon at or beyond which cancellation carries
	// no quota penalty.
	FreeWindowHours = 72.0
)

type Outcome struct {
	CanCancel bool
	Penalized bool
}

// Evaluate maps the hours remaining until a confirmed appointment onto the
// cancellation outcome. Exactly 24.0 hours is allowed (penalized) and exactly
// 72.0 hours is free.
func Evaluate(hoursUntilAppointment float64) Outcome {
	if hoursUntilAppointment < BlockWindowHours {
		return Outcome{CanCancel: false, Penalized: false}
	}

	if hoursUntilAppointment < FreeWindowHours {
		return Outcome{CanCancel: true, Penalized: true}
	}

	return Outcome{CanCancel: true, Penalized: false}
}
