package scheduling

// Policy holds the tunable business rules applied by the card state machine.
// The completed-duration floor is product policy, not a technical constraint,
// so it is configurable rather than hard-coded.
type Policy struct {
	// MinRawHours is the floor applied to the accumulated build time before
	// rounding. Guards against zero-length completions.
	MinRawHours float64

	// MinActualDurationHours is the floor applied after rounding.
	MinActualDurationHours float64
}

// DefaultPolicy returns the shop's standing policy: 0.01h raw floor,
// 1 hour minimum booked duration.
func DefaultPolicy() Policy {
	return Policy{
		MinRawHours:            0.01,
		MinActualDurationHours: 1.0,
	}
}
