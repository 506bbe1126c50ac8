package schedule

import (
	"time"

	"github.com/google/uuid"
)

// Overlaps reports whether [s1,e1) and [s2,e2) intersect. Intervals are
// half-open, so back-to-back ranges do not overlap and zero-duration ranges
// never overlap anything.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	if !e1.After(s1) || !e2.After(s2) {
		return false
	}
	return s1.Before(e2) && s2.Before(e1)
}

// Booking is the interval-level view of an appointment that conflict checks
// operate on. The scheduler service maps its richer appointment records down
// to this before calling into this package.
type Booking struct {
	ID          uuid.UUID
	PhysicianID uuid.UUID
	Start       time.Time
	End         time.Time
	Cancelled   bool // cancelled bookings free their slot
	Room        int  // 0 when no room is assigned
}

func (b Booking) OverlapsRange(start, end time.Time) bool {
	return Overlaps(b.Start, b.End, start, end)
}

// TimeSlot is a candidate window offered as an alternative when a requested
// slot conflicts.
type TimeSlot struct {
	Start     time.Time
	End       time.Time
	Preferred bool
}
