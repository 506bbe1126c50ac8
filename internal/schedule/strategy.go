package schedule

import (
	"time"
)

// CheckFunc runs a conflict check for a candidate window. Strategies call it
// repeatedly while walking the calendar.
type CheckFunc func(start, end time.Time) CheckResult

// Strategy finds open slots of a fixed duration.
type Strategy interface {
	// NextAvailable returns the first conflict-free window of the given
	// duration starting at or after the cursor, or nil when the horizon is
	// exhausted.
	NextAvailable(after time.Time, duration time.Duration, check CheckFunc) *TimeSlot
	// Suggest returns up to max conflict-free windows after the cursor.
	Suggest(after time.Time, duration time.Duration, max int, check CheckFunc) []TimeSlot
}

// FirstAvailable walks forward from the cursor, jumping past whatever each
// candidate collided with. The horizon is a hard cutoff so a fully booked
// calendar terminates the search instead of scanning forever.
type FirstAvailable struct {
	Step    time.Duration
	Horizon time.Duration
}

func NewFirstAvailable(step, horizon time.Duration) FirstAvailable {
	if step <= 0 {
		step = 15 * time.Minute
	}
	if horizon <= 0 {
		horizon = 90 * 24 * time.Hour
	}
	return FirstAvailable{Step: step, Horizon: horizon}
}

func (f FirstAvailable) NextAvailable(after time.Time, duration time.Duration, check CheckFunc) *TimeSlot {
	if duration <= 0 {
		return nil
	}

	limit := after.Add(f.Horizon)
	cursor := after

	for !cursor.Add(duration).After(limit) {
		end := cursor.Add(duration)
		res := check(cursor, end)
		if !res.HasConflicts() {
			return &TimeSlot{
				Start:     cursor,
				End:       end,
				Preferred: preferredTime(cursor),
			}
		}

		// Jump to the end of the latest collision, but always advance at
		// least one step so the same instant is never retried.
		next := cursor.Add(f.Step)
		for _, c := range res.Conflicts {
			if c.End.After(next) {
				next = c.End
			}
		}
		cursor = next
	}

	return nil
}

func (f FirstAvailable) Suggest(after time.Time, duration time.Duration, max int, check CheckFunc) []TimeSlot {
	var out []TimeSlot
	cursor := after
	for len(out) < max {
		slot := f.NextAvailable(cursor, duration, check)
		if slot == nil {
			break
		}
		out = append(out, *slot)
		cursor = slot.Start.Add(f.Step)
	}
	return out
}

// Mid-morning slots tend to be the ones front desks hand out first.
func preferredTime(t time.Time) bool {
	h := t.Hour()
	return h >= 9 && h < 12
}
