package schedule

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
)

var ErrWrongPhysician = errors.New("booking belongs to a different physician")

// DayWindow is an availability window expressed as offsets from midnight.
type DayWindow struct {
	Start time.Duration
	End   time.Duration
}

// WeeklyTemplate maps weekdays to the windows a physician accepts patients in.
// A nil template means the physician follows facility hours only.
type WeeklyTemplate map[time.Weekday][]DayWindow

// Covers reports whether [start,end) lies entirely inside one of the
// template's windows for that weekday. Ranges spanning midnight never fit.
func (t WeeklyTemplate) Covers(start, end time.Time) bool {
	if t == nil {
		return true
	}
	windows, ok := t[start.Weekday()]
	if !ok || len(windows) == 0 {
		return false
	}

	midnight := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	so := start.Sub(midnight)
	eo := end.Sub(midnight)
	if eo > 24*time.Hour {
		return false
	}

	for _, w := range windows {
		if so >= w.Start && eo <= w.End {
			return true
		}
	}
	return false
}

// PhysicianSchedule holds one physician's bookings and personal blocks.
// Invariant: every contained booking carries the schedule's physician id.
type PhysicianSchedule struct {
	PhysicianID uuid.UUID
	Bookings    []Booking
	Blocks      []UnavailableBlock
	Template    WeeklyTemplate
}

func NewPhysicianSchedule(physicianID uuid.UUID) *PhysicianSchedule {
	return &PhysicianSchedule{PhysicianID: physicianID}
}

func (ps *PhysicianSchedule) Add(b Booking) error {
	if b.PhysicianID != ps.PhysicianID {
		return ErrWrongPhysician
	}
	ps.Bookings = append(ps.Bookings, b)
	return nil
}

// InRange returns the non-cancelled bookings overlapping [from,to), ordered
// by start time.
func (ps *PhysicianSchedule) InRange(from, to time.Time) []Booking {
	var out []Booking
	for _, b := range ps.Bookings {
		if b.Cancelled {
			continue
		}
		if b.OverlapsRange(from, to) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
