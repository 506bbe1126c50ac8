package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

type ConflictType string

const (
	// ConflictDoubleBooked means the proposed range overlaps another booking
	// on the same physician's calendar.
	ConflictDoubleBooked ConflictType = "double_booked"
	// ConflictUnavailable means the proposed range overlaps a facility-wide
	// or physician-specific unavailable block.
	ConflictUnavailable ConflictType = "unavailable_time"
	// ConflictOutsideAvailability means the proposed range falls outside the
	// physician's weekly availability template.
	ConflictOutsideAvailability ConflictType = "outside_availability"
	// ConflictRoom means another physician holds the same room for an
	// overlapping range. Detected by the scheduler service, not by
	// CheckConflicts, since it spans calendars.
	ConflictRoom ConflictType = "room_conflict"
)

// Conflict describes one overlap found during a check.
type Conflict struct {
	Type        ConflictType
	BookingID   *uuid.UUID  // set for double_booked
	BlockReason BlockReason // set for unavailable_time
	Start       time.Time
	End         time.Time
	Detail      string
}

// CheckResult aggregates the conflicts a single check found. It is transient
// and never persisted.
type CheckResult struct {
	Conflicts []Conflict
}

func (r CheckResult) HasConflicts() bool {
	return len(r.Conflicts) > 0
}

// Summary renders one human-readable line per conflict.
func (r CheckResult) Summary() string {
	if !r.HasConflicts() {
		return "no conflicts"
	}
	lines := make([]string, 0, len(r.Conflicts))
	for _, c := range r.Conflicts {
		lines = append(lines, fmt.Sprintf("%s: %s (%s - %s)",
			c.Type, c.Detail,
			c.Start.Format(time.RFC3339), c.End.Format(time.RFC3339)))
	}
	return strings.Join(lines, "; ")
}

// CheckConflicts tests a proposed booking against the physician's existing
// bookings, the physician's own blocks, the facility-wide blocks, and the
// weekly template. It is a pure function of its inputs: no mutation, no error
// for well-formed input. Pass exclude to ignore one booking id, which lets
// updates re-check a moved appointment against everything but itself.
func CheckConflicts(proposed Booking, sched *PhysicianSchedule, facility []UnavailableBlock, exclude uuid.UUID) CheckResult {
	var res CheckResult

	for _, b := range sched.Bookings {
		if b.ID == proposed.ID || b.ID == exclude {
			continue
		}
		if b.Cancelled {
			continue
		}
		if b.OverlapsRange(proposed.Start, proposed.End) {
			id := b.ID
			res.Conflicts = append(res.Conflicts, Conflict{
				Type:      ConflictDoubleBooked,
				BookingID: &id,
				Start:     b.Start,
				End:       b.End,
				Detail:    fmt.Sprintf("overlaps appointment %s", b.ID),
			})
		}
	}

	for _, blk := range facility {
		if blk.OverlapsRange(proposed.Start, proposed.End) {
			res.Conflicts = append(res.Conflicts, blockConflict(blk, "facility unavailable"))
		}
	}
	for _, blk := range sched.Blocks {
		if blk.OverlapsRange(proposed.Start, proposed.End) {
			res.Conflicts = append(res.Conflicts, blockConflict(blk, "physician unavailable"))
		}
	}

	if !sched.Template.Covers(proposed.Start, proposed.End) {
		res.Conflicts = append(res.Conflicts, Conflict{
			Type:   ConflictOutsideAvailability,
			Start:  proposed.Start,
			End:    proposed.End,
			Detail: "outside the physician's weekly availability",
		})
	}

	return res
}

func blockConflict(blk UnavailableBlock, kind string) Conflict {
	detail := kind
	if blk.Description != "" {
		detail = fmt.Sprintf("%s: %s", kind, blk.Description)
	}
	return Conflict{
		Type:        ConflictUnavailable,
		BlockReason: blk.Reason,
		Start:       blk.Start,
		End:         blk.End,
		Detail:      detail,
	}
}
