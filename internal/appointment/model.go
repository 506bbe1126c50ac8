package appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

type Status string

const (
	StatusScheduled   Status = "scheduled"
	StatusTentative   Status = "tentative"
	StatusInProgress  Status = "in_progress"
	StatusCompleted   Status = "completed"
	StatusCancelled   Status = "cancelled"
	StatusNoShow      Status = "no_show"
	StatusRescheduled Status = "rescheduled"
)

// Terminal reports whether no further status transition is expected.
func (s Status) Terminal() bool {
	switch s {
	case StatusCancelled, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

func ValidStatus(s Status) bool {
	switch s {
	case StatusScheduled, StatusTentative, StatusInProgress,
		StatusCompleted, StatusCancelled, StatusNoShow, StatusRescheduled:
		return true
	}
	return false
}

// Room numbers are attached to appointments as plain integers; 0 means no
// room was requested.
const (
	MinRoom = 1
	MaxRoom = 999
)

func ValidRoom(room int) bool {
	return room >= MinRoom && room <= MaxRoom
}

type Appointment struct {
	ID                 uuid.UUID
	PhysicianID        uuid.UUID
	PatientID          uuid.UUID
	Start              time.Time
	End                time.Time
	Status             Status
	Room               int // 0 = none
	Reason             string
	Notes              string
	DocumentID         *uuid.UUID
	CancellationReason *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Booking maps the appointment down to the interval view conflict checks use.
func (a *Appointment) Booking() schedule.Booking {
	return schedule.Booking{
		ID:          a.ID,
		PhysicianID: a.PhysicianID,
		Start:       a.Start,
		End:         a.End,
		Cancelled:   a.Status == StatusCancelled,
		Room:        a.Room,
	}
}
