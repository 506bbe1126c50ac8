package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrTemplateNotFound    = errors.New("availability template not found")
)

// Store contains all appointment persistence needed by the scheduler service.
// Implementations must be read-your-writes consistent within one operation.
type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	ListByPhysician(ctx context.Context, physicianID uuid.UUID) ([]Appointment, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error)
	ListByRoom(ctx context.Context, room int) ([]Appointment, error)
	ListAll(ctx context.Context) ([]Appointment, error)
	Create(ctx context.Context, a *Appointment) error
	Update(ctx context.Context, a *Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// BlockStore persists unavailable blocks and weekly availability templates.
type BlockStore interface {
	ListFacilityBlocks(ctx context.Context) ([]schedule.UnavailableBlock, error)
	ListPhysicianBlocks(ctx context.Context, physicianID uuid.UUID) ([]schedule.UnavailableBlock, error)
	CreateBlocks(ctx context.Context, blocks []schedule.UnavailableBlock) error
	// LatestStandardBlockEnd returns the zero time when no weekend or
	// after-hours block exists yet.
	LatestStandardBlockEnd(ctx context.Context) (time.Time, error)
	DeleteBlocksBefore(ctx context.Context, cutoff time.Time) (int64, error)

	GetTemplate(ctx context.Context, physicianID uuid.UUID) (schedule.WeeklyTemplate, error)
	SetTemplate(ctx context.Context, physicianID uuid.UUID, t schedule.WeeklyTemplate) error
}
