package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrPatientNotFound       = errors.New("patient not found")
	ErrPhysicianNotFound     = errors.New("physician not found")
	ErrAdministratorNotFound = errors.New("administrator not found")
)

// Store contains all profile persistence needed by the service.
type Store interface {
	GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error)
	ListPatients(ctx context.Context) ([]Patient, error)
	CreatePatient(ctx context.Context, p *Patient) error
	UpdatePatient(ctx context.Context, p *Patient) error
	DeletePatient(ctx context.Context, id uuid.UUID) error

	GetPhysician(ctx context.Context, id uuid.UUID) (*Physician, error)
	ListPhysicians(ctx context.Context) ([]Physician, error)
	CreatePhysician(ctx context.Context, p *Physician) error
	UpdatePhysician(ctx context.Context, p *Physician) error
	DeletePhysician(ctx context.Context, id uuid.UUID) error

	GetAdministrator(ctx context.Context, id uuid.UUID) (*Administrator, error)
	ListAdministrators(ctx context.Context) ([]Administrator, error)
	CreateAdministrator(ctx context.Context, a *Administrator) error
	UpdateAdministrator(ctx context.Context, a *Administrator) error
	DeleteAdministrator(ctx context.Context, id uuid.UUID) error
}
