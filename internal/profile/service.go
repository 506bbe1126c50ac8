package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrMissingName = errors.New("first and last name are required")

type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

// -- Patients --

func (s *Service) CreatePatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return ErrMissingName
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.store.CreatePatient(ctx, p); err != nil {
		return fmt.Errorf("create patient: %w", err)
	}
	s.log.Info().Str("patient_id", p.ID.String()).Msg("patient created")
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	return s.store.GetPatient(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context) ([]Patient, error) {
	return s.store.ListPatients(ctx)
}

func (s *Service) UpdatePatient(ctx context.Context, p *Patient) error {
	if p.FirstName == "" || p.LastName == "" {
		return ErrMissingName
	}
	p.UpdatedAt = time.Now()
	return s.store.UpdatePatient(ctx, p)
}

func (s *Service) DeletePatient(ctx context.Context, id uuid.UUID) error {
	return s.store.DeletePatient(ctx, id)
}

// PatientExists backs the existence checks controllers run before booking.
func (s *Service) PatientExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.store.GetPatient(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPatientNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// -- Physicians --

func (s *Service) CreatePhysician(ctx context.Context, p *Physician) error {
	if p.FirstName == "" || p.LastName == "" {
		return ErrMissingName
	}
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := s.store.CreatePhysician(ctx, p); err != nil {
		return fmt.Errorf("create physician: %w", err)
	}
	s.log.Info().Str("physician_id", p.ID.String()).Str("specialty", p.Specialty).Msg("physician created")
	return nil
}

func (s *Service) GetPhysician(ctx context.Context, id uuid.UUID) (*Physician, error) {
	return s.store.GetPhysician(ctx, id)
}

func (s *Service) ListPhysicians(ctx context.Context) ([]Physician, error) {
	return s.store.ListPhysicians(ctx)
}

func (s *Service) UpdatePhysician(ctx context.Context, p *Physician) error {
	if p.FirstName == "" || p.LastName == "" {
		return ErrMissingName
	}
	p.UpdatedAt = time.Now()
	return s.store.UpdatePhysician(ctx, p)
}

func (s *Service) DeletePhysician(ctx context.Context, id uuid.UUID) error {
	return s.store.DeletePhysician(ctx, id)
}

func (s *Service) PhysicianExists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, err := s.store.GetPhysician(ctx, id)
	if err != nil {
		if errors.Is(err, ErrPhysicianNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// -- Administrators --

func (s *Service) CreateAdministrator(ctx context.Context, a *Administrator) error {
	if a.FirstName == "" || a.LastName == "" {
		return ErrMissingName
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	return s.store.CreateAdministrator(ctx, a)
}

func (s *Service) GetAdministrator(ctx context.Context, id uuid.UUID) (*Administrator, error) {
	return s.store.GetAdministrator(ctx, id)
}

func (s *Service) ListAdministrators(ctx context.Context) ([]Administrator, error) {
	return s.store.ListAdministrators(ctx)
}

func (s *Service) UpdateAdministrator(ctx context.Context, a *Administrator) error {
	if a.FirstName == "" || a.LastName == "" {
		return ErrMissingName
	}
	a.UpdatedAt = time.Now()
	return s.store.UpdateAdministrator(ctx, a)
}

func (s *Service) DeleteAdministrator(ctx context.Context, id uuid.UUID) error {
	return s.store.DeleteAdministrator(ctx, id)
}
