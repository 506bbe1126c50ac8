package document

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

var ErrMissingReference = errors.New("patient and physician ids are required")

type Service struct {
	store Store
	log   zerolog.Logger
}

func NewService(store Store, log zerolog.Logger) *Service {
	return &Service{store: store, log: log}
}

func (s *Service) Create(ctx context.Context, d *ClinicalDocument) error {
	if d.PatientID == uuid.Nil || d.PhysicianID == uuid.Nil {
		return ErrMissingReference
	}
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	now := time.Now()
	d.CreatedAt = now
	d.UpdatedAt = now
	if err := s.store.Create(ctx, d); err != nil {
		return fmt.Errorf("create document: %w", err)
	}
	s.log.Info().Str("document_id", d.ID.String()).Str("patient_id", d.PatientID.String()).Msg("clinical document created")
	return nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*ClinicalDocument, error) {
	return s.store.GetByID(ctx, id)
}

func (s *Service) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalDocument, error) {
	return s.store.ListByPatient(ctx, patientID)
}

func (s *Service) ListByPhysician(ctx context.Context, physicianID uuid.UUID) ([]ClinicalDocument, error) {
	return s.store.ListByPhysician(ctx, physicianID)
}

func (s *Service) Update(ctx context.Context, d *ClinicalDocument) error {
	d.UpdatedAt = time.Now()
	return s.store.Update(ctx, d)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.store.Delete(ctx, id)
}
