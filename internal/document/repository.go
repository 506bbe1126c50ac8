package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var ErrDocumentNotFound = errors.New("clinical document not found")

type Store interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ClinicalDocument, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalDocument, error)
	ListByPhysician(ctx context.Context, physicianID uuid.UUID) ([]ClinicalDocument, error)
	Create(ctx context.Context, d *ClinicalDocument) error
	Update(ctx context.Context, d *ClinicalDocument) error
	Delete(ctx context.Context, id uuid.UUID) error
}
