package document

import (
	"time"

	"github.com/google/uuid"
)

// ClinicalDocument is a SOAP-structured visit note.
type ClinicalDocument struct {
	ID            uuid.UUID
	PatientID     uuid.UUID
	PhysicianID   uuid.UUID
	AppointmentID *uuid.UUID
	Subjective    string
	Objective     string
	Assessment    string
	Plan          string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
