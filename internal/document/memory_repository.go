package document

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is a map-backed Store for the in-memory deployment
// variant and for tests.
type MemoryRepository struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]ClinicalDocument
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{docs: make(map[uuid.UUID]ClinicalDocument)}
}

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*ClinicalDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.docs[id]
	if !ok {
		return nil, ErrDocumentNotFound
	}
	return &d, nil
}

func (m *MemoryRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]ClinicalDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ClinicalDocument
	for _, d := range m.docs {
		if d.PatientID == patientID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListByPhysician(_ context.Context, physicianID uuid.UUID) ([]ClinicalDocument, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []ClinicalDocument
	for _, d := range m.docs {
		if d.PhysicianID == physicianID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (m *MemoryRepository) Create(_ context.Context, d *ClinicalDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[d.ID] = *d
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, d *ClinicalDocument) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[d.ID]; !ok {
		return ErrDocumentNotFound
	}
	m.docs[d.ID] = *d
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[id]; !ok {
		return ErrDocumentNotFound
	}
	delete(m.docs, id)
	return nil
}
