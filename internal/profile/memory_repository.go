package profile

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is a map-backed Store for the in-memory deployment
// variant and for tests.
type MemoryRepository struct {
	mu             sync.RWMutex
	patients       map[uuid.UUID]Patient
	physicians     map[uuid.UUID]Physician
	administrators map[uuid.UUID]Administrator
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		patients:       make(map[uuid.UUID]Patient),
		physicians:     make(map[uuid.UUID]Physician),
		administrators: make(map[uuid.UUID]Administrator),
	}
}

func (m *MemoryRepository) GetPatient(_ context.Context, id uuid.UUID) (*Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.patients[id]
	if !ok {
		return nil, ErrPatientNotFound
	}
	return &p, nil
}

func (m *MemoryRepository) ListPatients(_ context.Context) ([]Patient, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Patient, 0, len(m.patients))
	for _, p := range m.patients {
		out = append(out, p)
	}
	return out, nil
}

func (m *MemoryRepository) CreatePatient(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.patients[p.ID] = *p
	return nil
}

func (m *MemoryRepository) UpdatePatient(_ context.Context, p *Patient) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[p.ID]; !ok {
		return ErrPatientNotFound
	}
	m.patients[p.ID] = *p
	return nil
}

func (m *MemoryRepository) DeletePatient(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.patients[id]; !ok {
		return ErrPatientNotFound
	}
	delete(m.patients, id)
	return nil
}

func (m *MemoryRepository) GetPhysician(_ context.Context, id uuid.UUID) (*Physician, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.physicians[id]
	if !ok {
		return nil, ErrPhysicianNotFound
	}
	return &p, nil
}

func (m *MemoryRepository) ListPhysicians(_ context.Context) ([]Physician, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Physician, 0, len(m.physicians))
	for _, p := range m.physicians {
		out = append(out, p)
	}
	return out, nil
}

func (m *MemoryRepository) CreatePhysician(_ context.Context, p *Physician) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.physicians[p.ID] = *p
	return nil
}

func (m *MemoryRepository) UpdatePhysician(_ context.Context, p *Physician) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.physicians[p.ID]; !ok {
		return ErrPhysicianNotFound
	}
	m.physicians[p.ID] = *p
	return nil
}

func (m *MemoryRepository) DeletePhysician(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.physicians[id]; !ok {
		return ErrPhysicianNotFound
	}
	delete(m.physicians, id)
	return nil
}

func (m *MemoryRepository) GetAdministrator(_ context.Context, id uuid.UUID) (*Administrator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.administrators[id]
	if !ok {
		return nil, ErrAdministratorNotFound
	}
	return &a, nil
}

func (m *MemoryRepository) ListAdministrators(_ context.Context) ([]Administrator, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Administrator, 0, len(m.administrators))
	for _, a := range m.administrators {
		out = append(out, a)
	}
	return out, nil
}

func (m *MemoryRepository) CreateAdministrator(_ context.Context, a *Administrator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.administrators[a.ID] = *a
	return nil
}

func (m *MemoryRepository) UpdateAdministrator(_ context.Context, a *Administrator) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.administrators[a.ID]; !ok {
		return ErrAdministratorNotFound
	}
	m.administrators[a.ID] = *a
	return nil
}

func (m *MemoryRepository) DeleteAdministrator(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.administrators[id]; !ok {
		return ErrAdministratorNotFound
	}
	delete(m.administrators, id)
	return nil
}
