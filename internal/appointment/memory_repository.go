package appointment

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

// MemoryRepository is a map-backed Store and BlockStore. It serves the
// in-memory deployment variant and doubles as the fixture for service tests.
type MemoryRepository struct {
	mu           sync.RWMutex
	appointments map[uuid.UUID]Appointment
	blocks       map[uuid.UUID]schedule.UnavailableBlock
	templates    map[uuid.UUID]schedule.WeeklyTemplate
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		appointments: make(map[uuid.UUID]Appointment),
		blocks:       make(map[uuid.UUID]schedule.UnavailableBlock),
		templates:    make(map[uuid.UUID]schedule.WeeklyTemplate),
	}
}

// -- Store --

func (m *MemoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.appointments[id]
	if !ok {
		return nil, ErrAppointmentNotFound
	}
	return &a, nil
}

func (m *MemoryRepository) ListByPhysician(_ context.Context, physicianID uuid.UUID) ([]Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Appointment
	for _, a := range m.appointments {
		if a.PhysicianID == physicianID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListByPatient(_ context.Context, patientID uuid.UUID) ([]Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Appointment
	for _, a := range m.appointments {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListByRoom(_ context.Context, room int) ([]Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []Appointment
	for _, a := range m.appointments {
		if a.Room == room {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListAll(_ context.Context) ([]Appointment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Appointment, 0, len(m.appointments))
	for _, a := range m.appointments {
		out = append(out, a)
	}
	return out, nil
}

func (m *MemoryRepository) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appointments[a.ID] = *a
	return nil
}

func (m *MemoryRepository) Update(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[a.ID]; !ok {
		return ErrAppointmentNotFound
	}
	m.appointments[a.ID] = *a
	return nil
}

func (m *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.appointments[id]; !ok {
		return ErrAppointmentNotFound
	}
	delete(m.appointments, id)
	return nil
}

// -- BlockStore --

func (m *MemoryRepository) ListFacilityBlocks(_ context.Context) ([]schedule.UnavailableBlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.UnavailableBlock
	for _, b := range m.blocks {
		if b.PhysicianID == nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryRepository) ListPhysicianBlocks(_ context.Context, physicianID uuid.UUID) ([]schedule.UnavailableBlock, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []schedule.UnavailableBlock
	for _, b := range m.blocks {
		if b.PhysicianID != nil && *b.PhysicianID == physicianID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *MemoryRepository) CreateBlocks(_ context.Context, blocks []schedule.UnavailableBlock) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range blocks {
		m.blocks[b.ID] = b
	}
	return nil
}

func (m *MemoryRepository) LatestStandardBlockEnd(_ context.Context) (time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var latest time.Time
	for _, b := range m.blocks {
		if b.Reason != schedule.ReasonWeekend && b.Reason != schedule.ReasonAfterHours {
			continue
		}
		if b.End.After(latest) {
			latest = b.End
		}
	}
	return latest, nil
}

func (m *MemoryRepository) DeleteBlocksBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, b := range m.blocks {
		if b.End.Before(cutoff) {
			delete(m.blocks, id)
			n++
		}
	}
	return n, nil
}

func (m *MemoryRepository) GetTemplate(_ context.Context, physicianID uuid.UUID) (schedule.WeeklyTemplate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.templates[physicianID]
	if !ok {
		return nil, ErrTemplateNotFound
	}
	return t, nil
}

func (m *MemoryRepository) SetTemplate(_ context.Context, physicianID uuid.UUID, t schedule.WeeklyTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.templates[physicianID] = t
	return nil
}
