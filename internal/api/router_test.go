package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brightcare/clinic-scheduling/internal/appointment"
	"github.com/brightcare/clinic-scheduling/internal/config"
	"github.com/brightcare/clinic-scheduling/internal/document"
	"github.com/brightcare/clinic-scheduling/internal/profile"
)

// mutexLocker stands in for the Redis locker in handler tests.
type mutexLocker struct {
	mu sync.Mutex
}

func (l *mutexLocker) WithPhysicianLock(ctx context.Context, _ uuid.UUID, fn func(ctx context.Context) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(ctx)
}

func (l *mutexLocker) WithRoomLock(ctx context.Context, _ int, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := config.Config{
		Env:               "dev",
		BusinessStartHour: 8,
		BusinessEndHour:   17,
		SlotGranularity:   15 * time.Minute,
		RollingWindowDays: 14,
		SearchHorizonDays: 14,
		DefaultDuration:   30 * time.Minute,
		MaxSuggestions:    3,
	}
	log := zerolog.Nop()

	apptRepo := appointment.NewMemoryRepository()
	router := NewRouter(RouterConfig{
		Appointments: appointment.NewService(apptRepo, apptRepo, &mutexLocker{}, cfg, log),
		Profiles:     profile.NewService(profile.NewMemoryRepository(), log),
		Documents:    document.NewService(document.NewMemoryRepository(), log),
		Env:          cfg.Env,
		Version:      "test",
		Logger:       log,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, url, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func createTestPhysician(t *testing.T, base string) uuid.UUID {
	t.Helper()
	status, raw := doJSON(t, http.MethodPost, base+"/physicians", PhysicianRequest{
		FirstName: "Dana",
		LastName:  "Voss",
		Specialty: "Cardiology",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var resp PhysicianResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp.ID
}

func createTestPatient(t *testing.T, base string) uuid.UUID {
	t.Helper()
	status, raw := doJSON(t, http.MethodPost, base+"/patients", PatientRequest{
		FirstName: "Maria",
		LastName:  "Okafor",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))
	var resp PatientResponse
	require.NoError(t, json.Unmarshal(raw, &resp))
	return resp.ID
}

// futureSlot returns an RFC3339 start a week out, at a fixed clock time so
// runs are stable.
func futureSlot(hour int) string {
	day := time.Now().AddDate(0, 0, 7)
	slot := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	return slot.Format(time.RFC3339)
}

func TestBookingFlow(t *testing.T) {
	srv := newTestServer(t)
	physID := createTestPhysician(t, srv.URL)
	patID := createTestPatient(t, srv.URL)

	status, raw := doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID:     physID.String(),
		PatientID:       patID.String(),
		Start:           futureSlot(10),
		DurationMinutes: 30,
		Reason:          "annual physical",
	})
	require.Equal(t, http.StatusCreated, status, string(raw))

	var created AppointmentResponse
	require.NoError(t, json.Unmarshal(raw, &created))
	assert.Equal(t, "scheduled", created.Status)
	assert.Equal(t, physID, created.PhysicianID)

	status, raw = doJSON(t, http.MethodGet, srv.URL+"/appointments/"+created.ID.String(), nil)
	require.Equal(t, http.StatusOK, status)
	var fetched AppointmentResponse
	require.NoError(t, json.Unmarshal(raw, &fetched))
	assert.Equal(t, created.ID, fetched.ID)

	// The same slot again returns the conflict report.
	status, raw = doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID:     physID.String(),
		PatientID:       patID.String(),
		Start:           futureSlot(10),
		DurationMinutes: 30,
	})
	require.Equal(t, http.StatusConflict, status, string(raw))

	var conflict ConflictResponse
	require.NoError(t, json.Unmarshal(raw, &conflict))
	assert.Equal(t, "scheduling_conflict", conflict.Error)
	require.Len(t, conflict.Conflicts, 1)
	assert.Equal(t, "double_booked", conflict.Conflicts[0].Type)
	require.NotNil(t, conflict.Conflicts[0].BookingID)
	assert.Equal(t, created.ID, *conflict.Conflicts[0].BookingID)
	assert.NotEmpty(t, conflict.Suggestions)
}

func TestBookingUnknownProfiles(t *testing.T) {
	srv := newTestServer(t)
	patID := createTestPatient(t, srv.URL)

	status, raw := doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID:     uuid.NewString(),
		PatientID:       patID.String(),
		Start:           futureSlot(10),
		DurationMinutes: 30,
	})
	assert.Equal(t, http.StatusNotFound, status, string(raw))

	physID := createTestPhysician(t, srv.URL)
	status, raw = doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID:     physID.String(),
		PatientID:       uuid.NewString(),
		Start:           futureSlot(10),
		DurationMinutes: 30,
	})
	assert.Equal(t, http.StatusNotFound, status, string(raw))
}

func TestBookingValidation(t *testing.T) {
	srv := newTestServer(t)
	physID := createTestPhysician(t, srv.URL)
	patID := createTestPatient(t, srv.URL)

	// Missing both end and duration.
	status, _ := doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID: physID.String(),
		PatientID:   patID.String(),
		Start:       futureSlot(10),
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Start in the past.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID:     physID.String(),
		PatientID:       patID.String(),
		Start:           time.Now().Add(-time.Hour).Format(time.RFC3339),
		DurationMinutes: 30,
	})
	assert.Equal(t, http.StatusBadRequest, status)

	// Garbage id.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID:     "not-a-uuid",
		PatientID:       patID.String(),
		Start:           futureSlot(10),
		DurationMinutes: 30,
	})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestCancelFlow(t *testing.T) {
	srv := newTestServer(t)
	physID := createTestPhysician(t, srv.URL)
	patID := createTestPatient(t, srv.URL)

	status, raw := doJSON(t, http.MethodPost, srv.URL+"/appointments", CreateAppointmentRequest{
		PhysicianID:     physID.String(),
		PatientID:       patID.String(),
		Start:           futureSlot(10),
		DurationMinutes: 30,
	})
	require.Equal(t, http.StatusCreated, status)
	var created AppointmentResponse
	require.NoError(t, json.Unmarshal(raw, &created))

	status, raw = doJSON(t, http.MethodPost, srv.URL+"/appointments/"+created.ID.String()+"/cancel",
		CancelAppointmentRequest{Reason: "patient request"})
	require.Equal(t, http.StatusOK, status, string(raw))
	var cancelled AppointmentResponse
	require.NoError(t, json.Unmarshal(raw, &cancelled))
	assert.Equal(t, "cancelled", cancelled.Status)
	require.NotNil(t, cancelled.CancellationReason)
	assert.Equal(t, "patient request", *cancelled.CancellationReason)

	// Cancelling twice is a conflict, not a success.
	status, _ = doJSON(t, http.MethodPost, srv.URL+"/appointments/"+created.ID.String()+"/cancel",
		CancelAppointmentRequest{Reason: "again"})
	assert.Equal(t, http.StatusConflict, status)
}

func TestAvailabilityTemplateRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	physID := createTestPhysician(t, srv.URL)

	status, raw := doJSON(t, http.MethodPut, srv.URL+"/physicians/"+physID.String()+"/availability",
		TemplateRequest{Windows: map[string][]TemplateWindow{
			"monday": {{Start: "09:00", End: "12:00"}, {Start: "14:00", End: "17:00"}},
			"friday": {{Start: "09:00", End: "13:00"}},
		}})
	require.Equal(t, http.StatusNoContent, status, string(raw))

	status, raw = doJSON(t, http.MethodGet, srv.URL+"/physicians/"+physID.String()+"/availability", nil)
	require.Equal(t, http.StatusOK, status)

	var got TemplateRequest
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Len(t, got.Windows["monday"], 2)
	assert.Equal(t, "09:00", got.Windows["monday"][0].Start)
	assert.Equal(t, "12:00", got.Windows["monday"][0].End)
	require.Len(t, got.Windows["friday"], 1)

	// Malformed clock values are rejected.
	status, _ = doJSON(t, http.MethodPut, srv.URL+"/physicians/"+physID.String()+"/availability",
		TemplateRequest{Windows: map[string][]TemplateWindow{
			"monday": {{Start: "9am", End: "noon"}},
		}})
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestAvailableSlotsEndpoint(t *testing.T) {
	srv := newTestServer(t)
	physID := createTestPhysician(t, srv.URL)

	status, raw := doJSON(t, http.MethodGet,
		srv.URL+"/physicians/"+physID.String()+"/available-slots?after="+futureSlot(9)+"&duration_minutes=30&count=2", nil)
	require.Equal(t, http.StatusOK, status, string(raw))

	var slots []SlotResponse
	require.NoError(t, json.Unmarshal(raw, &slots))
	require.Len(t, slots, 2)
	assert.Equal(t, 30*time.Minute, slots[0].End.Sub(slots[0].Start))
}
