package profile

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewMemoryRepository(), zerolog.Nop())
}

func TestPatientLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p := &Patient{
		FirstName:   "Maria",
		LastName:    "Okafor",
		Email:       "maria.okafor@example.com",
		DateOfBirth: time.Date(1988, 4, 12, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, svc.CreatePatient(ctx, p))
	require.NotEqual(t, uuid.Nil, p.ID)

	got, err := svc.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Maria Okafor", got.DisplayName())
	assert.Equal(t, RolePatient, got.ProfileRole())

	got.Phone = "555-0142"
	require.NoError(t, svc.UpdatePatient(ctx, got))
	got, err = svc.GetPatient(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "555-0142", got.Phone)

	require.NoError(t, svc.DeletePatient(ctx, p.ID))
	_, err = svc.GetPatient(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPatientNotFound)
}

func TestCreatePatientRequiresName(t *testing.T) {
	svc := newTestService(t)

	err := svc.CreatePatient(context.Background(), &Patient{FirstName: "Maria"})
	assert.ErrorIs(t, err, ErrMissingName)
}

func TestPhysicianLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	p := &Physician{
		FirstName:     "Dana",
		LastName:      "Voss",
		Specialty:     "Cardiology",
		LicenseNumber: "MD-104422",
	}
	require.NoError(t, svc.CreatePhysician(ctx, p))

	got, err := svc.GetPhysician(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. Dana Voss", got.DisplayName())
	assert.Equal(t, RolePhysician, got.ProfileRole())
	assert.Equal(t, "Cardiology", got.Specialty)

	list, err := svc.ListPhysicians(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.DeletePhysician(ctx, p.ID))
	_, err = svc.GetPhysician(ctx, p.ID)
	assert.ErrorIs(t, err, ErrPhysicianNotFound)
}

func TestAdministratorLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := &Administrator{FirstName: "Jo", LastName: "Lindqvist", Title: "Office Manager"}
	require.NoError(t, svc.CreateAdministrator(ctx, a))

	got, err := svc.GetAdministrator(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Jo Lindqvist", got.DisplayName())
	assert.Equal(t, RoleAdministrator, got.ProfileRole())

	require.NoError(t, svc.DeleteAdministrator(ctx, a.ID))
	_, err = svc.GetAdministrator(ctx, a.ID)
	assert.ErrorIs(t, err, ErrAdministratorNotFound)
}

func TestExistenceChecks(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	ok, err := svc.PatientExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)

	p := &Patient{FirstName: "Maria", LastName: "Okafor"}
	require.NoError(t, svc.CreatePatient(ctx, p))
	ok, err = svc.PatientExists(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.PhysicianExists(ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestProfileInterfaceCoversAllKinds(t *testing.T) {
	profiles := []Profile{
		&Patient{ID: uuid.New(), FirstName: "A", LastName: "B"},
		&Physician{ID: uuid.New(), FirstName: "C", LastName: "D"},
		&Administrator{ID: uuid.New(), FirstName: "E", LastName: "F"},
	}

	roles := make(map[Role]bool)
	for _, p := range profiles {
		assert.NotEqual(t, uuid.Nil, p.ProfileID())
		assert.NotEmpty(t, p.DisplayName())
		roles[p.ProfileRole()] = true
	}
	assert.Len(t, roles, 3)
}
