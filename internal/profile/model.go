package profile

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RolePatient       Role = "patient"
	RolePhysician     Role = "physician"
	RoleAdministrator Role = "administrator"
)

// Profile is the closed interface over the three profile kinds. Dispatch on
// ProfileRole instead of type switches.
type Profile interface {
	ProfileID() uuid.UUID
	DisplayName() string
	ProfileRole() Role
}

type Patient struct {
	ID          uuid.UUID
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	DateOfBirth time.Time
	Address     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (p *Patient) ProfileID() uuid.UUID { return p.ID }
func (p *Patient) DisplayName() string  { return p.FirstName + " " + p.LastName }
func (p *Patient) ProfileRole() Role    { return RolePatient }

type Physician struct {
	ID            uuid.UUID
	FirstName     string
	LastName      string
	Specialty     string
	LicenseNumber string
	Email         string
	Phone         string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (p *Physician) ProfileID() uuid.UUID { return p.ID }
func (p *Physician) DisplayName() string  { return "Dr. " + p.FirstName + " " + p.LastName }
func (p *Physician) ProfileRole() Role    { return RolePhysician }

type Administrator struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Title     string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a *Administrator) ProfileID() uuid.UUID { return a.ID }
func (a *Administrator) DisplayName() string  { return a.FirstName + " " + a.LastName }
func (a *Administrator) ProfileRole() Role    { return RoleAdministrator }
