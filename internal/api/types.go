package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/brightcare/clinic-scheduling/internal/appointment"
	"github.com/brightcare/clinic-scheduling/internal/document"
	"github.com/brightcare/clinic-scheduling/internal/profile"
	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

type CreateAppointmentRequest struct {
	PhysicianID     string `json:"physician_id"`
	PatientID       string `json:"patient_id"`
	Start           string `json:"start"` // RFC3339
	End             string `json:"end,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Room            int    `json:"room,omitempty"`
	Reason          string `json:"reason,omitempty"`
	Notes           string `json:"notes,omitempty"`
	Tentative       bool   `json:"tentative,omitempty"`
}

type UpdateAppointmentRequest struct {
	Reason          *string `json:"reason,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	NewStart        *string `json:"new_start,omitempty"` // RFC3339
	DurationMinutes *int    `json:"duration_minutes,omitempty"`
	Room            *int    `json:"room,omitempty"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type LinkDocumentRequest struct {
	DocumentID string `json:"document_id"`
}

type AppointmentResponse struct {
	ID                 uuid.UUID  `json:"id"`
	PhysicianID        uuid.UUID  `json:"physician_id"`
	PatientID          uuid.UUID  `json:"patient_id"`
	Start              time.Time  `json:"start"`
	End                time.Time  `json:"end"`
	Status             string     `json:"status"`
	Room               int        `json:"room,omitempty"`
	Reason             string     `json:"reason,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	DocumentID         *uuid.UUID `json:"document_id,omitempty"`
	CancellationReason *string    `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func toAppointmentResponse(a *appointment.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:                 a.ID,
		PhysicianID:        a.PhysicianID,
		PatientID:          a.PatientID,
		Start:              a.Start,
		End:                a.End,
		Status:             string(a.Status),
		Room:               a.Room,
		Reason:             a.Reason,
		Notes:              a.Notes,
		DocumentID:         a.DocumentID,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
}

func toAppointmentList(appts []appointment.Appointment) []AppointmentResponse {
	out := make([]AppointmentResponse, 0, len(appts))
	for i := range appts {
		out = append(out, toAppointmentResponse(&appts[i]))
	}
	return out
}

type ConflictDetail struct {
	Type      string     `json:"type"`
	BookingID *uuid.UUID `json:"appointment_id,omitempty"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Detail    string     `json:"detail"`
}

type SlotResponse struct {
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Preferred bool      `json:"preferred,omitempty"`
}

// ConflictResponse is the 409 body for booking failures: the specific
// conflicts plus alternative slots.
type ConflictResponse struct {
	Error       string           `json:"error"`
	Summary     string           `json:"summary"`
	Conflicts   []ConflictDetail `json:"conflicts"`
	Suggestions []SlotResponse   `json:"suggestions"`
}

func toConflictResponse(report *appointment.ConflictReport) ConflictResponse {
	resp := ConflictResponse{
		Error:       "scheduling_conflict",
		Summary:     report.Summary,
		Conflicts:   make([]ConflictDetail, 0, len(report.Conflicts)),
		Suggestions: make([]SlotResponse, 0, len(report.Suggestions)),
	}
	for _, c := range report.Conflicts {
		resp.Conflicts = append(resp.Conflicts, ConflictDetail{
			Type:      string(c.Type),
			BookingID: c.BookingID,
			Start:     c.Start,
			End:       c.End,
			Detail:    c.Detail,
		})
	}
	for _, s := range report.Suggestions {
		resp.Suggestions = append(resp.Suggestions, SlotResponse(s))
	}
	return resp
}

type PatientRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	Email       string `json:"email,omitempty"`
	Phone       string `json:"phone,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // 2006-01-02
	Address     string `json:"address,omitempty"`
}

type PatientResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	DateOfBirth string    `json:"date_of_birth,omitempty"`
	Address     string    `json:"address,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toPatientResponse(p *profile.Patient) PatientResponse {
	dob := ""
	if !p.DateOfBirth.IsZero() {
		dob = p.DateOfBirth.Format("2006-01-02")
	}
	return PatientResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DisplayName: p.DisplayName(),
		Email:       p.Email,
		Phone:       p.Phone,
		DateOfBirth: dob,
		Address:     p.Address,
		CreatedAt:   p.CreatedAt,
	}
}

type PhysicianRequest struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Specialty     string `json:"specialty,omitempty"`
	LicenseNumber string `json:"license_number,omitempty"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
}

type PhysicianResponse struct {
	ID            uuid.UUID `json:"id"`
	FirstName     string    `json:"first_name"`
	LastName      string    `json:"last_name"`
	DisplayName   string    `json:"display_name"`
	Specialty     string    `json:"specialty,omitempty"`
	LicenseNumber string    `json:"license_number,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func toPhysicianResponse(p *profile.Physician) PhysicianResponse {
	return PhysicianResponse{
		ID:            p.ID,
		FirstName:     p.FirstName,
		LastName:      p.LastName,
		DisplayName:   p.DisplayName(),
		Specialty:     p.Specialty,
		LicenseNumber: p.LicenseNumber,
		Email:         p.Email,
		Phone:         p.Phone,
		CreatedAt:     p.CreatedAt,
	}
}

type AdministratorRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Title     string `json:"title,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type AdministratorResponse struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	DisplayName string    `json:"display_name"`
	Title       string    `json:"title,omitempty"`
	Email       string    `json:"email,omitempty"`
	Phone       string    `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func toAdministratorResponse(a *profile.Administrator) AdministratorResponse {
	return AdministratorResponse{
		ID:          a.ID,
		FirstName:   a.FirstName,
		LastName:    a.LastName,
		DisplayName: a.DisplayName(),
		Title:       a.Title,
		Email:       a.Email,
		Phone:       a.Phone,
		CreatedAt:   a.CreatedAt,
	}
}

type DocumentRequest struct {
	PatientID     string `json:"patient_id"`
	PhysicianID   string `json:"physician_id"`
	AppointmentID string `json:"appointment_id,omitempty"`
	Subjective    string `json:"subjective,omitempty"`
	Objective     string `json:"objective,omitempty"`
	Assessment    string `json:"assessment,omitempty"`
	Plan          string `json:"plan,omitempty"`
}

type DocumentResponse struct {
	ID            uuid.UUID  `json:"id"`
	PatientID     uuid.UUID  `json:"patient_id"`
	PhysicianID   uuid.UUID  `json:"physician_id"`
	AppointmentID *uuid.UUID `json:"appointment_id,omitempty"`
	Subjective    string     `json:"subjective,omitempty"`
	Objective     string     `json:"objective,omitempty"`
	Assessment    string     `json:"assessment,omitempty"`
	Plan          string     `json:"plan,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func toDocumentResponse(d *document.ClinicalDocument) DocumentResponse {
	return DocumentResponse{
		ID:            d.ID,
		PatientID:     d.PatientID,
		PhysicianID:   d.PhysicianID,
		AppointmentID: d.AppointmentID,
		Subjective:    d.Subjective,
		Objective:     d.Objective,
		Assessment:    d.Assessment,
		Plan:          d.Plan,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

type BlockRequest struct {
	PhysicianID string `json:"physician_id,omitempty"` // empty = facility-wide
	Start       string `json:"start"`                  // RFC3339
	End         string `json:"end"`
	Reason      string `json:"reason"`
	Description string `json:"description,omitempty"`
}

type BlockResponse struct {
	ID          uuid.UUID  `json:"id"`
	PhysicianID *uuid.UUID `json:"physician_id,omitempty"`
	Start       time.Time  `json:"start"`
	End         time.Time  `json:"end"`
	Reason      string     `json:"reason"`
	Description string     `json:"description,omitempty"`
}

func toBlockResponse(b *schedule.UnavailableBlock) BlockResponse {
	return BlockResponse{
		ID:          b.ID,
		PhysicianID: b.PhysicianID,
		Start:       b.Start,
		End:         b.End,
		Reason:      string(b.Reason),
		Description: b.Description,
	}
}

// TemplateRequest carries a weekly availability template keyed by lowercase
// weekday name, windows as HH:MM local times.
type TemplateRequest struct {
	Windows map[string][]TemplateWindow `json:"windows"`
}

type TemplateWindow struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
