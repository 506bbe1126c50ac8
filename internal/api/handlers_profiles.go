package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/brightcare/clinic-scheduling/internal/profile"
)

func createPatientHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p := profile.Patient{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
			Address:   req.Address,
		}
		if req.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date_of_birth", "date_of_birth must be YYYY-MM-DD")
				return
			}
			p.DateOfBirth = dob
		}

		if err := svc.CreatePatient(r.Context(), &p); err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPatientResponse(&p))
	}
}

func getPatientHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		p, err := svc.GetPatient(r.Context(), id)
		if err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

func listPatientsHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		patients, err := svc.ListPatients(r.Context())
		if err != nil {
			handleProfileError(w, err)
			return
		}
		out := make([]PatientResponse, 0, len(patients))
		for i := range patients {
			out = append(out, toPatientResponse(&patients[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updatePatientHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		current, err := svc.GetPatient(r.Context(), id)
		if err != nil {
			handleProfileError(w, err)
			return
		}

		var req PatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		current.FirstName = req.FirstName
		current.LastName = req.LastName
		current.Email = req.Email
		current.Phone = req.Phone
		current.Address = req.Address
		if req.DateOfBirth != "" {
			dob, err := time.Parse("2006-01-02", req.DateOfBirth)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_date_of_birth", "date_of_birth must be YYYY-MM-DD")
				return
			}
			current.DateOfBirth = dob
		}

		if err := svc.UpdatePatient(r.Context(), current); err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPatientResponse(current))
	}
}

func deletePatientHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := svc.DeletePatient(r.Context(), id); err != nil {
			handleProfileError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createPhysicianHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PhysicianRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		p := profile.Physician{
			FirstName:     req.FirstName,
			LastName:      req.LastName,
			Specialty:     req.Specialty,
			LicenseNumber: req.LicenseNumber,
			Email:         req.Email,
			Phone:         req.Phone,
		}
		if err := svc.CreatePhysician(r.Context(), &p); err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPhysicianResponse(&p))
	}
}

func getPhysicianHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		p, err := svc.GetPhysician(r.Context(), id)
		if err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPhysicianResponse(p))
	}
}

func listPhysiciansHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		physicians, err := svc.ListPhysicians(r.Context())
		if err != nil {
			handleProfileError(w, err)
			return
		}
		out := make([]PhysicianResponse, 0, len(physicians))
		for i := range physicians {
			out = append(out, toPhysicianResponse(&physicians[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updatePhysicianHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		current, err := svc.GetPhysician(r.Context(), id)
		if err != nil {
			handleProfileError(w, err)
			return
		}

		var req PhysicianRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		current.FirstName = req.FirstName
		current.LastName = req.LastName
		current.Specialty = req.Specialty
		current.LicenseNumber = req.LicenseNumber
		current.Email = req.Email
		current.Phone = req.Phone

		if err := svc.UpdatePhysician(r.Context(), current); err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPhysicianResponse(current))
	}
}

func deletePhysicianHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := svc.DeletePhysician(r.Context(), id); err != nil {
			handleProfileError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func createAdministratorHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req AdministratorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		a := profile.Administrator{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Title:     req.Title,
			Email:     req.Email,
			Phone:     req.Phone,
		}
		if err := svc.CreateAdministrator(r.Context(), &a); err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAdministratorResponse(&a))
	}
}

func getAdministratorHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		a, err := svc.GetAdministrator(r.Context(), id)
		if err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdministratorResponse(a))
	}
}

func listAdministratorsHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admins, err := svc.ListAdministrators(r.Context())
		if err != nil {
			handleProfileError(w, err)
			return
		}
		out := make([]AdministratorResponse, 0, len(admins))
		for i := range admins {
			out = append(out, toAdministratorResponse(&admins[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateAdministratorHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		current, err := svc.GetAdministrator(r.Context(), id)
		if err != nil {
			handleProfileError(w, err)
			return
		}

		var req AdministratorRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		current.FirstName = req.FirstName
		current.LastName = req.LastName
		current.Title = req.Title
		current.Email = req.Email
		current.Phone = req.Phone

		if err := svc.UpdateAdministrator(r.Context(), current); err != nil {
			handleProfileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAdministratorResponse(current))
	}
}

func deleteAdministratorHandler(svc *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := svc.DeleteAdministrator(r.Context(), id); err != nil {
			handleProfileError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleProfileError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, profile.ErrPatientNotFound):
		writeError(w, http.StatusNotFound, "patient_not_found", err.Error())
	case errors.Is(err, profile.ErrPhysicianNotFound):
		writeError(w, http.StatusNotFound, "physician_not_found", err.Error())
	case errors.Is(err, profile.ErrAdministratorNotFound):
		writeError(w, http.StatusNotFound, "administrator_not_found", err.Error())
	case errors.Is(err, profile.ErrMissingName):
		writeError(w, http.StatusBadRequest, "missing_name", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
