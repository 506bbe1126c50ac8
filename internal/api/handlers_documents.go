package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/brightcare/clinic-scheduling/internal/document"
)

func createDocumentHandler(svc *document.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req DocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}
		physicianID, err := uuid.Parse(req.PhysicianID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_physician_id", "physician_id must be a valid UUID")
			return
		}

		doc := document.ClinicalDocument{
			PatientID:   patientID,
			PhysicianID: physicianID,
			Subjective:  req.Subjective,
			Objective:   req.Objective,
			Assessment:  req.Assessment,
			Plan:        req.Plan,
		}
		if req.AppointmentID != "" {
			apptID, err := uuid.Parse(req.AppointmentID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_appointment_id", "appointment_id must be a valid UUID")
				return
			}
			doc.AppointmentID = &apptID
		}

		if err := svc.Create(r.Context(), &doc); err != nil {
			handleDocumentError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toDocumentResponse(&doc))
	}
}

func getDocumentHandler(svc *document.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		doc, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDocumentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDocumentResponse(doc))
	}
}

func patientDocumentsHandler(svc *document.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		docs, err := svc.ListByPatient(r.Context(), id)
		if err != nil {
			handleDocumentError(w, err)
			return
		}
		out := make([]DocumentResponse, 0, len(docs))
		for i := range docs {
			out = append(out, toDocumentResponse(&docs[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func updateDocumentHandler(svc *document.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		current, err := svc.Get(r.Context(), id)
		if err != nil {
			handleDocumentError(w, err)
			return
		}

		var req DocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		current.Subjective = req.Subjective
		current.Objective = req.Objective
		current.Assessment = req.Assessment
		current.Plan = req.Plan

		if err := svc.Update(r.Context(), current); err != nil {
			handleDocumentError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toDocumentResponse(current))
	}
}

func deleteDocumentHandler(svc *document.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			handleDocumentError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func handleDocumentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, document.ErrDocumentNotFound):
		writeError(w, http.StatusNotFound, "document_not_found", err.Error())
	case errors.Is(err, document.ErrMissingReference):
		writeError(w, http.StatusBadRequest, "missing_reference", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
