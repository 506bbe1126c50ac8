package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/brightcare/clinic-scheduling/internal/appointment"
	"github.com/brightcare/clinic-scheduling/internal/profile"
	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

func createAppointmentHandler(svc *appointment.Service, profiles *profile.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		physicianID, err := uuid.Parse(req.PhysicianID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_physician_id", "physician_id must be a valid UUID")
			return
		}
		patientID, err := uuid.Parse(req.PatientID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_patient_id", "patient_id must be a valid UUID")
			return
		}

		start, err := time.Parse(time.RFC3339, req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start", "start must be RFC3339")
			return
		}
		if start.Before(time.Now()) {
			writeError(w, http.StatusBadRequest, "start_in_past", "appointments cannot start in the past")
			return
		}

		var end time.Time
		switch {
		case req.End != "":
			end, err = time.Parse(time.RFC3339, req.End)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_end", "end must be RFC3339")
				return
			}
		case req.DurationMinutes > 0:
			end = start.Add(time.Duration(req.DurationMinutes) * time.Minute)
		default:
			writeError(w, http.StatusBadRequest, "missing_end", "provide end or duration_minutes")
			return
		}

		// The scheduler stores references without validating them, so the
		// existence checks live here.
		if ok, err := profiles.PhysicianExists(r.Context(), physicianID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		} else if !ok {
			writeError(w, http.StatusNotFound, "physician_not_found", "no physician with that id")
			return
		}
		if ok, err := profiles.PatientExists(r.Context(), patientID); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
			return
		} else if !ok {
			writeError(w, http.StatusNotFound, "patient_not_found", "no patient with that id")
			return
		}

		appt, report, err := svc.Schedule(r.Context(), appointment.ScheduleRequest{
			PhysicianID: physicianID,
			PatientID:   patientID,
			Start:       start,
			End:         end,
			Room:        req.Room,
			Reason:      req.Reason,
			Notes:       req.Notes,
			Tentative:   req.Tentative,
		})
		if err != nil {
			handleSchedulingError(w, err, report)
			return
		}

		writeJSON(w, http.StatusCreated, toAppointmentResponse(appt))
	}
}

func getAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		appt, err := svc.GetAppointment(r.Context(), id)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func updateAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req UpdateAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		update := appointment.UpdateRequest{
			Reason:          req.Reason,
			Notes:           req.Notes,
			DurationMinutes: req.DurationMinutes,
			Room:            req.Room,
		}
		if req.NewStart != nil {
			start, err := time.Parse(time.RFC3339, *req.NewStart)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_new_start", "new_start must be RFC3339")
				return
			}
			update.NewStart = &start
		}

		appt, report, err := svc.UpdateAppointment(r.Context(), id, update)
		if err != nil {
			handleSchedulingError(w, err, report)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func cancelAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req CancelAppointmentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		appt, err := svc.Cancel(r.Context(), id, req.Reason)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func deleteAppointmentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), id); err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func transitionHandler(fn func(r *http.Request, id uuid.UUID) (*appointment.Appointment, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		appt, err := fn(r, id)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func linkDocumentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req LinkDocumentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}
		docID, err := uuid.Parse(req.DocumentID)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_document_id", "document_id must be a valid UUID")
			return
		}

		appt, err := svc.LinkDocument(r.Context(), id, docID)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func unlinkDocumentHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		appt, err := svc.UnlinkDocument(r.Context(), id)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentResponse(appt))
	}
}

func physicianScheduleHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		var (
			appts []appointment.Appointment
			err   error
		)
		switch {
		case q.Get("date") != "":
			day, perr := time.Parse("2006-01-02", q.Get("date"))
			if perr != nil {
				writeError(w, http.StatusBadRequest, "invalid_date", "date must be YYYY-MM-DD")
				return
			}
			appts, err = svc.GetDailySchedule(r.Context(), id, day)
		case q.Get("from") != "" && q.Get("to") != "":
			from, perr := time.Parse(time.RFC3339, q.Get("from"))
			if perr != nil {
				writeError(w, http.StatusBadRequest, "invalid_from", "from must be RFC3339")
				return
			}
			to, perr := time.Parse(time.RFC3339, q.Get("to"))
			if perr != nil {
				writeError(w, http.StatusBadRequest, "invalid_to", "to must be RFC3339")
				return
			}
			appts, err = svc.GetScheduleInRange(r.Context(), id, from, to)
		default:
			appts, err = svc.GetDailySchedule(r.Context(), id, time.Now())
		}
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentList(appts))
	}
}

func availableSlotsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		q := r.URL.Query()
		after := time.Now()
		if s := q.Get("after"); s != "" {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_after", "after must be RFC3339")
				return
			}
			after = t
		}

		minutes := 30
		if s := q.Get("duration_minutes"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "invalid_duration", "duration_minutes must be a positive integer")
				return
			}
			minutes = n
		}

		count := 3
		if s := q.Get("count"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil || n <= 0 {
				writeError(w, http.StatusBadRequest, "invalid_count", "count must be a positive integer")
				return
			}
			count = n
		}

		slots, err := svc.FindNextAvailableSlot(r.Context(), id, after, time.Duration(minutes)*time.Minute, count)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}

		out := make([]SlotResponse, 0, len(slots))
		for _, s := range slots {
			out = append(out, SlotResponse(s))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func physicianStatsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		counts, err := svc.Stats(r.Context(), id)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		out := make(map[string]int, len(counts))
		for k, v := range counts {
			out[string(k)] = v
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func patientAppointmentsHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}
		appts, err := svc.GetPatientAppointments(r.Context(), id)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusOK, toAppointmentList(appts))
	}
}

func createBlockHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req BlockRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		start, err := time.Parse(time.RFC3339, req.Start)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_start", "start must be RFC3339")
			return
		}
		end, err := time.Parse(time.RFC3339, req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_end", "end must be RFC3339")
			return
		}

		blk := schedule.UnavailableBlock{
			Start:       start,
			End:         end,
			Reason:      schedule.BlockReason(req.Reason),
			Description: req.Description,
		}
		if req.PhysicianID != "" {
			pid, err := uuid.Parse(req.PhysicianID)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid_physician_id", "physician_id must be a valid UUID")
				return
			}
			blk.PhysicianID = &pid
		}

		created, err := svc.AddBlock(r.Context(), blk)
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		writeJSON(w, http.StatusCreated, toBlockResponse(created))
	}
}

func listBlocksHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blocks, err := svc.ListFacilityBlocks(r.Context())
		if err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		out := make([]BlockResponse, 0, len(blocks))
		for i := range blocks {
			out = append(out, toBlockResponse(&blocks[i]))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func setTemplateHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		var req TemplateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request_body", "could not parse JSON")
			return
		}

		tmpl := make(schedule.WeeklyTemplate, len(req.Windows))
		for name, windows := range req.Windows {
			day, ok := weekdayNames[name]
			if !ok {
				writeError(w, http.StatusBadRequest, "invalid_weekday", "unknown weekday "+name)
				return
			}
			for _, win := range windows {
				startOff, err := parseClock(win.Start)
				if err != nil {
					writeError(w, http.StatusBadRequest, "invalid_window", "start must be HH:MM")
					return
				}
				endOff, err := parseClock(win.End)
				if err != nil || endOff <= startOff {
					writeError(w, http.StatusBadRequest, "invalid_window", "end must be HH:MM after start")
					return
				}
				tmpl[day] = append(tmpl[day], schedule.DayWindow{Start: startOff, End: endOff})
			}
		}

		if err := svc.SetWeeklyTemplate(r.Context(), id, tmpl); err != nil {
			handleSchedulingError(w, err, nil)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func getTemplateHandler(svc *appointment.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseIDParam(w, r)
		if !ok {
			return
		}

		tmpl, err := svc.GetWeeklyTemplate(r.Context(), id)
		if err != nil {
			if errors.Is(err, appointment.ErrTemplateNotFound) {
				writeError(w, http.StatusNotFound, "template_not_found", "no availability template set")
				return
			}
			handleSchedulingError(w, err, nil)
			return
		}

		resp := TemplateRequest{Windows: make(map[string][]TemplateWindow, len(tmpl))}
		for name, day := range weekdayNames {
			for _, win := range tmpl[day] {
				resp.Windows[name] = append(resp.Windows[name], TemplateWindow{
					Start: formatClock(win.Start),
					End:   formatClock(win.End),
				})
			}
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, err
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func formatClock(d time.Duration) string {
	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func parseIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_id", "id must be a valid UUID")
		return uuid.Nil, false
	}
	return id, true
}

func handleSchedulingError(w http.ResponseWriter, err error, report *appointment.ConflictReport) {
	switch {
	case errors.Is(err, appointment.ErrSchedulingConflict):
		if report != nil {
			writeJSON(w, http.StatusConflict, toConflictResponse(report))
			return
		}
		writeError(w, http.StatusConflict, "scheduling_conflict", err.Error())
	case errors.Is(err, appointment.ErrAppointmentNotFound):
		writeError(w, http.StatusNotFound, "appointment_not_found", err.Error())
	case errors.Is(err, appointment.ErrAlreadyCancelled):
		writeError(w, http.StatusConflict, "already_cancelled", err.Error())
	case errors.Is(err, appointment.ErrTerminalState):
		writeError(w, http.StatusConflict, "terminal_state", err.Error())
	case errors.Is(err, appointment.ErrBookingContended):
		writeError(w, http.StatusConflict, "calendar_contended", "calendar is being modified, please retry shortly")
	case errors.Is(err, appointment.ErrInvalidInterval),
		errors.Is(err, appointment.ErrInvalidDuration),
		errors.Is(err, appointment.ErrInvalidRoom):
		writeError(w, http.StatusBadRequest, "invalid_argument", err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err.Error())
	}
}
