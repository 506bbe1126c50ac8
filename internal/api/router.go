package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/brightcare/clinic-scheduling/internal/appointment"
	"github.com/brightcare/clinic-scheduling/internal/document"
	"github.com/brightcare/clinic-scheduling/internal/profile"
)

type RouterConfig struct {
	Appointments *appointment.Service
	Profiles     *profile.Service
	Documents    *document.Service
	PgPool       *pgxpool.Pool
	Redis        *redis.Client
	Env          string
	Version      string
	Logger       zerolog.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware)
	r.Use(LoggingMiddleware(cfg.Logger))

	health := NewHealthHandler(cfg.PgPool, cfg.Redis, cfg.Env, cfg.Version)
	r.Get("/health/live", health.Liveness)
	r.Get("/health/ready", health.Readiness)

	r.Route("/appointments", func(r chi.Router) {
		r.Post("/", createAppointmentHandler(cfg.Appointments, cfg.Profiles))
		r.Get("/{id}", getAppointmentHandler(cfg.Appointments))
		r.Patch("/{id}", updateAppointmentHandler(cfg.Appointments))
		r.Delete("/{id}", deleteAppointmentHandler(cfg.Appointments))
		r.Post("/{id}/cancel", cancelAppointmentHandler(cfg.Appointments))
		r.Post("/{id}/start", transitionHandler(func(req *http.Request, id uuid.UUID) (*appointment.Appointment, error) {
			return cfg.Appointments.StartVisit(req.Context(), id)
		}))
		r.Post("/{id}/complete", transitionHandler(func(req *http.Request, id uuid.UUID) (*appointment.Appointment, error) {
			return cfg.Appointments.Complete(req.Context(), id)
		}))
		r.Post("/{id}/no-show", transitionHandler(func(req *http.Request, id uuid.UUID) (*appointment.Appointment, error) {
			return cfg.Appointments.MarkNoShow(req.Context(), id)
		}))
		r.Post("/{id}/document", linkDocumentHandler(cfg.Appointments))
		r.Delete("/{id}/document", unlinkDocumentHandler(cfg.Appointments))
	})

	r.Route("/physicians", func(r chi.Router) {
		r.Post("/", createPhysicianHandler(cfg.Profiles))
		r.Get("/", listPhysiciansHandler(cfg.Profiles))
		r.Get("/{id}", getPhysicianHandler(cfg.Profiles))
		r.Put("/{id}", updatePhysicianHandler(cfg.Profiles))
		r.Delete("/{id}", deletePhysicianHandler(cfg.Profiles))
		r.Get("/{id}/schedule", physicianScheduleHandler(cfg.Appointments))
		r.Get("/{id}/available-slots", availableSlotsHandler(cfg.Appointments))
		r.Get("/{id}/stats", physicianStatsHandler(cfg.Appointments))
		r.Put("/{id}/availability", setTemplateHandler(cfg.Appointments))
		r.Get("/{id}/availability", getTemplateHandler(cfg.Appointments))
	})

	r.Route("/patients", func(r chi.Router) {
		r.Post("/", createPatientHandler(cfg.Profiles))
		r.Get("/", listPatientsHandler(cfg.Profiles))
		r.Get("/{id}", getPatientHandler(cfg.Profiles))
		r.Put("/{id}", updatePatientHandler(cfg.Profiles))
		r.Delete("/{id}", deletePatientHandler(cfg.Profiles))
		r.Get("/{id}/appointments", patientAppointmentsHandler(cfg.Appointments))
		r.Get("/{id}/documents", patientDocumentsHandler(cfg.Documents))
	})

	r.Route("/administrators", func(r chi.Router) {
		r.Post("/", createAdministratorHandler(cfg.Profiles))
		r.Get("/", listAdministratorsHandler(cfg.Profiles))
		r.Get("/{id}", getAdministratorHandler(cfg.Profiles))
		r.Put("/{id}", updateAdministratorHandler(cfg.Profiles))
		r.Delete("/{id}", deleteAdministratorHandler(cfg.Profiles))
	})

	r.Route("/documents", func(r chi.Router) {
		r.Post("/", createDocumentHandler(cfg.Documents))
		r.Get("/{id}", getDocumentHandler(cfg.Documents))
		r.Put("/{id}", updateDocumentHandler(cfg.Documents))
		r.Delete("/{id}", deleteDocumentHandler(cfg.Documents))
	})

	r.Route("/blocks", func(r chi.Router) {
		r.Post("/", createBlockHandler(cfg.Appointments))
		r.Get("/", listBlocksHandler(cfg.Appointments))
	})

	return r
}
