package appointment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/brightcare/clinic-scheduling/internal/config"
	redisclient "github.com/brightcare/clinic-scheduling/internal/redis"
	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

var (
	ErrInvalidInterval    = errors.New("appointment end must be after start")
	ErrInvalidDuration    = errors.New("duration must be positive")
	ErrInvalidRoom        = errors.New("room number out of range")
	ErrSchedulingConflict = errors.New("requested slot conflicts with existing commitments")
	ErrAlreadyCancelled   = errors.New("appointment is already cancelled")
	ErrTerminalState      = errors.New("appointment is in a terminal state")
	ErrBookingContended   = errors.New("calendar is being modified, please retry")
)

// ConflictReport is returned alongside ErrSchedulingConflict so callers can
// show what collided and offer replacement slots.
type ConflictReport struct {
	Conflicts   []schedule.Conflict
	Summary     string
	Suggestions []schedule.TimeSlot
}

type ScheduleRequest struct {
	PhysicianID uuid.UUID
	PatientID   uuid.UUID
	Start       time.Time
	End         time.Time
	Room        int // 0 = no room requested
	Reason      string
	Notes       string
	Tentative   bool
}

type UpdateRequest struct {
	Reason          *string
	Notes           *string
	NewStart        *time.Time
	DurationMinutes *int
	Room            *int // 0 clears the room
}

// Service is the scheduling façade. Every check-then-write sequence for a
// physician's calendar runs under that physician's lock, so two bookings for
// the same physician can never interleave between the conflict check and the
// commit. Bookings for different physicians proceed concurrently.
type Service struct {
	store    Store
	blocks   BlockStore
	locker   redisclient.Locker
	strategy schedule.Strategy
	cfg      config.Config
	log      zerolog.Logger
}

func NewService(store Store, blocks BlockStore, locker redisclient.Locker, cfg config.Config, log zerolog.Logger) *Service {
	horizon := time.Duration(cfg.SearchHorizonDays) * 24 * time.Hour
	return &Service{
		store:    store,
		blocks:   blocks,
		locker:   locker,
		strategy: schedule.NewFirstAvailable(cfg.SlotGranularity, horizon),
		cfg:      cfg,
		log:      log,
	}
}

// Schedule books an appointment after checking the physician's calendar, the
// unavailable blocks, and (when a room is requested) every other physician's
// use of that room. On conflict it returns ErrSchedulingConflict together
// with a report carrying the specific conflicts and alternative slots.
func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (*Appointment, *ConflictReport, error) {
	if !req.End.After(req.Start) {
		return nil, nil, ErrInvalidInterval
	}
	if req.Room != 0 && !ValidRoom(req.Room) {
		return nil, nil, ErrInvalidRoom
	}

	var (
		created *Appointment
		report  *ConflictReport
	)

	err := s.locker.WithPhysicianLock(ctx, req.PhysicianID, func(ctx context.Context) error {
		book := func(ctx context.Context) error {
			sched, facility, err := s.buildSchedule(ctx, req.PhysicianID)
			if err != nil {
				return err
			}

			proposed := schedule.Booking{
				PhysicianID: req.PhysicianID,
				Start:       req.Start,
				End:         req.End,
				Room:        req.Room,
			}
			conflicts := schedule.CheckConflicts(proposed, sched, facility, uuid.Nil).Conflicts

			if req.Room != 0 {
				roomConflicts, err := s.roomConflicts(ctx, req.Room, req.Start, req.End, uuid.Nil)
				if err != nil {
					return err
				}
				conflicts = append(conflicts, roomConflicts...)
			}

			if len(conflicts) > 0 {
				report = s.buildReport(conflicts, sched, facility, req.Start, req.End.Sub(req.Start))
				return ErrSchedulingConflict
			}

			now := time.Now()
			status := StatusScheduled
			if req.Tentative {
				status = StatusTentative
			}
			appt := &Appointment{
				ID:          uuid.New(),
				PhysicianID: req.PhysicianID,
				PatientID:   req.PatientID,
				Start:       req.Start,
				End:         req.End,
				Status:      status,
				Room:        req.Room,
				Reason:      req.Reason,
				Notes:       req.Notes,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := s.store.Create(ctx, appt); err != nil {
				return fmt.Errorf("create appointment: %w", err)
			}
			created = appt
			return nil
		}

		if req.Room != 0 {
			return s.locker.WithRoomLock(ctx, req.Room, book)
		}
		return book(ctx)
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, nil, ErrBookingContended
		}
		return nil, report, err
	}

	s.log.Info().
		Str("appointment_id", created.ID.String()).
		Str("physician_id", req.PhysicianID.String()).
		Time("start", req.Start).
		Msg("appointment scheduled")
	return created, nil, nil
}

// UpdateAppointment applies a partial update. Time and room changes are
// all-or-nothing: on conflict they are reverted and the call fails. Reason
// and notes changes from the same call are committed regardless, which the
// booking desk relies on, so the partial-success behavior is deliberate.
func (s *Service) UpdateAppointment(ctx context.Context, id uuid.UUID, req UpdateRequest) (*Appointment, *ConflictReport, error) {
	if req.DurationMinutes != nil && *req.DurationMinutes <= 0 {
		return nil, nil, ErrInvalidDuration
	}
	if req.Room != nil && *req.Room != 0 && !ValidRoom(*req.Room) {
		return nil, nil, ErrInvalidRoom
	}

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if current.Status.Terminal() {
		return nil, nil, ErrTerminalState
	}

	var (
		updated *Appointment
		report  *ConflictReport
	)

	err = s.locker.WithPhysicianLock(ctx, current.PhysicianID, func(ctx context.Context) error {
		appt, err := s.store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if appt.Status.Terminal() {
			return ErrTerminalState
		}

		if req.Reason != nil {
			appt.Reason = *req.Reason
		}
		if req.Notes != nil {
			appt.Notes = *req.Notes
		}

		oldStart, oldEnd, oldRoom := appt.Start, appt.End, appt.Room

		timeChanged := req.NewStart != nil || req.DurationMinutes != nil
		if timeChanged {
			start := appt.Start
			if req.NewStart != nil {
				start = *req.NewStart
			}
			duration := appt.End.Sub(appt.Start)
			if req.DurationMinutes != nil {
				duration = time.Duration(*req.DurationMinutes) * time.Minute
			}
			appt.Start = start
			appt.End = start.Add(duration)
		}

		roomChanged := req.Room != nil && *req.Room != appt.Room
		if roomChanged {
			appt.Room = *req.Room
		}

		commit := func(ctx context.Context) error {
			if timeChanged || roomChanged {
				conflicts, sched, facility, err := s.placementConflicts(ctx, appt, timeChanged)
				if err != nil {
					return err
				}
				if len(conflicts) > 0 {
					duration := appt.End.Sub(appt.Start)
					report = s.buildReport(conflicts, sched, facility, appt.Start, duration)

					// Revert the placement fields, then commit whatever
					// non-time changes this call carried.
					appt.Start, appt.End, appt.Room = oldStart, oldEnd, oldRoom
					appt.UpdatedAt = time.Now()
					if err := s.store.Update(ctx, appt); err != nil {
						return fmt.Errorf("update appointment: %w", err)
					}
					return ErrSchedulingConflict
				}
			}

			appt.UpdatedAt = time.Now()
			if err := s.store.Update(ctx, appt); err != nil {
				return fmt.Errorf("update appointment: %w", err)
			}
			updated = appt
			return nil
		}

		// The room check spans every physician's calendar, so whenever the
		// update leaves the appointment holding a room the check-then-write
		// runs under that room's lock, physician lock first, as in Schedule.
		if appt.Room != 0 {
			return s.locker.WithRoomLock(ctx, appt.Room, commit)
		}
		return commit(ctx)
	})

	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, nil, ErrBookingContended
		}
		return nil, report, err
	}
	return updated, nil, nil
}

// placementConflicts re-checks a moved appointment against everything except
// itself.
func (s *Service) placementConflicts(ctx context.Context, appt *Appointment, timeChanged bool) ([]schedule.Conflict, *schedule.PhysicianSchedule, []schedule.UnavailableBlock, error) {
	sched, facility, err := s.buildSchedule(ctx, appt.PhysicianID)
	if err != nil {
		return nil, nil, nil, err
	}

	var conflicts []schedule.Conflict
	if timeChanged {
		conflicts = schedule.CheckConflicts(appt.Booking(), sched, facility, appt.ID).Conflicts
	}
	if appt.Room != 0 {
		roomConflicts, err := s.roomConflicts(ctx, appt.Room, appt.Start, appt.End, appt.ID)
		if err != nil {
			return nil, nil, nil, err
		}
		conflicts = append(conflicts, roomConflicts...)
	}
	return conflicts, sched, facility, nil
}

// Cancel marks an appointment cancelled and records why. Cancelling an
// already-cancelled appointment fails cleanly.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, reason string) (*Appointment, error) {
	appt, err := s.mutate(ctx, id, func(a *Appointment) error {
		if a.Status == StatusCancelled {
			return ErrAlreadyCancelled
		}
		if a.Status.Terminal() {
			return ErrTerminalState
		}
		a.Status = StatusCancelled
		a.CancellationReason = &reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("appointment_id", id.String()).Str("reason", reason).Msg("appointment cancelled")
	return appt, nil
}

// Delete removes the record entirely. Distinct from Cancel, which keeps it.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	err = s.locker.WithPhysicianLock(ctx, current.PhysicianID, func(ctx context.Context) error {
		return s.store.Delete(ctx, id)
	})
	if errors.Is(err, redisclient.ErrLockNotAcquired) {
		return ErrBookingContended
	}
	return err
}

// mutate runs a status or reference change under the physician lock. The
// record is re-read inside the lock so the change applies to the committed
// state, not a stale snapshot.
func (s *Service) mutate(ctx context.Context, id uuid.UUID, apply func(*Appointment) error) (*Appointment, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	var out *Appointment
	err = s.locker.WithPhysicianLock(ctx, current.PhysicianID, func(ctx context.Context) error {
		appt, err := s.store.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := apply(appt); err != nil {
			return err
		}
		appt.UpdatedAt = time.Now()
		if err := s.store.Update(ctx, appt); err != nil {
			return fmt.Errorf("update appointment: %w", err)
		}
		out = appt
		return nil
	})
	if err != nil {
		if errors.Is(err, redisclient.ErrLockNotAcquired) {
			return nil, ErrBookingContended
		}
		return nil, err
	}
	return out, nil
}

// StartVisit moves a non-terminal appointment to in-progress.
func (s *Service) StartVisit(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusInProgress)
}

// Complete moves a non-terminal appointment to completed.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusCompleted)
}

// MarkNoShow moves a non-terminal appointment to no-show.
func (s *Service) MarkNoShow(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.transition(ctx, id, StatusNoShow)
}

func (s *Service) transition(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error) {
	return s.mutate(ctx, id, func(a *Appointment) error {
		if a.Status.Terminal() {
			return ErrTerminalState
		}
		a.Status = to
		return nil
	})
}

func (s *Service) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.store.GetByID(ctx, id)
}

// GetDailySchedule returns the physician's appointments overlapping the day
// containing the given time, ordered by start.
func (s *Service) GetDailySchedule(ctx context.Context, physicianID uuid.UUID, day time.Time) ([]Appointment, error) {
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	return s.GetScheduleInRange(ctx, physicianID, from, from.AddDate(0, 0, 1))
}

func (s *Service) GetScheduleInRange(ctx context.Context, physicianID uuid.UUID, from, to time.Time) ([]Appointment, error) {
	appts, err := s.store.ListByPhysician(ctx, physicianID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	var out []Appointment
	for _, a := range appts {
		if schedule.Overlaps(a.Start, a.End, from, to) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}

func (s *Service) GetPatientAppointments(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	appts, err := s.store.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, fmt.Errorf("list patient appointments: %w", err)
	}
	sort.Slice(appts, func(i, j int) bool { return appts[i].Start.Before(appts[j].Start) })
	return appts, nil
}

// FindNextAvailableSlot returns up to max open windows of the given duration
// on the physician's calendar, starting at or after the cursor. The search
// stops at the configured horizon.
func (s *Service) FindNextAvailableSlot(ctx context.Context, physicianID uuid.UUID, after time.Time, duration time.Duration, max int) ([]schedule.TimeSlot, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}
	if max <= 0 {
		max = 1
	}
	if max > 20 {
		max = 20
	}

	sched, facility, err := s.buildSchedule(ctx, physicianID)
	if err != nil {
		return nil, err
	}

	return s.strategy.Suggest(after, duration, max, s.checkFn(physicianID, sched, facility)), nil
}

// LinkDocument attaches a clinical document reference to the appointment.
// The reference is stored as-is; document existence is the caller's concern.
func (s *Service) LinkDocument(ctx context.Context, id, documentID uuid.UUID) (*Appointment, error) {
	return s.mutate(ctx, id, func(a *Appointment) error {
		a.DocumentID = &documentID
		return nil
	})
}

func (s *Service) UnlinkDocument(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	return s.mutate(ctx, id, func(a *Appointment) error {
		a.DocumentID = nil
		return nil
	})
}

// Stats counts a physician's appointments by status.
func (s *Service) Stats(ctx context.Context, physicianID uuid.UUID) (map[Status]int, error) {
	appts, err := s.store.ListByPhysician(ctx, physicianID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	counts := make(map[Status]int)
	for _, a := range appts {
		counts[a.Status]++
	}
	return counts, nil
}

// AddBlock records an ad hoc unavailable block (holiday, emergency,
// vacation). Blocks are immutable once created.
func (s *Service) AddBlock(ctx context.Context, blk schedule.UnavailableBlock) (*schedule.UnavailableBlock, error) {
	if !blk.End.After(blk.Start) {
		return nil, ErrInvalidInterval
	}
	if blk.ID == uuid.Nil {
		blk.ID = uuid.New()
	}
	blk.CreatedAt = time.Now()
	if err := s.blocks.CreateBlocks(ctx, []schedule.UnavailableBlock{blk}); err != nil {
		return nil, fmt.Errorf("create block: %w", err)
	}
	return &blk, nil
}

func (s *Service) ListFacilityBlocks(ctx context.Context) ([]schedule.UnavailableBlock, error) {
	return s.blocks.ListFacilityBlocks(ctx)
}

// EnsureStandardBlocks extends the rolling window of weekend and after-hours
// blocks out to the configured horizon. Safe to call repeatedly; it only
// generates the days not yet covered. Returns the number of days generated.
func (s *Service) EnsureStandardBlocks(ctx context.Context) (int, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	target := today.AddDate(0, 0, s.cfg.RollingWindowDays)

	latest, err := s.blocks.LatestStandardBlockEnd(ctx)
	if err != nil {
		return 0, fmt.Errorf("latest standard block: %w", err)
	}

	from := today
	if latest.After(from) {
		from = latest
	}
	days := int(target.Sub(from).Hours() / 24)
	if days <= 0 {
		return 0, nil
	}

	bh := schedule.BusinessHours{
		StartHour: s.cfg.BusinessStartHour,
		EndHour:   s.cfg.BusinessEndHour,
		Location:  now.Location(),
	}
	blocks := schedule.GenerateStandardBlocks(from, days, bh)
	if err := s.blocks.CreateBlocks(ctx, blocks); err != nil {
		return 0, fmt.Errorf("create standard blocks: %w", err)
	}

	s.log.Info().Int("days", days).Time("through", target).Msg("standard unavailable blocks generated")
	return days, nil
}

// PruneExpiredBlocks drops blocks that ended before now.
func (s *Service) PruneExpiredBlocks(ctx context.Context) (int64, error) {
	n, err := s.blocks.DeleteBlocksBefore(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("prune blocks: %w", err)
	}
	return n, nil
}

func (s *Service) SetWeeklyTemplate(ctx context.Context, physicianID uuid.UUID, t schedule.WeeklyTemplate) error {
	return s.blocks.SetTemplate(ctx, physicianID, t)
}

func (s *Service) GetWeeklyTemplate(ctx context.Context, physicianID uuid.UUID) (schedule.WeeklyTemplate, error) {
	return s.blocks.GetTemplate(ctx, physicianID)
}

// buildSchedule assembles the conflict-check inputs for one physician from
// the backing stores.
func (s *Service) buildSchedule(ctx context.Context, physicianID uuid.UUID) (*schedule.PhysicianSchedule, []schedule.UnavailableBlock, error) {
	appts, err := s.store.ListByPhysician(ctx, physicianID)
	if err != nil {
		return nil, nil, fmt.Errorf("list appointments: %w", err)
	}

	sched := schedule.NewPhysicianSchedule(physicianID)
	for i := range appts {
		if err := sched.Add(appts[i].Booking()); err != nil {
			return nil, nil, err
		}
	}

	sched.Blocks, err = s.blocks.ListPhysicianBlocks(ctx, physicianID)
	if err != nil {
		return nil, nil, fmt.Errorf("list physician blocks: %w", err)
	}

	tmpl, err := s.blocks.GetTemplate(ctx, physicianID)
	if err != nil && !errors.Is(err, ErrTemplateNotFound) {
		return nil, nil, fmt.Errorf("load template: %w", err)
	}
	sched.Template = tmpl

	facility, err := s.blocks.ListFacilityBlocks(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("list facility blocks: %w", err)
	}

	return sched, facility, nil
}

// roomConflicts checks the proposed range against every physician's use of
// the room. This is independent of the per-physician schedule check.
func (s *Service) roomConflicts(ctx context.Context, room int, start, end time.Time, exclude uuid.UUID) ([]schedule.Conflict, error) {
	appts, err := s.store.ListByRoom(ctx, room)
	if err != nil {
		return nil, fmt.Errorf("list room appointments: %w", err)
	}

	var out []schedule.Conflict
	for _, a := range appts {
		if a.ID == exclude || a.Status == StatusCancelled {
			continue
		}
		if schedule.Overlaps(a.Start, a.End, start, end) {
			id := a.ID
			out = append(out, schedule.Conflict{
				Type:      schedule.ConflictRoom,
				BookingID: &id,
				Start:     a.Start,
				End:       a.End,
				Detail:    fmt.Sprintf("room %d is held by appointment %s", room, a.ID),
			})
		}
	}
	return out, nil
}

func (s *Service) checkFn(physicianID uuid.UUID, sched *schedule.PhysicianSchedule, facility []schedule.UnavailableBlock) schedule.CheckFunc {
	return func(start, end time.Time) schedule.CheckResult {
		proposed := schedule.Booking{PhysicianID: physicianID, Start: start, End: end}
		return schedule.CheckConflicts(proposed, sched, facility, uuid.Nil)
	}
}

func (s *Service) buildReport(conflicts []schedule.Conflict, sched *schedule.PhysicianSchedule, facility []schedule.UnavailableBlock, start time.Time, duration time.Duration) *ConflictReport {
	res := schedule.CheckResult{Conflicts: conflicts}
	return &ConflictReport{
		Conflicts:   conflicts,
		Summary:     res.Summary(),
		Suggestions: s.strategy.Suggest(start, duration, s.cfg.MaxSuggestions, s.checkFn(sched.PhysicianID, sched, facility)),
	}
}
