package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

// PgRepository implements Store and BlockStore on Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const appointmentColumns = `
	id, physician_id, patient_id, start_time, end_time, status, room,
	reason, notes, document_id, cancellation_reason, created_at, updated_at`

func scanAppointment(row pgx.Row) (*Appointment, error) {
	var a Appointment
	var status string

	err := row.Scan(
		&a.ID,
		&a.PhysicianID,
		&a.PatientID,
		&a.Start,
		&a.End,
		&status,
		&a.Room,
		&a.Reason,
		&a.Notes,
		&a.DocumentID,
		&a.CancellationReason,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}

	a.Status = Status(status)
	return &a, nil
}

func collectAppointments(rows pgx.Rows) ([]Appointment, error) {
	defer rows.Close()

	var out []Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+appointmentColumns+` FROM appointments WHERE id = $1`, id)
	return scanAppointment(row)
}

func (r *PgRepository) ListByPhysician(ctx context.Context, physicianID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+appointmentColumns+` FROM appointments WHERE physician_id = $1 ORDER BY start_time`,
		physicianID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+appointmentColumns+` FROM appointments WHERE patient_id = $1 ORDER BY start_time`,
		patientID)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) ListByRoom(ctx context.Context, room int) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+appointmentColumns+` FROM appointments WHERE room = $1 ORDER BY start_time`,
		room)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) ListAll(ctx context.Context) ([]Appointment, error) {
	rows, err := r.pool.Query(ctx, `SELECT`+appointmentColumns+` FROM appointments ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	return collectAppointments(rows)
}

func (r *PgRepository) Create(ctx context.Context, a *Appointment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO appointments (
			id, physician_id, patient_id, start_time, end_time, status, room,
			reason, notes, document_id, cancellation_reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`,
		a.ID, a.PhysicianID, a.PatientID, a.Start, a.End, string(a.Status), a.Room,
		a.Reason, a.Notes, a.DocumentID, a.CancellationReason, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (r *PgRepository) Update(ctx context.Context, a *Appointment) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE appointments SET
			physician_id = $2, patient_id = $3, start_time = $4, end_time = $5,
			status = $6, room = $7, reason = $8, notes = $9, document_id = $10,
			cancellation_reason = $11, updated_at = $12
		WHERE id = $1
	`,
		a.ID, a.PhysicianID, a.PatientID, a.Start, a.End,
		string(a.Status), a.Room, a.Reason, a.Notes, a.DocumentID,
		a.CancellationReason, a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

// -- BlockStore --

const blockColumns = ` id, physician_id, start_time, end_time, reason, description, created_at`

func collectBlocks(rows pgx.Rows) ([]schedule.UnavailableBlock, error) {
	defer rows.Close()

	var out []schedule.UnavailableBlock
	for rows.Next() {
		var b schedule.UnavailableBlock
		var reason string
		if err := rows.Scan(&b.ID, &b.PhysicianID, &b.Start, &b.End, &reason, &b.Description, &b.CreatedAt); err != nil {
			return nil, err
		}
		b.Reason = schedule.BlockReason(reason)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PgRepository) ListFacilityBlocks(ctx context.Context) ([]schedule.UnavailableBlock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+blockColumns+` FROM unavailable_blocks WHERE physician_id IS NULL ORDER BY start_time`)
	if err != nil {
		return nil, err
	}
	return collectBlocks(rows)
}

func (r *PgRepository) ListPhysicianBlocks(ctx context.Context, physicianID uuid.UUID) ([]schedule.UnavailableBlock, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+blockColumns+` FROM unavailable_blocks WHERE physician_id = $1 ORDER BY start_time`,
		physicianID)
	if err != nil {
		return nil, err
	}
	return collectBlocks(rows)
}

func (r *PgRepository) CreateBlocks(ctx context.Context, blocks []schedule.UnavailableBlock) error {
	if len(blocks) == 0 {
		return nil
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, b := range blocks {
		_, err := tx.Exec(ctx, `
			INSERT INTO unavailable_blocks (id, physician_id, start_time, end_time, reason, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, b.ID, b.PhysicianID, b.Start, b.End, string(b.Reason), b.Description, b.CreatedAt)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PgRepository) LatestStandardBlockEnd(ctx context.Context) (time.Time, error) {
	var latest *time.Time
	err := r.pool.QueryRow(ctx, `
		SELECT max(end_time) FROM unavailable_blocks
		WHERE physician_id IS NULL AND reason IN ($1, $2)
	`, string(schedule.ReasonWeekend), string(schedule.ReasonAfterHours)).Scan(&latest)
	if err != nil {
		return time.Time{}, err
	}
	if latest == nil {
		return time.Time{}, nil
	}
	return *latest, nil
}

func (r *PgRepository) DeleteBlocksBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM unavailable_blocks WHERE end_time < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *PgRepository) GetTemplate(ctx context.Context, physicianID uuid.UUID) (schedule.WeeklyTemplate, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx,
		`SELECT template FROM availability_templates WHERE physician_id = $1`,
		physicianID).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}

	var t schedule.WeeklyTemplate
	if err := json.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return t, nil
}

func (r *PgRepository) SetTemplate(ctx context.Context, physicianID uuid.UUID, t schedule.WeeklyTemplate) error {
	raw, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode template: %w", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO availability_templates (physician_id, template, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (physician_id) DO UPDATE SET template = $2, updated_at = now()
	`, physicianID, raw)
	return err
}
