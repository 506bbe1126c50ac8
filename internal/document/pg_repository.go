package document

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

const documentColumns = `
	id, patient_id, physician_id, appointment_id, subjective, objective,
	assessment, plan, created_at, updated_at`

func scanDocument(row pgx.Row) (*ClinicalDocument, error) {
	var d ClinicalDocument
	err := row.Scan(&d.ID, &d.PatientID, &d.PhysicianID, &d.AppointmentID,
		&d.Subjective, &d.Objective, &d.Assessment, &d.Plan, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return &d, nil
}

func collectDocuments(rows pgx.Rows) ([]ClinicalDocument, error) {
	defer rows.Close()

	var out []ClinicalDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*ClinicalDocument, error) {
	row := r.pool.QueryRow(ctx, `SELECT`+documentColumns+` FROM clinical_documents WHERE id = $1`, id)
	return scanDocument(row)
}

func (r *PgRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]ClinicalDocument, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+documentColumns+` FROM clinical_documents WHERE patient_id = $1 ORDER BY created_at DESC`,
		patientID)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

func (r *PgRepository) ListByPhysician(ctx context.Context, physicianID uuid.UUID) ([]ClinicalDocument, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT`+documentColumns+` FROM clinical_documents WHERE physician_id = $1 ORDER BY created_at DESC`,
		physicianID)
	if err != nil {
		return nil, err
	}
	return collectDocuments(rows)
}

func (r *PgRepository) Create(ctx context.Context, d *ClinicalDocument) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO clinical_documents (
			id, patient_id, physician_id, appointment_id, subjective, objective,
			assessment, plan, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, d.ID, d.PatientID, d.PhysicianID, d.AppointmentID, d.Subjective, d.Objective,
		d.Assessment, d.Plan, d.CreatedAt, d.UpdatedAt)
	return err
}

func (r *PgRepository) Update(ctx context.Context, d *ClinicalDocument) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE clinical_documents SET
			patient_id = $2, physician_id = $3, appointment_id = $4, subjective = $5,
			objective = $6, assessment = $7, plan = $8, updated_at = $9
		WHERE id = $1
	`, d.ID, d.PatientID, d.PhysicianID, d.AppointmentID, d.Subjective, d.Objective,
		d.Assessment, d.Plan, d.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}

func (r *PgRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM clinical_documents WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrDocumentNotFound
	}
	return nil
}
