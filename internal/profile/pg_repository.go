package profile

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgRepository implements Store on Postgres.
type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanPatient(row pgx.Row) (*Patient, error) {
	var p Patient
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &p.Phone,
		&p.DateOfBirth, &p.Address, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPatientNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgRepository) GetPatient(ctx context.Context, id uuid.UUID) (*Patient, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, email, phone, date_of_birth, address, created_at, updated_at
		FROM patients WHERE id = $1`, id)
	return scanPatient(row)
}

func (r *PgRepository) ListPatients(ctx context.Context) ([]Patient, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, email, phone, date_of_birth, address, created_at, updated_at
		FROM patients ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Patient
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PgRepository) CreatePatient(ctx context.Context, p *Patient) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO patients (id, first_name, last_name, email, phone, date_of_birth, address, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Address, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PgRepository) UpdatePatient(ctx context.Context, p *Patient) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE patients SET first_name = $2, last_name = $3, email = $4, phone = $5,
			date_of_birth = $6, address = $7, updated_at = $8
		WHERE id = $1
	`, p.ID, p.FirstName, p.LastName, p.Email, p.Phone, p.DateOfBirth, p.Address, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func (r *PgRepository) DeletePatient(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPatientNotFound
	}
	return nil
}

func scanPhysician(row pgx.Row) (*Physician, error) {
	var p Physician
	err := row.Scan(&p.ID, &p.FirstName, &p.LastName, &p.Specialty, &p.LicenseNumber,
		&p.Email, &p.Phone, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPhysicianNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgRepository) GetPhysician(ctx context.Context, id uuid.UUID) (*Physician, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, specialty, license_number, email, phone, created_at, updated_at
		FROM physicians WHERE id = $1`, id)
	return scanPhysician(row)
}

func (r *PgRepository) ListPhysicians(ctx context.Context) ([]Physician, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, specialty, license_number, email, phone, created_at, updated_at
		FROM physicians ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Physician
	for rows.Next() {
		p, err := scanPhysician(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *PgRepository) CreatePhysician(ctx context.Context, p *Physician) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO physicians (id, first_name, last_name, specialty, license_number, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, p.ID, p.FirstName, p.LastName, p.Specialty, p.LicenseNumber, p.Email, p.Phone, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PgRepository) UpdatePhysician(ctx context.Context, p *Physician) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE physicians SET first_name = $2, last_name = $3, specialty = $4,
			license_number = $5, email = $6, phone = $7, updated_at = $8
		WHERE id = $1
	`, p.ID, p.FirstName, p.LastName, p.Specialty, p.LicenseNumber, p.Email, p.Phone, p.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPhysicianNotFound
	}
	return nil
}

func (r *PgRepository) DeletePhysician(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM physicians WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrPhysicianNotFound
	}
	return nil
}

func scanAdministrator(row pgx.Row) (*Administrator, error) {
	var a Administrator
	err := row.Scan(&a.ID, &a.FirstName, &a.LastName, &a.Title, &a.Email, &a.Phone,
		&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAdministratorNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *PgRepository) GetAdministrator(ctx context.Context, id uuid.UUID) (*Administrator, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, title, email, phone, created_at, updated_at
		FROM administrators WHERE id = $1`, id)
	return scanAdministrator(row)
}

func (r *PgRepository) ListAdministrators(ctx context.Context) ([]Administrator, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, first_name, last_name, title, email, phone, created_at, updated_at
		FROM administrators ORDER BY last_name, first_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Administrator
	for rows.Next() {
		a, err := scanAdministrator(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *PgRepository) CreateAdministrator(ctx context.Context, a *Administrator) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO administrators (id, first_name, last_name, title, email, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, a.ID, a.FirstName, a.LastName, a.Title, a.Email, a.Phone, a.CreatedAt, a.UpdatedAt)
	return err
}

func (r *PgRepository) UpdateAdministrator(ctx context.Context, a *Administrator) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE administrators SET first_name = $2, last_name = $3, title = $4,
			email = $5, phone = $6, updated_at = $7
		WHERE id = $1
	`, a.ID, a.FirstName, a.LastName, a.Title, a.Email, a.Phone, a.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdministratorNotFound
	}
	return nil
}

func (r *PgRepository) DeleteAdministrator(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM administrators WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAdministratorNotFound
	}
	return nil
}
