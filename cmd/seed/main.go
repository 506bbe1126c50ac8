package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brightcare/clinic-scheduling/internal/db"
	"github.com/brightcare/clinic-scheduling/internal/schedule"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("seed starting")

	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		log.Fatal("POSTGRES_DSN is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := db.ConnectPostgres(ctx, dsn)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gofakeit.Seed(time.Now().UnixNano())

	physicianIDs, err := seedPhysicians(context.Background(), pool, 40)
	if err != nil {
		log.Fatalf("seed physicians: %v", err)
	}
	patientIDs, err := seedPatients(context.Background(), pool, 2000)
	if err != nil {
		log.Fatalf("seed patients: %v", err)
	}
	if err := seedAdministrators(context.Background(), pool, 10); err != nil {
		log.Fatalf("seed administrators: %v", err)
	}
	if err := seedStandardBlocks(context.Background(), pool, 90); err != nil {
		log.Fatalf("seed standard blocks: %v", err)
	}
	if err := seedAppointments(context.Background(), pool, physicianIDs, patientIDs); err != nil {
		log.Fatalf("seed appointments: %v", err)
	}

	log.Println("seed complete")
}

func seedPhysicians(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d physicians", count)

	specialties := []string{
		"Dermatology",
		"Cardiology",
		"General Practice",
		"Orthopedics",
		"Endocrinology",
		"Neurology",
		"Pediatrics",
		"Psychiatry",
		"Ophthalmology",
		"ENT",
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	ids := make([]uuid.UUID, 0, count)
	for i := 0; i < count; i++ {
		id := uuid.New()
		spec := specialties[gofakeit.Number(0, len(specialties)-1)]
		license := fmt.Sprintf("MD-%06d", gofakeit.Number(100000, 999999))

		_, err := tx.Exec(ctx, `
			INSERT INTO physicians (id, first_name, last_name, specialty, license_number, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		`, id, gofakeit.FirstName(), gofakeit.LastName(), spec, license, gofakeit.Email(), gofakeit.Phone())
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Println("physicians seeded")
	return ids, nil
}

func seedPatients(ctx context.Context, pool *pgxpool.Pool, count int) ([]uuid.UUID, error) {
	log.Printf("seeding %d patients", count)

	const batchSize = 500

	ids := make([]uuid.UUID, 0, count)
	for offset := 0; offset < count; offset += batchSize {
		end := offset + batchSize
		if end > count {
			end = count
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return nil, err
		}

		for i := offset; i < end; i++ {
			id := uuid.New()
			dob := gofakeit.DateRange(
				time.Date(1935, 1, 1, 0, 0, 0, 0, time.UTC),
				time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC),
			)

			_, err := tx.Exec(ctx, `
				INSERT INTO patients (id, first_name, last_name, email, phone, date_of_birth, address, created_at, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
			`, id, gofakeit.FirstName(), gofakeit.LastName(), gofakeit.Email(), gofakeit.Phone(), dob, gofakeit.Address().Address)
			if err != nil {
				_ = tx.Rollback(ctx)
				return nil, err
			}
			ids = append(ids, id)
		}

		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}

		log.Printf("patients seeded: %d/%d", end, count)
	}

	log.Println("patients seeded")
	return ids, nil
}

func seedAdministrators(ctx context.Context, pool *pgxpool.Pool, count int) error {
	log.Printf("seeding %d administrators", count)

	titles := []string{"Front Desk", "Billing", "Office Manager", "Records"}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for i := 0; i < count; i++ {
		title := titles[gofakeit.Number(0, len(titles)-1)]

		_, err := tx.Exec(ctx, `
			INSERT INTO administrators (id, first_name, last_name, title, email, phone, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		`, uuid.New(), gofakeit.FirstName(), gofakeit.LastName(), title, gofakeit.Email(), gofakeit.Phone())
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Println("administrators seeded")
	return nil
}

// seedStandardBlocks writes the weekend and after-hours facility blocks for
// the next `days` days, matching what the blocks worker maintains in
// production.
func seedStandardBlocks(ctx context.Context, pool *pgxpool.Pool, days int) error {
	log.Printf("seeding %d days of standard blocks", days)

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	blocks := schedule.GenerateStandardBlocks(today, days, schedule.BusinessHours{
		StartHour: 8,
		EndHour:   17,
		Location:  now.Location(),
	})

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, b := range blocks {
		_, err := tx.Exec(ctx, `
			INSERT INTO unavailable_blocks (id, physician_id, start_time, end_time, reason, description, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, now())
		`, b.ID, b.PhysicianID, b.Start, b.End, string(b.Reason), b.Description)
		if err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("standard blocks seeded: %d", len(blocks))
	return nil
}

// seedAppointments fills each physician's next ten business days with a few
// non-overlapping visits. Slots are carved from fixed offsets within business
// hours so the seed never manufactures conflicts.
func seedAppointments(ctx context.Context, pool *pgxpool.Pool, physicianIDs, patientIDs []uuid.UUID) error {
	log.Printf("seeding appointments for %d physicians", len(physicianIDs))

	reasons := []string{
		"Annual physical",
		"Follow-up visit",
		"New patient consultation",
		"Lab results review",
		"Medication check",
		"Flu symptoms",
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	slotOffsets := []time.Duration{
		9 * time.Hour,
		10 * time.Hour,
		11*time.Hour + 30*time.Minute,
		14 * time.Hour,
		15*time.Hour + 30*time.Minute,
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	total := 0
	room := 100
	for _, physID := range physicianIDs {
		day := today
		for businessDays := 0; businessDays < 10; {
			day = day.AddDate(0, 0, 1)
			if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
				continue
			}
			businessDays++

			for _, offset := range slotOffsets {
				if gofakeit.Number(0, 2) == 0 {
					continue
				}

				start := day.Add(offset)
				end := start.Add(30 * time.Minute)
				patientID := patientIDs[gofakeit.Number(0, len(patientIDs)-1)]
				reason := reasons[gofakeit.Number(0, len(reasons)-1)]

				room++
				if room > 999 {
					room = 100
				}

				_, err := tx.Exec(ctx, `
					INSERT INTO appointments (
						id, physician_id, patient_id, start_time, end_time, status, room,
						reason, notes, document_id, cancellation_reason, created_at, updated_at
					) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULL, NULL, now(), now())
				`, uuid.New(), physID, patientID, start, end, "scheduled", room, reason, "")
				if err != nil {
					return err
				}
				total++
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	log.Printf("appointments seeded: %d", total)
	return nil
}
