package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"medwatch/internal/models"
)

type PgPatientRepository struct {
	pool *pgxpool.Pool
}

func NewPgPatientRepository(pool *pgxpool.Pool) *PgPatientRepository {
	return &PgPatientRepository{pool: pool}
}

func (r *PgPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	patient.Prepare()
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO patients (id, full_name, age, gender, diagnosis, last_checkup, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.pool.Exec(ctx, query,
		patient.ID,
		patient.FullName,
		patient.Age,
		patient.Gender,
		patient.Diagnosis,
		patient.LastCheckup,
		patient.Version,
		patient.CreatedAt,
	)
	return err
}

func (r *PgPatientRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	query := `SELECT id, full_name, age, gender, diagnosis, last_checkup, version, created_at
		FROM patients WHERE id = $1`

	var p models.Patient
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.FullName,
		&p.Age,
		&p.Gender,
		&p.Diagnosis,
		&p.LastCheckup,
		&p.Version,
		&p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

func (r *PgPatientRepository) List(ctx context.Context, params ListParams) ([]models.Patient, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM patients`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, full_name, age, gender, diagnosis, last_checkup, version, created_at
		FROM patients ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	patients, err := scanPatients(rows)
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *PgPatientRepository) ListAll(ctx context.Context) ([]models.Patient, error) {
	query := `SELECT id, full_name, age, gender, diagnosis, last_checkup, version, created_at
		FROM patients ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPatients(rows)
}

// Update replaces the mutable columns guarded by the version token. The row
// must still carry the version the caller read; otherwise ErrVersionMismatch.
func (r *PgPatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	query := `
		UPDATE patients
		SET full_name = $1, age = $2, gender = $3, diagnosis = $4, last_checkup = $5, version = version + 1
		WHERE id = $6 AND version = $7
	`
	tag, err := r.pool.Exec(ctx, query,
		patient.FullName,
		patient.Age,
		patient.Gender,
		patient.Diagnosis,
		patient.LastCheckup,
		patient.ID,
		patient.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionMismatch
	}
	patient.Version++
	return nil
}

func (r *PgPatientRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanPatients(rows pgx.Rows) ([]models.Patient, error) {
	patients := []models.Patient{}
	for rows.Next() {
		var p models.Patient
		if err := rows.Scan(
			&p.ID,
			&p.FullName,
			&p.Age,
			&p.Gender,
			&p.Diagnosis,
			&p.LastCheckup,
			&p.Version,
			&p.CreatedAt,
		); err != nil {
			return nil, err
		}
		patients = append(patients, p)
	}
	return patients, rows.Err()
}
