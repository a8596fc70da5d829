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

const vitalColumns = `id, patient_id, device_id, recorded_at, heart_rate, systolic, diastolic, oxygen_saturation, temperature, version, created_at`

type PgVitalRepository struct {
	pool *pgxpool.Pool
}

func NewPgVitalRepository(pool *pgxpool.Pool) *PgVitalRepository {
	return &PgVitalRepository{pool: pool}
}

const insertVitalQuery = `
	INSERT INTO vitals (id, patient_id, device_id, recorded_at, heart_rate, systolic, diastolic, oxygen_saturation, temperature, version, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
`

func (r *PgVitalRepository) Create(ctx context.Context, vital *models.Vital) error {
	vital.Prepare()
	if vital.CreatedAt.IsZero() {
		vital.CreatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, insertVitalQuery,
		vital.ID,
		vital.PatientID,
		vital.DeviceID,
		vital.RecordedAt,
		vital.HeartRate,
		vital.Systolic,
		vital.Diastolic,
		vital.OxygenSaturation,
		vital.Temperature,
		vital.Version,
		vital.CreatedAt,
	)
	return err
}

// CreateBatch persists one simulator cycle's readings in a single round trip.
func (r *PgVitalRepository) CreateBatch(ctx context.Context, vitals []models.Vital) error {
	if len(vitals) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	now := time.Now().UTC()
	for i := range vitals {
		v := &vitals[i]
		v.Prepare()
		if v.CreatedAt.IsZero() {
			v.CreatedAt = now
		}
		batch.Queue(insertVitalQuery,
			v.ID,
			v.PatientID,
			v.DeviceID,
			v.RecordedAt,
			v.HeartRate,
			v.Systolic,
			v.Diastolic,
			v.OxygenSaturation,
			v.Temperature,
			v.Version,
			v.CreatedAt,
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range vitals {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}
	return nil
}

func (r *PgVitalRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Vital, error) {
	query := `SELECT ` + vitalColumns + ` FROM vitals WHERE id = $1`

	var v models.Vital
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&v.ID,
		&v.PatientID,
		&v.DeviceID,
		&v.RecordedAt,
		&v.HeartRate,
		&v.Systolic,
		&v.Diastolic,
		&v.OxygenSaturation,
		&v.Temperature,
		&v.Version,
		&v.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}

func (r *PgVitalRepository) List(ctx context.Context, params ListParams) ([]models.Vital, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM vitals`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + vitalColumns + ` FROM vitals ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	vitals, err := scanVitals(rows)
	if err != nil {
		return nil, 0, err
	}
	return vitals, total, nil
}

func (r *PgVitalRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Vital, error) {
	query := `SELECT ` + vitalColumns + ` FROM vitals WHERE patient_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, patientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVitals(rows)
}

func (r *PgVitalRepository) ListByDevice(ctx context.Context, deviceID uuid.UUID) ([]models.Vital, error) {
	query := `SELECT ` + vitalColumns + ` FROM vitals WHERE device_id = $1 ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, deviceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanVitals(rows)
}

func (r *PgVitalRepository) Update(ctx context.Context, vital *models.Vital) error {
	query := `
		UPDATE vitals
		SET patient_id = $1, device_id = $2, recorded_at = $3, heart_rate = $4, systolic = $5,
			diastolic = $6, oxygen_saturation = $7, temperature = $8, version = version + 1
		WHERE id = $9 AND version = $10
	`
	tag, err := r.pool.Exec(ctx, query,
		vital.PatientID,
		vital.DeviceID,
		vital.RecordedAt,
		vital.HeartRate,
		vital.Systolic,
		vital.Diastolic,
		vital.OxygenSaturation,
		vital.Temperature,
		vital.ID,
		vital.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionMismatch
	}
	vital.Version++
	return nil
}

func (r *PgVitalRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM vitals WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanVitals(rows pgx.Rows) ([]models.Vital, error) {
	vitals := []models.Vital{}
	for rows.Next() {
		var v models.Vital
		if err := rows.Scan(
			&v.ID,
			&v.PatientID,
			&v.DeviceID,
			&v.RecordedAt,
			&v.HeartRate,
			&v.Systolic,
			&v.Diastolic,
			&v.OxygenSaturation,
			&v.Temperature,
			&v.Version,
			&v.CreatedAt,
		); err != nil {
			return nil, err
		}
		vitals = append(vitals, v)
	}
	return vitals, rows.Err()
}
