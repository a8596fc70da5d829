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

type PgDeviceRepository struct {
	pool *pgxpool.Pool
}

func NewPgDeviceRepository(pool *pgxpool.Pool) *PgDeviceRepository {
	return &PgDeviceRepository{pool: pool}
}

func (r *PgDeviceRepository) Create(ctx context.Context, device *models.MedicalDevice) error {
	device.Prepare()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO medical_devices (id, device_name, device_type, version, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.pool.Exec(ctx, query,
		device.ID,
		device.DeviceName,
		device.DeviceType,
		device.Version,
		device.CreatedAt,
	)
	return err
}

func (r *PgDeviceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.MedicalDevice, error) {
	query := `SELECT id, device_name, device_type, version, created_at
		FROM medical_devices WHERE id = $1`

	var d models.MedicalDevice
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&d.ID,
		&d.DeviceName,
		&d.DeviceType,
		&d.Version,
		&d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func (r *PgDeviceRepository) List(ctx context.Context, params ListParams) ([]models.MedicalDevice, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM medical_devices`).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT id, device_name, device_type, version, created_at
		FROM medical_devices ORDER BY created_at, id LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, params.Limit, params.Offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	devices, err := scanDevices(rows)
	if err != nil {
		return nil, 0, err
	}
	return devices, total, nil
}

func (r *PgDeviceRepository) ListAll(ctx context.Context) ([]models.MedicalDevice, error) {
	query := `SELECT id, device_name, device_type, version, created_at
		FROM medical_devices ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanDevices(rows)
}

func (r *PgDeviceRepository) Update(ctx context.Context, device *models.MedicalDevice) error {
	query := `
		UPDATE medical_devices
		SET device_name = $1, device_type = $2, version = version + 1
		WHERE id = $3 AND version = $4
	`
	tag, err := r.pool.Exec(ctx, query,
		device.DeviceName,
		device.DeviceType,
		device.ID,
		device.Version,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrVersionMismatch
	}
	device.Version++
	return nil
}

// Delete removes the device; its vitals go with it via ON DELETE CASCADE.
func (r *PgDeviceRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM medical_devices WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanDevices(rows pgx.Rows) ([]models.MedicalDevice, error) {
	devices := []models.MedicalDevice{}
	for rows.Next() {
		var d models.MedicalDevice
		if err := rows.Scan(
			&d.ID,
			&d.DeviceName,
			&d.DeviceType,
			&d.Version,
			&d.CreatedAt,
		); err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}
