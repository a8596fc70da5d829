package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func RunMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	migrations := []string{
		createPatientsTable,
		createMedicalDevicesTable,
		createVitalsTable,
		createVitalsIndexes,
	}

	for i, migration := range migrations {
		log.Debug().Int("step", i+1).Int("total", len(migrations)).Msg("running migration")
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	log.Info().Msg("all migrations completed")
	return nil
}

const createPatientsTable = `
CREATE TABLE IF NOT EXISTS patients (
  id UUID PRIMARY KEY,
  full_name TEXT NOT NULL,
  age INT NOT NULL,
  gender TEXT NOT NULL,
  diagnosis TEXT NOT NULL DEFAULT '',
  last_checkup TIMESTAMPTZ,
  version BIGINT NOT NULL DEFAULT 1,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const createMedicalDevicesTable = `
CREATE TABLE IF NOT EXISTS medical_devices (
  id UUID PRIMARY KEY,
  device_name TEXT NOT NULL,
  device_type TEXT NOT NULL,
  version BIGINT NOT NULL DEFAULT 1,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// patient_id deliberately carries no foreign key: deleting a patient leaves
// its historic vitals behind as orphans, while deleting a device takes its
// vitals with it.
const createVitalsTable = `
CREATE TABLE IF NOT EXISTS vitals (
  id UUID PRIMARY KEY,
  patient_id UUID NOT NULL,
  device_id UUID NOT NULL REFERENCES medical_devices(id) ON DELETE CASCADE,
  recorded_at TIMESTAMPTZ NOT NULL,
  heart_rate INT NOT NULL,
  systolic INT NOT NULL,
  diastolic INT NOT NULL,
  oxygen_saturation INT NOT NULL,
  temperature DOUBLE PRECISION NOT NULL,
  version BIGINT NOT NULL DEFAULT 1,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

const createVitalsIndexes = `
CREATE INDEX IF NOT EXISTS idx_vitals_patient_id ON vitals(patient_id);
CREATE INDEX IF NOT EXISTS idx_vitals_device_id ON vitals(device_id);
`
