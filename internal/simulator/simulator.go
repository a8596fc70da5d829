package simulator

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"medwatch/internal/models"
	"medwatch/internal/repositories"
)

const persistTimeout = 30 * time.Second

// Simulator fabricates one vital-sign reading per known patient on a fixed
// cadence, picking the recording device uniformly at random, and persists
// each cycle's readings as one batch. It shares the storage backend with the
// request path and nothing else; a patient or device deleted mid-cycle may
// still receive a reading moments later.
type Simulator struct {
	patients repositories.PatientRepository
	devices  repositories.DeviceRepository
	vitals   repositories.VitalRepository
	interval time.Duration
	log      zerolog.Logger
}

func New(
	patients repositories.PatientRepository,
	devices repositories.DeviceRepository,
	vitals repositories.VitalRepository,
	interval time.Duration,
	log zerolog.Logger,
) *Simulator {
	return &Simulator{
		patients: patients,
		devices:  devices,
		vitals:   vitals,
		interval: interval,
		log:      log,
	}
}

// Run loops until ctx is cancelled. A failed cycle is logged and the loop
// keeps going; cancellation during the wait exits without starting the next
// cycle, while an in-flight persist is carried out on its own context so it
// can finish.
func (s *Simulator) Run(ctx context.Context) {
	s.log.Info().Dur("interval", s.interval).Msg("vital simulator started")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if ctx.Err() != nil {
			s.log.Info().Msg("vital simulator stopped")
			return
		}

		if err := s.runCycle(ctx); err != nil {
			s.log.Error().Err(err).Msg("simulator cycle failed")
		}

		select {
		case <-ctx.Done():
			s.log.Info().Msg("vital simulator stopped")
			return
		case <-ticker.C:
		}
	}
}

func (s *Simulator) runCycle(ctx context.Context) error {
	patients, err := s.patients.ListAll(ctx)
	if err != nil {
		return err
	}
	devices, err := s.devices.ListAll(ctx)
	if err != nil {
		return err
	}

	if len(devices) == 0 {
		s.log.Debug().Msg("no devices registered, skipping cycle")
		return nil
	}
	if len(patients) == 0 {
		return nil
	}

	now := time.Now().UTC()
	batch := make([]models.Vital, 0, len(patients))
	for _, patient := range patients {
		device := devices[rand.IntN(len(devices))]
		batch = append(batch, synthesizeVital(patient.ID, device.ID, now))
	}

	// detached from the loop context so a shutdown mid-persist does not
	// leave a partial batch behind
	persistCtx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := s.vitals.CreateBatch(persistCtx, batch); err != nil {
		return err
	}

	s.log.Debug().Int("count", len(batch)).Msg("persisted synthetic vitals")
	return nil
}

func synthesizeVital(patientID, deviceID uuid.UUID, now time.Time) models.Vital {
	return models.Vital{
		PatientID:        patientID,
		DeviceID:         deviceID,
		RecordedAt:       now,
		HeartRate:        60 + rand.IntN(40),
		Systolic:         110 + rand.IntN(30),
		Diastolic:        70 + rand.IntN(20),
		OxygenSaturation: 95 + rand.IntN(5),
		Temperature:      36.0 + rand.Float64()*2.0,
	}
}
