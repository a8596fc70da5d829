package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"medwatch/internal/models"
	"medwatch/internal/repositories"
)

type VitalService struct {
	vitalRepo   repositories.VitalRepository
	patientRepo repositories.PatientRepository
	deviceRepo  repositories.DeviceRepository
}

func NewVitalService(
	vitalRepo repositories.VitalRepository,
	patientRepo repositories.PatientRepository,
	deviceRepo repositories.DeviceRepository,
) *VitalService {
	return &VitalService{
		vitalRepo:   vitalRepo,
		patientRepo: patientRepo,
		deviceRepo:  deviceRepo,
	}
}

func (s *VitalService) List(ctx context.Context, pageNumber, pageSize int) ([]models.Vital, int64, error) {
	return s.vitalRepo.List(ctx, pageWindow(pageNumber, pageSize))
}

func (s *VitalService) Get(ctx context.Context, id uuid.UUID) (*models.Vital, error) {
	vital, err := s.vitalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vital == nil {
		return nil, ErrNotFound
	}
	return vital, nil
}

// ListByPatient returns an empty collection even when the patient id matches
// nothing. The device-scoped listing 404s on a missing owner; this one does
// not, and callers depend on that difference.
func (s *VitalService) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Vital, error) {
	return s.vitalRepo.ListByPatient(ctx, patientID)
}

// Create requires both referenced rows to exist at write time. The patient
// column carries no database constraint, so the check here is the only
// guard for it.
func (s *VitalService) Create(ctx context.Context, req models.CreateVitalRequest) (*models.Vital, error) {
	if err := s.checkReferences(ctx, req.PatientID, req.DeviceID); err != nil {
		return nil, err
	}

	vital := &models.Vital{
		PatientID:        req.PatientID,
		DeviceID:         req.DeviceID,
		RecordedAt:       req.RecordedAt,
		HeartRate:        req.HeartRate,
		Systolic:         req.Systolic,
		Diastolic:        req.Diastolic,
		OxygenSaturation: req.OxygenSaturation,
		Temperature:      req.Temperature,
	}
	if err := s.vitalRepo.Create(ctx, vital); err != nil {
		return nil, err
	}
	return vital, nil
}

func (s *VitalService) Update(ctx context.Context, id uuid.UUID, req models.UpdateVitalRequest) (*models.Vital, error) {
	if id != req.ID {
		return nil, ErrIDMismatch
	}

	vital, err := s.vitalRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vital == nil {
		return nil, ErrNotFound
	}

	if err := s.checkReferences(ctx, req.PatientID, req.DeviceID); err != nil {
		return nil, err
	}

	vital.PatientID = req.PatientID
	vital.DeviceID = req.DeviceID
	vital.RecordedAt = req.RecordedAt
	vital.HeartRate = req.HeartRate
	vital.Systolic = req.Systolic
	vital.Diastolic = req.Diastolic
	vital.OxygenSaturation = req.OxygenSaturation
	vital.Temperature = req.Temperature

	if err := s.vitalRepo.Update(ctx, vital); err != nil {
		if errors.Is(err, repositories.ErrVersionMismatch) {
			return nil, s.resolveConflict(ctx, id)
		}
		return nil, err
	}
	return vital, nil
}

func (s *VitalService) resolveConflict(ctx context.Context, id uuid.UUID) error {
	current, err := s.vitalRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	return ErrConflict
}

func (s *VitalService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.vitalRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *VitalService) checkReferences(ctx context.Context, patientID, deviceID uuid.UUID) error {
	patient, err := s.patientRepo.GetByID(ctx, patientID)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrBadReference
	}

	device, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return err
	}
	if device == nil {
		return ErrBadReference
	}
	return nil
}
