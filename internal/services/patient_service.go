package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"medwatch/internal/models"
	"medwatch/internal/repositories"
)

type PatientService struct {
	patientRepo repositories.PatientRepository
}

func NewPatientService(patientRepo repositories.PatientRepository) *PatientService {
	return &PatientService{patientRepo: patientRepo}
}

func (s *PatientService) List(ctx context.Context, pageNumber, pageSize int) ([]models.Patient, int64, error) {
	return s.patientRepo.List(ctx, pageWindow(pageNumber, pageSize))
}

func (s *PatientService) Get(ctx context.Context, id uuid.UUID) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}
	return patient, nil
}

func (s *PatientService) Create(ctx context.Context, req models.CreatePatientRequest) (*models.Patient, error) {
	patient := &models.Patient{
		FullName:    req.FullName,
		Age:         req.Age,
		Gender:      req.Gender,
		Diagnosis:   req.Diagnosis,
		LastCheckup: req.LastCheckup,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// Update reads the current row, applies the replacement fields and writes
// back under the version read. A version mismatch means somebody changed or
// deleted the row in between; re-check existence to decide between 404 and
// conflict.
func (s *PatientService) Update(ctx context.Context, id uuid.UUID, req models.UpdatePatientRequest) (*models.Patient, error) {
	if id != req.ID {
		return nil, ErrIDMismatch
	}

	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrNotFound
	}

	patient.FullName = req.FullName
	patient.Age = req.Age
	patient.Gender = req.Gender
	patient.Diagnosis = req.Diagnosis
	patient.LastCheckup = req.LastCheckup

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		if errors.Is(err, repositories.ErrVersionMismatch) {
			return nil, s.resolveConflict(ctx, id)
		}
		return nil, err
	}
	return patient, nil
}

func (s *PatientService) resolveConflict(ctx context.Context, id uuid.UUID) error {
	current, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	return ErrConflict
}

// Delete does not cascade: the patient's historic vitals stay behind.
func (s *PatientService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.patientRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
