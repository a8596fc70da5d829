package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"medwatch/internal/models"
)

// ErrVersionMismatch is returned by Update when the row was changed or
// removed between read and write (the version column no longer matches).
var ErrVersionMismatch = errors.New("version mismatch")

// ListParams is a pre-clamped LIMIT/OFFSET window. Services normalize raw
// page inputs before building one.
type ListParams struct {
	Offset int
	Limit  int
}

// PatientRepository is the storage capability for patients. GetByID returns
// (nil, nil) when no row matches; Delete reports whether a row was removed.
type PatientRepository interface {
	Create(ctx context.Context, patient *models.Patient) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Patient, error)
	List(ctx context.Context, params ListParams) ([]models.Patient, int64, error)
	ListAll(ctx context.Context) ([]models.Patient, error)
	Update(ctx context.Context, patient *models.Patient) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type DeviceRepository interface {
	Create(ctx context.Context, device *models.MedicalDevice) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MedicalDevice, error)
	List(ctx context.Context, params ListParams) ([]models.MedicalDevice, int64, error)
	ListAll(ctx context.Context) ([]models.MedicalDevice, error)
	Update(ctx context.Context, device *models.MedicalDevice) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type VitalRepository interface {
	Create(ctx context.Context, vital *models.Vital) error
	CreateBatch(ctx context.Context, vitals []models.Vital) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Vital, error)
	List(ctx context.Context, params ListParams) ([]models.Vital, int64, error)
	ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Vital, error)
	ListByDevice(ctx context.Context, deviceID uuid.UUID) ([]models.Vital, error)
	Update(ctx context.Context, vital *models.Vital) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
