package repositories

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"medwatch/internal/models"
)

// MemoryStore backs all three repositories with in-process maps. It mirrors
// the Postgres semantics the services rely on: insertion order for listings,
// version-checked updates, device-delete cascading its vitals, and patient
// delete leaving orphans. Used by handler, service and simulator tests.
type MemoryStore struct {
	mu       sync.RWMutex
	patients []models.Patient
	devices  []models.MedicalDevice
	vitals   []models.Vital
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Patients() PatientRepository { return &memPatientRepo{store: s} }
func (s *MemoryStore) Devices() DeviceRepository   { return &memDeviceRepo{store: s} }
func (s *MemoryStore) Vitals() VitalRepository     { return &memVitalRepo{store: s} }

func clampWindow(n, offset, limit int) (int, int) {
	if offset > n {
		offset = n
	}
	end := offset + limit
	if end > n {
		end = n
	}
	return offset, end
}

type memPatientRepo struct {
	store *MemoryStore
}

func (r *memPatientRepo) Create(_ context.Context, patient *models.Patient) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	patient.Prepare()
	if patient.CreatedAt.IsZero() {
		patient.CreatedAt = time.Now().UTC()
	}
	s.patients = append(s.patients, *patient)
	return nil
}

func (r *memPatientRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.patients {
		if s.patients[i].ID == id {
			p := s.patients[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (r *memPatientRepo) List(_ context.Context, params ListParams) ([]models.Patient, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := clampWindow(len(s.patients), params.Offset, params.Limit)
	page := make([]models.Patient, end-start)
	copy(page, s.patients[start:end])
	return page, int64(len(s.patients)), nil
}

func (r *memPatientRepo) ListAll(_ context.Context) ([]models.Patient, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Patient, len(s.patients))
	copy(all, s.patients)
	return all, nil
}

func (r *memPatientRepo) Update(_ context.Context, patient *models.Patient) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == patient.ID {
			if s.patients[i].Version != patient.Version {
				return ErrVersionMismatch
			}
			patient.Version++
			patient.CreatedAt = s.patients[i].CreatedAt
			s.patients[i] = *patient
			return nil
		}
	}
	return ErrVersionMismatch
}

func (r *memPatientRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.patients {
		if s.patients[i].ID == id {
			s.patients = append(s.patients[:i], s.patients[i+1:]...)
			// no cascade: the patient's vitals stay behind as orphans
			return true, nil
		}
	}
	return false, nil
}

type memDeviceRepo struct {
	store *MemoryStore
}

func (r *memDeviceRepo) Create(_ context.Context, device *models.MedicalDevice) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	device.Prepare()
	if device.CreatedAt.IsZero() {
		device.CreatedAt = time.Now().UTC()
	}
	s.devices = append(s.devices, *device)
	return nil
}

func (r *memDeviceRepo) GetByID(_ context.Context, id uuid.UUID) (*models.MedicalDevice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.devices {
		if s.devices[i].ID == id {
			d := s.devices[i]
			return &d, nil
		}
	}
	return nil, nil
}

func (r *memDeviceRepo) List(_ context.Context, params ListParams) ([]models.MedicalDevice, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := clampWindow(len(s.devices), params.Offset, params.Limit)
	page := make([]models.MedicalDevice, end-start)
	copy(page, s.devices[start:end])
	return page, int64(len(s.devices)), nil
}

func (r *memDeviceRepo) ListAll(_ context.Context) ([]models.MedicalDevice, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.MedicalDevice, len(s.devices))
	copy(all, s.devices)
	return all, nil
}

func (r *memDeviceRepo) Update(_ context.Context, device *models.MedicalDevice) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.devices {
		if s.devices[i].ID == device.ID {
			if s.devices[i].Version != device.Version {
				return ErrVersionMismatch
			}
			device.Version++
			device.CreatedAt = s.devices[i].CreatedAt
			s.devices[i] = *device
			return nil
		}
	}
	return ErrVersionMismatch
}

func (r *memDeviceRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.devices {
		if s.devices[i].ID == id {
			s.devices = append(s.devices[:i], s.devices[i+1:]...)
			// cascade, same as the FK in the DDL
			kept := s.vitals[:0]
			for _, v := range s.vitals {
				if v.DeviceID != id {
					kept = append(kept, v)
				}
			}
			s.vitals = kept
			return true, nil
		}
	}
	return false, nil
}

type memVitalRepo struct {
	store *MemoryStore
}

func (r *memVitalRepo) Create(_ context.Context, vital *models.Vital) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.appendVitalLocked(vital)
}

func (r *memVitalRepo) CreateBatch(_ context.Context, vitals []models.Vital) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range vitals {
		if err := s.appendVitalLocked(&vitals[i]); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) appendVitalLocked(vital *models.Vital) error {
	vital.Prepare()
	if vital.CreatedAt.IsZero() {
		vital.CreatedAt = time.Now().UTC()
	}
	s.vitals = append(s.vitals, *vital)
	return nil
}

func (r *memVitalRepo) GetByID(_ context.Context, id uuid.UUID) (*models.Vital, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.vitals {
		if s.vitals[i].ID == id {
			v := s.vitals[i]
			return &v, nil
		}
	}
	return nil, nil
}

func (r *memVitalRepo) List(_ context.Context, params ListParams) ([]models.Vital, int64, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	start, end := clampWindow(len(s.vitals), params.Offset, params.Limit)
	page := make([]models.Vital, end-start)
	copy(page, s.vitals[start:end])
	return page, int64(len(s.vitals)), nil
}

func (r *memVitalRepo) ListByPatient(_ context.Context, patientID uuid.UUID) ([]models.Vital, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []models.Vital{}
	for _, v := range s.vitals {
		if v.PatientID == patientID {
			matches = append(matches, v)
		}
	}
	return matches, nil
}

func (r *memVitalRepo) ListByDevice(_ context.Context, deviceID uuid.UUID) ([]models.Vital, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []models.Vital{}
	for _, v := range s.vitals {
		if v.DeviceID == deviceID {
			matches = append(matches, v)
		}
	}
	return matches, nil
}

func (r *memVitalRepo) Update(_ context.Context, vital *models.Vital) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vitals {
		if s.vitals[i].ID == vital.ID {
			if s.vitals[i].Version != vital.Version {
				return ErrVersionMismatch
			}
			vital.Version++
			vital.CreatedAt = s.vitals[i].CreatedAt
			s.vitals[i] = *vital
			return nil
		}
	}
	return ErrVersionMismatch
}

func (r *memVitalRepo) Delete(_ context.Context, id uuid.UUID) (bool, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.vitals {
		if s.vitals[i].ID == id {
			s.vitals = append(s.vitals[:i], s.vitals[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}
