package services

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"medwatch/internal/models"
	"medwatch/internal/repositories"
)

type DeviceService struct {
	deviceRepo repositories.DeviceRepository
	vitalRepo  repositories.VitalRepository
}

func NewDeviceService(deviceRepo repositories.DeviceRepository, vitalRepo repositories.VitalRepository) *DeviceService {
	return &DeviceService{
		deviceRepo: deviceRepo,
		vitalRepo:  vitalRepo,
	}
}

func (s *DeviceService) List(ctx context.Context, pageNumber, pageSize int) ([]models.MedicalDevice, int64, error) {
	return s.deviceRepo.List(ctx, pageWindow(pageNumber, pageSize))
}

func (s *DeviceService) Get(ctx context.Context, id uuid.UUID) (*models.MedicalDevice, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}
	return device, nil
}

// ListVitals 404s when the device itself is missing; an existing device with
// no readings yields an empty collection.
func (s *DeviceService) ListVitals(ctx context.Context, id uuid.UUID) ([]models.Vital, error) {
	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}
	return s.vitalRepo.ListByDevice(ctx, id)
}

func (s *DeviceService) Create(ctx context.Context, req models.CreateMedicalDeviceRequest) (*models.MedicalDevice, error) {
	device := &models.MedicalDevice{
		DeviceName: req.DeviceName,
		DeviceType: req.DeviceType,
	}
	if err := s.deviceRepo.Create(ctx, device); err != nil {
		return nil, err
	}
	return device, nil
}

func (s *DeviceService) Update(ctx context.Context, id uuid.UUID, req models.UpdateMedicalDeviceRequest) (*models.MedicalDevice, error) {
	if id != req.ID {
		return nil, ErrIDMismatch
	}

	device, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if device == nil {
		return nil, ErrNotFound
	}

	device.DeviceName = req.DeviceName
	device.DeviceType = req.DeviceType

	if err := s.deviceRepo.Update(ctx, device); err != nil {
		if errors.Is(err, repositories.ErrVersionMismatch) {
			return nil, s.resolveConflict(ctx, id)
		}
		return nil, err
	}
	return device, nil
}

func (s *DeviceService) resolveConflict(ctx context.Context, id uuid.UUID) error {
	current, err := s.deviceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if current == nil {
		return ErrNotFound
	}
	return ErrConflict
}

// Delete removes the device and, transitively, every vital it recorded.
func (s *DeviceService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.deviceRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
