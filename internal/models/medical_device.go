package models

import (
	"time"

	"github.com/google/uuid"
)

// MedicalDevice matches the medical_devices table.
// Deleting a device cascades delete of its vitals (FK ON DELETE CASCADE).
type MedicalDevice struct {
	ID         uuid.UUID `json:"id"`
	DeviceName string    `json:"device_name"`
	DeviceType string    `json:"device_type"`
	Version    int64     `json:"-"`
	CreatedAt  time.Time `json:"created_at"`
}

func (d *MedicalDevice) Prepare() {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	if d.Version == 0 {
		d.Version = 1
	}
}

type CreateMedicalDeviceRequest struct {
	DeviceName string `json:"device_name" binding:"required"`
	DeviceType string `json:"device_type" binding:"required"`
}

type UpdateMedicalDeviceRequest struct {
	ID         uuid.UUID `json:"id" binding:"required"`
	DeviceName string    `json:"device_name" binding:"required"`
	DeviceType string    `json:"device_type" binding:"required"`
}
