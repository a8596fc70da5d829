package models

import (
	"time"

	"github.com/google/uuid"
)

// Vital is one timestamped set of physiological measurements tied to the
// patient it was taken from and the device that recorded it.
type Vital struct {
	ID               uuid.UUID `json:"id"`
	PatientID        uuid.UUID `json:"patient_id"`
	DeviceID         uuid.UUID `json:"device_id"`
	RecordedAt       time.Time `json:"recorded_at"`
	HeartRate        int       `json:"heart_rate"`
	Systolic         int       `json:"systolic"`
	Diastolic        int       `json:"diastolic"`
	OxygenSaturation int       `json:"oxygen_saturation"`
	Temperature      float64   `json:"temperature"`
	Version          int64     `json:"-"`
	CreatedAt        time.Time `json:"created_at"`
}

func (v *Vital) Prepare() {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	if v.Version == 0 {
		v.Version = 1
	}
	if v.RecordedAt.IsZero() {
		v.RecordedAt = time.Now().UTC()
	}
}

type CreateVitalRequest struct {
	PatientID        uuid.UUID `json:"patient_id" binding:"required"`
	DeviceID         uuid.UUID `json:"device_id" binding:"required"`
	RecordedAt       time.Time `json:"recorded_at"`
	HeartRate        int       `json:"heart_rate" binding:"required,min=1,max=300"`
	Systolic         int       `json:"systolic" binding:"required,min=1,max=300"`
	Diastolic        int       `json:"diastolic" binding:"required,min=1,max=300"`
	OxygenSaturation int       `json:"oxygen_saturation" binding:"required,min=1,max=100"`
	Temperature      float64   `json:"temperature" binding:"required,min=20,max=45"`
}

type UpdateVitalRequest struct {
	ID               uuid.UUID `json:"id" binding:"required"`
	PatientID        uuid.UUID `json:"patient_id" binding:"required"`
	DeviceID         uuid.UUID `json:"device_id" binding:"required"`
	RecordedAt       time.Time `json:"recorded_at"`
	HeartRate        int       `json:"heart_rate" binding:"required,min=1,max=300"`
	Systolic         int       `json:"systolic" binding:"required,min=1,max=300"`
	Diastolic        int       `json:"diastolic" binding:"required,min=1,max=300"`
	OxygenSaturation int       `json:"oxygen_saturation" binding:"required,min=1,max=100"`
	Temperature      float64   `json:"temperature" binding:"required,min=20,max=45"`
}
