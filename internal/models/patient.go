package models

import (
	"time"

	"github.com/google/uuid"
)

// Patient matches the patients table.
// Deleting a patient does NOT cascade to its vitals; historic readings stay
// behind as orphaned rows (see vitals DDL).
type Patient struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Age         int       `json:"age"`
	Gender      string    `json:"gender"`
	Diagnosis   string    `json:"diagnosis"`
	LastCheckup time.Time `json:"last_checkup"`
	Version     int64     `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Patient) Prepare() {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.Version == 0 {
		p.Version = 1
	}
}

type CreatePatientRequest struct {
	FullName    string    `json:"full_name" binding:"required"`
	Age         int       `json:"age" binding:"min=0,max=150"`
	Gender      string    `json:"gender" binding:"required"`
	Diagnosis   string    `json:"diagnosis"`
	LastCheckup time.Time `json:"last_checkup"`
}

// UpdatePatientRequest carries the full replacement values. The body ID must
// match the path ID; a mismatch is a bad request, not a not-found.
type UpdatePatientRequest struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	FullName    string    `json:"full_name" binding:"required"`
	Age         int       `json:"age" binding:"min=0,max=150"`
	Gender      string    `json:"gender" binding:"required"`
	Diagnosis   string    `json:"diagnosis"`
	LastCheckup time.Time `json:"last_checkup"`
}
