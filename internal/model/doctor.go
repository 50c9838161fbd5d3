package model

import (
	"github.com/google/uuid"
)

// LocalDoctor is the doctor reference supplied by a booking surface. CRMID is
// set when the surface already knows the CRM row for this doctor.
type LocalDoctor struct {
	ID        string `json:"id"`
	Name      string `json:"name" binding:"required"`
	Specialty string `json:"specialty,omitempty"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CRMID     string `json:"crm_id,omitempty"`
}

// CRMDoctor mirrors a row in the CRM doctors table.
type CRMDoctor struct {
	Base
	Name           string    `db:"name" json:"name"`
	Department     *string   `db:"department" json:"department,omitempty"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	Fee            float64   `db:"fee" json:"fee"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	Email          *string   `db:"email" json:"email,omitempty"`
	HospitalID     uuid.UUID `db:"hospital_id" json:"hospital_id"`
	IsActive       bool      `db:"is_active" json:"is_active"`
}
