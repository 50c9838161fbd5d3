package model

import (
	"github.com/google/uuid"
)

// LocalPatient is the loosely-identified patient a booking surface hands us.
// Name is the only field guaranteed to be present; phone and email are the
// weak keys used to match against the CRM store.
type LocalPatient struct {
	ID    string `json:"id"`
	Name  string `json:"name" binding:"required"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// CRMPatient mirrors a row in the CRM patients table. Rows are created once
// by the reconciler and never mutated from this side.
type CRMPatient struct {
	Base
	PatientCode string    `db:"patient_id" json:"patient_id"`
	FirstName   string    `db:"first_name" json:"first_name"`
	LastName    string    `db:"last_name" json:"last_name"`
	Phone       *string   `db:"phone" json:"phone,omitempty"`
	Email       *string   `db:"email" json:"email,omitempty"`
	Gender      string    `db:"gender" json:"gender"`
	Age         *string   `db:"age" json:"age,omitempty"`
	HospitalID  uuid.UUID `db:"hospital_id" json:"hospital_id"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	IsConfirmed bool      `db:"is_confirmed" json:"is_confirmed"`
}
