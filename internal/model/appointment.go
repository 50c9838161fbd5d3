package model

import (
	"time"

	"github.com/google/uuid"
)

// CRM status vocabulary. Local statuses are lower-case free text; the mapper
// in service/crmsync translates between the two.
type CRMAppointmentStatus string

const (
	CRMStatusScheduled CRMAppointmentStatus = "SCHEDULED"
	CRMStatusCompleted CRMAppointmentStatus = "COMPLETED"
	CRMStatusCancelled CRMAppointmentStatus = "CANCELLED"
)

const (
	// AppointmentTypeConsultation is the only kind this portal books.
	AppointmentTypeConsultation = "CONSULTATION"

	// AppointmentSource tags CRM rows created by this system so hospital
	// staff can tell externally-booked appointments from walk-ins.
	AppointmentSource = "APPOINTMENTS_APP"
)

// CRMAppointment mirrors a row in the CRM appointments table.
type CRMAppointment struct {
	Base
	AppointmentCode  string               `db:"appointment_id" json:"appointment_id"`
	PatientID        uuid.UUID            `db:"patient_id" json:"patient_id"`
	DoctorID         uuid.UUID            `db:"doctor_id" json:"doctor_id"`
	AppointmentType  string               `db:"appointment_type" json:"appointment_type"`
	Status           CRMAppointmentStatus `db:"status" json:"status"`
	ScheduledAt      time.Time            `db:"scheduled_at" json:"scheduled_at"`
	DurationMinutes  int                  `db:"duration" json:"duration"`
	HospitalID       uuid.UUID            `db:"hospital_id" json:"hospital_id"`
	Source           string               `db:"source" json:"source"`
	ConfirmationDate *time.Time           `db:"confirmation_date" json:"confirmation_date,omitempty"`
}

// AppointmentSync is the orchestrator input: everything a booking surface
// collected about one appointment.
type AppointmentSync struct {
	Patient   LocalPatient `json:"patient"`
	Doctor    LocalDoctor  `json:"doctor"`
	StartTime time.Time    `json:"start_time"`
	EndTime   time.Time    `json:"end_time"`
	Status    string       `json:"status"`
}
