package model

import "time"

// CreateBookingRequest is the direct booking surface payload.
type CreateBookingRequest struct {
	PatientName  string    `json:"patient_name" binding:"required"`
	PatientEmail string    `json:"patient_email" binding:"omitempty,email"`
	PatientPhone string    `json:"patient_phone"`
	DoctorName   string    `json:"doctor_name" binding:"required"`
	DoctorCRMID  string    `json:"doctor_crm_id"`
	Specialty    string    `json:"specialty"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
}

// ExternalBookingRequest is the partner-facing payload, guarded by API key.
// Field names match the legacy partner contract.
type ExternalBookingRequest struct {
	PatientName  string    `json:"patient_name" binding:"required"`
	PatientPhone string    `json:"patient_phone"`
	DoctorCRMID  string    `json:"doctor_crm_id" binding:"required"`
	SlotTime     time.Time `json:"slot_time" binding:"required"`
}

// BookingResponse is what every booking surface returns: the booking is
// always recorded; Synced tells the caller whether the CRM caught up.
type BookingResponse struct {
	AppointmentCode string `json:"appointment_id"`
	Synced          bool   `json:"synced"`
	Message         string `json:"message"`
}
