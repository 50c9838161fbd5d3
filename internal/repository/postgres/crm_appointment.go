package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sevaconnect/booking-api/internal/model"
)

func (r *crmAppointmentRepository) Create(ctx context.Context, appointment *model.CRMAppointment) error {
	query := `
		INSERT INTO appointments (
			id, appointment_id, patient_id, doctor_id, appointment_type,
			status, scheduled_at, duration, hospital_id, source,
			confirmation_date, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	appointment.ID = uuid.New()
	appointment.CreatedAt = time.Now()
	appointment.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		appointment.ID,
		appointment.AppointmentCode,
		appointment.PatientID,
		appointment.DoctorID,
		appointment.AppointmentType,
		appointment.Status,
		appointment.ScheduledAt,
		appointment.DurationMinutes,
		appointment.HospitalID,
		appointment.Source,
		appointment.ConfirmationDate,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *crmAppointmentRepository) LastCodeWithPrefix(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT appointment_id FROM appointments
		WHERE appointment_id LIKE $1
		ORDER BY appointment_id DESC
		LIMIT 1
	`
	var code string
	err := r.db.GetContext(ctx, &code, query, prefix+"%")
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up last appointment code: %w", err)
	}
	return code, nil
}

func (r *crmAppointmentRepository) ListForDoctor(ctx context.Context, hospitalID, doctorID uuid.UUID) ([]*model.CRMAppointment, error) {
	query := `
		SELECT id, appointment_id, patient_id, doctor_id, appointment_type,
		       status, scheduled_at, duration, hospital_id, source,
		       confirmation_date, created_at, updated_at
		FROM appointments
		WHERE doctor_id = $1 AND hospital_id = $2
		ORDER BY scheduled_at DESC
	`
	var appointments []*model.CRMAppointment
	if err := r.db.SelectContext(ctx, &appointments, query, doctorID, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list appointments for doctor: %w", err)
	}
	return appointments, nil
}
