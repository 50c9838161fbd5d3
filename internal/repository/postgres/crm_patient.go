package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository"
)

func (r *crmPatientRepository) FindByPhone(ctx context.Context, hospitalID uuid.UUID, phone string) (*model.CRMPatient, error) {
	query := `
		SELECT id, patient_id, first_name, last_name, phone, email, gender, age,
		       hospital_id, is_active, is_confirmed, created_at, updated_at
		FROM patients
		WHERE phone = $1 AND hospital_id = $2
		LIMIT 1
	`
	var patient model.CRMPatient
	err := r.db.GetContext(ctx, &patient, query, phone, hospitalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find patient by phone: %w", err)
	}
	return &patient, nil
}

func (r *crmPatientRepository) FindByEmail(ctx context.Context, hospitalID uuid.UUID, email string) (*model.CRMPatient, error) {
	query := `
		SELECT id, patient_id, first_name, last_name, phone, email, gender, age,
		       hospital_id, is_active, is_confirmed, created_at, updated_at
		FROM patients
		WHERE email = $1 AND hospital_id = $2
		LIMIT 1
	`
	var patient model.CRMPatient
	err := r.db.GetContext(ctx, &patient, query, email, hospitalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find patient by email: %w", err)
	}
	return &patient, nil
}

func (r *crmPatientRepository) Create(ctx context.Context, patient *model.CRMPatient) error {
	query := `
		INSERT INTO patients (
			id, patient_id, first_name, last_name, phone, email, gender, age,
			hospital_id, is_active, is_confirmed, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`
	patient.ID = uuid.New()
	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.PatientCode,
		patient.FirstName,
		patient.LastName,
		patient.Phone,
		patient.Email,
		patient.Gender,
		patient.Age,
		patient.HospitalID,
		patient.IsActive,
		patient.IsConfirmed,
		patient.CreatedAt,
		patient.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *crmPatientRepository) LastCodeWithPrefix(ctx context.Context, prefix string) (string, error) {
	query := `
		SELECT patient_id FROM patients
		WHERE patient_id LIKE $1
		ORDER BY patient_id DESC
		LIMIT 1
	`
	var code string
	err := r.db.GetContext(ctx, &code, query, prefix+"%")
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up last patient code: %w", err)
	}
	return code, nil
}
