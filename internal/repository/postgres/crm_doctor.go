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

func (r *crmDoctorRepository) Get(ctx context.Context, hospitalID, id uuid.UUID) (*model.CRMDoctor, error) {
	query := `
		SELECT id, name, department, specialization, fee, phone, email,
		       hospital_id, is_active, created_at, updated_at
		FROM doctors
		WHERE id = $1 AND hospital_id = $2
	`
	var doctor model.CRMDoctor
	err := r.db.GetContext(ctx, &doctor, query, id, hospitalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *crmDoctorRepository) FindByName(ctx context.Context, hospitalID uuid.UUID, name string) (*model.CRMDoctor, error) {
	query := `
		SELECT id, name, department, specialization, fee, phone, email,
		       hospital_id, is_active, created_at, updated_at
		FROM doctors
		WHERE name = $1 AND hospital_id = $2
		LIMIT 1
	`
	var doctor model.CRMDoctor
	err := r.db.GetContext(ctx, &doctor, query, name, hospitalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor by name: %w", err)
	}
	return &doctor, nil
}

func (r *crmDoctorRepository) Create(ctx context.Context, doctor *model.CRMDoctor) error {
	query := `
		INSERT INTO doctors (
			id, name, department, specialization, fee, phone, email,
			hospital_id, is_active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	doctor.ID = uuid.New()
	doctor.CreatedAt = time.Now()
	doctor.UpdatedAt = time.Now()

	_, err := r.db.ExecContext(ctx, query,
		doctor.ID,
		doctor.Name,
		doctor.Department,
		doctor.Specialization,
		doctor.Fee,
		doctor.Phone,
		doctor.Email,
		doctor.HospitalID,
		doctor.IsActive,
		doctor.CreatedAt,
		doctor.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *crmDoctorRepository) List(ctx context.Context, hospitalID uuid.UUID) ([]*model.CRMDoctor, error) {
	query := `
		SELECT id, name, department, specialization, fee, phone, email,
		       hospital_id, is_active, created_at, updated_at
		FROM doctors
		WHERE hospital_id = $1 AND is_active = true
		ORDER BY name
	`
	var doctors []*model.CRMDoctor
	if err := r.db.SelectContext(ctx, &doctors, query, hospitalID); err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}
