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

func (r *apiKeyRepository) GetByKey(ctx context.Context, key string) (*model.APIKey, error) {
	query := `
		SELECT id, key, label, is_active, last_used_at, created_at, updated_at
		FROM api_keys
		WHERE key = $1
	`
	var apiKey model.APIKey
	err := r.db.GetContext(ctx, &apiKey, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get api key: %w", err)
	}
	return &apiKey, nil
}

func (r *apiKeyRepository) Touch(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE api_keys SET last_used_at = $1 WHERE id = $2`
	_, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to touch api key: %w", err)
	}
	return nil
}

func (r *doctorAccountRepository) GetByEmail(ctx context.Context, email string) (*model.DoctorAccount, error) {
	query := `
		SELECT id, doctor_id, email, password_hash, is_active, created_at, updated_at
		FROM doctor_accounts
		WHERE email = $1 AND is_active = true
	`
	var account model.DoctorAccount
	err := r.db.GetContext(ctx, &account, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get doctor account: %w", err)
	}
	return &account, nil
}
