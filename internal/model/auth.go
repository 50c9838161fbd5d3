package model

import (
	"time"

	"github.com/google/uuid"
)

// APIKey is a partner credential for the external booking endpoint.
type APIKey struct {
	Base
	Key        string     `db:"key" json:"key"`
	Label      string     `db:"label" json:"label"`
	IsActive   bool       `db:"is_active" json:"is_active"`
	LastUsedAt *time.Time `db:"last_used_at" json:"last_used_at,omitempty"`
}

// DoctorAccount is a dashboard login tied to a CRM doctor row.
type DoctorAccount struct {
	Base
	DoctorID     uuid.UUID `db:"doctor_id" json:"doctor_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type TokenClaims struct {
	DoctorID uuid.UUID
	Email    string
}
