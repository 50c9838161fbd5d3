package model

import (
	"time"

	"github.com/google/uuid"
)

type NotificationChannel string

const (
	ChannelSMS      NotificationChannel = "sms"
	ChannelWhatsApp NotificationChannel = "whatsapp"
	ChannelEmail    NotificationChannel = "email"
)

// Notification is a single fire-and-forget message to a patient or doctor.
type Notification struct {
	To      string              `json:"to" binding:"required"`
	Message string              `json:"message" binding:"required"`
	Channel NotificationChannel `json:"type"`
}

// NotificationEvent is published to the message broker for every delivery
// attempt, successful or not. The worker re-drives failed attempts.
type NotificationEvent struct {
	ID           uuid.UUID           `json:"id"`
	To           string              `json:"to"`
	Message      string              `json:"message"`
	Channel      NotificationChannel `json:"channel"`
	Delivered    bool                `json:"delivered"`
	AttemptCount int                 `json:"attempt_count"`
	LastError    string              `json:"last_error,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}
