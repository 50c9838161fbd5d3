package notification

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sevaconnect/booking-api/internal/email"
	"github.com/sevaconnect/booking-api/internal/model"
)

// Provider delivers one notification on one channel.
type Provider interface {
	Deliver(ctx context.Context, n *model.Notification) error
}

// gatewayProvider stands in for an SMS/WhatsApp gateway. It logs the message
// and reports success. A real deployment swaps this for the gateway SDK
// (e.g. twilioClient.Messages.Create) without touching the dispatcher.
type gatewayProvider struct {
	channel model.NotificationChannel
}

func NewGatewayProvider(channel model.NotificationChannel) Provider {
	return &gatewayProvider{channel: channel}
}

func (p *gatewayProvider) Deliver(_ context.Context, n *model.Notification) error {
	log.Info().
		Str("channel", string(p.channel)).
		Str("to", n.To).
		Str("message", n.Message).
		Msg("gateway notification sent")
	return nil
}

// emailProvider delivers over SMTP.
type emailProvider struct {
	emailSvc email.Service
	subject  string
}

func NewEmailProvider(emailSvc email.Service) Provider {
	return &emailProvider{emailSvc: emailSvc, subject: "Appointment update"}
}

func (p *emailProvider) Deliver(ctx context.Context, n *model.Notification) error {
	if err := p.emailSvc.SendCustom(ctx, n.To, p.subject, n.Message); err != nil {
		return fmt.Errorf("email delivery failed: %w", err)
	}
	return nil
}
