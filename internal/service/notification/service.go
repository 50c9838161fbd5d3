package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/pkg/messaging"
	"github.com/sevaconnect/booking-api/pkg/metrics"
)

// Service is the fire-and-forget notification dispatcher. Send reports
// whether delivery worked but never raises: a dead gateway must not fail a
// booking or a sync. Failed attempts are re-published to the broker so the
// worker can re-drive them; that path is best-effort too, not a durable
// queue.
type Service interface {
	Send(ctx context.Context, n *model.Notification) bool
}

type service struct {
	providers    map[model.NotificationChannel]Provider
	broker       messaging.Broker
	retryChannel string
	metrics      *metrics.Metrics
}

func NewService(providers map[model.NotificationChannel]Provider, broker messaging.Broker, retryChannel string, m *metrics.Metrics) Service {
	return &service{
		providers:    providers,
		broker:       broker,
		retryChannel: retryChannel,
		metrics:      m,
	}
}

func (s *service) Send(ctx context.Context, n *model.Notification) bool {
	channel := n.Channel
	if _, ok := s.providers[channel]; !ok {
		// Unknown channels fall back to SMS, matching the legacy contract.
		channel = model.ChannelSMS
	}

	provider, ok := s.providers[channel]
	if !ok {
		log.Error().Str("channel", string(n.Channel)).Msg("no provider for notification channel")
		s.metrics.NotificationsSent.WithLabelValues(string(channel), "error").Inc()
		return false
	}

	if err := provider.Deliver(ctx, n); err != nil {
		log.Warn().Err(err).
			Str("channel", string(channel)).
			Str("to", n.To).
			Msg("notification delivery failed")
		s.metrics.NotificationsSent.WithLabelValues(string(channel), "failed").Inc()
		s.publishRetry(ctx, n, channel, err)
		return false
	}

	s.metrics.NotificationsSent.WithLabelValues(string(channel), "sent").Inc()
	return true
}

func (s *service) publishRetry(ctx context.Context, n *model.Notification, channel model.NotificationChannel, cause error) {
	if s.broker == nil {
		return
	}

	event := &model.NotificationEvent{
		ID:           uuid.New(),
		To:           n.To,
		Message:      n.Message,
		Channel:      channel,
		Delivered:    false,
		AttemptCount: 1,
		LastError:    cause.Error(),
		CreatedAt:    time.Now(),
	}

	if err := s.broker.Publish(ctx, s.retryChannel, event); err != nil {
		// Retry is best-effort on top of best-effort; just log.
		log.Warn().Err(err).Msg("failed to publish notification retry event")
	}
}
