package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/service/notification"
	"github.com/sevaconnect/booking-api/pkg/logger"
	"github.com/sevaconnect/booking-api/pkg/messaging"
)

type NotifierConfig struct {
	RetryChannel string
	MaxAttempts  int
	RetryDelay   time.Duration
}

// Notifier consumes failed notification events from the broker and re-drives
// delivery a bounded number of times. Events that exhaust their attempts are
// dropped with an error log; there is no durable dead-letter store.
type Notifier struct {
	broker    messaging.Broker
	providers map[model.NotificationChannel]notification.Provider
	config    NotifierConfig
	logger    *logger.Logger
}

func NewNotifier(
	broker messaging.Broker,
	providers map[model.NotificationChannel]notification.Provider,
	config NotifierConfig,
	logger *logger.Logger,
) *Notifier {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 3
	}
	if config.RetryDelay <= 0 {
		config.RetryDelay = 5 * time.Second
	}

	return &Notifier{
		broker:    broker,
		providers: providers,
		config:    config,
		logger:    logger,
	}
}

func (n *Notifier) Start(ctx context.Context) error {
	msgs, err := n.broker.Subscribe(ctx, n.config.RetryChannel)
	if err != nil {
		return fmt.Errorf("failed to subscribe to retry channel: %w", err)
	}

	n.logger.Info("notification retry worker started")

	for {
		select {
		case <-ctx.Done():
			n.logger.Info("notification retry worker shutting down")
			return nil
		case payload, ok := <-msgs:
			if !ok {
				return nil
			}
			n.handle(ctx, payload)
		}
	}
}

func (n *Notifier) handle(ctx context.Context, payload []byte) {
	var event model.NotificationEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		n.logger.Error(err, "failed to decode notification event")
		return
	}

	provider, ok := n.providers[event.Channel]
	if !ok {
		n.logger.Error(fmt.Errorf("no provider for channel %s", event.Channel), "dropping notification event")
		return
	}

	msg := &model.Notification{
		To:      event.To,
		Message: event.Message,
		Channel: event.Channel,
	}

	if err := provider.Deliver(ctx, msg); err == nil {
		n.logger.Info("notification redelivered", "id", event.ID.String())
		return
	} else if event.AttemptCount+1 >= n.config.MaxAttempts {
		n.logger.Error(err, "notification dropped after max attempts", "id", event.ID.String())
		return
	} else {
		event.AttemptCount++
		event.LastError = err.Error()

		select {
		case <-ctx.Done():
			return
		case <-time.After(n.config.RetryDelay):
		}

		if err := n.broker.Publish(ctx, n.config.RetryChannel, &event); err != nil {
			n.logger.Error(err, "failed to requeue notification event", "id", event.ID.String())
		}
	}
}
