package worker

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/service/notification"
	"github.com/sevaconnect/booking-api/pkg/logger"
)

type stubProvider struct {
	err       error
	delivered []*model.Notification
}

func (p *stubProvider) Deliver(_ context.Context, n *model.Notification) error {
	if p.err != nil {
		return p.err
	}
	p.delivered = append(p.delivered, n)
	return nil
}

type memBroker struct {
	ch        chan []byte
	published []*model.NotificationEvent
}

func (b *memBroker) Publish(_ context.Context, _ string, message interface{}) error {
	b.published = append(b.published, message.(*model.NotificationEvent))
	return nil
}

func (b *memBroker) Subscribe(_ context.Context, _ string) (<-chan []byte, error) {
	return b.ch, nil
}

func (b *memBroker) Close() error { return nil }

func newTestNotifier(broker *memBroker, provider *stubProvider) *Notifier {
	return NewNotifier(
		broker,
		map[model.NotificationChannel]notification.Provider{model.ChannelSMS: provider},
		NotifierConfig{RetryChannel: "notifications.retry", MaxAttempts: 3, RetryDelay: time.Millisecond},
		logger.NewLogger(&logger.Config{Level: logger.ErrorLevel, TimeFormat: time.RFC3339, Output: io.Discard}),
	)
}

func encodeEvent(t *testing.T, event *model.NotificationEvent) []byte {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)
	return payload
}

func retryEvent(attempts int) *model.NotificationEvent {
	return &model.NotificationEvent{
		ID:           uuid.New(),
		To:           "+919812345678",
		Message:      "hello",
		Channel:      model.ChannelSMS,
		AttemptCount: attempts,
		CreatedAt:    time.Now(),
	}
}

func TestHandleRedelivers(t *testing.T) {
	broker := &memBroker{}
	provider := &stubProvider{}
	n := newTestNotifier(broker, provider)

	n.handle(context.Background(), encodeEvent(t, retryEvent(1)))

	require.Len(t, provider.delivered, 1)
	assert.Equal(t, "+919812345678", provider.delivered[0].To)
	assert.Empty(t, broker.published, "successful redelivery must not requeue")
}

func TestHandleRequeuesWithIncrementedAttempt(t *testing.T) {
	broker := &memBroker{}
	provider := &stubProvider{err: errors.New("gateway timeout")}
	n := newTestNotifier(broker, provider)

	n.handle(context.Background(), encodeEvent(t, retryEvent(1)))

	require.Len(t, broker.published, 1)
	assert.Equal(t, 2, broker.published[0].AttemptCount)
	assert.Equal(t, "gateway timeout", broker.published[0].LastError)
}

func TestHandleDropsAtMaxAttempts(t *testing.T) {
	broker := &memBroker{}
	provider := &stubProvider{err: errors.New("gateway timeout")}
	n := newTestNotifier(broker, provider)

	n.handle(context.Background(), encodeEvent(t, retryEvent(2)))

	assert.Empty(t, broker.published, "exhausted event must be dropped, not requeued")
}

func TestHandleMalformedPayload(t *testing.T) {
	broker := &memBroker{}
	provider := &stubProvider{}
	n := newTestNotifier(broker, provider)

	n.handle(context.Background(), []byte("not json"))

	assert.Empty(t, provider.delivered)
	assert.Empty(t, broker.published)
}

func TestStartConsumesUntilChannelCloses(t *testing.T) {
	broker := &memBroker{ch: make(chan []byte, 1)}
	provider := &stubProvider{}
	n := newTestNotifier(broker, provider)

	broker.ch <- encodeEvent(t, retryEvent(1))
	close(broker.ch)

	require.NoError(t, n.Start(context.Background()))
	assert.Len(t, provider.delivered, 1)
}
