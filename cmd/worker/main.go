package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sevaconnect/booking-api/internal/config"
	"github.com/sevaconnect/booking-api/internal/email"
	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/service/notification"
	"github.com/sevaconnect/booking-api/pkg/logger"
	"github.com/sevaconnect/booking-api/pkg/messaging/redis"
	"github.com/sevaconnect/booking-api/pkg/worker"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	brokerLogger := log.Logger
	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, &brokerLogger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	emailSvc := email.NewSMTPService(cfg.SMTP)
	providers := map[model.NotificationChannel]notification.Provider{
		model.ChannelSMS:      notification.NewGatewayProvider(model.ChannelSMS),
		model.ChannelWhatsApp: notification.NewGatewayProvider(model.ChannelWhatsApp),
		model.ChannelEmail:    notification.NewEmailProvider(emailSvc),
	}

	notifier := worker.NewNotifier(broker, providers, worker.NotifierConfig{
		RetryChannel: cfg.Notifications.RetryChannel,
		MaxAttempts:  cfg.Notifications.MaxAttempts,
		RetryDelay:   5 * time.Second,
	}, logger.NewLogger(nil))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info().Str("channel", cfg.Notifications.RetryChannel).Msg("notification retry worker starting")
	if err := notifier.Start(ctx); err != nil && ctx.Err() == nil {
		log.Fatal().Err(err).Msg("worker stopped unexpectedly")
	}

	log.Info().Msg("worker exited")
}
