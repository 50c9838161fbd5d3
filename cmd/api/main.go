package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"

	"github.com/sevaconnect/booking-api/internal/config"
	"github.com/sevaconnect/booking-api/internal/email"
	"github.com/sevaconnect/booking-api/internal/handler"
	authHandler "github.com/sevaconnect/booking-api/internal/handler/auth"
	bookingHandler "github.com/sevaconnect/booking-api/internal/handler/booking"
	doctorHandler "github.com/sevaconnect/booking-api/internal/handler/doctor"
	notifyHandler "github.com/sevaconnect/booking-api/internal/handler/notify"
	"github.com/sevaconnect/booking-api/internal/middleware"
	"github.com/sevaconnect/booking-api/internal/model"
	"github.com/sevaconnect/booking-api/internal/repository/postgres"
	"github.com/sevaconnect/booking-api/internal/router"
	authService "github.com/sevaconnect/booking-api/internal/service/auth"
	bookingService "github.com/sevaconnect/booking-api/internal/service/booking"
	"github.com/sevaconnect/booking-api/internal/service/crmsync"
	"github.com/sevaconnect/booking-api/internal/service/directory"
	"github.com/sevaconnect/booking-api/internal/service/notification"
	pkgauth "github.com/sevaconnect/booking-api/pkg/auth"
	"github.com/sevaconnect/booking-api/pkg/messaging/redis"
	"github.com/sevaconnect/booking-api/pkg/metrics"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	hospitalID, err := uuid.Parse(cfg.CRM.HospitalID)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid hospital id in configuration")
	}

	// Initialize database
	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	patientRepo := postgres.NewCRMPatientRepository(db)
	doctorRepo := postgres.NewCRMDoctorRepository(db)
	appointmentRepo := postgres.NewCRMAppointmentRepository(db)
	apiKeyRepo := postgres.NewAPIKeyRepository(db)
	accountRepo := postgres.NewDoctorAccountRepository(db)

	// Initialize metrics
	m := metrics.New("booking_api")
	if err := m.Register(prometheus.DefaultRegisterer); err != nil {
		log.Fatal().Err(err).Msg("failed to register metrics")
	}

	// Initialize Redis message broker for notification retries
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

	// Initialize notification providers
	emailSvc := email.NewSMTPService(cfg.SMTP)
	providers := map[model.NotificationChannel]notification.Provider{
		model.ChannelSMS:      notification.NewGatewayProvider(model.ChannelSMS),
		model.ChannelWhatsApp: notification.NewGatewayProvider(model.ChannelWhatsApp),
		model.ChannelEmail:    notification.NewEmailProvider(emailSvc),
	}

	// Initialize services
	notificationSvc := notification.NewService(providers, broker, cfg.Notifications.RetryChannel, m)
	syncSvc := crmsync.NewService(patientRepo, doctorRepo, appointmentRepo, hospitalID, cfg.CRM.CallTimeout, m)
	bookingSvc := bookingService.NewService(syncSvc, notificationSvc, doctorRepo, hospitalID)
	directorySvc := directory.NewService(doctorRepo, appointmentRepo, hospitalID, cfg.CRM.DirectoryCacheTTL)
	jwtSvc := pkgauth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	authSvc := authService.NewService(accountRepo, jwtSvc)

	// Initialize middleware
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(apiKeyRepo)
	authMiddleware := middleware.NewAuthMiddleware(authSvc)

	// Initialize handlers
	h := handler.NewHandler(db)
	bookingH := bookingHandler.NewHandler(bookingSvc)
	doctorH := doctorHandler.NewHandler(directorySvc)
	notifyH := notifyHandler.NewHandler(notificationSvc)
	authH := authHandler.NewHandler(authSvc)

	// Setup router
	r := router.NewRouter(
		apiKeyMiddleware,
		authMiddleware,
		bookingH,
		doctorH,
		notifyH,
		authH,
		h,
		router.RouterConfig{
			RateLimitRPS:   cfg.RateLimit.RPS,
			RateLimitBurst: cfg.RateLimit.Burst,
			CORSConfig:     middleware.DefaultCORSConfig(),
			RequestTimeout: time.Duration(cfg.Server.TimeoutSeconds) * time.Second,
			MetricsPrefix:  "booking_api",
		},
	)
	r.Setup()

	// Create server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r.Engine(),
	}

	// Start server
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited properly")
}
