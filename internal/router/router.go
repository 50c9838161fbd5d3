package router

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/sevaconnect/booking-api/internal/handler"
	authH "github.com/sevaconnect/booking-api/internal/handler/auth"
	bookingH "github.com/sevaconnect/booking-api/internal/handler/booking"
	doctorH "github.com/sevaconnect/booking-api/internal/handler/doctor"
	notifyH "github.com/sevaconnect/booking-api/internal/handler/notify"
	"github.com/sevaconnect/booking-api/internal/middleware"
)

type Router struct {
	engine   *gin.Engine
	apiKey   *middleware.APIKeyMiddleware
	auth     *middleware.AuthMiddleware
	bookingH *bookingH.Handler
	doctorH  *doctorH.Handler
	notifyH  *notifyH.Handler
	authH    *authH.Handler
	h        *handler.Handler
	metrics  *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	errorTotal      *prometheus.CounterVec
}

type RouterConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	CORSConfig     middleware.CORSConfig
	RequestTimeout time.Duration
	MetricsPrefix  string
}

func NewRouter(
	apiKey *middleware.APIKeyMiddleware,
	auth *middleware.AuthMiddleware,
	bookingHandler *bookingH.Handler,
	doctorHandler *doctorH.Handler,
	notifyHandler *notifyH.Handler,
	authHandler *authH.Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	middleware.RegisterValidation()

	if config.RequestTimeout <= 0 {
		config.RequestTimeout = 30 * time.Second
	}

	r := &Router{
		engine:   engine,
		apiKey:   apiKey,
		auth:     auth,
		bookingH: bookingHandler,
		doctorH:  doctorHandler,
		notifyH:  notifyHandler,
		authH:    authHandler,
		h:        h,
		metrics:  initRouterMetrics(config.MetricsPrefix),
	}

	engine.Use(
		gin.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		r.metricsMiddleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.RequestTimeout}),
		middleware.RequestID(),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  rate.Limit(config.RateLimitRPS),
		Burst: config.RateLimitBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.setupHealthCheck(api)

	// Public routes
	r.bookingH.RegisterRoutes(api)
	r.notifyH.RegisterRoutes(api)
	r.doctorH.RegisterRoutes(api)
	r.authH.RegisterRoutes(api)

	// Partner routes guarded by API key
	external := api.Group("")
	external.Use(r.apiKey.Authenticate())
	r.bookingH.RegisterExternalRoutes(external)

	// Doctor dashboard behind JWT
	dashboard := api.Group("")
	dashboard.Use(r.auth.Authenticate())
	r.doctorH.RegisterDashboardRoutes(dashboard)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func initRouterMetrics(prefix string) *routerMetrics {
	m := &routerMetrics{
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: prefix + "_request_duration_seconds",
				Help: "Duration of HTTP requests in seconds",
			},
			[]string{"method", "path", "status"},
		),
		requestTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		errorTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: prefix + "_errors_total",
				Help: "Total number of HTTP errors",
			},
			[]string{"method", "path", "type"},
		),
	}

	m.requestDuration = register(prefix, m.requestDuration).(*prometheus.HistogramVec)
	m.requestTotal = register(prefix, m.requestTotal).(*prometheus.CounterVec)
	m.errorTotal = register(prefix, m.errorTotal).(*prometheus.CounterVec)

	return m
}

// register puts a collector in the default registry. When a second router
// shares the prefix, the already-registered collector is adopted instead.
func register(prefix string, collector prometheus.Collector) prometheus.Collector {
	if err := prometheus.DefaultRegisterer.Register(collector); err != nil {
		var already prometheus.AlreadyRegisteredError
		if errors.As(err, &already) {
			return already.ExistingCollector
		}
		log.Warn().Err(err).Str("prefix", prefix).Msg("failed to register router metrics")
	}
	return collector
}

func (r *Router) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()

		c.Next()

		status := fmt.Sprintf("%d", c.Writer.Status())
		duration := time.Since(start).Seconds()

		r.metrics.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(duration)
		r.metrics.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()

		if c.Writer.Status() >= 400 {
			r.metrics.errorTotal.WithLabelValues(c.Request.Method, path, "http").Inc()
		}
	}
}
