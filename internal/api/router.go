package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/cinemind/studio-api/docs" // registers the swagger spec

	"github.com/cinemind/studio-api/internal/api/handler"
	"github.com/cinemind/studio-api/internal/api/middleware"
	"github.com/cinemind/studio-api/internal/core/ports"
)

const (
	metricsPath       = "/metrics"
	maxScriptBodySize = "25M"
)

// Services are the use cases exposed over HTTP.
type Services struct {
	Auth      ports.AuthService
	Scripts   ports.ScriptService
	Dashboard ports.DashboardService
	Footage   ports.FootageService
	Video     ports.VideoService
	Creative  ports.CreativeService
}

// Options tunes the router. Zero values are usable.
type Options struct {
	Log    zerolog.Logger
	Health *handler.HealthHandler
	// Verifier resolves bearer tokens to accounts; nil leaves every caller anonymous.
	Verifier middleware.TokenVerifier
	// Metrics is the registry for HTTP metrics and /metrics. nil uses the
	// process-wide default registry.
	Metrics *prometheus.Registry
	// AllowOrigins configures CORS. Empty allows any origin.
	AllowOrigins []string
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(svc Services, opts Options) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(opts.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if opts.Metrics != nil {
		registerer, gatherer = opts.Metrics, opts.Metrics
	}

	origins := opts.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(opts.Log))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:  origins,
		AllowHeaders:  []string{echo.HeaderContentType, echo.HeaderAuthorization, "Idempotency-Key"},
		ExposeHeaders: []string{"Idempotent-Replayed", "X-Intent-Source", echo.HeaderXRequestID},
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "cinemind",
		Subsystem:  "http",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == metricsPath
		},
	}))
	e.Use(middleware.Identify(opts.Verifier))

	// --- Operational endpoints ---
	e.GET(metricsPath, echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// --- Health probes ---
	health := opts.Health
	if health == nil {
		health = handler.NewHealthHandler(nil)
	}
	api.GET("/health", health.Liveness)        // liveness  – process up, store status
	api.GET("/health/ready", health.Readiness) // readiness – are dependencies up?

	// --- Accounts ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	api.POST("/auth/login", authHandler.Login)

	// --- Script analysis ---
	scriptHandler := handler.NewScriptHandler(svc.Scripts)
	api.POST("/script/analyze", scriptHandler.Analyze, echomiddleware.BodyLimit(maxScriptBodySize))
	api.GET("/script/history", scriptHandler.History)

	// --- Dashboard and production tools ---
	studioHandler := handler.NewStudioHandler(svc.Dashboard, svc.Footage, svc.Video)
	api.GET("/dashboard/stats", studioHandler.Stats)
	api.POST("/footage/search", studioHandler.SearchFootage)
	api.POST("/video/generate", studioHandler.GenerateVideo)

	creativeHandler := handler.NewCreativeHandler(svc.Creative)
	api.POST("/creative/intent", creativeHandler.Intent)

	return e
}
