package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/stockroom/inventory-api/internal/api/handler"
	"github.com/stockroom/inventory-api/internal/api/middleware"
	"github.com/stockroom/inventory-api/internal/core/ports"

	_ "github.com/stockroom/inventory-api/docs"
)

// Dependencies are the services and probes the router wires into handlers.
type Dependencies struct {
	Auth      ports.AuthService
	Tokens    ports.TokenVerifier
	Inventory ports.InventoryService
	// HealthChecks maps a dependency name to its readiness ping.
	HealthChecks map[string]func(context.Context) error
	Log          zerolog.Logger
	// ExposeErrorDetail adds internal error text to 500 responses.
	ExposeErrorDetail bool
	// Registerer and Gatherer back the HTTP metrics and /metrics. Nil means
	// the Prometheus default registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log, deps.ExposeErrorDetail)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(deps.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "inventory",
		Registerer: deps.registerer(),
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	authHandler := handler.NewAuthHandler(deps.Auth)
	inventoryHandler := handler.NewInventoryHandler(deps.Inventory)
	healthHandler := handler.NewHealthHandler(deps.HealthChecks)
	requireToken := middleware.Auth(deps.Tokens)

	// --- Auth routes ---
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)
	e.GET("/verify", authHandler.Verify, requireToken)
	e.GET("/check-email/:email", authHandler.CheckEmail)
	e.GET("/check-username/:username", authHandler.CheckUsername)

	// --- Inventory routes (token required) ---
	inv := e.Group("/inventory", requireToken)
	inv.GET("", inventoryHandler.List)
	inv.POST("", inventoryHandler.Create)
	inv.GET("/stats", inventoryHandler.Stats)
	inv.PUT("/:id", inventoryHandler.Update)
	inv.DELETE("/:id", inventoryHandler.Delete)

	// --- Health probes (no auth required) ---
	e.GET("/health", healthHandler.Liveness)       // liveness  – is the process alive?
	e.GET("/health/ready", healthHandler.Readiness) // readiness – are dependencies up?

	// --- Operations ---
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: deps.gatherer(),
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func (d Dependencies) registerer() prometheus.Registerer {
	if d.Registerer == nil {
		return prometheus.DefaultRegisterer
	}
	return d.Registerer
}

func (d Dependencies) gatherer() prometheus.Gatherer {
	if d.Gatherer == nil {
		return prometheus.DefaultGatherer
	}
	return d.Gatherer
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
