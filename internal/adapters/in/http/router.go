package http

import (
	"net/http"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"
)

const APIPrefix = "/api"

// RouterConfig is everything NewRouter needs to assemble the API.
type RouterConfig struct {
	Handlers    Handlers
	IDs         kernel.IDGenerator
	SystemActor kernel.ID
	Logger      *zap.Logger
	Metrics     *metrics.Metrics
	Gatherer    prometheus.Gatherer
}

// NewRouter builds the echo instance serving the API, its swagger UI,
// /health and /metrics. Requests under /api are validated against the
// embedded OpenAPI contract before reaching a handler.
func NewRouter(cfg RouterConfig) (*echo.Echo, error) {
	doc, err := LoadSpec()
	if err != nil {
		return nil, err
	}
	validator, err := RequestValidator(doc)
	if err != nil {
		return nil, err
	}
	if err = registerSwagger(doc); err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(RequestLogger(logger))
	e.Use(RequestMetrics(cfg.Metrics))
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.Gatherer != nil {
		e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group(APIPrefix, validator, Actor(cfg.SystemActor))
	NewServer(cfg.Handlers, cfg.IDs).register(api)

	return e, nil
}
