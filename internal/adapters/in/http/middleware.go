package http

import (
	"net/http"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/pkg/logging"
	"freight/internal/pkg/metrics"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

const (
	HeaderUserID = "X-User-ID"

	actorContextKey = "actor"
	unmatchedRoute  = "unmatched"
)

// RequestLogger attaches a request scoped logger to the request context and
// logs one line per request.
func RequestLogger(base *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			requestID := c.Response().Header().Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = uuid.NewString()
				c.Response().Header().Set(echo.HeaderXRequestID, requestID)
			}

			l := base.With(zap.String("request_id", requestID))
			c.SetRequest(req.WithContext(logging.WithLogger(req.Context(), l)))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			l.Info("request",
				zap.String("method", req.Method),
				zap.String("uri", req.RequestURI),
				zap.String("route", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
			)
			return nil
		}
	}
}

// RequestMetrics records the count and latency of requests per route
// template.
func RequestMetrics(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = unmatchedRoute
			}
			m.HTTPRequest(c.Request().Method, route, c.Response().Status, time.Since(start))
			return nil
		}
	}
}

// Actor resolves the acting user from the X-User-ID header, falling back to
// systemActor when the header is absent.
func Actor(systemActor kernel.ID) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor := systemActor
			if raw := c.Request().Header.Get(HeaderUserID); raw != "" {
				id, err := kernel.ParseID(raw)
				if err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "invalid "+HeaderUserID+" header").SetInternal(err)
				}
				actor = id
			}
			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFrom(c echo.Context) kernel.ID {
	actor, _ := c.Get(actorContextKey).(kernel.ID)
	return actor
}
