package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skeleton/internal/logger"
	"skeleton/pkg/errors"
	"skeleton/pkg/health"
	"skeleton/pkg/middleware"
	"skeleton/pkg/ratelimit"
	"skeleton/pkg/tracing"
)

type RouterOptions struct {
	// ServiceName labels request spans when Tracing is set.
	ServiceName string
	Tracing     bool
	Handler     *Handler
	Health      *health.CheckerRegistry
	RateLimit   *ratelimit.PerClient
	Logger      logger.Logger
}

// NewRouter wires the middleware chain, the API routes, /health and /metrics.
// The rate limiter only guards /api.
func NewRouter(opts RouterOptions) *gin.Engine {
	router := gin.New()

	if opts.Tracing {
		router.Use(tracing.GinMiddleware(opts.ServiceName))
	}

	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.RecoveryMiddleware(opts.Logger))
	router.Use(middleware.LoggerMiddleware(opts.Logger))
	router.Use(middleware.WebEnvironmentMiddleware())
	router.Use(middleware.MetricsMiddleware())

	api := router.Group("/api")
	if opts.RateLimit != nil {
		api.Use(opts.RateLimit.Middleware())
	}
	opts.Handler.RegisterRoutes(api)

	router.GET("/health", func(c *gin.Context) {
		h := opts.Health.Check(c.Request.Context())
		statusCode := http.StatusOK
		if h.Status == health.StatusUnhealthy {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, h)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.NoRoute(func(c *gin.Context) {
		err := errors.ErrNotFound.WithDetail("path", c.Request.URL.Path)
		c.JSON(errors.ToHTTPStatus(err), errors.ToErrorResponse(err))
	})

	return router
}
