// Package router contains routing setup for the HTTP delivery.
package router

import (
	"authsvc/config"
	"authsvc/internal/delivery/http/middleware"
	"authsvc/internal/delivery/http/router/handler"
	"authsvc/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	Config         *config.Config
	AuthHandler    *handler.AuthHandler
	ContextHandler *handler.ContextHandler
	AuthMiddleware *middleware.AuthMiddleware
	Metrics        *metrics.Metrics `optional:"true"`
}

// router holds all the handlers that need to be registered.
type router struct {
	cfg            *config.Config
	authHandler    *handler.AuthHandler
	contextHandler *handler.ContextHandler
	authMiddleware *middleware.AuthMiddleware
	metrics        *metrics.Metrics
}

func NewRouter(params RouterParams) *router {
	return &router{
		cfg:            params.Config,
		authHandler:    params.AuthHandler,
		contextHandler: params.ContextHandler,
		authMiddleware: params.AuthMiddleware,
		metrics:        params.Metrics,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	e.POST("/adduser", r.authHandler.Register)
	e.POST("/login", r.authHandler.Login)
	e.GET("/context", r.contextHandler.GetLatest)

	e.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)

	if r.metricsEnabled() {
		e.GET("/metrics", echo.WrapHandler(r.metrics.Handler()))
	}
}

func (r *router) metricsEnabled() bool {
	return r.metrics != nil && r.cfg != nil && r.cfg.Metrics != nil && r.cfg.Metrics.Enabled
}
