package http

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"

	"authsvc/config"
	"authsvc/internal/delivery"
	"authsvc/internal/delivery/http/middleware"
	"authsvc/internal/delivery/http/router"
	"authsvc/internal/domain/lifecycle"
	"authsvc/internal/errors"
	"authsvc/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/fx"
	"golang.org/x/net/http2"
)

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

// HTTPParams holds dependencies for HTTP server, injected by Fx.
type HTTPParams struct {
	fx.In

	Lc              fx.Lifecycle
	Cfg             *config.Config
	Logger          *slog.Logger
	ErrorMiddleware *middleware.ErrorMiddleware
	Metrics         *metrics.Metrics `optional:"true"`
	RouterParams    router.RouterParams
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params.Cfg, params.Logger, params.ErrorMiddleware, params.Metrics)

	router.NewRouter(params.RouterParams).RegisterRoutes(echoServer)

	srv := &httpServer{
		cfg:    params.Cfg,
		logger: params.Logger,
		server: echoServer,
	}

	params.Lc.Append(fx.Hook{
		OnStop: srv.stop,
	})

	return srv, nil
}

// NewEcho builds the echo instance with the middleware chain and error
// handler but no routes.
func NewEcho(cfg *config.Config, logger *slog.Logger, errorMiddleware *middleware.ErrorMiddleware, m *metrics.Metrics) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.Server.ReadTimeout = cfg.HTTP.Timeouts.ReadTimeout
	echoServer.Server.ReadHeaderTimeout = cfg.HTTP.Timeouts.ReadHeaderTimeout
	echoServer.Server.WriteTimeout = cfg.HTTP.Timeouts.WriteTimeout
	echoServer.Server.IdleTimeout = cfg.HTTP.Timeouts.IdleTimeout

	// 1. Recover first to catch panics anywhere below.
	echoServer.Use(echomiddleware.Recover())

	// 2. Request ID before anything that logs.
	echoServer.Use(middleware.NewRequestIDMiddleware(logger).Process)

	// 3. Metrics wraps the logger, which renders errors, so it sees final statuses.
	if m != nil && cfg.Metrics != nil && cfg.Metrics.Enabled {
		echoServer.Use(middleware.NewMetricsMiddleware(m).Handle)
	}

	// 4. Access log.
	echoServer.Use(middleware.NewLoggerMiddleware(logger, cfg).Handle)

	// 5. CORS and body size limit.
	echoServer.Use(echomiddleware.CORS())
	echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	echoServer.HTTPErrorHandler = errorMiddleware.HandleHTTPError

	return echoServer
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("host_port", hostPort))
	h2Server := &http2.Server{
		IdleTimeout: s.cfg.HTTP.Timeouts.IdleTimeout,
	}
	if err := s.server.StartH2CServer(hostPort, h2Server); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithStack(err)
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}
