package main

import (
	"context"
	"log/slog"
	"os"

	"authsvc/config"
	"authsvc/internal/delivery"
	"authsvc/internal/delivery/http"
	"authsvc/internal/delivery/http/middleware"
	"authsvc/internal/delivery/http/router/handler"
	"authsvc/internal/domain/repository"
	"authsvc/internal/domain/service"
	"authsvc/internal/infra/auth"
	logs "authsvc/internal/infra/log"
	"authsvc/internal/infra/metrics"
	"authsvc/internal/infra/persistence/memory"
	"authsvc/internal/infra/persistence/sqlstore"
	"authsvc/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(options()...).Run()
}

func options() []fx.Option {
	return []fx.Option{
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			logTokenSettings,
			startServer,
		),
	}
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		metrics.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newStores,
		),
	)
}

type stores struct {
	fx.Out

	IdentityStore repository.IdentityStore
	ContextRepo   repository.ContextRepository
}

// newStores picks the adapters for store.driver. The SQL connection is only
// opened when a SQL driver is configured.
func newStores(params sqlstore.Params) (stores, error) {
	cfg := params.Config
	if cfg.Store.Driver == config.DriverMemory {
		params.Logger.Warn("Using in-memory store; data is lost on restart")

		return stores{
			IdentityStore: memory.NewIdentityStore(),
			ContextRepo:   memory.NewContextRepository(),
		}, nil
	}

	db, err := sqlstore.New(params)
	if err != nil {
		return stores{}, err
	}

	return stores{
		IdentityStore: sqlstore.NewIdentityStore(db, cfg),
		ContextRepo:   sqlstore.NewContextRepository(db, cfg),
	}, nil
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewNanoIDGenerator,
			metrics.NewAuthEventRecorder,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewContextService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewContextHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// logTokenSettings records the effective token lifetime once at startup.
func logTokenSettings(logger *slog.Logger, tokens service.TokenService) {
	logger.Info("Token issuer ready", slog.Duration("ttl", tokens.TTL()))
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
