package wire

import (
	"context"
	"net/http"
	"time"

	"ecommerce-demo/internal/adaptor"
	"ecommerce-demo/internal/data/repository"
	"ecommerce-demo/internal/event"
	"ecommerce-demo/internal/task"
	"ecommerce-demo/internal/usecase"
	"ecommerce-demo/pkg/cache"
	"ecommerce-demo/pkg/database"
	"ecommerce-demo/pkg/mailer"
	"ecommerce-demo/pkg/middleware"
	"ecommerce-demo/pkg/pubsub"
	"ecommerce-demo/pkg/taskqueue"
	"ecommerce-demo/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Infra holds the connections opened by main
type Infra struct {
	DB     database.PgxIface
	Cache  redis.UniversalClient // OTP codes and the user list cache
	Broker redis.UniversalClient // event bus and task queue
	Mailer mailer.Mailer
}

// App holds everything the API and worker processes run
type App struct {
	Router   *chi.Mux
	Listener *event.Listener
	Worker   *taskqueue.Worker
	Service  *usecase.Service
}

// Wiring builds the whole object graph once; main decides which parts run
func Wiring(infra Infra, config *utils.Config, logger *zap.Logger) *App {
	repo := repository.NewRepository(infra.DB, infra.Cache, logger)

	bus := pubsub.NewBus(infra.Broker, logger)
	queue := taskqueue.NewQueue(infra.Broker, config.Worker.Queue)
	tokens := utils.NewTokenManager(config.JWT, config.App.Name)

	service := usecase.NewService(repo, usecase.Deps{
		Cache:     cache.New(infra.Cache),
		Mailer:    infra.Mailer,
		Publisher: event.NewPublisher(bus),
		Tokens:    tokens,
	}, config, logger)
	handler := adaptor.NewHandler(service, logger)

	worker := taskqueue.NewWorker(queue, taskqueue.WorkerOptions{
		Concurrency: config.Worker.Concurrency,
		ResultTTL:   config.Worker.ResultTTL(),
	}, logger)
	task.Register(worker, service.Signup)

	return &App{
		Router:   setupRouter(handler, service, tokens, infra, logger),
		Listener: event.NewListener(bus, queue, logger),
		Worker:   worker,
		Service:  service,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	tokens *utils.TokenManager,
	infra Infra,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	auth := middleware.Auth(tokens, logger)
	perm := func(codename string) func(http.Handler) http.Handler {
		return middleware.RequirePermission(service.Permission, codename, logger)
	}

	// Apply routes
	wireAuth(r, handler.Auth, handler.OTP)
	wireUser(r, handler.Auth, handler.User, auth)
	wireProduct(r, handler.Product, auth, perm)
	wireCart(r, handler.Cart, auth)
	wirePermission(r, handler.Permission, auth, perm)
	wireMail(r, handler.Mail, auth)

	r.Get("/health", healthHandler(infra))
	r.Handle("/metrics", promhttp.Handler())

	return r
}

// healthHandler pings Postgres and both Redis databases
func healthHandler(infra Infra) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		checks := map[string]string{"database": "ok", "cache": "ok", "broker": "ok"}
		healthy := true

		if err := infra.DB.Ping(ctx); err != nil {
			checks["database"] = err.Error()
			healthy = false
		}
		if err := infra.Cache.Ping(ctx).Err(); err != nil {
			checks["cache"] = err.Error()
			healthy = false
		}
		if err := infra.Broker.Ping(ctx).Err(); err != nil {
			checks["broker"] = err.Error()
			healthy = false
		}

		if !healthy {
			utils.ResponseJSON(w, http.StatusServiceUnavailable,
				utils.Response{Status: false, Error: "Service unhealthy", Data: checks})
			return
		}
		utils.ResponseSuccess(w, "OK", checks)
	}
}
