// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"ecommerce-demo/cmd"
	"ecommerce-demo/internal/wire"
	"ecommerce-demo/pkg/cache"
	"ecommerce-demo/pkg/database"
	"ecommerce-demo/pkg/mailer"
	"ecommerce-demo/pkg/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.String("mode", config.App.Mode),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, config, logger); err != nil {
		logger.Error("Application stopped with error", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
	logger.Info("Application stopped")
}

func run(ctx context.Context, config *utils.Config, logger *zap.Logger) error {
	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	logger.Info("Database connected successfully")

	// Connect to redis, one logical db for data and one for messaging
	cacheRDB, err := cache.InitRedis(config.Redis, config.Redis.CacheDB)
	if err != nil {
		return fmt.Errorf("connect redis cache: %w", err)
	}
	defer cacheRDB.Close()

	brokerRDB, err := cache.InitRedis(config.Redis, config.Redis.BrokerDB)
	if err != nil {
		return fmt.Errorf("connect redis broker: %w", err)
	}
	defer brokerRDB.Close()

	logger.Info("Redis connected successfully",
		zap.Int("cache_db", config.Redis.CacheDB),
		zap.Int("broker_db", config.Redis.BrokerDB),
	)

	// Wire all dependencies
	app := wire.Wiring(wire.Infra{
		DB:     db,
		Cache:  cacheRDB,
		Broker: brokerRDB,
		Mailer: mailer.New(config.Email, logger),
	}, config, logger)

	mode := config.App.Mode
	if mode != utils.ModeAPI && mode != utils.ModeWorker && mode != utils.ModeAll {
		return fmt.Errorf("unknown APP_MODE %q", mode)
	}

	g, gctx := errgroup.WithContext(ctx)
	if mode == utils.ModeAPI || mode == utils.ModeAll {
		g.Go(func() error {
			return cmd.APIServer(gctx, app.Router, config.App.Port, logger)
		})
	}
	if mode == utils.ModeWorker || mode == utils.ModeAll {
		g.Go(func() error {
			return cmd.BackgroundWorker(gctx, app.Listener, app.Worker, logger)
		})
	}

	return g.Wait()
}
