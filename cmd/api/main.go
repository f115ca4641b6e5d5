package main

import (
	"context"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/newrelic/go-agent/v3/integrations/nrecho-v4"

	"github.com/waithaka/dukasoko/internal/pkg/config"
	"github.com/waithaka/dukasoko/internal/pkg/database"
	"github.com/waithaka/dukasoko/internal/pkg/health"
	"github.com/waithaka/dukasoko/internal/pkg/logger"
	"github.com/waithaka/dukasoko/internal/pkg/middleware"
	"github.com/waithaka/dukasoko/internal/pkg/nats"
	nrpkg "github.com/waithaka/dukasoko/internal/pkg/newrelic"
	"github.com/waithaka/dukasoko/internal/pkg/server"
	catalogHandler "github.com/waithaka/dukasoko/services/catalog/handler"
	catalogRepository "github.com/waithaka/dukasoko/services/catalog/repository"
	catalogUsecase "github.com/waithaka/dukasoko/services/catalog/usecase"
	orderGateway "github.com/waithaka/dukasoko/services/order/gateway"
	orderHandler "github.com/waithaka/dukasoko/services/order/handler"
	orderRepository "github.com/waithaka/dukasoko/services/order/repository"
	orderUsecase "github.com/waithaka/dukasoko/services/order/usecase"
	paymentGateway "github.com/waithaka/dukasoko/services/payment/gateway"
	paymentHandler "github.com/waithaka/dukasoko/services/payment/handler"
	paymentRepository "github.com/waithaka/dukasoko/services/payment/repository"
	paymentUsecase "github.com/waithaka/dukasoko/services/payment/usecase"
)

func main() {
	appName := "dukasoko-api"
	configPath := "config/api.env"
	configs := config.InitConfig(configPath)

	// The gateway credential set has to be complete before anything
	// else starts; a half-configured gateway fails at the worst moment
	if err := config.ValidateMpesaConfig(&configs.Mpesa); err != nil {
		log.Fatalf("Invalid M-Pesa configuration: %v", err)
	}

	// Initialize New Relic and Zap logger
	nrApp := nrpkg.InitNewRelic(configs)

	zapLogger, err := logger.InitZapLoggerFromConfig(configs, nrApp)
	if err != nil {
		log.Fatalf("Failed to create Zap logger: %v", err)
	}
	defer zapLogger.Close()

	// Set global logger for application-wide access
	logger.SetGlobalLogger(zapLogger)

	logger.Info("Starting application",
		logger.String("app", appName),
		logger.String("version", configs.App.Version),
		logger.String("environment", configs.App.Environment),
	)

	// Initialize PostgreSQL database connection
	postgresClient, err := database.NewPostgresClient(configs.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to PostgreSQL", logger.Err(err))
	}
	defer postgresClient.Close()

	// Initialize Redis client
	redisClient, err := database.NewRedisClient(configs.Redis)
	if err != nil {
		zapLogger.Fatal("Failed to connect to Redis", logger.Err(err))
	}
	defer redisClient.Close()

	// Initialize NATS client
	natsClient, err := nats.NewClient(configs.NATS.URL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to NATS", logger.Err(err))
	}
	defer natsClient.Close()

	// Initialize repositories
	paymentRepo := paymentRepository.NewPaymentRepository(configs, postgresClient.GetDB())
	orderRepo := orderRepository.NewOrderRepository(configs, postgresClient.GetDB())
	catalogRepo := catalogRepository.NewCatalogRepository(configs, postgresClient.GetDB())

	// Initialize gateways
	paymentGW := paymentGateway.NewPaymentGW(configs, natsClient)
	orderGW := orderGateway.NewOrderGW(natsClient)

	// Initialize usecases
	paymentUC, err := paymentUsecase.NewPaymentUC(configs, paymentRepo, paymentGW, redisClient)
	if err != nil {
		zapLogger.Fatal("Failed to initialize payment use case", logger.Err(err))
	}
	orderUC, err := orderUsecase.NewOrderUC(configs, orderRepo, orderGW)
	if err != nil {
		zapLogger.Fatal("Failed to initialize order use case", logger.Err(err))
	}
	catalogUC, err := catalogUsecase.NewCatalogUC(configs, catalogRepo, redisClient)
	if err != nil {
		zapLogger.Fatal("Failed to initialize catalog use case", logger.Err(err))
	}

	// Initialize handlers
	paymentH := paymentHandler.NewHandler(paymentUC, configs)
	orderH := orderHandler.NewHandler(orderUC, configs)
	catalogH := catalogHandler.NewHandler(catalogUC, configs)

	// Initialize Echo server
	e := echo.New()

	// Add middlewares (panic recovery should be first)
	e.Use(middleware.PanicRecoveryWithZapMiddleware(zapLogger))
	e.Use(middleware.RequestIDMiddleware())
	if nrApp != nil {
		e.Use(nrecho.Middleware(nrApp))
	}
	e.Use(logger.ZapEchoMiddleware(zapLogger))

	// Initialize API key middleware
	apiKeyMiddleware := middleware.NewAPIKeyMiddleware(&configs.APIKey)

	// Initialize enhanced health service
	healthService := health.NewHealthService(zapLogger)
	healthService.AddChecker("postgres", health.NewPostgresHealthChecker(postgresClient))
	healthService.AddChecker("redis", health.NewRedisHealthChecker(redisClient))
	healthService.AddChecker("nats", health.NewNATSHealthChecker(natsClient))

	// Register enhanced health endpoints
	health.RegisterEnhancedHealthEndpoints(e, appName, configs.App.Version, healthService)

	// Register service routes
	paymentH.RegisterRoutes(e, apiKeyMiddleware, redisClient)
	orderH.RegisterRoutes(e)
	catalogH.RegisterRoutes(e)

	// Background reconciliation for transactions whose callback never
	// arrived
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go paymentUC.StartSweep(sweepCtx)

	// Register component cleanups in teardown order
	shutdownManager := server.NewShutdownManager(zapLogger)
	shutdownManager.Register(func(ctx context.Context) error {
		stopSweep()
		return nil
	})
	shutdownManager.Register(func(ctx context.Context) error {
		return postgresClient.Close()
	})
	shutdownManager.Register(func(ctx context.Context) error {
		return redisClient.Close()
	})
	shutdownManager.Register(func(ctx context.Context) error {
		natsClient.Close()
		return nil
	})
	shutdownManager.Register(func(ctx context.Context) error {
		if nrApp != nil {
			nrApp.Shutdown(10 * time.Second)
		}
		return nil
	})

	// Blocks until a shutdown signal arrives, then drains the server
	gracefulServer := server.NewGracefulServer(e, zapLogger, configs.Server.Port)
	if err := gracefulServer.Start(); err != nil {
		zapLogger.Error("Server shutdown error", logger.Err(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := shutdownManager.Shutdown(ctx); err != nil {
		zapLogger.Error("Component shutdown error", logger.Err(err))
	}

	zapLogger.Info("Server exiting gracefully")
	_ = zapLogger.Sync()
}
