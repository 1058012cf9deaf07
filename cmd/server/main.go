package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"trimly.backend/internal/config"
	"trimly.backend/internal/infrastructure/jobs"
	"trimly.backend/internal/infrastructure/repositories"
	"trimly.backend/internal/interfaces/http/handlers"
	"trimly.backend/internal/interfaces/http/middleware"
	"trimly.backend/internal/usecases"
	"trimly.backend/pkg/jwt"
	"trimly.backend/pkg/logger"
	"trimly.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	}

	jwtService := jwt.NewJWTService(cfg.JWT.Secret)

	// Repositories
	businessRepo := repositories.NewBusinessRepository(db)
	resellerRepo := repositories.NewResellerRepository(db)
	apiKeyRepo := repositories.NewResellerAPIKeyRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	bookingRepo := repositories.NewBookingRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	payoutRepo := repositories.NewPayoutRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	feeResolver := usecases.NewFeeResolver(businessRepo, resellerRepo, cfg.Payments)
	businessUsecase := usecases.NewBusinessUsecase(businessRepo, resellerRepo, serviceRepo, staffRepo)
	staffUsecase := usecases.NewStaffUsecase(staffRepo, bookingRepo, uow)
	bookingUsecase := usecases.NewBookingUsecase(bookingRepo, paymentRepo, serviceRepo, staffRepo, uow, cfg.Payments)
	fundsUsecase := usecases.NewFundsUsecase(bookingRepo, feeResolver)
	allocationUsecase := usecases.NewAllocationUsecase(bookingRepo, staffRepo, feeResolver, cfg.Payments)
	payoutUsecase := usecases.NewPayoutUsecase(payoutRepo, bookingRepo, fundsUsecase, feeResolver, uow, cfg.Payments)
	webhookUsecase := usecases.NewCheckoutWebhookUsecase(bookingRepo, paymentRepo, uow, cfg.Payments)
	resellerUsecase := usecases.NewResellerUsecase(resellerRepo, apiKeyRepo)

	// Handlers
	businessHandler := handlers.NewBusinessHandler(businessUsecase)
	staffHandler := handlers.NewStaffHandler(staffUsecase, businessHandler)
	bookingHandler := handlers.NewBookingHandler(bookingUsecase, businessHandler)
	revenueHandler := handlers.NewRevenueHandler(feeResolver, fundsUsecase, allocationUsecase, payoutUsecase, businessHandler)
	webhookHandler := handlers.NewWebhookHandler(webhookUsecase, payoutUsecase)
	resellerHandler := handlers.NewResellerHandler(resellerUsecase)

	// Background jobs
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	settlementJob := jobs.NewBookingSettlementJob(bookingRepo, bookingUsecase, time.Minute, cfg.Payments.SettlementGrace)
	go settlementJob.Start(ctx)

	// Router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		businessHandler:      businessHandler,
		staffHandler:         staffHandler,
		bookingHandler:       bookingHandler,
		revenueHandler:       revenueHandler,
		webhookHandler:       webhookHandler,
		resellerHandler:      resellerHandler,
		authMiddleware:       middleware.AuthMiddleware(jwtService),
		apiKeyAuthMiddleware: middleware.APIKeyAuthMiddleware(resellerUsecase),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")
		settlementJob.Stop()
		cancel()
	}()

	logger.Info(ctx, "Trimly backend starting", zap.String("port", cfg.Server.Port))

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
