package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Thushyanthini0507/artzyra-server/internal/application"
	"github.com/Thushyanthini0507/artzyra-server/internal/config"
	bookingDomain "github.com/Thushyanthini0507/artzyra-server/internal/domain/booking"
	"github.com/Thushyanthini0507/artzyra-server/internal/events"
	"github.com/Thushyanthini0507/artzyra-server/internal/gateway"
	"github.com/Thushyanthini0507/artzyra-server/internal/handler"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/auth"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/database"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/health"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/kafka"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/logger"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/metrics"
	"github.com/Thushyanthini0507/artzyra-server/internal/platform/middleware"
	"github.com/Thushyanthini0507/artzyra-server/internal/repository"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.NewNamed(cfg.AppEnv, "artzyra-server")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting artzyra-server",
		zap.String("port", cfg.Port),
		zap.String("env", cfg.AppEnv),
	)

	// Connect to database
	db, err := database.Connect(cfg.Postgres, log)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}

	// Run database migrations
	if cfg.AppEnv == "development" {
		if err := db.AutoMigrate(
			&repository.UserModel{},
			&repository.CategoryModel{},
			&repository.BookingModel{},
			&repository.PaymentModel{},
			&repository.ReviewModel{},
			&repository.NotificationModel{},
			&repository.ChatThreadModel{},
			&repository.ChatMessageModel{},
			&repository.AttachmentModel{},
		); err != nil {
			log.Fatal("failed to run auto-migration", zap.Error(err))
		}
		log.Info("database migration completed (dev auto-migrate)")
	} else {
		if err := database.RunMigrations(cfg.Postgres.DatabaseURL(), cfg.MigrationsDir, log); err != nil {
			log.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	// Initialize Redis for rate limiting and token revocation
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer func() { _ = rdb.Close() }()

	// Initialize auth
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	blocklist := auth.NewTokenBlocklist(rdb)

	// Initialize Kafka producer
	kafkaProducer := kafka.NewProducer(cfg.KafkaBrokers, log)
	defer func() { _ = kafkaProducer.Close() }()

	// Initialize repositories
	userRepo := repository.NewGormUserRepository(db)
	categoryRepo := repository.NewGormCategoryRepository(db)
	bookingRepo := repository.NewGormBookingRepository(db, log)
	paymentRepo := repository.NewGormPaymentRepository(db)
	reviewRepo := repository.NewGormReviewRepository(db)
	notificationRepo := repository.NewGormNotificationRepository(db)
	chatRepo := repository.NewGormChatRepository(db)
	attachmentRepo := repository.NewGormAttachmentRepository(db)

	// Initialize gateways
	payhereGateway := gateway.NewPayHereGateway(cfg.PayHere, log)
	cloudinaryStore := gateway.NewCloudinaryStore(cfg.Cloudinary, log)

	// Initialize domain policies
	pricingStrategy := bookingDomain.NewStandardPricingStrategy()
	refundPolicy := bookingDomain.NewRefundPolicy(cfg.CancellationWindowHours)

	// Initialize application services
	authService := application.NewAuthService(userRepo, jwtManager, blocklist, log)
	bookingService := application.NewBookingService(bookingRepo, userRepo, pricingStrategy, refundPolicy, kafkaProducer, log)
	paymentService := application.NewPaymentService(paymentRepo, bookingRepo, payhereGateway, kafkaProducer, log)
	artistService := application.NewArtistService(userRepo, log)
	categoryService := application.NewCategoryService(categoryRepo)
	reviewService := application.NewReviewService(reviewRepo, bookingRepo, userRepo)
	notificationService := application.NewNotificationService(notificationRepo)
	chatService := application.NewChatService(chatRepo, bookingRepo)
	attachmentService := application.NewAttachmentService(attachmentRepo, cloudinaryStore, bookingRepo, log)

	// Start Kafka consumers
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	paymentConsumer := events.NewPaymentEventConsumer(cfg.KafkaBrokers, cfg.PaymentConsumerGroup, bookingService, log)
	defer func() { _ = paymentConsumer.Close() }()

	go func() {
		log.Info("starting payment event consumer")
		if err := paymentConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("payment event consumer error", zap.Error(err))
		}
	}()

	notificationConsumer := events.NewNotificationConsumer(cfg.KafkaBrokers, cfg.NotifierConsumerGroup, notificationService, log)
	defer func() { _ = notificationConsumer.Close() }()

	go func() {
		log.Info("starting notification consumer")
		if err := notificationConsumer.Start(ctx); err != nil && err != context.Canceled {
			log.Error("notification consumer error", zap.Error(err))
		}
	}()

	// Setup Gin router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Apply global middleware
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.LoggerMiddleware(log))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSAllowedOrigins))
	router.Use(middleware.SecurityHeadersMiddleware())
	router.Use(metrics.RequestMetricsMiddleware())

	// Register probe and metrics endpoints
	healthHandler := health.NewHandler(db, "artzyra-server")
	healthHandler.RegisterRoutes(router)
	router.GET("/metrics", metrics.Handler())

	// Register API routes
	authMW := middleware.AuthMiddleware(jwtManager, blocklist)
	rateLimitMW := middleware.RateLimitMiddleware(cfg.RateLimit, rdb, log)

	api := router.Group("/api/v1")
	handler.NewAuthHandler(authService).RegisterRoutes(api, authMW, rateLimitMW)
	handler.NewBookingHandler(bookingService).RegisterRoutes(api, authMW)
	handler.NewPaymentHandler(paymentService).RegisterRoutes(api, authMW)
	handler.NewArtistHandler(artistService, reviewService).RegisterRoutes(api, authMW)
	handler.NewCategoryHandler(categoryService).RegisterRoutes(api, authMW)
	handler.NewReviewHandler(reviewService).RegisterRoutes(api, authMW)
	handler.NewNotificationHandler(notificationService).RegisterRoutes(api, authMW)
	handler.NewChatHandler(chatService).RegisterRoutes(api, authMW)
	handler.NewUploadHandler(attachmentService).RegisterRoutes(api, authMW)
	handler.NewAdminHandler(bookingService, artistService, categoryService, paymentService).RegisterRoutes(api, authMW)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("HTTP server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down artzyra-server...")

	// Stop the consumers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server forced shutdown", zap.Error(err))
	}

	log.Info("artzyra-server stopped")
}
