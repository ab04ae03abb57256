package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"paylock/pkg/cache"
	"paylock/pkg/config"
	"paylock/pkg/database"
	"paylock/pkg/jwt"
	"paylock/pkg/logger"
	"paylock/pkg/metrics"
	"paylock/pkg/middleware"
	"paylock/pkg/queue"
	ledgerHTTP "paylock/services/ledger/internal/controller/http"
	"paylock/services/ledger/internal/entity"
	"paylock/services/ledger/internal/model"
	ledgerCache "paylock/services/ledger/internal/repo/cache"
	"paylock/services/ledger/internal/repo/persistent"
	"paylock/services/ledger/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "paylock/services/ledger/docs" // Swagger docs
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	metrics     *metrics.Ledger
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	if cfg.DBAutoMigrate {
		if err := model.AutoMigrate(db); err != nil {
			log.Error("Failed to migrate database: %v", err)
			return nil, err
		}
	}

	// Redis holds the rate feed, so the ledger cannot price payments without it
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without unlock events)", err)
		queueClient = nil
	}

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		jwtService:  jwt.NewService(cfg.JWTSecret),
		queueClient: queueClient,
		metrics:     metrics.NewLedger(),
	}, nil
}

func (a *App) Run() error {
	platformFee, err := entity.ParseMoney(a.cfg.PlatformFeeUSD)
	if err != nil || platformFee < 0 {
		return fmt.Errorf("invalid PLATFORM_FEE_USD %q", a.cfg.PlatformFeeUSD)
	}

	// Initialize repositories
	postRepo := persistent.NewPostRepository(a.db)
	ledgerRepo := persistent.NewLedgerRepository(a.db)
	rateStore := ledgerCache.NewRateStore(a.redisClient, a.cfg.RateTTL)

	var events usecase.EventPublisher
	if a.queueClient != nil {
		events = a.queueClient
	}

	// Initialize use cases
	ledgerUseCase := usecase.NewLedgerUseCase(
		postRepo,
		ledgerRepo,
		rateStore,
		events,
		a.metrics,
		a.log,
		usecase.LedgerOptions{
			PlatformFee:       platformFee,
			ReferenceCurrency: a.cfg.ReferenceCurrency,
			SplitMode:         usecase.ParseSplitMode(a.cfg.InvestorSplitMode),
			SlippageBps:       a.cfg.PaymentSlippageBps,
			AutoDowngrade:     a.cfg.AutoDowngrade,
		},
	)
	postUseCase := usecase.NewPostUseCase(postRepo, a.log)
	rateUseCase := usecase.NewRateUseCase(rateStore, a.cfg.ReferenceCurrency, a.log)
	notificationUseCase := usecase.NewNotificationUseCase(ledgerCache.NewNotificationStore(a.redisClient), a.log)

	// Initialize HTTP handlers
	ledgerHandler := ledgerHTTP.NewLedgerHandler(ledgerUseCase, a.log)
	postHandler := ledgerHTTP.NewPostHandler(postUseCase, a.log)
	rateHandler := ledgerHTTP.NewRateHandler(rateUseCase, a.log)
	notificationHandler := ledgerHTTP.NewNotificationHandler(notificationUseCase, a.log)

	// Setup router
	r := gin.Default()

	// CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check
	r.GET("/health", a.health)

	r.GET("/metrics", gin.WrapH(a.metrics.Handler()))

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(a.jwtService))
	api.Use(middleware.RateLimitMiddleware(a.redisClient, a.cfg.RateLimitPerMinute, time.Minute))

	{
		api.POST("/posts", postHandler.CreatePost)
		api.GET("/posts/:id", postHandler.GetPost)
		api.GET("/posts/:id/access", ledgerHandler.GetAccess)
		api.GET("/posts/:id/quote", ledgerHandler.Quote)
		api.POST("/posts/:id/pay", ledgerHandler.Pay)
		api.POST("/posts/:id/pay-comment", ledgerHandler.PayComment)
		api.GET("/earnings/investor", ledgerHandler.GetInvestorEarnings)
		api.GET("/earnings/creator", ledgerHandler.GetCreatorEarnings)
		api.GET("/prices", rateHandler.ListRates)
		api.PUT("/prices/:currency", middleware.RequireRole("admin"), rateHandler.SetRate)
		api.GET("/notifications", notificationHandler.GetNotifications)
	}

	if a.queueClient != nil {
		a.log.Info("Starting unlock event consumer...")
		err := a.queueClient.ConsumeUnlockEvents("ledger-notifications", func(body []byte) error {
			return notificationUseCase.HandleUnlockEvent(context.Background(), body)
		}, func(err error) bool {
			return errors.Is(err, entity.ErrInvalidRequest)
		})
		if err != nil {
			a.log.Error("Error starting unlock event consumer: %v", err)
		}
	}

	// Create HTTP server
	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	// Start server in a goroutine
	go func() {
		a.log.Info("Ledger service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) health(c *gin.Context) {
	status := gin.H{"status": "ok"}
	if a.queueClient == nil {
		status["events"] = "disabled"
	} else if pending, err := a.queueClient.QueueLength(); err == nil {
		status["pending_events"] = pending
	}
	c.JSON(http.StatusOK, status)
}

func (a *App) Wait() {
	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down ledger service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Stop accepting requests before closing the stores they use
	if a.httpServer != nil {
		if err := a.httpServer.Shutdown(ctx); err != nil {
			a.log.Error("Server forced to shutdown: %v", err)
			return err
		}
	}

	// Close database connection
	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	// Close Redis connection
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	// Close RabbitMQ connection
	if a.queueClient != nil {
		a.queueClient.Close()
	}

	a.log.Info("Ledger service exited")
	return nil
}
