package app

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/pkg/cache"
	"github.com/elnathantransportes-ai/troca/pkg/config"
	"github.com/elnathantransportes-ai/troca/pkg/database"
	"github.com/elnathantransportes-ai/troca/pkg/genai"
	"github.com/elnathantransportes-ai/troca/pkg/jwt"
	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/middleware"
	"github.com/elnathantransportes-ai/troca/pkg/queue"
	"github.com/elnathantransportes-ai/troca/pkg/s3"
	catalogHTTP "github.com/elnathantransportes-ai/troca/services/catalog/internal/controller/http"
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/repo/persistent"
	"github.com/elnathantransportes-ai/troca/services/catalog/internal/usecase"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
	queueClient *queue.Client
	httpServer  *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Error("Failed to connect to redis: %v", err)
		return nil, err
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	queueClient, err := queue.NewRabbitMQClient(cfg, log)
	if err != nil {
		log.Error("Failed to connect to RabbitMQ: %v (continuing without queue)", err)
		queueClient = nil
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	listingRepo := persistent.NewListingRepository(a.db)
	userReader := persistent.NewUserReader(a.db)
	prefsRepo := persistent.NewPrefsRepository(a.redisClient)
	feedCache := persistent.NewFeedCache(a.redisClient)
	moderator := genai.NewClient(a.cfg, a.log)

	catalogUseCase := usecase.NewCatalogUseCase(
		listingRepo,
		userReader,
		prefsRepo,
		feedCache,
		a.s3Client,
		moderator,
		a.queueClient,
		a.log,
	)

	// Drop the shared candidate cache whenever any service mutates a listing
	// so the next feed request sees the change.
	if a.queueClient != nil {
		err := a.queueClient.Subscribe([]string{"listing.*"}, func(event queue.ChangeEvent) {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := feedCache.Invalidate(ctx); err != nil {
				a.log.Warn("Failed to invalidate feed cache for %s.%s: %v", event.Entity, event.Action, err)
			}
		})
		if err != nil {
			a.log.Warn("Failed to subscribe to listing events: %v", err)
		}
	}

	catalogHandler := catalogHTTP.NewCatalogHandler(catalogUseCase)

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(a.jwtService))
	{
		protected.GET("/feed", catalogHandler.GetFeed)
		protected.GET("/feed/filters", catalogHandler.GetFilters)
		protected.PUT("/feed/filters", catalogHandler.SetFilters)
		protected.DELETE("/feed/filters", catalogHandler.ClearFilters)

		protected.POST("/listings", catalogHandler.CreateListing)
		protected.GET("/listings/mine", catalogHandler.MyListings)
		protected.POST("/listings/improve", catalogHandler.ImproveCopy)
		protected.GET("/listings/:id", catalogHandler.GetListing)
		protected.PUT("/listings/:id", catalogHandler.UpdateListing)
		protected.DELETE("/listings/:id", catalogHandler.DeleteListing)
		protected.POST("/listings/:id/like", catalogHandler.LikeListing)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Catalog service starting on port %s", a.cfg.ServerPort)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	return nil
}

func (a *App) Wait() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	a.log.Info("Shutting down catalog service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if err := a.redisClient.Close(); err != nil {
		a.log.Error("Error closing Redis: %v", err)
	}

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Catalog service exited")
	return nil
}
