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
	"github.com/elnathantransportes-ai/troca/pkg/s3"
	authHTTP "github.com/elnathantransportes-ai/troca/services/auth/internal/controller/http"
	"github.com/elnathantransportes-ai/troca/services/auth/internal/repo/persistent"
	"github.com/elnathantransportes-ai/troca/services/auth/internal/usecase"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	redisClient *redis.Client
	s3Client    *s3.Client
	jwtService  *jwt.Service
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
		log.Error("Failed to connect to redis: %v (rate limiting disabled)", err)
		redisClient = nil
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		return nil, err
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:         cfg,
		log:         log,
		db:          db,
		redisClient: redisClient,
		s3Client:    s3Client,
		jwtService:  jwtService,
	}, nil
}

func (a *App) Run() error {
	userRepo := persistent.NewUserRepository(a.db)
	paymentRepo := persistent.NewPaymentRepository(a.db)
	moderator := genai.NewClient(a.cfg, a.log)

	authUseCase := usecase.NewAuthUseCase(
		userRepo,
		paymentRepo,
		a.jwtService,
		a.s3Client,
		moderator,
		a.log,
	)

	authHandler := authHTTP.NewAuthHandler(authUseCase)

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
	{
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/recovery", authHandler.RequestPasswordReset)
		api.POST("/recovery/reset", authHandler.ResetPassword)

		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(a.jwtService))
		if a.redisClient != nil {
			protected.Use(middleware.RateLimitMiddleware(a.redisClient, 60, time.Minute))
		}
		{
			protected.GET("/me", authHandler.Me)
			protected.GET("/user/:id", authHandler.GetUser)
			protected.PUT("/profile", authHandler.UpdateProfile)
			protected.POST("/avatar", authHandler.UploadAvatar)
			protected.POST("/document", authHandler.UploadDocument)
			protected.POST("/premium/activate", authHandler.ActivatePremium)
		}
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Auth service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down auth service...")
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

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.log.Error("Error closing Redis: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Auth service exited")
	return nil
}
