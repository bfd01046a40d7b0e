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
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/elnathantransportes-ai/troca/pkg/config"
	"github.com/elnathantransportes-ai/troca/pkg/database"
	"github.com/elnathantransportes-ai/troca/pkg/jwt"
	"github.com/elnathantransportes-ai/troca/pkg/logger"
	"github.com/elnathantransportes-ai/troca/pkg/middleware"
	"github.com/elnathantransportes-ai/troca/pkg/queue"
	"github.com/elnathantransportes-ai/troca/pkg/s3"
	adminHTTP "github.com/elnathantransportes-ai/troca/services/admin/internal/controller/http"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/repo/persistent"
	"github.com/elnathantransportes-ai/troca/services/admin/internal/usecase"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
	jwtService  *jwt.Service
	s3Client    *s3.Client
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

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to connect to S3: %v (continuing without media cleanup)", err)
		s3Client = nil
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
		jwtService:  jwtService,
		s3Client:    s3Client,
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	moderationRepo := persistent.NewModerationRepository(a.db)
	accountRepo := persistent.NewAccountRepository(a.db)
	logRepo := persistent.NewAdminLogRepository(a.db)

	adminUseCase := usecase.NewAdminUseCase(
		moderationRepo,
		accountRepo,
		logRepo,
		a.s3Client,
		a.queueClient,
		a.log,
	)

	adminHandler := adminHTTP.NewAdminHandler(adminUseCase)

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
	admin := api.Group("/admin")
	admin.Use(middleware.AuthMiddleware(a.jwtService))
	admin.Use(middleware.RequireRole("ADMIN", "OPERATOR"))
	{
		admin.GET("/moderation", adminHandler.ModerationQueue)
		admin.POST("/listings/:id/approve", adminHandler.ApproveListing)
		admin.POST("/listings/:id/reject", adminHandler.RejectListing)
		admin.DELETE("/listings/:id", adminHandler.DeleteListing)
		admin.GET("/users", adminHandler.ListUsers)
		admin.POST("/users/:id/block", adminHandler.BlockUser)
		admin.POST("/users/:id/unblock", adminHandler.UnblockUser)
		admin.POST("/users/:id/document", adminHandler.ReviewDocument)
		admin.DELETE("/users/:id", adminHandler.DeleteUser)
		admin.GET("/logs", adminHandler.RecentLogs)
	}

	// Hard reset stays ADMIN-only; operators moderate, they do not wipe.
	reset := api.Group("/admin")
	reset.Use(middleware.AuthMiddleware(a.jwtService))
	reset.Use(middleware.RequireRole("ADMIN"))
	{
		reset.POST("/reset", adminHandler.RequestReset)
		reset.POST("/reset/confirm", adminHandler.ConfirmReset)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Admin service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down admin service...")
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

	if a.queueClient != nil {
		if err := a.queueClient.Close(); err != nil {
			a.log.Error("Error closing RabbitMQ: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Admin service exited")
	return nil
}
