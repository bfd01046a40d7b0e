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
	negotiationHTTP "github.com/elnathantransportes-ai/troca/services/negotiation/internal/controller/http"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/repo/persistent"
	"github.com/elnathantransportes-ai/troca/services/negotiation/internal/usecase"
)

type App struct {
	cfg         *config.Config
	log         *logger.Logger
	db          *gorm.DB
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
		queueClient: queueClient,
	}, nil
}

func (a *App) Run() error {
	proposalRepo := persistent.NewProposalRepository(a.db)
	messageRepo := persistent.NewMessageRepository(a.db)
	userReader := persistent.NewUserReader(a.db)
	listingReader := persistent.NewListingReader(a.db)
	paymentGate := persistent.NewPaymentGate(a.db)

	negotiationUseCase := usecase.NewNegotiationUseCase(
		proposalRepo,
		messageRepo,
		userReader,
		listingReader,
		paymentGate,
		a.queueClient,
		a.log,
	)

	negotiationHandler := negotiationHTTP.NewNegotiationHandler(negotiationUseCase)

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
		protected.POST("/proposals", negotiationHandler.CreateProposal)
		protected.GET("/proposals/sent", negotiationHandler.SentProposals)
		protected.GET("/proposals/received", negotiationHandler.ReceivedProposals)
		protected.GET("/proposals/:id", negotiationHandler.GetProposal)
		protected.POST("/proposals/:id/close", negotiationHandler.CloseDeal)
		protected.POST("/proposals/:id/messages", negotiationHandler.SendMessage)
		protected.GET("/proposals/:id/messages", negotiationHandler.GetMessages)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Negotiation service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down negotiation service...")
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

	a.log.Info("Negotiation service exited")
	return nil
}
