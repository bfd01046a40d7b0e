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
	"github.com/elnathantransportes-ai/troca/pkg/pix"
	"github.com/elnathantransportes-ai/troca/pkg/store"
	paymentHTTP "github.com/elnathantransportes-ai/troca/services/payment/internal/controller/http"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/repo/persistent"
	"github.com/elnathantransportes-ai/troca/services/payment/internal/usecase"
)

type App struct {
	cfg            *config.Config
	log            *logger.Logger
	db             *gorm.DB
	jwtService     *jwt.Service
	paymentUseCase usecase.PaymentUseCase
	httpServer     *http.Server
}

func NewApp(cfg *config.Config) (*App, error) {
	log := logger.New()

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		return nil, err
	}

	jwtService := jwt.NewService(cfg.JWTSecret)

	return &App{
		cfg:        cfg,
		log:        log,
		db:         db,
		jwtService: jwtService,
	}, nil
}

func (a *App) Run() error {
	paymentRepo := persistent.NewPaymentRepository(a.db)
	payerReader := persistent.NewPayerReader(a.db)
	effects := persistent.NewEffectApplier(a.db)
	gateway := pix.NewClient(a.cfg.PixAPIBaseURL, a.cfg.PixAccessToken)

	a.paymentUseCase = usecase.NewPaymentUseCase(
		paymentRepo,
		payerReader,
		effects,
		gateway,
		usecase.Fees{
			NegotiationFee: a.cfg.NegotiationFee,
			Highlight24h:   a.cfg.Highlight24hFee,
			Highlight7d:    a.cfg.Highlight7dFee,
			PremiumSub:     a.cfg.PremiumFee,
		},
		store.New(),
		a.log,
	)

	paymentHandler := paymentHTTP.NewPaymentHandler(a.paymentUseCase)

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
		protected.POST("/payments", paymentHandler.StartPayment)
		protected.GET("/payments/status", paymentHandler.FlowStatus)
		protected.POST("/payments/recheck", paymentHandler.Recheck)
		protected.POST("/payments/cancel", paymentHandler.Cancel)
		protected.GET("/payments/history", paymentHandler.History)
	}

	a.httpServer = &http.Server{
		Addr:    ":" + a.cfg.ServerPort,
		Handler: r,
	}

	go func() {
		a.log.Info("Payment service starting on port %s", a.cfg.ServerPort)
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
	a.log.Info("Shutting down payment service...")
}

func (a *App) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if a.paymentUseCase != nil {
		a.paymentUseCase.Shutdown()
	}

	sqlDB, err := a.db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			a.log.Error("Error closing database: %v", err)
		}
	}

	if err := a.httpServer.Shutdown(ctx); err != nil {
		a.log.Error("Server forced to shutdown: %v", err)
		return err
	}

	a.log.Info("Payment service exited")
	return nil
}
