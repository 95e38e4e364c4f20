package internal

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitsocial/pkg/config"
	"fitsocial/pkg/jwt"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/middleware"
	"fitsocial/pkg/queue"
	notificationHTTP "fitsocial/services/notification/internal/controller/http"
	"fitsocial/services/notification/internal/repo/persistent"
	"fitsocial/services/notification/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fitsocial/services/notification/docs" // Swagger docs
)

func NewRouter(jwtService *jwt.Service, handler *notificationHTTP.NotificationHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")
	protected := api.Group("/notifications")
	protected.Use(middleware.AuthMiddleware(jwtService))
	{
		protected.GET("", handler.GetNotifications)
		protected.POST("/read", handler.MarkRead)
		protected.DELETE("", handler.ClearNotifications)
	}
	// Authenticates from the token query parameter.
	api.GET("/notifications/ws", handler.HandleWebSocket)

	return r
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	notificationUseCase := usecase.NewNotificationUseCase(persistent.NewUserRepository(db), redisClient, log)
	notificationHandler := notificationHTTP.NewNotificationHandler(notificationUseCase, log, jwtService)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(jwtService, notificationHandler),
	}

	if queueClient != nil {
		log.Info("Starting notification queue consumer...")
		if err := queueClient.ConsumeNotificationTasks(notificationUseCase.HandleTask); err != nil {
			log.Error("Error starting notification queue consumer: %v", err)
		}
	} else {
		log.Warn("RabbitMQ unavailable; no notifications will be delivered")
	}

	go func() {
		log.Info("Notification service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down notification service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if queueClient != nil {
		queueClient.Close()
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if err := redisClient.Close(); err != nil {
		log.Error("Error closing Redis: %v", err)
	}

	log.Info("Notification service exited")
}
