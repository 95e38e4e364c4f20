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
	feedHTTP "fitsocial/services/feed/internal/controller/http"
	"fitsocial/services/feed/internal/repo/persistent"
	"fitsocial/services/feed/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fitsocial/services/feed/docs" // Swagger docs
)

func NewRouter(jwtService *jwt.Service, handler *feedHTTP.FeedHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	feed := r.Group("/api/v1/feed")
	feed.GET("/following", middleware.AuthMiddleware(jwtService), handler.GetFollowingFeed)
	feed.GET("/explore", middleware.OptionalAuthMiddleware(jwtService), handler.GetExplore)

	return r
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	feedUseCase := usecase.NewFeedUseCase(
		persistent.NewFeedRepository(db),
		redisClient,
		log,
		cfg.TrendingPageSize,
		cfg.FeedCacheTTL,
	)
	feedHandler := feedHTTP.NewFeedHandler(feedUseCase, log)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(jwtService, feedHandler),
	}

	go func() {
		log.Info("Feed service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down feed service...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Error("Error closing database: %v", err)
		}
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.Error("Error closing Redis: %v", err)
		}
	}

	log.Info("Feed service exited")
}
