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
	"fitsocial/pkg/s3"
	authHTTP "fitsocial/services/auth/internal/controller/http"
	"fitsocial/services/auth/internal/repo/persistent"
	"fitsocial/services/auth/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fitsocial/services/auth/docs" // Swagger docs
)

func NewRouter(jwtService *jwt.Service, redisClient *redis.Client, handler *authHTTP.AuthHandler) *gin.Engine {
	r := gin.Default()
	r.MaxMultipartMemory = 8 << 20

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))
	r.Use(middleware.IDParamsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1")

	auth := api.Group("/auth")
	if redisClient != nil {
		// Keyed by client IP since these routes carry no token.
		auth.Use(middleware.RateLimitMiddleware(redisClient, 10, time.Minute))
	}
	{
		auth.POST("/register", handler.Register)
		auth.POST("/login", handler.Login)
	}

	users := api.Group("/users")
	{
		me := users.Group("/me")
		me.Use(middleware.AuthMiddleware(jwtService))
		me.GET("", handler.Me)
		me.PUT("", handler.UpdateMe)
		me.POST("/avatar", handler.UploadAvatar)

		users.GET("/:id", handler.GetUser)
	}

	return r
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, s3Client *s3.Client, redisClient *redis.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	authUseCase := usecase.NewAuthUseCase(
		persistent.NewUserRepository(db),
		jwtService,
		s3Client,
		log,
	)
	authHandler := authHTTP.NewAuthHandler(authUseCase, log)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(jwtService, redisClient, authHandler),
	}

	go func() {
		log.Info("Auth service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down auth service...")

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

	log.Info("Auth service exited")
}
