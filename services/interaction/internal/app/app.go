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
	interactionHTTP "fitsocial/services/interaction/internal/controller/http"
	"fitsocial/services/interaction/internal/repo/persistent"
	"fitsocial/services/interaction/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fitsocial/services/interaction/docs" // Swagger docs
)

func NewRouter(jwtService *jwt.Service, redisClient *redis.Client, handler *interactionHTTP.InteractionHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))
	r.Use(middleware.IDParamsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api/v1/interactions")

	// Public routes; a token, when sent, fills in is_liked
	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		public.GET("/posts/:post_id/likes", handler.GetLikesPreview)
		public.GET("/posts/:post_id/comments", handler.GetComments)
		public.GET("/users/:user_id/followers", handler.GetFollowers)
		public.GET("/users/:user_id/following", handler.GetFollowing)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(jwtService))
	if redisClient != nil {
		protected.Use(middleware.RateLimitMiddleware(redisClient, 100, time.Minute))
	}
	{
		protected.POST("/posts/:post_id/like", handler.LikePost)
		protected.POST("/posts/:post_id/comments", handler.AddComment)
		protected.PUT("/comments/:id", handler.EditComment)
		protected.DELETE("/comments/:id", handler.DeleteComment)
		protected.POST("/comments/:id/pin", handler.PinComment)
		protected.DELETE("/comments/:id/pin", handler.UnpinComment)
		protected.POST("/comments/:id/like", handler.LikeComment)
		protected.POST("/users/:user_id/follow", handler.Follow)
		protected.DELETE("/users/:user_id/follow", handler.Unfollow)
		protected.GET("/users/:user_id/follow", handler.GetFollowStatus)
		protected.GET("/suggestions", handler.GetSuggestions)
	}

	return r
}

func Run(cfg *config.Config, log *logger.Logger, db *gorm.DB, redisClient *redis.Client, queueClient *queue.Client) {
	jwtService := jwt.NewService(cfg.JWTSecret)

	// A nil *queue.Client must not become a non-nil Publisher.
	var publisher queue.Publisher
	if queueClient != nil {
		publisher = queueClient
	}

	interactionUseCase := usecase.NewInteractionUseCase(
		persistent.NewPostRepository(db),
		persistent.NewLikeRepository(db),
		persistent.NewCommentRepository(db),
		persistent.NewFollowRepository(db),
		redisClient,
		publisher,
		log,
	)
	interactionHandler := interactionHTTP.NewInteractionHandler(interactionUseCase, log)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(jwtService, redisClient, interactionHandler),
	}

	go func() {
		log.Info("Interaction service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down interaction service...")

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

	if queueClient != nil {
		queueClient.Close()
	}

	log.Info("Interaction service exited")
}
