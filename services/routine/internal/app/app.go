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
	routineHTTP "fitsocial/services/routine/internal/controller/http"
	"fitsocial/services/routine/internal/repo/persistent"
	"fitsocial/services/routine/internal/usecase"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "fitsocial/services/routine/docs" // Swagger docs
)

func NewRouter(jwtService *jwt.Service, redisClient *redis.Client, handler *routineHTTP.RoutineHandler) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://127.0.0.1:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
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

	api := r.Group("/api/v1")

	public := api.Group("")
	public.Use(middleware.OptionalAuthMiddleware(jwtService))
	{
		public.GET("/exercises", handler.ListExercises)
		public.GET("/routines/trending", handler.GetTrending)
		public.GET("/routines/user/:user_id", handler.GetUserRoutines)
		public.GET("/routines/:id", handler.GetRoutine)
	}

	protected := api.Group("/routines")
	protected.Use(middleware.AuthMiddleware(jwtService))
	if redisClient != nil {
		protected.Use(middleware.RateLimitMiddleware(redisClient, 60, time.Minute))
	}
	{
		protected.POST("", handler.CreateRoutine)
		protected.GET("/saved", handler.GetSavedRoutines)
		protected.DELETE("/:id", handler.DeleteRoutine)
		protected.POST("/:id/copy", handler.CopyRoutine)
		protected.POST("/:id/save", handler.SaveRoutine)
		protected.POST("/:id/like", handler.LikeRoutine)
		protected.POST("/:id/use", handler.UseRoutine)
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

	routineUseCase := usecase.NewRoutineUseCase(
		persistent.NewRoutineRepository(db),
		persistent.NewExerciseRepository(db),
		redisClient,
		publisher,
		log,
		cfg.TrendingPageSize,
	)
	routineHandler := routineHTTP.NewRoutineHandler(routineUseCase, log)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: NewRouter(jwtService, redisClient, routineHandler),
	}

	go func() {
		log.Info("Routine service starting on port %s", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("Failed to start server: %v", err)
			panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down routine service...")

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

	log.Info("Routine service exited")
}
