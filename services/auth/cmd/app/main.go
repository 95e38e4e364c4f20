package main

import (
	"fitsocial/pkg/cache"
	"fitsocial/pkg/config"
	"fitsocial/pkg/database"
	"fitsocial/pkg/logger"
	"fitsocial/pkg/s3"
	authApp "fitsocial/services/auth/internal/app"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

// @title           Auth Service API
// @version         1.0
// @description     Accounts, login and profiles for FitSocial
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8001
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log := logger.New()
	if cfg.HasDefaultJWTSecret() {
		log.Error("JWT_SECRET is not set; refusing to start with the default secret")
		panic("JWT_SECRET is required")
	}

	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	s3Client, err := s3.NewClient(cfg)
	if err != nil {
		log.Error("Failed to create S3 client: %v", err)
		panic(err)
	}

	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		// Redis is optional for auth service
		log.Warn("Failed to connect to redis: %v (continuing without rate limits)", err)
		redisClient = nil
	}

	authApp.Run(cfg, log, db, s3Client, redisClient)
}
