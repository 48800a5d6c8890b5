package main

import (
	"context"
	"log"
	"os"

	"github.com/0xFF-test/TikRewards/internal/config"
	"github.com/0xFF-test/TikRewards/internal/handler"
	"github.com/0xFF-test/TikRewards/internal/middleware"
	"github.com/0xFF-test/TikRewards/internal/model"
	"github.com/0xFF-test/TikRewards/internal/repository"
	"github.com/0xFF-test/TikRewards/internal/service"
	"github.com/0xFF-test/TikRewards/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := database.Connect()
	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	if err := seedPromotedAccount(db, cfg.MainAccount); err != nil {
		log.Fatalf("failed to seed promoted account: %v", err)
	}
	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	redisClient := connectRedis(cfg.RedisURL)

	userRepo := repository.NewUserRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	viewLogRepo := repository.NewViewLogRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	followRepo := repository.NewFollowRepository(db)

	pointsStream := service.NewPointsStream(redisClient)

	authService := service.NewAuthService(userRepo)
	authHandler := handler.NewAuthHandler(authService)

	watchService := service.NewWatchService(cfg.Engine, userRepo, videoRepo, viewLogRepo, sessionRepo, redisClient, pointsStream)
	submissionService := service.NewSubmissionService(cfg.Engine, userRepo, videoRepo)
	videoHandler := handler.NewVideoHandler(watchService, submissionService)

	followService := service.NewFollowService(followRepo)
	profileHandler := handler.NewProfileHandler(userRepo, watchService, followService)

	leaderboardService := service.NewLeaderboardService(userRepo, redisClient)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService)

	adminService := service.NewAdminService(cfg.Engine, videoRepo)
	adminHandler := handler.NewAdminHandler(adminService)

	streamHandler := handler.NewStreamHandler(pointsStream)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.AllowedOrigins},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/login", authHandler.Login)
	}

	authMiddleware := middleware.NewAuthMiddleware(userRepo)

	api.Use(authMiddleware.RequireAuth())
	{
		api.GET("/videos/next", videoHandler.NextVideo)
		api.POST("/videos/:id/watch", videoHandler.LogWatch)
		api.POST("/videos", videoHandler.Submit)
		api.GET("/videos/submission-status", videoHandler.SubmissionStatus)

		api.GET("/profile/me", profileHandler.Me)
		api.POST("/follow/verify", profileHandler.VerifyFollow)

		api.GET("/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/ws", streamHandler.PointsStream)

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequireAdmin())
		{
			admin.GET("/videos/pending", adminHandler.ListPendingVideos)
			admin.POST("/videos/:id/activate", adminHandler.ActivateVideo)
			admin.POST("/videos/:id/complete", adminHandler.CompleteVideo)
			admin.DELETE("/videos/:id", adminHandler.RemoveVideo)
		}
	}

	// Expired sessions stop counting toward cooldowns; sweep them in the
	// background.
	go watchService.StartSessionSweeper(context.Background())

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func connectRedis(redisURL string) *redis.Client {
	if redisURL == "" {
		log.Println("REDIS_URL not set, cooldowns and live updates disabled")
		return nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}

	return redis.NewClient(opts)
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.User{},
		&model.Video{},
		&model.ViewLog{},
		&model.PointsLog{},
		&model.AbandonmentLog{},
		&model.UserSession{},
		&model.PromotedAccount{},
		&model.FollowTracking{},
	)
}

func seedPromotedAccount(db *gorm.DB, username string) error {
	var count int64
	if err := db.Model(&model.PromotedAccount{}).
		Where("tiktok_username = ?", username).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	account := model.PromotedAccount{
		TikTokUsername: username,
		PromotionSlots: 1,
	}
	return db.Create(&account).Error
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.User{}).
		Where("email = ?", "admin@tikrewards.local").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}
	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	hash := string(hashedPasswordBytes)

	adminUser := model.User{
		Email:        "admin@tikrewards.local",
		Role:         model.RoleAdmin,
		PasswordHash: &hash,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("Admin user seeded: admin@tikrewards.local")
	return nil
}
