package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"github.com/TheCosmicVibe/Tallie-App/cache"
	"github.com/TheCosmicVibe/Tallie-App/config"
	"github.com/TheCosmicVibe/Tallie-App/middlewares"
	"github.com/TheCosmicVibe/Tallie-App/models"
	"github.com/TheCosmicVibe/Tallie-App/router"
	"github.com/TheCosmicVibe/Tallie-App/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}

	utils.InitLogger()
	cfg := config.Load()

	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	autoMigrate(db)

	// A dead Redis must not keep reservations from being taken; fall back to
	// the in-process cache and keep going.
	var cacheStore cache.Cache
	redisCache, err := cache.NewRedis(cache.RedisOptions{
		Host:     cfg.RedisHost,
		Port:     cfg.RedisPort,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err != nil {
		utils.ErrorLogger.Printf("Redis unavailable, using in-memory cache: %v", err)
		cacheStore = cache.NewMemory()
	} else {
		defer redisCache.Close()
		cacheStore = redisCache
	}

	// 50 requests per second per IP
	rateLimiter := middlewares.NewRateLimiter(50, 1)

	r := router.SetupRouter(db, cacheStore, cfg)
	r.Use(rateLimiter.RateLimit())

	utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		utils.ErrorLogger.Fatal(err)
	}
}

func autoMigrate(db *gorm.DB) {
	err := db.AutoMigrate(
		&models.Restaurant{},
		&models.Table{},
		&models.Reservation{},
		&models.Waitlist{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")
}
