package main

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Karthik0956A/event-rsvp-backend/config"
	"github.com/Karthik0956A/event-rsvp-backend/database"
	"github.com/Karthik0956A/event-rsvp-backend/internal/auditlog"
	"github.com/Karthik0956A/event-rsvp-backend/internal/auth"
	"github.com/Karthik0956A/event-rsvp-backend/internal/event"
	"github.com/Karthik0956A/event-rsvp-backend/internal/inventory"
	"github.com/Karthik0956A/event-rsvp-backend/internal/notification"
	"github.com/Karthik0956A/event-rsvp-backend/internal/participant"
	"github.com/Karthik0956A/event-rsvp-backend/middleware"
	"github.com/Karthik0956A/event-rsvp-backend/routes"
	"github.com/Karthik0956A/event-rsvp-backend/utils"
)

// @title Event & RSVP API
// @version 1.0
// @description Event management with capacity-limited RSVPs, inventory tracking and report exports.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	// Init Redis
	if err := utils.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	// Init Kafka
	utils.InitializeKafka(cfg.KafkaBrokers, cfg.KafkaActivityTopic)

	// Auto-migrate models
	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&auth.User{},
		&event.Event{},
		&participant.Participant{},
		&auditlog.AuditLog{},
		&notification.InAppNotification{},
		&inventory.Item{},
		&inventory.StockAlert{},
	); err != nil {
		panic(fmt.Sprintf("❌ DB AutoMigrate failed: %v", err))
	}
	log.Println("✅ Database migrations completed")

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:4173", "http://127.0.0.1:4173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "Content-Length", "X-Requested-With", "Cache-Control", "Pragma"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.RateLimiter())
	router.Use(middleware.AuditMiddleware())

	routes.Setup(router, cfg)

	port := cfg.Port
	if port == "" {
		port = "8080"
	}

	fmt.Printf("🚀 Server starting on port %s\n", port)
	if err := router.Run(":" + port); err != nil {
		panic(fmt.Sprintf("Failed to start server: %v", err))
	}
}
