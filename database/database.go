package database

import (
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Karthik0956A/event-rsvp-backend/config"
)

// DB is the shared gorm handle, set by Connect
var DB *gorm.DB

// Connect opens the Postgres connection and stores the handle in DB
func Connect(cfg *config.Config) *gorm.DB {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to database: %v", err))
	}

	log.Printf("✅ Connected to Postgres at %s:%s/%s", cfg.DBHost, cfg.DBPort, cfg.DBName)

	DB = db
	return db
}
