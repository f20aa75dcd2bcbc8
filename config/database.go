package config

import (
	"fmt"
	"strings"
	"time"

	"gympro-backend/models"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Open connects to the database named by the DSN. Postgres DSNs (URL or
// key=value form) get the postgres driver; anything else is treated as a
// sqlite path, which keeps local development and tests self-contained.
func Open(dsn string) (*gorm.DB, error) {
	trimmed := strings.TrimSpace(dsn)
	if trimmed == "" {
		return nil, fmt.Errorf("config: empty DB_URL")
	}

	cfg := &gorm.Config{TranslateError: true}

	var db *gorm.DB
	var err error
	if isPostgresDSN(trimmed) {
		db, err = gorm.Open(postgres.Open(trimmed), cfg)
	} else {
		db, err = gorm.Open(sqlite.Open(trimmed), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Minute)

	return db, nil
}

func isPostgresDSN(dsn string) bool {
	lower := strings.ToLower(dsn)
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return true
	}
	return strings.Contains(lower, "host=") || strings.Contains(lower, "dbname=")
}

// Migrate keeps the schema in sync at startup.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Customer{},
		&models.Payment{},
		&models.NotificationLog{},
	)
}
