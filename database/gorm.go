package database

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/agency-portal/models"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB is the shared handle used by every repository
var DB *gorm.DB

// Models lists the tables in parent-before-child order
func Models() []interface{} {
	return []interface{}{
		&models.Client{},
		&models.User{},
		&models.Prospect{},
		&models.Project{},
		&models.Milestone{},
		&models.Task{},
		&models.Ticket{},
		&models.TicketAttachment{},
		&models.Document{},
		&models.Comment{},
		&models.Notification{},
		&models.Review{},
	}
}

// Open connects to postgres or sqlite and applies the pool settings
func Open(driver, dbURL string, level logger.LogLevel) (*gorm.DB, error) {
	// Configure GORM logger
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true,
			Colorful:                  true,
		},
	)

	var dialector gorm.Dialector
	switch driver {
	case "postgres", "":
		dialector = postgres.Open(dbURL)
	case "sqlite":
		dialector = sqlite.Open(dbURL)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: newLogger, TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get and configure the underlying SQL DB
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get SQL DB: %w", err)
	}

	if driver == "sqlite" {
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	return db, nil
}

// Initialize sets up the shared GORM connection and migrates the schema
func Initialize(driver, dbURL string) error {
	db, err := Open(driver, dbURL, logger.Warn)
	if err != nil {
		return err
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto migrate: %w", err)
	}
	DB = db
	slog.Info("Connected to database", slog.String("driver", driver))
	return nil
}
