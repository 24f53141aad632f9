package database

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/agency-portal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DBConnection represents a named database connection
type DBConnection struct {
	DB     *gorm.DB
	Name   string
	Driver string
	Models []interface{}
}

// NewDBConnection creates a new database connection
func NewDBConnection(name, driver, dbURL string) (*DBConnection, error) {
	if dbURL == "" {
		return nil, errors.New("database URL cannot be empty")
	}

	db, err := Open(driver, dbURL, logger.Warn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", name, err)
	}
	slog.Info("Connected to database", slog.String("name", name), slog.String("driver", driver))

	return &DBConnection{
		DB:     db,
		Name:   name,
		Driver: driver,
		Models: Models(),
	}, nil
}

// Migrate migrates the database schema
func (c *DBConnection) Migrate() error {
	slog.Info("Migrating database schema", slog.String("name", c.Name))
	if err := c.DB.AutoMigrate(c.Models...); err != nil {
		return fmt.Errorf("failed to migrate %s database: %w", c.Name, err)
	}
	slog.Info("Database schema migrated", slog.String("name", c.Name))
	return nil
}

// copyTable moves every row of one table from source to target in batches
func copyTable[T any](source, target *gorm.DB, table string) (int, error) {
	var rows []T
	if err := source.Find(&rows).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch %s: %w", table, err)
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := target.CreateInBatches(&rows, 200).Error; err != nil {
		return 0, fmt.Errorf("failed to copy %s: %w", table, err)
	}
	return len(rows), nil
}

// MigrateDataBetweenDatabases copies all rows from source to target, parents first.
// The target schema must already exist and be empty.
func MigrateDataBetweenDatabases(source, target *DBConnection) error {
	slog.Info("Starting data migration", slog.String("source", source.Name), slog.String("target", target.Name))

	return target.DB.Transaction(func(tx *gorm.DB) error {
		steps := []struct {
			table string
			copy  func() (int, error)
		}{
			{"clients", func() (int, error) { return copyTable[models.Client](source.DB, tx, "clients") }},
			{"users", func() (int, error) { return copyTable[models.User](source.DB, tx, "users") }},
			{"prospects", func() (int, error) { return copyTable[models.Prospect](source.DB, tx, "prospects") }},
			{"projects", func() (int, error) { return copyTable[models.Project](source.DB, tx, "projects") }},
			{"milestones", func() (int, error) { return copyTable[models.Milestone](source.DB, tx, "milestones") }},
			{"tasks", func() (int, error) { return copyTable[models.Task](source.DB, tx, "tasks") }},
			{"tickets", func() (int, error) { return copyTable[models.Ticket](source.DB, tx, "tickets") }},
			{"ticket_attachments", func() (int, error) {
				return copyTable[models.TicketAttachment](source.DB, tx, "ticket_attachments")
			}},
			{"documents", func() (int, error) { return copyTable[models.Document](source.DB, tx, "documents") }},
			{"comments", func() (int, error) { return copyTable[models.Comment](source.DB, tx, "comments") }},
			{"notifications", func() (int, error) { return copyTable[models.Notification](source.DB, tx, "notifications") }},
			{"reviews", func() (int, error) { return copyTable[models.Review](source.DB, tx, "reviews") }},
		}

		for _, step := range steps {
			n, err := step.copy()
			if err != nil {
				return err
			}
			slog.Info("Copied table", slog.String("table", step.table), slog.Int("rows", n))
		}
		slog.Info("Data migration completed")
		return nil
	})
}
