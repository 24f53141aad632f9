package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hashicorp/go-multierror"
	"gorm.io/gorm"

	"github.com/agency-portal/storage"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("access denied")
	ErrConflict           = errors.New("conflict")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// notFound maps a missing row to ErrNotFound and leaves other errors alone
func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return err
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidInput)
}

// removeObjects deletes every key and aggregates the failures
func removeObjects(ctx context.Context, store storage.Store, keys []string) error {
	var result *multierror.Error
	for _, key := range keys {
		if err := store.Delete(ctx, key); err != nil {
			result = multierror.Append(result, fmt.Errorf("delete %s: %w", key, err))
		}
	}
	return result.ErrorOrNil()
}

// cleanupObjects drops the files of rows that are already gone. Failures leave orphans, not errors.
func cleanupObjects(ctx context.Context, deps Deps, keys []string) {
	if len(keys) == 0 {
		return
	}
	if err := removeObjects(ctx, deps.Store, keys); err != nil {
		deps.Logger.Warn("Failed to remove stored files", slog.Int("files", len(keys)), slog.Any("error", err))
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
