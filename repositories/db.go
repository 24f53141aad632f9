package repositories

import (
	"context"

	"github.com/agency-portal/database"
	"gorm.io/gorm"
)

type txKey struct{}

// conn returns the transaction carried by ctx, or the shared handle
func conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return database.DB.WithContext(ctx)
}

// Transaction runs fn inside one store transaction.
// Repository calls made with the context handed to fn join that transaction.
func Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return conn(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// pluck collects one string column of the rows matching query
func pluck(db *gorm.DB, model any, column string, query string, args ...any) ([]string, error) {
	var out []string
	err := db.Model(model).Where(query, args...).Pluck(column, &out).Error
	return out, err
}
