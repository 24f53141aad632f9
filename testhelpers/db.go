package testhelpers

import (
	"strings"
	"testing"

	"github.com/agency-portal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

// SetupTestDB points database.DB at a fresh in-memory sqlite database for the current test.
// Each test gets its own database name so tests never share rows.
func SetupTestDB(t testing.TB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Open("sqlite", "file:"+name+"?mode=memory&cache=shared", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(database.Models()...))

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		database.DB = previous
	})
}
