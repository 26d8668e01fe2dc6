// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/justsurfingit/job-board/internal/config"
	"github.com/justsurfingit/job-board/internal/database"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a migrated and seeded in-memory database private to the test.
func New(t testing.TB) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		DBDriver:       "sqlite",
		DatabaseURL:    fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		DBMaxOpenConns: 1,
		DBMaxIdleConns: 1,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}
