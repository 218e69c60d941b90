// Package testdb opens a migrated in-memory sqlite database for repository
// and engine tests.
package testdb

import (
	"testing"
	"time"

	"multicleaner/internal/adapters/out/postgres"
	"multicleaner/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a private database that lives until the test ends.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + kernel.NewUUID().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection serializes writers the way row locks would in postgres.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.AutoMigrate(db))
	return db
}
