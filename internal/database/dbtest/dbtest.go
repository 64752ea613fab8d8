// Package dbtest opens throwaway in-memory databases with the catalog schema
// for tests.
package dbtest

import (
	"testing"

	"github.com/deppfellow/catalog-api/internal/database"
	"github.com/deppfellow/catalog-api/internal/model"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open returns an ORM handle on a fresh in-memory sqlite database with every
// catalog table migrated. It is closed when the test ends.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	logger := zerolog.Nop()

	db, err := database.OpenORM(sqlite.Open(":memory:"), &logger, nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)

	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(model.Models()...))

	return db
}

// SeedProducts inserts one product per name priced at 9.99 and returns them
// with their generated ids.
func SeedProducts(t testing.TB, db *gorm.DB, categoryID *int, names ...string) []model.Product {
	t.Helper()

	products := make([]model.Product, 0, len(names))
	for _, name := range names {
		products = append(products, model.Product{
			ProductName: name,
			Price:       decimal.RequireFromString("9.99"),
			Stock:       10,
			CategoryID:  categoryID,
		})
	}

	require.NoError(t, db.Create(&products).Error)
	return products
}

// CountProductTags counts join rows for tagID.
func CountProductTags(t testing.TB, db *gorm.DB, tagID int) int64 {
	t.Helper()

	var count int64
	require.NoError(t, db.Model(&model.ProductTag{}).Where("tag_id = ?", tagID).Count(&count).Error)
	return count
}
