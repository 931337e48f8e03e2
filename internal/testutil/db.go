// Package testutil opens throwaway stores for package tests.
package testutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/talkincode/flowershop/config"
	"github.com/talkincode/flowershop/internal/app"
	"github.com/talkincode/flowershop/internal/domain"
)

// OpenDB returns a migrated store in a temporary directory, closed with the test.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := app.OpenDatabase(config.DBConfig{Type: "sqlite"}, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, app.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// Seed inserts values in order and fails the test on the first error.
func Seed(t testing.TB, db *gorm.DB, values ...interface{}) {
	t.Helper()
	for _, v := range values {
		require.NoError(t, db.Create(v).Error)
	}
}

// Product a valid product row with the given article and stock
func Product(article string, cost float64, discount, quantity int) *domain.Product {
	return &domain.Product{
		Article:      article,
		Name:         "Роза " + article,
		Unit:         "шт.",
		Cost:         cost,
		MaxDiscount:  30,
		Manufacturer: "Цветущий сад",
		Supplier:     "Флора",
		Category:     "Цветы",
		Discount:     discount,
		Quantity:     quantity,
		Description:  "Красная роза",
	}
}
