package app

import (
	"context"

	"gorm.io/gorm"

	"github.com/talkincode/flowershop/config"
	"github.com/talkincode/flowershop/internal/assets"
	"github.com/talkincode/flowershop/internal/importer"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// AssetsProvider provides the product image store
type AssetsProvider interface {
	Assets() *assets.Store
}

// AppContext combines all provider interfaces for full application context
// Services should depend on specific providers or this combined interface
type AppContext interface {
	DBProvider
	ConfigProvider
	AssetsProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb() error
	DropAll()
	// Bootstrap creates and populates the store when it did not exist before Init
	Bootstrap() (*importer.Report, error)
	Import(ctx context.Context) (*importer.Report, error)
	Release()
}
