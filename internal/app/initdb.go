package app

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/talkincode/flowershop/internal/importer"
)

// IsFresh reports whether the store file was absent when Init ran.
func (a *Application) IsFresh() bool {
	return a.fresh
}

// Bootstrap creates the schema and runs the one-time spreadsheet import, but only
// when the store did not exist before Init; otherwise it returns a nil report.
// Rows the importer cannot use are skipped. An unreadable source is logged and
// returned after the rest is imported.
func (a *Application) Bootstrap() (*importer.Report, error) {
	if !a.fresh {
		return nil, nil
	}
	if err := os.MkdirAll(a.appConfig.GetAssetsDir(), 0o755); err != nil {
		return nil, errors.Wrap(err, "create assets dir")
	}
	if err := a.MigrateDB(a.appConfig.Database.Debug); err != nil {
		return nil, err
	}
	a.fresh = false

	report, err := a.Import(context.Background())
	if err != nil {
		zap.L().Error("initial import incomplete", zap.Error(err))
		return report, err
	}
	zap.L().Info("initial import done",
		zap.Int("users", report.Users.Imported),
		zap.Int("products", report.Products.Imported),
		zap.Int("pickup_points", report.PickupPoints.Imported),
		zap.Int("orders", report.Orders.Imported))
	return report, nil
}

// Import runs the spreadsheet import into the current store.
func (a *Application) Import(ctx context.Context) (*importer.Report, error) {
	cfg := a.appConfig
	im := importer.New(a.gormDB, a.assets, cfg.GetImportDir())
	return im.Run(ctx, importer.Sources{
		Users:        cfg.GetImportPath(cfg.Import.Users),
		Products:     cfg.GetImportPath(cfg.Import.Products),
		PickupPoints: cfg.GetImportPath(cfg.Import.PickupPoints),
		Orders:       cfg.GetImportPath(cfg.Import.Orders),
	})
}
