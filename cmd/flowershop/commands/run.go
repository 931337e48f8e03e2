package commands

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talkincode/flowershop/internal/app"
	"github.com/talkincode/flowershop/internal/auth"
	"github.com/talkincode/flowershop/internal/catalog"
	"github.com/talkincode/flowershop/internal/orders"
	"github.com/talkincode/flowershop/internal/tui"
)

// runCmd starts the terminal UI
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the terminal UI",
	Long: `Start the terminal UI. A missing store is created and imported first.

Examples:
  flowershop run
  flowershop run --config /etc/flowershop.yml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runUI(ctx context.Context) error {
	application, err := newApp(false, false)
	if err != nil {
		return err
	}
	defer application.Release()

	if _, err := application.Bootstrap(); err != nil {
		// whatever was imported is usable, the details are in the log
		zap.L().Warn("starting with a partial import", zap.Error(err))
	}

	zap.L().Info("ui started")
	return tui.Run(ctx, services(application))
}

func services(a app.AppContext) tui.Services {
	db := a.DB()
	return tui.Services{
		Auth:      auth.NewService(db),
		Catalog:   catalog.NewService(db, a.Assets()),
		Orders:    orders.NewService(db),
		ExportDir: filepath.Join(a.Config().GetRootDir(), "exports"),
	}
}
