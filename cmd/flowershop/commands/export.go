package commands

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/talkincode/flowershop/internal/catalog"
)

var (
	// Export flags
	exportOut      string
	exportSupplier string
	exportSearch   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export store data",
}

// exportProductsCmd writes the catalog as CSV
var exportProductsCmd = &cobra.Command{
	Use:   "products",
	Short: "Export the product catalog as CSV",
	Long: `Export the product catalog as CSV, with the same filters the catalog screen has.

Examples:
  flowershop export products                          # to stdout
  flowershop export products --out catalog.csv
  flowershop export products --supplier "Флора" --search роза`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExportProducts(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportProductsCmd)

	exportProductsCmd.Flags().StringVarP(&exportOut, "out", "o", "-", "Output file, - for stdout")
	exportProductsCmd.Flags().StringVar(&exportSupplier, "supplier", "", "Only products of this supplier")
	exportProductsCmd.Flags().StringVar(&exportSearch, "search", "", "Only products matching this text")
}

func runExportProducts(ctx context.Context) error {
	application, err := newApp(false, true)
	if err != nil {
		return err
	}
	defer application.Release()

	svc := catalog.NewService(application.DB(), application.Assets())
	rows, err := svc.List(ctx, catalog.Filter{Supplier: exportSupplier, Search: exportSearch})
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if exportOut != "-" {
		f, err := os.Create(exportOut)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", exportOut)
		}
		defer f.Close()
		w = f
	}
	if err := catalog.ExportCSV(w, rows); err != nil {
		return err
	}
	zap.L().Info("catalog exported", zap.String("out", exportOut), zap.Int("rows", len(rows)))
	return nil
}
