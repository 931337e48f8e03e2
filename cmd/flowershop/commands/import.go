package commands

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/talkincode/flowershop/config"
	"github.com/talkincode/flowershop/internal/app"
	"github.com/talkincode/flowershop/internal/auth"
)

var (
	// Import flags
	forceImport   bool
	adminLogin    string
	adminPassword string
)

// importCmd creates the store from the spreadsheets
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Create the store and import the spreadsheets",
	Long: `Create the store and import users, products, pickup points and orders from
the import directory.

An existing store is left alone unless --force is given. Replacing a store
requires the credentials of an administrator of that store.

Examples:
  flowershop import
  flowershop import --force --login admin@mail.ru --password secret`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVarP(&forceImport, "force", "f", false, "Remove an existing store first")
	importCmd.Flags().StringVar(&adminLogin, "login", "", "Administrator login, needed with --force")
	importCmd.Flags().StringVar(&adminPassword, "password", "", "Administrator password, needed with --force")
}

func runImport(ctx context.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := cfg.GetDBPath()
	if _, err := os.Stat(path); err == nil {
		if !forceImport {
			return errors.Errorf("store %s already exists, use --force to replace it", path)
		}
		if err := checkAdmin(ctx, cfg, path); err != nil {
			return err
		}
		if err := os.Remove(path); err != nil {
			return errors.Wrapf(err, "failed to remove %s", path)
		}
	}

	application, err := newApp(true, false)
	if err != nil {
		return err
	}
	defer application.Release()

	report, importErr := application.Bootstrap()
	if report != nil {
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "SOURCE\tIMPORTED\tSKIPPED")
		for _, r := range report.Results() {
			fmt.Fprintf(w, "%s\t%d\t%d\n", r.Source, r.Imported, r.Skipped)
		}
		_ = w.Flush()
	}
	return importErr
}

// checkAdmin verifies --login/--password against the store about to be replaced
func checkAdmin(ctx context.Context, cfg *config.AppConfig, path string) error {
	db, err := app.OpenDatabase(cfg.Database, path)
	if err != nil {
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}()

	id, err := auth.NewService(db).Authenticate(ctx, adminLogin, adminPassword)
	if err != nil {
		return errors.Wrap(err, "cannot replace the store")
	}
	if err := id.Require(auth.Import); err != nil {
		return errors.Wrap(err, "cannot replace the store")
	}
	return nil
}
