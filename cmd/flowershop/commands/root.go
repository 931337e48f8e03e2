package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/talkincode/flowershop/config"
	"github.com/talkincode/flowershop/internal/app"
)

var (
	// Global flags
	configFile string
)

// rootCmd represents the base command; without a subcommand it starts the UI
var rootCmd = &cobra.Command{
	Use:   "flowershop",
	Short: "Flower shop catalog and order desk",
	Long: `Flowershop keeps the product catalog, pickup points and client orders of a
flower shop in a local sqlite store.

On the first start the store is created and filled from the spreadsheets in the
import directory. After that the terminal UI lets staff sign in, browse and edit
the catalog and manage orders.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd.Context())
	},
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", config.DefaultConfigFile, "Path to the config file")
}

// newApp loads the config and opens the store. consoleLog mirrors the log to
// stderr. With mustExist a missing store is an error instead of being created.
func newApp(consoleLog, mustExist bool) (app.AppContext, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if mustExist {
		if _, err := os.Stat(cfg.GetDBPath()); os.IsNotExist(err) {
			return nil, errors.Errorf("store %s does not exist, run import first", cfg.GetDBPath())
		}
	}
	application := app.NewApplication(cfg)
	if err := application.Init(consoleLog); err != nil {
		return nil, err
	}
	return application, nil
}

func loadConfig() (*config.AppConfig, error) {
	cfg, err := config.LoadConfig(configFile)
	return cfg, errors.Wrap(err, "failed to load config")
}
