package cmd

import (
	"fmt"
	"os"

	"github.com/Kariqs/chapaquente-api/config"
	"github.com/Kariqs/chapaquente-api/initializers"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:          "chapaquente",
	Short:        "Chapa Quente ordering API",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// Execute runs the command line. Without a subcommand the API is served.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	initializers.LoadEnv(envFile)
	cfg := config.Load()

	log, err := initializers.NewLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, log, nil
}

func openDatabase(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	db, err := initializers.ConnectToDB(cfg.Database, log)
	if err != nil {
		return nil, err
	}
	if err := initializers.SyncDatabase(db, log); err != nil {
		return nil, err
	}
	return db, nil
}
