package cmd

import (
	"os"

	"github.com/Kariqs/chapaquente-api/initializers"
	"github.com/spf13/cobra"
)

var seedOpts initializers.SeedOptions

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the starter catalogue and the admin account",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		defer log.Sync()

		db, err := openDatabase(cfg, log)
		if err != nil {
			return err
		}
		if seedOpts.AdminPassword == "" {
			seedOpts.AdminPassword = os.Getenv("ADMIN_PASSWORD")
		}
		if seedOpts.AdminPassword == "" {
			seedOpts.AdminPassword = "admin123"
			log.Warn("Seeding admin with the default password; change it after the first login")
		}
		return initializers.SeedDatabase(db, seedOpts, log)
	},
}

func init() {
	seedCmd.Flags().StringVar(&seedOpts.AdminEmail, "admin-email", "admin@chapaquente.com", "e-mail of the seeded admin account")
	seedCmd.Flags().StringVar(&seedOpts.AdminPassword, "admin-password", "", "password of the seeded admin account (default $ADMIN_PASSWORD)")
	rootCmd.AddCommand(seedCmd)
}
