package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yeremiapane/restaurant-reservations/database"
)

func newSeedCmd() *cobra.Command {
	var tables bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the admin account from ADMIN_EMAIL/ADMIN_PASSWORD and, optionally, demo tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			if err := database.Migrate(db); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := database.SeedAdmin(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
				return err
			}
			if tables || cfg.SeedDemo {
				added, err := database.SeedTables(ctx, db)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "added %d tables\n", added)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tables, "tables", false, "also insert the demo floor plan")
	return cmd
}
