package main

import (
	"fmt"
	"time"

	"pharmacy_inventory/internal/models"
	"pharmacy_inventory/internal/repository/db"

	"github.com/spf13/cobra"
)

func (c *cli) initDBCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "initdb",
		Short: "Drop all data, recreate the schema and load sample data",
		Long: `Rolls every migration back, applies them again and seeds the admin user
(admin/password) with three sample medicines. All existing data is lost.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			a, err := c.open(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := db.Reset(ctx, a.DB, a.Log); err != nil {
				return err
			}
			res, err := a.Services.Seed(ctx, models.DateOf(time.Now()))
			if err != nil {
				return fmt.Errorf("seed: %w", err)
			}
			a.Log.Infow("database_initialized", "path", a.Config.DB.Path, "admin_id", res.AdminID, "medicines", res.Medicines)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Initialized %s with %d sample medicines.\n", a.Config.DB.Path, len(res.Medicines))
			return err
		},
	}
}
