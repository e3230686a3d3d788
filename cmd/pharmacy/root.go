package main

import (
	"context"

	"pharmacy_inventory/internal/app"
	"pharmacy_inventory/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// cli carries the viper instance and flags shared by every subcommand.
type cli struct {
	v          *viper.Viper
	configFile string
}

func newRootCmd() *cobra.Command {
	c := &cli{v: config.New()}

	root := &cobra.Command{
		Use:   "pharmacy",
		Short: "Pharmacy inventory tracker",
		Long: `A browser-based pharmacy inventory tracker.

Settings come from configs/config.yml (or --config), PHARMACY_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configFile, "config", "", "config file (default configs/config.yml when present)")
	flags.String("db", "", "sqlite database path")
	flags.String("log-level", "", "debug, info, warn or error")
	_ = c.v.BindPFlag("db.path", flags.Lookup("db"))
	_ = c.v.BindPFlag("log_level", flags.Lookup("log-level"))

	root.AddCommand(c.serveCmd(), c.initDBCmd(), c.addUserCmd())
	return root
}

// open loads configuration and builds the application context.
func (c *cli) open(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(c.v, c.configFile)
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, nil)
}
