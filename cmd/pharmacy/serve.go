package main

import (
	"github.com/spf13/cobra"
)

func (c *cli) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if err := a.Run(cmd.Context()); err != nil {
				a.Log.Errorw("server_failed", "err", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().String("port", "", "listen port, e.g. 8080 or 127.0.0.1:8080")
	cmd.Flags().Bool("seed", false, "create the admin user and sample medicines on an empty store")
	_ = c.v.BindPFlag("port", cmd.Flags().Lookup("port"))
	_ = c.v.BindPFlag("seed.enabled", cmd.Flags().Lookup("seed"))
	return cmd
}
