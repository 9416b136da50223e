package main

import (
	"autoreport/internal/container"

	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve report generation over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			c, err := container.New(cfg)
			if err != nil {
				return err
			}
			logger.Info("Starting report server on port %s", cfg.Server.Port)
			return c.NewServer().Start(":" + cfg.Server.Port)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (default SERVER_PORT)")
	return cmd
}
