package cmd

import (
	"github.com/emrgen/bookbrainz/internal/config"
	"github.com/emrgen/bookbrainz/internal/server"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var port string

	command := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the background jobs",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.LoadConfig()
			if err != nil {
				fail(err)
			}
			if port != "" {
				cfg.HTTP.Port = port
			}
			if err := config.SetupLogging(cfg); err != nil {
				fail(err)
			}

			if err := server.Start(cfg); err != nil {
				fail(err)
			}
		},
	}

	command.Flags().StringVarP(&port, "port", "p", "", "http port, overrides BOOKBRAINZ_HTTP_PORT")

	return command
}
