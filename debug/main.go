package main

import (
	"os"

	"github.com/emrgen/bookbrainz/internal/config"
	"github.com/emrgen/bookbrainz/internal/server"
	"github.com/sirupsen/logrus"
)

// debug runs the server with development defaults and verbose logging.
func main() {
	if os.Getenv("BOOKBRAINZ_LOG_LEVEL") == "" {
		os.Setenv("BOOKBRAINZ_LOG_LEVEL", "debug")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	if err := config.SetupLogging(cfg); err != nil {
		logrus.Fatalf("error setting up logging: %v", err)
	}

	if err := server.Start(cfg); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}
