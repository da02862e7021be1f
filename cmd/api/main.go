package main

import (
	"context"
	"os"

	"github.com/eee-uofk/coursehub/internal/pkg/logger"
	"github.com/eee-uofk/coursehub/internal/server"
)

// @title CourseHub API
// @version 1.0
// @description Course materials, question bank and notice board for the EEE first-semester cohort.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization, as "Bearer <token>"

func main() {
	configPath := os.Getenv("COURSEHUB_CONFIG")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	srv, err := server.NewServer(context.Background(), configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}
