package main

import (
	"os"

	"github.com/yigit/messdesk/internal/pkg/logger"
	"github.com/yigit/messdesk/internal/server"
)

// @title Mess Desk API
// @version 1.0
// @description Complaint management for campus messes: students file complaints, supervisors and the mess office resolve them.

// @contact.name API Support
// @contact.email support@messdesk.local

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT token for authorization

func main() {
	srv, err := server.NewServer()
	if err != nil {
		logger.Error().Err(err).Msg("Startup failed")
		os.Exit(1)
	}
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
