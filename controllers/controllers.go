package controllers

import (
	"github.com/toninews/logbook-back/config"
	"github.com/toninews/logbook-back/services"
)

// Controllers holds all controller instances
type Controllers struct {
	Logs *LogsController
	Auth *AuthController
}

// NewControllers creates and initializes all controller instances
func NewControllers(srvs *services.Services, cfg *config.Config) *Controllers {
	return &Controllers{
		Logs: NewLogsController(srvs),
		Auth: NewAuthController(srvs, cfg),
	}
}
