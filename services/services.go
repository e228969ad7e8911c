package services

import (
	"github.com/toninews/logbook-back/config"
	"github.com/toninews/logbook-back/repositories"
)

// Services holds all service instances
type Services struct {
	Log  LogService
	Auth AuthService
}

// NewServices creates and initializes all service instances. Wiring mistakes
// surface here, at startup, rather than at first request.
func NewServices(repos *repositories.Repositories, cfg *config.Config) (*Services, error) {
	logService, err := NewLogService(repos.Log)
	if err != nil {
		return nil, err
	}

	authService, err := NewAuthService(repos.User, cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		return nil, err
	}

	return &Services{
		Log:  logService,
		Auth: authService,
	}, nil
}
