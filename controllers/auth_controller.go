package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/config"
	"github.com/toninews/logbook-back/middleware"
	"github.com/toninews/logbook-back/models"
	"github.com/toninews/logbook-back/response"
	"github.com/toninews/logbook-back/services"
	"github.com/toninews/logbook-back/userctx"
)

// AuthController handles authentication requests
type AuthController struct {
	services *services.Services
	cfg      *config.Config
}

// NewAuthController creates a new auth controller
func NewAuthController(srvs *services.Services, cfg *config.Config) *AuthController {
	return &AuthController{services: srvs, cfg: cfg}
}

// Login handles POST /auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var form models.LoginForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		response.Fail(w, apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError,
			"Request body must be valid JSON."))
		return
	}

	user, token, err := c.services.Auth.Login(r.Context(), &form)
	if err != nil {
		response.Fail(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.cfg.JWTTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.OK(w, user, nil)
}

// Logout handles POST /auth/logout
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	response.OK(w, map[string]bool{"success": true}, nil)
}

// Me handles GET /auth/me
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"usId":   userctx.GetUserID(r.Context()),
		"usRole": userctx.GetUserRole(r.Context()),
	}, nil)
}
