package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/toninews/logbook-back/apperrors"
	"github.com/toninews/logbook-back/models"
	"github.com/toninews/logbook-back/repositories"
)

// Session is the result of a verified session token
type Session struct {
	User   *models.User
	UserID string
	Role   string
}

// AuthService interface defines authentication business logic
type AuthService interface {
	Login(ctx context.Context, form *models.LoginForm) (*models.User, string, error)
	VerifySession(ctx context.Context, token string) (*Session, error)
}

// authService implements AuthService interface
type authService struct {
	userRepo  repositories.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, tokenTTL time.Duration) (AuthService, error) {
	if userRepo == nil {
		return nil, apperrors.New(http.StatusInternalServerError, apperrors.CodeDependencyContractError,
			"AuthService requires a user repository.")
	}
	return &authService{
		userRepo:  userRepo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}, nil
}

// Login verifies credentials and issues a signed session token. Unknown email
// and wrong password are indistinguishable to the caller.
func (s *authService) Login(ctx context.Context, form *models.LoginForm) (*models.User, string, error) {
	if errs := form.Validate(); len(errs) > 0 {
		return nil, "", apperrors.New(http.StatusBadRequest, apperrors.CodeValidationError,
			"Email and password are required.")
	}

	if s.jwtSecret == "" {
		return nil, "", apperrors.New(http.StatusInternalServerError, apperrors.CodeJWTSecretMissing,
			"JWT_SECRET is not configured on the server.")
	}

	user, err := s.userRepo.FindByEmail(ctx, form.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)) != nil {
		return nil, "", apperrors.New(http.StatusUnauthorized, apperrors.CodeInvalidCredentials,
			"Invalid email or password.")
	}

	if !user.IsActive() {
		return nil, "", apperrors.New(http.StatusForbidden, apperrors.CodeUserInactive,
			"User is blocked or inactive.")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"usId":   user.ID,
		"usRole": user.Role,
		"exp":    time.Now().Add(s.tokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign session token: %w", err)
	}

	return user, signed, nil
}

// VerifySession decodes the session token and resolves it to an active user
func (s *authService) VerifySession(ctx context.Context, tokenString string) (*Session, error) {
	if s.jwtSecret == "" {
		return nil, apperrors.New(http.StatusInternalServerError, apperrors.CodeJWTSecretMissing,
			"JWT_SECRET is not configured on the server.")
	}

	invalidSession := apperrors.New(http.StatusUnauthorized, apperrors.CodeInvalidSession, "Invalid session.")

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, invalidSession
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, invalidSession
	}

	userID, _ := claims["usId"].(string)
	if userID == "" {
		return nil, invalidSession
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user == nil {
		return nil, invalidSession
	}

	if !user.IsActive() {
		return nil, apperrors.New(http.StatusForbidden, apperrors.CodeUserInactive,
			"User is blocked or inactive.")
	}

	role, _ := claims["usRole"].(string)

	return &Session{
		User:   user,
		UserID: userID,
		Role:   role,
	}, nil
}
