package services

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/security"
	"github.com/VRCMedia/vrcsite-go/pkg/config"
)

// AuthService handles admin authentication and session token operations
type AuthService struct {
	logger *logging.ChanneledLogger
}

// NewAuthService creates a new authentication service
func NewAuthService(logger *logging.ChanneledLogger) *AuthService {
	return &AuthService{logger: logger}
}

// AuthResult holds authentication result data
type AuthResult struct {
	Token   string `json:"token"`
	Role    string `json:"role"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Authenticate validates admin or editor credentials and issues a session token
func (a *AuthService) Authenticate(password string) *AuthResult {
	start := time.Now()
	var role string

	if config.AdminPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(config.AdminPasswordHash), []byte(password)); err == nil {
			role = "admin"
		}
	}
	if role == "" && config.EditorPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(config.EditorPasswordHash), []byte(password)); err == nil {
			role = "editor"
		}
	}

	if role == "" {
		a.logger.Auth().Warn("Authentication failed", "duration", time.Since(start))
		return &AuthResult{Success: false, Error: "Thông tin đăng nhập không hợp lệ"}
	}

	token, err := security.GenerateSessionToken(role, config.JWTSecret, config.SessionTokenTTL)
	if err != nil {
		a.logger.Auth().Error("Token generation failed", "error", err.Error())
		return &AuthResult{Success: false, Error: "Không thể tạo phiên đăng nhập"}
	}

	a.logger.Auth().Info("Authentication succeeded", "role", role, "duration", time.Since(start))
	return &AuthResult{Token: token, Role: role, Success: true}
}

// ValidateToken checks a session token and returns the embedded role.
func (a *AuthService) ValidateToken(tokenString string) (string, bool) {
	if tokenString == "" {
		return "", false
	}
	claims, err := security.ValidateJWT(tokenString, config.JWTSecret)
	if err != nil {
		return "", false
	}
	role := security.RoleFromClaims(claims)
	if role == "" {
		return "", false
	}
	return role, true
}
