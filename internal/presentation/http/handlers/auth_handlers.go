package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/middleware"
	appconfig "github.com/VRCMedia/vrcsite-go/pkg/config"
)

// AuthHandlers contains HTTP handlers for authentication endpoints
type AuthHandlers struct {
	authService *services.AuthService
	logger      *logging.ChanneledLogger
}

// NewAuthHandlers creates auth handlers with injected dependencies
func NewAuthHandlers(authService *services.AuthService, logger *logging.ChanneledLogger) *AuthHandlers {
	return &AuthHandlers{
		authService: authService,
		logger:      logger,
	}
}

// LoginRequest represents the login request body
type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/auth/login. The token is returned in the body
// and also set as a cookie for admin-UI requests.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.BadRequest(c, "Thiếu mật khẩu")
		return
	}

	result := h.authService.Authenticate(req.Password)
	if !result.Success {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": result.Error,
		})
		return
	}

	c.SetCookie(appconfig.SessionCookieName, result.Token,
		int(appconfig.SessionTokenTTL.Seconds()), "/", "", appconfig.SessionCookieSecure, true)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   result.Token,
		"role":    result.Role,
	})
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandlers) Logout(c *gin.Context) {
	c.SetCookie(appconfig.SessionCookieName, "", -1, "/", "", appconfig.SessionCookieSecure, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Status handles GET /api/v1/auth/status
func (h *AuthHandlers) Status(c *gin.Context) {
	role, ok := h.authService.ValidateToken(middleware.ExtractToken(c))
	if !ok {
		c.JSON(http.StatusOK, gin.H{"authenticated": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"authenticated": true, "role": role})
}
