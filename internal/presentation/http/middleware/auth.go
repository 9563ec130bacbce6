package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/VRCMedia/vrcsite-go/internal/application/services"
	"github.com/VRCMedia/vrcsite-go/internal/presentation/http/api"
	appconfig "github.com/VRCMedia/vrcsite-go/pkg/config"
)

// AuthRequired gates write endpoints. A session token is accepted either as
// an Authorization bearer header or as the session cookie; requests without
// a valid token are rejected before any handler work happens.
func AuthRequired(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := authService.ValidateToken(ExtractToken(c))
		if !ok {
			api.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("role", role)
		c.Next()
	}
}

// ExtractToken pulls the session token from the Authorization header or,
// failing that, the session cookie.
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(appconfig.SessionCookieName); err == nil {
		return cookie
	}
	return ""
}
