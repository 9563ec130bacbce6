package middleware

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	appconfig "github.com/VRCMedia/vrcsite-go/pkg/config"
)

// CORSMiddleware provides CORS configuration for the public site and the
// admin dashboard. ALLOWED_ORIGINS extends the local development defaults.
func CORSMiddleware() gin.HandlerFunc {
	origins := []string{
		"http://localhost:3000",
		"http://localhost:5173",
		"http://127.0.0.1:3000",
		"http://127.0.0.1:5173",
		"https://vrc.com.vn",
		"https://www.vrc.com.vn",
	}
	for _, origin := range strings.Split(appconfig.AllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}

	config := cors.Config{
		AllowOrigins: origins,
		AllowMethods: []string{
			"GET", "POST", "PUT", "DELETE", "OPTIONS",
		},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept", "Authorization",
			"X-Requested-With", "Cache-Control",
		},
		AllowCredentials: true,
		ExposeHeaders: []string{
			"Content-Type", "Cache-Control",
			"X-Payload-Admin", "X-Payload-Refresh", "ETag",
		},
	}

	return cors.New(config)
}
