// Package config provides centralized default values for the VRC site backend
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err != nil {
			return
		}
		log.Println("Loading configuration overrides from .env file...")
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration

	// Database
	DBPath                   string
	TursoDatabaseURL         string
	TursoAuthToken           string
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	SlowQueryThreshold       time.Duration

	// Auth
	JWTSecret           string
	AdminPasswordHash   string
	EditorPasswordHash  string
	SessionTokenTTL     time.Duration
	SessionCookieName   string
	SessionCookieSecure bool

	// Email (contact form)
	ResendAPIKey  string
	ContactInbox  string
	EmailFromAddr string
	EmailFromName string

	// Cache
	ContentCacheTTL time.Duration

	// CORS
	AllowedOrigins string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)

	// Database
	DBPath = getEnvString("DB_PATH", "data/vrcsite.db")
	TursoDatabaseURL = getEnvString("TURSO_DATABASE_URL", "")
	TursoAuthToken = getEnvString("TURSO_AUTH_TOKEN", "")
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 250*time.Millisecond)

	// Auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPasswordHash = getEnvString("ADMIN_PASSWORD_HASH", "")
	EditorPasswordHash = getEnvString("EDITOR_PASSWORD_HASH", "")
	SessionTokenTTL = getEnvDuration("SESSION_TOKEN_TTL", 24*time.Hour)
	SessionCookieName = getEnvString("SESSION_COOKIE_NAME", "vrc_token")
	SessionCookieSecure = getEnvString("SESSION_COOKIE_SECURE", "false") == "true"

	// Email
	ResendAPIKey = getEnvString("RESEND_API_KEY", "")
	ContactInbox = getEnvString("CONTACT_INBOX", "contact@vrc.com.vn")
	EmailFromAddr = getEnvString("EMAIL_FROM_ADDR", "noreply@vrc.com.vn")
	EmailFromName = getEnvString("EMAIL_FROM_NAME", "VRC")

	// Cache
	ContentCacheTTL = time.Duration(getEnvInt("CONTENT_CACHE_TTL_HOURS", 24)) * time.Hour

	// CORS
	AllowedOrigins = getEnvString("ALLOWED_ORIGINS", "")
}
