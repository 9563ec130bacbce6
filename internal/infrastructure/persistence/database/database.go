// Package database provides the core functionality for creating and managing
// the content store connection.
package database

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/VRCMedia/vrcsite-go/internal/infrastructure/observability/logging"
	"github.com/VRCMedia/vrcsite-go/pkg/config"
	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
)

// DB wraps the standard SQL database connection.
type DB struct {
	*sql.DB
	UseTurso bool
}

// NewConnection opens the content store. Turso (libsql) is used when
// TURSO_DATABASE_URL and TURSO_AUTH_TOKEN are configured; otherwise a local
// SQLite file is created on demand.
func NewConnection(logger *logging.ChanneledLogger) (*DB, error) {
	start := time.Now()

	var conn *sql.DB
	var err error
	var useTurso bool

	if config.TursoDatabaseURL != "" && config.TursoAuthToken != "" {
		connStr := config.TursoDatabaseURL + "?authToken=" + config.TursoAuthToken
		logger.Database().Debug("Opening Turso database connection", "databaseURL", config.TursoDatabaseURL)
		conn, err = sql.Open("libsql", connStr)
		if err != nil {
			return nil, fmt.Errorf("turso connection failed: %w", err)
		}
		useTurso = true
	} else {
		dbDir := filepath.Dir(config.DBPath)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}

		logger.Database().Debug("Opening SQLite database connection", "path", config.DBPath)
		conn, err = sql.Open("sqlite3", config.DBPath)
		if err != nil {
			return nil, fmt.Errorf("sqlite connection failed: %w", err)
		}
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	conn.SetMaxOpenConns(config.DBMaxOpenConns)
	conn.SetMaxIdleConns(config.DBMaxIdleConns)
	conn.SetConnMaxLifetime(time.Duration(config.DBConnMaxLifetimeMinutes) * time.Minute)

	logger.Database().Info("Database connection established", "turso", useTurso, "duration", time.Since(start))

	return &DB{DB: conn, UseTurso: useTurso}, nil
}

// CheckAndLogSlowQuery logs a query through the slow-query channel when its
// duration exceeds the configured threshold.
func CheckAndLogSlowQuery(logger *logging.ChanneledLogger, query string, duration time.Duration) {
	if duration > config.SlowQueryThreshold {
		logger.LogSlowQuery(query, duration)
	}
}
