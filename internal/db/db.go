package db

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/sukalov/chordsheet/internal/logger"
)

// Open connects to a libsql (Turso) database and verifies the connection.
func Open(url, authToken string) (*sql.DB, error) {
	dsn := url
	if authToken != "" {
		dsn = fmt.Sprintf("%s?authToken=%s", url, authToken)
	}

	database, err := sql.Open("libsql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", url, err)
	}

	database.SetMaxOpenConns(25)
	database.SetMaxIdleConns(25)
	database.SetConnMaxLifetime(5 * time.Minute)

	if err := database.Ping(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return database, nil
}

// Close closes the database connection safely
func Close(database *sql.DB) {
	if database == nil {
		return
	}
	if err := database.Close(); err != nil {
		logger.Error("error closing database", "error", err)
	}
}
