package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

func (c Config) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.User, c.Password, c.Host, c.Port, c.DBName)
}

const (
	maxRetries = 10
	retryDelay = 2 * time.Second
)

func NewPostgresDB(cfg Config, logger *slog.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 1; i <= maxRetries; i++ {
		logger.Info("connecting to database", slog.Int("attempt", i), slog.Int("max_attempts", maxRetries))
		db, err = sql.Open("postgres", cfg.DSN())
		if err == nil {
			err = db.Ping()
		}

		if err == nil {
			logger.Info("database connected")
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
			return db, nil
		}

		if db != nil {
			_ = db.Close()
		}

		logger.Warn("database not ready yet", slog.Any("error", err), slog.Duration("retry_in", retryDelay))
		time.Sleep(retryDelay)
	}

	return nil, fmt.Errorf("failed to connect to database: %w", err)
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS seats (
		id          BIGINT PRIMARY KEY,
		seat_number TEXT NOT NULL UNIQUE,
		booked_by   TEXT,
		booked_at   TIMESTAMPTZ,
		version     BIGINT NOT NULL DEFAULT 0,
		CONSTRAINT seats_booking_complete CHECK ((booked_by IS NULL) = (booked_at IS NULL))
	)`,
	`CREATE TABLE IF NOT EXISTS seat_locks (
		seat_id    BIGINT PRIMARY KEY,
		holder     TEXT NOT NULL,
		expires_at TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS seat_locks_expires_at_idx ON seat_locks (expires_at)`,
}

// Migrate creates the tables the service needs. Every statement is idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	return nil
}
