// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	GinMode      string
	LogLevel     string
	CORSOrigins  []string
	StoreDriver  string
	SeatRows     int
	SeatCols     int
	LockTTL      time.Duration
	StoreTimeout time.Duration
	LockStrategy string
	SweepEvery   time.Duration

	Database DatabaseConfig
	Redis    RedisConfig
	AMQP     AMQPConfig
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Channel  string
}

func (c RedisConfig) Addr() string {
	return c.Host + ":" + c.Port
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

func (c AMQPConfig) Enabled() bool {
	return c.URL != ""
}

// LoadEnv reads a .env file into the process environment without
// overriding variables that are already set.
func LoadEnv(logger *slog.Logger, filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		logger.Info("no .env file found, using OS environment")
		return
	}

	logger.Info("loaded .env file")
}

func Load() Config {
	return Config{
		Addr:         envStr("APP_ADDR", ":8080"),
		GinMode:      envStr("GIN_MODE", "release"),
		LogLevel:     envStr("LOG_LEVEL", "info"),
		CORSOrigins:  envList("CORS_ORIGINS", "*"),
		StoreDriver:  strings.ToLower(envStr("STORE_DRIVER", "postgres")),
		SeatRows:     envInt("SEAT_ROWS", 10),
		SeatCols:     envInt("SEAT_COLS", 10),
		LockTTL:      envDur("LOCK_TTL", 2*time.Second),
		StoreTimeout: envDur("STORE_TIMEOUT", time.Second),
		LockStrategy: strings.ToUpper(envStr("LOCK_STRATEGY", "REDIS")),
		SweepEvery:   envDur("LOCK_SWEEP_INTERVAL", time.Minute),
		Database: DatabaseConfig{
			Host:     envStr("DB_HOST", "localhost"),
			Port:     envStr("DB_PORT", "5432"),
			User:     envStr("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			DBName:   envStr("DB_NAME", "seat_reservation"),
		},
		Redis: RedisConfig{
			Host:     os.Getenv("REDIS_HOST"),
			Port:     envStr("REDIS_PORT", "6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       envInt("REDIS_DB", 0),
			Channel:  envStr("REDIS_CHANNEL", "seats:changes"),
		},
		AMQP: AMQPConfig{
			URL:      os.Getenv("RABBITMQ_URL"),
			Exchange: envStr("RABBITMQ_EXCHANGE", "seat.changes"),
		},
	}
}

func envStr(k, d string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return n
	}
	return d
}

func envDur(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if dur, err := time.ParseDuration(v); err == nil && dur > 0 {
		return dur
	}
	return d
}

func envList(k, d string) []string {
	var out []string
	for _, p := range strings.Split(envStr(k, d), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
