package main

import (
	"context"
	"errors"
	"net/url"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chibox/chibox-server/internal/database"
)

const (
	envDatabaseURL = "DATABASE_URL"

	dbMaxConns    = 4
	dbMaxIdle     = time.Minute
	dbMaxLifetime = 10 * time.Minute
)

func databaseURL() (string, error) {
	dbURL := os.Getenv(envDatabaseURL)
	if dbURL == "" {
		return "", errors.New(envDatabaseURL + " is not set")
	}
	return dbURL, nil
}

func openPool(ctx context.Context) (*pgxpool.Pool, error) {
	dbURL, err := databaseURL()
	if err != nil {
		return nil, err
	}
	PrintInfo("Connecting to database: %s", redactPassword(dbURL))
	return database.NewPool(ctx, dbURL, dbMaxConns, dbMaxIdle, dbMaxLifetime)
}

// redactPassword hides the password of a postgres:// URL for logging
func redactPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return connStr
	}
	if _, ok := u.User.Password(); !ok {
		return connStr
	}
	return u.Redacted()
}
