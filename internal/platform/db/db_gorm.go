// Package db opens the relational database shared by the auth repositories.
package db

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// retryInterval is the pause between connection attempts.
var retryInterval = 3 * time.Second

// Config selects and tunes the database connection.
// When URL is empty the SQLite file at SQLitePath is used instead of PostgreSQL.
type Config struct {
	URL            string
	SQLitePath     string
	ConnectTimeout time.Duration
	Debug          bool
}

// Opener opens a database for the given dialector.
type Opener func(dialector gorm.Dialector) (*gorm.DB, error)

// Dialector returns the GORM dialector for cfg.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch {
	case cfg.URL != "":
		return postgres.Open(cfg.URL), nil
	case cfg.SQLitePath != "":
		return sqlite.Open(cfg.SQLitePath), nil
	default:
		return nil, errors.New("db: neither DATABASE_URL nor SQLITE_PATH is set")
	}
}

// DefaultOpener opens the database with error translation enabled so that
// unique violations surface as gorm.ErrDuplicatedKey.
func DefaultOpener(debug bool) Opener {
	return func(dialector gorm.Dialector) (*gorm.DB, error) {
		level := logger.Warn
		if debug {
			level = logger.Info
		}
		return gorm.Open(dialector, &gorm.Config{
			TranslateError: true,
			Logger:         logger.Default.LogMode(level),
		})
	}
}

// ConnectWithRetry keeps calling open until it succeeds or timeout elapses.
func ConnectWithRetry(dialector gorm.Dialector, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dialector)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "dialect", dialector.Name(), "error", err)
		time.Sleep(retryInterval)
	}
}

// Open connects to the database described by cfg.
func Open(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}
	db, err := ConnectWithRetry(dialector, cfg.ConnectTimeout, DefaultOpener(cfg.Debug))
	if err != nil {
		return nil, err
	}
	slog.Info("DB connection successful", "dialect", dialector.Name())
	return db, nil
}
