// Package db opens the Postgres connection, applies migrations and runs
// background maintenance jobs.
package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/atinyakov/VocabDeck/internal/db/migrations"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

// InitPostgres opens dsn and checks connectivity. The schema is left alone;
// run Migrate afterwards.
func InitPostgres(dsn string) (*sql.DB, error) {
	return open("postgres", dsn)
}

func open(driver, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}
