package database

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens a pgx connection pool against the given URL and verifies it
// with a ping. The caller owns the returned pool and must Close it.
func Connect(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", Translate(err))
	}

	slog.Info("connected to postgres", "database", cfg.ConnConfig.Database)
	return pool, nil
}

// EnsureDatabase creates the target database if it does not exist yet. It
// connects to the maintenance database ("postgres") on the same server, so it
// works against a fresh cluster before any application database exists.
// Safe to call on every startup.
func EnsureDatabase(ctx context.Context, url string) error {
	cfg, err := pgx.ParseConfig(url)
	if err != nil {
		return fmt.Errorf("parse database url: %w", err)
	}

	target := cfg.Database
	if target == "" {
		return fmt.Errorf("database url has no database name")
	}

	cfg.Database = "postgres"
	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect to maintenance database: %w", Translate(err))
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", target,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database existence: %w", Translate(err))
	}
	if exists {
		return nil
	}

	// CREATE DATABASE does not accept bind parameters, so the name is
	// quoted as an identifier instead.
	_, err = conn.Exec(ctx, "CREATE DATABASE "+pgx.Identifier{target}.Sanitize())
	if err != nil {
		return fmt.Errorf("create database %q: %w", target, Translate(err))
	}

	slog.Info("created database", "database", target)
	return nil
}
