// Package testdb provisions throwaway PostgreSQL databases for end-to-end
// tests. Each call to New creates a uniquely named database on the server
// named by TEST_DATABASE_URL, applies the schema migrations, and registers a
// cleanup that drops it again. Tests skip when TEST_DATABASE_URL is unset.
package testdb

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudnotes/api/internal/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var counter atomic.Int64

// TestDB is a provisioned, migrated, disposable database.
type TestDB struct {
	URL  string
	Pool *pgxpool.Pool
}

// New creates a fresh database and connects a pool to it. The database and
// the pool are torn down automatically when the test finishes.
func New(t *testing.T) *TestDB {
	t.Helper()

	base := os.Getenv("TEST_DATABASE_URL")
	if base == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping end-to-end test")
	}

	name := fmt.Sprintf("cloudnotes_test_%d_%d", time.Now().UnixNano(), counter.Add(1))
	dbURL := withDatabase(t, base, name)

	ctx := context.Background()
	if err := database.EnsureDatabase(ctx, dbURL); err != nil {
		t.Fatalf("testdb: failed to create database: %v", err)
	}
	if err := database.Migrate(dbURL); err != nil {
		t.Fatalf("testdb: failed to migrate database: %v", err)
	}

	pool, err := database.Connect(ctx, dbURL)
	if err != nil {
		t.Fatalf("testdb: failed to connect: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		drop(t, base, name)
	})

	return &TestDB{URL: dbURL, Pool: pool}
}

func withDatabase(t *testing.T, base, name string) string {
	t.Helper()

	u, err := url.Parse(base)
	if err != nil {
		t.Fatalf("testdb: invalid TEST_DATABASE_URL: %v", err)
	}
	u.Path = "/" + name
	return u.String()
}

func drop(t *testing.T, base, name string) {
	t.Helper()

	cfg, err := pgx.ParseConfig(base)
	if err != nil {
		t.Errorf("testdb: failed to parse base URL for cleanup: %v", err)
		return
	}
	cfg.Database = "postgres"

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := pgx.ConnectConfig(ctx, cfg)
	if err != nil {
		t.Errorf("testdb: failed to connect for cleanup: %v", err)
		return
	}
	defer conn.Close(ctx)

	_, err = conn.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{name}.Sanitize()+" WITH (FORCE)")
	if err != nil {
		t.Errorf("testdb: failed to drop database %s: %v", name, err)
	}
}
