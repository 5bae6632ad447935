package client

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func tableExists(t *testing.T, db *sql.DB, name string) bool {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?`, name).Scan(&n)
	if err != nil {
		t.Fatalf("tableExists query failed: %v", err)
	}
	return n > 0
}

func TestInitDatabase_CreatesDBAndGooseVersionTable(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		t.Fatalf("db.PingContext failed: %v", err)
	}

	if !tableExists(t, db, "goose_db_version") {
		t.Fatalf("expected goose_db_version table to exist after migrations")
	}
	if !tableExists(t, db, "session") {
		t.Fatalf("expected session table to exist after migrations")
	}
}

func TestRunMigrations_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("sql.Open error: %v", err)
	}
	defer db.Close()

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (first) error: %v", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		t.Fatalf("RunMigrations (second) should be idempotent, got error: %v", err)
	}

	if !tableExists(t, db, "goose_db_version") {
		t.Fatalf("expected goose_db_version table to exist after repeated migrations")
	}
}

func TestInitDatabase_SessionTableHoldsOneRow(t *testing.T) {
	ctx := context.Background()
	dsn := filepath.Join(t.TempDir(), "app.db")

	db, err := InitDatabase(ctx, dsn)
	if err != nil {
		t.Fatalf("InitDatabase error: %v", err)
	}
	defer db.Close()

	exp := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
	_, err = db.ExecContext(ctx,
		`INSERT INTO session (id, user_id, email, name, token, expires_at) VALUES (1, ?, ?, ?, ?, ?)`,
		7, "ann@example.com", "Ann", "tok", exp.Unix())
	if err != nil {
		t.Fatalf("insert session failed: %v", err)
	}

	var (
		userID      int64
		email, name string
		token       string
		expiresAt   int64
	)
	err = db.QueryRowContext(ctx, `SELECT user_id, email, name, token, expires_at FROM session WHERE id = 1`).
		Scan(&userID, &email, &name, &token, &expiresAt)
	if err != nil {
		t.Fatalf("select session failed: %v", err)
	}
	if userID != 7 || email != "ann@example.com" || name != "Ann" || token != "tok" {
		t.Fatalf("unexpected session row: %d %q %q %q", userID, email, name, token)
	}
	if got := time.Unix(expiresAt, 0).UTC(); !got.Equal(exp) {
		t.Fatalf("expires_at = %v, want %v", got, exp)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO session (id, user_id, email, name, token, expires_at) VALUES (2, 8, 'bob@example.com', 'Bob', 't2', 0)`)
	if err == nil {
		t.Fatalf("expected a second session row to be rejected")
	}
}
