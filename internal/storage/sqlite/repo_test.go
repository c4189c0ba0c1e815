package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gddl "hrpipe/internal/ddl"
	"hrpipe/internal/storage"
)

// newFileRepo opens a repository on a fresh database file in t.TempDir.
func newFileRepo(t *testing.T, table string) (*Repository, string) {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "hr.db")
	r, closeFn, err := NewRepository(context.Background(), Config{DSN: dsn, Table: table})
	if err != nil {
		t.Fatalf("NewRepository: %v", err)
	}
	t.Cleanup(closeFn)
	return r, dsn
}

func countRows(t *testing.T, dsn, table string) int {
	t.Helper()
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM "` + table + `"`).Scan(&n); err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestNewRepository_EmptyDSN(t *testing.T) {
	t.Parallel()

	if _, _, err := NewRepository(context.Background(), Config{}); err == nil {
		t.Fatal("NewRepository(empty DSN) error = nil")
	}
}

// TestCopyFrom_RoundTrip creates the table through the registered DDL
// bootstrapper and copies rows including NULLs and dates.
func TestCopyFrom_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, dsn := newFileRepo(t, "employees")

	cols := []gddl.LogicalColumn{
		{Name: "id", Type: "int"},
		{Name: "name", Type: "string"},
		{Name: "extra_bonus", Type: "float"},
		{Name: "join_date", Type: "date"},
	}
	if err := storage.EnsureTable(ctx, "sqlite", &wrappedRepo{Repository: r}, "employees", cols); err != nil {
		t.Fatalf("EnsureTable: %v", err)
	}
	// Idempotent.
	if err := storage.EnsureTable(ctx, "sqlite", &wrappedRepo{Repository: r}, "employees", cols); err != nil {
		t.Fatalf("EnsureTable (second): %v", err)
	}

	d := time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC)
	rows := [][]any{
		{int64(1), "Alice", 100.0, d},
		{int64(6), "Frank", nil, d.AddDate(0, 1, 2)},
	}
	n, err := r.CopyFrom(ctx, []string{"id", "name", "extra_bonus", "join_date"}, rows)
	if err != nil {
		t.Fatalf("CopyFrom: %v", err)
	}
	if n != 2 {
		t.Fatalf("CopyFrom = %d, want 2", n)
	}
	if got := countRows(t, dsn, "employees"); got != 2 {
		t.Fatalf("row count = %d, want 2", got)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()
	var (
		date  string
		bonus sql.NullFloat64
	)
	if err := db.QueryRow(`SELECT join_date, extra_bonus FROM employees WHERE id = 6`).Scan(&date, &bonus); err != nil {
		t.Fatalf("select: %v", err)
	}
	if date != "2020-03-31" {
		t.Fatalf("join_date = %q, want 2020-03-31", date)
	}
	if bonus.Valid {
		t.Fatalf("extra_bonus = %v, want NULL", bonus.Float64)
	}
}

func TestCopyFrom_Errors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	r, dsn := newFileRepo(t, "t")
	if err := r.Exec(ctx, `CREATE TABLE t (a INTEGER, b TEXT)`); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, err := r.CopyFrom(ctx, nil, [][]any{{1}}); err == nil {
		t.Fatal("CopyFrom(no columns) error = nil")
	}
	if n, err := r.CopyFrom(ctx, []string{"a"}, nil); err != nil || n != 0 {
		t.Fatalf("CopyFrom(no rows) = %d, %v", n, err)
	}

	// A ragged row rolls back the whole batch.
	_, err := r.CopyFrom(ctx, []string{"a", "b"}, [][]any{{1, "x"}, {2}})
	if err == nil || !strings.Contains(err.Error(), "row 1") {
		t.Fatalf("CopyFrom(ragged) error = %v, want row 1", err)
	}
	if got := countRows(t, dsn, "t"); got != 0 {
		t.Fatalf("row count after rollback = %d, want 0", got)
	}

	if err := r.Exec(ctx, "  "); err != nil {
		t.Fatalf("Exec(blank) = %v, want nil", err)
	}
	if err := r.Exec(ctx, "NOT SQL"); err == nil {
		t.Fatal("Exec(bad sql) error = nil")
	}
}

func TestToSQLiteVal(t *testing.T) {
	t.Parallel()

	d := time.Date(2020, 1, 31, 0, 0, 0, 0, time.UTC)
	if got := toSQLiteVal(d); got != "2020-01-31" {
		t.Fatalf("toSQLiteVal(date) = %v", got)
	}
	if got := toSQLiteVal(int64(3)); got != int64(3) {
		t.Fatalf("toSQLiteVal(int64) = %v", got)
	}
	if got := toSQLiteVal(nil); got != nil {
		t.Fatalf("toSQLiteVal(nil) = %v", got)
	}
	if got := quoteFQN("main.emp"); got != `"main"."emp"` {
		t.Fatalf("quoteFQN = %s", got)
	}
}
