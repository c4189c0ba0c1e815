package mysql

import (
	"context"
	"testing"

	"hrpipe/internal/storage"
)

// TestMySQLRegistration swaps the newRepository hook, so it is not parallel.
func TestMySQLRegistration(t *testing.T) {
	orig := newRepository
	defer func() { newRepository = orig }()

	var gotCfg Config
	closed := false
	newRepository = func(ctx context.Context, cfg Config) (*Repository, func(), error) {
		gotCfg = cfg
		return &Repository{cfg: cfg}, func() { closed = true }, nil
	}

	repo, err := storage.New(context.Background(), storage.Config{
		Kind:  "mysql",
		DSN:   "u:p@tcp(localhost:3306)/hr",
		Table: "hr.employees",
	})
	if err != nil {
		t.Fatalf("storage.New error: %v", err)
	}
	if gotCfg.Table != "hr.employees" || gotCfg.DSN != "u:p@tcp(localhost:3306)/hr" {
		t.Errorf("hook cfg = %+v", gotCfg)
	}
	repo.Close()
	if !closed {
		t.Fatal("Close() did not invoke closeFn")
	}
}

func TestBuildInsert(t *testing.T) {
	t.Parallel()

	stmt, args := buildInsert("hr.employees", []string{"id", "name"}, [][]any{
		{int64(1), "a"},
		{int64(2), nil},
	})
	want := "INSERT INTO `hr`.`employees` (`id`, `name`) VALUES (?, ?), (?, ?)"
	if stmt != want {
		t.Fatalf("stmt = %q, want %q", stmt, want)
	}
	if len(args) != 4 || args[0] != int64(1) || args[3] != nil {
		t.Fatalf("args = %v", args)
	}
}

func TestChunkRows(t *testing.T) {
	t.Parallel()

	rows := make([][]any, 7)
	got := chunkRows(rows, 3)
	if len(got) != 3 || len(got[0]) != 3 || len(got[2]) != 1 {
		t.Fatalf("chunk sizes wrong: %d chunks", len(got))
	}
	if got := chunkRows(rows, 0); len(got) != 7 {
		t.Fatalf("size 0 chunks = %d, want 7", len(got))
	}
}

func TestNewRepository_Validation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	if _, _, err := NewRepository(ctx, Config{DSN: "u:p@tcp(localhost:3306)/hr"}); err == nil {
		t.Error("empty table: error = nil")
	}
	if _, _, err := NewRepository(ctx, Config{DSN: "not a dsn", Table: "t"}); err == nil {
		t.Error("bad dsn: error = nil")
	}
}
