package ddl

import (
	"context"
	"errors"
	"strings"
	"testing"

	gddl "hrpipe/internal/ddl"
	"hrpipe/internal/storage"
)

func employeeDef(t *testing.T, table string) gddl.TableDef {
	t.Helper()
	def, err := gddl.Infer(table, []gddl.LogicalColumn{
		{Name: "id", Type: "int", PrimaryKey: true},
		{Name: "name", Type: "string"},
		{Name: "salary", Type: "float"},
		{Name: "rank", Type: "int"},
		{Name: "join_date", Type: "date"},
	}, MapType)
	if err != nil {
		t.Fatalf("Infer() error = %v", err)
	}
	return def
}

func TestBuildCreateTableSQL_Employees(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL(employeeDef(t, "hr.employees"))
	if err != nil {
		t.Fatalf("BuildCreateTableSQL() error = %v", err)
	}
	want := `CREATE TABLE IF NOT EXISTS "hr"."employees" (` + "\n" +
		`  "id" BIGINT NOT NULL,` + "\n" +
		`  "name" TEXT,` + "\n" +
		`  "salary" DOUBLE PRECISION,` + "\n" +
		`  "rank" BIGINT,` + "\n" +
		`  "join_date" DATE,` + "\n" +
		`  PRIMARY KEY ("id")` + "\n" +
		`);`
	if got != want {
		t.Fatalf("BuildCreateTableSQL() =\n%s\nwant:\n%s", got, want)
	}
}

func TestBuildCreateTableSQL_Errors(t *testing.T) {
	t.Parallel()

	_, err := BuildCreateTableSQL(gddl.TableDef{FQN: "employees"})
	if err == nil || !strings.HasPrefix(err.Error(), "postgres ddl:") {
		t.Fatalf("BuildCreateTableSQL(no columns) error = %v, want postgres ddl prefix", err)
	}
}

type fakeRepository struct {
	storage.Repository
	execs []string
	err   error
}

func (f *fakeRepository) Exec(_ context.Context, sql string) error {
	f.execs = append(f.execs, sql)
	return f.err
}

func TestEnsureTable(t *testing.T) {
	t.Parallel()

	repo := &fakeRepository{}
	if err := EnsureTable(context.Background(), repo, employeeDef(t, "employees")); err != nil {
		t.Fatalf("EnsureTable() error = %v", err)
	}
	if len(repo.execs) != 1 || !strings.HasPrefix(repo.execs[0], `CREATE TABLE IF NOT EXISTS "employees"`) {
		t.Fatalf("execs = %q", repo.execs)
	}

	boom := errors.New("permission denied")
	repo = &fakeRepository{err: boom}
	if err := EnsureTable(context.Background(), repo, employeeDef(t, "employees")); !errors.Is(err, boom) {
		t.Fatalf("EnsureTable() error = %v, want %v", err, boom)
	}

	repo = &fakeRepository{}
	if err := EnsureTable(context.Background(), repo, gddl.TableDef{}); err == nil || len(repo.execs) != 0 {
		t.Fatalf("EnsureTable(invalid) err=%v execs=%d", err, len(repo.execs))
	}
}
