package ddl

import (
	"context"
	"strings"

	gddl "hrpipe/internal/ddl"
	"hrpipe/internal/storage"
)

// Dialect renders backtick-quoted identifiers and CREATE TABLE IF NOT EXISTS.
var Dialect = gddl.Dialect{Name: "mysql ddl", Quote: quoteIdent, IfNotExists: true}

// BuildCreateTableSQL returns a MySQL CREATE TABLE IF NOT EXISTS statement
// for t.
func BuildCreateTableSQL(t gddl.TableDef) (string, error) {
	return gddl.Render(t, Dialect)
}

// EnsureTable creates the table described by def if it does not exist.
func EnsureTable(ctx context.Context, repo storage.Repository, def gddl.TableDef) error {
	sql, err := BuildCreateTableSQL(def)
	if err != nil {
		return err
	}
	return repo.Exec(ctx, sql)
}

func quoteIdent(id string) string {
	return "`" + strings.ReplaceAll(id, "`", "``") + "`"
}
