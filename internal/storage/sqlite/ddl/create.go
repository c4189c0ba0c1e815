package ddl

import (
	"context"

	gddl "hrpipe/internal/ddl"
	"hrpipe/internal/storage"
)

// Dialect renders double-quoted identifiers and CREATE TABLE IF NOT EXISTS.
var Dialect = gddl.Dialect{Name: "sqlite ddl", Quote: gddl.DoubleQuote, IfNotExists: true}

// BuildCreateTableSQL returns a SQLite CREATE TABLE IF NOT EXISTS statement
// for t. Dotted names ("main.events") are quoted per segment.
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
