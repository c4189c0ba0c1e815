package ddl

import (
	"context"

	gddl "hrpipe/internal/ddl"
	"hrpipe/internal/storage"
)

// EnsureTable creates the target SQL Server table if it does not already
// exist. The generated script is guarded, so repeated calls are safe.
func EnsureTable(ctx context.Context, repo storage.Repository, def gddl.TableDef) error {
	sql, err := BuildCreateTableSQL(def)
	if err != nil {
		return err
	}
	return repo.Exec(ctx, sql)
}
