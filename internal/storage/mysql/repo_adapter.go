// This adapter wires the MySQL backend into the storage factory.
package mysql

import (
	"context"
	"fmt"

	gddl "hrpipe/internal/ddl"
	"hrpipe/internal/storage"
	myddl "hrpipe/internal/storage/mysql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

// init registers the "mysql" backend and its DDL bootstrapper.
func init() {
	storage.Register("mysql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("mysql",
		func(ctx context.Context, repo storage.Repository, table string, cols []gddl.LogicalColumn) error {
			td, err := gddl.Infer(table, cols, myddl.MapType)
			if err != nil {
				return fmt.Errorf("infer table definition: %w", err)
			}
			return myddl.EnsureTable(ctx, repo, td)
		})
}

// wrappedRepo adapts *mysql.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

// Close closes the underlying connection pool.
func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}
