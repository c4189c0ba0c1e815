// This adapter wires the MSSQL backend into the storage factory.
package mssql

import (
	"context"
	"fmt"

	gddl "hrpipe/internal/ddl"
	"hrpipe/internal/storage"
	msddl "hrpipe/internal/storage/mssql/ddl"
)

// newRepository is a test hook that points to NewRepository by default.
// Tests may replace this variable to avoid real DB connections.
var newRepository = NewRepository

var _ storage.Repository = (*wrappedRepo)(nil)

func init() {
	storage.Register("mssql", func(ctx context.Context, cfg storage.Config) (storage.Repository, error) {
		r, closeFn, err := newRepository(ctx, Config{DSN: cfg.DSN, Table: cfg.Table})
		if err != nil {
			return nil, err
		}
		return &wrappedRepo{Repository: r, closeFn: closeFn}, nil
	})

	storage.RegisterDDL("mssql",
		func(ctx context.Context, repo storage.Repository, table string, cols []gddl.LogicalColumn) error {
			td, err := gddl.Infer(table, cols, msddl.MapType)
			if err != nil {
				return fmt.Errorf("infer table definition: %w", err)
			}
			return msddl.EnsureTable(ctx, repo, td)
		})
}

// wrappedRepo adapts *mssql.Repository to storage.Repository and provides Close.
type wrappedRepo struct {
	*Repository
	closeFn func()
}

func (w *wrappedRepo) Close() {
	if w.closeFn != nil {
		w.closeFn()
	}
}
