package storage

import (
	"context"
	"fmt"
	"sync"

	"hrpipe/internal/ddl"
)

// DDLBootstrapper is a backend-specific function that maps logical columns to
// a table definition and applies it via repo.Exec (CREATE TABLE IF NOT
// EXISTS or the backend's equivalent).
type DDLBootstrapper func(ctx context.Context, repo Repository, table string, cols []ddl.LogicalColumn) error

var (
	ddlMu  sync.RWMutex
	ddlFns = map[string]DDLBootstrapper{}
)

// RegisterDDL registers (or replaces) a DDLBootstrapper for kind. It is
// typically called from backend packages' init functions.
func RegisterDDL(kind string, fn DDLBootstrapper) {
	ddlMu.Lock()
	defer ddlMu.Unlock()
	ddlFns[kind] = fn
}

// EnsureTable creates table on repo if it does not exist, using the
// bootstrapper registered for kind.
func EnsureTable(ctx context.Context, kind string, repo Repository, table string, cols []ddl.LogicalColumn) error {
	ddlMu.RLock()
	fn, ok := ddlFns[kind]
	ddlMu.RUnlock()
	if !ok {
		return fmt.Errorf("no DDL bootstrapper registered for storage.kind=%q", kind)
	}
	return fn(ctx, repo, table, cols)
}
