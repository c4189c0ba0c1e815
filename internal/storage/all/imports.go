// Package all wires every built-in storage backend into the storage factory.
//
// Importing it for side effects runs each backend's init, which registers a
// factory and a DDL bootstrapper for "mssql", "mysql", "postgres" and
// "sqlite":
//
//	import _ "hrpipe/internal/storage/all"
package all

import (
	_ "hrpipe/internal/storage/mssql"
	_ "hrpipe/internal/storage/mysql"
	_ "hrpipe/internal/storage/postgres"
	_ "hrpipe/internal/storage/sqlite"
)
