// Package ddl contains SQLite-specific helpers for generating and applying
// DDL for the exported employee table.
package ddl

import "strings"

// MapType maps a frame column kind ("int", "float", "date", "string") to a
// SQLite column affinity. Dates are stored as ISO-8601 TEXT.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int":
		return "INTEGER"
	case "float":
		return "REAL"
	default:
		return "TEXT"
	}
}
