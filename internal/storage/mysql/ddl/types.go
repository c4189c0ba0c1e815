// Package ddl contains MySQL-specific helpers for generating and applying
// DDL for the exported employee table.
package ddl

import "strings"

// MapType maps a frame column kind ("int", "float", "date", "string") to a
// MySQL column type. Anything else is stored as TEXT.
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int":
		return "BIGINT"
	case "float":
		return "DOUBLE"
	case "date":
		return "DATE"
	default:
		return "TEXT"
	}
}
