// Package ddl contains SQL Server-specific helpers for generating and applying
// DDL for the exported employee table.
package ddl

import "strings"

// MapType maps a frame column kind ("int", "float", "date", "string") to a
// SQL Server column type. Anything else is stored as NVARCHAR(MAX).
func MapType(kind string) string {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "int":
		return "BIGINT"
	case "float":
		return "FLOAT"
	case "date":
		return "DATE"
	default:
		return "NVARCHAR(MAX)"
	}
}
