package ddl

import (
	"fmt"
	"strings"
)

// Infer derives a TableDef for table from logical column types. mapType
// turns each logical type into the backend's SQL type. Key columns are NOT
// NULL; every other column is nullable since the exported table may carry
// missing cells anywhere else.
func Infer(table string, cols []LogicalColumn, mapType func(string) string) (TableDef, error) {
	if strings.TrimSpace(table) == "" {
		return TableDef{}, fmt.Errorf("ddl: missing table")
	}
	if len(cols) == 0 {
		return TableDef{}, fmt.Errorf("ddl: table %s has no columns", table)
	}
	defs := make([]ColumnDef, 0, len(cols))
	for _, c := range cols {
		defs = append(defs, ColumnDef{
			Name:       c.Name,
			SQLType:    mapType(c.Type),
			Nullable:   !c.PrimaryKey,
			PrimaryKey: c.PrimaryKey,
		})
	}
	return TableDef{FQN: table, Columns: defs}, nil
}
