package ddl

// ColumnDef describes a single column in a table definition. Name is
// unquoted; quoting happens at render time.
type ColumnDef struct {
	Name       string
	SQLType    string
	Nullable   bool
	PrimaryKey bool
}

// TableDef holds the table name in dotted form (e.g., "schema.table") and an
// ordered list of columns.
type TableDef struct {
	FQN     string
	Columns []ColumnDef
}

// LogicalColumn pairs a column name with a backend-neutral type name ("int",
// "float", "date" or "string"). PrimaryKey marks the column as part of the
// table's key.
type LogicalColumn struct {
	Name       string
	Type       string
	PrimaryKey bool
}
