package builtin

import (
	"hrpipe/internal/frame"
	"hrpipe/pkg/records"
)

// employees builds a frame with the usual id/name/department/salary columns.
// A nil salary marks a missing value.
func employees(rows ...records.Record) frame.Frame {
	f := frame.New(
		[]string{"id", "name", "department", "salary"},
		map[string]frame.Kind{"id": frame.KindInt, "salary": frame.KindFloat},
	)
	f.Rows = rows
	return f
}

func emp(id int64, name, dept string, salary any) records.Record {
	return records.Record{"id": id, "name": name, "department": dept, "salary": salary}
}

func column(f frame.Frame, col string) []any {
	out := make([]any, len(f.Rows))
	for i, r := range f.Rows {
		out[i] = r[col]
	}
	return out
}
