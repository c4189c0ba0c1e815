package csv

import (
	"encoding/csv"
	"fmt"
	"io"

	"hrpipe/internal/frame"
)

// Write renders f as CSV: a header row with f.Columns followed by one line per
// row. No row-index column is emitted. comma defaults to ','.
func Write(w io.Writer, f frame.Frame, comma rune) error {
	cw := csv.NewWriter(w)
	if comma != 0 {
		cw.Comma = comma
	}
	if err := cw.Write(f.Columns); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	line := make([]string, len(f.Columns))
	for i, r := range f.Rows {
		for j, c := range f.Columns {
			line[j] = frame.FormatValue(r[c])
		}
		if err := cw.Write(line); err != nil {
			return fmt.Errorf("write csv row %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
