// Package records defines the row type shared by the parser, transformers,
// and storage layers.
package records

// Record is a single row keyed by column name. A nil value means the cell is
// missing.
type Record map[string]any

// Clone returns a shallow copy of r. Values are scalars (string, int64,
// float64, time.Time) so a shallow copy is enough to detach rows.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
