// Package frame implements the in-memory Record Table the pipeline operates
// on: an ordered list of columns, a value kind per column, and the rows.
//
// Missing cells are stored as nil. Present cells hold one of:
//
//   - string    (KindString)
//   - int64     (KindInt)
//   - float64   (KindFloat)
//   - time.Time (KindTime)
//
// Frames are treated as values. Operations that change rows or columns
// return a new Frame and leave the receiver untouched, so a stage's input is
// still valid after the stage ran.
package frame

import (
	"fmt"

	"hrpipe/pkg/records"
)

// Kind is the logical value type of a column.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "date"
	default:
		return "string"
	}
}

// MissingColumnError reports an operation referencing a column the frame does
// not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

// NotNumericError reports a non-numeric value in a column that an operation
// needs to treat as a number.
type NotNumericError struct {
	Column string
	Row    int
	Value  any
}

func (e *NotNumericError) Error() string {
	return fmt.Sprintf("column %q row %d: value %v is not numeric", e.Column, e.Row, e.Value)
}

// Frame is an ordered, in-memory table.
type Frame struct {
	Columns []string
	Kinds   map[string]Kind
	Rows    []records.Record
}

// New returns an empty frame with the given columns. Columns without an entry
// in kinds default to KindString.
func New(columns []string, kinds map[string]Kind) Frame {
	f := Frame{
		Columns: append([]string(nil), columns...),
		Kinds:   make(map[string]Kind, len(columns)),
	}
	for _, c := range columns {
		f.Kinds[c] = kinds[c]
	}
	return f
}

// Len returns the number of rows.
func (f Frame) Len() int { return len(f.Rows) }

// Has reports whether the frame has column col.
func (f Frame) Has(col string) bool {
	for _, c := range f.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Kind returns the kind of col (KindString when unknown).
func (f Frame) Kind(col string) Kind { return f.Kinds[col] }

// Require returns a *MissingColumnError for the first absent column.
func (f Frame) Require(cols ...string) error {
	for _, c := range cols {
		if !f.Has(c) {
			return &MissingColumnError{Column: c}
		}
	}
	return nil
}

// Clone returns a deep copy of f; rows are detached from the receiver.
func (f Frame) Clone() Frame {
	out := f.cloneSchema()
	out.Rows = make([]records.Record, len(f.Rows))
	for i, r := range f.Rows {
		out.Rows[i] = r.Clone()
	}
	return out
}

func (f Frame) cloneSchema() Frame {
	out := Frame{
		Columns: append([]string(nil), f.Columns...),
		Kinds:   make(map[string]Kind, len(f.Kinds)),
	}
	for k, v := range f.Kinds {
		out.Kinds[k] = v
	}
	return out
}

// WithColumn returns a deep copy of f that has column col of kind k. If the
// column already exists its position is kept and only the kind is updated.
func (f Frame) WithColumn(col string, k Kind) Frame {
	out := f.Clone()
	if !out.Has(col) {
		out.Columns = append(out.Columns, col)
	}
	out.Kinds[col] = k
	return out
}

// Filter returns a copy of f holding only the rows for which keep returns
// true, in their original order.
func (f Frame) Filter(keep func(i int, r records.Record) bool) Frame {
	out := f.cloneSchema()
	out.Rows = make([]records.Record, 0, len(f.Rows))
	for i, r := range f.Rows {
		if keep(i, r) {
			out.Rows = append(out.Rows, r.Clone())
		}
	}
	return out
}

// Head returns a copy of the first n rows.
func (f Frame) Head(n int) Frame {
	return f.Filter(func(i int, _ records.Record) bool { return i < n })
}

// Floats returns the numeric view of col: values[i] is row i's value and
// present[i] is false for missing cells. Non-numeric cells yield a
// *NotNumericError.
func (f Frame) Floats(col string) (values []float64, present []bool, err error) {
	if err := f.Require(col); err != nil {
		return nil, nil, err
	}
	values = make([]float64, len(f.Rows))
	present = make([]bool, len(f.Rows))
	for i, r := range f.Rows {
		v, ok, isNum := ToFloat(r[col])
		if !isNum {
			return nil, nil, &NotNumericError{Column: col, Row: i, Value: r[col]}
		}
		values[i], present[i] = v, ok
	}
	return values, present, nil
}

// ToFloat converts a cell to float64. present is false for nil; numeric is
// false when the cell holds a value that is not a number.
func ToFloat(v any) (x float64, present bool, numeric bool) {
	switch t := v.(type) {
	case nil:
		return 0, false, true
	case float64:
		return t, true, true
	case int64:
		return float64(t), true, true
	case int:
		return float64(t), true, true
	default:
		return 0, false, false
	}
}
