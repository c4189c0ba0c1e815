package builtin

import (
	"fmt"

	"hrpipe/internal/frame"
	"hrpipe/pkg/records"
)

// LeftJoin merges Right into the input on column On. Every input row is kept
// in order; it is repeated once per matching Right row and kept once with
// missing Right columns when nothing matches.
//
// Keys match by numeric value when both sides are numbers (so int 1 matches
// float 1.0), otherwise by their formatted text. Missing keys never match.
// Right columns whose names clash with input columns get the suffixes "_x"
// (input) and "_y" (right).
type LeftJoin struct {
	On    string
	Right frame.Frame
}

func (LeftJoin) Name() string { return "left_join" }

func (j LeftJoin) Apply(in frame.Frame) (frame.Frame, error) {
	if err := in.Require(j.On); err != nil {
		return frame.Frame{}, err
	}
	if err := j.Right.Require(j.On); err != nil {
		return frame.Frame{}, fmt.Errorf("right side: %w", err)
	}

	// Output schema: left columns (renamed on clash), then right non-key
	// columns.
	leftName := make(map[string]string, len(in.Columns))
	rightName := make(map[string]string, len(j.Right.Columns))
	var rightCols []string
	for _, c := range j.Right.Columns {
		if c != j.On {
			rightCols = append(rightCols, c)
		}
	}
	for _, c := range in.Columns {
		leftName[c] = c
	}
	for _, c := range rightCols {
		rightName[c] = c
		if _, clash := leftName[c]; clash {
			leftName[c] = c + "_x"
			rightName[c] = c + "_y"
		}
	}

	cols := make([]string, 0, len(in.Columns)+len(rightCols))
	kinds := make(map[string]frame.Kind, cap(cols))
	for _, c := range in.Columns {
		cols = append(cols, leftName[c])
		kinds[leftName[c]] = in.Kind(c)
	}
	for _, c := range rightCols {
		cols = append(cols, rightName[c])
		kinds[rightName[c]] = j.Right.Kind(c)
	}

	index := make(map[string][]records.Record, len(j.Right.Rows))
	for _, r := range j.Right.Rows {
		if k, ok := joinKey(r[j.On]); ok {
			index[k] = append(index[k], r)
		}
	}

	out := frame.New(cols, kinds)
	out.Rows = make([]records.Record, 0, len(in.Rows))
	unmatched := false
	for _, l := range in.Rows {
		var matches []records.Record
		if k, ok := joinKey(l[j.On]); ok {
			matches = index[k]
		}
		if len(matches) == 0 {
			unmatched = true
			matches = []records.Record{nil}
		}
		for _, m := range matches {
			row := make(records.Record, len(cols))
			for _, c := range in.Columns {
				row[leftName[c]] = l[c]
			}
			for _, c := range rightCols {
				if m == nil {
					row[rightName[c]] = nil
				} else {
					row[rightName[c]] = m[c]
				}
			}
			out.Rows = append(out.Rows, row)
		}
	}

	if unmatched {
		for _, c := range rightCols {
			promoteIntColumn(out, rightName[c])
		}
	}
	return out, nil
}

// promoteIntColumn turns an int column that holds missing cells into a float
// column.
func promoteIntColumn(f frame.Frame, col string) {
	if f.Kind(col) != frame.KindInt {
		return
	}
	f.Kinds[col] = frame.KindFloat
	for _, r := range f.Rows {
		if n, ok := r[col].(int64); ok {
			r[col] = float64(n)
		}
	}
}

func joinKey(v any) (string, bool) {
	if v == nil {
		return "", false
	}
	if x, present, numeric := frame.ToFloat(v); numeric && present {
		return "n:" + frame.FormatFloat(x), true
	}
	return "s:" + frame.FormatValue(v), true
}
