package builtin

import (
	"hrpipe/internal/frame"
	"hrpipe/pkg/records"
)

// FilterLess keeps rows whose Column value is strictly less than Limit. Rows
// with a missing value are dropped.
type FilterLess struct {
	Column string
	Limit  float64
}

func (FilterLess) Name() string { return "filter_less" }

func (f FilterLess) Apply(in frame.Frame) (frame.Frame, error) {
	vals, present, err := in.Floats(f.Column)
	if err != nil {
		return frame.Frame{}, err
	}
	return in.Filter(func(i int, _ records.Record) bool {
		return present[i] && vals[i] < f.Limit
	}), nil
}

// Where keeps rows for which Keep returns true. It is the escape hatch for
// predicates that span several columns.
type Where struct {
	Label   string
	Columns []string
	Keep    func(r records.Record) bool
}

func (w Where) Name() string { return w.Label }

func (w Where) Apply(in frame.Frame) (frame.Frame, error) {
	if err := in.Require(w.Columns...); err != nil {
		return frame.Frame{}, err
	}
	return in.Filter(func(_ int, r records.Record) bool { return w.Keep(r) }), nil
}
