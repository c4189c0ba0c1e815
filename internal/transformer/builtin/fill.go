package builtin

import (
	"hrpipe/internal/frame"
)

// FillMean replaces missing cells in Column with the arithmetic mean of the
// present cells. The mean is computed once, before any cell is filled. A
// column that is absent, or has no present values, is returned unchanged.
type FillMean struct {
	Column string
}

func (FillMean) Name() string { return "fill_mean" }

func (f FillMean) Apply(in frame.Frame) (frame.Frame, error) {
	if !in.Has(f.Column) {
		return in.Clone(), nil
	}
	mean, ok, err := Mean(in, f.Column)
	if err != nil {
		return frame.Frame{}, err
	}
	out := in.Clone()
	if !ok {
		return out, nil
	}
	filled := false
	for _, r := range out.Rows {
		if r[f.Column] == nil {
			r[f.Column] = mean
			filled = true
		}
	}
	if filled {
		out.Kinds[f.Column] = frame.KindFloat
	}
	return out, nil
}

// Mean returns the mean of the present values in col. ok is false when no
// value is present.
func Mean(in frame.Frame, col string) (mean float64, ok bool, err error) {
	vals, present, err := in.Floats(col)
	if err != nil {
		return 0, false, err
	}
	var sum float64
	n := 0
	for i, v := range vals {
		if present[i] {
			sum += v
			n++
		}
	}
	if n == 0 {
		return 0, false, nil
	}
	return sum / float64(n), true, nil
}
