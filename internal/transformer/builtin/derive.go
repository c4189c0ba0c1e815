package builtin

import (
	"hrpipe/internal/frame"
)

// Scale writes Src × Factor into Dst as a float column. Missing Src cells
// yield missing Dst cells.
type Scale struct {
	Src    string
	Dst    string
	Factor float64
}

func (Scale) Name() string { return "scale" }

func (s Scale) Apply(in frame.Frame) (frame.Frame, error) {
	vals, present, err := in.Floats(s.Src)
	if err != nil {
		return frame.Frame{}, err
	}
	out := in.WithColumn(s.Dst, frame.KindFloat)
	for i, r := range out.Rows {
		if present[i] {
			r[s.Dst] = vals[i] * s.Factor
		} else {
			r[s.Dst] = nil
		}
	}
	return out, nil
}

// Add writes Left + Right into Dst as a float column. A missing operand
// yields a missing result.
type Add struct {
	Left  string
	Right string
	Dst   string
}

func (Add) Name() string { return "add" }

func (a Add) Apply(in frame.Frame) (frame.Frame, error) {
	lv, lp, err := in.Floats(a.Left)
	if err != nil {
		return frame.Frame{}, err
	}
	rv, rp, err := in.Floats(a.Right)
	if err != nil {
		return frame.Frame{}, err
	}
	out := in.WithColumn(a.Dst, frame.KindFloat)
	for i, r := range out.Rows {
		if lp[i] && rp[i] {
			r[a.Dst] = lv[i] + rv[i]
		} else {
			r[a.Dst] = nil
		}
	}
	return out, nil
}
