package builtin

import (
	"sort"

	"hrpipe/internal/frame"
)

// Rank assigns standard competition ranks ("1224" ranking) of Src into Dst.
//
// With Descending set, the largest value gets rank 1. Tied values share the
// lowest rank of their group, and the next distinct value's rank is one plus
// the number of rows ahead of it: salaries 900, 800, 800, 700 rank 1, 2, 2, 4.
// Missing values get a missing rank and are not counted.
//
// Dst is an int column, or a float column when some rank is missing.
type Rank struct {
	Src        string
	Dst        string
	Descending bool
}

func (Rank) Name() string { return "rank" }

func (rk Rank) Apply(in frame.Frame) (frame.Frame, error) {
	vals, present, err := in.Floats(rk.Src)
	if err != nil {
		return frame.Frame{}, err
	}

	idx := make([]int, 0, len(vals))
	for i := range vals {
		if present[i] {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		if rk.Descending {
			return vals[idx[a]] > vals[idx[b]]
		}
		return vals[idx[a]] < vals[idx[b]]
	})

	ranks := make([]int64, len(vals))
	for pos, i := range idx {
		if pos > 0 && vals[idx[pos-1]] == vals[i] {
			ranks[i] = ranks[idx[pos-1]]
			continue
		}
		ranks[i] = int64(pos + 1)
	}

	kind := frame.KindInt
	if len(idx) < len(vals) {
		kind = frame.KindFloat
	}
	out := in.WithColumn(rk.Dst, kind)
	for i, r := range out.Rows {
		switch {
		case !present[i]:
			r[rk.Dst] = nil
		case kind == frame.KindFloat:
			r[rk.Dst] = float64(ranks[i])
		default:
			r[rk.Dst] = ranks[i]
		}
	}
	return out, nil
}
