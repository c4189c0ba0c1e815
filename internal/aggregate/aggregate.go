// Package aggregate computes read-only grouped views of a frame: per-group
// reductions of one column and a pivot table.
//
// Group keys are the formatted values of the grouping column. Rows whose key
// is missing are left out, and keys come back sorted ascending. A group with
// no present values reduces to NaN (count reduces to 0).
package aggregate

import (
	"fmt"
	"math"
	"sort"

	"hrpipe/internal/frame"
)

// Func names a reduction.
type Func string

const (
	Mean  Func = "mean"
	Max   Func = "max"
	Count Func = "count"
)

// Series is a single reduced column indexed by group key.
type Series struct {
	Index  string // grouping column
	Name   string // reduced column
	Func   Func
	Keys   []string
	Values []float64
}

// Get returns the value for key.
func (s Series) Get(key string) (float64, bool) {
	for i, k := range s.Keys {
		if k == key {
			return s.Values[i], true
		}
	}
	return 0, false
}

// Table is a multi-column view indexed by group key. Rows[i][j] is the value
// of Columns[j] for Keys[i].
type Table struct {
	Index   string
	Columns []string
	Keys    []string
	Rows    [][]float64
}

// Get returns the cell for key and column.
func (t Table) Get(key, column string) (float64, bool) {
	ci := -1
	for j, c := range t.Columns {
		if c == column {
			ci = j
		}
	}
	if ci < 0 {
		return 0, false
	}
	for i, k := range t.Keys {
		if k == key {
			return t.Rows[i][ci], true
		}
	}
	return 0, false
}

// groups holds, for each key in sorted order, the values of the reduced
// column and whether each is present.
type groups struct {
	keys    []string
	values  map[string][]float64
	present map[string][]bool
}

func groupBy(f frame.Frame, by, col string) (groups, error) {
	if err := f.Require(by, col); err != nil {
		return groups{}, err
	}
	g := groups{values: map[string][]float64{}, present: map[string][]bool{}}
	for _, r := range f.Rows {
		kv := r[by]
		if kv == nil {
			continue
		}
		key := frame.FormatValue(kv)
		x, ok, numeric := frame.ToFloat(r[col])
		if !numeric {
			// Non-numeric cells are present for count and rejected by
			// every other reduction.
			x, ok = math.NaN(), true
		}
		if _, seen := g.values[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.values[key] = append(g.values[key], x)
		g.present[key] = append(g.present[key], ok)
	}
	sort.Strings(g.keys)
	return g, nil
}

func reduce(fn Func, vals []float64, present []bool) (float64, error) {
	n := 0
	var acc float64
	for i, v := range vals {
		if !present[i] {
			continue
		}
		if fn != Count && math.IsNaN(v) {
			return 0, fmt.Errorf("%s over non-numeric values", fn)
		}
		switch {
		case n == 0 && fn == Max:
			acc = v
		case fn == Max:
			acc = math.Max(acc, v)
		case fn == Mean:
			acc += v
		}
		n++
	}
	switch fn {
	case Count:
		return float64(n), nil
	case Mean:
		if n == 0 {
			return math.NaN(), nil
		}
		return acc / float64(n), nil
	case Max:
		if n == 0 {
			return math.NaN(), nil
		}
		return acc, nil
	default:
		return 0, fmt.Errorf("unknown aggregate %q", fn)
	}
}

// GroupBy reduces col per distinct value of by.
func GroupBy(f frame.Frame, by, col string, fn Func) (Series, error) {
	g, err := groupBy(f, by, col)
	if err != nil {
		return Series{}, err
	}
	s := Series{Index: by, Name: col, Func: fn, Keys: g.keys, Values: make([]float64, len(g.keys))}
	for i, k := range g.keys {
		v, err := reduce(fn, g.values[k], g.present[k])
		if err != nil {
			return Series{}, fmt.Errorf("column %q group %q: %w", col, k, err)
		}
		s.Values[i] = v
	}
	return s, nil
}

// GroupByMulti applies several reductions of col per distinct value of by.
// Columns are named after the reductions.
func GroupByMulti(f frame.Frame, by, col string, fns ...Func) (Table, error) {
	g, err := groupBy(f, by, col)
	if err != nil {
		return Table{}, err
	}
	t := Table{Index: by, Keys: g.keys, Rows: make([][]float64, len(g.keys))}
	for _, fn := range fns {
		t.Columns = append(t.Columns, string(fn))
	}
	for i, k := range g.keys {
		row := make([]float64, len(fns))
		for j, fn := range fns {
			v, err := reduce(fn, g.values[k], g.present[k])
			if err != nil {
				return Table{}, fmt.Errorf("column %q group %q: %w", col, k, err)
			}
			row[j] = v
		}
		t.Rows[i] = row
	}
	return t, nil
}

// Pivot reshapes f so each distinct value of index becomes a row label and
// the reduction of values is the single column. Rows whose reduction is NaN
// are dropped.
func Pivot(f frame.Frame, index, values string, fn Func) (Table, error) {
	s, err := GroupBy(f, index, values, fn)
	if err != nil {
		return Table{}, err
	}
	t := Table{Index: index, Columns: []string{values}}
	for i, k := range s.Keys {
		if math.IsNaN(s.Values[i]) {
			continue
		}
		t.Keys = append(t.Keys, k)
		t.Rows = append(t.Rows, []float64{s.Values[i]})
	}
	return t, nil
}
