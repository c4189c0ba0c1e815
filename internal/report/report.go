// Package report prints the pipeline's console summary: the aggregate views,
// the high-salary view, the pivot table and the head of the final table, in
// that order, each under a fixed header and rendered with go-pretty.
package report

import (
	"fmt"
	"io"
	"math"

	"github.com/jedib0t/go-pretty/v6/table"

	"hrpipe/internal/aggregate"
	"hrpipe/internal/frame"
	"hrpipe/internal/pipeline"
)

// Section headers, in print order.
const (
	HeaderMeanSalary = "--- Average Salary per Department ---"
	HeaderCount      = "--- Employee Count per Department ---"
	HeaderMeanMax    = "--- Multi-Aggregation (Mean & Max Salary) ---"
	HeaderHighSalary = "--- IT Employees with Salary > Average ---"
	HeaderPivot      = "--- Pivot Table (Average Salary by Department) ---"
	HeaderHead       = "--- Top 5 Employees After Cleaning & Transformation ---"
)

// Write renders res to w. topN rows of the final table are shown.
func Write(w io.Writer, res pipeline.Result, topN int) error {
	sections := []struct {
		header string
		render func(io.Writer)
	}{
		{HeaderMeanSalary, func(w io.Writer) { renderSeries(w, res.MeanByDepartment, false) }},
		{HeaderCount, func(w io.Writer) { renderSeries(w, res.CountByDepartment, true) }},
		{HeaderMeanMax, func(w io.Writer) { renderTable(w, res.MeanMaxByDepartment) }},
		{HeaderHighSalary, func(w io.Writer) { renderFrame(w, res.HighSalary) }},
		{HeaderPivot, func(w io.Writer) { renderTable(w, res.Pivot) }},
		{HeaderHead, func(w io.Writer) { renderFrame(w, res.Final.Head(topN)) }},
	}
	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, s.header); err != nil {
			return err
		}
		s.render(w)
	}
	return nil
}

func newWriter(w io.Writer) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	return t
}

// renderSeries prints one row per group. Counts are printed as integers.
func renderSeries(w io.Writer, s aggregate.Series, count bool) {
	t := newWriter(w)
	t.AppendHeader(table.Row{s.Index, s.Name})
	for i, k := range s.Keys {
		v := formatNumber(s.Values[i])
		if count {
			v = fmt.Sprintf("%d", int64(s.Values[i]))
		}
		t.AppendRow(table.Row{k, v})
	}
	t.Render()
}

func renderTable(w io.Writer, tb aggregate.Table) {
	t := newWriter(w)
	header := table.Row{tb.Index}
	for _, c := range tb.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for i, k := range tb.Keys {
		row := table.Row{k}
		for _, v := range tb.Rows[i] {
			row = append(row, formatNumber(v))
		}
		t.AppendRow(row)
	}
	t.Render()
}

// renderFrame prints f with a leading positional index column. An empty
// frame prints its columns and a row count of zero.
func renderFrame(w io.Writer, f frame.Frame) {
	t := newWriter(w)
	header := table.Row{""}
	for _, c := range f.Columns {
		header = append(header, c)
	}
	t.AppendHeader(header)
	for i, r := range f.Rows {
		row := table.Row{i}
		for _, c := range f.Columns {
			row = append(row, formatCell(r[c]))
		}
		t.AppendRow(row)
	}
	t.Render()
	if f.Len() == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
	}
}

func formatNumber(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return frame.FormatFloat(v)
}

func formatCell(v any) string {
	if v == nil {
		return "NaN"
	}
	return frame.FormatValue(v)
}
