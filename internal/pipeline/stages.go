package pipeline

import (
	"fmt"
	"math"
	"time"

	"hrpipe/internal/aggregate"
	"hrpipe/internal/config"
	"hrpipe/internal/frame"
	"hrpipe/internal/transformer"
	"hrpipe/internal/transformer/builtin"
	"hrpipe/pkg/records"
)

// Columns of the employee table, as read and as derived.
const (
	ColID               = "id"
	ColName             = "name"
	ColDepartment       = "department"
	ColSalary           = "salary"
	ColBonus            = "bonus"
	ColSalaryAfterBonus = "salary_after_bonus"
	ColSalaryRank       = "salary_rank"
	ColExtraBonus       = "extra_bonus"
	ColJoinDate         = "join_date"
	ColJoinYear         = "join_year"
	ColJoinMonth        = "join_month"
)

// Aggregates are the grouped views computed after Transform.
type Aggregates struct {
	MeanByDepartment    aggregate.Series
	CountByDepartment   aggregate.Series
	MeanMaxByDepartment aggregate.Table
}

// Clean fills missing salaries with the mean of the present ones, drops
// exact-duplicate rows keeping the first, trims names and normalizes
// departments to trimmed upper case.
func Clean(in frame.Frame) (frame.Frame, error) {
	var chain transformer.Chain
	if in.Has(ColSalary) {
		chain = append(chain, builtin.FillMean{Column: ColSalary})
	}
	chain = append(chain,
		builtin.DropDuplicates{},
		builtin.TrimSpace{Columns: []string{ColName, ColDepartment}},
		builtin.Upper{Columns: []string{ColDepartment}},
	)
	out, err := chain.Apply(in)
	if err != nil {
		return frame.Frame{}, classify("clean", err)
	}
	return out, nil
}

// Transform derives bonus, salary_after_bonus and salary_rank, and returns
// the mean salary together with the high-salary view: rows of
// st.HighSalaryDepartment earning more than that mean. The view is a copy;
// later stages do not change it.
func Transform(in frame.Frame, st config.Stages) (out frame.Frame, avg float64, high frame.Frame, err error) {
	chain := transformer.Chain{
		builtin.Scale{Src: ColSalary, Dst: ColBonus, Factor: st.BonusRate},
		builtin.Add{Left: ColSalary, Right: ColBonus, Dst: ColSalaryAfterBonus},
		builtin.Rank{Src: ColSalary, Dst: ColSalaryRank, Descending: true},
	}
	if out, err = chain.Apply(in); err != nil {
		return frame.Frame{}, 0, frame.Frame{}, classify("transform", err)
	}

	mean, ok, err := builtin.Mean(out, ColSalary)
	if err != nil {
		return frame.Frame{}, 0, frame.Frame{}, classify("transform", err)
	}
	avg = math.NaN()
	if ok {
		avg = mean
	}

	view := builtin.Where{
		Label:   "high_salary",
		Columns: []string{ColDepartment, ColSalary},
		Keep: func(r records.Record) bool {
			s, present, _ := frame.ToFloat(r[ColSalary])
			return r[ColDepartment] == st.HighSalaryDepartment && present && s > avg
		},
	}
	if high, err = view.Apply(out); err != nil {
		return frame.Frame{}, 0, frame.Frame{}, classify("transform", err)
	}
	return out, avg, high, nil
}

// Aggregate computes per-department mean salary, count of ids, and mean and
// max salary.
func Aggregate(in frame.Frame) (Aggregates, error) {
	var (
		a   Aggregates
		err error
	)
	if a.MeanByDepartment, err = aggregate.GroupBy(in, ColDepartment, ColSalary, aggregate.Mean); err != nil {
		return Aggregates{}, classify("aggregate", err)
	}
	if a.CountByDepartment, err = aggregate.GroupBy(in, ColDepartment, ColID, aggregate.Count); err != nil {
		return Aggregates{}, classify("aggregate", err)
	}
	if a.MeanMaxByDepartment, err = aggregate.GroupByMulti(in, ColDepartment, ColSalary, aggregate.Mean, aggregate.Max); err != nil {
		return Aggregates{}, classify("aggregate", err)
	}
	return a, nil
}

// Pivot returns the department-indexed table of mean salary.
func Pivot(in frame.Frame) (aggregate.Table, error) {
	t, err := aggregate.Pivot(in, ColDepartment, ColSalary, aggregate.Mean)
	if err != nil {
		return aggregate.Table{}, classify("pivot", err)
	}
	return t, nil
}

// SideFrame builds the side table joined by Merge.
func SideFrame(side []config.SideRow) frame.Frame {
	f := frame.New(
		[]string{ColID, ColExtraBonus},
		map[string]frame.Kind{ColID: frame.KindInt, ColExtraBonus: frame.KindInt},
	)
	f.Rows = make([]records.Record, len(side))
	for i, s := range side {
		f.Rows[i] = records.Record{ColID: s.ID, ColExtraBonus: s.ExtraBonus}
	}
	return f
}

// Merge left-joins the side table on id. Every row is kept; rows without a
// side entry get a missing extra_bonus.
func Merge(in frame.Frame, side []config.SideRow) (frame.Frame, error) {
	out, err := builtin.LeftJoin{On: ColID, Right: SideFrame(side)}.Apply(in)
	if err != nil {
		return frame.Frame{}, classify("merge", err)
	}
	return out, nil
}

// RemoveOutliers keeps rows whose salary is strictly below limit.
func RemoveOutliers(in frame.Frame, limit float64) (frame.Frame, error) {
	out, err := builtin.FilterLess{Column: ColSalary, Limit: limit}.Apply(in)
	if err != nil {
		return frame.Frame{}, classify("remove_outliers", err)
	}
	return out, nil
}

// DeriveDates assigns join_date on a month-end cadence starting in the month
// of start (config.DateLayout), plus join_year and join_month.
func DeriveDates(in frame.Frame, start string) (frame.Frame, error) {
	t0, err := time.Parse(config.DateLayout, start)
	if err != nil {
		return frame.Frame{}, fmt.Errorf("stage derive_dates: start date: %w", err)
	}
	return builtin.MonthEndDates{
		Start:    t0,
		DateCol:  ColJoinDate,
		YearCol:  ColJoinYear,
		MonthCol: ColJoinMonth,
	}.Apply(in)
}
