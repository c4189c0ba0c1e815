package builtin

import (
	"time"

	"hrpipe/internal/frame"
)

// MonthEndDates assigns each row a synthetic date on a month-end cadence:
// row 0 gets the last day of Start's month, row 1 the last day of the next
// month, and so on in row order. YearCol and MonthCol, when set, receive the
// date's year and month (1-12).
type MonthEndDates struct {
	Start    time.Time
	DateCol  string
	YearCol  string
	MonthCol string
}

func (MonthEndDates) Name() string { return "month_end_dates" }

func (m MonthEndDates) Apply(in frame.Frame) (frame.Frame, error) {
	out := in.WithColumn(m.DateCol, frame.KindTime)
	if m.YearCol != "" {
		out = out.WithColumn(m.YearCol, frame.KindInt)
	}
	if m.MonthCol != "" {
		out = out.WithColumn(m.MonthCol, frame.KindInt)
	}
	for i, r := range out.Rows {
		d := MonthEnd(m.Start, i)
		r[m.DateCol] = d
		if m.YearCol != "" {
			r[m.YearCol] = int64(d.Year())
		}
		if m.MonthCol != "" {
			r[m.MonthCol] = int64(d.Month())
		}
	}
	return out, nil
}

// MonthEnd returns the last day of the month that is offset months after
// start's month, at midnight in start's location.
func MonthEnd(start time.Time, offset int) time.Time {
	// Day 0 of month m+1 normalizes to the last day of month m.
	return time.Date(start.Year(), start.Month()+time.Month(offset)+1, 0, 0, 0, 0, 0, start.Location())
}
