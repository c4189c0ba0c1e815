// Package pipeline runs the employee ETL: load, clean, transform, aggregate,
// pivot, merge, outlier removal, date derivation, persist and an optional SQL
// export, strictly in that order.
//
// Every stage takes the previous stage's table and returns a new one, so the
// views captured along the way (the high-salary view and the aggregates) keep
// the content they had when they were computed. The first failing stage
// aborts the run; failures are reported as *LoadError, *SchemaError or
// *WriteError.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"hrpipe/internal/aggregate"
	"hrpipe/internal/config"
	"hrpipe/internal/datasource"
	"hrpipe/internal/datasource/file"
	"hrpipe/internal/ddl"
	"hrpipe/internal/frame"
	"hrpipe/internal/metrics"
	csvparser "hrpipe/internal/parser/csv"
	"hrpipe/internal/storage"
)

// Result holds everything the report prints.
type Result struct {
	// AverageSalary is the mean salary after cleaning.
	AverageSalary float64
	// HighSalary is the high-salary view taken during Transform.
	HighSalary frame.Frame

	Aggregates
	Pivot aggregate.Table

	// Final is the table as persisted.
	Final frame.Frame
	// Output is the path of the persisted file.
	Output string
	// Exported is the number of rows copied by the SQL export; zero when the
	// export is off.
	Exported int64
}

// Options carries operational switches that never change the output.
type Options struct {
	Verbose bool
}

// Test seams.
var (
	newSourceFn = func(path string) datasource.Source { return file.NewLocal(path) }
	newSinkFn   = func(path string) datasource.Sink { return file.NewAtomicFile(path) }

	newRepositoryFn = storage.New
)

type runner struct {
	p       config.Pipeline
	verbose bool
}

// Run executes the pipeline described by p.
func Run(ctx context.Context, p config.Pipeline, opt Options) (Result, error) {
	r := &runner{p: p, verbose: opt.Verbose}
	return r.run(ctx)
}

func (r *runner) run(ctx context.Context) (Result, error) {
	var (
		res Result
		f   frame.Frame
		err error
	)
	start := time.Now()

	err = r.step("load", func() (int, error) {
		f, err = r.load(ctx)
		return f.Len(), err
	})
	if err != nil {
		return Result{}, err
	}
	metrics.RecordRow(r.p.Job, metrics.KindLoaded, int64(f.Len()))

	loaded := f.Len()
	if err = r.step("clean", func() (int, error) {
		f, err = Clean(f)
		return f.Len(), err
	}); err != nil {
		return Result{}, err
	}
	metrics.RecordRow(r.p.Job, metrics.KindDuplicatesDropped, int64(loaded-f.Len()))

	if err = r.step("transform", func() (int, error) {
		f, res.AverageSalary, res.HighSalary, err = Transform(f, r.p.Stages)
		return f.Len(), err
	}); err != nil {
		return Result{}, err
	}

	if err = r.step("aggregate", func() (int, error) {
		res.Aggregates, err = Aggregate(f)
		return len(res.MeanByDepartment.Keys), err
	}); err != nil {
		return Result{}, err
	}

	if err = r.step("pivot", func() (int, error) {
		res.Pivot, err = Pivot(f)
		return len(res.Pivot.Keys), err
	}); err != nil {
		return Result{}, err
	}

	if err = r.step("merge", func() (int, error) {
		f, err = Merge(f, r.p.Stages.SideTable)
		return f.Len(), err
	}); err != nil {
		return Result{}, err
	}

	merged := f.Len()
	if err = r.step("remove_outliers", func() (int, error) {
		f, err = RemoveOutliers(f, r.p.Stages.OutlierLimit)
		return f.Len(), err
	}); err != nil {
		return Result{}, err
	}
	metrics.RecordRow(r.p.Job, metrics.KindOutliersDropped, int64(merged-f.Len()))

	if err = r.step("derive_dates", func() (int, error) {
		f, err = DeriveDates(f, r.p.Stages.DateStart)
		return f.Len(), err
	}); err != nil {
		return Result{}, err
	}

	if err = r.step("persist", func() (int, error) {
		return f.Len(), r.persist(ctx, f)
	}); err != nil {
		return Result{}, err
	}
	metrics.RecordRow(r.p.Job, metrics.KindWritten, int64(f.Len()))
	res.Final = f
	res.Output = r.p.Sink.File.Path

	if r.p.Storage.Kind != "" {
		if err = r.step("export", func() (int, error) {
			res.Exported, err = r.export(ctx, f)
			return int(res.Exported), err
		}); err != nil {
			return Result{}, err
		}
		metrics.RecordRow(r.p.Job, metrics.KindExported, res.Exported)
	}

	if r.verbose {
		log.Printf("pipeline: job=%s rows=%d output=%s took=%s",
			r.p.Job, f.Len(), res.Output, time.Since(start).Truncate(time.Millisecond))
	}
	return res, nil
}

// step times fn, records it, and logs the resulting row count when verbose.
func (r *runner) step(name string, fn func() (int, error)) error {
	t0 := time.Now()
	rows, err := fn()
	d := time.Since(t0)
	metrics.RecordStep(r.p.Job, name, err, d)
	if err != nil {
		log.Printf("stage=%s failed after %s: %v", name, d.Truncate(time.Microsecond), err)
		return err
	}
	if r.verbose {
		log.Printf("stage=%s rows=%d took=%s", name, rows, d.Truncate(time.Microsecond))
	}
	return nil
}

func (r *runner) newParser() *csvparser.Parser {
	opts := r.p.Parser.Options
	return csvparser.NewParser(csvparser.Options{
		Comma:     opts.Rune("comma", ','),
		HeaderMap: opts.StringMap("header_map"),
	})
}

// load reads and parses the source file.
func (r *runner) load(ctx context.Context) (frame.Frame, error) {
	path := r.p.Source.File.Path
	rc, err := newSourceFn(path).Open(ctx)
	if err != nil {
		return frame.Frame{}, &LoadError{Path: path, Err: err}
	}
	defer rc.Close()

	f, err := r.newParser().Parse(rc)
	if err != nil {
		return frame.Frame{}, &LoadError{Path: path, Err: err}
	}
	return f, nil
}

// persist writes f as CSV. The target only appears once every row has been
// written.
func (r *runner) persist(ctx context.Context, f frame.Frame) error {
	path := r.p.Sink.File.Path
	out, err := newSinkFn(path).Create(ctx)
	if err != nil {
		return &WriteError{Target: path, Err: err}
	}
	if err := csvparser.Write(out, f, r.p.Parser.Options.Rune("comma", ',')); err != nil {
		if aerr := out.Abort(); aerr != nil {
			log.Printf("persist: abort %s: %v", path, aerr)
		}
		return &WriteError{Target: path, Err: err}
	}
	if err := out.Commit(); err != nil {
		return &WriteError{Target: path, Err: err}
	}
	return nil
}

// export copies f into the configured SQL table.
func (r *runner) export(ctx context.Context, f frame.Frame) (int64, error) {
	st := r.p.Storage
	table := st.DB.Table

	cols := st.DB.Columns
	if len(cols) == 0 {
		cols = f.Columns
	}
	if err := f.Require(cols...); err != nil {
		return 0, &WriteError{Target: table, Err: err}
	}

	if r.verbose {
		log.Printf("export: kind=%s table=%s columns=%d", st.Kind, table, len(cols))
	}
	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind:    st.Kind,
		DSN:     st.DB.DSN,
		Table:   table,
		Columns: cols,
	})
	if err != nil {
		return 0, &WriteError{Target: table, Err: fmt.Errorf("init repo: %w", err)}
	}
	defer repo.Close()

	if st.DB.AutoCreateTable {
		lcols, err := logicalColumns(f, cols, st.DB.PrimaryKey)
		if err != nil {
			return 0, &WriteError{Target: table, Err: err}
		}
		if err := storage.EnsureTable(ctx, st.Kind, repo, table, lcols); err != nil {
			return 0, &WriteError{Target: table, Err: fmt.Errorf("apply DDL: %w", err)}
		}
	}

	rows := make([][]any, f.Len())
	for i, rec := range f.Rows {
		row := make([]any, len(cols))
		for j, c := range cols {
			row[j] = rec[c]
		}
		rows[i] = row
	}

	total, batches, err := storage.LoadBatches(ctx, cols, rows, r.p.Runtime.BatchSize, repo.CopyFrom, r.verbose)
	metrics.RecordBatches(r.p.Job, batches)
	if err != nil {
		return total, &WriteError{Target: table, Err: err}
	}
	return total, nil
}

// logicalColumns describes cols of f by their frame kind ("int", "float",
// "date", "string") and marks the key columns. Every key must be exported.
func logicalColumns(f frame.Frame, cols, key []string) ([]ddl.LogicalColumn, error) {
	isKey := make(map[string]bool, len(key))
	for _, k := range key {
		isKey[k] = true
	}
	out := make([]ddl.LogicalColumn, len(cols))
	for i, c := range cols {
		out[i] = ddl.LogicalColumn{Name: c, Type: f.Kind(c).String(), PrimaryKey: isKey[c]}
		delete(isKey, c)
	}
	for _, k := range key {
		if isKey[k] {
			return nil, fmt.Errorf("primary key column %q is not exported", k)
		}
	}
	return out, nil
}
