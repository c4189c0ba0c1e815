// Command hrpipe runs the employee pipeline once: it reads
// pandas_practice_dataset.csv, writes cleaned_transformed_data.csv and prints
// the summary report to stdout. Flags only select operational concerns
// (logging, metrics, an optional SQL export); they never change the output.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"hrpipe/internal/config"
	"hrpipe/internal/metrics"
	"hrpipe/internal/metrics/datadog"
	"hrpipe/internal/metrics/prompush"
	"hrpipe/internal/pipeline"
	"hrpipe/internal/report"

	// register all backends with the storage factory; -export-kind picks one.
	_ "hrpipe/internal/storage/all"
)

type options struct {
	verbose        bool
	validate       bool
	metricsBackend string
	pushGatewayURL string
	datadogAddr    string
	exportKind     string
	exportDSN      string
	exportTable    string
}

func main() {
	var o options
	flag.BoolVar(&o.verbose, "v", false, "enable verbose logs")
	flag.BoolVar(&o.validate, "validate", false, "validate the configuration and exit")
	flag.StringVar(&o.metricsBackend, "metrics-backend", "", "metrics backend: none, pushgateway, datadog (overrides env METRICS_BACKEND)")
	flag.StringVar(&o.pushGatewayURL, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&o.datadogAddr, "datadog-addr", "", "DogStatsD address (overrides env DD_AGENT_ADDR)")
	flag.StringVar(&o.exportKind, "export-kind", "", "also export the final table: sqlite, postgres, mssql, mysql")
	flag.StringVar(&o.exportDSN, "export-dsn", "", "export connection string")
	flag.StringVar(&o.exportTable, "export-table", "employees", "export table name")
	flag.Parse()

	p := buildPipeline(o)

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("configuration is invalid")
		os.Exit(1)
	}
	if o.validate {
		log.Printf("configuration is valid")
		os.Exit(0)
	}

	flush := setupMetrics(o, p.Job, os.Getenv)

	err := run(context.Background(), p, o.verbose, os.Stdout)
	flush()
	if err != nil {
		log.Fatalf("%v", err)
	}
}

// buildPipeline applies the export flags to the fixed configuration.
func buildPipeline(o options) config.Pipeline {
	p := config.Default()
	if o.exportKind != "" {
		p.Storage.Kind = o.exportKind
		p.Storage.DB.DSN = o.exportDSN
		p.Storage.DB.Table = o.exportTable
	}
	return p
}

// run executes the pipeline and prints the report to w.
func run(ctx context.Context, p config.Pipeline, verbose bool, w io.Writer) error {
	start := time.Now()
	if verbose {
		log.Printf("pipeline: source=%s sink=%s storage=%q",
			p.Source.File.Path, p.Sink.File.Path, p.Storage.Kind)
	}

	res, err := pipeline.Run(ctx, p, pipeline.Options{Verbose: verbose})
	if err != nil {
		return err
	}
	if err := report.Write(w, res, p.Stages.TopN); err != nil {
		return fmt.Errorf("report: %w", err)
	}

	if verbose {
		log.Printf("completed in %s", time.Since(start).Truncate(time.Millisecond))
	}
	return nil
}

// setupMetrics installs the selected metrics backend and returns a function
// that flushes it. Selection order for every setting: flag, env, default.
// A backend that fails to initialize leaves metrics disabled.
func setupMetrics(o options, job string, getenv func(string) string) (flush func()) {
	noop := func() {}

	name := pick(o.metricsBackend, getenv("METRICS_BACKEND"), "none")
	var b metrics.Backend
	switch name {
	case "pushgateway":
		url := pick(o.pushGatewayURL, getenv("PUSHGATEWAY_URL"), "http://localhost:9091")
		pb, err := prompush.NewBackend(job, url)
		if err != nil {
			log.Printf("metrics: failed to init prom push backend: %v; using nop", err)
			return noop
		}
		log.Printf("metrics: url=%v, backend=%v, job_name=%v", url, name, job)
		b = pb

	case "datadog":
		addr := pick(o.datadogAddr, getenv("DD_AGENT_ADDR"), "127.0.0.1:8125")
		db, err := datadog.NewBackend(datadog.Config{Addr: addr, GlobalTags: []string{"job:" + job}})
		if err != nil {
			log.Printf("metrics: failed to init datadog backend: %v; using nop", err)
			return noop
		}
		log.Printf("metrics: addr=%v, backend=%v, job_name=%v", addr, name, job)
		b = db

	case "none":
		if o.verbose {
			log.Printf("metrics: disabled")
		}
		return noop

	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", name)
		return noop
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

// pick returns the first non-empty value.
func pick(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
