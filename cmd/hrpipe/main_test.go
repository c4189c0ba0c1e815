package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"hrpipe/internal/config"
	"hrpipe/internal/metrics"
)

func TestPick(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"flag", "env", "def"}, "flag"},
		{[]string{"", "env", "def"}, "env"},
		{[]string{"", "", "def"}, "def"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := pick(tt.in...); got != tt.want {
			t.Errorf("pick(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBuildPipeline(t *testing.T) {
	t.Parallel()

	p := buildPipeline(options{exportTable: "employees"})
	if p.Storage.Kind != "" {
		t.Fatalf("export enabled without -export-kind: %+v", p.Storage)
	}
	if issues := config.ValidatePipeline(p); config.HasErrors(issues) {
		t.Fatalf("default pipeline has errors: %v", issues)
	}

	p = buildPipeline(options{exportKind: "sqlite", exportDSN: "hr.db", exportTable: "employees"})
	if p.Storage.Kind != "sqlite" || p.Storage.DB.DSN != "hr.db" || p.Storage.DB.Table != "employees" {
		t.Fatalf("storage = %+v", p.Storage)
	}
	if !p.Storage.DB.AutoCreateTable {
		t.Fatalf("AutoCreateTable = false, want true")
	}
}

// TestSetupMetrics_EnvFallback swaps the global metrics backend, so it is not
// parallel.
func TestSetupMetrics_EnvFallback(t *testing.T) {
	prev := metrics.SetBackend(nil)
	defer metrics.SetBackend(prev)

	env := map[string]string{"METRICS_BACKEND": "nonsense"}
	flush := setupMetrics(options{}, "hrpipe", func(k string) string { return env[k] })
	flush()
	if got := metrics.SetBackend(nil); got != prev {
		t.Fatalf("backend changed for unknown kind: %T", got)
	}

	flush = setupMetrics(options{metricsBackend: "none"}, "hrpipe", func(string) string { return "pushgateway" })
	flush()
	if got := metrics.SetBackend(nil); got != prev {
		t.Fatalf("flag none did not win over env: %T", got)
	}
}

func TestRun_PrintsReport(t *testing.T) {
	p := config.Default()
	p.Source.File.Path = "../../testdata/employees.csv"
	p.Sink.File.Path = filepath.Join(t.TempDir(), "cleaned_transformed_data.csv")

	var out bytes.Buffer
	if err := run(context.Background(), p, true, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "--- Top 5 Employees After Cleaning & Transformation ---") {
		t.Fatalf("report missing final section:\n%s", out.String())
	}
}
