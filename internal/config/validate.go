package config

import (
	"fmt"
	"strings"
	"time"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a finding that should be surfaced to users
	// but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "stages.side_table[2].id"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect error.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline performs static validation of a Pipeline. It does not
// mutate the pipeline; callers decide whether warnings are fatal.
//
//	issues := config.ValidatePipeline(p)
//	for _, iss := range issues {
//	    log.Printf("%s: %s: %s", iss.Severity, iss.Path, iss.Message)
//	}
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateFile("source", p.Source.Kind, p.Source.File)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateFile("sink", p.Sink.Kind, p.Sink.File)...)
	if p.Source.File.Path != "" && p.Source.File.Path == p.Sink.File.Path {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "sink.file.path",
			Message:  "sink path must differ from source path",
		})
	}
	issues = append(issues, validateStages(p.Stages)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateRuntime(p.Storage, p.Runtime)...)

	return issues
}

// validateFile validates a file-backed source or sink.
func validateFile(section, kind string, f FilePath) []Issue {
	var issues []Issue

	if strings.TrimSpace(kind) == "" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     section + ".kind",
			Message:  section + ".kind must not be empty",
		})
	}
	if kind != "file" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     section + ".kind",
			Message:  fmt.Sprintf("unsupported %s kind %q", section, kind),
		})
	}
	if strings.TrimSpace(f.Path) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     section + ".file.path",
			Message:  "file " + section + " requires a non-empty path",
		})
	}
	return issues
}

// validateParser validates parser configuration.
func validateParser(p Parser) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Kind) == "" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  "parser.kind must not be empty",
		})
	}
	if p.Kind != "csv" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unsupported parser kind %q", p.Kind),
		})
	}
	if comma := p.Options.String("comma", ","); len([]rune(comma)) != 1 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("comma must be a single character, got %q", comma),
		})
	} else if comma == "\"" || comma == "\n" || comma == "\r" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.options.comma",
			Message:  fmt.Sprintf("comma %q is not a valid delimiter", comma),
		})
	}
	return issues
}

// validateStages validates the transformation constants.
func validateStages(s Stages) []Issue {
	var issues []Issue

	if s.BonusRate < 0 {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "stages.bonus_rate",
			Message:  "bonus_rate must not be negative",
		})
	}
	if s.OutlierLimit <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "stages.outlier_limit",
			Message:  fmt.Sprintf("outlier_limit=%g drops every row with a positive salary", s.OutlierLimit),
		})
	}
	if _, err := time.Parse(DateLayout, s.DateStart); err != nil {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "stages.date_start",
			Message:  fmt.Sprintf("date_start must use layout %s: %v", DateLayout, err),
		})
	}
	if strings.TrimSpace(s.HighSalaryDepartment) == "" {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "stages.high_salary_department",
			Message:  "high_salary_department is empty; the high-salary view will always be empty",
		})
	} else if s.HighSalaryDepartment != strings.ToUpper(s.HighSalaryDepartment) {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "stages.high_salary_department",
			Message:  "departments are upper-cased during cleaning; a lower-case value never matches",
		})
	}
	if s.TopN <= 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "stages.top_n",
			Message:  "top_n is not positive; the final report section will be empty",
		})
	}
	if len(s.SideTable) == 0 {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "stages.side_table",
			Message:  "side_table is empty; extra_bonus will be missing on every row",
		})
	}
	seen := make(map[int64]int, len(s.SideTable))
	for i, r := range s.SideTable {
		if j, dup := seen[r.ID]; dup {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     fmt.Sprintf("stages.side_table[%d].id", i),
				Message:  fmt.Sprintf("id %d repeats side_table[%d]; matching rows will be duplicated by the merge", r.ID, j),
			})
			continue
		}
		seen[r.ID] = i
	}
	return issues
}

// validateStorage validates the optional export. An empty kind disables it.
func validateStorage(s Storage) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		return nil
	}

	known := map[string]struct{}{
		"postgres": {},
		"mysql":    {},
		"mssql":    {},
		"sqlite":   {},
	}
	if _, ok := known[s.Kind]; !ok {
		issues = append(issues, Issue{
			Severity: SeverityWarning,
			Path:     "storage.kind",
			Message:  fmt.Sprintf("unknown storage kind %q; ensure a matching backend is registered", s.Kind),
		})
	}

	db := s.DB
	if strings.TrimSpace(db.DSN) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.dsn",
			Message:  "storage.db.dsn must not be empty",
		})
	}
	if strings.TrimSpace(db.Table) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "storage.db.table",
			Message:  "storage.db.table must not be empty",
		})
	}
	for i, c := range db.Columns {
		if strings.TrimSpace(c) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     fmt.Sprintf("storage.db.columns[%d]", i),
				Message:  "column name must not be empty",
			})
		}
	}
	for i, k := range db.PrimaryKey {
		path := fmt.Sprintf("storage.db.primary_key[%d]", i)
		switch {
		case strings.TrimSpace(k) == "":
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "key column name must not be empty",
			})
		case len(db.Columns) > 0 && !contains(db.Columns, k):
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  fmt.Sprintf("key column %q is not among the exported columns", k),
			})
		case !db.AutoCreateTable:
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path,
				Message:  "primary_key only applies when auto_create_table is set",
			})
		}
	}
	return issues
}

// validateRuntime validates RuntimeConfig. Batch size only matters when an
// export is configured.
func validateRuntime(s Storage, r RuntimeConfig) []Issue {
	if strings.TrimSpace(s.Kind) == "" {
		return nil
	}
	if r.BatchSize <= 0 {
		return []Issue{{
			Severity: SeverityError,
			Path:     "runtime.batch_size",
			Message:  fmt.Sprintf("batch_size=%d; export requires a positive batch size", r.BatchSize),
		}}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
