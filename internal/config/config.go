// Package config defines the JSON-serializable configuration model for the
// employee pipeline. The values that shape the pipeline's output are fixed
// constants returned by Default; only operational fields (verbosity, metrics,
// optional export) are overridden at run time.
//
// Example (trimmed):
//
//	{
//	  "job":     "hrpipe",
//	  "source":  { "kind": "file", "file": { "path": "pandas_practice_dataset.csv" } },
//	  "parser":  { "kind": "csv", "options": { "comma": "," } },
//	  "sink":    { "kind": "file", "file": { "path": "cleaned_transformed_data.csv" } },
//	  "stages":  { "bonus_rate": 0.1, "outlier_limit": 9000, "date_start": "2020-01-01" },
//	  "storage": { "kind": "sqlite", "db": { "dsn": "file:out.db", "table": "employees" } }
//	}
package config

import "encoding/json"

// DateLayout is the layout of Stages.DateStart.
const DateLayout = "2006-01-02"

// Pipeline describes one run of the employee pipeline.
type Pipeline struct {
	// Job labels metrics and log lines.
	Job string `json:"job"`

	// Source describes where the input table comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into a table.
	Parser Parser `json:"parser"`

	// Sink describes where the final table is persisted.
	Sink Sink `json:"sink"`

	// Stages holds the constants used by the transformation stages.
	Stages Stages `json:"stages"`

	// Storage optionally exports the final table to a SQL database. An empty
	// Kind disables the export.
	Storage Storage       `json:"storage"`
	Runtime RuntimeConfig `json:"runtime"`
}

// RuntimeConfig controls batching of the optional export.
type RuntimeConfig struct {
	BatchSize int `json:"batch_size"`
}

// Source identifies the data source. Current kind: "file".
type Source struct {
	Kind string   `json:"kind"`
	File FilePath `json:"file"`
}

// Sink identifies the persisted output. Current kind: "file".
type Sink struct {
	Kind string   `json:"kind"`
	File FilePath `json:"file"`
}

// FilePath holds configuration for the "file" source and sink kinds.
type FilePath struct {
	Path string `json:"path"`
}

// Parser selects how to parse the raw source into rows and columns.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is interpreted by the parser. For CSV: comma (string),
	// header_map (object).
	Options Options `json:"options"`
}

// Stages carries the constants of the transformation stages.
type Stages struct {
	// BonusRate multiplies salary to derive bonus.
	BonusRate float64 `json:"bonus_rate"`

	// OutlierLimit is the exclusive upper bound on salary kept by outlier
	// removal.
	OutlierLimit float64 `json:"outlier_limit"`

	// DateStart anchors the month-end join date sequence (DateLayout).
	DateStart string `json:"date_start"`

	// HighSalaryDepartment selects the department of the high-salary view.
	HighSalaryDepartment string `json:"high_salary_department"`

	// TopN is the number of rows shown in the final report section.
	TopN int `json:"top_n"`

	// SideTable is left-joined onto the table by id.
	SideTable []SideRow `json:"side_table"`
}

// SideRow is one row of the side table.
type SideRow struct {
	ID         int64 `json:"id"`
	ExtraBonus int64 `json:"extra_bonus"`
}

// Storage selects the optional SQL export target.
type Storage struct {
	// Kind selects the storage backend ("sqlite", "postgres", "mssql",
	// "mysql"). Empty disables export.
	Kind string   `json:"kind"`
	DB   DBConfig `json:"db"`
}

// DBConfig configures the export table.
type DBConfig struct {
	// DSN is the driver-specific connection string.
	DSN string `json:"dsn"`

	// Table is the destination table name (optionally schema-qualified).
	Table string `json:"table"`

	// Columns restricts and orders the exported columns. Empty exports every
	// column of the final table.
	Columns []string `json:"columns"`

	// AutoCreateTable creates the destination table from the table's column
	// kinds when it does not exist.
	AutoCreateTable bool `json:"auto_create_table"`

	// PrimaryKey names the key columns of an auto-created table, in order of
	// declaration. Key columns are NOT NULL.
	PrimaryKey []string `json:"primary_key"`
}

// Default returns the fixed pipeline configuration.
func Default() Pipeline {
	return Pipeline{
		Job:    "hrpipe",
		Source: Source{Kind: "file", File: FilePath{Path: "pandas_practice_dataset.csv"}},
		Parser: Parser{Kind: "csv", Options: Options{"comma": ","}},
		Sink:   Sink{Kind: "file", File: FilePath{Path: "cleaned_transformed_data.csv"}},
		Stages: Stages{
			BonusRate:            0.10,
			OutlierLimit:         9000,
			DateStart:            "2020-01-01",
			HighSalaryDepartment: "IT",
			TopN:                 5,
			SideTable: []SideRow{
				{ID: 1, ExtraBonus: 100},
				{ID: 2, ExtraBonus: 200},
				{ID: 3, ExtraBonus: 150},
				{ID: 4, ExtraBonus: 120},
				{ID: 5, ExtraBonus: 180},
			},
		},
		Storage: Storage{DB: DBConfig{AutoCreateTable: true, PrimaryKey: []string{"id"}}},
		Runtime: RuntimeConfig{BatchSize: 500},
	}
}

// Options is a small helper to fetch typed values from arbitrary JSON maps.
// It returns the provided default when a key is absent or of an unexpected
// type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		switch m := v.(type) {
		case map[string]any:
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		case map[string]string:
			for k, s := range m {
				res[k] = s
			}
		}
	}
	return res
}

// UnmarshalJSON decodes a missing or null "options" object to an empty,
// non-nil Options map.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
