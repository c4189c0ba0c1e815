// Package csv reads a delimited text file with a header row into a
// frame.Frame and writes a frame back out in the same format.
//
// Reading is strict: a row whose width differs from the header aborts the
// parse instead of being skipped, because a partially loaded table would
// silently change every aggregate computed from it.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hrpipe/internal/frame"
	"hrpipe/pkg/records"
)

// ErrEmpty is returned when the input has no header row.
var ErrEmpty = errors.New("csv: empty input")

// Options configures the CSV parser behavior. All fields are optional; sensible
// defaults are applied when a field is zero.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// HeaderMap maps source header names to canonical keys. Headers not in
	// the map are kept as written (minus surrounding spaces and a BOM).
	HeaderMap map[string]string
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// missingTokens are cell values read as a missing value.
var missingTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// IsMissing reports whether a raw cell denotes a missing value.
func IsMissing(s string) bool {
	_, ok := missingTokens[s]
	return ok
}

// Parse reads the whole input. The first row is the header. Each column's
// kind is inferred from its cells:
//
//   - every cell an integer and none missing -> frame.KindInt (int64)
//   - every present cell a number            -> frame.KindFloat (float64)
//   - otherwise                              -> frame.KindString
//
// A column with no present cells is KindFloat.
func (p *Parser) Parse(r io.Reader) (frame.Frame, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}

	h, err := cr.Read()
	if err == io.EOF {
		return frame.Frame{}, ErrEmpty
	}
	if err != nil {
		return frame.Frame{}, fmt.Errorf("read csv header: %w", err)
	}
	headers := normalizeHeaders(h, p.opt)
	if err := checkHeaders(headers); err != nil {
		return frame.Frame{}, err
	}

	var raw [][]string
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.ErrFieldCount is reported here too: encoding/csv pins the
			// width to the header row.
			return frame.Frame{}, fmt.Errorf("read csv line %d: %w", line, err)
		}
		raw = append(raw, row)
	}

	kinds := make(map[string]frame.Kind, len(headers))
	for i, col := range headers {
		kinds[col] = inferKind(raw, i)
	}

	f := frame.New(headers, kinds)
	f.Rows = make([]records.Record, 0, len(raw))
	for _, row := range raw {
		rec := make(records.Record, len(headers))
		for i, col := range headers {
			rec[col] = convert(row[i], kinds[col])
		}
		f.Rows = append(f.Rows, rec)
	}
	return f, nil
}

func inferKind(rows [][]string, idx int) frame.Kind {
	allInt, allNum, anyMissing := true, true, false
	for _, row := range rows {
		s := row[idx]
		if IsMissing(s) {
			anyMissing = true
			continue
		}
		t := strings.TrimSpace(s)
		if _, err := strconv.ParseInt(t, 10, 64); err != nil {
			allInt = false
			if _, err := strconv.ParseFloat(t, 64); err != nil {
				allNum = false
				break
			}
		}
	}
	switch {
	case !allNum:
		return frame.KindString
	case allInt && !anyMissing && len(rows) > 0:
		return frame.KindInt
	default:
		return frame.KindFloat
	}
}

func convert(s string, k frame.Kind) any {
	if IsMissing(s) {
		return nil
	}
	switch k {
	case frame.KindInt:
		n, _ := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		return n
	case frame.KindFloat:
		f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
		return f
	default:
		return s
	}
}

// normalizeHeaders trims header cells, strips a UTF-8 BOM from the first one
// and applies HeaderMap.
func normalizeHeaders(h []string, opt Options) []string {
	res := StripHeaderBOM(append([]string(nil), h...))
	for i, col := range res {
		c := strings.TrimSpace(col)
		if m, ok := opt.HeaderMap[c]; ok {
			c = m
		}
		res[i] = c
	}
	return res
}

func checkHeaders(headers []string) error {
	seen := make(map[string]struct{}, len(headers))
	for i, h := range headers {
		if h == "" {
			return fmt.Errorf("csv header: column %d has an empty name", i+1)
		}
		if _, dup := seen[h]; dup {
			return fmt.Errorf("csv header: duplicate column %q", h)
		}
		seen[h] = struct{}{}
	}
	return nil
}
