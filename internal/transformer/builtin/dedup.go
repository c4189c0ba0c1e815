// Package builtin contains the table transformers the pipeline is built from.
//
// DropDuplicates removes exact duplicate rows: two rows are duplicates when
// every column holds the same value (missing equals missing). The first
// occurrence is kept.
//
// Rows are bucketed by an xxh3 hash of their key cells and then compared
// value by value, so a hash collision never merges distinct rows.
package builtin

import (
	"fmt"
	"math"

	"github.com/zeebo/xxh3"

	"hrpipe/internal/frame"
	"hrpipe/pkg/records"
)

// DropDuplicates keeps the first occurrence of each distinct row.
type DropDuplicates struct{}

func (DropDuplicates) Name() string { return "drop_duplicates" }

// Apply returns the surviving rows in their original relative order.
func (DropDuplicates) Apply(in frame.Frame) (frame.Frame, error) {
	keys := in.Columns

	// buckets maps a row hash to the indexes of the distinct rows seen so far
	// with that hash.
	buckets := make(map[uint64][]int, len(in.Rows))
	kept := make(map[int]struct{}, len(in.Rows))

	for i, r := range in.Rows {
		h := hashRow(r, keys)
		dup := false
		for _, j := range buckets[h] {
			if sameKey(in.Rows[j], r, keys) {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		buckets[h] = append(buckets[h], i)
		kept[i] = struct{}{}
	}

	return in.Filter(func(i int, _ records.Record) bool {
		_, ok := kept[i]
		return ok
	}), nil
}

// hashRow hashes the key cells of r. Each cell is tagged with its Go type so
// the string "1" and the number 1 hash differently.
func hashRow(r records.Record, keys []string) uint64 {
	h := xxh3.New()
	for _, k := range keys {
		switch v := r[k].(type) {
		case nil:
			_, _ = h.WriteString("n")
		case string:
			_, _ = h.WriteString("s")
			_, _ = h.WriteString(v)
		case float64:
			_, _ = h.WriteString("f")
			_, _ = h.WriteString(frame.FormatFloat(v))
		default:
			_, _ = h.WriteString(fmt.Sprintf("%T", v))
			_, _ = h.WriteString(frame.FormatValue(v))
		}
		_, _ = h.Write([]byte{0x1f})
	}
	return h.Sum64()
}

func sameKey(a, b records.Record, keys []string) bool {
	for _, k := range keys {
		if !sameValue(a[k], b[k]) {
			return false
		}
	}
	return true
}

// sameValue compares two cells; NaN equals NaN so missing floats dedupe.
func sameValue(a, b any) bool {
	if fa, ok := a.(float64); ok {
		fb, ok := b.(float64)
		if !ok {
			return false
		}
		return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
	}
	return a == b
}
