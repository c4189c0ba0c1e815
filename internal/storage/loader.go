package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// CopyFn abstracts a backend's bulk insert capability. Implementations insert
// rows aligned to columns and return the number of rows reported as
// inserted.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// LoadBatches splits rows into batches of at most batchSize and calls copyFn
// for each, in order. It returns the total reported by copyFn, the number of
// batches copied, and the first error. Progress is logged per batch when
// verbose is set.
func LoadBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
	verbose bool,
) (total, batches int64, err error) {
	if batchSize <= 0 {
		return 0, 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, 0, fmt.Errorf("copyFn must not be nil")
	}

	start := time.Now()
	for lo := 0; lo < len(rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, batches, err
		}
		hi := min(lo+batchSize, len(rows))

		t0 := time.Now()
		n, err := copyFn(ctx, columns, rows[lo:hi])
		total += n
		if err != nil {
			log.Printf("loader: copy failed batch=%d after=%d total=%d err=%v", batches+1, n, total, err)
			return total, batches, err
		}
		batches++

		if verbose {
			since := time.Since(t0)
			rps := float64(0)
			if since > 0 {
				rps = float64(n) / since.Seconds()
			}
			log.Printf(
				"batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
				batches, rps, n, total, time.Since(start).Truncate(time.Millisecond),
			)
		}
	}
	return total, batches, nil
}
