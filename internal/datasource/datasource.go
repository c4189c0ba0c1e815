// Package datasource defines where the pipeline reads its table from and
// where it writes the result to.
package datasource

import (
	"context"
	"io"
)

// Source opens the input for reading.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}

// Sink receives the output. Create returns a writer whose content becomes
// visible only after Commit; Abort discards it.
type Sink interface {
	Create(ctx context.Context) (Pending, error)
}

// Pending is an output that has not been published yet.
type Pending interface {
	io.Writer
	Commit() error
	Abort() error
}
