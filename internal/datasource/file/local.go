// Package file implements local filesystem-backed sources and sinks.
package file

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"hrpipe/internal/datasource"
)

// Local is a filesystem data source that opens files from the local disk.
type Local struct{ path string }

var _ datasource.Source = (*Local)(nil)

// NewLocal returns a new Local data source bound to path.
func NewLocal(path string) *Local { return &Local{path: path} }

// Path returns the configured path.
func (l *Local) Path() string { return l.path }

// Open opens the configured path for reading.
//
// A canceled context short-circuits before touching the filesystem. Errors
// are wrapped with the path while keeping errors.Is(err, os.ErrNotExist)
// usable by callers.
func (l *Local) Open(ctx context.Context) (io.ReadCloser, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	f, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", l.path, err)
	}
	return f, nil
}

// outputMode is the permission of a committed file. os.CreateTemp uses 0600.
const outputMode os.FileMode = 0o644

// AtomicFile is a sink that writes to a temporary file next to the target
// path and renames it into place on Commit. A run that fails before Commit
// leaves no file at the target path.
type AtomicFile struct{ path string }

var _ datasource.Sink = (*AtomicFile)(nil)

// NewAtomicFile returns a sink for path.
func NewAtomicFile(path string) *AtomicFile { return &AtomicFile{path: path} }

// Path returns the target path.
func (a *AtomicFile) Path() string { return a.path }

// Create opens the temporary file.
func (a *AtomicFile) Create(ctx context.Context) (datasource.Pending, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}
	dir := filepath.Dir(a.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(a.path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("create temp for %s: %w", a.path, err)
	}
	return &pendingFile{f: tmp, target: a.path}, nil
}

type pendingFile struct {
	f      *os.File
	target string
	done   bool
}

func (p *pendingFile) Write(b []byte) (int, error) { return p.f.Write(b) }

// Commit syncs the temporary file and renames it over the target.
func (p *pendingFile) Commit() error {
	if p.done {
		return errors.New("file sink: already finished")
	}
	p.done = true
	if err := p.f.Sync(); err != nil {
		p.cleanup()
		return fmt.Errorf("sync %s: %w", p.f.Name(), err)
	}
	if err := p.f.Chmod(outputMode); err != nil {
		p.cleanup()
		return fmt.Errorf("chmod %s: %w", p.f.Name(), err)
	}
	if err := p.f.Close(); err != nil {
		_ = os.Remove(p.f.Name())
		return fmt.Errorf("close %s: %w", p.f.Name(), err)
	}
	if err := os.Rename(p.f.Name(), p.target); err != nil {
		_ = os.Remove(p.f.Name())
		return fmt.Errorf("rename into %s: %w", p.target, err)
	}
	return nil
}

// Abort removes the temporary file. It is a no-op after Commit.
func (p *pendingFile) Abort() error {
	if p.done {
		return nil
	}
	p.done = true
	return p.cleanup()
}

func (p *pendingFile) cleanup() error {
	_ = p.f.Close()
	if err := os.Remove(p.f.Name()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", p.f.Name(), err)
	}
	return nil
}
