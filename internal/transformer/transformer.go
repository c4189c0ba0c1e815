// Package transformer defines the unit of table work the pipeline chains
// together.
package transformer

import (
	"fmt"

	"hrpipe/internal/frame"
)

// Transformer turns one table into the next. Implementations must not
// mutate the input frame; callers may keep using it after Apply returns.
type Transformer interface {
	Name() string
	Apply(in frame.Frame) (frame.Frame, error)
}

// Func adapts a plain function to a Transformer.
type Func struct {
	Label string
	Fn    func(frame.Frame) (frame.Frame, error)
}

func (f Func) Name() string                              { return f.Label }
func (f Func) Apply(in frame.Frame) (frame.Frame, error) { return f.Fn(in) }

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer on the previous one's output and stops at the
// first error, which is wrapped with the failing transformer's name.
func (c Chain) Apply(in frame.Frame) (frame.Frame, error) {
	out := in
	for _, t := range c {
		next, err := t.Apply(out)
		if err != nil {
			return frame.Frame{}, fmt.Errorf("%s: %w", t.Name(), err)
		}
		out = next
	}
	return out, nil
}
