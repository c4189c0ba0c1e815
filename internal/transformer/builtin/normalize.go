package builtin

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"hrpipe/internal/frame"
)

// TrimSpace strips leading and trailing Unicode whitespace (NO-BREAK SPACE
// included) from string cells in Columns. Interior text is kept byte for
// byte. Non-string and missing cells are left as they are.
type TrimSpace struct {
	Columns []string
}

func (TrimSpace) Name() string { return "trim_space" }

func (t TrimSpace) Apply(in frame.Frame) (frame.Frame, error) {
	return mapStrings(in, t.Columns, strings.TrimSpace)
}

// Upper upper-cases string cells in Columns using Unicode case mapping.
type Upper struct {
	Columns []string
}

func (Upper) Name() string { return "upper" }

func (u Upper) Apply(in frame.Frame) (frame.Frame, error) {
	c := cases.Upper(language.Und)
	return mapStrings(in, u.Columns, c.String)
}

func mapStrings(in frame.Frame, cols []string, fn func(string) string) (frame.Frame, error) {
	if err := in.Require(cols...); err != nil {
		return frame.Frame{}, err
	}
	out := in.Clone()
	for _, r := range out.Rows {
		for _, c := range cols {
			if s, ok := r[c].(string); ok {
				r[c] = fn(s)
			}
		}
	}
	return out, nil
}
