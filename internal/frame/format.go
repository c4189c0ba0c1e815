package frame

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the textual form of KindTime cells.
const DateLayout = "2006-01-02"

// FormatValue renders a cell the way it is persisted: missing cells are
// empty, floats always carry a fractional part ("5000.0") so a float column
// stays a float column when read back, and dates use DateLayout.
func FormatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case float64:
		return FormatFloat(t)
	case time.Time:
		return t.Format(DateLayout)
	default:
		return fmt.Sprint(t)
	}
}

// FormatFloat renders f in its shortest round-trip form, appending ".0" to
// integral values.
func FormatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ""
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
