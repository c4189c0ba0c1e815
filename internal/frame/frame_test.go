package frame

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpipe/pkg/records"
)

func sample() Frame {
	f := New([]string{"id", "name", "salary"}, map[string]Kind{"id": KindInt, "salary": KindFloat})
	f.Rows = []records.Record{
		{"id": int64(1), "name": "Ann", "salary": 5000.0},
		{"id": int64(2), "name": "Bob", "salary": nil},
		{"id": int64(3), "name": "Cid", "salary": 7000.0},
	}
	return f
}

func TestCloneDetachesRows(t *testing.T) {
	f := sample()
	c := f.Clone()
	c.Rows[0]["name"] = "changed"
	c.Kinds["name"] = KindInt

	assert.Equal(t, "Ann", f.Rows[0]["name"])
	assert.Equal(t, KindString, f.Kind("name"))
}

func TestWithColumn(t *testing.T) {
	f := sample()

	g := f.WithColumn("bonus", KindFloat)
	assert.Equal(t, []string{"id", "name", "salary", "bonus"}, g.Columns)
	assert.False(t, f.Has("bonus"))

	// existing column keeps its position
	h := g.WithColumn("id", KindFloat)
	assert.Equal(t, g.Columns, h.Columns)
	assert.Equal(t, KindFloat, h.Kind("id"))
}

func TestFilterAndHead(t *testing.T) {
	f := sample()

	got := f.Filter(func(_ int, r records.Record) bool { return r["salary"] != nil })
	require.Equal(t, 2, got.Len())
	assert.Equal(t, int64(1), got.Rows[0]["id"])
	assert.Equal(t, int64(3), got.Rows[1]["id"])

	assert.Equal(t, 2, f.Head(2).Len())
	assert.Equal(t, 3, f.Head(10).Len())
	assert.Equal(t, 0, f.Head(0).Len())
}

func TestRequire(t *testing.T) {
	f := sample()
	require.NoError(t, f.Require("id", "salary"))

	err := f.Require("id", "department")
	var mc *MissingColumnError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, "department", mc.Column)
}

func TestFloats(t *testing.T) {
	f := sample()
	vals, present, err := f.Floats("salary")
	require.NoError(t, err)
	assert.Equal(t, []float64{5000, 0, 7000}, vals)
	assert.Equal(t, []bool{true, false, true}, present)

	f.Rows[1]["salary"] = "lots"
	_, _, err = f.Floats("salary")
	var nn *NotNumericError
	require.True(t, errors.As(err, &nn))
	assert.Equal(t, 1, nn.Row)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{int64(42), "42"},
		{5000.0, "5000.0"},
		{550.5, "550.5"},
		{0.1, "0.1"},
		{time.Date(2020, 2, 29, 0, 0, 0, 0, time.UTC), "2020-02-29"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, FormatValue(tc.in), "FormatValue(%#v)", tc.in)
	}
}
