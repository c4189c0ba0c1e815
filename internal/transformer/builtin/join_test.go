package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpipe/internal/frame"
	"hrpipe/pkg/records"
)

func sideTable(pairs ...int64) frame.Frame {
	f := frame.New([]string{"id", "extra_bonus"}, map[string]frame.Kind{"id": frame.KindInt, "extra_bonus": frame.KindInt})
	for i := 0; i+1 < len(pairs); i += 2 {
		f.Rows = append(f.Rows, records.Record{"id": pairs[i], "extra_bonus": pairs[i+1]})
	}
	return f
}

func TestLeftJoin_UnmatchedKeepsRow(t *testing.T) {
	in := employees(
		emp(6, "f", "IT", 1.0),
		emp(1, "a", "IT", 2.0),
		emp(5, "e", "HR", 3.0),
	)
	got, err := LeftJoin{On: "id", Right: sideTable(1, 100, 2, 200, 3, 150, 4, 120, 5, 180)}.Apply(in)
	require.NoError(t, err)

	require.Equal(t, in.Len(), got.Len())
	assert.Equal(t, []any{int64(6), int64(1), int64(5)}, column(got, "id"))
	assert.Equal(t, []any{nil, 100.0, 180.0}, column(got, "extra_bonus"))
	assert.Equal(t, frame.KindFloat, got.Kind("extra_bonus"))
	assert.Equal(t, append(append([]string(nil), in.Columns...), "extra_bonus"), got.Columns)
}

func TestLeftJoin_AllMatchedStaysInt(t *testing.T) {
	in := employees(emp(1, "a", "IT", 1.0))
	got, err := LeftJoin{On: "id", Right: sideTable(1, 100)}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(100)}, column(got, "extra_bonus"))
	assert.Equal(t, frame.KindInt, got.Kind("extra_bonus"))
}

func TestLeftJoin_DuplicateRightKeysMultiply(t *testing.T) {
	in := employees(emp(1, "a", "IT", 1.0), emp(2, "b", "IT", 1.0))
	got, err := LeftJoin{On: "id", Right: sideTable(1, 10, 1, 20)}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(1), int64(2)}, column(got, "id"))
	assert.Equal(t, []any{10.0, 20.0, nil}, column(got, "extra_bonus"))
}

func TestLeftJoin_NumericKeysAcrossKinds(t *testing.T) {
	in := frame.New([]string{"id"}, map[string]frame.Kind{"id": frame.KindFloat})
	in.Rows = []records.Record{{"id": 1.0}, {"id": nil}}
	got, err := LeftJoin{On: "id", Right: sideTable(1, 100)}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []any{100.0, nil}, column(got, "extra_bonus"))
}

func TestLeftJoin_ClashingColumns(t *testing.T) {
	in := employees(emp(1, "a", "IT", 1.0))
	right := frame.New([]string{"id", "name"}, nil)
	right.Rows = []records.Record{{"id": int64(1), "name": "other"}}

	got, err := LeftJoin{On: "id", Right: right}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name_x", "department", "salary", "name_y"}, got.Columns)
	assert.Equal(t, "a", got.Rows[0]["name_x"])
	assert.Equal(t, "other", got.Rows[0]["name_y"])
}

func TestLeftJoin_MissingKey(t *testing.T) {
	in := frame.New([]string{"name"}, nil)
	_, err := LeftJoin{On: "id", Right: sideTable(1, 1)}.Apply(in)
	assert.Error(t, err)

	_, err = LeftJoin{On: "id", Right: frame.New([]string{"x"}, nil)}.Apply(employees())
	assert.Error(t, err)
}
