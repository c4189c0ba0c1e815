package builtin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hrpipe/pkg/records"
)

func TestDropDuplicates_FullRowKeepFirst(t *testing.T) {
	in := employees(
		emp(1, "Ann", "IT", 5000.0),
		emp(2, "Bob", "HR", nil),
		emp(1, "Ann", "IT", 5000.0),
		emp(2, "Bob", "HR", nil),
		emp(1, "Ann", "IT", 5100.0),
	)

	got, err := DropDuplicates{}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2), int64(1)}, column(got, "id"))
	assert.Equal(t, []any{5000.0, nil, 5100.0}, column(got, "salary"))
	assert.Equal(t, 5, in.Len(), "input must be untouched")
}

func TestDropDuplicates_Idempotent(t *testing.T) {
	in := employees(
		emp(1, "Ann", "IT", 5000.0),
		emp(1, "Ann", "IT", 5000.0),
		emp(3, "Cid", "IT", 7000.0),
	)
	once, err := DropDuplicates{}.Apply(in)
	require.NoError(t, err)
	twice, err := DropDuplicates{}.Apply(once)
	require.NoError(t, err)
	assert.Equal(t, once.Len(), twice.Len())
	assert.Equal(t, once.Rows, twice.Rows)
}

// TestDropDuplicates_RowsEqualAfterFill verifies that rows which only become
// identical once missing salaries are filled collapse to one.
func TestDropDuplicates_RowsEqualAfterFill(t *testing.T) {
	in := employees(
		emp(1, "Ann", "IT", 5000.0),
		emp(2, "Bob", "HR", nil),
		emp(2, "Bob", "HR", 5000.0),
	)
	filled, err := FillMean{Column: "salary"}.Apply(in)
	require.NoError(t, err)
	got, err := DropDuplicates{}.Apply(filled)
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), int64(2)}, column(got, "id"))
}

// TestDropDuplicates_TypeAware verifies that equal text in differently typed
// cells is not treated as a duplicate.
func TestDropDuplicates_TypeAware(t *testing.T) {
	in := employees(
		records.Record{"id": int64(1), "name": "1", "department": "IT", "salary": 1.0},
		records.Record{"id": int64(1), "name": "1", "department": "IT", "salary": "1.0"},
	)
	got, err := DropDuplicates{}.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Len())
}
