package ddl

import "testing"

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind string
		want string
	}{
		{kind: "int", want: "BIGINT"},
		{kind: "Int", want: "BIGINT"},
		{kind: "float", want: "DOUBLE PRECISION"},
		{kind: "date", want: "DATE"},
		{kind: "string", want: "TEXT"},
		{kind: "  ", want: "TEXT"},
	}
	for _, tt := range tests {
		if got := MapType(tt.kind); got != tt.want {
			t.Errorf("MapType(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
