package ddl

import "testing"

func TestMapType(t *testing.T) {
	t.Parallel()

	tests := []struct {
		kind string
		want string
	}{
		{kind: "int", want: "BIGINT"},
		{kind: "float", want: "FLOAT"},
		{kind: " DATE", want: "DATE"},
		{kind: "string", want: "NVARCHAR(MAX)"},
		{kind: "", want: "NVARCHAR(MAX)"},
	}
	for _, tt := range tests {
		if got := MapType(tt.kind); got != tt.want {
			t.Errorf("MapType(%q) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
