package datasource

import "testing"

func TestIsStringDeclaredType(t *testing.T) {
	tests := []struct {
		declared string
		want     bool
	}{
		{"varchar", true},
		{"VARCHAR(50)", true},
		{"nvarchar(max)", true},
		{"text", true},
		{"ntext", true},
		{"char(10)", true},
		{"nchar", true},    // substring match on CHAR
		{"LONGTEXT", true}, // substring match on TEXT
		{"character varying", true},
		{"int", false},
		{"bigint", false},
		{"datetime2", false},
		{"uniqueidentifier", false},
		{"decimal(18,2)", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.declared, func(t *testing.T) {
			if got := IsStringDeclaredType(tt.declared); got != tt.want {
				t.Errorf("IsStringDeclaredType(%q) = %v, want %v", tt.declared, got, tt.want)
			}
		})
	}
}
