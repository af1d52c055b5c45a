package mssql

import "testing"

func TestQuoteName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple name", "Customers", "[Customers]"},
		{"name with space", "Order Details", "[Order Details]"},
		{"closing bracket escaped", "bad]name", "[bad]]name]"},
		{"multiple brackets", "a]b]c", "[a]]b]]c]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := quoteName(tt.input)
			if got != tt.expected {
				t.Errorf("quoteName(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestConvertPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "single placeholder",
			input:    "[Name] LIKE $1",
			expected: "[Name] LIKE @p1",
		},
		{
			name:     "multiple placeholders",
			input:    "([A] LIKE $1 OR [B] LIKE $1) AND ([A] LIKE $2 OR [B] LIKE $2)",
			expected: "([A] LIKE @p1 OR [B] LIKE @p1) AND ([A] LIKE @p2 OR [B] LIKE @p2)",
		},
		{
			name:     "double digit placeholder",
			input:    "[Col] LIKE $12",
			expected: "[Col] LIKE @p12",
		},
		{
			name:     "no placeholders",
			input:    "1 = 1",
			expected: "1 = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := convertPlaceholders(tt.input)
			if got != tt.expected {
				t.Errorf("convertPlaceholders(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestIsStringType(t *testing.T) {
	stringTypes := []string{"CHAR", "NCHAR", "VARCHAR", "NVARCHAR", "TEXT", "NTEXT", "nvarchar"}
	for _, st := range stringTypes {
		if !isStringType(st) {
			t.Errorf("isStringType(%q) = false, want true", st)
		}
	}

	nonStringTypes := []string{"INT", "BIGINT", "DATETIME2", "UNIQUEIDENTIFIER", "VARBINARY", "MONEY"}
	for _, nt := range nonStringTypes {
		if isStringType(nt) {
			t.Errorf("isStringType(%q) = true, want false", nt)
		}
	}
}
