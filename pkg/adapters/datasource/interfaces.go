// Package datasource defines the adapter-neutral contracts for catalog
// introspection and bounded table scanning against a target database.
package datasource

import (
	"context"
	"strings"
)

// ColumnDescriptor describes a column as declared in the store's catalog.
// Derived once per table and immutable for the duration of a scan.
type ColumnDescriptor struct {
	Name         string `json:"name"`
	DeclaredType string `json:"declared_type"`
}

// Predicate is a parameterized filter over one table's string columns.
// Clause uses $1, $2, ... positional placeholders; adapters translate
// them to their dialect's parameter syntax. Params supplies the bound
// values in placeholder order. Search terms are always bound, never
// spliced into the clause text.
type Predicate struct {
	Clause string
	Params []any
}

// ScanResult holds the outcome of a single-table scan: a bounded row
// sample plus the unbounded total match count for the same predicate.
type ScanResult struct {
	Columns    []string
	Rows       []map[string]any
	TotalCount int64
}

// SchemaIntrospector enumerates tables and their string-typed columns.
type SchemaIntrospector interface {
	// ListTables returns all user table names in catalog order.
	// The order is whatever the underlying catalog yields; callers must
	// not assume it is stable across stores.
	ListTables(ctx context.Context) ([]string, error)

	// ListStringColumns returns the columns of table whose declared type
	// matches one of the string-type markers. An empty slice means the
	// table has no searchable columns.
	ListStringColumns(ctx context.Context, table string) ([]ColumnDescriptor, error)
}

// TableScanner runs the bounded sample + count query pair for one table.
type TableScanner interface {
	// ScanTable fetches up to sampleLimit rows of table matching pred,
	// then counts the total matches with the identical predicate. Both
	// queries run on one connection acquired for the duration of the
	// call and released before it returns.
	// Returns nil (not an error) when no rows match; the count query is
	// skipped in that case.
	ScanTable(ctx context.Context, table string, pred Predicate, sampleLimit int) (*ScanResult, error)
}

// Dialect carries the per-driver SQL fragments the predicate builder needs.
type Dialect struct {
	// QuoteIdentifier safely quotes a table or column name.
	QuoteIdentifier func(name string) string
	// MatchOperator is the case-insensitive substring match operator
	// ("LIKE" on SQL Server, "ILIKE" on Postgres).
	MatchOperator string
}

// Adapter bundles everything the search core needs from one driver.
// Each adapter owns its connection pool and must be closed when done.
type Adapter interface {
	SchemaIntrospector
	TableScanner

	// TestConnection verifies the database is reachable with valid credentials.
	TestConnection(ctx context.Context) error

	// Dialect returns the SQL fragments for this driver.
	Dialect() Dialect

	// Close releases the connection pool.
	Close() error
}

// stringTypeMarkers are matched as case-insensitive substrings of a
// column's declared type. Substring matching is intentionally
// permissive: "NCHAR", "LONGTEXT", "CHARACTER VARYING" all qualify.
var stringTypeMarkers = []string{"VARCHAR", "NVARCHAR", "TEXT", "CHAR"}

// IsStringDeclaredType reports whether a declared column type is
// searchable as text.
func IsStringDeclaredType(declaredType string) bool {
	upper := strings.ToUpper(declaredType)
	for _, marker := range stringTypeMarkers {
		if strings.Contains(upper, marker) {
			return true
		}
	}
	return false
}
