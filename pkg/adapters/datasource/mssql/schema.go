package mssql

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
)

// Both catalog queries resolve against the connection's default schema.
// Listing is restricted to SCHEMA_ID() so every name ListTables yields
// can be looked up and scanned unqualified; tables in other schemas are
// out of scope rather than listed-but-unsearchable.
const (
	listTablesQuery = `
	SET NOCOUNT ON;
	SELECT t.name AS table_name
	FROM sys.tables t
	WHERE t.is_ms_shipped = 0
	  AND t.schema_id = SCHEMA_ID()
	`

	listColumnsQuery = `
	SET NOCOUNT ON;
	SELECT
	    c.name AS column_name,
	    tp.name AS data_type
	FROM sys.columns c
	INNER JOIN sys.types tp ON c.user_type_id = tp.user_type_id
	WHERE c.object_id = OBJECT_ID(QUOTENAME(@table))
	ORDER BY c.column_id
	`
)

// ListTables returns the user table names of the default schema in
// catalog order. No ORDER BY is applied: the aggregator consumes tables
// in whatever order the catalog yields them, and callers must not rely
// on it.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	rows, err := a.db.QueryContext(ctx, listTablesQuery)
	if err != nil {
		return nil, fmt.Errorf("query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table row: %w", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate table rows: %w", err)
	}

	return tables, nil
}

// ListStringColumns returns the string-typed columns of a table.
// The declared type is matched by substring against the shared markers,
// so nvarchar(max), ntext and friends all qualify.
func (a *Adapter) ListStringColumns(ctx context.Context, table string) ([]datasource.ColumnDescriptor, error) {
	rows, err := a.db.QueryContext(ctx, listColumnsQuery, sql.Named("table", table))
	if err != nil {
		return nil, fmt.Errorf("query columns for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []datasource.ColumnDescriptor
	for rows.Next() {
		var col datasource.ColumnDescriptor
		if err := rows.Scan(&col.Name, &col.DeclaredType); err != nil {
			return nil, fmt.Errorf("scan column row: %w", err)
		}
		if datasource.IsStringDeclaredType(col.DeclaredType) {
			columns = append(columns, col)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate column rows: %w", err)
	}

	return columns, nil
}
