package postgres

import (
	"context"
	"fmt"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
)

// ListTables returns base table names from the public schema in catalog
// order. No ORDER BY is applied: the scan loop consumes tables in whatever
// order the catalog yields them.
func (a *Adapter) ListTables(ctx context.Context) ([]string, error) {
	query := `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		  AND table_type = 'BASE TABLE'`

	rows, err := a.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan table name: %w", err)
		}
		tables = append(tables, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tables: %w", err)
	}

	return tables, nil
}

// ListStringColumns returns the text-typed columns of a table, in ordinal
// position order. Column types are reported as declared (e.g. "character
// varying") and filtered with the shared string-type markers.
func (a *Adapter) ListStringColumns(ctx context.Context, table string) ([]datasource.ColumnDescriptor, error) {
	query := `
		SELECT column_name, data_type
		FROM information_schema.columns
		WHERE table_schema = 'public'
		  AND table_name = $1
		ORDER BY ordinal_position`

	rows, err := a.pool.Query(ctx, query, table)
	if err != nil {
		return nil, fmt.Errorf("list columns for %s: %w", table, err)
	}
	defer rows.Close()

	var columns []datasource.ColumnDescriptor
	for rows.Next() {
		var col datasource.ColumnDescriptor
		if err := rows.Scan(&col.Name, &col.DeclaredType); err != nil {
			return nil, fmt.Errorf("scan column descriptor: %w", err)
		}
		if datasource.IsStringDeclaredType(col.DeclaredType) {
			columns = append(columns, col)
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate columns: %w", err)
	}

	return columns, nil
}
