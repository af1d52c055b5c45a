package mssql

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
	"github.com/dash-inc/dash-engine/pkg/logging"
)

// ScanTable fetches a bounded sample of rows matching pred, then counts
// the total matches with the identical predicate. Both queries run on a
// single connection pinned from the pool and released before returning.
// Returns nil when no row matches; the count query is skipped then.
func (a *Adapter) ScanTable(ctx context.Context, table string, pred datasource.Predicate, sampleLimit int) (*datasource.ScanResult, error) {
	clause := convertPlaceholders(pred.Clause)

	namedParams := make([]any, len(pred.Params))
	for i, param := range pred.Params {
		namedParams[i] = sql.Named(fmt.Sprintf("p%d", i+1), param)
	}

	conn, err := a.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	sampleQuery := fmt.Sprintf("SELECT TOP (%d) * FROM %s WHERE %s", sampleLimit, quoteName(table), clause)
	a.logger.Debug("sampling table",
		zap.String("table", table),
		zap.String("query", logging.SanitizeQuery(sampleQuery)))

	result, err := a.querySample(ctx, conn, sampleQuery, namedParams)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, nil
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", quoteName(table), clause)
	if err := conn.QueryRowContext(ctx, countQuery, namedParams...).Scan(&result.TotalCount); err != nil {
		return nil, fmt.Errorf("count matches in %s: %w", table, err)
	}

	return result, nil
}

// querySample executes the bounded sample query and decodes rows into maps.
func (a *Adapter) querySample(ctx context.Context, conn *sql.Conn, query string, params []any) (*datasource.ScanResult, error) {
	rows, err := conn.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("execute sample query: %w", err)
	}
	defer rows.Close()

	columnNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}

	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("get column types: %w", err)
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values := make([]any, len(columnNames))
		valuePtrs := make([]any, len(columnNames))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		rowMap := make(map[string]any)
		for i, col := range columnNames {
			val := values[i]

			// Convert []byte to string for text columns
			if val != nil {
				if b, ok := val.([]byte); ok {
					if isStringType(columnTypes[i].DatabaseTypeName()) {
						val = string(b)
					}
				}
			}

			rowMap[col] = val
		}
		resultRows = append(resultRows, rowMap)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return &datasource.ScanResult{
		Columns: columnNames,
		Rows:    resultRows,
	}, nil
}
