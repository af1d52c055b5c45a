package postgres

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
	"github.com/dash-inc/dash-engine/pkg/logging"
)

// ScanTable fetches a bounded sample of rows matching pred, then counts the
// total matches with the identical predicate. Both queries run on a single
// connection acquired from the pool and released before returning.
// Returns nil when no row matches; the count query is skipped then.
func (a *Adapter) ScanTable(ctx context.Context, table string, pred datasource.Predicate, sampleLimit int) (*datasource.ScanResult, error) {
	conn, err := a.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Release()

	sampleQuery := fmt.Sprintf("SELECT * FROM %s WHERE %s LIMIT %d", quoteName(table), pred.Clause, sampleLimit)
	a.logger.Debug("sampling table",
		zap.String("table", table),
		zap.String("query", logging.SanitizeQuery(sampleQuery)))

	rows, err := conn.Query(ctx, sampleQuery, pred.Params...)
	if err != nil {
		return nil, fmt.Errorf("execute sample query: %w", err)
	}

	fieldDescs := rows.FieldDescriptions()
	columns := make([]string, len(fieldDescs))
	for i, fd := range fieldDescs {
		columns[i] = string(fd.Name)
	}

	resultRows := make([]map[string]any, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("read row values: %w", err)
		}

		rowMap := make(map[string]any)
		for i, col := range columns {
			rowMap[col] = values[i]
		}
		resultRows = append(resultRows, rowMap)
	}
	rows.Close()

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	if len(resultRows) == 0 {
		return nil, nil
	}

	result := &datasource.ScanResult{
		Columns: columns,
		Rows:    resultRows,
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s", quoteName(table), pred.Clause)
	if err := conn.QueryRow(ctx, countQuery, pred.Params...).Scan(&result.TotalCount); err != nil {
		return nil, fmt.Errorf("count matches in %s: %w", table, err)
	}

	return result, nil
}
