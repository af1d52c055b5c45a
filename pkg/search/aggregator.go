package search

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
	"github.com/dash-inc/dash-engine/pkg/apperrors"
	"github.com/dash-inc/dash-engine/pkg/config"
	"github.com/dash-inc/dash-engine/pkg/logging"
)

// Source is the slice of the datasource contract the aggregator consumes.
// A full datasource.Adapter satisfies it.
type Source interface {
	datasource.SchemaIntrospector
	datasource.TableScanner
	Dialect() datasource.Dialect
}

// Aggregator drives the scan loop: it enumerates tables in catalog order,
// scans each searchable table sequentially, and stops once the table
// budget is filled. Tables that cannot be searched or scanned are skipped
// with a diagnostic; only a catalog listing failure aborts the search.
type Aggregator struct {
	source      Source
	sampleLimit int
	tableBudget int
	logger      *zap.Logger
}

// NewAggregator creates an aggregator over the given source with limits
// from cfg. If logger is nil, a no-op logger is used.
func NewAggregator(src Source, cfg *config.SearchConfig, logger *zap.Logger) *Aggregator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Aggregator{
		source:      src,
		sampleLimit: cfg.SampleLimit,
		tableBudget: cfg.TableBudget,
		logger:      logger.Named("aggregator"),
	}
}

// Aggregate searches all tables for the given phrase and merges the
// per-table evidence. Matches are appended in catalog order and capped at
// the configured table budget; with a zero budget no table is scanned. An
// empty result is returned when nothing matches, never an error.
func (a *Aggregator) Aggregate(ctx context.Context, searchPhrase string) (*AggregateResult, error) {
	return a.AggregateWithBudget(ctx, searchPhrase, a.tableBudget)
}

// AggregateWithBudget is Aggregate with a per-call table budget in place
// of the configured one.
func (a *Aggregator) AggregateWithBudget(ctx context.Context, searchPhrase string, tableBudget int) (*AggregateResult, error) {
	terms := Tokenize(searchPhrase)
	if len(terms) == 0 {
		return nil, apperrors.ErrEmptySearchPhrase
	}

	tables, err := a.source.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	result := &AggregateResult{
		SearchPhrase: searchPhrase,
		Terms:        terms,
		Matches:      make([]TableMatch, 0, tableBudget),
	}

	dialect := a.source.Dialect()

	for _, table := range tables {
		if len(result.Matches) >= tableBudget {
			break
		}

		columns, err := a.source.ListStringColumns(ctx, table)
		if err != nil {
			a.logger.Debug("skipping table, column metadata unavailable",
				zap.String("table", table),
				zap.String("error", logging.SanitizeError(err)))
			result.Skipped = append(result.Skipped, SkipDiagnostic{
				TableName: table, Reason: SkipCatalogError, Err: err,
			})
			continue
		}
		if len(columns) == 0 {
			result.Skipped = append(result.Skipped, SkipDiagnostic{
				TableName: table, Reason: SkipNoStringColumns,
			})
			continue
		}

		pred := BuildPredicate(columns, terms, dialect)

		scan, err := a.source.ScanTable(ctx, table, pred, a.sampleLimit)
		if err != nil {
			a.logger.Debug("skipping table, scan failed",
				zap.String("table", table),
				zap.String("error", logging.SanitizeError(err)))
			result.Skipped = append(result.Skipped, SkipDiagnostic{
				TableName: table, Reason: SkipScanError, Err: err,
			})
			continue
		}
		if scan == nil {
			continue
		}

		result.Matches = append(result.Matches, newTableMatch(table, columns, scan))

		a.logger.Debug("table matched",
			zap.String("table", table),
			zap.Int64("total_count", scan.TotalCount),
			zap.Int("sampled", len(scan.Rows)))
	}

	return result, nil
}

// newTableMatch tags every sampled row with its source table.
func newTableMatch(table string, columns []datasource.ColumnDescriptor, scan *datasource.ScanResult) TableMatch {
	columnNames := make([]string, len(columns))
	for i, col := range columns {
		columnNames[i] = col.Name
	}

	records := make([]Record, 0, len(scan.Rows))
	for _, row := range scan.Rows {
		record := make(Record, len(row)+1)
		for k, v := range row {
			record[k] = v
		}
		record[SourceTableKey] = table
		records = append(records, record)
	}

	return TableMatch{
		TableName:      table,
		TotalCount:     scan.TotalCount,
		StringColumns:  columnNames,
		SampledRecords: records,
	}
}
