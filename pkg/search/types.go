// Package search implements the cross-table entity search core: whitespace
// tokenization, predicate construction over string-typed columns, bounded
// per-table scans, and budget-limited aggregation of matches across the
// catalog.
package search

// SourceTableKey is the record key carrying the provenance tag added to
// every sampled record before it leaves the aggregator.
const SourceTableKey = "_source_table"

// Record is one sampled row, keyed by column name. Aggregated records
// additionally carry SourceTableKey naming the table they came from.
type Record map[string]any

// TableMatch holds the evidence found in one table: a bounded sample of
// matching rows plus the unbounded match count.
type TableMatch struct {
	TableName      string   `json:"table_name"`
	TotalCount     int64    `json:"total_count"`
	StringColumns  []string `json:"string_columns"`
	SampledRecords []Record `json:"sampled_records"`
}

// SkipReason classifies why a table was skipped during aggregation.
type SkipReason string

const (
	// SkipNoStringColumns marks tables with no searchable text columns.
	SkipNoStringColumns SkipReason = "no_string_columns"
	// SkipCatalogError marks tables whose column metadata could not be read.
	SkipCatalogError SkipReason = "catalog_error"
	// SkipScanError marks tables whose scan query failed.
	SkipScanError SkipReason = "scan_error"
)

// SkipDiagnostic records a table the aggregator passed over and why.
// Skipped tables never fail the aggregate call; diagnostics let callers
// distinguish "no match" from "could not look".
type SkipDiagnostic struct {
	TableName string     `json:"table_name"`
	Reason    SkipReason `json:"reason"`
	Err       error      `json:"-"`
}

// AggregateResult is the outcome of one cross-table search. Matches are
// ordered by catalog enumeration order and capped at the table budget.
// An empty Matches slice is a valid result, not an error.
type AggregateResult struct {
	SearchPhrase string           `json:"search_phrase"`
	Terms        []string         `json:"terms"`
	Matches      []TableMatch     `json:"matches"`
	Skipped      []SkipDiagnostic `json:"skipped,omitempty"`
}

// Records flattens all sampled records across matches, preserving table
// order then row order within each table.
func (r *AggregateResult) Records() []Record {
	var records []Record
	for _, m := range r.Matches {
		records = append(records, m.SampledRecords...)
	}
	return records
}

// TotalCount sums the unbounded match counts across all matched tables.
func (r *AggregateResult) TotalCount() int64 {
	var total int64
	for _, m := range r.Matches {
		total += m.TotalCount
	}
	return total
}
