package models

import (
	"github.com/dash-inc/dash-engine/pkg/search"
)

// SearchRequest is the body of POST /search. Budget, when set, caps how
// many matching tables this search may accumulate in place of the
// configured table budget; zero means scan nothing.
type SearchRequest struct {
	Question string `json:"question"`
	Budget   *int   `json:"budget,omitempty"`
}

// SearchResponse pairs the aggregated evidence with the extracted profile.
type SearchResponse struct {
	SearchID     string              `json:"search_id"`
	Question     string              `json:"question"`
	Profile      *EntityProfile      `json:"profile"`
	Matches      []search.TableMatch `json:"matches"`
	TotalRecords int64               `json:"total_records"`
	Skipped      []SkippedTable      `json:"skipped,omitempty"`
}

// SkippedTable is the outward form of a skip diagnostic. The underlying
// error is summarized as text so the envelope stays serializable.
type SkippedTable struct {
	TableName string `json:"table_name"`
	Reason    string `json:"reason"`
	Detail    string `json:"detail,omitempty"`
}

// TablesResponse is the body of GET /tables.
type TablesResponse struct {
	Tables []string `json:"tables"`
	Count  int      `json:"count"`
}

// ColumnSchema describes one column in a table schema response.
type ColumnSchema struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// TableSchemaResponse is the body of GET /schema/{table}. Only string
// columns are reported; they are the ones the search engine consults.
type TableSchemaResponse struct {
	TableName string         `json:"table_name"`
	Columns   []ColumnSchema `json:"columns"`
}

// ErrorResponse is the uniform error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}
