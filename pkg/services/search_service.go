package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/apperrors"
	"github.com/dash-inc/dash-engine/pkg/llm"
	"github.com/dash-inc/dash-engine/pkg/logging"
	"github.com/dash-inc/dash-engine/pkg/models"
	"github.com/dash-inc/dash-engine/pkg/prompts"
	"github.com/dash-inc/dash-engine/pkg/retry"
	"github.com/dash-inc/dash-engine/pkg/search"
	sqlcheck "github.com/dash-inc/dash-engine/pkg/sql"
)

// SearchService defines the interface for entity search operations.
type SearchService interface {
	// Search runs a cross-table search for the request's terms and
	// returns the aggregated evidence with an extracted profile. A
	// request budget, when present, overrides the configured table
	// budget for this call.
	Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error)

	// ListTables returns all table names visible in the target catalog.
	ListTables(ctx context.Context) ([]string, error)

	// TableSchema returns the searchable (string-typed) columns of a table.
	// Returns apperrors.ErrTableNotFound for unknown tables.
	TableSchema(ctx context.Context, table string) (*models.TableSchemaResponse, error)
}

// searchService implements SearchService.
type searchService struct {
	source      search.Source
	aggregator  *search.Aggregator
	summarizer  llm.SummaryClient // nil when the summarizer is disabled
	temperature float64
	retryConfig *retry.Config
	logger      *zap.Logger
}

// NewSearchService creates a search service. summarizer may be nil, in
// which case profiles carry a deterministic summary instead of a
// model-written one.
func NewSearchService(
	source search.Source,
	aggregator *search.Aggregator,
	summarizer llm.SummaryClient,
	temperature float64,
	logger *zap.Logger,
) SearchService {
	return &searchService{
		source:      source,
		aggregator:  aggregator,
		summarizer:  summarizer,
		temperature: temperature,
		retryConfig: retry.DefaultConfig(),
		logger:      logger.Named("search"),
	}
}

// Search runs the full flow: audit the phrase, aggregate evidence across
// tables, then summarize. The scan itself is never retried; only the
// summarizer call is, since it talks to a flaky remote model endpoint.
func (s *searchService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	question := req.Question
	searchID := uuid.New().String()
	logger := s.logger.With(zap.String("search_id", searchID))

	// Advisory audit: terms are always parameter-bound, so suspicious
	// phrases are logged for review rather than rejected.
	for _, finding := range sqlcheck.AuditSearchTerms(search.Tokenize(question)) {
		logger.Warn("search term matches injection pattern",
			zap.String("fingerprint", finding.Fingerprint))
	}

	var result *search.AggregateResult
	var err error
	if req.Budget != nil {
		if *req.Budget < 0 {
			return nil, apperrors.ErrNegativeBudget
		}
		result, err = s.aggregator.AggregateWithBudget(ctx, question, *req.Budget)
	} else {
		result, err = s.aggregator.Aggregate(ctx, question)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("search completed",
		zap.Int("tables_matched", len(result.Matches)),
		zap.Int("tables_skipped", len(result.Skipped)),
		zap.Int64("total_records", result.TotalCount()))

	response := &models.SearchResponse{
		SearchID:     searchID,
		Question:     question,
		Matches:      result.Matches,
		TotalRecords: result.TotalCount(),
		Skipped:      skippedTables(result.Skipped),
	}

	if len(result.Matches) == 0 {
		response.Profile = models.NotFoundProfile()
		return response, nil
	}

	response.Profile = ExtractProfile(result, s.summarize(ctx, question, result, logger))
	return response, nil
}

// summarize asks the model for an introduction, retrying transient
// failures. A disabled or persistently failing summarizer degrades to a
// deterministic summary; evidence already gathered is never discarded.
func (s *searchService) summarize(ctx context.Context, question string, result *search.AggregateResult, logger *zap.Logger) string {
	if s.summarizer == nil {
		return fallbackSummary(result)
	}

	prompt := prompts.BuildIntroductionPrompt(question, result)

	summary, err := retry.DoWithResult(ctx, s.retryConfig, func() (string, error) {
		return s.summarizer.GenerateResponse(ctx, prompt, prompts.IntroductionSystemMessage, s.temperature)
	})
	if err != nil {
		logger.Error("summarizer failed, using fallback summary", zap.Error(err))
		return fallbackSummary(result)
	}

	return summary
}

// fallbackSummary renders the evidence without a model.
func fallbackSummary(result *search.AggregateResult) string {
	tableNames := make([]string, len(result.Matches))
	for i, m := range result.Matches {
		tableNames[i] = m.TableName
	}
	return fmt.Sprintf("Found %d record(s) across %d table(s): %s.",
		result.TotalCount(), len(result.Matches), strings.Join(tableNames, ", "))
}

func skippedTables(diagnostics []search.SkipDiagnostic) []models.SkippedTable {
	if len(diagnostics) == 0 {
		return nil
	}
	skipped := make([]models.SkippedTable, len(diagnostics))
	for i, d := range diagnostics {
		skipped[i] = models.SkippedTable{
			TableName: d.TableName,
			Reason:    string(d.Reason),
		}
		if d.Err != nil {
			// Scan and catalog errors come from the driver and may
			// carry connection details; redact before they leave.
			skipped[i].Detail = logging.SanitizeError(d.Err)
		}
	}
	return skipped
}

// ListTables returns all table names in catalog order.
func (s *searchService) ListTables(ctx context.Context) ([]string, error) {
	tables, err := s.source.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}
	return tables, nil
}

// TableSchema returns the string-typed columns of the named table.
func (s *searchService) TableSchema(ctx context.Context, table string) (*models.TableSchemaResponse, error) {
	tables, err := s.source.ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tables: %w", err)
	}

	found := false
	for _, t := range tables {
		if t == table {
			found = true
			break
		}
	}
	if !found {
		return nil, apperrors.ErrTableNotFound
	}

	columns, err := s.source.ListStringColumns(ctx, table)
	if err != nil {
		return nil, fmt.Errorf("list columns for %s: %w", table, err)
	}

	schema := &models.TableSchemaResponse{
		TableName: table,
		Columns:   make([]models.ColumnSchema, len(columns)),
	}
	for i, col := range columns {
		schema.Columns[i] = models.ColumnSchema{Name: col.Name, Type: col.DeclaredType}
	}
	return schema, nil
}
