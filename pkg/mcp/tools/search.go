// Package tools provides MCP tool implementations for dash-engine.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/apperrors"
	"github.com/dash-inc/dash-engine/pkg/models"
	"github.com/dash-inc/dash-engine/pkg/services"
)

// SearchToolDeps contains dependencies for search tools.
type SearchToolDeps struct {
	SearchService services.SearchService
	Logger        *zap.Logger
}

// RegisterSearchTools registers entity search MCP tools.
func RegisterSearchTools(s *server.MCPServer, deps *SearchToolDeps) {
	registerSearchEntityTool(s, deps)
	registerListTablesTool(s, deps)
	registerGetTableSchemaTool(s, deps)
}

// registerSearchEntityTool adds the search_entity tool for cross-table
// discovery of people and organizations.
func registerSearchEntityTool(s *server.MCPServer, deps *SearchToolDeps) {
	tool := mcp.NewTool(
		"search_entity",
		mcp.WithDescription(
			"Search for a person or organization across every table in the target database. "+
				"Splits the question into terms, matches them against all text columns, "+
				"and returns sampled records per table plus a structured profile of the entity. "+
				"Use this when asked who someone is or where they appear in the data.",
		),
		mcp.WithString(
			"question",
			mcp.Required(),
			mcp.Description("The search phrase, e.g. a name like 'Mark Elinski'"),
		),
		mcp.WithNumber(
			"budget",
			mcp.Description("Maximum number of matching tables to return (defaults to the configured table budget)"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		question, err := req.RequireString("question")
		if err != nil {
			return mcp.NewToolResultError("question parameter is required"), nil
		}

		searchReq := &models.SearchRequest{Question: question}
		if budgetVal, ok := req.Params.Arguments.(map[string]any)["budget"]; ok {
			if budgetFloat, ok := budgetVal.(float64); ok {
				budget := int(budgetFloat)
				searchReq.Budget = &budget
			}
		}

		response, err := deps.SearchService.Search(ctx, searchReq)
		if err != nil {
			if errors.Is(err, apperrors.ErrEmptySearchPhrase) {
				return mcp.NewToolResultError("question must contain at least one term"), nil
			}
			if errors.Is(err, apperrors.ErrNegativeBudget) {
				return mcp.NewToolResultError("budget must not be negative"), nil
			}
			return nil, fmt.Errorf("search failed: %w", err)
		}

		jsonResult, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerListTablesTool adds the list_tables tool for catalog discovery.
func registerListTablesTool(s *server.MCPServer, deps *SearchToolDeps) {
	tool := mcp.NewTool(
		"list_tables",
		mcp.WithDescription(
			"List all tables in the target database. "+
				"Use this to explore what data is available before searching.",
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		tables, err := deps.SearchService.ListTables(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list tables: %w", err)
		}

		result := struct {
			Tables []string `json:"tables"`
			Count  int      `json:"count"`
		}{
			Tables: tables,
			Count:  len(tables),
		}

		jsonResult, err := json.Marshal(result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}

// registerGetTableSchemaTool adds the get_table_schema tool for inspecting
// a table's searchable columns.
func registerGetTableSchemaTool(s *server.MCPServer, deps *SearchToolDeps) {
	tool := mcp.NewTool(
		"get_table_schema",
		mcp.WithDescription(
			"Get the searchable (text-typed) columns of a table. "+
				"Use list_tables first to discover table names.",
		),
		mcp.WithString(
			"table",
			mcp.Required(),
			mcp.Description("Table name to inspect"),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithIdempotentHintAnnotation(true),
		mcp.WithOpenWorldHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		table, err := req.RequireString("table")
		if err != nil {
			return mcp.NewToolResultError("table parameter is required"), nil
		}

		schema, err := deps.SearchService.TableSchema(ctx, table)
		if err != nil {
			if errors.Is(err, apperrors.ErrTableNotFound) {
				return mcp.NewToolResultError(fmt.Sprintf("table %q not found", table)), nil
			}
			return nil, fmt.Errorf("failed to get table schema: %w", err)
		}

		jsonResult, err := json.Marshal(schema)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal result: %w", err)
		}

		return mcp.NewToolResultText(string(jsonResult)), nil
	})
}
