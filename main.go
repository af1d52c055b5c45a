package main

import (
	"context"
	"log"
	"net/http"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/adapters/datasource"
	"github.com/dash-inc/dash-engine/pkg/config"
	"github.com/dash-inc/dash-engine/pkg/handlers"
	"github.com/dash-inc/dash-engine/pkg/llm"
	"github.com/dash-inc/dash-engine/pkg/logging"
	"github.com/dash-inc/dash-engine/pkg/mcp"
	mcptools "github.com/dash-inc/dash-engine/pkg/mcp/tools"
	"github.com/dash-inc/dash-engine/pkg/search"
	"github.com/dash-inc/dash-engine/pkg/services"

	// Register datasource drivers.
	_ "github.com/dash-inc/dash-engine/pkg/adapters/datasource/mssql"
	_ "github.com/dash-inc/dash-engine/pkg/adapters/datasource/postgres"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Load configuration
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.NewLogger(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("base_url", cfg.BaseURL),
		zap.String("target_driver", cfg.Target.Driver),
		zap.String("target_database", cfg.Target.Database),
		zap.Int("sample_limit", cfg.Search.SampleLimit),
		zap.Int("table_budget", cfg.Search.TableBudget))

	ctx := context.Background()

	// Connect to the target database
	adapter, err := datasource.New(ctx, &cfg.Target, logger)
	if err != nil {
		logger.Fatal("Failed to connect to target database",
			zap.String("driver", cfg.Target.Driver),
			zap.String("error", logging.SanitizeError(err)))
	}
	defer func() { _ = adapter.Close() }()

	// Build the summarizer client when AI is enabled
	var summarizer llm.SummaryClient
	modelName := ""
	if cfg.AI.Enabled {
		summarizer, err = llm.NewSummaryClient(&cfg.AI, logger)
		if err != nil {
			logger.Fatal("Failed to create summarizer client", zap.Error(err))
		}
		modelName = summarizer.GetModel()
	} else {
		logger.Warn("Summarizer disabled, search responses will carry deterministic summaries")
	}

	// Wire the search core
	aggregator := search.NewAggregator(adapter, &cfg.Search, logger)
	searchService := services.NewSearchService(adapter, aggregator, summarizer, cfg.AI.Temperature, logger)

	mux := http.NewServeMux()

	// Register handlers
	healthHandler := handlers.NewHealthHandler(cfg, adapter, modelName, logger)
	healthHandler.RegisterRoutes(mux)

	searchHandler := handlers.NewSearchHandler(searchService, logger)
	searchHandler.RegisterRoutes(mux)

	// MCP tool surface
	mcpServer := mcp.NewServer("dash-engine", cfg.Version, logger)
	mcptools.RegisterSearchTools(mcpServer.MCP(), &mcptools.SearchToolDeps{
		SearchService: searchService,
		Logger:        logger,
	})
	mux.Handle("/mcp", mcpServer.NewStreamableHTTPServer())

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting dash-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
