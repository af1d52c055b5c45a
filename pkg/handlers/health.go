package handlers

import (
	"context"
	"net/http"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/config"
	"github.com/dash-inc/dash-engine/pkg/logging"
)

// healthCheckTimeout bounds the target database probe so a hung connection
// cannot stall the health endpoint.
const healthCheckTimeout = 5 * time.Second

// ConnectionTester is the slice of the datasource adapter the health
// check needs.
type ConnectionTester interface {
	TestConnection(ctx context.Context) error
}

// HealthResponse reports overall status plus per-dependency detail.
type HealthResponse struct {
	Status        string `json:"status"`
	Database      bool   `json:"database"`
	DatabaseError string `json:"database_error,omitempty"`
	Summarizer    bool   `json:"summarizer"`
	Model         string `json:"model,omitempty"`
}

// PingResponse contains service status and version information.
type PingResponse struct {
	Status      string `json:"status"`
	Version     string `json:"version"`
	Service     string `json:"service"`
	GoVersion   string `json:"go_version"`
	Hostname    string `json:"hostname"`
	Environment string `json:"environment"`
}

// HealthHandler handles health check and ping endpoints.
type HealthHandler struct {
	cfg       *config.Config
	target    ConnectionTester
	modelName string // empty when the summarizer is disabled
	logger    *zap.Logger
}

// NewHealthHandler creates a new HealthHandler. modelName is the configured
// summarizer model, or empty when summarization is disabled.
func NewHealthHandler(cfg *config.Config, target ConnectionTester, modelName string, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{cfg: cfg, target: target, modelName: modelName, logger: logger}
}

// RegisterRoutes registers the health handler's routes on the given mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ping", h.Ping)
}

// Health handles GET /health requests. Status is "ok" when the target
// database answers and the summarizer is configured, "degraded" otherwise.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
	defer cancel()

	response := HealthResponse{
		Status:     "ok",
		Database:   true,
		Summarizer: h.modelName != "",
		Model:      h.modelName,
	}

	if err := h.target.TestConnection(ctx); err != nil {
		response.Database = false
		// Driver errors can echo the connection string, credentials
		// included; never serialize them verbatim.
		response.DatabaseError = logging.SanitizeError(err)
	}

	if !response.Database || !response.Summarizer {
		response.Status = "degraded"
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode health response", zap.Error(err))
	}
}

// Ping handles GET /ping requests.
// Returns detailed service information including version and environment.
func (h *HealthHandler) Ping(w http.ResponseWriter, r *http.Request) {
	hostname, err := os.Hostname()
	if err != nil {
		http.Error(w, "failed to get hostname", http.StatusInternalServerError)
		return
	}

	response := PingResponse{
		Status:      "ok",
		Version:     h.cfg.Version,
		Service:     "dash-engine",
		GoVersion:   runtime.Version(),
		Hostname:    hostname,
		Environment: h.cfg.Env,
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode ping response", zap.Error(err))
	}
}
