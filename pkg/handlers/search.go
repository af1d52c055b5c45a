package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/apperrors"
	"github.com/dash-inc/dash-engine/pkg/models"
	"github.com/dash-inc/dash-engine/pkg/services"
)

// SearchHandler exposes the entity search and catalog endpoints.
type SearchHandler struct {
	service services.SearchService
	logger  *zap.Logger
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(service services.SearchService, logger *zap.Logger) *SearchHandler {
	return &SearchHandler{service: service, logger: logger}
}

// RegisterRoutes registers the search handler's routes on the given mux.
func (h *SearchHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /search", h.Search)
	mux.HandleFunc("GET /tables", h.ListTables)
	mux.HandleFunc("GET /schema/{table}", h.TableSchema)
}

// Search handles POST /search requests.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Question) == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "question is required")
		return
	}

	response, err := h.service.Search(r.Context(), &req)
	if err != nil {
		if errors.Is(err, apperrors.ErrEmptySearchPhrase) {
			_ = ErrorResponse(w, http.StatusBadRequest, "question is required")
			return
		}
		if errors.Is(err, apperrors.ErrNegativeBudget) {
			_ = ErrorResponse(w, http.StatusBadRequest, "budget must not be negative")
			return
		}
		h.logger.Error("search failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "search failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode search response", zap.Error(err))
	}
}

// ListTables handles GET /tables requests.
func (h *SearchHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := h.service.ListTables(r.Context())
	if err != nil {
		h.logger.Error("list tables failed", zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "failed to list tables")
		return
	}

	response := models.TablesResponse{Tables: tables, Count: len(tables)}
	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to encode tables response", zap.Error(err))
	}
}

// TableSchema handles GET /schema/{table} requests.
func (h *SearchHandler) TableSchema(w http.ResponseWriter, r *http.Request) {
	table := r.PathValue("table")

	schema, err := h.service.TableSchema(r.Context(), table)
	if err != nil {
		if errors.Is(err, apperrors.ErrTableNotFound) {
			_ = ErrorResponse(w, http.StatusNotFound, "table not found")
			return
		}
		h.logger.Error("table schema failed", zap.Error(err), zap.String("table", table))
		_ = ErrorResponse(w, http.StatusInternalServerError, "failed to get table schema")
		return
	}

	if err := WriteJSON(w, http.StatusOK, schema); err != nil {
		h.logger.Error("Failed to encode schema response", zap.Error(err))
	}
}
