package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/dash-inc/dash-engine/pkg/apperrors"
	"github.com/dash-inc/dash-engine/pkg/models"
)

// mockSearchService is a function-field mock of services.SearchService.
type mockSearchService struct {
	SearchFunc      func(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error)
	ListTablesFunc  func(ctx context.Context) ([]string, error)
	TableSchemaFunc func(ctx context.Context, table string) (*models.TableSchemaResponse, error)
}

func (m *mockSearchService) Search(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
	return m.SearchFunc(ctx, req)
}

func (m *mockSearchService) ListTables(ctx context.Context) ([]string, error) {
	return m.ListTablesFunc(ctx)
}

func (m *mockSearchService) TableSchema(ctx context.Context, table string) (*models.TableSchemaResponse, error) {
	return m.TableSchemaFunc(ctx, table)
}

func TestSearchEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockSearchService{
			SearchFunc: func(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
				assert.Equal(t, "Who is Linda?", req.Question)
				require.NotNil(t, req.Budget)
				assert.Equal(t, 3, *req.Budget)
				return &models.SearchResponse{
					SearchID: "abc",
					Question: req.Question,
					Profile:  &models.EntityProfile{Name: "Linda Smith"},
				}, nil
			},
		}
		handler := NewSearchHandler(svc, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"question":"Who is Linda?","budget":3}`))
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.SearchResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Linda Smith", resp.Profile.Name)
	})

	t.Run("negative budget maps to bad request", func(t *testing.T) {
		svc := &mockSearchService{
			SearchFunc: func(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
				return nil, apperrors.ErrNegativeBudget
			},
		}
		handler := NewSearchHandler(svc, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"question":"x","budget":-1}`))
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid body", func(t *testing.T) {
		handler := NewSearchHandler(&mockSearchService{}, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`not json`))
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blank question", func(t *testing.T) {
		handler := NewSearchHandler(&mockSearchService{}, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"question":"  "}`))
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty phrase error maps to bad request", func(t *testing.T) {
		svc := &mockSearchService{
			SearchFunc: func(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
				return nil, apperrors.ErrEmptySearchPhrase
			},
		}
		handler := NewSearchHandler(svc, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"question":"x"}`))
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("internal error", func(t *testing.T) {
		svc := &mockSearchService{
			SearchFunc: func(ctx context.Context, req *models.SearchRequest) (*models.SearchResponse, error) {
				return nil, errors.New("catalog unavailable")
			},
		}
		handler := NewSearchHandler(svc, zap.NewNop())

		req := httptest.NewRequest(http.MethodPost, "/search", strings.NewReader(`{"question":"x"}`))
		rec := httptest.NewRecorder()
		handler.Search(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestListTablesEndpoint(t *testing.T) {
	svc := &mockSearchService{
		ListTablesFunc: func(ctx context.Context) ([]string, error) {
			return []string{"Contacts", "Customers"}, nil
		},
	}
	handler := NewSearchHandler(svc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/tables", nil)
	rec := httptest.NewRecorder()
	handler.ListTables(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.TablesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, []string{"Contacts", "Customers"}, resp.Tables)
}

func TestTableSchemaEndpoint(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockSearchService{
			TableSchemaFunc: func(ctx context.Context, table string) (*models.TableSchemaResponse, error) {
				assert.Equal(t, "Contacts", table)
				return &models.TableSchemaResponse{
					TableName: "Contacts",
					Columns:   []models.ColumnSchema{{Name: "FirstName", Type: "nvarchar"}},
				}, nil
			},
		}
		handler := NewSearchHandler(svc, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/schema/Contacts", nil)
		req.SetPathValue("table", "Contacts")
		rec := httptest.NewRecorder()
		handler.TableSchema(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp models.TableSchemaResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Contacts", resp.TableName)
	})

	t.Run("not found", func(t *testing.T) {
		svc := &mockSearchService{
			TableSchemaFunc: func(ctx context.Context, table string) (*models.TableSchemaResponse, error) {
				return nil, apperrors.ErrTableNotFound
			},
		}
		handler := NewSearchHandler(svc, zap.NewNop())

		req := httptest.NewRequest(http.MethodGet, "/schema/Missing", nil)
		req.SetPathValue("table", "Missing")
		rec := httptest.NewRecorder()
		handler.TableSchema(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
