package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/alexanderramin/horizon/internal/remote"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBackend(t *testing.T, routes map[string]any) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if status, isStatus := body.(int); isStatus {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func backendClient(baseURL string) remote.Client {
	cfg := remote.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.TimeoutMs = 2000
	cfg.MaxRetries = 0
	return remote.NewClient(cfg, nil)
}

func portfolioRoutes() map[string]any {
	empty := []any{}
	return map[string]any{
		"/api/dashboard/stats": map[string]any{
			"total_projects": 2, "active_projects": 2, "total_expenses": 500, "overdue_milestones": 1,
		},
		"/api/users": []map[string]any{
			{"id": "u-1", "name": "Dana", "email": "dana@example.com", "role": "admin"},
		},
		"/api/projects": []map[string]any{
			{"id": "p-1", "short_id": "SHOP01", "name": "Shop", "stage": "execution",
				"start_date": "2024-01-01T00:00:00", "end_date": "2024-06-01T00:00:00", "budget": 5000, "manager_id": "u-1"},
			{"id": "p-2", "name": "Warehouse", "stage": "planning",
				"start_date": "2024-03-01", "end_date": "2024-09-01", "budget": 0, "manager_id": "u-1"},
		},
		"/api/projects/p-1/resources": []map[string]any{
			{"id": "r-1", "project_id": "p-1", "name": "Agency", "type": "vendor", "cost_per_unit": 100, "availability": "", "allocated_amount": 5},
		},
		"/api/projects/p-1/milestones": []map[string]any{
			{"id": "m-1", "project_id": "p-1", "title": "Soft launch", "due_date": "2024-04-01", "completed": false},
		},
		"/api/projects/p-1/expenses": []map[string]any{
			{"id": "e-1", "project_id": "p-1", "resource_id": "r-1", "description": "Vendor: Agency", "amount": 500, "expense_type": "vendor"},
		},
		"/api/projects/p-1/documents": []map[string]any{
			{"id": "d-1", "project_id": "p-1", "name": "Brief", "filename": "brief.pdf", "file_path": "/uploads/brief.pdf", "file_size": 10, "uploaded_by": "dana"},
		},
		"/api/projects/p-2/resources":  empty,
		"/api/projects/p-2/milestones": empty,
		"/api/projects/p-2/expenses":   empty,
		"/api/projects/p-2/documents":  empty,
	}
}

func TestSyncService_Pull(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	srv, hits := newBackend(t, portfolioRoutes())

	svc := NewSyncService(backendClient(srv.URL), NewImportService(r.uow))
	result, err := svc.Pull(ctx)
	require.NoError(t, err)

	assert.Len(t, result.Projects, 2)
	assert.Equal(t, 1, result.Users)
	assert.Equal(t, 1, result.Resources)
	assert.Equal(t, 1, result.Expenses)
	assert.Equal(t, 1, result.Documents)
	assert.Equal(t, int32(11), hits.Load(), "health check, two list calls, four per project")

	shop, err := r.projects.GetByShortID(ctx, "SHOP01")
	require.NoError(t, err)
	assert.Equal(t, 5000.0, shop.Budget)

	spent, err := r.expenses.SumByProject(ctx, "p-1")
	require.NoError(t, err)
	assert.Equal(t, 500.0, spent)
}

func TestSyncService_Pull_FailedFetchWritesNothing(t *testing.T) {
	r := setupRepos(t)
	ctx := context.Background()
	routes := portfolioRoutes()
	routes["/api/projects/p-2/expenses"] = http.StatusBadRequest
	srv, _ := newBackend(t, routes)

	svc := NewSyncService(backendClient(srv.URL), NewImportService(r.uow))
	_, err := svc.Pull(ctx)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "Warehouse"), "error names the project: %v", err)

	projects, err := r.projects.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestSyncService_Pull_ListFailure(t *testing.T) {
	r := setupRepos(t)
	srv, _ := newBackend(t, map[string]any{
		"/api/dashboard/stats": map[string]any{},
		"/api/users":           []any{},
	})

	svc := NewSyncService(backendClient(srv.URL), NewImportService(r.uow))
	_, err := svc.Pull(context.Background())
	assert.ErrorIs(t, err, remote.ErrNotFound)
}

func TestSyncService_Pull_UnavailableFetchesNothing(t *testing.T) {
	r := setupRepos(t)
	routes := portfolioRoutes()
	routes["/api/dashboard/stats"] = http.StatusServiceUnavailable
	srv, hits := newBackend(t, routes)

	svc := NewSyncService(backendClient(srv.URL), NewImportService(r.uow))
	_, err := svc.Pull(context.Background())
	require.ErrorIs(t, err, remote.ErrUnavailable)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSyncService_RemoteStats(t *testing.T) {
	r := setupRepos(t)
	srv, _ := newBackend(t, portfolioRoutes())

	svc := NewSyncService(backendClient(srv.URL), NewImportService(r.uow))
	stats, err := svc.RemoteStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, srv.URL, stats.BaseURL)
	assert.Equal(t, 2, stats.TotalProjects)
	assert.Equal(t, 500.0, stats.TotalExpenses)
	assert.Equal(t, 1, stats.OverdueMilestones)
}

func TestSyncService_RemoteBudget(t *testing.T) {
	r := setupRepos(t)
	routes := portfolioRoutes()
	routes["/api/projects/p-1/budget-summary"] = map[string]any{
		"budget": 5000, "total_expenses": 500, "remaining": 4500, "percentage_used": 10,
	}
	srv, _ := newBackend(t, routes)

	svc := NewSyncService(backendClient(srv.URL), NewImportService(r.uow))
	b, err := svc.RemoteBudget(context.Background(), "p-1")
	require.NoError(t, err)
	assert.Equal(t, 4500.0, b.Remaining)
	assert.Equal(t, 10.0, b.PercentageUsed)

	_, err = svc.RemoteBudget(context.Background(), "p-404")
	assert.ErrorIs(t, err, remote.ErrNotFound)
}
