package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/alexanderramin/horizon/internal/importer"
)

// BudgetSummary mirrors the backend's budget-summary response.
type BudgetSummary struct {
	Budget         float64 `json:"budget"`
	TotalExpenses  float64 `json:"total_expenses"`
	Remaining      float64 `json:"remaining"`
	PercentageUsed float64 `json:"percentage_used"`
}

// DashboardStats mirrors the backend's dashboard/stats response.
type DashboardStats struct {
	TotalProjects     int     `json:"total_projects"`
	ActiveProjects    int     `json:"active_projects"`
	TotalExpenses     float64 `json:"total_expenses"`
	OverdueMilestones int     `json:"overdue_milestones"`
}

// Client reads portfolio data from the REST backend. Entity payloads are
// decoded straight into snapshot records so they can be imported as is.
type Client interface {
	ListUsers(ctx context.Context) ([]importer.UserRecord, error)
	ListProjects(ctx context.Context) ([]importer.ProjectRecord, error)
	ProjectResources(ctx context.Context, projectID string) ([]importer.ResourceRecord, error)
	ProjectMilestones(ctx context.Context, projectID string) ([]importer.MilestoneRecord, error)
	ProjectExpenses(ctx context.Context, projectID string) ([]importer.ExpenseRecord, error)
	ProjectDocuments(ctx context.Context, projectID, folder string) ([]importer.DocumentRecord, error)
	BudgetSummary(ctx context.Context, projectID string) (*BudgetSummary, error)
	DashboardStats(ctx context.Context) (*DashboardStats, error)

	// Available checks whether the backend is reachable.
	Available(ctx context.Context) bool
	BaseURL() string
}

type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a Client for the backend at cfg.BaseURL.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

func (c *httpClient) ListUsers(ctx context.Context) ([]importer.UserRecord, error) {
	var out []importer.UserRecord
	return out, c.getJSON(ctx, "/users", nil, &out)
}

func (c *httpClient) ListProjects(ctx context.Context) ([]importer.ProjectRecord, error) {
	var out []importer.ProjectRecord
	return out, c.getJSON(ctx, "/projects", nil, &out)
}

func (c *httpClient) ProjectResources(ctx context.Context, projectID string) ([]importer.ResourceRecord, error) {
	var out []importer.ResourceRecord
	return out, c.getJSON(ctx, projectPath(projectID, "resources"), nil, &out)
}

func (c *httpClient) ProjectMilestones(ctx context.Context, projectID string) ([]importer.MilestoneRecord, error) {
	var out []importer.MilestoneRecord
	return out, c.getJSON(ctx, projectPath(projectID, "milestones"), nil, &out)
}

func (c *httpClient) ProjectExpenses(ctx context.Context, projectID string) ([]importer.ExpenseRecord, error) {
	var out []importer.ExpenseRecord
	return out, c.getJSON(ctx, projectPath(projectID, "expenses"), nil, &out)
}

// ProjectDocuments lists the documents stored in one folder of a project.
// The backend treats an empty folder as the root folder.
func (c *httpClient) ProjectDocuments(ctx context.Context, projectID, folder string) ([]importer.DocumentRecord, error) {
	q := url.Values{}
	if folder != "" {
		q.Set("folder_path", folder)
	}
	var out []importer.DocumentRecord
	return out, c.getJSON(ctx, projectPath(projectID, "documents"), q, &out)
}

func (c *httpClient) BudgetSummary(ctx context.Context, projectID string) (*BudgetSummary, error) {
	var out BudgetSummary
	if err := c.getJSON(ctx, projectPath(projectID, "budget-summary"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) DashboardStats(ctx context.Context) (*DashboardStats, error) {
	var out DashboardStats
	if err := c.getJSON(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *httpClient) BaseURL() string {
	return c.cfg.BaseURL
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.apiURL("/dashboard/stats"), nil)
	if err != nil {
		return false
	}
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// getJSON performs a GET with retries and decodes the body into out.
// Transport failures and 5xx responses are retried; 4xx responses and
// context expiry are not.
func (c *httpClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	endpoint := c.cfg.apiURL(path)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var lastErr error
	attempts := 1 + max(c.cfg.MaxRetries, 0)
	made := 0

	for i := 0; i < attempts; i++ {
		made++
		lastErr = c.doGet(ctx, endpoint, out)
		if lastErr == nil {
			c.observer.OnCallComplete(CallEvent{
				Endpoint:  path,
				Attempts:  made,
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return nil
		}
		if ctx.Err() != nil || !retryable(lastErr) {
			break
		}
	}

	err := classify(ctx, lastErr)
	c.observer.OnCallComplete(CallEvent{
		Endpoint:  path,
		Attempts:  made,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return err
}

func (c *httpClient) doGet(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	c.authorize(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *httpClient) authorize(req *http.Request) {
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}
}

func projectPath(projectID, sub string) string {
	return "/projects/" + url.PathEscape(projectID) + "/" + sub
}

func retryable(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.retryable()
	}
	// Decoding failures will not improve on retry.
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return !errors.As(err, &syntaxErr) && !errors.As(err, &typeErr)
}

// classify maps the last attempt's error onto the package sentinels.
func classify(ctx context.Context, err error) error {
	var se *StatusError
	switch {
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.As(err, &se) && se.Code == http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrNotFound, err)
	case errors.As(err, &se) && !se.retryable():
		return err
	case isConnectionError(err):
		return ErrUnavailable
	case !retryable(err):
		return err
	default:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
	}
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	var se *StatusError
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrRetryExhausted):
		return "RETRY_EXHAUSTED"
	case errors.As(err, &se):
		return "HTTP_" + strconv.Itoa(se.Code)
	default:
		return "UNKNOWN"
	}
}
