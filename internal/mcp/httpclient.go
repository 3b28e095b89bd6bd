package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/coachlog/internal/metrics"
	"github.com/claude/coachlog/internal/models"
)

// HTTPClient implements DataSource by calling the CoachLog REST API. Used
// for remote MCP mode where the binary runs locally (stdio) but the data
// lives on the coach's server (typically reached over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: *HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func (c *HTTPClient) ListSessions(ctx context.Context, start, end string) ([]models.Session, error) {
	params := url.Values{}
	if start != "" {
		params.Set("start", start)
	}
	if end != "" {
		params.Set("end", end)
	}

	body, err := c.get(ctx, "/api/v1/sessions", params)
	if err != nil {
		return nil, err
	}

	var sessions []models.Session
	if err := json.Unmarshal(body, &sessions); err != nil {
		return nil, fmt.Errorf("httpclient: decode sessions: %w", err)
	}
	return sessions, nil
}

func (c *HTTPClient) GetSessionMetrics(ctx context.Context, id uuid.UUID) (*SessionDetail, error) {
	sessionBody, err := c.get(ctx, "/api/v1/sessions/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	metricsBody, err := c.get(ctx, "/api/v1/sessions/"+id.String()+"/metrics", nil)
	if err != nil {
		return nil, err
	}

	var detail SessionDetail
	if err := json.Unmarshal(sessionBody, &detail.Session); err != nil {
		return nil, fmt.Errorf("httpclient: decode session: %w", err)
	}
	if err := json.Unmarshal(metricsBody, &detail.Metrics); err != nil {
		return nil, fmt.Errorf("httpclient: decode metrics: %w", err)
	}
	return &detail, nil
}

func (c *HTTPClient) GetWeeklySummary(ctx context.Context) ([]metrics.WeeklyAggregate, error) {
	body, err := c.get(ctx, "/api/v1/analytics/weekly", nil)
	if err != nil {
		return nil, err
	}

	var rows []metrics.WeeklyAggregate
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("httpclient: decode weekly summary: %w", err)
	}
	return rows, nil
}

func (c *HTTPClient) ListPrograms(ctx context.Context) ([]models.Program, error) {
	body, err := c.get(ctx, "/api/v1/programs", nil)
	if err != nil {
		return nil, err
	}

	var programs []models.Program
	if err := json.Unmarshal(body, &programs); err != nil {
		return nil, fmt.Errorf("httpclient: decode programs: %w", err)
	}
	return programs, nil
}
