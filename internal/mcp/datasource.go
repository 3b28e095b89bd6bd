package mcp

import (
	"context"

	"github.com/google/uuid"

	"github.com/claude/coachlog/internal/metrics"
	"github.com/claude/coachlog/internal/models"
)

// SessionDetail pairs a session with its freshly computed metrics.
type SessionDetail struct {
	Session models.Session         `json:"session"`
	Metrics metrics.SessionMetrics `json:"metrics"`
}

// DataSource abstracts the data layer for MCP tools. Both LocalSource
// (snapshot store) and HTTPClient (remote via REST API) satisfy this
// interface.
type DataSource interface {
	ListSessions(ctx context.Context, start, end string) ([]models.Session, error)
	GetSessionMetrics(ctx context.Context, id uuid.UUID) (*SessionDetail, error)
	GetWeeklySummary(ctx context.Context) ([]metrics.WeeklyAggregate, error)
	ListPrograms(ctx context.Context) ([]models.Program, error)
}
