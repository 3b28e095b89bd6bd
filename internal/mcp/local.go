package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/claude/coachlog/internal/metrics"
	"github.com/claude/coachlog/internal/models"
	"github.com/claude/coachlog/internal/storage"
)

// LocalSource implements DataSource over a snapshot store, recomputing
// derived metrics on every call.
type LocalSource struct {
	store storage.Store
}

// Compile-time check: *LocalSource satisfies DataSource.
var _ DataSource = (*LocalSource)(nil)

// NewLocalSource wraps a snapshot store.
func NewLocalSource(store storage.Store) *LocalSource {
	return &LocalSource{store: store}
}

func (l *LocalSource) ListSessions(ctx context.Context, start, end string) ([]models.Session, error) {
	snap, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	sessions := make([]models.Session, 0, len(snap.Sessions))
	for _, s := range snap.Sessions {
		if start != "" && s.Date < start {
			continue
		}
		if end != "" && s.Date > end {
			continue
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

func (l *LocalSource) GetSessionMetrics(ctx context.Context, id uuid.UUID) (*SessionDetail, error) {
	snap, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range snap.Sessions {
		if s.ID == id {
			return &SessionDetail{Session: s, Metrics: metrics.ComputeSessionMetrics(s)}, nil
		}
	}
	return nil, fmt.Errorf("session %s not found", id)
}

func (l *LocalSource) GetWeeklySummary(ctx context.Context) ([]metrics.WeeklyAggregate, error) {
	snap, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	rows := metrics.AggregateWeekly(snap.Sessions)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Week < rows[j].Week })
	return rows, nil
}

func (l *LocalSource) ListPrograms(ctx context.Context) ([]models.Program, error) {
	snap, err := l.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Programs, nil
}
