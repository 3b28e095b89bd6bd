package storage

import (
	"context"
	"sync"

	"github.com/claude/coachlog/internal/models"
)

// Store persists the coaching snapshot as one serialized blob under a fixed
// key. Implementations: SQLite (default), Postgres, and an in-memory store
// for tests. Loading when nothing has been saved yet yields an empty
// snapshot, never an error.
type Store interface {
	Load(ctx context.Context) (*models.Snapshot, error)
	Save(ctx context.Context, snap *models.Snapshot) error
	Close() error
}

// snapshotKey is the single row key all stores write under.
const snapshotKey = "snapshot"

// MemoryStore keeps the snapshot in process memory. Test double for the
// persistence port.
type MemoryStore struct {
	mu   sync.Mutex
	snap *models.Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (*models.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.snap == nil {
		return models.NewSnapshot(), nil
	}
	cp := *m.snap
	return &cp, nil
}

func (m *MemoryStore) Save(_ context.Context, snap *models.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *snap
	m.snap = &cp
	return nil
}

func (m *MemoryStore) Close() error { return nil }
