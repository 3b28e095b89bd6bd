package mcp

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/coachlog/internal/models"
	"github.com/claude/coachlog/internal/storage"
)

func seedStore(t *testing.T) (*storage.MemoryStore, models.Session) {
	t.Helper()
	store := storage.NewMemoryStore()
	sess := models.Session{
		ID:   uuid.New(),
		Date: "2025-06-16",
		Name: "Day A",
		Exercises: []models.ExerciseEntry{
			{Name: "Squat", Sets: 5, Reps: 5, LoadKg: 85, RPE: 7.5, RestSec: 150, Tempo: "3-0-1"},
		},
	}
	snap := models.NewSnapshot()
	snap.Sessions = append(snap.Sessions, sess,
		models.Session{ID: uuid.New(), Date: "2025-06-23", Name: "Day B"})
	snap.Programs = append(snap.Programs, models.Program{ID: uuid.New(), Name: "SBD Block"})
	if err := store.Save(context.Background(), snap); err != nil {
		t.Fatal(err)
	}
	return store, sess
}

func TestLocalSourceListSessionsFiltered(t *testing.T) {
	store, _ := seedStore(t)
	ds := NewLocalSource(store)

	sessions, err := ds.ListSessions(context.Background(), "2025-06-01", "2025-06-20")
	if err != nil {
		t.Fatal(err)
	}
	if len(sessions) != 1 || sessions[0].Name != "Day A" {
		t.Errorf("sessions = %+v, want only Day A", sessions)
	}
}

func TestLocalSourceSessionMetrics(t *testing.T) {
	store, sess := seedStore(t)
	ds := NewLocalSource(store)

	detail, err := ds.GetSessionMetrics(context.Background(), sess.ID)
	if err != nil {
		t.Fatal(err)
	}
	if detail.Metrics.VolumeKg != 2125 {
		t.Errorf("volume = %v, want 2125", detail.Metrics.VolumeKg)
	}

	if _, err := ds.GetSessionMetrics(context.Background(), uuid.New()); err == nil {
		t.Error("expected error for unknown session")
	}
}

func TestLocalSourceWeeklySummarySorted(t *testing.T) {
	store, _ := seedStore(t)
	ds := NewLocalSource(store)

	rows, err := ds.GetWeeklySummary(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0].Week > rows[1].Week {
		t.Errorf("rows not sorted by week key: %s, %s", rows[0].Week, rows[1].Week)
	}
}

func TestLocalSourceListPrograms(t *testing.T) {
	store, _ := seedStore(t)
	ds := NewLocalSource(store)

	programs, err := ds.ListPrograms(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(programs) != 1 || programs[0].Name != "SBD Block" {
		t.Errorf("programs = %+v", programs)
	}
}
