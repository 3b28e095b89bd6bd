package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/claude/coachlog/internal/models"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachlog.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	// Fresh database loads as empty, not as an error.
	snap, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load empty: %v", err)
	}
	if len(snap.Sessions) != 0 || len(snap.Programs) != 0 {
		t.Fatalf("fresh snapshot not empty: %+v", snap)
	}

	snap.Sessions = append(snap.Sessions, models.Session{
		ID:   uuid.New(),
		Date: "2025-06-16",
		Name: "Day A",
		Exercises: []models.ExerciseEntry{
			{Name: "Squat", Sets: 5, Reps: 5, LoadKg: 85, RPE: 7.5, RestSec: 150, Tempo: "3-0-1"},
		},
	})
	snap.Programs = append(snap.Programs, models.Program{
		ID:   uuid.New(),
		Name: "SBD Block",
		Days: []models.ProgramDay{{Label: "Day A"}},
	})

	if err := store.Save(ctx, snap); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(got.Sessions) != 1 || got.Sessions[0].Name != "Day A" {
		t.Errorf("sessions did not round-trip: %+v", got.Sessions)
	}
	if len(got.Programs) != 1 || got.Programs[0].Name != "SBD Block" {
		t.Errorf("programs did not round-trip: %+v", got.Programs)
	}
	if got.Sessions[0].Exercises[0].LoadKg != 85 {
		t.Errorf("exercise entry did not round-trip: %+v", got.Sessions[0].Exercises)
	}
}

func TestSQLiteStoreOverwrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coachlog.db")
	store, err := OpenSQLite(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	ctx := context.Background()

	first := models.NewSnapshot()
	first.Sessions = append(first.Sessions, models.Session{ID: uuid.New(), Date: "2025-01-06"})
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}

	second := models.NewSnapshot()
	if err := store.Save(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	got, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Sessions) != 0 {
		t.Errorf("expected overwritten snapshot to be empty, got %d sessions", len(got.Sessions))
	}
}
