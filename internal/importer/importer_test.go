package importer

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/claude/coachlog/internal/storage"
)

const sampleCSV = `date,session,exercise,sets,reps,load,rpe,rest,tempo
2025-06-16,Day A,Squat,5,5,85,7.5,150,3-0-1
2025-06-16,Day A,Bench Press,3,8,"62,5",8,120,
2025-06-18,Day B,Deadlift,3,5,140,8,180,2-1-1
`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestImportGroupsRowsIntoSessions(t *testing.T) {
	store := storage.NewMemoryStore()
	imp := New(store, testLogger(), false)

	stats, err := imp.Import(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if stats.RowsParsed != 3 {
		t.Errorf("rows parsed = %d, want 3", stats.RowsParsed)
	}
	if stats.SessionsImported != 2 {
		t.Errorf("sessions imported = %d, want 2", stats.SessionsImported)
	}

	snap, err := store.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(snap.Sessions) != 2 {
		t.Fatalf("persisted sessions = %d, want 2", len(snap.Sessions))
	}

	dayA := snap.Sessions[0]
	if dayA.Name != "Day A" || len(dayA.Exercises) != 2 {
		t.Fatalf("day A = %+v", dayA)
	}
	// Decimal comma load parses.
	if dayA.Exercises[1].LoadKg != 62.5 {
		t.Errorf("bench load = %v, want 62.5", dayA.Exercises[1].LoadKg)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	store := storage.NewMemoryStore()

	if _, err := New(store, testLogger(), false).Import(context.Background(), strings.NewReader(sampleCSV)); err != nil {
		t.Fatal(err)
	}
	stats, err := New(store, testLogger(), false).Import(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if stats.SessionsImported != 0 {
		t.Errorf("re-import imported %d sessions, want 0", stats.SessionsImported)
	}
	if stats.SessionsSkipped != 2 {
		t.Errorf("re-import skipped %d sessions, want 2", stats.SessionsSkipped)
	}

	snap, _ := store.Load(context.Background())
	if len(snap.Sessions) != 2 {
		t.Errorf("sessions after re-import = %d, want 2", len(snap.Sessions))
	}
}

func TestImportDryRun(t *testing.T) {
	store := storage.NewMemoryStore()
	stats, err := New(store, testLogger(), true).Import(context.Background(), strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if stats.SessionsImported != 2 {
		t.Errorf("dry run counted %d sessions, want 2", stats.SessionsImported)
	}

	snap, _ := store.Load(context.Background())
	if len(snap.Sessions) != 0 {
		t.Errorf("dry run persisted %d sessions, want 0", len(snap.Sessions))
	}
}

func TestImportSkipsBadDates(t *testing.T) {
	csv := `date,session,exercise,sets,reps,load,rpe,rest,tempo
junk,Day A,Squat,5,5,85,7.5,150,
2025-06-16,Day A,Squat,5,5,85,7.5,150,
`
	store := storage.NewMemoryStore()
	stats, err := New(store, testLogger(), false).Import(context.Background(), strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if stats.RowsSkipped != 1 {
		t.Errorf("rows skipped = %d, want 1", stats.RowsSkipped)
	}
	if stats.SessionsImported != 1 {
		t.Errorf("sessions imported = %d, want 1", stats.SessionsImported)
	}
}

func TestImportMissingColumns(t *testing.T) {
	csv := "foo,bar\n1,2\n"
	_, err := New(storage.NewMemoryStore(), testLogger(), false).Import(context.Background(), strings.NewReader(csv))
	if err == nil {
		t.Fatal("expected error for missing columns")
	}
}

func TestImportGarbageNumbersCoerceToZero(t *testing.T) {
	csv := `date,session,exercise,sets,reps,load,rpe,rest,tempo
2025-06-16,Day A,Squat,many,5,heavy,7.5,150,
`
	store := storage.NewMemoryStore()
	if _, err := New(store, testLogger(), false).Import(context.Background(), strings.NewReader(csv)); err != nil {
		t.Fatal(err)
	}

	snap, _ := store.Load(context.Background())
	e := snap.Sessions[0].Exercises[0]
	if e.Sets != 0 || e.LoadKg != 0 {
		t.Errorf("entry = %+v, want sets and load coerced to 0", e)
	}
	if e.Reps != 5 {
		t.Errorf("reps = %d, want 5", e.Reps)
	}
}
