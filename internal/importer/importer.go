package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/claude/coachlog/internal/models"
	"github.com/claude/coachlog/internal/storage"
)

// Stats tracks import progress.
type Stats struct {
	RowsParsed       int
	RowsSkipped      int
	SessionsImported int
	SessionsSkipped  int
}

// Importer reads a flat CSV training log and merges its sessions into the
// snapshot. Expected header:
//
//	date,session,exercise,sets,reps,load,rpe,rest,tempo
//
// Rows sharing date+session become one Session; a session matching an
// existing date+name in the snapshot is skipped, so re-importing the same
// export is a no-op.
type Importer struct {
	store  storage.Store
	log    *slog.Logger
	dryRun bool
	stats  Stats
}

// New creates a new Importer.
func New(store storage.Store, log *slog.Logger, dryRun bool) *Importer {
	return &Importer{store: store, log: log, dryRun: dryRun}
}

// Import parses the CSV and persists the merged snapshot.
func (imp *Importer) Import(ctx context.Context, r io.Reader) (*Stats, error) {
	sessions, err := imp.parse(r)
	if err != nil {
		return &imp.stats, err
	}

	snap, err := imp.store.Load(ctx)
	if err != nil {
		return &imp.stats, fmt.Errorf("loading snapshot: %w", err)
	}

	existing := make(map[string]bool, len(snap.Sessions))
	for _, s := range snap.Sessions {
		existing[s.Date+"\x00"+s.Name] = true
	}

	for _, s := range sessions {
		key := s.Date + "\x00" + s.Name
		if existing[key] {
			imp.stats.SessionsSkipped++
			imp.log.Info("skipping existing session", "date", s.Date, "name", s.Name)
			continue
		}
		existing[key] = true
		snap.Sessions = append(snap.Sessions, s)
		imp.stats.SessionsImported++
	}

	if imp.dryRun {
		imp.log.Info("dry run: snapshot not saved",
			"sessions", imp.stats.SessionsImported)
		return &imp.stats, nil
	}

	if imp.stats.SessionsImported > 0 {
		if err := imp.store.Save(ctx, snap); err != nil {
			return &imp.stats, fmt.Errorf("saving snapshot: %w", err)
		}
	}
	return &imp.stats, nil
}

// parse reads CSV rows into sessions, preserving row order within each
// session. Rows with an unparsable date are skipped and counted.
func (imp *Importer) parse(r io.Reader) ([]models.Session, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, required := range []string{"date", "exercise"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("CSV missing required column %q", required)
		}
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	byKey := make(map[string]*models.Session)
	var order []string

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}

		date := field(row, "date")
		if _, err := time.Parse("2006-01-02", date); err != nil {
			imp.stats.RowsSkipped++
			imp.log.Warn("skipping row with bad date", "date", date)
			continue
		}

		name := field(row, "session")
		key := date + "\x00" + name
		sess, ok := byKey[key]
		if !ok {
			sess = &models.Session{ID: uuid.New(), Date: date, Name: name}
			byKey[key] = sess
			order = append(order, key)
		}

		sess.Exercises = append(sess.Exercises, models.ExerciseEntry{
			Name:    field(row, "exercise"),
			Sets:    int(parseNum(field(row, "sets"))),
			Reps:    int(parseNum(field(row, "reps"))),
			LoadKg:  parseNum(field(row, "load")),
			RPE:     parseNum(field(row, "rpe")),
			RestSec: int(parseNum(field(row, "rest"))),
			Tempo:   field(row, "tempo"),
		})
		imp.stats.RowsParsed++
	}

	sessions := make([]models.Session, 0, len(order))
	for _, key := range order {
		sessions = append(sessions, *byKey[key])
	}
	return sessions, nil
}

// parseNum applies the same coercion rule as the JSON boundary: anything
// that does not parse as a number is 0. Decimal commas are accepted since
// some logging apps export them.
func parseNum(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil {
		return 0
	}
	return v
}
