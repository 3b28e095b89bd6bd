package models

import (
	"github.com/google/uuid"
)

// ExerciseEntry is one prescribed or logged movement within a session or
// program day. Numeric fields are coerced to zero at the JSON boundary
// (see UnmarshalJSON in coerce.go), so downstream code never sees an
// absent or non-numeric value.
type ExerciseEntry struct {
	Name    string  `json:"name"`
	Sets    int     `json:"sets"`
	Reps    int     `json:"reps"`
	LoadKg  float64 `json:"load"`
	RPE     float64 `json:"rpe"`
	RestSec int     `json:"rest"`
	Tempo   string  `json:"tempo"`
}

// Session is one logged training day.
type Session struct {
	ID        uuid.UUID       `json:"id"`
	Date      string          `json:"date"` // YYYY-MM-DD
	Name      string          `json:"name"`
	Notes     string          `json:"notes,omitempty"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// ProgramDay is one labeled day inside a program template.
type ProgramDay struct {
	Label     string          `json:"label"`
	Exercises []ExerciseEntry `json:"exercises"`
}

// Program is a named, reusable workout template. Its entries are template
// values; logging happens by seeding a Session from one of its days.
type Program struct {
	ID    uuid.UUID    `json:"id"`
	Name  string       `json:"name"`
	Notes string       `json:"notes,omitempty"`
	Days  []ProgramDay `json:"days"`
}

// Snapshot is the persisted unit: the whole coaching state, serialized as
// one blob under a fixed storage key.
type Snapshot struct {
	Programs []Program `json:"programs"`
	Sessions []Session `json:"sessions"`
}

// NewSnapshot returns an empty snapshot with non-nil slices.
func NewSnapshot() *Snapshot {
	return &Snapshot{Programs: []Program{}, Sessions: []Session{}}
}

// Clone deep-copies the snapshot so edits to the copy never reach the
// original or its exercise lists.
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Programs: make([]Program, len(s.Programs)),
		Sessions: make([]Session, len(s.Sessions)),
	}
	for i, p := range s.Programs {
		cp := p
		cp.Days = make([]ProgramDay, len(p.Days))
		for j, d := range p.Days {
			cd := d
			cd.Exercises = append([]ExerciseEntry(nil), d.Exercises...)
			cp.Days[j] = cd
		}
		out.Programs[i] = cp
	}
	for i, sess := range s.Sessions {
		cs := sess
		cs.Exercises = append([]ExerciseEntry(nil), sess.Exercises...)
		out.Sessions[i] = cs
	}
	return out
}

// SessionFromProgramDay seeds a new session from a program day's template
// entries. The entries are copied, never aliased.
func SessionFromProgramDay(p Program, dayIndex int, date string) (Session, bool) {
	if dayIndex < 0 || dayIndex >= len(p.Days) {
		return Session{}, false
	}
	day := p.Days[dayIndex]
	s := Session{
		ID:        uuid.New(),
		Date:      date,
		Name:      day.Label,
		Exercises: make([]ExerciseEntry, len(day.Exercises)),
	}
	copy(s.Exercises, day.Exercises)
	return s, true
}
