package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/claude/coachlog/internal/metrics"
	"github.com/claude/coachlog/internal/models"
)

var errNotFound = errors.New("not found")

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	var programs []models.Program
	s.view(func(snap *models.Snapshot) {
		programs = append(programs, snap.Programs...)
	})
	if programs == nil {
		programs = []models.Program{}
	}
	writeJSON(w, http.StatusOK, programs)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}

	var program *models.Program
	s.view(func(snap *models.Snapshot) {
		for i := range snap.Programs {
			if snap.Programs[i].ID == id {
				p := snap.Programs[i]
				program = &p
				return
			}
		}
	})
	if program == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return
	}
	writeJSON(w, http.StatusOK, program)
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var p models.Program
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p.ID = uuid.New()

	err := s.mutate(r.Context(), func(snap *models.Snapshot) error {
		snap.Programs = append(snap.Programs, p)
		return nil
	})
	if err != nil {
		s.log.Error("create program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}

	var p models.Program
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p.ID = id

	err = s.mutate(r.Context(), func(snap *models.Snapshot) error {
		for i := range snap.Programs {
			if snap.Programs[i].ID == id {
				snap.Programs[i] = p
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return
	}
	if err != nil {
		s.log.Error("update program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid program ID"})
		return
	}

	err = s.mutate(r.Context(), func(snap *models.Snapshot) error {
		for i := range snap.Programs {
			if snap.Programs[i].ID == id {
				snap.Programs = append(snap.Programs[:i], snap.Programs[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program not found"})
		return
	}
	if err != nil {
		s.log.Error("delete program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")

	var sessions []models.Session
	s.view(func(snap *models.Snapshot) {
		for _, sess := range snap.Sessions {
			if start != "" && sess.Date < start {
				continue
			}
			if end != "" && sess.Date > end {
				continue
			}
			sessions = append(sessions, sess)
		}
	})
	if sessions == nil {
		sessions = []models.Session{}
	}
	writeJSON(w, http.StatusOK, sessions)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.findSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

// handleSessionMetrics recomputes derived metrics for one session on demand.
func (s *Server) handleSessionMetrics(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.findSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, metrics.ComputeSessionMetrics(sess))
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var sess models.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	sess.ID = uuid.New()
	if sess.Date == "" {
		sess.Date = time.Now().Format("2006-01-02")
	}

	err := s.mutate(r.Context(), func(snap *models.Snapshot) error {
		snap.Sessions = append(snap.Sessions, sess)
		return nil
	})
	if err != nil {
		s.log.Error("create session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleUpdateSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	var sess models.Session
	if err := json.NewDecoder(r.Body).Decode(&sess); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	sess.ID = id

	err = s.mutate(r.Context(), func(snap *models.Snapshot) error {
		for i := range snap.Sessions {
			if snap.Sessions[i].ID == id {
				snap.Sessions[i] = sess
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		s.log.Error("update session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return
	}

	err = s.mutate(r.Context(), func(snap *models.Snapshot) error {
		for i := range snap.Sessions {
			if snap.Sessions[i].ID == id {
				snap.Sessions = append(snap.Sessions[:i], snap.Sessions[i+1:]...)
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return
	}
	if err != nil {
		s.log.Error("delete session", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSessionFromProgram instantiates a session from a program day's
// template entries.
func (s *Server) handleSessionFromProgram(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProgramID uuid.UUID `json:"program_id"`
		DayIndex  int       `json:"day_index"`
		Date      string    `json:"date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Date == "" {
		req.Date = time.Now().Format("2006-01-02")
	}

	var created models.Session
	err := s.mutate(r.Context(), func(snap *models.Snapshot) error {
		for _, p := range snap.Programs {
			if p.ID == req.ProgramID {
				sess, ok := models.SessionFromProgramDay(p, req.DayIndex, req.Date)
				if !ok {
					return errNotFound
				}
				created = sess
				snap.Sessions = append(snap.Sessions, sess)
				return nil
			}
		}
		return errNotFound
	})
	if errors.Is(err, errNotFound) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "program or day not found"})
		return
	}
	if err != nil {
		s.log.Error("session from program", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// handleWeeklyAnalytics aggregates the whole session history per week.
// Rows are sorted by week key here; the aggregator itself emits them in
// first-seen order.
func (s *Server) handleWeeklyAnalytics(w http.ResponseWriter, r *http.Request) {
	var rows []metrics.WeeklyAggregate
	s.view(func(snap *models.Snapshot) {
		rows = metrics.AggregateWeekly(snap.Sessions)
	})
	sort.Slice(rows, func(i, j int) bool { return rows[i].Week < rows[j].Week })
	if rows == nil {
		rows = []metrics.WeeklyAggregate{}
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) findSession(w http.ResponseWriter, r *http.Request) (models.Session, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid session ID"})
		return models.Session{}, false
	}

	var found *models.Session
	s.view(func(snap *models.Snapshot) {
		for i := range snap.Sessions {
			if snap.Sessions[i].ID == id {
				sess := snap.Sessions[i]
				found = &sess
				return
			}
		}
	})
	if found == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "session not found"})
		return models.Session{}, false
	}
	return *found, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
