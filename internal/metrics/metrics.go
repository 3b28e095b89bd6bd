package metrics

import (
	"strconv"
	"strings"

	"github.com/claude/coachlog/internal/models"
)

// defaultTempo is assumed when an entry carries no tempo prescription:
// 2s eccentric, no pause, 1s concentric.
const defaultTempo = "2-0-1"

// SessionMetrics holds the derived numbers for one session. Computed on
// demand, never stored.
type SessionMetrics struct {
	VolumeKg     float64 `json:"volume_kg"`
	DurationMin  float64 `json:"duration_min"`
	AvgIntensity float64 `json:"avg_intensity"`
}

// ComputeSessionMetrics derives total volume, estimated duration, and an
// average intensity proxy from a session's exercise entries. It is a pure
// function of s.Exercises, never fails, and treats entries with zero sets
// as contributing nothing.
//
// Per set: volume is reps × load; intensity is the load relative to an
// Epley-estimated 1RM, weighted by RPE/10; duration is reps × time-per-rep
// (from the tempo string) plus the rest interval.
func ComputeSessionMetrics(s models.Session) SessionMetrics {
	var (
		volume       float64
		totalSec     float64
		intensitySum float64
		setCount     int
	)

	for _, e := range s.Exercises {
		reps := float64(e.Reps)
		timePerRep := tempoSeconds(e.Tempo)

		for i := 0; i < e.Sets; i++ {
			volume += reps * e.LoadKg

			oneRM := EstimateOneRM(e.LoadKg, e.Reps)
			rel := 0.0
			if oneRM > 0 {
				rel = e.LoadKg / oneRM
			}
			intensitySum += rel * (e.RPE / 10)
			setCount++

			totalSec += reps*timePerRep + float64(e.RestSec)
		}
	}

	m := SessionMetrics{
		VolumeKg:    volume,
		DurationMin: totalSec / 60,
	}
	if setCount > 0 {
		m.AvgIntensity = intensitySum / float64(setCount)
	}
	return m
}

// EstimateOneRM predicts the one-repetition maximum for a set via the Epley
// formula: load × (1 + reps/30). Zero load yields zero.
func EstimateOneRM(loadKg float64, reps int) float64 {
	return loadKg * (1 + float64(reps)/30)
}

// tempoSeconds parses a tempo prescription ("2-0-1": eccentric, pause,
// concentric phase seconds) and returns the total seconds per rep. Any
// non-numeric run delimits components, unparsable components count as 0,
// and an empty field falls back to the default tempo.
func tempoSeconds(tempo string) float64 {
	if strings.TrimSpace(tempo) == "" {
		tempo = defaultTempo
	}
	parts := strings.FieldsFunc(tempo, func(r rune) bool {
		return (r < '0' || r > '9') && r != '.'
	})

	var total float64
	for _, p := range parts {
		if v, err := strconv.ParseFloat(p, 64); err == nil {
			total += v
		}
	}
	return total
}
