package models

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Exercise entries arrive from loosely typed clients: numbers may come as
// strings, nulls, or be missing entirely. Coercion happens once, here, so
// the metrics core can rely on typed zeros.

// UnmarshalJSON decodes an exercise entry, coercing every numeric field to 0
// when it is missing, null, or not interpretable as a number.
func (e *ExerciseEntry) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	e.Name = coerceString(raw["name"])
	e.Sets = int(coerceFloat(raw["sets"]))
	e.Reps = int(coerceFloat(raw["reps"]))
	e.LoadKg = coerceFloat(raw["load"])
	e.RPE = coerceFloat(raw["rpe"])
	e.RestSec = int(coerceFloat(raw["rest"]))
	e.Tempo = coerceString(raw["tempo"])
	return nil
}

// coerceFloat interprets a raw JSON value as a number: plain numbers pass
// through, numeric strings are parsed, everything else is 0.
func coerceFloat(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return f
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return f
		}
	}
	return 0
}

// coerceString interprets a raw JSON value as a string; non-strings
// (including null) become "".
func coerceString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return ""
}
