package metrics

import (
	"fmt"
	"math"
	"time"

	"github.com/claude/coachlog/internal/models"
)

// WeeklyAggregate is one row of the weekly training summary.
type WeeklyAggregate struct {
	Week         string  `json:"week"`
	VolumeKg     float64 `json:"volume_kg"`
	DurationMin  float64 `json:"duration_min"`
	AvgIntensity float64 `json:"avg_intensity"`
	Sessions     int     `json:"sessions"`
}

// AggregateWeekly buckets sessions by week key and folds their per-session
// metrics into one row per week: volume and duration are summed (rounded to
// whole units), intensity is the unweighted mean of per-session averages
// (rounded to 3 decimals). Rows come out in first-seen session order, not
// calendar order; sessions whose date does not parse as YYYY-MM-DD are
// skipped.
func AggregateWeekly(sessions []models.Session) []WeeklyAggregate {
	byWeek := make(map[string]*WeeklyAggregate)
	var order []string

	for _, s := range sessions {
		date, err := time.Parse("2006-01-02", s.Date)
		if err != nil {
			continue
		}
		key := WeekKey(date)

		agg, ok := byWeek[key]
		if !ok {
			agg = &WeeklyAggregate{Week: key}
			byWeek[key] = agg
			order = append(order, key)
		}

		m := ComputeSessionMetrics(s)
		agg.VolumeKg += m.VolumeKg
		agg.DurationMin += m.DurationMin
		agg.AvgIntensity += m.AvgIntensity
		agg.Sessions++
	}

	result := make([]WeeklyAggregate, 0, len(order))
	for _, key := range order {
		agg := byWeek[key]
		row := WeeklyAggregate{
			Week:        agg.Week,
			VolumeKg:    math.Round(agg.VolumeKg),
			DurationMin: math.Round(agg.DurationMin),
			Sessions:    agg.Sessions,
		}
		if agg.Sessions > 0 {
			mean := agg.AvgIntensity / float64(agg.Sessions)
			row.AvgIntensity = math.Round(mean*1000) / 1000
		}
		result = append(result, row)
	}
	return result
}

// WeekKey labels a date with "<year>-W<week>" using the first-Thursday
// convention: week 1 is the week containing the year's first Thursday.
// The year component is the calendar year, not the ISO week-year, so late
// December dates whose ISO week rolls into the next year keep the current
// year in their key. Dates before the first Thursday's week floor to W00.
func WeekKey(date time.Time) string {
	firstThursday := time.Date(date.Year(), time.January, 1, 0, 0, 0, 0, date.Location())
	for firstThursday.Weekday() != time.Thursday {
		firstThursday = firstThursday.AddDate(0, 0, 1)
	}

	diffDays := floorDiv(int(date.Sub(firstThursday)/time.Hour), 24)
	week := 1 + floorDiv(diffDays+3, 7)
	return fmt.Sprintf("%d-W%02d", date.Year(), week)
}

// floorDiv divides rounding toward negative infinity, matching Math.floor
// semantics for negative day offsets in early January.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}
