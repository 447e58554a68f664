package service

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"github.com/mattmelloy/simplecalorie/internal/model"
)

// EntriesForDay returns the entries logged on the given local day, in
// insertion order. The day is always an explicit parameter so that a
// session crossing midnight aggregates against the new day on its next
// computation.
func EntriesForDay(db *sql.DB, day string) ([]model.LogEntry, error) {
	return ListEntries(db, ListEntriesFilter{Date: day})
}

// TotalCalories sums effective calories over the given entries. An
// empty slice sums to 0.
func TotalCalories(entries []model.LogEntry) float64 {
	var total float64
	for _, e := range entries {
		total += EffectiveCalories(e)
	}
	return total
}

// ProgressPercent reports progress toward the daily goal, capped at
// 100. A non-positive goal is not a valid denominator and returns
// ErrInvalidGoal rather than a clamped or infinite value.
func ProgressPercent(total, dailyGoal float64) (int, error) {
	if dailyGoal <= 0 {
		return 0, fmt.Errorf("%w: got %v", ErrInvalidGoal, dailyGoal)
	}
	pct := int(math.Round(total / dailyGoal * 100))
	if pct > 100 {
		pct = 100
	}
	return pct, nil
}

// GroupByCategory groups entries by meal category, preserving
// insertion order within each group. Categories with no entries are
// absent from the map.
func GroupByCategory(entries []model.LogEntry) map[model.MealCategory][]model.LogEntry {
	grouped := make(map[model.MealCategory][]model.LogEntry)
	for _, e := range entries {
		grouped[e.Category] = append(grouped[e.Category], e)
	}
	return grouped
}

// DaySummary is the aggregate view behind the today command.
type DaySummary struct {
	Date            string
	Entries         []model.LogEntry
	TotalCalories   float64 // kcal
	ProgressPercent int
	Grouped         map[model.MealCategory][]model.LogEntry
}

// SummarizeDay computes the per-day aggregate for the given day and
// settings. The whole log collection is read through the date filter
// at computation time; entries from other days never contribute.
func SummarizeDay(db *sql.DB, day string, settings model.UserSettings) (*DaySummary, error) {
	entries, err := EntriesForDay(db, day)
	if err != nil {
		return nil, err
	}
	total := TotalCalories(entries)
	pct, err := ProgressPercent(total, settings.DailyGoal)
	if err != nil {
		return nil, err
	}
	return &DaySummary{
		Date:            day,
		Entries:         entries,
		TotalCalories:   total,
		ProgressPercent: pct,
		Grouped:         GroupByCategory(entries),
	}, nil
}

// Today formats a wall-clock instant as the local YYYY-MM-DD day used
// for entry dates and aggregation. Commands read the clock once and
// pass the result down.
func Today(now time.Time) string {
	return now.Local().Format("2006-01-02")
}
