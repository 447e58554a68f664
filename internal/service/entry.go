package service

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattmelloy/simplecalorie/internal/model"
)

// ConfirmEstimate materializes a validated estimate into a LogEntry
// with a fresh id and the supplied day. The caller chooses the portion
// factor and category during confirmation; after this point the entry
// is immutable. Persistence is the caller's responsibility via
// InsertEntry.
func ConfirmEstimate(est model.AIEstimate, portionFactor float64, category model.MealCategory, source model.EntrySource, day string) (model.LogEntry, error) {
	if err := ValidateEstimate(est); err != nil {
		return model.LogEntry{}, err
	}
	if category == "" {
		return model.LogEntry{}, ErrMissingCategory
	}
	if _, err := model.ParseMealCategory(string(category)); err != nil {
		return model.LogEntry{}, fmt.Errorf("%w: %v", ErrMissingCategory, err)
	}
	if portionFactor <= 0 {
		return model.LogEntry{}, fmt.Errorf("%w: got %v", ErrInvalidPortion, portionFactor)
	}
	if source != model.SourceText && source != model.SourcePhoto {
		return model.LogEntry{}, fmt.Errorf("unknown entry source %q", source)
	}
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return model.LogEntry{}, fmt.Errorf("invalid day %q (expected YYYY-MM-DD)", day)
	}

	return model.LogEntry{
		ID:            uuid.NewString(),
		Date:          day,
		Name:          strings.TrimSpace(est.MealName),
		Calories:      est.EstimatedCalories,
		PortionFactor: portionFactor,
		Category:      category,
		Source:        source,
		CreatedAt:     time.Now(),
	}, nil
}

// EffectiveCalories is the value used everywhere the entry is
// aggregated or displayed: base calories scaled by the portion factor.
func EffectiveCalories(e model.LogEntry) float64 {
	return float64(e.Calories) * e.PortionFactor
}

func InsertEntry(db *sql.DB, e model.LogEntry) error {
	if strings.TrimSpace(e.ID) == "" {
		return fmt.Errorf("entry id is required")
	}
	_, err := db.Exec(`
INSERT INTO log_entries(id, date, name, calories, portion_factor, category, source, created_at)
VALUES(?, ?, ?, ?, ?, ?, ?, ?)
`, e.ID, e.Date, e.Name, e.Calories, e.PortionFactor, string(e.Category), string(e.Source), e.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}
	return nil
}

type ListEntriesFilter struct {
	Date     string
	Category string
	Limit    int
}

// ListEntries returns entries in insertion order, optionally filtered
// by day and category.
func ListEntries(db *sql.DB, f ListEntriesFilter) ([]model.LogEntry, error) {
	query := `
SELECT id, date, name, calories, portion_factor, category, source, created_at
FROM log_entries
WHERE 1=1`
	args := make([]any, 0)

	if strings.TrimSpace(f.Date) != "" {
		if _, err := time.Parse("2006-01-02", strings.TrimSpace(f.Date)); err != nil {
			return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", f.Date)
		}
		query += ` AND date = ?`
		args = append(args, strings.TrimSpace(f.Date))
	}
	if strings.TrimSpace(f.Category) != "" {
		category, err := model.ParseMealCategory(f.Category)
		if err != nil {
			return nil, err
		}
		query += ` AND category = ?`
		args = append(args, string(category))
	}
	// rowid reflects insertion order, which created_at cannot at
	// second granularity.
	query += ` ORDER BY rowid ASC`

	if f.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, f.Limit)
	}

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	entries := make([]model.LogEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func EntryByID(db *sql.DB, id string) (model.LogEntry, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return model.LogEntry{}, fmt.Errorf("entry id is required")
	}
	row := db.QueryRow(`
SELECT id, date, name, calories, portion_factor, category, source, created_at
FROM log_entries
WHERE id = ?
`, id)
	var e model.LogEntry
	var createdAtRaw string
	err := row.Scan(&e.ID, &e.Date, &e.Name, &e.Calories, &e.PortionFactor, &e.Category, &e.Source, &createdAtRaw)
	if err == sql.ErrNoRows {
		return model.LogEntry{}, fmt.Errorf("entry %s not found", id)
	}
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("load entry %s: %w", id, err)
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtRaw)
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("parse created_at for entry %s: %w", id, err)
	}
	e.CreatedAt = createdAt
	return e, nil
}

// DeleteEntry removes the entry with the given id. Deletion is
// idempotent: a missing id is a no-op, reported through the returned
// bool rather than an error.
func DeleteEntry(db *sql.DB, id string) (bool, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return false, fmt.Errorf("entry id is required")
	}
	res, err := db.Exec(`DELETE FROM log_entries WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("delete entry %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read rows affected for entry %s: %w", id, err)
	}
	return affected > 0, nil
}

type entryScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row entryScanner) (model.LogEntry, error) {
	var e model.LogEntry
	var createdAtRaw string
	if err := row.Scan(&e.ID, &e.Date, &e.Name, &e.Calories, &e.PortionFactor, &e.Category, &e.Source, &createdAtRaw); err != nil {
		return model.LogEntry{}, fmt.Errorf("scan entry: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339, createdAtRaw)
	if err != nil {
		return model.LogEntry{}, fmt.Errorf("parse created_at for entry %s: %w", e.ID, err)
	}
	e.CreatedAt = createdAt
	return e, nil
}
