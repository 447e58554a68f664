package service

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mattmelloy/simplecalorie/internal/model"
)

// InitializeSettings writes the onboarding settings record. It runs
// exactly once per installation; a second call fails. The goal value
// is accepted as given at this layer (display guards live upstream).
func InitializeSettings(db *sql.DB, s model.UserSettings) error {
	if _, err := model.ParseUnit(string(s.Unit)); err != nil {
		return err
	}
	res, err := db.Exec(`
INSERT INTO settings(id, daily_goal, unit, send_data_to_ai)
VALUES(1, ?, ?, ?)
ON CONFLICT(id) DO NOTHING
`, s.DailyGoal, string(s.Unit), boolToInt(s.SendDataToAI))
	if err != nil {
		return fmt.Errorf("initialize settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for settings init: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settings already initialized")
	}
	return nil
}

// GetSettings returns the settings record, or (nil, nil) before
// onboarding has completed.
func GetSettings(db *sql.DB) (*model.UserSettings, error) {
	var s model.UserSettings
	var unit string
	var sendData int
	var updatedAtRaw string
	err := db.QueryRow(`
SELECT daily_goal, unit, send_data_to_ai, updated_at
FROM settings
WHERE id = 1
`).Scan(&s.DailyGoal, &unit, &sendData, &updatedAtRaw)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	s.Unit = model.Unit(unit)
	s.SendDataToAI = sendData != 0
	if updatedAt, err := time.Parse("2006-01-02 15:04:05", updatedAtRaw); err == nil {
		s.UpdatedAt = updatedAt
	}
	return &s, nil
}

// ReplaceSettings overwrites the whole settings record. There is no
// partial merge: the caller supplies the complete new value.
func ReplaceSettings(db *sql.DB, s model.UserSettings) error {
	if _, err := model.ParseUnit(string(s.Unit)); err != nil {
		return err
	}
	res, err := db.Exec(`
UPDATE settings
SET daily_goal = ?, unit = ?, send_data_to_ai = ?, updated_at = CURRENT_TIMESTAMP
WHERE id = 1
`, s.DailyGoal, string(s.Unit), boolToInt(s.SendDataToAI))
	if err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read rows affected for settings update: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("settings not initialized; run init first")
	}
	return nil
}

// ClearAllLogs deletes every log entry. Irreversible; the CLI demands
// an explicit confirmation flag before calling it.
func ClearAllLogs(db *sql.DB) (int64, error) {
	res, err := db.Exec(`DELETE FROM log_entries`)
	if err != nil {
		return 0, fmt.Errorf("clear log entries: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("read rows affected for clear: %w", err)
	}
	return deleted, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
