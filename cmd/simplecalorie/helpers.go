package simplecalorie

import (
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattmelloy/simplecalorie/internal/app"
	"github.com/mattmelloy/simplecalorie/internal/db"
	"github.com/mattmelloy/simplecalorie/internal/keyring"
	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
)

func withDB(run func(*sql.DB) error) error {
	path, err := resolveDBPath()
	if err != nil {
		return err
	}
	if err := app.EnsureDBDir(path); err != nil {
		return err
	}
	sqldb, err := db.Open(path)
	if err != nil {
		return err
	}
	defer sqldb.Close()

	if err := db.ApplyMigrations(sqldb); err != nil {
		return err
	}
	return run(sqldb)
}

func resolveDBPath() (string, error) {
	if strings.TrimSpace(dbPath) != "" {
		return dbPath, nil
	}
	return app.DefaultDBPath()
}

// requireSettings loads the settings record and fails with an
// onboarding hint when the app has not been initialized yet.
func requireSettings(sqldb *sql.DB) (*model.UserSettings, error) {
	settings, err := service.GetSettings(sqldb)
	if err != nil {
		return nil, err
	}
	if settings == nil {
		return nil, fmt.Errorf("not set up yet; run 'simplecalorie init' first")
	}
	return settings, nil
}

// resolveAPIKey looks for a Gemini API key: explicit flag, then
// environment (.env is loaded at startup), then the OS keyring. An
// empty result is a valid operating mode (demo estimates).
func resolveAPIKey(flagValue string) string {
	if strings.TrimSpace(flagValue) != "" {
		return strings.TrimSpace(flagValue)
	}
	for _, name := range []string{"SIMPLECALORIE_GEMINI_API_KEY", "GEMINI_API_KEY"} {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			return v
		}
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable) {
			return ""
		}
		return ""
	}
	return key
}

func parseDateOrToday(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return service.Today(time.Now()), nil
	}
	if _, err := time.ParseInLocation("2006-01-02", value, time.Local); err != nil {
		return "", fmt.Errorf("invalid --date %q (expected YYYY-MM-DD)", value)
	}
	return value, nil
}

func loadImagePayload(path string) (*model.ImagePayload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image %s: %w", path, err)
	}
	var mimeType string
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		mimeType = "image/jpeg"
	case ".png":
		mimeType = "image/png"
	case ".webp":
		mimeType = "image/webp"
	default:
		return nil, fmt.Errorf("unsupported image type %q (expected .jpg, .png, or .webp)", filepath.Ext(path))
	}
	return &model.ImagePayload{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}, nil
}

func formatCalories(kcal float64, unit model.Unit) string {
	return fmt.Sprintf("%d %s", service.ToDisplay(kcal, unit), unit)
}
