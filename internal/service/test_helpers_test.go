package service_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mattmelloy/simplecalorie/internal/db"
	"github.com/mattmelloy/simplecalorie/internal/model"
	"github.com/mattmelloy/simplecalorie/internal/service"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "simplecalorie.db")
	sqldb, err := db.Open(path)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.ApplyMigrations(sqldb); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	t.Cleanup(func() { sqldb.Close() })
	return sqldb
}

func mustConfirm(t *testing.T, est model.AIEstimate, portion float64, category model.MealCategory, day string) model.LogEntry {
	t.Helper()
	entry, err := service.ConfirmEstimate(est, portion, category, model.SourceText, day)
	if err != nil {
		t.Fatalf("confirm estimate: %v", err)
	}
	return entry
}

func mustInsert(t *testing.T, sqldb *sql.DB, entry model.LogEntry) {
	t.Helper()
	if err := service.InsertEntry(sqldb, entry); err != nil {
		t.Fatalf("insert entry: %v", err)
	}
}
