package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

func setBaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_SHEET_ID", "SHEET123")
	t.Setenv("DATABASE_PATH", filepath.Join(t.TempDir(), "studylog.db"))
	t.Setenv("TESTS_SHEET_ID", "")
	t.Setenv("BOOKS_GID", "")
	t.Setenv("SYLLABUS_GID", "")
	t.Setenv("LOCAL_DATA_PATH", "")
	t.Setenv("REFRESH_INTERVAL", "")
	t.Setenv("DEFAULT_INTERVAL", "")
	t.Setenv("DAILY_PAGES_GOAL", "")
	t.Setenv("LOG_FILE", "")
}

func TestLoad_Defaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogSheetID != "SHEET123" {
		t.Errorf("LogSheetID = %q", cfg.LogSheetID)
	}
	if cfg.BooksGID != defaultBooksGID {
		t.Errorf("BooksGID = %q, want default %q", cfg.BooksGID, defaultBooksGID)
	}
	if cfg.RefreshInterval != defaultRefreshInterval {
		t.Errorf("RefreshInterval = %v, want %v", cfg.RefreshInterval, defaultRefreshInterval)
	}
	if cfg.DailyPagesGoal != 0 {
		t.Errorf("DailyPagesGoal = %v, want 0", cfg.DailyPagesGoal)
	}
	if cfg.DefaultInterval != models.IntervalDaily {
		t.Errorf("DefaultInterval = %v, want daily", cfg.DefaultInterval)
	}
}

func TestLoad_RequiresSheetOrLocalData(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("LOG_SHEET_ID", "")

	if _, err := Load(); err == nil {
		t.Fatal("Load() should fail without a sheet ID or local data path")
	}

	t.Setenv("LOCAL_DATA_PATH", filepath.Join(t.TempDir(), "export.json"))
	if _, err := Load(); err != nil {
		t.Fatalf("Load() error = %v, local data path should satisfy the requirement", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("DEFAULT_INTERVAL", "Weekly")
	t.Setenv("DAILY_PAGES_GOAL", "12.5")
	t.Setenv("BOOKS_GID", "77")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.RefreshInterval != 5*time.Minute {
		t.Errorf("RefreshInterval = %v", cfg.RefreshInterval)
	}
	if cfg.DailyPagesGoal != 12.5 {
		t.Errorf("DailyPagesGoal = %v", cfg.DailyPagesGoal)
	}
	if cfg.BooksGID != "77" {
		t.Errorf("BooksGID = %q", cfg.BooksGID)
	}
	if cfg.DefaultInterval != models.IntervalWeekly {
		t.Errorf("DefaultInterval = %v, want weekly", cfg.DefaultInterval)
	}
}

func TestGetEnvDuration_BareSeconds(t *testing.T) {
	t.Setenv("SOME_INTERVAL", "90")
	if got := getEnvDuration("SOME_INTERVAL", time.Minute); got != 90*time.Second {
		t.Errorf("getEnvDuration() = %v, want 90s", got)
	}

	t.Setenv("SOME_INTERVAL", "nonsense")
	if got := getEnvDuration("SOME_INTERVAL", time.Minute); got != time.Minute {
		t.Errorf("getEnvDuration() = %v, want fallback", got)
	}
}
