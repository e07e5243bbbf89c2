// Package config contains everything related to configuration
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/a-mhatre/studylog-tui/internal/models"
)

// Config holds the application configuration.
type Config struct {
	// LogSheetID is the spreadsheet holding sessions, book master, and
	// syllabus tabs.
	LogSheetID string
	// TestsSheetID is the spreadsheet holding test results. Optional; the
	// tests tab shows an empty state without it.
	TestsSheetID string
	// BooksGID selects the book-master tab inside the log sheet.
	BooksGID string
	// SyllabusGID selects the syllabus tab inside the log sheet. Optional.
	SyllabusGID string
	// DatabasePath is the SQLite snapshot cache location.
	DatabasePath string
	// LocalDataPath optionally points at a gviz-format export of the
	// sessions sheet; when set it is watched and used instead of fetching.
	LocalDataPath string
	// RefreshInterval is how often sheets are re-fetched.
	RefreshInterval time.Duration
	// DefaultInterval is the aggregation granularity selected at startup.
	DefaultInterval models.Interval
	// DailyPagesGoal is the daily reading target used for the chart
	// reference line and the goal notification. 0 disables both.
	DailyPagesGoal float64
	// LogFile receives structured logs while the TUI owns the terminal.
	// Empty disables logging.
	LogFile string
}

// Default values
const (
	defaultRefreshInterval = 15 * time.Minute
	defaultBooksGID        = "0"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		LogSheetID:      getEnvString("LOG_SHEET_ID", ""),
		TestsSheetID:    getEnvString("TESTS_SHEET_ID", ""),
		BooksGID:        getEnvString("BOOKS_GID", defaultBooksGID),
		SyllabusGID:     getEnvString("SYLLABUS_GID", ""),
		DatabasePath:    getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		LocalDataPath:   getEnvString("LOCAL_DATA_PATH", ""),
		RefreshInterval: getEnvDuration("REFRESH_INTERVAL", defaultRefreshInterval),
		DefaultInterval: models.ParseInterval(strings.ToLower(getEnvString("DEFAULT_INTERVAL", "daily"))),
		DailyPagesGoal:  getEnvFloat("DAILY_PAGES_GOAL", 0),
		LogFile:         getEnvString("LOG_FILE", ""),
	}

	if cfg.LogSheetID == "" && cfg.LocalDataPath == "" {
		return nil, fmt.Errorf("LOG_SHEET_ID is required (set via env or .env, or point LOCAL_DATA_PATH at an export)")
	}

	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "studylog", ".env"),
			filepath.Join(home, ".studylog", ".env"),
		)
	}

	return paths
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "studylog.db"
	}
	return filepath.Join(home, ".config", "studylog", "studylog.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the
// default. Accepts values like "30s", "15m", or bare seconds.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
