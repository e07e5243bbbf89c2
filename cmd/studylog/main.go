// Package main is the entry point for the study log TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/a-mhatre/studylog-tui/internal/app"
	"github.com/a-mhatre/studylog-tui/internal/config"
	"github.com/a-mhatre/studylog-tui/internal/logger"
	"github.com/a-mhatre/studylog-tui/internal/services"
	"github.com/a-mhatre/studylog-tui/internal/ui/tabs/books"
	"github.com/a-mhatre/studylog-tui/internal/ui/tabs/dashboard"
	"github.com/a-mhatre/studylog-tui/internal/ui/tabs/info"
	"github.com/a-mhatre/studylog-tui/internal/ui/tabs/sessions"
	"github.com/a-mhatre/studylog-tui/internal/ui/tabs/tests"
	"github.com/a-mhatre/studylog-tui/internal/version"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	// Handle help flag
	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	// Run the application
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	// 1. Load configuration from .env files and environment variables
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Route logs to a file; the terminal belongs to the TUI
	closeLog, err := logger.Init(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer closeLog()

	// 3. Initialize the service manager
	// This starts all background services: sheet fetching and aggregation
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	// Ensure cleanup on exit
	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	// 4. Create the root Bubble Tea model
	model := app.NewModel(svcManager)

	// 5. Initialize tabs with shared state and services
	// Each tab receives the shared application state for consistent data access
	state := model.GetState()
	tabs := []app.Tab{
		dashboard.New(state, svcManager), // Tab 0: Dashboard - aggregated overview
		sessions.New(state, svcManager),  // Tab 1: Sessions - raw session log
		books.New(state),                 // Tab 2: Books - per-book rollups
		tests.New(state),                 // Tab 3: Tests - scores and syllabus
		info.New(state, cfg),             // Tab 4: Info - configuration and app info
	}
	model.SetTabs(tabs)

	// 6. Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// 7. Create and configure the Bubble Tea program
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),       // Use alternate screen buffer (full terminal)
		tea.WithMouseCellMotion(), // Enable mouse support for selection
	)

	// 8. Handle signals in a separate goroutine
	go func() {
		<-sigChan
		// Send quit message to the program
		p.Send(tea.Quit())
	}()

	// 9. Run the TUI program
	// This blocks until the user quits or an error occurs
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`Study Log TUI - Reading and study tracker over Google Sheets

Usage:
  studylog [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-5             Switch between tabs (Dashboard, Sessions, Books, Tests, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  i               Cycle aggregation interval (daily/weekly/monthly/yearly)
  /               Filter sessions
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  LOG_SHEET_ID       Google Sheet ID of the session log (gviz endpoint)
  TESTS_SHEET_ID     Google Sheet ID of the test scores sheet
  BOOKS_GID          Tab gid of the book master (default: 0)
  SYLLABUS_GID       Tab gid of the syllabus sheet
  LOCAL_DATA_PATH    Local sheet export to watch instead of fetching sessions
  DATABASE_PATH      SQLite snapshot cache path
  REFRESH_INTERVAL   Sheet polling interval (default: 15m)
  DEFAULT_INTERVAL   Aggregation interval at startup (default: daily)
  DAILY_PAGES_GOAL   Daily pages goal for notifications and the chart goal line
  LOG_FILE           Debug log file (logging is off when unset)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/studylog/.env
  - ~/.studylog/.env

For more information, visit: https://github.com/a-mhatre/studylog-tui`)
}
