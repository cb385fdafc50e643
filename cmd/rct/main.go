// Package main is the entry point for the RightCode TUI application.
// It initializes configuration, services, and runs the Bubble Tea program.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rightcode-tools/rightcode-tui/internal/app"
	"github.com/rightcode-tools/rightcode-tui/internal/config"
	"github.com/rightcode-tools/rightcode-tui/internal/logger"
	"github.com/rightcode-tools/rightcode-tui/internal/services"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/tabs/accounts"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/tabs/dashboard"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/tabs/info"
	"github.com/rightcode-tools/rightcode-tui/internal/ui/tabs/status"
	"github.com/rightcode-tools/rightcode-tui/internal/version"
)

func main() {
	if len(os.Args) > 1 && (os.Args[1] == "-v" || os.Args[1] == "--version") {
		fmt.Println(version.Info())
		os.Exit(0)
	}

	if len(os.Args) > 1 && (os.Args[1] == "-h" || os.Args[1] == "--help") {
		printUsage()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run contains the main application logic, separated for cleaner error handling.
func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Logging to stderr would corrupt the alternate screen.
	logPath := filepath.Join(filepath.Dir(cfg.SettingsPath), "rct.log")
	if closeLog, logErr := logger.InitFile(logPath); logErr == nil {
		defer closeLog()
	}

	// Starts the account watcher and the quota refresh loop.
	svcManager, err := services.NewManager(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize services: %w", err)
	}

	defer func() {
		if closeErr := svcManager.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: error closing services: %v\n", closeErr)
		}
	}()

	model := app.NewModel(svcManager)

	// Each tab receives the shared application state for consistent data access.
	state := model.GetState()
	tabs := []app.Tab{
		status.New(state),
		dashboard.New(state),
		accounts.New(state, svcManager),
		info.New(state, cfg),
	}
	model.SetTabs(tabs)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	go func() {
		<-sigChan
		p.Send(tea.Quit())
	}()

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

// printUsage prints the command-line usage information.
func printUsage() {
	fmt.Println(`RightCode TUI - Multi-account subscription and usage monitor

Usage:
  rct [flags]

Flags:
  -h, --help      Show this help message
  -v, --version   Show version information

Keyboard Shortcuts:
  1-4             Switch between tabs (Status, Dashboard, Accounts, Info)
  Tab/Shift+Tab   Navigate between tabs
  j/k, Up/Down    Navigate lists
  Enter           Select/confirm
  r               Refresh data
  ?               Toggle help
  q, Ctrl+C       Quit

Environment Variables:
  RIGHTCODE_CONFIG_PATH   Settings file path
  RIGHTCODE_BASE_URL      API base URL (default: https://right.codes)

Configuration:
  The application looks for .env files in the following locations:
  - Current directory
  - ~/.config/rightcode-tui/.env
  - ~/.rightcode/.env

For more information, visit: https://github.com/rightcode-tools/rightcode-tui`)
}
