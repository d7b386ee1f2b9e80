// Package main runs the starfield in the current terminal.
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/Faultbox/starfield/internal/config"
	"github.com/Faultbox/starfield/internal/logger"
	"github.com/Faultbox/starfield/internal/tui"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Console output would corrupt the terminal UI.
	if err := logger.InitFileOnly(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	model, err := tui.New(tui.OptionsFromConfig(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	final, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	if err != nil {
		logger.Error("terminal error", zap.Error(err))
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if m, ok := final.(tui.Model); ok && m.Err() != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", m.Err())
		os.Exit(1)
	}
}
