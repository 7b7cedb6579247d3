package main

import (
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/bugboard/internal/app"
	"github.com/nhle/bugboard/internal/logging"
	"github.com/nhle/bugboard/internal/model"
	"github.com/nhle/bugboard/internal/store"
)

func main() {
	// Logs go to a file: stdout belongs to the terminal UI.
	logFile, err := logging.SetupFile(logging.DefaultLogPath(), logging.LevelFromEnv())
	if err != nil {
		logging.Setup(os.Stderr, logging.LevelFromEnv())
		slog.Warn("file logging unavailable", "error", err)
	} else {
		defer logFile.Close()
	}

	configPath := model.DefaultConfigPath()
	if p := os.Getenv("BUGBOARD_CONFIG"); p != "" {
		configPath = p
	}

	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Session state only: the database lives in memory and dies with the
	// process.
	st, err := store.NewSQLiteStore(":memory:")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open session store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	p := tea.NewProgram(app.New(st, cfg, configPath), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}
