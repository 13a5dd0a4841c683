package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/techtrack/internal/app"
	"github.com/nhle/techtrack/internal/credential"
	"github.com/nhle/techtrack/internal/enrich"
	"github.com/nhle/techtrack/internal/model"
	"github.com/nhle/techtrack/internal/source"
	"github.com/nhle/techtrack/internal/source/github"
	"github.com/nhle/techtrack/internal/source/quotes"
	"github.com/nhle/techtrack/internal/storage"
	"github.com/nhle/techtrack/internal/store"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	dataDirFlag := flag.String("data-dir", "", "override the data directory")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	dataDir := cfg.Storage.DataDir
	if *dataDirFlag != "" {
		dataDir = *dataDirFlag
	}
	if dataDir == "" {
		dataDir = model.DefaultDataDir()
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dataDir, err)
	}

	// The TUI owns stdout, so logs go to a file in the data directory.
	logFile, err := os.OpenFile(
		filepath.Join(dataDir, "techtrack.log"),
		os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644,
	)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logger := slog.New(slog.NewTextHandler(logFile, nil))

	binding, err := openBinding(cfg, dataDir)
	if err != nil {
		return err
	}
	defer binding.Close()

	var searcher source.Searcher
	if cfg.GitHub.Enabled {
		searcher = github.NewAdapter(
			cfg.GitHub.BaseURL,
			credential.GitHubToken(),
			cfg.GitHub.PageSize,
		)
	}

	var quoteClient *quotes.Client
	if cfg.Quotes.Enabled {
		quoteClient = quotes.NewClient(cfg.Quotes.BaseURL)
	}

	enrichService := enrich.NewService(
		searcher, quoteClient, binding, logger, github.FallbackCandidates,
	)

	s := store.Open(binding, logger)
	logger.Info("starting techtrack",
		"driver", cfg.Storage.Driver,
		"technologies", s.Len(),
	)

	program := tea.NewProgram(
		app.New(s, enrichService),
		tea.WithAltScreen(),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// openBinding selects the persistence medium named in the config.
func openBinding(cfg *model.AppConfig, dataDir string) (storage.Binding, error) {
	switch cfg.Storage.Driver {
	case model.StorageDriverSQLite:
		return storage.NewSQLiteBinding(filepath.Join(dataDir, "techtrack.db"))
	default:
		return storage.NewFileBinding(dataDir)
	}
}
