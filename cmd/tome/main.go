// Tome — a terminal reader for multilingual annotated books.
//
// Usage:
//
//	tome [flags]
//
// Flags:
//
//	--config   Path to config YAML (default: ~/.config/tome/config.yaml)
//	--content  Library directory (default: the embedded sample book)
//	--locale   Starting locale: en, zh, or ja (overrides config and prefs)
package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/fennwick/tome/internal/config"
	"github.com/fennwick/tome/internal/content"
	"github.com/fennwick/tome/internal/logging"
	"github.com/fennwick/tome/internal/prefs"
	"github.com/fennwick/tome/internal/tui"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML")
	contentDir := flag.String("content", "", "Library directory (empty uses the embedded book)")
	localeFlag := flag.String("locale", "", "Starting locale: en, zh, or ja")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *localeFlag != "" {
		if _, err := content.ParseLocale(*localeFlag); err != nil {
			log.Fatalf("Invalid --locale: %v", err)
		}
		cfg.Content.Locale = *localeFlag
	}

	logger, err := logging.New(cfg.Log.Path, cfg.Log.Level)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Sync()

	var library fs.FS
	if cfg.Content.Dir != "" {
		library = os.DirFS(cfg.Content.Dir)
	} else {
		library = content.EmbeddedLibrary()
	}
	fetcher := content.NewFSFetcher(library)

	manifest, err := content.LoadManifest(fetcher)
	if err != nil {
		log.Fatalf("Failed to load library: %v", err)
	}

	var store prefs.Store = prefs.NopStore{}
	if cfg.Prefs.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Prefs.Path), 0o755); err == nil {
			if sqlStore, err := prefs.Open(cfg.Prefs.Path); err == nil {
				store = sqlStore
			} else {
				// Preferences are a convenience; run without them.
				logger.Warn("preferences unavailable, running without persistence",
					zap.Error(err))
			}
		}
	}
	defer store.Close()

	// A --locale flag overrides whatever preference is stored.
	if *localeFlag != "" {
		store.Set(prefs.KeyLocale, *localeFlag)
	}

	resolver := content.NewResolver(fetcher, logger)

	model := tui.NewModel(resolver, manifest, store, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running tome: %v\n", err)
		os.Exit(1)
	}
}
