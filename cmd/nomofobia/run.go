package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kraitsura/nomofobia/pkg/loader"
	"github.com/kraitsura/nomofobia/pkg/ui"
	"github.com/kraitsura/nomofobia/pkg/watcher"
)

func runTUI(cmd *cobra.Command, args []string) error {
	g, err := loadGuide()
	if err != nil {
		return err
	}

	var w *watcher.Watcher
	if cfg.Watch {
		if w, err = startContentWatcher(cfg.Content, logger); err != nil {
			return err
		}
		defer w.Stop()
	}

	m := ui.New(ui.Options{
		Guide:       g,
		Profile:     cfg.Profile(),
		Renderer:    lipgloss.NewRenderer(os.Stdout),
		Logger:      logger,
		Watcher:     w,
		ContentPath: cfg.Content,
	})
	unmount := m.Mount()
	defer unmount()

	opts := []tea.ProgramOption{tea.WithMouseCellMotion()}
	if cfg.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	logger.Info("starting", "variant", cfg.Variant, "sections", len(g.Sections))
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil {
		return fmt.Errorf("running guide: %w", err)
	}
	return nil
}

// startContentWatcher watches the file LoadGuide reads for content, so a
// directory is watched through its guide.yaml.
func startContentWatcher(content string, l *log.Logger) (*watcher.Watcher, error) {
	w, err := watcher.NewWatcher(loader.ResolvePath(content), watcher.WithLogger(l))
	if err != nil {
		return nil, fmt.Errorf("watching content: %w", err)
	}
	if err := w.Start(); err != nil {
		return nil, fmt.Errorf("watching content: %w", err)
	}
	return w, nil
}
