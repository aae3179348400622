package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/kraitsura/nomofobia/pkg/export"
	"github.com/kraitsura/nomofobia/pkg/loader"
	"github.com/kraitsura/nomofobia/pkg/ui"
	"github.com/kraitsura/nomofobia/pkg/updater"
	"github.com/kraitsura/nomofobia/pkg/version"
	"github.com/kraitsura/nomofobia/pkg/watcher"
)

const defaultPrintWidth = 100

var printCmd = &cobra.Command{
	Use:   "print",
	Short: "Render the whole guide to stdout",
	Long: `Renders every section once, fully revealed, without the navigation
chrome. Useful with a pager: nomofobia print | less -R`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGuide()
		if err != nil {
			return err
		}
		width, _ := cmd.Flags().GetInt("width")
		if width <= 0 {
			width = defaultPrintWidth
			if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
				width = w
			}
		}
		out := ui.RenderStatic(g, cfg.Profile(), width, lipgloss.NewRenderer(cmd.OutOrStdout()))
		_, err = fmt.Fprint(cmd.OutOrStdout(), out)
		return err
	},
}

var sectionsCmd = &cobra.Command{
	Use:   "sections",
	Short: "List the guide sections in page order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGuide()
		if err != nil {
			return err
		}
		asJSON, _ := cmd.Flags().GetBool("json")
		outline, _ := cmd.Flags().GetBool("outline")
		out := cmd.OutOrStdout()

		if asJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if outline {
				return enc.Encode(loader.Outline(g))
			}
			return enc.Encode(g.Sections)
		}

		if outline {
			for _, e := range loader.Outline(g) {
				indent := ""
				if e.Depth > 0 {
					indent = "    "
				}
				fmt.Fprintf(out, "%s%s\n", indent, e.Title)
			}
			return nil
		}
		for i, s := range g.Sections {
			fmt.Fprintf(out, "%d. %-12s %s %s\n", i+1, s.ID, s.Icon, s.Label)
		}
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the guide as a static HTML site",
	Long: `Writes one HTML page per variant plus index.html (the default variant)
into the output directory.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		g, err := loadGuide()
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("out")
		files, err := export.WriteSite(dir, g)
		if err != nil {
			return fmt.Errorf("exporting site: %w", err)
		}
		for _, f := range files {
			fmt.Fprintln(cmd.OutOrStdout(), f)
		}
		logger.Info("site exported", "dir", dir, "files", len(files))
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Preview the HTML guide in a local web server",
	Long: `Serves / (default variant) and /v/{variant}. With --watch the content file
is reloaded on change and the next request shows the new version.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "nomofobia %s\n", version.Version)
		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}
		rel, newer, err := updater.Checker{}.Check(cmd.Context(), version.Version)
		if err != nil {
			return fmt.Errorf("checking for updates: %w", err)
		}
		if newer {
			fmt.Fprintf(out, "Nueva versión disponible: %s (%s)\n", rel.TagName, rel.HTMLURL)
		} else {
			fmt.Fprintln(out, "Ya tienes la última versión.")
		}
		logger.Debug("update check", "latest", rel.TagName, "newer", newer)
		return nil
	},
}

func init() {
	printCmd.Flags().Int("width", 0, "output width (default: terminal width)")
	sectionsCmd.Flags().Bool("json", false, "print JSON")
	sectionsCmd.Flags().Bool("outline", false, "include the headings inside each section")
	exportCmd.Flags().String("out", "site", "output directory")
	serveCmd.Flags().String("addr", "", "listen address (default from config serve_addr)")
	serveCmd.Flags().Bool("watch", false, "reload the content file when it changes")
	versionCmd.Flags().Bool("check", false, "check GitHub for a newer release")
}

func runServe(cmd *cobra.Command, args []string) error {
	g, err := loadGuide()
	if err != nil {
		return err
	}
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.ServeAddr
	}
	watch, _ := cmd.Flags().GetBool("watch")
	watch = watch || cfg.Watch
	if watch && cfg.Content == "" {
		return fmt.Errorf("--watch requires --content")
	}

	srv, err := export.NewPreviewServer(addr, g, logger)
	if err != nil {
		return err
	}

	// Nothing may be running yet if the watcher fails to start.
	var w *watcher.Watcher
	if watch {
		if w, err = startContentWatcher(cfg.Content, logger); err != nil {
			return err
		}
		defer w.Stop()
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return srv.Run(ctx) })
	if w != nil {
		eg.Go(func() error { return reloadLoop(ctx, w, srv) })
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Sirviendo la guía en http://%s (Ctrl+C para salir)\n", addr)
	return eg.Wait()
}

// reloadLoop feeds content changes to the preview server. Parse errors keep
// the previous guide.
func reloadLoop(ctx context.Context, w *watcher.Watcher, srv *export.PreviewServer) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changed():
			g, err := loader.LoadGuide(cfg.Content)
			if err != nil {
				logger.Warn("content reload failed", "err", err)
				continue
			}
			srv.SetGuide(g)
			logger.Info("content reloaded", "sections", len(g.Sections))
		}
	}
}
