// Command nomofobia is a terminal guide about nomophobia: a single long page
// with a scroll-spy navigation bar, a self-assessment and a personal plan.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kraitsura/nomofobia/pkg/config"
	"github.com/kraitsura/nomofobia/pkg/loader"
	"github.com/kraitsura/nomofobia/pkg/logging"
	"github.com/kraitsura/nomofobia/pkg/model"
)

var (
	configPath string
	variant    string
	content    string
	logFile    string
	logLevel   string

	cfg       *config.Config
	logger    *log.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "nomofobia",
	Short: "Guía interactiva sobre la nomofobia en la terminal",
	Long: `nomofobia muestra una guía de una sola página sobre la dependencia del
teléfono móvil: definición, síntomas, causas, consejos y una autoevaluación.

Sin argumentos abre la guía interactiva. La barra superior resalta la sección
visible; usa 1-9 para saltar entre secciones y ? para ver todos los atajos.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = loadConfig(cmd)
		if err != nil {
			return err
		}
		// The TUI owns the terminal; subcommands log to stderr.
		if !cmd.HasParent() {
			logger, logCloser, err = logging.Open(cfg.LogFile, cfg.LogLevel)
		} else {
			logger, logCloser, err = logging.OpenCommand(cmd.ErrOrStderr(), cfg.LogFile, cfg.LogLevel)
		}
		if err != nil {
			return err
		}
		logger.Debug("config loaded", "variant", cfg.Variant, "content", cfg.Content, "watch", cfg.Watch)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logCloser != nil {
			_ = logCloser.Close()
		}
	},
	RunE: runTUI,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath(), "config file")
	pf.StringVar(&variant, "variant", "", "page variant: clasica, moderna or consciente")
	pf.StringVar(&content, "content", "", "guide YAML file or directory (default: built-in guide)")
	pf.StringVar(&logFile, "log-file", "", `log file ("-" disables logging)`)
	pf.StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")

	rootCmd.Flags().Bool("watch", false, "reload the content file when it changes")
	rootCmd.Flags().Bool("no-alt-screen", false, "draw inline instead of on the alternate screen")

	rootCmd.AddCommand(printCmd, sectionsCmd, exportCmd, serveCmd, versionCmd)
}

// loadConfig layers defaults, the config file, NOMOFOBIA_* variables and
// finally the flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("variant") {
		c.Variant = variant
	}
	if flags.Changed("content") {
		c.Content = content
	}
	if flags.Changed("log-file") {
		c.LogFile = logFile
	}
	if flags.Changed("log-level") {
		c.LogLevel = logLevel
	}
	if f := flags.Lookup("watch"); f != nil && f.Changed {
		c.Watch, _ = flags.GetBool("watch")
	}
	if f := flags.Lookup("no-alt-screen"); f != nil && f.Changed {
		noAlt, _ := flags.GetBool("no-alt-screen")
		c.AltScreen = !noAlt
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return c, nil
}

// loadGuide reads the configured content, or the built-in guide.
func loadGuide() (*model.Guide, error) {
	g, err := loader.LoadGuide(cfg.Content)
	if err != nil {
		return nil, fmt.Errorf("loading guide: %w", err)
	}
	return g, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
