// Package cli implements the panelayout command-line interface.
package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/panelayout/pkg/buildinfo"
	"github.com/matzehuels/panelayout/pkg/cache"
	"github.com/matzehuels/panelayout/pkg/config"
	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
	"github.com/matzehuels/panelayout/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Global flags. Zero minimums keep the configured values.
	configPath string
	minWidth   float64
	minHeight  float64
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "panelayout",
		Short: "panelayout tiles rectangles into resizable split layouts",
		Long: `panelayout normalizes sparse split-pane trees into fully sized layouts and
edits them: resize dividers, scale the whole layout, remove, drag and swap panes.
Every command reads and writes immutable snapshots, so edits can be chained.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/panelayout/config.toml)")
	flags.Float64Var(&c.minWidth, "min-width", 0, "minimum pane width (overrides config)")
	flags.Float64Var(&c.minHeight, "min-height", 0, "minimum pane height (overrides config)")

	root.AddCommand(c.formatCommand())
	root.AddCommand(c.positionsCommand())
	root.AddCommand(c.checkCommand())
	root.AddCommand(c.dotCommand())
	root.AddCommand(c.resizeCommand())
	root.AddCommand(c.cornerCommand())
	root.AddCommand(c.scaleCommand())
	root.AddCommand(c.removeCommand())
	root.AddCommand(c.insertCommand())
	root.AddCommand(c.dragCommand())
	root.AddCommand(c.swapCommand())
	root.AddCommand(c.applyCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// loadConfig reads the config file and applies the global flag overrides.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if c.minWidth > 0 {
		cfg.Engine.MinWidth = c.minWidth
	}
	if c.minHeight > 0 {
		cfg.Engine.MinHeight = c.minHeight
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded", "min_width", cfg.Engine.MinWidth, "min_height", cfg.Engine.MinHeight,
		"leftover", cfg.Engine.Leftover, "cache", cfg.Cache.Backend)
	return cfg, nil
}

// newEngine builds an engine from the configured constraints.
func (c *CLI) newEngine() (*layout.Engine, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	return layout.New(cfg.Constraints())
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	engine, err := layout.New(cfg.Constraints())
	if err != nil {
		return nil, err
	}
	store, err := c.openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(store, nil, engine, c.Logger)
	runner.TTL = cfg.Cache.TTL
	return runner, nil
}

// openCache opens the configured backend. An unusable file or redis cache
// degrades to no caching with a warning.
func (c *CLI) openCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	store, err := cache.Open(ctx, cfg.CacheOptions())
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without", "backend", cfg.Cache.Backend, "error", err)
		return cache.NewNullCache(), nil
	}
	return store, nil
}

// =============================================================================
// Input / Output Helpers
// =============================================================================

// readLayout loads a snapshot file; "-" reads standard input.
func readLayout(cmd *cobra.Command, path string) (*layout.Layout, error) {
	if path == "-" {
		return pkgio.ReadLayout(cmd.InOrStdin())
	}
	l, err := pkgio.ImportLayout(path)
	if err != nil {
		return nil, fmt.Errorf("load layout %s: %w", path, err)
	}
	return l, nil
}

// writeOutput writes data to path, or to the command's stdout when path is
// empty. Status lines are only printed for files so piped output stays clean.
func writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	printFile(path)
	return nil
}

// writeSnapshot encodes l as snapshot JSON and writes it like [writeOutput].
func writeSnapshot(cmd *cobra.Command, path string, l *layout.Layout) error {
	var buf bytes.Buffer
	if err := pkgio.WriteLayout(&buf, l); err != nil {
		return err
	}
	return writeOutput(cmd, path, buf.Bytes())
}
