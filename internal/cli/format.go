package cli

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
	"github.com/matzehuels/panelayout/pkg/pipeline"
)

// formatCommand creates the format command that turns a draft into a snapshot.
func (c *CLI) formatCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	opts := pipeline.Options{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight}

	cmd := &cobra.Command{
		Use:   "format [draft.json|draft.toml|draft.yaml]",
		Short: "Normalize a draft tree into a fully sized snapshot",
		Long: `Normalize a draft tree into a fully sized snapshot.

Panes without a size share the space their siblings leave unclaimed, and
nested containers take the cross-axis size of their parent. The snapshot is
written as JSON and can be fed to every editing command.

Results are cached, so formatting the same draft at the same size again is
a cache hit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFormat(cmd, args[0], opts, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json, - for stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "recompute even when cached")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "container width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "container height")
	cmd.Flags().StringVar(&opts.RootKey, "root-key", "", "root container key (default: ROOT)")

	return cmd
}

func (c *CLI) runFormat(cmd *cobra.Command, input string, opts pipeline.Options, output string, noCache bool) error {
	ctx := cmd.Context()
	d, err := pkgio.ImportDraft(input)
	if err != nil {
		return fmt.Errorf("load draft %s: %w", input, err)
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	prog := newProgress(c.Logger)
	l, cacheHit, err := c.formatWithSpinner(ctx, runner, d, opts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Formatted %s", fmtSize(l.Size().Width, l.Size().Height)))

	switch output {
	case "-":
		return writeSnapshot(cmd, "", l)
	case "":
		output = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := pkgio.ExportLayout(l, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Format complete")
	printFile(output)
	printStats(len(l.Leaves()), l.Len(), cacheHit)
	printNextStep("Inspect", "panelayout positions "+output)
	return nil
}

func (c *CLI) formatWithSpinner(ctx context.Context, runner *pipeline.Runner, d layout.Draft, opts pipeline.Options) (*layout.Layout, bool, error) {
	spinner := newSpinnerWithContext(ctx, "Formatting layout...")
	spinner.Start()
	l, hit, err := runner.FormatWithCacheInfo(ctx, d, opts)
	if err != nil {
		spinner.StopWithError("Format failed")
		return nil, false, fmt.Errorf("format: %w", err)
	}
	spinner.Stop()
	if ctx.Err() != nil {
		return nil, false, ctx.Err()
	}
	return l, hit, nil
}

// positionsCommand creates the positions command.
func (c *CLI) positionsCommand() *cobra.Command {
	var (
		output string
		popts  pkgio.PositionOptions
	)
	cmd := &cobra.Command{
		Use:   "positions [layout.json]",
		Short: "Print the absolute rectangle of every pane",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLayout(cmd, args[0])
			if err != nil {
				return err
			}
			var buf bytes.Buffer
			if err := pkgio.WritePositions(&buf, l, popts); err != nil {
				return err
			}
			return writeOutput(cmd, output, buf.Bytes())
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&popts.Containers, "containers", false, "include containers")
	cmd.Flags().BoolVar(&popts.Handles, "handles", false, "include dividers and corner handles")
	return cmd
}

// checkCommand creates the check command that validates a snapshot.
func (c *CLI) checkCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check [layout.json]",
		Short: "Verify that a snapshot tiles its space and respects the minimum sizes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := readLayout(cmd, args[0])
			if err != nil {
				return err
			}
			e, err := c.newEngine()
			if err != nil {
				return err
			}
			verr := layout.Check(l, e.Constraints())
			if verr == nil {
				printSuccess("%s is valid", args[0])
				printDetail("%d panes, %s", len(l.Leaves()), fmtSize(l.Size().Width, l.Size().Height))
				return nil
			}
			violations := multierr.Errors(verr)
			for _, v := range violations {
				printWarning("%s", v)
			}
			return fmt.Errorf("%s: %d violation(s)", args[0], len(violations))
		},
	}
}

// dotCommand creates the dot command that draws the tree structure.
func (c *CLI) dotCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)
	cmd := &cobra.Command{
		Use:   "dot [layout.json]",
		Short: "Draw the container tree as Graphviz DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != pipeline.FormatDOT && format != pipeline.FormatSVG {
				return fmt.Errorf("invalid format %q: must be dot or svg", format)
			}
			l, err := readLayout(cmd, args[0])
			if err != nil {
				return err
			}
			artifacts, err := pipeline.Render(l, pipeline.Options{Formats: []string{format}, Detailed: detailed})
			if err != nil {
				return err
			}
			return writeOutput(cmd, output, artifacts[format])
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", pipeline.FormatDOT, "output format: dot, svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include sizes in labels")
	return cmd
}
