package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
	"github.com/matzehuels/panelayout/pkg/pipeline"
)

// Every edit command reads a snapshot, applies one op and writes the new
// snapshot to -o or stdout. The applied amount is logged, since resize and
// scale may fall short of the request when the minimum sizes bind.

// runEdit applies op to the snapshot at input and writes the result.
func (c *CLI) runEdit(cmd *cobra.Command, input, output string, op pkgio.Op) error {
	l, err := readLayout(cmd, input)
	if err != nil {
		return err
	}
	e, err := c.newEngine()
	if err != nil {
		return err
	}
	next, step, err := pipeline.ApplyOp(e, l, op)
	if err != nil {
		return fmt.Errorf("%s: %w", op.Op, err)
	}
	if !step.Requested.IsZero() {
		c.Logger.Info(string(op.Op),
			"requested", fmtSize(step.Requested.Width, step.Requested.Height),
			"applied", fmtSize(step.Applied.Width, step.Applied.Height))
	}
	if !step.Changed {
		c.Logger.Info("layout unchanged", "op", op.Op)
	}
	return writeSnapshot(cmd, output, next)
}

// editCommand builds the shared shape of an edit command.
func (c *CLI) editCommand(use, short string, args int, build func(args []string) (pkgio.Op, error)) *cobra.Command {
	output := new(string)
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(args),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := build(args[1:])
			if err != nil {
				return err
			}
			return c.runEdit(cmd, args[0], *output, op)
		},
		ValidArgsFunction: completeKeys,
	}
	cmd.Flags().StringVarP(output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func (c *CLI) resizeCommand() *cobra.Command {
	var delta float64
	cmd := c.editCommand("resize [layout.json] [key]",
		"Move the divider after a pane, taking space from its next sibling", 2,
		func(args []string) (pkgio.Op, error) {
			return pkgio.Op{Op: pkgio.OpResize, Key: args[0], Delta: delta}, nil
		})
	cmd.Flags().Float64VarP(&delta, "delta", "d", 0, "growth along the parent axis (negative shrinks)")
	return cmd
}

func (c *CLI) cornerCommand() *cobra.Command {
	var dx, dy float64
	cmd := c.editCommand("corner [layout.json] [width-key] [height-key]",
		"Drag a corner handle, resizing one pane horizontally and another vertically", 3,
		func(args []string) (pkgio.Op, error) {
			return pkgio.Op{Op: pkgio.OpCorner, WidthKey: args[0], HeightKey: args[1], DX: dx, DY: dy}, nil
		})
	cmd.Flags().Float64Var(&dx, "dx", 0, "horizontal delta for the width key")
	cmd.Flags().Float64Var(&dy, "dy", 0, "vertical delta for the height key")
	return cmd
}

func (c *CLI) scaleCommand() *cobra.Command {
	var dx, dy, toWidth, toHeight float64
	cmd := c.editCommand("scale [layout.json]",
		"Grow or shrink the whole layout, distributing the change over the panes", 1,
		func([]string) (pkgio.Op, error) {
			if toWidth > 0 || toHeight > 0 {
				if dx != 0 || dy != 0 {
					return pkgio.Op{}, fmt.Errorf("--dx/--dy and --to-width/--to-height are exclusive")
				}
				return pkgio.Op{Op: pkgio.OpScaleTo, Width: toWidth, Height: toHeight}, nil
			}
			return pkgio.Op{Op: pkgio.OpScale, Width: dx, Height: dy}, nil
		})
	cmd.Flags().Float64Var(&dx, "dx", 0, "width delta")
	cmd.Flags().Float64Var(&dy, "dy", 0, "height delta")
	cmd.Flags().Float64Var(&toWidth, "to-width", 0, "target width (requires --to-height)")
	cmd.Flags().Float64Var(&toHeight, "to-height", 0, "target height (requires --to-width)")
	return cmd
}

func (c *CLI) removeCommand() *cobra.Command {
	cmd := c.editCommand("remove [layout.json] [key]",
		"Remove a pane and give its space to a neighbour", 2,
		func(args []string) (pkgio.Op, error) {
			return pkgio.Op{Op: pkgio.OpRemove, Key: args[0]}, nil
		})
	return cmd
}

func (c *CLI) insertCommand() *cobra.Command {
	cmd := c.editCommand("insert [layout.json] [key] [target] [direction]",
		"Split a pane and place a new pane on one of its sides", 4,
		func(args []string) (pkgio.Op, error) {
			return relocateOp(pkgio.OpInsert, args)
		})
	cmd.Long = directionHelp
	return cmd
}

func (c *CLI) dragCommand() *cobra.Command {
	cmd := c.editCommand("drag [layout.json] [key] [target] [direction]",
		"Move a pane next to another one", 4,
		func(args []string) (pkgio.Op, error) {
			return relocateOp(pkgio.OpDrag, args)
		})
	cmd.Long = directionHelp
	return cmd
}

func (c *CLI) swapCommand() *cobra.Command {
	cmd := c.editCommand("swap [layout.json] [a] [b]",
		"Exchange two panes, keeping every size in place", 3,
		func(args []string) (pkgio.Op, error) {
			return pkgio.Op{Op: pkgio.OpSwap, Key: args[0], Target: args[1]}, nil
		})
	return cmd
}

// completeKeys completes the snapshot path first, then the keys it holds,
// then the drop direction for insert and drag.
func completeKeys(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) == 0 {
		return []string{"json"}, cobra.ShellCompDirectiveFilterFileExt
	}
	if len(args) == 3 {
		return []string{"top", "right", "bottom", "left", "center"}, cobra.ShellCompDirectiveNoFileComp
	}
	l, err := pkgio.ImportLayout(args[0])
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return l.Keys(), cobra.ShellCompDirectiveNoFileComp
}

const directionHelp = `Direction is one of top, right, bottom, left or center. A side splits the
target in half along that side; center replaces the target.`

func relocateOp(kind pkgio.OpKind, args []string) (pkgio.Op, error) {
	dir, err := layout.ParseDirection(args[2])
	if err != nil {
		return pkgio.Op{}, err
	}
	return pkgio.Op{Op: kind, Key: args[0], Target: args[1], Direction: dir}, nil
}

// applyCommand creates the apply command that replays an op script.
func (c *CLI) applyCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)
	cmd := &cobra.Command{
		Use:   "apply [layout.json] [script.json|script.toml|script.yaml]",
		Short: "Replay an op script against a snapshot",
		Long: `Replay an op script against a snapshot.

A script is a list of ops (resize, corner, scale, scale-to, remove, insert,
drag, swap) applied in order. Replay stops at the first failing op; the
snapshot is only written when every op succeeds.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			l, err := readLayout(cmd, args[0])
			if err != nil {
				return err
			}
			script, err := pkgio.ImportScript(args[1])
			if err != nil {
				return fmt.Errorf("load script %s: %w", args[1], err)
			}
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			prog := newProgress(c.Logger)
			next, steps, hit, err := runner.ReplayWithCacheInfo(ctx, l, pipeline.Options{Ops: script.Ops, Logger: c.Logger})
			for _, s := range steps {
				c.Logger.Debug("step", "index", s.Index, "op", s.Op, "changed", s.Changed)
			}
			if err != nil {
				return fmt.Errorf("replay: %w", err)
			}
			if hit {
				prog.done(fmt.Sprintf("Replayed %d ops (cached)", len(script.Ops)))
			} else {
				prog.done(fmt.Sprintf("Replayed %d ops", len(steps)))
			}
			return writeSnapshot(cmd, output, next)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
