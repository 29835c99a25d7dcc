package cli

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	pkgio "github.com/matzehuels/panelayout/pkg/io"
	"github.com/matzehuels/panelayout/pkg/layout"
	"github.com/matzehuels/panelayout/pkg/pipeline"
)

var (
	previewPaneStyle    = lipgloss.NewStyle().Foreground(colorGray)
	previewDividerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	previewLabelStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	previewErrorStyle   = lipgloss.NewStyle().Foreground(colorRed)
)

// previewCommand creates the preview command, an interactive terminal view
// where dividers are moved with the keyboard.
func (c *CLI) previewCommand() *cobra.Command {
	var (
		output string
		draft  bool
		step   float64
		opts   = pipeline.Options{Width: pipeline.DefaultWidth, Height: pipeline.DefaultHeight}
	)
	cmd := &cobra.Command{
		Use:   "preview [layout.json]",
		Short: "Move dividers interactively in the terminal",
		Long: `Move dividers interactively in the terminal.

Keys: tab/shift+tab select a divider, arrows (or h/j/k/l) move it, +/- scale
the whole layout, u undoes, enter accepts and q quits without accepting.
With -o the accepted snapshot is written to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := c.newEngine()
			if err != nil {
				return err
			}
			var l *layout.Layout
			if draft {
				d, err := pkgio.ImportDraft(args[0])
				if err != nil {
					return fmt.Errorf("load draft %s: %w", args[0], err)
				}
				if l, err = pipeline.Format(e, d, opts); err != nil {
					return fmt.Errorf("format: %w", err)
				}
			} else if l, err = readLayout(cmd, args[0]); err != nil {
				return err
			}

			p := tea.NewProgram(newPreviewModel(e, l, step), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			final, err := p.Run()
			if err != nil {
				return fmt.Errorf("preview: %w", err)
			}
			m := final.(previewModel)
			if !m.accepted {
				printInfo("Preview closed without changes")
				return nil
			}
			if output == "" {
				printSuccess("Accepted %s", fmtSize(m.layout.Size().Width, m.layout.Size().Height))
				return nil
			}
			if err := pkgio.ExportLayout(m.layout, output); err != nil {
				return fmt.Errorf("write output %s: %w", output, err)
			}
			printSuccess("Accepted layout")
			printFile(output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the accepted snapshot to this file")
	cmd.Flags().BoolVar(&draft, "draft", false, "treat the input as a draft and format it first")
	cmd.Flags().Float64Var(&step, "step", 10, "pixels per key press")
	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "container width for --draft")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "container height for --draft")
	return cmd
}

// =============================================================================
// previewModel - bubbletea model
// =============================================================================

type previewModel struct {
	engine   *layout.Engine
	layout   *layout.Layout
	history  []*layout.Layout
	dividers []layout.Divider
	cursor   int
	step     float64

	cols, rows int
	status     string
	failed     bool
	accepted   bool
}

func newPreviewModel(e *layout.Engine, l *layout.Layout, step float64) previewModel {
	if step <= 0 {
		step = 10
	}
	return previewModel{
		engine:   e,
		layout:   l,
		dividers: layout.Dividers(l),
		step:     step,
		cols:     80,
		rows:     24,
	}
}

func (m previewModel) Init() tea.Cmd {
	return nil
}

func (m previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
	case tea.KeyMsg:
		m.status, m.failed = "", false
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "enter":
			m.accepted = true
			return m, tea.Quit
		case "tab", "n":
			if len(m.dividers) > 0 {
				m.cursor = (m.cursor + 1) % len(m.dividers)
			}
		case "shift+tab", "p":
			if len(m.dividers) > 0 {
				m.cursor = (m.cursor + len(m.dividers) - 1) % len(m.dividers)
			}
		case "left", "h":
			m = m.move(layout.Horizontal, -m.step)
		case "right", "l":
			m = m.move(layout.Horizontal, m.step)
		case "up", "k":
			m = m.move(layout.Vertical, -m.step)
		case "down", "j":
			m = m.move(layout.Vertical, m.step)
		case "+", "=":
			m = m.scale(m.step)
		case "-", "_":
			m = m.scale(-m.step)
		case "u":
			if n := len(m.history); n > 0 {
				m = m.show(m.history[n-1])
				m.history = m.history[:n-1]
				m.status = "undone"
			}
		}
	}
	return m, nil
}

// move resizes the selected divider's pane if the divider runs along axis.
func (m previewModel) move(axis layout.Axis, delta float64) previewModel {
	if len(m.dividers) == 0 {
		return m
	}
	d := m.dividers[m.cursor]
	if d.Axis.Normalize() != axis {
		m.status = "this divider moves " + arrowsFor(d.Axis)
		return m
	}
	next, applied, err := m.engine.Resize(m.layout, d.Key, delta)
	if err != nil {
		m.status, m.failed = err.Error(), true
		return m
	}
	m.status = fmt.Sprintf("%s %+g", d.Key, applied)
	return m.push(next)
}

func (m previewModel) scale(delta float64) previewModel {
	next, applied, err := m.engine.Scale(m.layout, layout.Size{Width: delta, Height: delta})
	if err != nil {
		m.status, m.failed = err.Error(), true
		return m
	}
	m.status = fmt.Sprintf("scaled %+g x %+g", applied.Width, applied.Height)
	return m.push(next)
}

// push records the current snapshot for undo and shows next. Snapshots are
// immutable, so history is just a list of pointers.
func (m previewModel) push(next *layout.Layout) previewModel {
	if next == m.layout {
		return m
	}
	m.history = append(m.history, m.layout)
	return m.show(next)
}

// show displays l, keeping the selection on the same divider when it still
// exists.
func (m previewModel) show(l *layout.Layout) previewModel {
	var key string
	if len(m.dividers) > 0 {
		key = m.dividers[m.cursor].Key
	}
	m.layout = l
	m.dividers = layout.Dividers(l)
	m.cursor = 0
	for i, d := range m.dividers {
		if d.Key == key {
			m.cursor = i
			break
		}
	}
	return m
}

func arrowsFor(a layout.Axis) string {
	if a.Normalize() == layout.Vertical {
		return "up/down"
	}
	return "left/right"
}

func (m previewModel) View() string {
	var b strings.Builder
	size := m.layout.Size()
	b.WriteString(StyleTitle.Render("panelayout preview"))
	b.WriteString(StyleDim.Render(fmt.Sprintf("  %s  %d panes", fmtSize(size.Width, size.Height), len(m.layout.Leaves()))))
	b.WriteString("\n")
	b.WriteString(m.canvas().render())

	line := StyleDim.Render("tab select · arrows move · +/- scale · u undo · enter accept · q quit")
	if len(m.dividers) > 0 {
		d := m.dividers[m.cursor]
		line = StyleHighlight.Render(fmt.Sprintf("%s | %s", d.Key, d.Next)) + "  " + line
	}
	b.WriteString(line)
	if m.status != "" {
		style := StyleDim
		if m.failed {
			style = previewErrorStyle
		}
		b.WriteString("\n" + style.Render(m.status))
	}
	return b.String()
}

// =============================================================================
// canvas - character grid
// =============================================================================

type cell struct {
	r     rune
	style int // 0 pane border, 1 selected divider, 2 label
}

type canvas [][]cell

// canvas draws every leaf as a box scaled to the terminal, then overdraws
// the selected divider.
func (m previewModel) canvas() canvas {
	cols, rows := m.cols, m.rows-3
	if cols < 10 {
		cols = 10
	}
	if rows < 4 {
		rows = 4
	}
	cv := make(canvas, rows)
	for i := range cv {
		cv[i] = make([]cell, cols)
		for j := range cv[i] {
			cv[i][j] = cell{r: ' '}
		}
	}

	size := m.layout.Size()
	if size.Width <= 0 || size.Height <= 0 {
		return cv
	}
	sx, sy := float64(cols)/size.Width, float64(rows)/size.Height
	toCol := func(x float64) int { return clampInt(int(math.Round(x*sx)), 0, cols) }
	toRow := func(y float64) int { return clampInt(int(math.Round(y*sy)), 0, rows) }

	for _, p := range m.layout.Positions().Leaves() {
		x0, x1 := toCol(p.X), toCol(p.Right())-1
		y0, y1 := toRow(p.Y), toRow(p.Bottom())-1
		cv.box(x0, y0, x1, y1)
		cv.label(x0+1, y0+1, x1-1, p.Key)
	}

	if len(m.dividers) > 0 {
		d := m.dividers[m.cursor]
		if d.Axis.Normalize() == layout.Vertical {
			row := clampInt(toRow(d.Y)-1, 0, rows-1)
			for x := toCol(d.X); x < toCol(d.X+d.Length); x++ {
				cv[row][x] = cell{r: '━', style: 1}
			}
		} else {
			col := clampInt(toCol(d.X)-1, 0, cols-1)
			for y := toRow(d.Y); y < toRow(d.Y+d.Length); y++ {
				cv[y][col] = cell{r: '┃', style: 1}
			}
		}
	}
	return cv
}

func (cv canvas) box(x0, y0, x1, y1 int) {
	if x1 <= x0 || y1 <= y0 {
		return
	}
	for x := x0 + 1; x < x1; x++ {
		cv[y0][x] = cell{r: '─'}
		cv[y1][x] = cell{r: '─'}
	}
	for y := y0 + 1; y < y1; y++ {
		cv[y][x0] = cell{r: '│'}
		cv[y][x1] = cell{r: '│'}
	}
	cv[y0][x0] = cell{r: '┌'}
	cv[y0][x1] = cell{r: '┐'}
	cv[y1][x0] = cell{r: '└'}
	cv[y1][x1] = cell{r: '┘'}
}

func (cv canvas) label(x0, y, x1 int, text string) {
	if y >= len(cv) {
		return
	}
	for i, r := range []rune(text) {
		if x0+i > x1 {
			return
		}
		cv[y][x0+i] = cell{r: r, style: 2}
	}
}

func (cv canvas) render() string {
	styles := []lipgloss.Style{previewPaneStyle, previewDividerStyle, previewLabelStyle}
	var b strings.Builder
	for _, row := range cv {
		for _, c := range row {
			if c.r == ' ' {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(styles[c.style].Render(string(c.r)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
