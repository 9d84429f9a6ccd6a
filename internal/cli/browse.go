package cli

import (
	"context"
	"fmt"
	"os"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/strata/pkg/interval"
	"github.com/matzehuels/strata/pkg/layout"
	"github.com/matzehuels/strata/pkg/pipeline"
	"github.com/matzehuels/strata/pkg/scale"
	"github.com/matzehuels/strata/pkg/session"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// browseCommand starts the interactive chart browser.
func (c *CLI) browseCommand() *cobra.Command {
	var (
		chart chartFlags
		fresh bool
	)

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Explore windows and scale modes interactively",
		Long: `Explore windows and scale modes interactively.

Keys:
  ←/→  previous/next window preset    m    cycle scale mode
  tab  next column                    b    toggle biozone columns
  ↑/↓  scroll boxes                   w    write the current view as SVG
  q    quit (the view is restored next time)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBrowse(cmd.Context(), chart, fresh)
		},
	}

	chart.register(cmd)
	cmd.Flags().BoolVar(&fresh, "fresh", false, "ignore the saved view")
	return cmd
}

func (c *CLI) runBrowse(ctx context.Context, chart chartFlags, fresh bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	opts, err := chart.options(cfg)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	store, err := session.NewFileStore("")
	if err != nil {
		c.Logger.Warn("view will not be saved", "error", err)
	}
	if store != nil && !fresh && chart.window == "" && chart.mode == "" && len(chart.biozones) == 0 {
		if sess, err := store.Get(ctx, session.BrowseID); err == nil && sess != nil {
			if w, ok := sess.Window(); ok {
				opts.Min, opts.Max = w.Min, w.Max
			}
			opts.Mode = sess.Mode
			opts.Biozones = sess.Biozones
		}
	}

	m, err := newBrowseModel(ctx, runner, opts)
	if err != nil {
		return err
	}

	// Silence pipeline logging while the alternate screen is active.
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(LogError)
	final, err := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen()).Run()
	c.Logger.SetLevel(level)
	if err != nil {
		return err
	}

	bm := final.(browseModel)
	if store != nil {
		sess := session.New(session.BrowseID, bm.presetName(), bm.window.Min, bm.window.Max, string(bm.mode), bm.activeBiozones())
		if err := store.Set(ctx, sess); err != nil {
			c.Logger.Warn("save view", "error", err)
		}
	}
	return nil
}

// =============================================================================
// browseModel - Interactive chart explorer
// =============================================================================

type chartMsg struct {
	chart layout.Chart
	err   error
}

type statusMsg string

type browseModel struct {
	ctx    context.Context
	runner *pipeline.Runner
	base   pipeline.Options

	preset   int // index into interval.Presets, -1 for a custom window
	window   interval.Window
	mode     scale.Mode
	biozones []string        // available biozone collections
	active   map[string]bool // biozones shown

	chart  layout.Chart
	err    error
	status string

	column int
	offset int
	height int
}

func newBrowseModel(ctx context.Context, runner *pipeline.Runner, opts pipeline.Options) (browseModel, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return browseModel{}, err
	}
	m := browseModel{
		ctx:    ctx,
		runner: runner,
		base:   opts,
		preset: -1,
		window: opts.Window(),
		mode:   opts.ScaleMode(),
		active: make(map[string]bool),
		height: 12,
	}
	for i, p := range interval.Presets {
		if p.Window == m.window {
			m.preset = i
		}
	}
	for _, key := range runner.Loader.Keys() {
		if key != layout.ReferenceCollection {
			m.biozones = append(m.biozones, key)
		}
	}
	for _, key := range opts.Biozones {
		m.active[key] = true
		if !slices.Contains(m.biozones, key) {
			m.biozones = append(m.biozones, key)
		}
	}
	return m, nil
}

func (m browseModel) Init() tea.Cmd {
	return m.compute()
}

// options builds pipeline options for the current view.
func (m browseModel) options() pipeline.Options {
	return pipeline.Options{
		Min:      m.window.Min,
		Max:      m.window.Max,
		Mode:     string(m.mode),
		Biozones: m.activeBiozones(),
		Columns:  m.base.Columns,
		Title:    m.base.Title,
	}
}

func (m browseModel) compute() tea.Cmd {
	opts := m.options()
	return func() tea.Msg {
		c, err := m.runner.Layout(m.ctx, opts)
		return chartMsg{chart: c, err: err}
	}
}

func (m browseModel) writeSVG() tea.Cmd {
	opts := m.options()
	opts.Formats = []string{pipeline.FormatSVG}
	return func() tea.Msg {
		res, err := m.runner.Execute(m.ctx, opts)
		if err != nil {
			return statusMsg("write failed: " + err.Error())
		}
		path := defaultBase(res) + ".svg"
		if err := os.WriteFile(path, res.Artifacts[pipeline.FormatSVG], 0o644); err != nil {
			return statusMsg("write failed: " + err.Error())
		}
		return statusMsg("wrote " + path)
	}
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case chartMsg:
		m.chart, m.err = msg.chart, msg.err
		if m.column >= len(m.chart.Columns) {
			m.column = 0
		}
		m.offset = 0
		return m, nil
	case statusMsg:
		m.status = string(msg)
		return m, nil
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-18, 5)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m browseModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "right", "l", "n":
		m.preset = (m.preset + 1) % len(interval.Presets)
		m.window = interval.Presets[m.preset].Window
		return m, m.compute()
	case "left", "h", "p":
		if m.preset <= 0 {
			m.preset = len(interval.Presets)
		}
		m.preset--
		m.window = interval.Presets[m.preset].Window
		return m, m.compute()
	case "m":
		m.mode = m.mode.Next()
		return m, m.compute()
	case "b":
		m.cycleBiozones()
		return m, m.compute()
	case "tab":
		if n := len(m.chart.Columns); n > 0 {
			m.column = (m.column + 1) % n
			m.offset = 0
		}
	case "shift+tab":
		if n := len(m.chart.Columns); n > 0 {
			m.column = (m.column + n - 1) % n
			m.offset = 0
		}
	case "down", "j":
		if m.offset+m.height < len(m.selected().Boxes) {
			m.offset++
		}
	case "up", "k":
		if m.offset > 0 {
			m.offset--
		}
	case "w":
		m.status = "writing..."
		return m, m.writeSVG()
	}
	return m, nil
}

// cycleBiozones steps through: none, each biozone alone, all biozones.
func (m *browseModel) cycleBiozones() {
	if len(m.biozones) == 0 {
		return
	}
	active := m.activeBiozones()
	clear(m.active)
	switch {
	case len(active) == 0:
		m.active[m.biozones[0]] = true
	case len(active) == 1:
		i := slices.Index(m.biozones, active[0])
		if i+1 < len(m.biozones) {
			m.active[m.biozones[i+1]] = true
		} else if len(m.biozones) > 1 {
			for _, k := range m.biozones {
				m.active[k] = true
			}
		}
	}
}

// activeBiozones returns the shown biozones in availability order.
func (m browseModel) activeBiozones() []string {
	var out []string
	for _, k := range m.biozones {
		if m.active[k] {
			out = append(out, k)
		}
	}
	return out
}

func (m browseModel) presetName() string {
	if m.preset < 0 {
		return ""
	}
	return interval.Presets[m.preset].Name
}

func (m browseModel) selected() layout.ColumnLayout {
	if m.column < len(m.chart.Columns) {
		return m.chart.Columns[m.column]
	}
	return layout.ColumnLayout{}
}

func (m browseModel) View() string {
	var b strings.Builder

	title := fmt.Sprintf("%g-%g Ma", m.window.Min, m.window.Max)
	if m.preset >= 0 {
		title = interval.Presets[m.preset].Label
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→ window  m mode  b biozones  tab column  ↑/↓ scroll  w write svg  q quit"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(styleIconError.Render(iconError) + " " + m.err.Error() + "\n")
		return b.String()
	}

	mode := string(m.chart.Mode)
	if m.chart.Requested != m.chart.Mode {
		mode += StyleWarning.Render(fmt.Sprintf(" (requested %s: no anchors)", m.chart.Requested))
	}
	b.WriteString(fmt.Sprintf("%s %s   %s %.0f px   %s %d\n\n",
		StyleDim.Render("scale"), StyleValue.Render(mode),
		StyleDim.Render("extent"), m.chart.TotalExtent,
		StyleDim.Render("boxes"), m.chart.BoxCount()))

	b.WriteString(m.columnsView())
	b.WriteString("\n")
	b.WriteString(m.boxesView())

	if m.status != "" {
		b.WriteString("\n" + listDimStyle.Render(m.status))
	}
	return b.String()
}

func (m browseModel) columnsView() string {
	var parts []string
	for i, col := range m.chart.Columns {
		label := fmt.Sprintf("%s (%d)", col.Spec.Label, len(col.Boxes))
		if col.Spec.Kind == layout.KindTime && col.Axis != nil {
			label = fmt.Sprintf("%s (%d ticks)", col.Spec.Label, len(col.Axis.Ticks))
		}
		if i == m.column {
			parts = append(parts, listSelectedStyle.Render("▸ "+label))
		} else {
			parts = append(parts, listDimStyle.Render("  "+label))
		}
	}
	return strings.Join(parts, "\n") + "\n"
}

func (m browseModel) boxesView() string {
	col := m.selected()
	if col.Axis != nil {
		rows := make([][]string, 0, len(col.Axis.Ticks))
		for _, t := range col.Axis.Ticks {
			rows = append(rows, []string{t.Label, fmt.Sprintf("%.1f", t.Y)})
		}
		end := min(m.offset+m.height, len(rows))
		return newTable([]string{"Tick", "Y"}, rows[m.offset:end]).Render()
	}
	if len(col.Boxes) == 0 {
		return listDimStyle.Render("  no intervals in this window") + "\n"
	}

	end := min(m.offset+m.height, len(col.Boxes))
	rows := make([][]string, 0, end-m.offset)
	for _, box := range col.Boxes[m.offset:end] {
		rows = append(rows, []string{
			box.DisplayLabel(),
			fmt.Sprintf("%.2f-%.2f", box.Tooltip.Young, box.Tooltip.Old),
			fmt.Sprintf("%.1f", box.Top),
			fmt.Sprintf("%.1f", box.Height),
			swatch(box.Fill),
		})
	}
	t := newTable([]string{"Interval", "Ma", "Top", "Height", "Fill"}, rows)
	footer := listDimStyle.Render(fmt.Sprintf("  [%d-%d/%d]", m.offset+1, end, len(col.Boxes)))
	return t.Render() + "\n" + footer
}
