package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/xui-kit/xui/pkg/breakpoint"
	"github.com/xui-kit/xui/pkg/errors"
	"github.com/xui-kit/xui/pkg/manifest"
	"github.com/xui-kit/xui/pkg/style"
	"github.com/xui-kit/xui/pkg/viewport"
)

// previewCommand starts an interactive preview in which the terminal plays
// the browser viewport.
func (c *CLI) previewCommand() *cobra.Command {
	colWidth := defaultColumnWidth

	cmd := &cobra.Command{
		Use:   "preview <manifest>",
		Short: "Preview breakpoint resolution interactively",
		Long: `Preview a manifest interactively. The terminal width, multiplied by
--column-width, is used as the viewport width; resize the terminal or use
the arrow keys to move across breakpoints.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeManifests,
		RunE: func(cmd *cobra.Command, args []string) error {
			if colWidth < 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--column-width must be positive, got %d", colWidth)
			}
			m, err := manifest.Load(args[0])
			if err != nil {
				return err
			}
			model, err := newPreviewModel(m, colWidth)
			if err != nil {
				return err
			}
			defer model.Close()

			p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&colWidth, "column-width", colWidth, "viewport pixels per terminal column")
	return cmd
}

// =============================================================================
// previewModel
// =============================================================================

// widthStep is the viewport change per arrow key press, in pixels.
const widthStep = 32

// previewModel is the bubbletea model of the preview command.
//
// Until the first window size message the viewport is detached, as on a
// server, so the tracker reports base and every rule set is parked. The
// first size message attaches the viewport and hydrates the registry.
type previewModel struct {
	manifest *manifest.Manifest
	table    *breakpoint.Table
	registry *style.Registry
	sink     *style.HydratingSink
	sheet    *style.Stylesheet
	vp       *viewport.Simulated
	sub      *viewport.Subscription
	applied  []manifest.Applied

	colWidth int
	term     int             // terminal width in pixels
	offset   int             // manual adjustment on top of term
	width    int             // simulated viewport width in pixels
	current  breakpoint.Name // last breakpoint delivered by the tracker
	changes  int
	hydrated int
}

func newPreviewModel(m *manifest.Manifest, colWidth int) (*previewModel, error) {
	sink := style.NewHydratingSink()
	reg, err := m.Registry(sink)
	if err != nil {
		return nil, err
	}

	pm := &previewModel{
		manifest: m,
		table:    reg.Table(),
		registry: reg,
		sink:     sink,
		sheet:    style.NewStylesheet(),
		vp:       viewport.NewDetached(),
		colWidth: colWidth,
	}
	pm.applied = m.Apply(reg)

	tracker := viewport.New(pm.table, pm.vp)
	pm.sub = tracker.Subscribe(func(bp breakpoint.Name) {
		if pm.current != "" {
			pm.changes++
		}
		pm.current = bp
	})
	return pm, nil
}

// Close releases the tracker subscription.
func (m *previewModel) Close() { m.sub.Close() }

func (m *previewModel) Init() tea.Cmd { return nil }

func (m *previewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.offset -= widthStep
		case "right", "l":
			m.offset += widthStep
		case "0":
			m.offset = 0
		default:
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.term = msg.Width * m.colWidth
	default:
		return m, nil
	}
	m.resize(m.term + m.offset)
	return m, nil
}

// resize moves the simulated viewport, attaching it and hydrating the
// registry on first use.
func (m *previewModel) resize(width int) {
	width = max(width, 0)
	if _, live := m.vp.Width(); !live {
		m.vp.Attach(width)
		m.sink.Attach(m.sheet)
		m.hydrated = m.registry.Hydrate()
	} else {
		m.vp.Resize(width)
	}
	m.width = width
}

func (m *previewModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("xui preview"))
	b.WriteString("  ")
	b.WriteString(StyleDim.Render(m.manifest.Path))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n\n",
		StyleDim.Render("viewport"), StyleNumber.Render(strconv.Itoa(m.width)+"px"),
		StyleDim.Render("breakpoint"), StyleHighlight.Render(string(m.current)),
		StyleDim.Render("changes"), StyleNumber.Render(strconv.Itoa(m.changes)),
	))

	idx, _ := m.table.Index(m.current)
	rows := make([][]string, 0, m.table.Len())
	for _, p := range m.table.Points() {
		rows = append(rows, []string{string(p.Name), strconv.Itoa(p.MinWidth)})
	}
	b.WriteString(renderTable([]string{"Breakpoint", "Min width"}, rows, idx))
	b.WriteString("\n\n")

	resolved := m.manifest.ResolveAt(m.table, m.width)
	rows = make([][]string, 0, len(resolved))
	for i, r := range resolved {
		value := "(unset)"
		if r.OK {
			value = r.Value
		}
		rows = append(rows, []string{r.Name, m.applied[i].Class, r.Property, value})
	}
	b.WriteString(renderTable([]string{"Name", "Class", "Property", "Value"}, rows, -1))
	b.WriteString("\n\n")

	b.WriteString(StyleDim.Render(fmt.Sprintf("%s in sheet, %d hydrated", pluralize(m.sheet.Len(), "rule"), m.hydrated)))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("←/→ adjust width  0 reset  q quit"))
	return b.String()
}
