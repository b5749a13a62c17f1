package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/trimworks/flashing/pkg/core/metrics"
	"github.com/trimworks/flashing/pkg/pipeline"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// DiagramListModel - Interactive diagram selection
// =============================================================================

// DiagramListModel is the bubbletea model for picking diagrams of an order.
// Space toggles a diagram; enter confirms the marked ones, or the one under
// the cursor when nothing is marked.
type DiagramListModel struct {
	Rows      []metrics.Row
	Cursor    int
	Marked    map[int]bool
	Selected  []int
	Height    int
	Offset    int
	Cancelled bool
}

// NewDiagramListModel creates a new diagram list model.
func NewDiagramListModel(rows []metrics.Row) DiagramListModel {
	return DiagramListModel{
		Rows:   rows,
		Marked: map[int]bool{},
		Height: 15,
	}
}

func (m DiagramListModel) Init() tea.Cmd {
	return nil
}

func (m DiagramListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.Cancelled = true
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Rows)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ":
			if len(m.Rows) > 0 {
				idx := m.Rows[m.Cursor].Index
				m.Marked[idx] = !m.Marked[idx]
			}
		case "a":
			for _, r := range m.Rows {
				m.Marked[r.Index] = true
			}
		case "enter":
			if len(m.Rows) == 0 {
				return m, nil
			}
			m.Selected = nil
			for _, r := range m.Rows {
				if m.Marked[r.Index] {
					m.Selected = append(m.Selected, r.Index)
				}
			}
			if len(m.Selected) == 0 {
				m.Selected = []int{m.Rows[m.Cursor].Index}
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DiagramListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Diagrams"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space mark  a all  ⏎ render  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Rows))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		r := m.Rows[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := " "
		if m.Marked[r.Index] {
			mark = "●"
		}
		rows = append(rows, []string{cursor + mark, strconv.Itoa(r.Index), r.Name, r.Code, strconv.Itoa(r.Folds), r.GirthText})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Name", "Code", "Folds", "Girth").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(m.Rows) {
				return lipgloss.NewStyle()
			}
			r := m.Rows[idx]
			switch {
			case idx == m.Cursor && r.Invalid:
				return listDimStyle.Bold(true)
			case idx == m.Cursor:
				return listSelectedStyle
			case r.Invalid:
				return listDimStyle
			case m.Marked[r.Index]:
				return lipgloss.NewStyle().Foreground(colorGreen)
			}
			return listNormalStyle
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Rows))))

	return b.String()
}

// =============================================================================
// OrderListModel - Interactive order selection
// =============================================================================

// OrderListModel is the bubbletea model for picking an order from a store.
type OrderListModel struct {
	Orders   []string
	Cursor   int
	Selected string
}

// NewOrderListModel creates a new order list model.
func NewOrderListModel(orders []string) OrderListModel {
	return OrderListModel{Orders: orders}
}

func (m OrderListModel) Init() tea.Cmd {
	return nil
}

func (m OrderListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Orders)-1 {
				m.Cursor++
			}
		case "enter":
			if len(m.Orders) > 0 {
				m.Selected = m.Orders[m.Cursor]
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m OrderListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Order"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("arrows: navigate  enter: select  q: quit"))
	b.WriteString("\n\n")

	for i, id := range m.Orders {
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("> " + id))
		} else {
			b.WriteString(listNormalStyle.Render("  " + id))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// =============================================================================
// browse command
// =============================================================================

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "browse [order.json]",
		Short: "Pick diagrams interactively and render them",
		Long: `Show the diagrams of an order in a list and render the chosen ones.

Without a file or --order, the orders of --store are listed first.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if len(args) == 0 && opts.input.order == "" {
				id, err := c.pickOrder(ctx, opts.input.store)
				if err != nil || id == "" {
					return err
				}
				opts.input.order = id
			}

			set, base, err := c.load(ctx, opts.input, args)
			if err != nil {
				return err
			}
			summary := metrics.Summarize(set, c.cfg.Policies.QuantityFormat)

			final, err := tea.NewProgram(NewDiagramListModel(summary.Rows), tea.WithContext(ctx)).Run()
			if err != nil {
				return err
			}
			m := final.(DiagramListModel)
			if m.Cancelled || len(m.Selected) == 0 {
				printInfo("Nothing rendered")
				return nil
			}

			opts.diagrams = m.Selected
			if err := c.runRender(ctx, set, base, opts); err != nil {
				return err
			}
			printNextStep("Print the order table", "flashing summary "+describeInput(opts.input, args))
			return nil
		},
	}

	opts.input.register(cmd)
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatSVG, "output formats: svg, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory")
	cmd.Flags().BoolVar(&opts.embedFont, "embed-font", false, "embed the label font in SVG output")
	opts.pngScale = pipeline.DefaultPNGScale
	return cmd
}

// pickOrder lists the orders of a store and lets the user choose one.
func (c *CLI) pickOrder(ctx context.Context, storeSpec string) (string, error) {
	st, err := openStore(ctx, storeSpec)
	if err != nil {
		return "", err
	}
	defer st.Close(context.WithoutCancel(ctx))

	ids, err := st.List(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		printWarning("no orders in %s", storeSpec)
		return "", nil
	}
	final, err := tea.NewProgram(NewOrderListModel(ids), tea.WithContext(ctx)).Run()
	if err != nil {
		return "", err
	}
	return final.(OrderListModel).Selected, nil
}

func describeInput(f inputFlags, args []string) string {
	if len(args) == 1 {
		return filepath.Clean(args[0])
	}
	return fmt.Sprintf("--order %s --store %s", f.order, f.store)
}
