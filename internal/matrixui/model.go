// Package matrixui provides the Bubble Tea matrix browser and styled table output.
package matrixui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tally/internal/matrix"
	"github.com/verte-zerg/tally/internal/textfmt"
)

const (
	maxInitialHeight = 20
	minColumnWidth   = 3
	chromeLines      = 3
)

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// Model implements the Bubble Tea matrix browser.
type Model struct {
	title string
	rows  int
	cols  int
	table table.Model

	width  int
	height int
}

// NewModel builds a browser over v. title is shown above the table.
func NewModel(title string, v matrix.View) *Model {
	rows, cols := v.Dims()
	columns, tableRows := buildTableData(v)
	t := table.New(
		table.WithColumns(columns),
		table.WithRows(tableRows),
		table.WithHeight(minInt(rows, maxInitialHeight)+1),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles())
	return &Model{title: title, rows: rows, cols: cols, table: t}
}

// Run starts the browser in the alternate screen and blocks until it quits.
func Run(title string, v matrix.View) error {
	program := tea.NewProgram(NewModel(title, v), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run matrix viewer: %w", err)
	}
	return nil
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(maxInt(1, msg.Height-chromeLines))
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc || msg.String() == "q" {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m *Model) View() string {
	header := titleStyle.Render(m.title) + headerStyle.Render(fmt.Sprintf("  %d×%d", m.rows, m.cols))
	return header + "\n" + m.table.View() + "\n" + m.renderFooter()
}

// Cursor returns the highlighted row index.
func (m *Model) Cursor() int {
	return m.table.Cursor()
}

func (m *Model) renderFooter() string {
	return footerStyle.Render(fmt.Sprintf("Row %d/%d · ↑/↓ move · q quit", m.table.Cursor()+1, m.rows))
}

func buildTableData(v matrix.View) ([]table.Column, []table.Row) {
	rows, cols := v.Dims()
	cells := make([][]string, rows)
	widths := make([]int, cols+1)
	widths[0] = maxInt(minColumnWidth, len(strconv.Itoa(rows-1)))
	for j := 0; j < cols; j++ {
		widths[j+1] = maxInt(minColumnWidth, len(strconv.Itoa(j)))
	}
	for i := 0; i < rows; i++ {
		row := make([]string, cols+1)
		row[0] = strconv.Itoa(i)
		for j := 0; j < cols; j++ {
			cell := matrix.FormatValue(v.At(i, j))
			row[j+1] = cell
			if w := textfmt.Width(cell); w > widths[j+1] {
				widths[j+1] = w
			}
		}
		cells[i] = row
	}

	columns := make([]table.Column, cols+1)
	columns[0] = table.Column{Title: "#", Width: widths[0]}
	for j := 0; j < cols; j++ {
		columns[j+1] = table.Column{Title: strconv.Itoa(j), Width: widths[j+1]}
	}
	tableRows := make([]table.Row, rows)
	for i, row := range cells {
		for j := 1; j < len(row); j++ {
			row[j] = textfmt.Column{Width: widths[j], Align: textfmt.Right}.Pad(row[j])
		}
		tableRows[i] = table.Row(row)
	}
	return columns, tableRows
}

func tableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
