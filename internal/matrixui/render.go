package matrixui

import (
	"github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"

	"github.com/verte-zerg/tally/internal/matrix"
)

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#4A4A4A"))
	cellStyle   = lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)
)

// RenderTable draws v as a bordered, right-aligned table for terminal output.
func RenderTable(v matrix.View) string {
	rows, cols := v.Dims()
	data := make([][]string, rows)
	for i := 0; i < rows; i++ {
		row := make([]string, cols)
		for j := 0; j < cols; j++ {
			row[j] = matrix.FormatValue(v.At(i, j))
		}
		data[i] = row
	}
	t := lgtable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(_, _ int) lipgloss.Style { return cellStyle }).
		Rows(data...)
	return t.Render()
}
