package counter

import (
	"strconv"

	"github.com/verte-zerg/tally/internal/model"
	"github.com/verte-zerg/tally/internal/textfmt"
)

// FormatTable right-justifies the three counts of every row to width and
// appends the row label.
func FormatTable(rows []model.SourceCounts, width int) []string {
	count := textfmt.Column{Width: width, Align: textfmt.Right}
	layout := textfmt.Layout{count, count, count, {Align: textfmt.Left}}
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		cells := []string{
			strconv.Itoa(row.Lines),
			strconv.Itoa(row.Words),
			strconv.Itoa(row.Bytes),
			row.Label,
		}
		lines = append(lines, layout.Line(cells))
	}
	return lines
}

// Width is the digit count of the largest total, used to pad every row.
func Width(total model.Counts) int {
	return len(strconv.Itoa(total.Max()))
}
