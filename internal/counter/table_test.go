package counter

import (
	"os"
	"testing"

	"github.com/verte-zerg/tally/internal/model"
)

func TestFormatTablePadsToTotalWidth(t *testing.T) {
	a := model.Counts{Lines: 3, Words: 10, Bytes: 50}
	b := model.Counts{Lines: 2, Words: 5, Bytes: 20}
	total := a.Add(b)
	if total != (model.Counts{Lines: 5, Words: 15, Bytes: 70}) {
		t.Fatalf("unexpected total: %+v", total)
	}
	width := Width(total)
	if width != 2 {
		t.Fatalf("expected width 2, got %d", width)
	}

	lines := FormatTable([]model.SourceCounts{
		{Label: "a.txt", Counts: a},
		{Label: "b.txt", Counts: b},
		{Label: TotalLabel, Counts: total},
	}, width)
	want := []string{
		" 3 10 50 a.txt",
		" 2  5 20 b.txt",
		" 5 15 70 total",
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestFormatTableWidthFromTotalOnly(t *testing.T) {
	lines := FormatTable([]model.SourceCounts{
		{Label: "x", Counts: model.Counts{Lines: 1, Words: 1, Bytes: 1}},
	}, 4)
	if lines[0] != "   1    1    1 x" {
		t.Fatalf("unexpected padded row: %q", lines[0])
	}
}

func mkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
