// Package counter counts lines, words, and characters the way wc does.
package counter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"

	"github.com/verte-zerg/tally/internal/logger"
	"github.com/verte-zerg/tally/internal/model"
)

// Unit selects what the third count measures.
type Unit int

const (
	// UnitChars counts characters (runes), including line terminators.
	UnitChars Unit = iota
	// UnitBytes counts encoded bytes.
	UnitBytes
)

// ErrUnknownUnit is returned by ParseUnit for unsupported unit names.
var ErrUnknownUnit = errors.New("counter: unknown unit")

// ParseUnit maps "chars" or "bytes" to a Unit.
func ParseUnit(value string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "chars", "characters", "symbols":
		return UnitChars, nil
	case "bytes":
		return UnitBytes, nil
	default:
		return UnitChars, fmt.Errorf("%w: %q", ErrUnknownUnit, value)
	}
}

func (u Unit) String() string {
	if u == UnitBytes {
		return "bytes"
	}
	return "chars"
}

// Mode describes which output layout a run used.
type Mode string

const (
	ModeStdin  Mode = "stdin"
	ModeSingle Mode = "single"
	ModeMulti  Mode = "multi"
)

// TotalLabel labels the summary row printed for several sources.
const TotalLabel = "total"

// Options configures a Counter.
type Options struct {
	Unit     Unit
	Encoding string
	Glob     bool
}

// Counter reads sources and prints their counts.
type Counter struct {
	unit    Unit
	decoder encoding.Encoding
	glob    bool
	log     *slog.Logger
}

// Result is what a Run computed, in print order.
type Result struct {
	Mode    Mode
	Sources []model.SourceCounts
	Total   model.Counts
}

// New builds a Counter, resolving the configured source encoding.
func New(opts Options) (*Counter, error) {
	enc, err := LookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}
	return &Counter{
		unit:    opts.Unit,
		decoder: enc,
		glob:    opts.Glob,
		log:     logger.ForComponent("counter"),
	}, nil
}

// Compute counts lines, whitespace-delimited words, and characters.
func Compute(lines []string) model.Counts {
	return computeUnit(lines, UnitChars)
}

// Compute counts lines using the Counter's unit for the third column.
func (c *Counter) Compute(lines []string) model.Counts {
	return computeUnit(lines, c.unit)
}

func computeUnit(lines []string, unit Unit) model.Counts {
	var counts model.Counts
	for _, line := range lines {
		counts.Lines++
		counts.Words += len(strings.Fields(line))
		if unit == UnitBytes {
			counts.Bytes += len(line)
		} else {
			counts.Bytes += utf8.RuneCountInString(line)
		}
	}
	return counts
}

// Run counts stdin when paths is empty, otherwise every path, and writes the
// report to w. Every source is read before anything is written, so a failing
// path leaves w untouched.
func (c *Counter) Run(w io.Writer, stdin io.Reader, paths []string) (Result, error) {
	if c.glob && len(paths) > 0 {
		expanded, err := ExpandPaths(paths)
		if err != nil {
			return Result{}, err
		}
		if len(expanded) != len(paths) {
			c.log.Debug("expanded glob patterns", "patterns", len(paths), "paths", len(expanded))
		}
		paths = expanded
	}

	switch len(paths) {
	case 0:
		return c.runStdin(w, stdin)
	case 1:
		return c.runSingle(w, paths[0])
	default:
		return c.runMulti(w, paths)
	}
}

func (c *Counter) runStdin(w io.Writer, stdin io.Reader) (Result, error) {
	lines, err := c.readLines(stdin)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read stdin: %w", err)
	}
	counts := c.Compute(lines)
	if _, err := fmt.Fprintf(w, "\t%d\t%d\t%d\n", counts.Lines, counts.Words, counts.Bytes); err != nil {
		return Result{}, err
	}
	return Result{
		Mode:    ModeStdin,
		Sources: []model.SourceCounts{{Label: "-", Counts: counts}},
		Total:   counts,
	}, nil
}

func (c *Counter) runSingle(w io.Writer, path string) (Result, error) {
	lines, err := c.ReadSource(path)
	if err != nil {
		return Result{}, err
	}
	counts := c.Compute(lines)
	if _, err := fmt.Fprintf(w, "%d %d %d %s\n", counts.Lines, counts.Words, counts.Bytes, path); err != nil {
		return Result{}, err
	}
	return Result{
		Mode:    ModeSingle,
		Sources: []model.SourceCounts{{Label: path, Counts: counts}},
		Total:   counts,
	}, nil
}

func (c *Counter) runMulti(w io.Writer, paths []string) (Result, error) {
	sources := make([]model.SourceCounts, 0, len(paths))
	var total model.Counts
	for _, path := range paths {
		lines, err := c.ReadSource(path)
		if err != nil {
			return Result{}, err
		}
		counts := c.Compute(lines)
		total = total.Add(counts)
		sources = append(sources, model.SourceCounts{Label: path, Counts: counts})
	}

	rows := make([]model.SourceCounts, 0, len(sources)+1)
	rows = append(rows, sources...)
	rows = append(rows, model.SourceCounts{Label: TotalLabel, Counts: total})
	for _, line := range FormatTable(rows, Width(total)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return Result{}, err
		}
	}
	return Result{Mode: ModeMulti, Sources: sources, Total: total}, nil
}
