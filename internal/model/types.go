// Package model defines shared data structures.
package model

import "time"

// Counts holds line, word, and byte (or character) totals for one source.
type Counts struct {
	Lines int
	Words int
	Bytes int
}

// Add returns the element-wise sum of c and other.
func (c Counts) Add(other Counts) Counts {
	return Counts{
		Lines: c.Lines + other.Lines,
		Words: c.Words + other.Words,
		Bytes: c.Bytes + other.Bytes,
	}
}

// Max returns the largest of the three counts.
func (c Counts) Max() int {
	m := c.Lines
	if c.Words > m {
		m = c.Words
	}
	if c.Bytes > m {
		m = c.Bytes
	}
	return m
}

// SourceCounts pairs counts with the label they are printed under.
type SourceCounts struct {
	Label string
	Counts
}

// Run captures one counter invocation for the history store.
type Run struct {
	StartedAt time.Time
	Mode      string
	Unit      string
	Sources   []SourceCounts
	Total     Counts
}

// RunSummary is a stored run without its per-source rows.
type RunSummary struct {
	RunID     int64
	StartedAt time.Time
	Mode      string
	Unit      string
	Sources   int
	Total     Counts
}
