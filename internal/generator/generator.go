// Package generator builds random matrix grids.
package generator

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Options shapes a generated grid.
type Options struct {
	Rows    int
	Cols    int
	Min     float64
	Max     float64
	Integer bool
	ZeroPct float64
}

// Generator produces randomized grids.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Generator whose output is fixed by seed.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Validate checks that opts describes a non-empty grid and a usable range.
func (o Options) Validate() error {
	if o.Rows <= 0 || o.Cols <= 0 {
		return fmt.Errorf("rows and cols must be > 0 (got %dx%d)", o.Rows, o.Cols)
	}
	if math.IsNaN(o.Min) || math.IsNaN(o.Max) || math.IsInf(o.Min, 0) || math.IsInf(o.Max, 0) {
		return fmt.Errorf("min and max must be finite")
	}
	if o.Min > o.Max {
		return fmt.Errorf("min (%g) must not exceed max (%g)", o.Min, o.Max)
	}
	if o.Integer {
		lo, hi := math.Ceil(o.Min), math.Floor(o.Max)
		if hi < lo {
			return fmt.Errorf("no integer between %g and %g", o.Min, o.Max)
		}
		// cell draws from hi-lo+1 values with Int63n.
		if hi-lo >= math.MaxInt64 {
			return fmt.Errorf("integer range %g to %g is too wide", o.Min, o.Max)
		}
	}
	if o.ZeroPct < 0 || o.ZeroPct > 1 {
		return fmt.Errorf("zero probability must be between 0 and 1")
	}
	return nil
}

// Grid fills a Rows×Cols grid with values drawn uniformly from [Min, Max).
// Integer grids draw from the whole numbers in [Min, Max]. Each cell is
// zeroed with probability ZeroPct.
func (g *Generator) Grid(opts Options) ([][]float64, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	grid := make([][]float64, opts.Rows)
	for i := range grid {
		row := make([]float64, opts.Cols)
		for j := range row {
			row[j] = g.cell(opts)
		}
		grid[i] = row
	}
	return grid, nil
}

func (g *Generator) cell(opts Options) float64 {
	if opts.ZeroPct > 0 && g.rnd.Float64() < opts.ZeroPct {
		return 0
	}
	if opts.Integer {
		lo := math.Ceil(opts.Min)
		hi := math.Floor(opts.Max)
		return lo + float64(g.rnd.Int63n(int64(hi-lo)+1))
	}
	return opts.Min + g.rnd.Float64()*(opts.Max-opts.Min)
}
