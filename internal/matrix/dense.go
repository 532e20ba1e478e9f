package matrix

import (
	"strconv"
	"strings"
)

const (
	opNew    = "New"
	opSet    = "SetGrid"
	opAdd    = "Add"
	opMul    = "Mul"
	opMatMul = "MatMul"
	opSub    = "Sub"
	opDiv    = "Div"
)

// View is the read-only surface shared by every variant.
type View interface {
	// Dims returns the number of rows and columns.
	Dims() (rows, cols int)
	// At returns the element at row i, column j. It panics when out of range,
	// like slice indexing.
	At(i, j int) float64
}

// dense is the storage every variant embeds: a row-major grid plus its shape.
type dense struct {
	rows, cols int
	data       [][]float64
}

// newDense validates grid and takes a deep copy of it.
func newDense(grid [][]float64) (dense, error) {
	if err := validateGrid(grid); err != nil {
		return dense{}, err
	}
	return dense{rows: len(grid), cols: len(grid[0]), data: copyGrid(grid)}, nil
}

// wrapDense adopts a freshly computed grid without copying it.
func wrapDense(grid [][]float64) dense {
	return dense{rows: len(grid), cols: len(grid[0]), data: grid}
}

// Dims returns the number of rows and columns.
func (d dense) Dims() (rows, cols int) {
	return d.rows, d.cols
}

// Rows returns the number of rows.
func (d dense) Rows() int {
	return d.rows
}

// Cols returns the number of columns.
func (d dense) Cols() int {
	return d.cols
}

// At returns the element at row i, column j.
func (d dense) At(i, j int) float64 {
	return d.data[i][j]
}

func validateGrid(grid [][]float64) error {
	if len(grid) == 0 || len(grid[0]) == 0 {
		return ErrEmpty
	}
	cols := len(grid[0])
	for _, row := range grid[1:] {
		if len(row) != cols {
			return ErrRagged
		}
	}
	return nil
}

func copyGrid(grid [][]float64) [][]float64 {
	out := make([][]float64, len(grid))
	for i, row := range grid {
		out[i] = append([]float64(nil), row...)
	}
	return out
}

func newGrid(rows, cols int) [][]float64 {
	backing := make([]float64, rows*cols)
	grid := make([][]float64, rows)
	for i := range grid {
		grid[i] = backing[i*cols : (i+1)*cols : (i+1)*cols]
	}
	return grid
}

// isNil reports a nil interface or a nil pointer to one of the variants.
func isNil(v View) bool {
	switch m := v.(type) {
	case nil:
		return true
	case *Matrix:
		return m == nil
	case *Arithmetic:
		return m == nil
	case *Functional:
		return m == nil
	case *FunctionalArithmetic:
		return m == nil
	}
	return false
}

// elementwise applies fn cell by cell to two operands of identical shape.
func elementwise(tag string, a, b View, fn func(x, y float64) float64) ([][]float64, error) {
	if isNil(a) || isNil(b) {
		return nil, matrixErrorf(tag, ErrNilMatrix)
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return nil, shapeErrorf(tag, ErrDimensionMismatch, ar, ac, br, bc)
	}
	out := newGrid(ar, ac)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			out[i][j] = fn(a.At(i, j), b.At(i, j))
		}
	}
	return out, nil
}

func add(a, b View) ([][]float64, error) {
	return elementwise(opAdd, a, b, func(x, y float64) float64 { return x + y })
}

func hadamard(a, b View) ([][]float64, error) {
	return elementwise(opMul, a, b, func(x, y float64) float64 { return x * y })
}

func sub(a, b View) ([][]float64, error) {
	return elementwise(opSub, a, b, func(x, y float64) float64 { return x - y })
}

func div(a, b View) ([][]float64, error) {
	return elementwise(opDiv, a, b, func(x, y float64) float64 { return x / y })
}

// matmul computes the standard product with an i→j→k loop; each cell sums
// left to right over k.
func matmul(a, b View) ([][]float64, error) {
	if isNil(a) || isNil(b) {
		return nil, matrixErrorf(opMatMul, ErrNilMatrix)
	}
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ac != br {
		return nil, shapeErrorf(opMatMul, ErrInnerDimensionMismatch, ar, ac, br, bc)
	}
	out := newGrid(ar, bc)
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var sum float64
			for k := 0; k < ac; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out[i][j] = sum
		}
	}
	return out, nil
}

// render joins cells with tabs and rows with newlines, without a trailing newline.
func render(v View) string {
	rows, cols := v.Dims()
	var b strings.Builder
	for i := 0; i < rows; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j := 0; j < cols; j++ {
			if j > 0 {
				b.WriteByte('\t')
			}
			b.WriteString(FormatValue(v.At(i, j)))
		}
	}
	return b.String()
}

// FormatValue renders a cell in its shortest exact form: 1, 2.5, +Inf, NaN.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// ToGrid returns a deep copy of any view's cells.
func ToGrid(v View) [][]float64 {
	rows, cols := v.Dims()
	out := newGrid(rows, cols)
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			out[i][j] = v.At(i, j)
		}
	}
	return out
}

// Equal reports whether a and b have the same shape and identical cells.
// NaN cells never compare equal.
func Equal(a, b View) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if a.At(i, j) != b.At(i, j) {
				return false
			}
		}
	}
	return true
}

// IdentityGrid returns the n×n identity grid, or nil when n < 1.
func IdentityGrid(n int) [][]float64 {
	if n < 1 {
		return nil
	}
	grid := newGrid(n, n)
	for i := 0; i < n; i++ {
		grid[i][i] = 1
	}
	return grid
}
