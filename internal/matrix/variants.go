package matrix

import "github.com/verte-zerg/tally/internal/fileio"

// Capability sets. Each variant implements exactly the interfaces listed in
// the package documentation, with T bound to the variant itself.
type (
	// Adder sums element-wise.
	Adder[T View] interface {
		Add(other View) (T, error)
	}
	// Multiplier multiplies element-wise.
	Multiplier[T View] interface {
		Mul(other View) (T, error)
	}
	// MatMuler computes the matrix product.
	MatMuler[T View] interface {
		MatMul(other View) (T, error)
	}
	// Subtracter subtracts element-wise.
	Subtracter[T View] interface {
		Sub(other View) (T, error)
	}
	// Divider divides element-wise.
	Divider[T View] interface {
		Div(other View) (T, error)
	}
	// FileWriter exports the tab-delimited rendering.
	FileWriter interface {
		WriteToFile(path string) error
	}
	// GridAccessor reads and replaces the whole grid.
	GridAccessor interface {
		Grid() [][]float64
		SetGrid(grid [][]float64) error
	}
)

// Core is the capability set every variant shares.
type Core[T View] interface {
	View
	Adder[T]
	Multiplier[T]
	MatMuler[T]
}

// binary runs a kernel and wraps the fresh grid with the caller's constructor.
func binary[T any](kernel func(a, b View) ([][]float64, error), a, b View, wrap func(dense) T) (T, error) {
	grid, err := kernel(a, b)
	if err != nil {
		var zero T
		return zero, err
	}
	return wrap(wrapDense(grid)), nil
}

func writeToFile(v View, path string) error {
	if err := fileio.WriteText(path, render(v)); err != nil {
		return matrixErrorf("WriteToFile", err)
	}
	return nil
}

// ---------- Matrix ----------

// Matrix supports element-wise addition and multiplication and the matrix product.
type Matrix struct {
	dense
}

// New validates and copies grid into a Matrix.
func New(grid [][]float64) (*Matrix, error) {
	d, err := newDense(grid)
	if err != nil {
		return nil, matrixErrorf(opNew, err)
	}
	return &Matrix{dense: d}, nil
}

func wrapMatrix(d dense) *Matrix { return &Matrix{dense: d} }

// Add returns m + other.
func (m *Matrix) Add(other View) (*Matrix, error) { return binary(add, m, other, wrapMatrix) }

// Mul returns the element-wise product of m and other.
func (m *Matrix) Mul(other View) (*Matrix, error) { return binary(hadamard, m, other, wrapMatrix) }

// MatMul returns the matrix product m × other.
func (m *Matrix) MatMul(other View) (*Matrix, error) { return binary(matmul, m, other, wrapMatrix) }

// ---------- Arithmetic ----------

// Arithmetic adds element-wise subtraction and division to Matrix.
type Arithmetic struct {
	dense
}

// NewArithmetic validates and copies grid into an Arithmetic matrix.
func NewArithmetic(grid [][]float64) (*Arithmetic, error) {
	d, err := newDense(grid)
	if err != nil {
		return nil, matrixErrorf(opNew, err)
	}
	return &Arithmetic{dense: d}, nil
}

func wrapArithmetic(d dense) *Arithmetic { return &Arithmetic{dense: d} }

// Add returns m + other.
func (m *Arithmetic) Add(other View) (*Arithmetic, error) {
	return binary(add, m, other, wrapArithmetic)
}

// Mul returns the element-wise product of m and other.
func (m *Arithmetic) Mul(other View) (*Arithmetic, error) {
	return binary(hadamard, m, other, wrapArithmetic)
}

// MatMul returns the matrix product m × other.
func (m *Arithmetic) MatMul(other View) (*Arithmetic, error) {
	return binary(matmul, m, other, wrapArithmetic)
}

// Sub returns m - other.
func (m *Arithmetic) Sub(other View) (*Arithmetic, error) {
	return binary(sub, m, other, wrapArithmetic)
}

// Div returns m / other element-wise.
func (m *Arithmetic) Div(other View) (*Arithmetic, error) {
	return binary(div, m, other, wrapArithmetic)
}

// ---------- Functional ----------

// Functional adds string rendering and file export to Matrix.
type Functional struct {
	dense
}

// NewFunctional validates and copies grid into a Functional matrix.
func NewFunctional(grid [][]float64) (*Functional, error) {
	d, err := newDense(grid)
	if err != nil {
		return nil, matrixErrorf(opNew, err)
	}
	return &Functional{dense: d}, nil
}

func wrapFunctional(d dense) *Functional { return &Functional{dense: d} }

// Add returns m + other.
func (m *Functional) Add(other View) (*Functional, error) {
	return binary(add, m, other, wrapFunctional)
}

// Mul returns the element-wise product of m and other.
func (m *Functional) Mul(other View) (*Functional, error) {
	return binary(hadamard, m, other, wrapFunctional)
}

// MatMul returns the matrix product m × other.
func (m *Functional) MatMul(other View) (*Functional, error) {
	return binary(matmul, m, other, wrapFunctional)
}

// String renders rows on separate lines with tab-separated cells.
func (m *Functional) String() string { return render(m) }

// WriteToFile writes String() to path, replacing any existing content.
func (m *Functional) WriteToFile(path string) error { return writeToFile(m, path) }

// ---------- FunctionalArithmetic ----------

// FunctionalArithmetic carries every capability, including grid replacement.
type FunctionalArithmetic struct {
	dense
}

// NewFunctionalArithmetic validates and copies grid into a FunctionalArithmetic matrix.
func NewFunctionalArithmetic(grid [][]float64) (*FunctionalArithmetic, error) {
	d, err := newDense(grid)
	if err != nil {
		return nil, matrixErrorf(opNew, err)
	}
	return &FunctionalArithmetic{dense: d}, nil
}

func wrapFunctionalArithmetic(d dense) *FunctionalArithmetic {
	return &FunctionalArithmetic{dense: d}
}

// Add returns m + other.
func (m *FunctionalArithmetic) Add(other View) (*FunctionalArithmetic, error) {
	return binary(add, m, other, wrapFunctionalArithmetic)
}

// Mul returns the element-wise product of m and other.
func (m *FunctionalArithmetic) Mul(other View) (*FunctionalArithmetic, error) {
	return binary(hadamard, m, other, wrapFunctionalArithmetic)
}

// MatMul returns the matrix product m × other.
func (m *FunctionalArithmetic) MatMul(other View) (*FunctionalArithmetic, error) {
	return binary(matmul, m, other, wrapFunctionalArithmetic)
}

// Sub returns m - other.
func (m *FunctionalArithmetic) Sub(other View) (*FunctionalArithmetic, error) {
	return binary(sub, m, other, wrapFunctionalArithmetic)
}

// Div returns m / other element-wise.
func (m *FunctionalArithmetic) Div(other View) (*FunctionalArithmetic, error) {
	return binary(div, m, other, wrapFunctionalArithmetic)
}

// String renders rows on separate lines with tab-separated cells.
func (m *FunctionalArithmetic) String() string { return render(m) }

// WriteToFile writes String() to path, replacing any existing content.
func (m *FunctionalArithmetic) WriteToFile(path string) error { return writeToFile(m, path) }

// Grid returns a deep copy of the cells.
func (m *FunctionalArithmetic) Grid() [][]float64 { return copyGrid(m.data) }

// SetGrid validates and copies grid, replacing the cells and the shape.
// On error m is left unchanged.
func (m *FunctionalArithmetic) SetGrid(grid [][]float64) error {
	d, err := newDense(grid)
	if err != nil {
		return matrixErrorf(opSet, err)
	}
	m.dense = d
	return nil
}

var (
	_ Core[*Matrix] = (*Matrix)(nil)

	_ Core[*Arithmetic]       = (*Arithmetic)(nil)
	_ Subtracter[*Arithmetic] = (*Arithmetic)(nil)
	_ Divider[*Arithmetic]    = (*Arithmetic)(nil)

	_ Core[*Functional] = (*Functional)(nil)
	_ FileWriter        = (*Functional)(nil)

	_ Core[*FunctionalArithmetic]       = (*FunctionalArithmetic)(nil)
	_ Subtracter[*FunctionalArithmetic] = (*FunctionalArithmetic)(nil)
	_ Divider[*FunctionalArithmetic]    = (*FunctionalArithmetic)(nil)
	_ FileWriter                        = (*FunctionalArithmetic)(nil)
	_ GridAccessor                      = (*FunctionalArithmetic)(nil)
)
