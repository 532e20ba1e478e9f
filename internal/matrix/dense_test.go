package matrix

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCopiesGrid(t *testing.T) {
	grid := [][]float64{{1, 2}, {3, 4}}
	m, err := New(grid)
	require.NoError(t, err)

	grid[0][0] = 99
	require.Equal(t, 1.0, m.At(0, 0))
	r, c := m.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	require.Equal(t, 2, m.Rows())
	require.Equal(t, 2, m.Cols())
}

func TestNewRejectsBadShapes(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrEmpty)
	require.ErrorIs(t, err, ErrBadShape)

	_, err = New([][]float64{{}})
	require.ErrorIs(t, err, ErrEmpty)

	_, err = New([][]float64{{1, 2}, {3}})
	require.ErrorIs(t, err, ErrRagged)
	require.ErrorIs(t, err, ErrBadShape)
}

func TestAddElementWise(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustNew(t, [][]float64{{10, 20, 30}, {40, 50, 60}})

	got, err := a.Add(b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{11, 22, 33}, {44, 55, 66}}, ToGrid(got))

	// Operands are untouched.
	require.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, ToGrid(a))
}

func TestAddCommutativeAndAssociative(t *testing.T) {
	a := mustNew(t, [][]float64{{1, -2}, {3, 4}})
	b := mustNew(t, [][]float64{{5, 6}, {-7, 8}})
	c := mustNew(t, [][]float64{{0, 1}, {1, 0}})

	ab, err := a.Add(b)
	require.NoError(t, err)
	ba, err := b.Add(a)
	require.NoError(t, err)
	require.True(t, Equal(ab, ba))

	abc, err := ab.Add(c)
	require.NoError(t, err)
	bc, err := b.Add(c)
	require.NoError(t, err)
	aBC, err := a.Add(bc)
	require.NoError(t, err)
	require.True(t, Equal(abc, aBC))
}

func TestMulElementWise(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 2}, {3, 4}})
	b := mustNew(t, [][]float64{{5, 6}, {7, 8}})

	got, err := a.Mul(b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{5, 12}, {21, 32}}, ToGrid(got))
}

func TestElementWiseShapeMismatch(t *testing.T) {
	a := mustNewArith(t, [][]float64{{1, 2}, {3, 4}})
	b := mustNewArith(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	_, err := a.Add(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	require.NotErrorIs(t, err, ErrInnerDimensionMismatch)
	_, err = a.Mul(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = a.Sub(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	_, err = a.Div(b)
	require.ErrorIs(t, err, ErrDimensionMismatch)
}

func TestMatMul(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 2}, {3, 4}})
	b := mustNew(t, [][]float64{{5, 6}, {7, 8}})

	got, err := a.MatMul(b)
	require.NoError(t, err)
	require.Equal(t, [][]float64{{19, 22}, {43, 50}}, ToGrid(got))
}

func TestMatMulRectangular(t *testing.T) {
	a := mustNew(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustNew(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	got, err := a.MatMul(b)
	require.NoError(t, err)
	r, c := got.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 2, c)
	require.Equal(t, [][]float64{{58, 64}, {139, 154}}, ToGrid(got))
}

func TestMatMulIdentity(t *testing.T) {
	a := mustNew(t, [][]float64{{1.5, -2, 3}, {4, 0, 6.25}})
	id := mustNew(t, IdentityGrid(3))

	got, err := a.MatMul(id)
	require.NoError(t, err)
	require.True(t, Equal(a, got))
}

func TestMatMulInnerMismatch(t *testing.T) {
	// Same shape, so element-wise ops work, but 2x3 @ 2x3 is undefined.
	a := mustNew(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustNew(t, [][]float64{{1, 2, 3}, {4, 5, 6}})

	_, err := a.Add(b)
	require.NoError(t, err)

	_, err = a.MatMul(b)
	require.ErrorIs(t, err, ErrInnerDimensionMismatch)
	require.ErrorIs(t, err, ErrDimensionMismatch)
	require.Contains(t, err.Error(), "columns of first must match rows of second")
}

func TestSubRoundTrip(t *testing.T) {
	a := mustNewArith(t, [][]float64{{5, 7}, {-1, 2}})
	b := mustNewArith(t, [][]float64{{1, 3}, {4, -6}})

	diff, err := a.Sub(b)
	require.NoError(t, err)
	back, err := diff.Add(b)
	require.NoError(t, err)
	require.True(t, Equal(a, back))
}

func TestDivByZeroFollowsIEEE(t *testing.T) {
	a := mustNewArith(t, [][]float64{{1, -1, 0, 6}})
	b := mustNewArith(t, [][]float64{{0, 0, 0, 3}})

	got, err := a.Div(b)
	require.NoError(t, err)
	require.True(t, math.IsInf(got.At(0, 0), 1))
	require.True(t, math.IsInf(got.At(0, 1), -1))
	require.True(t, math.IsNaN(got.At(0, 2)))
	require.Equal(t, 2.0, got.At(0, 3))
}

func TestNilOperand(t *testing.T) {
	a := mustNew(t, [][]float64{{1}})
	_, err := a.Add(nil)
	require.ErrorIs(t, err, ErrNilMatrix)
	_, err = a.MatMul(nil)
	require.ErrorIs(t, err, ErrNilMatrix)
}

func TestTypedNilOperand(t *testing.T) {
	a := mustNew(t, [][]float64{{1}})
	var b *Matrix
	_, err := a.Add(b)
	require.ErrorIs(t, err, ErrNilMatrix)
	_, err = a.MatMul(b)
	require.ErrorIs(t, err, ErrNilMatrix)

	var fa *FunctionalArithmetic
	_, err = fa.Sub(a)
	require.ErrorIs(t, err, ErrNilMatrix)
	_, err = a.Mul(fa)
	require.ErrorIs(t, err, ErrNilMatrix)
}

func TestFormatValue(t *testing.T) {
	require.Equal(t, "1", FormatValue(1))
	require.Equal(t, "2.5", FormatValue(2.5))
	require.Equal(t, "+Inf", FormatValue(math.Inf(1)))
	require.Equal(t, "NaN", FormatValue(math.NaN()))
}

func TestIdentityGridInvalid(t *testing.T) {
	require.Nil(t, IdentityGrid(0))
	require.True(t, errors.Is(validateGrid(IdentityGrid(0)), ErrEmpty))
}

func mustNew(t *testing.T, grid [][]float64) *Matrix {
	t.Helper()
	m, err := New(grid)
	require.NoError(t, err)
	return m
}

func mustNewArith(t *testing.T, grid [][]float64) *Arithmetic {
	t.Helper()
	m, err := NewArithmetic(grid)
	require.NoError(t, err)
	return m
}
