// Package matrix provides a small rectangular float64 matrix value.
//
// A matrix is built from a literal grid, which is validated (at least one row
// and one column, every row the same length) and copied. Operations never
// mutate their operands: each one allocates a fresh grid and wraps it in the
// left operand's type.
//
// Four variant types expose different capability sets over the same kernels:
//
//	Matrix                Add, Mul (element-wise), MatMul
//	Arithmetic            Matrix + Sub, Div
//	Functional            Matrix + String, WriteToFile
//	FunctionalArithmetic  all of the above + Grid, SetGrid
//
// Every variant implements View, so any variant can be the right operand of any
// binary operation.
//
// Division follows IEEE-754: x/0 is ±Inf and 0/0 is NaN, never an error.
// MatMul accumulates each cell left to right over the inner index, so results
// are reproducible bit for bit.
package matrix
