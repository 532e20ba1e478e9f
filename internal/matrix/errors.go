package matrix

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "matrix:". Callers match with errors.Is.
var (
	// ErrBadShape is the parent of every construction failure.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrEmpty reports a grid with no rows or an empty first row.
	ErrEmpty = fmt.Errorf("%w: need at least one row and one column", ErrBadShape)

	// ErrRagged reports rows of different lengths.
	ErrRagged = fmt.Errorf("%w: rows must have equal length", ErrBadShape)

	// ErrDimensionMismatch reports operands whose shapes are incompatible.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrInnerDimensionMismatch is the MatMul flavour of ErrDimensionMismatch.
	ErrInnerDimensionMismatch = fmt.Errorf("%w: columns of first must match rows of second", ErrDimensionMismatch)

	// ErrNilMatrix reports a nil operand.
	ErrNilMatrix = errors.New("matrix: nil operand")
)

// matrixErrorf tags err with the operation that produced it.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

func shapeErrorf(tag string, err error, ar, ac, br, bc int) error {
	return fmt.Errorf("%s: %w (%dx%d vs %dx%d)", tag, err, ar, ac, br, bc)
}
