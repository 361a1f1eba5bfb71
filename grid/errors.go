package grid

import "errors"

var (
	// ErrBadShape indicates a non-positive width or height, or a grid
	// larger than MaxPixels.
	ErrBadShape = errors.New("grid: width and height must be > 0")
	// ErrBadMaxIntensity indicates a negative maximum intensity.
	ErrBadMaxIntensity = errors.New("grid: max intensity must be >= 0")
	// ErrEmptyGrid indicates the input 2D slice is empty.
	ErrEmptyGrid = errors.New("grid: input must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")
	// ErrOutOfRange indicates a (row, col) outside the grid.
	ErrOutOfRange = errors.New("grid: index out of range")
	// ErrDimensionMismatch indicates a replacement buffer of the wrong length.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")
)
