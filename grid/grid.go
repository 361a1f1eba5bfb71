package grid

import (
	"fmt"
	"strconv"
	"strings"
)

// gridErrorf wraps an underlying error with Grid method context.
func gridErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Grid.%s(%d,%d): %w", method, row, col, err)
}

// New creates a width×height Grid with every pixel set to 0.
// Returns ErrBadShape if width or height ≤ 0 or width*height exceeds
// MaxPixels, ErrBadMaxIntensity if maxIntensity < 0.
// Complexity: O(W×H) time and memory.
func New(width, height, maxIntensity int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadShape
	}
	if width > MaxPixels/height {
		return nil, fmt.Errorf("%w: %d×%d exceeds %d pixels", ErrBadShape, width, height, MaxPixels)
	}
	if maxIntensity < 0 {
		return nil, ErrBadMaxIntensity
	}

	return &Grid{
		Width:        width,
		Height:       height,
		MaxIntensity: maxIntensity,
		pix:          make([]int, width*height),
	}, nil
}

// FromRows builds a Grid from a non-empty, rectangular 2D slice indexed
// [row][col]. The input is deep-copied.
// Returns ErrEmptyGrid if rows has no rows or no columns,
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H) time and memory.
func FromRows(rows [][]int, maxIntensity int) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g, err := New(w, h, maxIntensity)
	if err != nil {
		return nil, err
	}
	for r, row := range rows {
		copy(g.pix[r*w:(r+1)*w], row)
	}

	return g, nil
}

// InBounds reports whether (row, col) lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(row, col int) bool {
	return row >= 0 && row < g.Height && col >= 0 && col < g.Width
}

// Index maps (row, col) to a row-major index: row*Width + col.
// It does not check bounds.
func (g *Grid) Index(row, col int) int {
	return row*g.Width + col
}

// Coordinate converts a row-major index back to (row, col).
func (g *Grid) Coordinate(idx int) (row, col int) {
	return idx / g.Width, idx % g.Width
}

// At returns the pixel at (row, col) or ErrOutOfRange.
func (g *Grid) At(row, col int) (int, error) {
	if !g.InBounds(row, col) {
		return 0, gridErrorf("At", row, col, ErrOutOfRange)
	}

	return g.pix[g.Index(row, col)], nil
}

// Set assigns v at (row, col) or returns ErrOutOfRange.
func (g *Grid) Set(row, col, v int) error {
	if !g.InBounds(row, col) {
		return gridErrorf("Set", row, col, ErrOutOfRange)
	}
	g.pix[g.Index(row, col)] = v

	return nil
}

// Pixels returns the backing row-major buffer. Callers that want to
// produce a new image must build a separate buffer and hand it to Replace.
func (g *Grid) Pixels() []int {
	return g.pix
}

// Replace swaps in pix as the new pixel buffer. The Grid takes ownership
// of pix. Returns ErrDimensionMismatch if len(pix) != Width*Height.
// Complexity: O(1).
func (g *Grid) Replace(pix []int) error {
	if len(pix) != g.Width*g.Height {
		return fmt.Errorf("Grid.Replace: got %d pixels, want %d: %w",
			len(pix), g.Width*g.Height, ErrDimensionMismatch)
	}
	g.pix = pix

	return nil
}

// Fill sets every pixel to v.
func (g *Grid) Fill(v int) {
	for i := range g.pix {
		g.pix[i] = v
	}
}

// Clone returns a deep copy of g.
// Complexity: O(W×H) time and memory.
func (g *Grid) Clone() *Grid {
	pix := make([]int, len(g.pix))
	copy(pix, g.pix)

	return &Grid{Width: g.Width, Height: g.Height, MaxIntensity: g.MaxIntensity, pix: pix}
}

// Equal reports whether g and other have the same dimensions,
// MaxIntensity and pixel values.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.Width != other.Width || g.Height != other.Height || g.MaxIntensity != other.MaxIntensity {
		return false
	}
	for i, v := range g.pix {
		if other.pix[i] != v {
			return false
		}
	}

	return true
}

// Rows returns a [row][col] copy of the pixels.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.Height)
	for r := range rows {
		rows[r] = make([]int, g.Width)
		copy(rows[r], g.pix[r*g.Width:(r+1)*g.Width])
	}

	return rows
}

// String implements fmt.Stringer: one line per row, values space-separated.
func (g *Grid) String() string {
	var sb strings.Builder
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(g.pix[r*g.Width+c]))
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}
