// Package grid provides the pixel buffer shared by every segmentation stage:
// a rectangular image of integer intensities stored in one contiguous,
// row-major slice.
//
// What:
//
//   - Grid holds Width, Height, MaxIntensity and Width×Height pixel values.
//   - Pixels are addressed as (row, col), 0 ≤ row < Height, 0 ≤ col < Width.
//   - Replace swaps the whole pixel buffer at once, so a stage that computes
//     a new image never exposes a half-written grid to its readers.
//   - Neighbors8 lists the eight (drow, dcol) offsets of 8-connectivity.
//
// Why:
//
//   - One flat buffer instead of a slice of rows: no per-row allocations and
//     better locality for sliding-window passes.
//
// Complexity:
//
//   - New, FromRows, Clone, Rows: O(W×H) time and memory.
//   - At, Set, Index, Coordinate, InBounds: O(1).
//
// Errors:
//
//   - ErrBadShape: width or height is not positive.
//   - ErrBadMaxIntensity: maxIntensity is negative.
//   - ErrEmptyGrid: FromRows got no rows or no columns.
//   - ErrNonRectangular: FromRows got rows of differing lengths.
//   - ErrOutOfRange: (row, col) outside the grid.
//   - ErrDimensionMismatch: Replace got a buffer of the wrong length.
package grid
