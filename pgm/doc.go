// Package pgm reads and writes grids in the plain-text portable graymap
// format ("P2").
//
// Layout:
//
//	P2
//	# optional comment lines and blank lines
//	<width> <height>
//	<maxIntensity>
//	<width×height whitespace-separated integers, row-major>
//
// Comment lines (first byte '#') and blank lines are skipped while looking
// for the size and max lines. The pixel body is tokenized on whitespace, so
// its line layout is free; a token starting with '#' begins a comment that
// runs to the end of its line. Tokens after the first width×height integers
// are ignored.
//
// Write emits the magic line, "width height", "maxIntensity", then one line
// per row with every pixel followed by a single space.
//
// Header lines are bounded by MaxLineLength and pixel tokens by
// MaxTokenLength; exceeding either fails instead of truncating.
//
// Errors:
//
//   - ErrBadMagic: the first line is not "P2".
//   - ErrBadHeader: the size or max line is missing or not numeric.
//   - ErrBadPixel: a pixel token is not an integer.
//   - ErrShortPixels: fewer than width×height integers were found.
//   - ErrLineTooLong: a header line exceeds MaxLineLength bytes.
//   - ErrTokenTooLong: a pixel token exceeds MaxTokenLength bytes.
//
// Header values are trusted: only what grid.New needs to allocate is
// checked (positive width and height, non-negative max).
package pgm
