package pgm

import "errors"

var (
	// ErrBadMagic indicates the first line is not the "P2" magic.
	ErrBadMagic = errors.New("pgm: unsupported file format")
	// ErrBadHeader indicates a missing or non-numeric size or max line.
	ErrBadHeader = errors.New("pgm: malformed header")
	// ErrBadPixel indicates a pixel token that is not an integer.
	ErrBadPixel = errors.New("pgm: malformed pixel value")
	// ErrShortPixels indicates fewer than width×height pixel values.
	ErrShortPixels = errors.New("pgm: not enough pixel values")
	// ErrLineTooLong indicates a header line longer than MaxLineLength.
	ErrLineTooLong = errors.New("pgm: line too long")
	// ErrTokenTooLong indicates a pixel token longer than MaxTokenLength.
	ErrTokenTooLong = errors.New("pgm: pixel token too long")
)
