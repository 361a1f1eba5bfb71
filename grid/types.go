package grid

// Binary pixel classes produced by thresholding.
const (
	// Foreground is ink: the value every stage treats as "object".
	Foreground = 0
	// Background is paper.
	Background = 255
)

// MaxPixels is the largest Width*Height New will allocate.
const MaxPixels = 1 << 32

// Neighbors8 holds the (drow, dcol) offsets of the eight neighbours of a
// cell, in raster order: the row above left to right, the two side cells,
// then the row below.
var Neighbors8 = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Grid is a rectangular image of integer intensities.
// Width and Height are fixed for the lifetime of the Grid; MaxIntensity is
// carried for round-tripping and is not enforced on Set.
// pix holds Width*Height values in row-major order.
type Grid struct {
	Width, Height int
	MaxIntensity  int
	pix           []int
}
