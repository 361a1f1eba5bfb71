package components

import (
	"errors"

	"github.com/katalvlaran/blobcount/grid"
)

// ErrNilGrid indicates a nil *grid.Grid.
var ErrNilGrid = errors.New("components: grid is nil")

// Unlabeled marks a label-buffer cell that belongs to no component.
const Unlabeled = 0

// Labeling is the outcome of Label.
// Labels holds Width×Height row-major entries; Sizes[k] is the pixel count
// of component k+1.
type Labeling struct {
	Width, Height int
	Labels        []int
	Sizes         []int
}

// Count returns the number of components.
func (l *Labeling) Count() int {
	return len(l.Sizes)
}

// LabelAt returns the component id at (row, col), or Unlabeled when the
// pixel is background or out of range.
func (l *Labeling) LabelAt(row, col int) int {
	if row < 0 || row >= l.Height || col < 0 || col >= l.Width {
		return Unlabeled
	}

	return l.Labels[row*l.Width+col]
}

// Count returns the number of 8-connected ink components in g.
func Count(g *grid.Grid) (int, error) {
	l, err := Label(g)
	if err != nil {
		return 0, err
	}

	return l.Count(), nil
}

// Label assigns ids 1..N to the 8-connected ink components of g in
// raster order of their first pixel.
// Stage 1 (Validate): g non-nil.
// Stage 2 (Execute): raster scan; flood-fill every new seed.
// Stage 3 (Finalize): return labels and sizes.
func Label(g *grid.Grid) (*Labeling, error) {
	if g == nil {
		return nil, ErrNilGrid
	}

	w, h := g.Width, g.Height
	pix := g.Pixels()
	l := &Labeling{Width: w, Height: h, Labels: make([]int, w*h)}
	// shared across fills; reset by popping to empty
	stack := make([]int, 0, 64)

	next := 1
	for i := 0; i < h; i++ {
		for j := 0; j < w; j++ {
			idx := i*w + j
			if pix[idx] != grid.Foreground || l.Labels[idx] != Unlabeled {
				continue
			}
			var size int
			stack, size = fill(pix, l.Labels, w, h, i, j, next, stack)
			l.Sizes = append(l.Sizes, size)
			next++
		}
	}

	return l, nil
}

// fill labels every ink pixel 8-connected to (row, col) with label and
// returns the (emptied) stack for reuse along with the component size.
func fill(pix, labels []int, w, h, row, col, label int, stack []int) ([]int, int) {
	labels[row*w+col] = label
	stack = append(stack, row, col)
	size := 1

	for len(stack) > 0 {
		c := stack[len(stack)-1]
		r := stack[len(stack)-2]
		stack = stack[:len(stack)-2]

		for _, d := range grid.Neighbors8 {
			nr, nc := r+d[0], c+d[1]
			if nr < 0 || nr >= h || nc < 0 || nc >= w {
				continue
			}
			n := nr*w + nc
			if pix[n] == grid.Foreground && labels[n] == Unlabeled {
				labels[n] = label
				stack = append(stack, nr, nc)
				size++
			}
		}
	}

	return stack, size
}
