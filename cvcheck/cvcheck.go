// Package cvcheck recounts ink components with OpenCV so a run can verify
// the flood-fill labeler against an independent implementation.
package cvcheck

import (
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"github.com/katalvlaran/blobcount/grid"
)

// ErrNilGrid indicates a nil *grid.Grid.
var ErrNilGrid = errors.New("cvcheck: grid is nil")

// Checker counts 8-connected ink components via cv::connectedComponents.
type Checker struct{}

// New returns a Checker.
func New() *Checker {
	return &Checker{}
}

// CountComponents maps ink (0) to 255 and everything else to 0 in an
// 8-bit Mat, labels it with 8-connectivity, and returns the label count
// minus the background label.
func (c *Checker) CountComponents(g *grid.Grid) (int, error) {
	if g == nil {
		return 0, ErrNilGrid
	}

	data := make([]byte, g.Width*g.Height)
	for i, v := range g.Pixels() {
		if v == grid.Foreground {
			data[i] = 255
		}
	}
	src, err := gocv.NewMatFromBytes(g.Height, g.Width, gocv.MatTypeCV8U, data)
	if err != nil {
		return 0, fmt.Errorf("cvcheck: build mat: %w", err)
	}
	defer src.Close()

	labels := gocv.NewMat()
	defer labels.Close()

	n := gocv.ConnectedComponentsWithParams(src, &labels, 8, gocv.MatTypeCV32S, gocv.CCL_DEFAULT)
	if n < 1 {
		return 0, fmt.Errorf("cvcheck: opencv returned %d labels", n)
	}

	return n - 1, nil
}
