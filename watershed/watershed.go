package watershed

import (
	"errors"

	"github.com/katalvlaran/blobcount/grid"
)

// ErrNilGrid indicates a nil *grid.Grid.
var ErrNilGrid = errors.New("watershed: grid is nil")

// NoMarker is the marker-buffer value of a pixel that has no marker yet.
const NoMarker = 0

// Result summarises one propagation.
type Result struct {
	Seeds    int // boundary pixels that received a fresh id
	Assigned int // pixels filled by relaxation
	Sweeps   int // relaxation sweeps, including the final no-change sweep
}

// propagator holds the state of a single call.
type propagator struct {
	w, h    int
	pix     []int
	markers []int
	// bound is strictly greater than every marker id handed out; a
	// neighbour minimum equal to bound means "no marked neighbour".
	bound int
}

// Markers runs the seed and relax phases and returns the marker buffer
// (row-major, NoMarker where unmarked) without touching g.
func Markers(g *grid.Grid) ([]int, Result, error) {
	if g == nil {
		return nil, Result{}, ErrNilGrid
	}
	p := &propagator{
		w:       g.Width,
		h:       g.Height,
		pix:     g.Pixels(),
		markers: make([]int, g.Width*g.Height),
	}
	if p.w < 3 || p.h < 3 {
		return p.markers, Result{}, nil // no interior
	}

	var res Result
	res.Seeds = p.seed()
	for {
		res.Sweeps++
		n := p.sweep()
		res.Assigned += n
		if n == 0 {
			break
		}
	}

	return p.markers, res, nil
}

// Propagate relabels g in place: every pixel that received a marker is
// overwritten with its marker id.
func Propagate(g *grid.Grid) (Result, error) {
	markers, res, err := Markers(g)
	if err != nil {
		return res, err
	}

	out := make([]int, len(markers))
	copy(out, g.Pixels())
	for i, m := range markers {
		if m > NoMarker {
			out[i] = m
		}
	}

	return res, g.Replace(out)
}

func (p *propagator) seed() int {
	next := 1
	for i := 1; i < p.h-1; i++ {
		for j := 1; j < p.w-1; j++ {
			idx := i*p.w + j
			if p.pix[idx] == grid.Foreground && p.touchesBackground(i, j) {
				p.markers[idx] = next
				next++
			}
		}
	}
	p.bound = next

	return next - 1
}

func (p *propagator) touchesBackground(i, j int) bool {
	for _, d := range grid.Neighbors8 {
		if p.pix[(i+d[0])*p.w+(j+d[1])] == grid.Background {
			return true
		}
	}

	return false
}

// sweep performs one raster pass and returns how many pixels it filled.
func (p *propagator) sweep() int {
	changes := 0
	for i := 1; i < p.h-1; i++ {
		for j := 1; j < p.w-1; j++ {
			idx := i*p.w + j
			if p.pix[idx] != grid.Foreground || p.markers[idx] != NoMarker {
				continue
			}
			lowest := p.bound
			for _, d := range grid.Neighbors8 {
				m := p.markers[(i+d[0])*p.w+(j+d[1])]
				if m > NoMarker && m < lowest {
					lowest = m
				}
			}
			if lowest < p.bound {
				p.markers[idx] = lowest
				changes++
			}
		}
	}

	return changes
}
