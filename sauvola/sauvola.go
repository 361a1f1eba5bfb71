package sauvola

import (
	"math"

	"github.com/katalvlaran/blobcount/grid"
)

// Threshold replaces every pixel of g with 0 or 255 according to Sauvola's
// rule (see package doc).
// Stage 1 (Validate): g non-nil, options in range.
// Stage 2 (Execute): classify every pixel into a fresh buffer.
// Stage 3 (Finalize): swap the buffer into g.
// Complexity: O(W×H) for Integral, O(W×H×r²) for Naive; O(W×H) memory.
func Threshold(g *grid.Grid, opts Options) error {
	if g == nil {
		return ErrNilGrid
	}
	if err := opts.Validate(); err != nil {
		return err
	}
	// a wider window clips to the whole grid; this also keeps row+radius
	// from overflowing
	opts.Radius = clampRadius(g, opts.Radius)

	var out []int
	if opts.Method == Naive {
		out = thresholdNaive(g, opts)
	} else {
		out = thresholdIntegral(g, opts)
	}

	return g.Replace(out)
}

// Stats returns the mean and population standard deviation of the clipped
// window of the given radius centred on (row, col).
func Stats(g *grid.Grid, row, col, radius int) (mean, std float64) {
	r0, r1, c0, c1 := window(g, row, col, clampRadius(g, radius))
	sum, sumSq, n := naiveSums(g, r0, r1, c0, c1)

	return meanStd(sum, sumSq, n)
}

func clampRadius(g *grid.Grid, radius int) int {
	return min(radius, max(g.Width, g.Height))
}

// window returns the inclusive clipped bounds of the window around (row, col).
func window(g *grid.Grid, row, col, radius int) (r0, r1, c0, c1 int) {
	return max(0, row-radius), min(g.Height-1, row+radius),
		max(0, col-radius), min(g.Width-1, col+radius)
}

// meanStd turns exact window sums into μ and σ. A variance that rounds
// below zero yields σ = NaN, which classify maps to background.
func meanStd(sum, sumSq int64, n int) (float64, float64) {
	num := float64(n)
	mean := float64(sum) / num

	return mean, math.Sqrt(float64(sumSq)/num - mean*mean)
}

// classify applies T = μ·(1 + k·(σ/R − 1)) to a single pixel value.
func classify(v int, sum, sumSq int64, n int, k, r float64) int {
	mean, std := meanStd(sum, sumSq, n)
	t := mean * (1 + k*((std/r)-1))
	if float64(v) < t {
		return grid.Foreground
	}

	return grid.Background
}

func naiveSums(g *grid.Grid, r0, r1, c0, c1 int) (sum, sumSq int64, n int) {
	pix := g.Pixels()
	for rr := r0; rr <= r1; rr++ {
		base := rr * g.Width
		for cc := c0; cc <= c1; cc++ {
			v := int64(pix[base+cc])
			sum += v
			sumSq += v * v
		}
	}

	return sum, sumSq, (r1 - r0 + 1) * (c1 - c0 + 1)
}

func thresholdNaive(g *grid.Grid, opts Options) []int {
	pix := g.Pixels()
	out := make([]int, len(pix))
	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			r0, r1, c0, c1 := window(g, i, j, opts.Radius)
			sum, sumSq, n := naiveSums(g, r0, r1, c0, c1)
			idx := i*g.Width + j
			out[idx] = classify(pix[idx], sum, sumSq, n, opts.K, opts.R)
		}
	}

	return out
}

// integralTables builds (W+1)×(H+1) summed-area tables of v and v², with a
// zero first row and column so window sums need no edge cases.
func integralTables(g *grid.Grid) (sum, sumSq []int64) {
	w, h := g.Width, g.Height
	stride := w + 1
	sum = make([]int64, stride*(h+1))
	sumSq = make([]int64, stride*(h+1))
	pix := g.Pixels()
	for y := 1; y <= h; y++ {
		var rowSum, rowSq int64
		for x := 1; x <= w; x++ {
			v := int64(pix[(y-1)*w+(x-1)])
			rowSum += v
			rowSq += v * v
			sum[y*stride+x] = sum[(y-1)*stride+x] + rowSum
			sumSq[y*stride+x] = sumSq[(y-1)*stride+x] + rowSq
		}
	}

	return sum, sumSq
}

func thresholdIntegral(g *grid.Grid, opts Options) []int {
	tabSum, tabSq := integralTables(g)
	stride := g.Width + 1
	rect := func(tab []int64, r0, r1, c0, c1 int) int64 {
		// table coordinates are shifted by one
		return tab[(r1+1)*stride+(c1+1)] - tab[r0*stride+(c1+1)] -
			tab[(r1+1)*stride+c0] + tab[r0*stride+c0]
	}

	pix := g.Pixels()
	out := make([]int, len(pix))
	for i := 0; i < g.Height; i++ {
		for j := 0; j < g.Width; j++ {
			r0, r1, c0, c1 := window(g, i, j, opts.Radius)
			n := (r1 - r0 + 1) * (c1 - c0 + 1)
			idx := i*g.Width + j
			out[idx] = classify(pix[idx],
				rect(tabSum, r0, r1, c0, c1), rect(tabSq, r0, r1, c0, c1),
				n, opts.K, opts.R)
		}
	}

	return out
}
