package components

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary describes the pixel areas of a set of components.
// StdDev is the sample standard deviation (zero for fewer than two blobs).
type Summary struct {
	Count  int     `json:"count"`
	Min    int     `json:"min"`
	Max    int     `json:"max"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Median float64 `json:"median"`
}

// Summarize computes area statistics over sizes. An empty input yields
// the zero Summary.
func Summarize(sizes []int) Summary {
	if len(sizes) == 0 {
		return Summary{}
	}

	xs := make([]float64, len(sizes))
	for i, s := range sizes {
		xs[i] = float64(s)
	}
	sort.Float64s(xs)

	s := Summary{
		Count: len(xs),
		Min:   int(xs[0]),
		Max:   int(xs[len(xs)-1]),
		Mean:  stat.Mean(xs, nil),
	}
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	s.Median = stat.Quantile(0.5, stat.Empirical, xs, nil)

	return s
}
