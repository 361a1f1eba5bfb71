package watershed_test

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/blobcount/grid"
	"github.com/katalvlaran/blobcount/watershed"
)

// PropagateSuite exercises seeding, relaxation and commit.
type PropagateSuite struct {
	suite.Suite
}

// mustGrid builds a grid from rows or fails the test.
func (s *PropagateSuite) mustGrid(rows [][]int) *grid.Grid {
	g, err := grid.FromRows(rows, 255)
	s.Require().NoError(err)

	return g
}

// TestFramedBlock: a 5×5 ink block inside a paper frame. The block's
// outer ring is seeded 1..16 in raster order and the 3×3 core fills with
// the smallest id in one sweep; a second sweep confirms the fixed point.
func (s *PropagateSuite) TestFramedBlock() {
	const B = 255
	g := s.mustGrid([][]int{
		{B, B, B, B, B, B, B},
		{B, 0, 0, 0, 0, 0, B},
		{B, 0, 0, 0, 0, 0, B},
		{B, 0, 0, 0, 0, 0, B},
		{B, 0, 0, 0, 0, 0, B},
		{B, 0, 0, 0, 0, 0, B},
		{B, B, B, B, B, B, B},
	})

	res, err := watershed.Propagate(g)
	s.Require().NoError(err)
	s.Equal(watershed.Result{Seeds: 16, Assigned: 9, Sweeps: 2}, res)

	want := [][]int{
		{B, B, B, B, B, B, B},
		{B, 1, 2, 3, 4, 5, B},
		{B, 6, 1, 1, 1, 7, B},
		{B, 8, 1, 1, 1, 9, B},
		{B, 10, 1, 1, 1, 11, B},
		{B, 12, 13, 14, 15, 16, B},
		{B, B, B, B, B, B, B},
	}
	if diff := cmp.Diff(want, g.Rows()); diff != "" {
		s.T().Errorf("Propagate mismatch (-want +got):\n%s", diff)
	}
}

// TestNoBackground: an all-ink image has no boundary, so nothing is seeded
// and a single sweep finds nothing to do.
func (s *PropagateSuite) TestNoBackground() {
	g, err := grid.New(6, 6, 255)
	s.Require().NoError(err)
	before := g.Clone()

	res, err := watershed.Propagate(g)
	s.Require().NoError(err)
	s.Equal(watershed.Result{Seeds: 0, Assigned: 0, Sweeps: 1}, res)
	s.True(before.Equal(g))
}

// TestGrayValuesIgnored: values other than 0 and 255 neither seed nor
// count as background.
func (s *PropagateSuite) TestGrayValuesIgnored() {
	g := s.mustGrid([][]int{
		{9, 9, 9, 9},
		{9, 0, 0, 9},
		{9, 0, 0, 9},
		{9, 9, 9, 9},
	})
	res, err := watershed.Propagate(g)
	s.Require().NoError(err)
	s.Zero(res.Seeds)
	s.Zero(res.Assigned)
}

// TestTooSmall: grids without an interior are a no-op.
func (s *PropagateSuite) TestTooSmall() {
	for _, rows := range [][][]int{
		{{0, 255, 0}},
		{{0, 255}, {255, 0}},
		{{0}, {255}, {0}},
	} {
		g := s.mustGrid(rows)
		before := g.Clone()
		res, err := watershed.Propagate(g)
		s.Require().NoError(err)
		s.Equal(watershed.Result{}, res)
		s.True(before.Equal(g))
	}
}

// TestNilGrid checks the nil guard on both entry points.
func (s *PropagateSuite) TestNilGrid() {
	_, err := watershed.Propagate(nil)
	s.ErrorIs(err, watershed.ErrNilGrid)
	_, _, err = watershed.Markers(nil)
	s.ErrorIs(err, watershed.ErrNilGrid)
}

func TestPropagateSuite(t *testing.T) {
	suite.Run(t, new(PropagateSuite))
}

// randomBinary returns a w×h grid of 0/255 with the given ink probability.
func randomBinary(t *testing.T, rng *rand.Rand, w, h int, ink float64) *grid.Grid {
	t.Helper()
	g, err := grid.New(w, h, 255)
	require.NoError(t, err)
	for i := range g.Pixels() {
		if rng.Float64() >= ink {
			g.Pixels()[i] = grid.Background
		}
	}

	return g
}

// TestMarkers_BorderNeverMarked: no pixel of the outer ring ever gets a marker.
func TestMarkers_BorderNeverMarked(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 0; n < 30; n++ {
		g := randomBinary(t, rng, 1+rng.Intn(25), 1+rng.Intn(25), 0.6)
		markers, _, err := watershed.Markers(g)
		require.NoError(t, err)
		for idx, m := range markers {
			row, col := g.Coordinate(idx)
			if row == 0 || col == 0 || row == g.Height-1 || col == g.Width-1 {
				require.Equal(t, watershed.NoMarker, m, "border (%d,%d) marked", row, col)
			}
		}
	}
}

// TestMarkers_Monotone checks the fixed point reached by relaxation:
// seeds carry distinct ids 1..Seeds, markers only sit on interior ink, and
// every relaxed pixel shares its value with a neighbour marked before it,
// so no marker was ever rewritten.
func TestMarkers_Monotone(t *testing.T) {
	rng := rand.New(rand.NewSource(12))
	for n := 0; n < 30; n++ {
		g := randomBinary(t, rng, 3+rng.Intn(25), 3+rng.Intn(25), 0.7)
		markers, res, err := watershed.Markers(g)
		require.NoError(t, err)

		ink := 0
		for _, v := range g.Pixels() {
			if v == grid.Foreground {
				ink++
			}
		}
		require.LessOrEqual(t, res.Sweeps, ink+1, "sweeps bounded by ink pixels")
		require.LessOrEqual(t, res.Seeds+res.Assigned, ink)

		marked := 0
		for idx, m := range markers {
			if m == watershed.NoMarker {
				continue
			}
			marked++
			require.Equal(t, grid.Foreground, g.Pixels()[idx])
			require.LessOrEqual(t, m, res.Seeds)
			row, col := g.Coordinate(idx)
			hasSameNeighbour := false
			for _, d := range grid.Neighbors8 {
				if markers[g.Index(row+d[0], col+d[1])] == m {
					hasSameNeighbour = true
					break
				}
			}
			touchesPaper := false
			for _, d := range grid.Neighbors8 {
				if g.Pixels()[g.Index(row+d[0], col+d[1])] == grid.Background {
					touchesPaper = true
					break
				}
			}
			require.True(t, touchesPaper || hasSameNeighbour,
				"relaxed pixel (%d,%d)=%d has no neighbour with its marker", row, col, m)
		}
		require.Equal(t, res.Seeds+res.Assigned, marked)
	}
}

// TestPropagate_CommitKeepsUnmarked: unmarked pixels keep their values.
func TestPropagate_CommitKeepsUnmarked(t *testing.T) {
	rng := rand.New(rand.NewSource(13))
	g := randomBinary(t, rng, 20, 15, 0.5)
	before := g.Clone()

	markers, _, err := watershed.Markers(g)
	require.NoError(t, err)
	_, err = watershed.Propagate(g)
	require.NoError(t, err)

	for idx, m := range markers {
		if m == watershed.NoMarker {
			require.Equal(t, before.Pixels()[idx], g.Pixels()[idx])
		} else {
			require.Equal(t, m, g.Pixels()[idx])
		}
	}
}
