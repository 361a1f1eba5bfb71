package grid_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/blobcount/grid"
)

//----------------------------------------------------------------------------//
// Construction
//----------------------------------------------------------------------------//

// TestNew_Errors verifies that New rejects non-positive or oversized shapes
// and negative maxima.
func TestNew_Errors(t *testing.T) {
	cases := []struct {
		name          string
		width, height int
		max           int
		err           error
	}{
		{"ZeroWidth", 0, 3, 255, grid.ErrBadShape},
		{"NegativeHeight", 3, -1, 255, grid.ErrBadShape},
		{"NegativeMax", 3, 3, -1, grid.ErrBadMaxIntensity},
		{"ProductOverflows", 4_000_000_000, 4_000_000_000, 255, grid.ErrBadShape},
		{"TooManyPixels", 1 << 20, 1 << 20, 255, grid.ErrBadShape},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := grid.New(tc.width, tc.height, tc.max)
			if !errors.Is(err, tc.err) {
				t.Errorf("New(%d,%d,%d) error = %v; want %v", tc.width, tc.height, tc.max, err, tc.err)
			}
		})
	}
}

// TestFromRows_Errors verifies that FromRows rejects empty or ragged inputs.
func TestFromRows_Errors(t *testing.T) {
	_, err := grid.FromRows(nil, 255)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)
	_, err = grid.FromRows([][]int{{}}, 255)
	require.ErrorIs(t, err, grid.ErrEmptyGrid)
	_, err = grid.FromRows([][]int{{1, 2}, {3}}, 255)
	require.ErrorIs(t, err, grid.ErrNonRectangular)
}

// TestFromRows_DeepCopy ensures later edits to the source slice do not leak in.
func TestFromRows_DeepCopy(t *testing.T) {
	src := [][]int{
		{1, 2, 3},
		{4, 5, 6},
	}
	g, err := grid.FromRows(src, 9)
	require.NoError(t, err)
	src[0][0] = 99

	assert.Equal(t, 3, g.Width)
	assert.Equal(t, 2, g.Height)
	assert.Equal(t, 9, g.MaxIntensity)
	if diff := cmp.Diff([][]int{{1, 2, 3}, {4, 5, 6}}, g.Rows()); diff != "" {
		t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
	}
}

//----------------------------------------------------------------------------//
// Access
//----------------------------------------------------------------------------//

// TestAtSet checks row-major addressing and bounds errors on a 3×2 grid.
func TestAtSet(t *testing.T) {
	g, err := grid.New(3, 2, 255)
	require.NoError(t, err)

	require.NoError(t, g.Set(1, 2, 7))
	v, err := g.At(1, 2)
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.Equal(t, 7, g.Pixels()[g.Index(1, 2)])

	row, col := g.Coordinate(5)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)

	for _, rc := range [][2]int{{-1, 0}, {2, 0}, {0, 3}, {0, -1}} {
		_, err := g.At(rc[0], rc[1])
		assert.ErrorIs(t, err, grid.ErrOutOfRange, "At(%d,%d)", rc[0], rc[1])
		assert.ErrorIs(t, g.Set(rc[0], rc[1], 1), grid.ErrOutOfRange, "Set(%d,%d)", rc[0], rc[1])
	}
}

// TestReplace checks whole-buffer swaps and length validation.
func TestReplace(t *testing.T) {
	g, err := grid.New(2, 2, 255)
	require.NoError(t, err)

	require.ErrorIs(t, g.Replace([]int{1, 2, 3}), grid.ErrDimensionMismatch)
	require.NoError(t, g.Replace([]int{1, 2, 3, 4}))
	if diff := cmp.Diff([][]int{{1, 2}, {3, 4}}, g.Rows()); diff != "" {
		t.Errorf("Rows() after Replace mismatch (-want +got):\n%s", diff)
	}
}

// TestCloneEqual checks that Clone is independent and Equal compares everything.
func TestCloneEqual(t *testing.T) {
	g, err := grid.FromRows([][]int{{0, 255}, {255, 0}}, 255)
	require.NoError(t, err)

	c := g.Clone()
	require.True(t, g.Equal(c))

	require.NoError(t, c.Set(0, 0, 255))
	assert.False(t, g.Equal(c))
	v, _ := g.At(0, 0)
	assert.Equal(t, 0, v, "Clone must not share storage")

	c = g.Clone()
	c.MaxIntensity = 1
	assert.False(t, g.Equal(c))
	assert.False(t, g.Equal(nil))
}

// TestFillString checks Fill and the debug String form.
func TestFillString(t *testing.T) {
	g, err := grid.New(3, 2, 255)
	require.NoError(t, err)
	g.Fill(grid.Background)

	assert.Equal(t, "255 255 255\n255 255 255\n", g.String())
}

// TestNeighbors8 verifies the offset table covers the 3×3 ring exactly once.
func TestNeighbors8(t *testing.T) {
	seen := map[[2]int]bool{}
	for _, d := range grid.Neighbors8 {
		require.False(t, d == [2]int{0, 0}, "centre must not be a neighbour")
		require.False(t, seen[d], "duplicate offset %v", d)
		require.LessOrEqual(t, d[0]*d[0], 1)
		require.LessOrEqual(t, d[1]*d[1], 1)
		seen[d] = true
	}
	assert.Len(t, seen, 8)
}
