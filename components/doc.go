// Package components counts 8-connected blobs of ink (value 0) in a grid.
//
// What:
//
//   - Count returns the number of maximal 8-connected sets of 0-valued
//     pixels. The grid is only read.
//   - Label returns the full label buffer (1..N, 0 = unlabelled) and the
//     pixel count of every component.
//   - Summarize reduces component sizes to descriptive statistics.
//
// How:
//
//	Pixels are scanned in raster order; each unlabelled ink pixel starts a
//	new component that is flood-filled with an explicit stack, never by
//	recursion, so call depth stays constant on arbitrarily large blobs.
//	The stack stores (row, col) pairs and grows on demand; its worst case
//	is 2×W×H ints.
//
// Components touching the image border count like any other; no size or
// shape filtering is applied.
//
// Complexity:
//
//   - Count, Label: O(W×H×8) time, O(W×H) memory.
//   - Summarize:    O(N log N) for N components.
package components
