// Package watershed relabels foreground pixels into boundary-seeded marker
// regions by monotone minimum-label relaxation.
//
// This is a simplified stand-in for watershed segmentation, not
// watershed-by-immersion: there is no priority queue and no topographic
// ordering. Foreground is value 0 and background is value 255; any other
// value is neither.
//
// Phases:
//
//  1. Seed: every interior pixel (1 ≤ row ≤ H−2, 1 ≤ col ≤ W−2) that is
//     foreground and has at least one background 8-neighbour receives a
//     fresh marker id, 1, 2, 3, … in raster order. The outermost ring of
//     the image is never marked.
//  2. Relax: full raster sweeps over the interior. An unmarked foreground
//     pixel takes the smallest positive marker among its 8 neighbours.
//     Writes are visible to later pixels of the same sweep. Sweeps stop
//     at the first sweep that changes nothing.
//  3. Commit: pixels holding a marker are overwritten with it; every other
//     pixel keeps its value.
//
// Marker ids are not clamped to the grid's MaxIntensity.
//
// Complexity:
//
//   - Time:   O(S×W×H), S = number of sweeps (≤ foreground pixels + 1,
//     usually a handful for compact blobs).
//   - Memory: O(W×H) for the marker buffer and the committed copy.
//
// Errors:
//
//   - ErrNilGrid: g is nil.
package watershed
