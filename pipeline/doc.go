// Package pipeline sequences the segmentation stages over one grid and
// reports how many blobs it contains.
//
// Orders:
//
//   - OrderLegacy (default): propagate markers on the raw grid, persist the
//     relabeled image, threshold (which overwrites every marker), persist
//     the binary image, count components. The thresholder therefore sees
//     marker ids mixed into the grayscale values, and the markers survive
//     only in the relabeled file.
//   - OrderThresholdFirst: threshold the raw grid, persist the binary image,
//     propagate markers on a copy of the binary image, persist it, count
//     components on the binary image.
//
// Counting always runs on the binary image and never sees markers.
//
// Output files are best effort: a failed write is logged, recorded in the
// Report and the run continues. An empty path disables that output.
//
// Configuration comes from DefaultConfig, optionally overlaid by a JSON
// file through LoadConfig.
package pipeline
