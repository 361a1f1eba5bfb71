// Package blobcount counts dark blobs, such as beans on a scanned sheet,
// in plain-text PGM (P2) graymaps.
//
// The work is split into small packages that share one mutable raster:
//
//	grid/       - Grid type: row-major int pixels, bounds, 8-neighbour offsets
//	pgm/        - P2 reader and writer
//	sauvola/    - Sauvola local adaptive threshold (naive and integral-image)
//	watershed/  - marker seeding and min-label propagation over ink regions
//	components/ - 8-connected flood-fill labeling and blob-size statistics
//	cvcheck/    - OpenCV recount used to cross-check the labeler
//	pipeline/   - Config, Driver and Report tying the stages together
//	cmd/blobcount - command-line entry point
//
// A default run mirrors the classic tool:
//
//	raw ─► propagate ─► watershed.pgm ─► threshold ─► sauvola_thresholded.pgm ─► count
//
// and prints "#components= N". Ink is 0 and paper is 255 after thresholding.
package blobcount
