// Package sauvola binarizes a grayscale grid with Sauvola's local adaptive
// threshold.
//
// For every pixel (i, j) the window rows [max(0,i−r), min(h−1,i+r)] and
// columns [max(0,j−r), min(w−1,j+r)] are sampled; the window is clipped at
// the image border, so border pixels use fewer samples. With μ the window
// mean and σ its population standard deviation:
//
//	T = μ · (1 + k · (σ/R − 1))
//
// The output pixel is 0 (ink) when the input pixel is strictly below T and
// 255 (paper) otherwise. Every decision is taken against the input image;
// the result is built in a separate buffer and swapped into the grid at
// the end.
//
// Methods:
//
//   - Naive:    O(W×H×r²) direct window scan.
//   - Integral: O(W×H) with summed-area tables of Σv and Σv².
//
// Both accumulate exact integer sums and evaluate the same floating-point
// formula, so they take identical decisions on every pixel.
//
// Errors:
//
//   - ErrNilGrid:       g is nil.
//   - ErrBadRadius:     Radius < 0.
//   - ErrBadK:          K is NaN or ±Inf.
//   - ErrBadR:          R ≤ 0, NaN or +Inf.
//   - ErrUnknownMethod: Method is not Naive or Integral.
package sauvola
