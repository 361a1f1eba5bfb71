package sauvola

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrNilGrid indicates a nil *grid.Grid.
	ErrNilGrid = errors.New("sauvola: grid is nil")
	// ErrBadRadius indicates a negative window radius.
	ErrBadRadius = errors.New("sauvola: window radius must be >= 0")
	// ErrBadK indicates a non-finite sensitivity factor.
	ErrBadK = errors.New("sauvola: k must be finite")
	// ErrBadR indicates a non-positive or non-finite dynamic range.
	ErrBadR = errors.New("sauvola: R must be finite and > 0")
	// ErrUnknownMethod indicates an unsupported Method value.
	ErrUnknownMethod = errors.New("sauvola: unknown method")
)

// Method selects how window statistics are gathered.
type Method int

const (
	// Integral uses summed-area tables: O(1) per pixel.
	Integral Method = iota
	// Naive rescans the whole window for every pixel.
	Naive
)

// String returns the lower-case method name used in configuration files.
func (m Method) String() string {
	switch m {
	case Integral:
		return "integral"
	case Naive:
		return "naive"
	default:
		return fmt.Sprintf("Method(%d)", int(m))
	}
}

// ParseMethod maps "integral" or "naive" to a Method.
func ParseMethod(s string) (Method, error) {
	switch s {
	case "integral", "":
		return Integral, nil
	case "naive":
		return Naive, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

// Defaults tuned for beans on a flatbed scan.
const (
	DefaultRadius = 17
	DefaultK      = 0.920
	DefaultR      = 128.0
)

// Options holds the thresholding parameters.
type Options struct {
	// Radius is the window half-width; 0 samples only the pixel itself.
	Radius int
	// K is the sensitivity factor, typically in (0,1).
	K float64
	// R is the assumed maximum standard deviation.
	R float64
	// Method picks the statistics implementation.
	Method Method
}

// DefaultOptions returns Radius=17, K=0.920, R=128 with the Integral method.
func DefaultOptions() Options {
	return Options{
		Radius: DefaultRadius,
		K:      DefaultK,
		R:      DefaultR,
		Method: Integral,
	}
}

// Validate checks o against the documented ranges.
func (o Options) Validate() error {
	if o.Radius < 0 {
		return fmt.Errorf("%w: got %d", ErrBadRadius, o.Radius)
	}
	if math.IsNaN(o.K) || math.IsInf(o.K, 0) {
		return fmt.Errorf("%w: got %v", ErrBadK, o.K)
	}
	if math.IsNaN(o.R) || math.IsInf(o.R, 0) || o.R <= 0 {
		return fmt.Errorf("%w: got %v", ErrBadR, o.R)
	}
	if o.Method != Integral && o.Method != Naive {
		return fmt.Errorf("%w: %v", ErrUnknownMethod, o.Method)
	}

	return nil
}
