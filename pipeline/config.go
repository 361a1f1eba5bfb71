package pipeline

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/katalvlaran/blobcount/sauvola"
)

// Order selects the stage ordering of a run.
type Order string

const (
	// OrderLegacy propagates before thresholding.
	OrderLegacy Order = "legacy"
	// OrderThresholdFirst thresholds before propagating.
	OrderThresholdFirst Order = "threshold-first"
)

// Default output paths.
const (
	DefaultRelabeledPath = "watershed.pgm"
	DefaultBinaryPath    = "sauvola_thresholded.pgm"
)

// maxConfigSize caps the size of a JSON config file.
const maxConfigSize = 1 << 20

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("pipeline: invalid configuration")

// Config holds every tunable of a run.
type Config struct {
	// RelabeledPath receives the grid after marker propagation; "" skips it.
	RelabeledPath string `json:"relabeled_path"`
	// BinaryPath receives the grid after thresholding; "" skips it.
	BinaryPath string `json:"binary_path"`

	Radius int     `json:"radius"`
	K      float64 `json:"k"`
	R      float64 `json:"r"`
	// Method is "integral" or "naive".
	Method string `json:"method"`

	Order Order `json:"order"`

	// CrossCheck requires a CountChecker; New fails without WithChecker.
	CrossCheck bool `json:"cross_check"`
}

// DefaultConfig returns the tuning used for bean scans.
func DefaultConfig() Config {
	return Config{
		RelabeledPath: DefaultRelabeledPath,
		BinaryPath:    DefaultBinaryPath,
		Radius:        sauvola.DefaultRadius,
		K:             sauvola.DefaultK,
		R:             sauvola.DefaultR,
		Method:        sauvola.Integral.String(),
		Order:         OrderLegacy,
	}
}

// LoadConfig overlays the JSON file at path onto DefaultConfig, so partial
// files are fine. The file must have a .json extension, be at most 1 MiB,
// and contain only known fields.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
	}
	info, err := os.Stat(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigSize)
	}
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// SauvolaOptions converts the threshold fields into sauvola.Options.
func (c Config) SauvolaOptions() (sauvola.Options, error) {
	m, err := sauvola.ParseMethod(c.Method)
	if err != nil {
		return sauvola.Options{}, err
	}

	return sauvola.Options{Radius: c.Radius, K: c.K, R: c.R, Method: m}, nil
}

// Validate checks threshold parameters and the stage order.
func (c Config) Validate() error {
	opts, err := c.SauvolaOptions()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch c.Order {
	case OrderLegacy, OrderThresholdFirst:
	default:
		return fmt.Errorf("%w: unknown order %q", ErrInvalidConfig, c.Order)
	}

	return nil
}
