package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/blobcount/components"
	"github.com/katalvlaran/blobcount/grid"
	"github.com/katalvlaran/blobcount/pgm"
	"github.com/katalvlaran/blobcount/sauvola"
	"github.com/katalvlaran/blobcount/watershed"
)

// ErrNilGrid indicates a nil *grid.Grid passed to Run.
var ErrNilGrid = errors.New("pipeline: grid is nil")

// CountChecker recounts components independently of the flood-fill labeler.
type CountChecker interface {
	CountComponents(g *grid.Grid) (int, error)
}

// Report is the outcome of one run.
type Report struct {
	RunID       string
	Order       Order
	Components  int
	Propagation watershed.Result
	Blobs       components.Summary
	// CrossCheck is the checker's count, nil when no checker ran or it failed.
	CrossCheck *int
	// WriteErrors collects failed output writes; they do not fail the run.
	WriteErrors []error
}

// Option configures a Driver.
type Option func(*Driver)

// WithChecker attaches a CountChecker used after counting.
func WithChecker(c CountChecker) Option {
	return func(d *Driver) {
		d.checker = c
	}
}

// WithWriter replaces the grid file writer; tests use it to observe or
// fail output writes.
func WithWriter(fn func(path string, g *grid.Grid) error) Option {
	return func(d *Driver) {
		if fn != nil {
			d.write = fn
		}
	}
}

// Driver runs the stages over grids according to a Config.
type Driver struct {
	cfg     Config
	opts    sauvola.Options
	log     *logrus.Logger
	checker CountChecker
	write   func(path string, g *grid.Grid) error
}

// New validates cfg and returns a Driver. A nil logger discards output.
// cfg.CrossCheck without WithChecker is an ErrInvalidConfig.
func New(cfg Config, logger *logrus.Logger, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sopts, err := cfg.SauvolaOptions()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.PanicLevel)
	}

	d := &Driver{cfg: cfg, opts: sopts, log: logger, write: pgm.WriteFile}
	for _, fn := range opts {
		fn(d)
	}
	if cfg.CrossCheck && d.checker == nil {
		return nil, fmt.Errorf("%w: cross_check is set but no CountChecker was supplied", ErrInvalidConfig)
	}

	return d, nil
}

// RunFile reads a plain graymap from path and runs it.
func (d *Driver) RunFile(path string) (*Report, error) {
	g, err := pgm.ReadFile(path)
	if err != nil {
		return nil, err
	}
	d.log.WithFields(logrus.Fields{
		"path":   path,
		"width":  g.Width,
		"height": g.Height,
		"max":    g.MaxIntensity,
	}).Info("Image loaded")

	return d.Run(g)
}

// Run executes the configured stage order on g, which is mutated in place
// and holds the binary image afterwards.
func (d *Driver) Run(g *grid.Grid) (*Report, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	rep := &Report{RunID: uuid.NewString(), Order: d.cfg.Order}
	log := d.log.WithFields(logrus.Fields{"run_id": rep.RunID, "order": string(d.cfg.Order)})
	start := time.Now()

	var err error
	switch d.cfg.Order {
	case OrderThresholdFirst:
		err = d.runThresholdFirst(g, rep, log)
	default:
		err = d.runLegacy(g, rep, log)
	}
	if err != nil {
		log.WithError(err).Error("Run failed")
		return nil, err
	}

	if err := d.count(g, rep, log); err != nil {
		log.WithError(err).Error("Run failed")
		return nil, err
	}
	d.crossCheck(g, rep, log)

	log.WithFields(logrus.Fields{
		"components": rep.Components,
		"elapsed":    time.Since(start).String(),
	}).Info("Run complete")

	return rep, nil
}

func (d *Driver) runLegacy(g *grid.Grid, rep *Report, log *logrus.Entry) error {
	if err := d.propagate(g, rep, log); err != nil {
		return err
	}
	d.persist(d.cfg.RelabeledPath, g, rep, log)

	if err := d.threshold(g, log); err != nil {
		return err
	}
	d.persist(d.cfg.BinaryPath, g, rep, log)

	return nil
}

func (d *Driver) runThresholdFirst(g *grid.Grid, rep *Report, log *logrus.Entry) error {
	if err := d.threshold(g, log); err != nil {
		return err
	}
	d.persist(d.cfg.BinaryPath, g, rep, log)

	relabeled := g.Clone()
	if err := d.propagate(relabeled, rep, log); err != nil {
		return err
	}
	d.persist(d.cfg.RelabeledPath, relabeled, rep, log)

	return nil
}

func (d *Driver) propagate(g *grid.Grid, rep *Report, log *logrus.Entry) error {
	t0 := time.Now()
	res, err := watershed.Propagate(g)
	if err != nil {
		return fmt.Errorf("pipeline: propagate: %w", err)
	}
	rep.Propagation = res
	log.WithFields(logrus.Fields{
		"stage":    "propagate",
		"seeds":    res.Seeds,
		"assigned": res.Assigned,
		"sweeps":   res.Sweeps,
		"elapsed":  time.Since(t0).String(),
	}).Debug("Stage done")

	return nil
}

func (d *Driver) threshold(g *grid.Grid, log *logrus.Entry) error {
	t0 := time.Now()
	if err := sauvola.Threshold(g, d.opts); err != nil {
		return fmt.Errorf("pipeline: threshold: %w", err)
	}
	log.WithFields(logrus.Fields{
		"stage":   "threshold",
		"radius":  d.opts.Radius,
		"k":       d.opts.K,
		"r":       d.opts.R,
		"method":  d.opts.Method.String(),
		"elapsed": time.Since(t0).String(),
	}).Debug("Stage done")

	return nil
}

func (d *Driver) count(g *grid.Grid, rep *Report, log *logrus.Entry) error {
	t0 := time.Now()
	l, err := components.Label(g)
	if err != nil {
		return fmt.Errorf("pipeline: label: %w", err)
	}
	rep.Components = l.Count()
	rep.Blobs = components.Summarize(l.Sizes)
	log.WithFields(logrus.Fields{
		"stage":       "label",
		"components":  rep.Components,
		"median_area": rep.Blobs.Median,
		"elapsed":     time.Since(t0).String(),
	}).Debug("Stage done")

	return nil
}

// persist writes g to path; failures are recorded, never returned.
func (d *Driver) persist(path string, g *grid.Grid, rep *Report, log *logrus.Entry) {
	if path == "" {
		return
	}
	if err := d.write(path, g); err != nil {
		rep.WriteErrors = append(rep.WriteErrors, err)
		log.WithError(err).WithField("path", path).Warn("Failed to write output")
		return
	}
	log.WithField("path", path).Debug("Output written")
}

func (d *Driver) crossCheck(g *grid.Grid, rep *Report, log *logrus.Entry) {
	if d.checker == nil {
		return
	}
	n, err := d.checker.CountComponents(g)
	if err != nil {
		log.WithError(err).Warn("Cross-check failed")
		return
	}
	rep.CrossCheck = &n
	if n != rep.Components {
		log.WithFields(logrus.Fields{
			"components":  rep.Components,
			"cross_check": n,
		}).Warn("Cross-check disagrees with flood fill")
	}
}
