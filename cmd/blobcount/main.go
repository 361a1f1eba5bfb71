// Command blobcount counts dark blobs (beans) in a plain-text PGM scan.
//
// Usage:
//
//	blobcount [flags] <image.pgm>
//
// The count is printed to stdout as "#components= N"; logs go to stderr.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/katalvlaran/blobcount/cvcheck"
	"github.com/katalvlaran/blobcount/pipeline"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

var errUsage = errors.New("usage error")

// options is the parsed command line.
type options struct {
	input string
	debug bool
	cfg   pipeline.Config
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		if errors.Is(err, errUsage) {
			return exitUsage
		}
		fmt.Fprintln(stderr, "blobcount:", err)
		return exitFailure
	}

	logger := initLogger(opts.debug, stderr)
	logger.WithFields(logrus.Fields{
		"input":  opts.input,
		"order":  string(opts.cfg.Order),
		"method": opts.cfg.Method,
	}).Debug("Starting blobcount")

	var driverOpts []pipeline.Option
	if opts.cfg.CrossCheck {
		driverOpts = append(driverOpts, pipeline.WithChecker(cvcheck.New()))
	}
	d, err := pipeline.New(opts.cfg, logger, driverOpts...)
	if err != nil {
		logger.WithError(err).Error("Invalid configuration")
		return exitFailure
	}

	rep, err := d.RunFile(opts.input)
	if err != nil {
		logger.WithError(err).WithField("input", opts.input).Error("Counting failed")
		return exitFailure
	}

	fmt.Fprintf(stdout, "#components= %d\n", rep.Components)
	return exitOK
}

// parseArgs merges defaults, an optional config file and explicitly set
// flags, in that order of precedence.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	def := pipeline.DefaultConfig()

	fs := flag.NewFlagSet("blobcount", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: blobcount [flags] <image.pgm>")
		fs.PrintDefaults()
	}

	configPath := fs.String("config", "", "JSON tuning file")
	radius := fs.Int("radius", def.Radius, "Sauvola window radius")
	k := fs.Float64("k", def.K, "Sauvola k")
	r := fs.Float64("r", def.R, "Sauvola dynamic range R")
	method := fs.String("method", def.Method, "threshold method: integral|naive")
	order := fs.String("order", string(def.Order), "stage order: legacy|threshold-first")
	relabeled := fs.String("relabeled", def.RelabeledPath, "output path after propagation (empty to skip)")
	binary := fs.String("binary", def.BinaryPath, "output path after thresholding (empty to skip)")
	crossCheck := fs.Bool("crosscheck", def.CrossCheck, "recount with OpenCV and warn on disagreement")
	debug := fs.Bool("debug", false, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		// the flag set has already printed the error and usage
		return options{}, fmt.Errorf("%w: %w", errUsage, err)
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return options{}, errUsage
	}

	cfg := def
	if *configPath != "" {
		loaded, err := pipeline.LoadConfig(*configPath)
		if err != nil {
			return options{}, err
		}
		cfg = loaded
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "radius":
			cfg.Radius = *radius
		case "k":
			cfg.K = *k
		case "r":
			cfg.R = *r
		case "method":
			cfg.Method = *method
		case "order":
			cfg.Order = pipeline.Order(*order)
		case "relabeled":
			cfg.RelabeledPath = *relabeled
		case "binary":
			cfg.BinaryPath = *binary
		case "crosscheck":
			cfg.CrossCheck = *crossCheck
		}
	})

	return options{input: fs.Arg(0), debug: *debug, cfg: cfg}, nil
}

// initLogger initializes the logger with appropriate level
func initLogger(debugMode bool, out io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(out)

	if debugMode {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
		logger.Debug("Debug logging enabled")
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	return logger
}
