package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/ironsheep/rpad/internal/border"
	"github.com/ironsheep/rpad/internal/config"
	"github.com/ironsheep/rpad/internal/imaging"
	"github.com/ironsheep/rpad/internal/logger"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	errUsage      = errors.New("wrong number of arguments")
	errNotPadding = errors.New("not an unsigned 32-bit integer")
)

const usage = `Replace uneven padding with unified one.

Usage:  rpad <input> [output] [size]

input   (required) path to input image
output  (optional) path to output directory, default from RPAD_OUTPUT_DIR or ~
size    (optional) padding size in pixels, default from RPAD_PADDING or 30,
        at most RPAD_MAX_PADDING or 4096

Options:
  --version, -v    Print version information
  --help, -h       Print this help message

Environment variables (also read from .env and rpad.yaml):
  RPAD_PADDING, RPAD_MAX_PADDING, RPAD_OUTPUT_DIR, RPAD_LOG_LEVEL, RPAD_LOG_FORMAT`

// options is one resolved invocation.
type options struct {
	input     string
	outputDir string
	padding   int
}

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("rpad %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println(usage)
			return
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := logger.Configure(cfg.LogLevel, cfg.LogFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := run(os.Args[1:], cfg); err != nil {
		if errors.Is(err, errUsage) {
			fmt.Println(usage)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// parseArgs resolves positional arguments against the configured defaults.
//
// With two arguments the second is the padding if it parses as a
// non-negative integer and the output directory otherwise.
func parseArgs(args []string, cfg *config.Config) (*options, error) {
	opts := &options{outputDir: cfg.OutputDir, padding: cfg.Padding}

	switch len(args) {
	case 1:
		opts.input = args[0]
		logDefaultPadding(opts)
		logDefaultOutput(opts)
	case 2:
		opts.input = args[0]
		p, err := parsePadding(args[1], cfg)
		switch {
		case err == nil:
			opts.padding = p
			logDefaultOutput(opts)
		case errors.Is(err, errNotPadding):
			opts.outputDir = args[1]
			logDefaultPadding(opts)
		default:
			return nil, err
		}
	case 3:
		opts.input = args[0]
		opts.outputDir = args[1]
		p, err := parsePadding(args[2], cfg)
		if err != nil {
			return nil, err
		}
		opts.padding = p
	default:
		return nil, errUsage
	}
	return opts, nil
}

// parsePadding accepts any unsigned 32-bit integer as padding syntax; values
// above the configured limit are rejected with config.ErrPaddingOutOfRange.
func parsePadding(s string, cfg *config.Config) (int, error) {
	p, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid padding %q: %w", s, errNotPadding)
	}
	if limit := cfg.PaddingLimit(); p > uint64(limit) {
		return 0, fmt.Errorf("padding %d: %w (allowed 0..%d)", p, config.ErrPaddingOutOfRange, limit)
	}
	return int(p), nil
}

func logDefaultPadding(opts *options) {
	logger.Logger.Infof("Using default padding %d px", opts.padding)
}

func logDefaultOutput(opts *options) {
	logger.Logger.Infof("Using default output path %s", opts.outputDir)
}

// run validates the destination, then loads, normalizes and saves the image.
func run(args []string, cfg *config.Config) error {
	opts, err := parseArgs(args, cfg)
	if err != nil {
		return err
	}

	if err := imaging.CheckOutputDir(opts.outputDir); err != nil {
		return err
	}
	outPath := imaging.OutputPath(opts.input, opts.outputDir)
	if err := imaging.CheckOutputFormat(outPath); err != nil {
		return err
	}

	img, err := imaging.Decode(opts.input)
	if err != nil {
		return err
	}

	if err := border.CheckSize(img.Bounds(), opts.padding); err != nil {
		return err
	}

	padded, _ := border.Normalize(img, opts.padding)

	if err := imaging.Save(padded, outPath); err != nil {
		return err
	}
	logger.Logger.Infof("Saved the result as %s", outPath)
	return nil
}
