// Command plate-detect finds the licence plate in a vehicle photo and writes
// a copy of the photo with the plate outlined.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/plate-locator/internal/config"
	"github.com/ironsheep/plate-locator/internal/imaging"
	"github.com/ironsheep/plate-locator/internal/plate"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses args, processes one image and returns the exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("plate-detect", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: plate-detect [options] <input> [output]")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Locates the licence plate in <input> and writes a copy with the plate")
		fmt.Fprintln(stderr, "outlined to [output], or to <output.dir>/<name>_output.png.")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Environment variables:")
		fmt.Fprintf(stderr, "  %s=debug    Enable debug logging\n", config.LogLevelEnv)
	}

	configPath := fs.String("config", "", "YAML config file")
	debugDir := fs.String("debug-dir", "", "write every pipeline stage as PNG into this directory")
	boxColor := fs.String("color", "", "box outline colour as #RRGGBB (overrides config)")
	debug := fs.Bool("debug", false, "enable debug logging")
	var showVersion bool
	fs.BoolVar(&showVersion, "version", false, "print version information")
	fs.BoolVar(&showVersion, "v", false, "print version information (shorthand)")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if showVersion {
		fmt.Fprintf(stdout, "plate-detect %s\n", Version)
		fmt.Fprintf(stdout, "  Build time: %s\n", BuildTime)
		fmt.Fprintf(stdout, "  Git commit: %s\n", GitCommit)
		return 0
	}

	if fs.NArg() < 1 || fs.NArg() > 2 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "plate-detect: %v\n", err)
		return 1
	}
	if *debug {
		cfg.LogLevel = logrus.DebugLevel.String()
	}
	if *boxColor != "" {
		cfg.Output.BoxColor = *boxColor
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "plate-detect: %v\n", err)
		return 1
	}

	logger := cfg.Logger()
	logger.SetOutput(stderr)

	input := fs.Arg(0)
	output := cfg.OutputPath(input)
	if fs.NArg() == 2 {
		output = fs.Arg(1)
	}

	result, err := process(cfg, logger, input, output, *debugDir)
	if err != nil {
		logger.WithError(err).WithField("input", input).Error("detection failed")
		return 1
	}

	if result.Found {
		b := result.Box
		fmt.Fprintf(stdout, "plate found: (%d,%d)-(%d,%d) aspect %.2f\n",
			b.MinX, b.MinY, b.MaxX, b.MaxY, b.AspectRatio())
	} else {
		fmt.Fprintln(stdout, "no plate found")
	}
	fmt.Fprintf(stdout, "wrote %s\n", output)
	return 0
}

// process runs detection on input and writes the annotated copy to output.
// With debugDir set every intermediate stage is saved there as well.
func process(cfg *config.Config, logger *logrus.Logger, input, output, debugDir string) (*plate.DetectionResult, error) {
	params, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	detector, err := plate.NewDetector(params, logger)
	if err != nil {
		return nil, err
	}

	img, err := imaging.NewImageCache().Load(input)
	if err != nil {
		return nil, err
	}

	r, g, b := imaging.SplitChannels(img)
	result, stages, err := detector.DetectWithStages(r, g, b)
	if err != nil {
		return nil, err
	}

	if debugDir != "" {
		base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		paths, err := imaging.SaveStages(debugDir, base, stages)
		if err != nil {
			return nil, err
		}
		logger.WithField("files", len(paths)).Debug("saved pipeline stages")
	}

	annotated, err := imaging.Annotate(img, result, cfg.Output.BoxColor, cfg.Output.LineWidth)
	if err != nil {
		return nil, err
	}
	if err := imaging.SaveImage(annotated, output); err != nil {
		return nil, err
	}
	return result, nil
}
