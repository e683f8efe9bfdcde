package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/tomoris/dpseg/bayselm"
)

func main() {
	def := bayselm.DefaultConfig()
	var (
		flagAtoms         = flag.String("atoms", def.Atoms, "atoms of the segments: string (segment sentences into phrases) or char (segment lines into words)")
		flagConcentration = flag.Float64("concentration", def.Concentration, "concentration parameter of the DP")
		flagIterations    = flag.Int("iter", def.Iterations, "number of sampling iterations")
		flagDelimiter     = flag.String("delimiter", def.Delimiter, "string written after every output segment")
		flagJoiner        = flag.String("joiner", def.Joiner, "string written between the atoms of one output segment")
		flagOutput        = flag.String("out", def.OutputPath, "output file path")

		flagBase      = flag.String("base", def.Base, "base distribution: unigram or dirichlet")
		flagBasePrior = flag.Float64("basePrior", def.BasePrior, "smoothing prior of the base distribution")
		flagSeed      = flag.Uint64("seed", def.Seed, "seed of the random stream")

		flagSamples     = flag.Int("samples", def.Samples, "collect the seating every n-th iteration (0 disables)")
		flagSamplesPath = flag.String("samplesOut", def.SamplesPath, "write collected samples as JSON to this path")

		flagSampleAlpha = flag.Bool("sampleAlpha", def.SampleAlpha, "resample the concentration after every iteration")
		flagGammaA      = flag.Float64("gammaA", def.GammaA, "shape of the gamma prior on the concentration")
		flagGammaB      = flag.Float64("gammaB", def.GammaB, "rate of the gamma prior on the concentration")

		flagGold      = flag.String("gold", "", "gold segmentation for evaluation (defaults to the input file)")
		flagNoEval    = flag.Bool("noEval", false, "skip evaluation")
		flagProgress  = flag.Bool("progress", true, "show a progress bar")
		flagLogLevel  = flag.String("logLevel", "info", "log level: debug, info, warn or error")
		flagLogFormat = flag.String("logFormat", "text", "log format: text or json")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] inputFile\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	logger, err := newLogger(*flagLogLevel, *flagLogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := bayselm.Config{
		InputPath:     flag.Arg(0),
		Atoms:         strings.ToLower(*flagAtoms),
		Concentration: *flagConcentration,
		Iterations:    *flagIterations,
		Delimiter:     *flagDelimiter,
		Joiner:        *flagJoiner,
		OutputPath:    *flagOutput,
		Base:          *flagBase,
		BasePrior:     *flagBasePrior,
		Seed:          *flagSeed,
		Samples:       *flagSamples,
		SamplesPath:   *flagSamplesPath,
		SampleAlpha:   *flagSampleAlpha,
		GammaA:        *flagGammaA,
		GammaB:        *flagGammaB,
		GoldPath:      *flagGold,
		Progress:      *flagProgress,
	}
	if !*flagNoEval && cfg.GoldPath == "" {
		cfg.GoldPath = cfg.InputPath
	}
	if *flagNoEval {
		cfg.GoldPath = ""
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := bayselm.Run(ctx, cfg, logger)
	if err != nil {
		var ioErr *bayselm.IOError
		switch {
		case errors.As(err, &ioErr):
			logger.Error("i/o failure", "op", ioErr.Op, "path", ioErr.Path, "error", err)
		case errors.Is(err, context.Canceled):
			logger.Warn("interrupted", "error", err)
		default:
			logger.Error("segmentation failed", "error", err)
		}
		stop()
		os.Exit(1)
	}
	if result.Scores != nil {
		fmt.Println(result.Scores)
	}
	fmt.Println("Finished")
}

func newLogger(level string, format string) (*bayselm.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("unknown log level %q", level)
	}
	switch format {
	case "text":
		return bayselm.NewTextLogger(os.Stderr, lvl), nil
	case "json":
		return bayselm.NewJSONLogger(os.Stderr, lvl), nil
	}
	return nil, fmt.Errorf("unknown log format %q", format)
}
