package bayselm

import "math"

// Config holds every setting of a segmentation run.
type Config struct {
	InputPath     string
	Atoms         string  // "string" or "char"
	Concentration float64 // alpha of the DP
	Iterations    int
	Delimiter     string // written after every segment
	Joiner        string // written between atoms of one segment, set it for string atoms to keep words apart
	OutputPath    string

	Base      string // "unigram" or "dirichlet"
	BasePrior float64
	Seed      uint64

	Samples     int    // collect the seating every Samples-th iteration, 0 disables
	SamplesPath string // JSON export of the collected samples, empty disables

	SampleAlpha bool
	GammaA      float64
	GammaB      float64

	GoldPath string // evaluate against this file, empty disables
	Progress bool
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		Atoms:         "string",
		Concentration: 1.0,
		Iterations:    100,
		Delimiter:     " ",
		OutputPath:    "out.txt",
		Base:          "unigram",
		BasePrior:     1.0,
		Seed:          5489,
		GammaA:        1.0,
		GammaB:        1.0,
	}
}

// Validate reports the first invalid setting.
func (cfg Config) Validate() error {
	if cfg.InputPath == "" {
		return ErrMissingInput
	}
	if _, err := ParseAtomMode(cfg.Atoms); err != nil {
		return err
	}
	if !(cfg.Concentration > 0.0) || math.IsInf(cfg.Concentration, 1) {
		return &ConfigError{Field: "concentration", Value: cfg.Concentration, cause: ErrInvalidConcentration}
	}
	if cfg.Iterations < 0 {
		return &ConfigError{Field: "iterations", Value: cfg.Iterations, cause: ErrInvalidIterations}
	}
	switch cfg.Base {
	case "unigram", "dirichlet":
	default:
		return &ConfigError{Field: "base", Value: cfg.Base, cause: ErrUnknownBaseDistribution}
	}
	if !(cfg.BasePrior > 0.0) {
		return &ConfigError{Field: "base prior", Value: cfg.BasePrior, cause: ErrInvalidConcentration}
	}
	if cfg.SampleAlpha && !(cfg.GammaA > 0.0 && cfg.GammaB > 0.0) {
		return &ConfigError{Field: "gamma prior", Value: [2]float64{cfg.GammaA, cfg.GammaB}, cause: ErrInvalidConcentration}
	}
	if cfg.OutputPath == "" {
		return ErrMissingOutput
	}
	return nil
}
