package bayselm

import (
	"context"
	"fmt"
)

// GenerateBaseDistribution returns the base distribution registered under
// baseName with smoothing prior prior.
func GenerateBaseDistribution(baseName string, prior float64) (BaseDistribution, bool) {
	var base BaseDistribution
	ok := false
	switch baseName {
	case "unigram":
		base = NewUnigramBase(prior)
		ok = true
	case "dirichlet":
		base = NewDirichletBase(prior)
		ok = true
	}
	return base, ok
}

// Result is the outcome of Run.
type Result struct {
	Segmenter *Segmenter
	Data      *DataContainer
	Scores    *Scores // nil unless a gold file was configured
}

// Run reads the corpus, trains a segmenter and writes its output as
// described by cfg.
func Run(ctx context.Context, cfg Config, logger *Logger) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = NoopLogger()
	}
	mode, _ := ParseAtomMode(cfg.Atoms)
	base, _ := GenerateBaseDistribution(cfg.Base, cfg.BasePrior)

	dataContainer, err := NewDataContainer(cfg.InputPath, mode)
	if err != nil {
		return nil, err
	}

	optFns := []Option{
		WithSeed(cfg.Seed),
		WithLogger(logger),
		WithProgressBar(cfg.Progress),
		WithBaseDistribution(base),
		WithSampleInterval(cfg.Samples, cfg.Delimiter),
	}
	if cfg.SampleAlpha {
		optFns = append(optFns, WithConcentrationResampling(cfg.GammaA, cfg.GammaB))
	}
	segmenter, err := NewSegmenter(cfg.Concentration, optFns...)
	if err != nil {
		return nil, err
	}
	segmenter.Initialize(ctx, dataContainer.Sents)
	if err := segmenter.Train(ctx, cfg.Iterations); err != nil {
		return nil, err
	}

	if err := SaveSegmentation(cfg.OutputPath, dataContainer.Sents, segmenter.Boundaries(), cfg.Delimiter, cfg.Joiner); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "segmentation saved", "path", cfg.OutputPath)

	if cfg.SamplesPath != "" {
		if err := segmenter.SaveSamples(cfg.SamplesPath, "indent"); err != nil {
			return nil, err
		}
		logger.InfoContext(ctx, "samples saved", "path", cfg.SamplesPath)
	}

	result := &Result{Segmenter: segmenter, Data: dataContainer}
	if cfg.GoldPath != "" {
		scores, err := EvaluateFiles(cfg.GoldPath, cfg.OutputPath, cfg.Delimiter)
		if err != nil {
			return nil, fmt.Errorf("evaluation: %w", err)
		}
		result.Scores = &scores
	}
	return result, nil
}
