package bayselm

type options struct {
	seed           uint64
	logger         *Logger
	progress       bool
	base           BaseDistribution
	sampleInterval int
	sampleSep      string
	resampleAlpha  bool
	gammaA         float64
	gammaB         float64
}

func defaultOptions() options {
	return options{
		seed:      5489, // MT19937 reference seed
		logger:    NoopLogger(),
		sampleSep: " ",
		gammaA:    1.0,
		gammaB:    1.0,
	}
}

// Option configures a Segmenter.
type Option func(*options)

// WithSeed seeds the random stream. The same seed, corpus and options
// reproduce the same segmentation.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		o.seed = seed
	}
}

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithProgressBar shows a progress bar over training iterations.
func WithProgressBar(enabled bool) Option {
	return func(o *options) {
		o.progress = enabled
	}
}

// WithBaseDistribution sets the base distribution of the DP.
// The default is NewUnigramBase(1.0).
func WithBaseDistribution(base BaseDistribution) Option {
	return func(o *options) {
		o.base = base
	}
}

// WithSampleInterval collects the seating every interval-th iteration.
// Segments in the collected samples are rendered with their atoms joined by sep.
// interval <= 0 disables collection.
func WithSampleInterval(interval int, sep string) Option {
	return func(o *options) {
		o.sampleInterval = interval
		o.sampleSep = sep
	}
}

// WithConcentrationResampling resamples alpha after every iteration under a
// Gamma(shape, rate) prior. Alpha stays fixed otherwise.
func WithConcentrationResampling(shape, rate float64) Option {
	return func(o *options) {
		o.resampleAlpha = true
		o.gammaA = shape
		o.gammaB = rate
	}
}
