package bayselm

import (
	"context"
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distuv"
)

// Segmenter segments every sequence of a corpus into segments drawn from
// one shared DP. It visits internal positions left to right and proposes
// a split or a merge at each of them.
//
// A Segmenter is not safe for concurrent use.
type Segmenter struct {
	dp         *DP
	corpus     [][]string
	boundaries [][]int

	src     *prng.MT19937
	uniform distuv.Uniform

	samples     *Counter[string]
	iteration   int
	initialized bool
	opts        options
}

// NewSegmenter returns a Segmenter whose DP has concentration alpha.
func NewSegmenter(alpha float64, optFns ...Option) (*Segmenter, error) {
	if !(alpha > 0.0) {
		return nil, &ConfigError{Field: "concentration", Value: alpha, cause: ErrInvalidConcentration}
	}
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.resampleAlpha && !(opts.gammaA > 0.0 && opts.gammaB > 0.0) {
		return nil, &ConfigError{Field: "gamma prior", Value: [2]float64{opts.gammaA, opts.gammaB}, cause: ErrInvalidConcentration}
	}
	base := opts.base
	if base == nil {
		base = NewUnigramBase(1.0)
	}

	src := prng.NewMT19937()
	src.Seed(opts.seed)
	return &Segmenter{
		dp:      NewDP(alpha, base),
		src:     src,
		uniform: distuv.Uniform{Min: 0.0, Max: 1.0, Src: src},
		samples: NewCounter[string](),
		opts:    opts,
	}, nil
}

// DP returns the underlying Dirichlet Process.
func (seg *Segmenter) DP() *DP {
	return seg.dp
}

// Iteration returns the number of completed sampling passes.
func (seg *Segmenter) Iteration() int {
	return seg.iteration
}

// Initialize seats one segment spanning each non-empty sequence. The corpus
// must not be modified afterwards.
func (seg *Segmenter) Initialize(ctx context.Context, corpus [][]string) {
	if seg.initialized {
		panic(&InvariantViolation{Op: "Segmenter.Initialize", Detail: "segmenter is already initialized"})
	}
	unique := make(map[string]struct{})
	atoms := 0
	for _, sent := range corpus {
		for _, atom := range sent {
			unique[atom] = struct{}{}
		}
		atoms += len(sent)
	}
	seg.dp.SetSizeOfBaseSupport(len(unique))

	seg.corpus = corpus
	seg.boundaries = make([][]int, len(corpus))
	for i, sent := range corpus {
		if len(sent) == 0 {
			continue
		}
		seg.dp.AddObservation(span(sent, 0, len(sent)))
		seg.boundaries[i] = []int{len(sent)}
	}
	seg.initialized = true
	seg.opts.logger.LogInitialize(ctx, len(corpus), atoms, len(unique))
}

// Train runs iter sampling passes. ctx is checked between passes, so a
// cancelled run always leaves a consistent seating.
func (seg *Segmenter) Train(ctx context.Context, iter int) error {
	if !seg.initialized {
		return ErrNotInitialized
	}
	if iter < 0 {
		return &ConfigError{Field: "iterations", Value: iter, cause: ErrInvalidIterations}
	}
	var bar *pb.ProgressBar
	if seg.opts.progress {
		bar = pb.StartNew(iter)
	}
	var err error
	done := 0
	for ; done < iter; done++ {
		if err = ctx.Err(); err != nil {
			break
		}
		seg.TrainIteration(ctx)
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	seg.opts.logger.LogTrain(ctx, done, seg.dp, err)
	return err
}

// TrainIteration runs one sampling pass over every sequence in corpus order.
func (seg *Segmenter) TrainIteration(ctx context.Context) {
	if !seg.initialized {
		panic(&InvariantViolation{Op: "Segmenter.TrainIteration", Detail: ErrNotInitialized.Error()})
	}
	splits, merges := 0, 0
	for i, sent := range seg.corpus {
		var s, m int
		seg.boundaries[i], s, m = seg.sampleBoundaries(sent, seg.boundaries[i])
		splits += s
		merges += m
	}
	seg.iteration++

	if seg.opts.resampleAlpha {
		seg.dp.ResampleConcentration(seg.opts.gammaA, seg.opts.gammaB, seg.src)
	}
	if seg.opts.sampleInterval > 0 && seg.iteration%seg.opts.sampleInterval == 0 {
		seg.samples.Merge(seg.dp.CurrentObservations(seg.opts.sampleSep))
	}
	seg.opts.logger.LogIteration(ctx, seg.iteration, seg.dp, splits, merges)
}

// sampleBoundaries resamples the boundaries of one sequence and returns
// the new boundary vector with the number of accepted splits and merges.
func (seg *Segmenter) sampleBoundaries(sent []string, boundaries []int) ([]int, int, int) {
	// do nothing if the sequence has at most one atom
	if len(sent) <= 1 {
		return boundaries, 0, 0
	}

	splits, merges := 0, 0
	newBoundaries := make([]int, 0, len(boundaries)+1)
	prevBoundary := 0
	nextBoundary := boundaries[0]
	boundaryNum := 1
	currentSegment := span(sent, 0, nextBoundary)
	currentSegmentProb := seg.dp.Probability(currentSegment)

	for i := 1; i < len(sent); i++ {
		if i != nextBoundary {
			firstSegment := span(sent, prevBoundary, i)
			secondSegment := span(sent, i, nextBoundary)
			splitProb := seg.dp.Probability(firstSegment) + seg.dp.Probability(secondSegment)
			if splitProb >= seg.uniform.Rand()*(splitProb+currentSegmentProb) {
				newBoundaries = append(newBoundaries, i)
				seg.dp.AddObservation(firstSegment)
				seg.dp.AddObservation(secondSegment)
				seg.dp.RemoveObservation(currentSegment)
				currentSegment = secondSegment
				currentSegmentProb = seg.dp.Probability(secondSegment)
				prevBoundary = i
				splits++
			}
			continue
		}

		if boundaryNum >= len(boundaries) {
			errMsg := fmt.Sprintf("boundary vector %v ends before sequence length %v", boundaries, len(sent))
			panic(&InvariantViolation{Op: "Segmenter.sampleBoundaries", Detail: errMsg})
		}
		nextBoundary = boundaries[boundaryNum]
		boundaryNum++
		// currentSegmentProb is the probability of the first segment here
		secondSegment := span(sent, i, nextBoundary)
		expandedSegment := currentSegment.Compose(secondSegment)
		secondSegmentProb := seg.dp.Probability(secondSegment)
		splitProb := currentSegmentProb + secondSegmentProb
		expandProb := seg.dp.Probability(expandedSegment)
		if expandProb >= seg.uniform.Rand()*(splitProb+expandProb) {
			seg.dp.RemoveObservation(currentSegment)
			seg.dp.RemoveObservation(secondSegment)
			seg.dp.AddObservation(expandedSegment)
			currentSegment = expandedSegment
			currentSegmentProb = expandProb
			merges++
		} else {
			prevBoundary = i
			newBoundaries = append(newBoundaries, i)
			currentSegment = secondSegment
			currentSegmentProb = secondSegmentProb
		}
	}
	// make sure the sequence end is always included
	newBoundaries = append(newBoundaries, len(sent))
	return newBoundaries, splits, merges
}

// Corpus returns the corpus the segmenter was initialized with.
func (seg *Segmenter) Corpus() [][]string {
	return seg.corpus
}

// Boundaries returns a copy of the boundary vector of every sequence.
// Empty sequences have a nil vector.
func (seg *Segmenter) Boundaries() [][]int {
	out := make([][]int, len(seg.boundaries))
	for i, b := range seg.boundaries {
		if b == nil {
			continue
		}
		out[i] = append([]int(nil), b...)
	}
	return out
}

// Segments returns the current segments of the i-th sequence.
func (seg *Segmenter) Segments(i int) []Segment {
	sent := seg.corpus[i]
	segments := make([]Segment, 0, len(seg.boundaries[i]))
	start := 0
	for _, end := range seg.boundaries[i] {
		segments = append(segments, span(sent, start, end))
		start = end
	}
	return segments
}

// Samples returns the seating accumulated every sample interval.
func (seg *Segmenter) Samples() *Counter[string] {
	return seg.samples
}

// Check verifies that exactly one segment is seated per current segment of
// the corpus.
func (seg *Segmenter) Check() error {
	expected := NewCounter[string]()
	segments := 0
	for i := range seg.corpus {
		for _, s := range seg.Segments(i) {
			expected.Add(s.key, 1.0)
			segments++
		}
	}
	if segments != seg.dp.Total() {
		return fmt.Errorf("seating mismatch: %d segments in boundary vectors, %d seated", segments, seg.dp.Total())
	}
	if expected.Len() != seg.dp.NumTypes() {
		return fmt.Errorf("seating mismatch: %d segment types in boundary vectors, %d seated", expected.Len(), seg.dp.NumTypes())
	}
	for key, tbl := range seg.dp.tables {
		if int(expected.Get(key)) != tbl.count {
			return fmt.Errorf("seating mismatch: segment %v seated %d times, %d in boundary vectors", tbl.segment, tbl.count, int(expected.Get(key)))
		}
	}
	return nil
}
