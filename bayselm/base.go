package bayselm

import (
	"fmt"
	"math"
)

// BaseDistribution is the prior over segments used by a DP to score
// segments it has not seated yet.
type BaseDistribution interface {
	Probability(s Segment) float64
	LogProbability(s Segment) float64
	// Update adds count (possibly negative) evidence for every atom of s.
	Update(s Segment, count float64)
	// SetSizeOfSupport registers the number of distinct atoms.
	SetSizeOfSupport(n int)
}

// UnigramBase scores a segment as the product of smoothed unigram
// probabilities of its atoms.
//
// An atom observed for the first time is stored with the smoothing prior
// added to its count, so that every atom keeps a positive mass.
type UnigramBase struct {
	pseudoCounts  *Counter[string]
	total         float64
	sizeOfSupport int
	prior         float64

	// ratios memoizes score/total for the current total.
	ratios     map[float64]float64
	ratioTotal float64
}

// NewUnigramBase returns a UnigramBase with smoothing prior prior.
func NewUnigramBase(prior float64) *UnigramBase {
	if prior <= 0.0 {
		panic("range of prior is 0.0 to inf")
	}
	return &UnigramBase{
		pseudoCounts: NewCounter[string](),
		prior:        prior,
		ratios:       make(map[float64]float64),
	}
}

func (base *UnigramBase) ratio(score float64) float64 {
	if base.ratioTotal != base.total {
		clear(base.ratios)
		base.ratioTotal = base.total
	}
	r, ok := base.ratios[score]
	if !ok {
		r = score / base.total
		base.ratios[score] = r
	}
	return r
}

func (base *UnigramBase) score(atom string) float64 {
	score := base.pseudoCounts.Get(atom)
	if score <= 0.0 {
		return base.prior
	}
	return score
}

func (base *UnigramBase) checkSupport(op string, s Segment) {
	if base.total <= 0.0 {
		errMsg := fmt.Sprintf("atoms of segment %v are not registered (total mass %v)", s, base.total)
		panic(&InvariantViolation{Op: op, Detail: errMsg})
	}
}

// Probability returns the product of the atoms' smoothed probabilities.
// It panics if no support is registered. An atom outside a registered
// support is not detected and scores prior/total.
func (base *UnigramBase) Probability(s Segment) float64 {
	base.checkSupport("UnigramBase.Probability", s)
	p := 1.0
	for _, atom := range s.atoms {
		p *= base.ratio(base.score(atom))
	}
	return p
}

// LogProbability returns the natural log of Probability.
func (base *UnigramBase) LogProbability(s Segment) float64 {
	base.checkSupport("UnigramBase.LogProbability", s)
	logP := 0.0
	for _, atom := range s.atoms {
		logP += math.Log(base.ratio(base.score(atom)))
	}
	return logP
}

// Update adds count to the pseudo-count of every atom of s.
func (base *UnigramBase) Update(s Segment, count float64) {
	for _, atom := range s.atoms {
		base.total += count
		c := count
		if !base.pseudoCounts.Contains(atom) {
			c += base.prior
		}
		base.pseudoCounts.Add(atom, c)
	}
}

// SetSizeOfSupport shifts the normalizer by the prior mass of the new atoms.
func (base *UnigramBase) SetSizeOfSupport(n int) {
	base.total += float64(n-base.sizeOfSupport) * base.prior
	base.sizeOfSupport = n
}

// SizeOfSupport returns the registered number of distinct atoms.
func (base *UnigramBase) SizeOfSupport() int {
	return base.sizeOfSupport
}

// Total returns the running normalizer.
func (base *UnigramBase) Total() float64 {
	return base.total
}

// Prior returns the smoothing prior.
func (base *UnigramBase) Prior() float64 {
	return base.prior
}

// DirichletBase is the Dirichlet-multinomial predictive distribution over
// atoms: p(a) = (count(a) + prior) / (N + K*prior).
type DirichletBase struct {
	counts        *Counter[string]
	sizeOfSupport int
	prior         float64
}

// NewDirichletBase returns a DirichletBase with symmetric prior prior.
func NewDirichletBase(prior float64) *DirichletBase {
	if prior <= 0.0 {
		panic("range of prior is 0.0 to inf")
	}
	return &DirichletBase{counts: NewCounter[string](), prior: prior}
}

func (base *DirichletBase) denominator(op string, s Segment) float64 {
	d := base.counts.Total() + float64(base.sizeOfSupport)*base.prior
	if base.sizeOfSupport <= 0 || d <= 0.0 {
		errMsg := fmt.Sprintf("atoms of segment %v are not registered (support %v)", s, base.sizeOfSupport)
		panic(&InvariantViolation{Op: op, Detail: errMsg})
	}
	return d
}

// Probability returns the predictive probability of the atoms of s.
func (base *DirichletBase) Probability(s Segment) float64 {
	d := base.denominator("DirichletBase.Probability", s)
	p := 1.0
	for _, atom := range s.atoms {
		p *= (base.counts.Get(atom) + base.prior) / d
	}
	return p
}

// LogProbability returns the natural log of Probability.
func (base *DirichletBase) LogProbability(s Segment) float64 {
	logD := math.Log(base.denominator("DirichletBase.LogProbability", s))
	logP := 0.0
	for _, atom := range s.atoms {
		logP += math.Log(base.counts.Get(atom)+base.prior) - logD
	}
	return logP
}

// Update adds count to every atom of s.
func (base *DirichletBase) Update(s Segment, count float64) {
	for _, atom := range s.atoms {
		base.counts.Add(atom, count)
	}
}

// SetSizeOfSupport sets the number of distinct atoms K.
func (base *DirichletBase) SetSizeOfSupport(n int) {
	base.sizeOfSupport = n
}
