package bayselm

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mathext/prng"
	"gonum.org/v1/gonum/stat/distuv"
)

// table holds one seated segment type and its number of customers.
type table struct {
	segment Segment
	count   int
}

// DP is a Dirichlet Process over segments in its Chinese restaurant form.
// Every seated segment type occupies one table; a table is removed as soon
// as its last customer leaves.
type DP struct {
	tables             map[string]*table // segment key to table
	totalCustomerCount int
	concentration      float64
	base               BaseDistribution
}

// NewDP returns an empty DP with concentration alpha over base.
func NewDP(alpha float64, base BaseDistribution) *DP {
	if alpha <= 0.0 {
		panic("range of alpha is 0.0 to inf")
	}
	if base == nil {
		panic("base distribution is nil")
	}
	return &DP{
		tables:        make(map[string]*table),
		concentration: alpha,
		base:          base,
	}
}

// SetBaseDistribution replaces the base distribution. It must be called
// before any observation is added.
func (dp *DP) SetBaseDistribution(base BaseDistribution) {
	if dp.totalCustomerCount != 0 {
		errMsg := fmt.Sprintf("base distribution replaced with %v seated customers", dp.totalCustomerCount)
		panic(&InvariantViolation{Op: "DP.SetBaseDistribution", Detail: errMsg})
	}
	dp.base = base
}

// SetSizeOfBaseSupport forwards the atom vocabulary size to the base distribution.
func (dp *DP) SetSizeOfBaseSupport(n int) {
	dp.base.SetSizeOfSupport(n)
}

// BaseDistribution returns the base distribution.
func (dp *DP) BaseDistribution() BaseDistribution {
	return dp.base
}

// Concentration returns alpha.
func (dp *DP) Concentration() float64 {
	return dp.concentration
}

// SetConcentration sets alpha.
func (dp *DP) SetConcentration(alpha float64) {
	if alpha <= 0.0 {
		panic("range of alpha is 0.0 to inf")
	}
	dp.concentration = alpha
}

// Count returns the number of customers seated with segment s.
func (dp *DP) Count(s Segment) int {
	tbl, ok := dp.tables[s.key]
	if !ok {
		return 0
	}
	return tbl.count
}

// Total returns the number of seated customers N.
func (dp *DP) Total() int {
	return dp.totalCustomerCount
}

// NumTypes returns the number of distinct seated segments.
func (dp *DP) NumTypes() int {
	return len(dp.tables)
}

// Probability returns the posterior predictive probability of s:
// (count(s) + alpha * base(s)) / (N + alpha).
func (dp *DP) Probability(s Segment) float64 {
	count := float64(dp.Count(s))
	return (count + dp.concentration*dp.base.Probability(s)) / (float64(dp.totalCustomerCount) + dp.concentration)
}

// LogProbability returns the natural log of Probability without
// exponentiating the base log probability.
func (dp *DP) LogProbability(s Segment) float64 {
	logNovel := math.Log(dp.concentration) + dp.base.LogProbability(s)
	logSeated := math.Inf(-1)
	if count := dp.Count(s); count > 0 {
		logSeated = math.Log(float64(count))
	}
	return floats.LogSumExp([]float64{logSeated, logNovel}) - math.Log(float64(dp.totalCustomerCount)+dp.concentration)
}

// AddObservation seats one customer with segment s.
func (dp *DP) AddObservation(s Segment) {
	tbl, ok := dp.tables[s.key]
	if !ok {
		tbl = &table{segment: s}
		dp.tables[s.key] = tbl
	}
	tbl.count++
	dp.totalCustomerCount++
	dp.base.Update(s, 1.0)
}

// RemoveObservation un-seats one customer with segment s. Removing a
// segment that is not seated panics with *InvariantViolation.
func (dp *DP) RemoveObservation(s Segment) {
	tbl, ok := dp.tables[s.key]
	if !ok || tbl.count <= 0 {
		errMsg := fmt.Sprintf("segment %v is not seated", s)
		panic(&InvariantViolation{Op: "DP.RemoveObservation", Detail: errMsg})
	}
	tbl.count--
	dp.totalCustomerCount--
	if tbl.count == 0 {
		delete(dp.tables, s.key)
	}
	dp.base.Update(s, -1.0)
}

// CurrentObservations returns a snapshot of the seating keyed by segments
// whose atoms are joined with sep.
func (dp *DP) CurrentObservations(sep string) *Counter[string] {
	snapshot := NewCounter[string]()
	for _, tbl := range dp.tables {
		snapshot.Add(tbl.segment.Join(sep), float64(tbl.count))
	}
	return snapshot
}

// ResampleConcentration draws alpha from its posterior under a
// Gamma(gammaA, gammaB) prior (shape, rate) with the auxiliary variable
// scheme of Escobar and West, and stores it. Each distinct seated segment
// counts as one table.
func (dp *DP) ResampleConcentration(gammaA float64, gammaB float64, src *prng.MT19937) float64 {
	n := float64(dp.totalCustomerCount)
	k := float64(len(dp.tables))
	if n < 1.0 {
		return dp.concentration
	}
	betaDist := distuv.Beta{Alpha: dp.concentration + 1.0, Beta: n, Src: src}
	eta := betaDist.Rand()
	rate := gammaB - math.Log(eta)

	shape := gammaA + k
	odds := (gammaA + k - 1.0) / (n * rate)
	bernoulliDist := distuv.Bernoulli{P: odds / (1.0 + odds), Src: src}
	if bernoulliDist.Rand() == 0.0 && shape-1.0 > 0.0 {
		shape -= 1.0
	}
	gammaDist := distuv.Gamma{Alpha: shape, Beta: rate, Src: src}
	alpha := gammaDist.Rand()
	if alpha <= 0.0 || math.IsNaN(alpha) {
		panic("concentration estimation error")
	}
	dp.concentration = alpha
	return alpha
}
