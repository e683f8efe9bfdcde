package bayselm

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func seg(atoms ...string) Segment {
	return NewSegment(atoms)
}

func TestUnigramBase(t *testing.T) {
	t.Run("SupportOnly", func(t *testing.T) {
		base := NewUnigramBase(1.0)
		base.SetSizeOfSupport(4)
		assert.Equal(t, 4.0, base.Total())
		assert.Equal(t, 0.25, base.Probability(seg("a")))
		assert.Equal(t, 0.0625, base.Probability(seg("a", "b")))
	})

	t.Run("FirstObservationAddsPrior", func(t *testing.T) {
		base := NewUnigramBase(1.0)
		base.SetSizeOfSupport(3)
		base.Update(seg("a", "b"), 1.0)

		// total = support * prior + observed atoms
		assert.Equal(t, 5.0, base.Total())
		assert.Equal(t, 0.4, base.Probability(seg("a")))
		assert.Equal(t, 0.2, base.Probability(seg("c")))
		sum := base.Probability(seg("a")) + base.Probability(seg("b")) + base.Probability(seg("c"))
		assert.InDelta(t, 1.0, sum, 1e-12)

		base.Update(seg("a"), 1.0)
		assert.Equal(t, 6.0, base.Total())
		assert.Equal(t, 0.5, base.Probability(seg("a")))
	})

	t.Run("UpdateIsReversible", func(t *testing.T) {
		base := NewUnigramBase(1.0)
		base.SetSizeOfSupport(3)
		before := base.Probability(seg("a", "b"))

		base.Update(seg("a", "b", "a"), 1.0)
		assert.NotEqual(t, before, base.Probability(seg("a", "b")))
		base.Update(seg("a", "b", "a"), -1.0)
		assert.Equal(t, 3.0, base.Total())
		assert.Equal(t, before, base.Probability(seg("a", "b")))
	})

	t.Run("ResizeSupport", func(t *testing.T) {
		base := NewUnigramBase(0.5)
		base.SetSizeOfSupport(2)
		base.Update(seg("a"), 1.0)
		assert.Equal(t, 2.0, base.Total())

		base.SetSizeOfSupport(6)
		assert.Equal(t, 4.0, base.Total())
		assert.Equal(t, 6, base.SizeOfSupport())
		assert.Equal(t, 1.5/4.0, base.Probability(seg("a")))
	})

	t.Run("LogProbability", func(t *testing.T) {
		base := NewUnigramBase(1.0)
		base.SetSizeOfSupport(10)
		base.Update(seg("x", "y", "x"), 1.0)
		s := seg("x", "y", "z", "x")
		assert.InDelta(t, math.Log(base.Probability(s)), base.LogProbability(s), 1e-12)

		long := make([]string, 2000)
		for i := range long {
			long[i] = "z"
		}
		// the product underflows, the log does not
		assert.Equal(t, 0.0, base.Probability(NewSegment(long)))
		assert.False(t, math.IsInf(base.LogProbability(NewSegment(long)), -1))
	})

	t.Run("UnregisteredPanics", func(t *testing.T) {
		base := NewUnigramBase(1.0)
		assertInvariantViolation(t, func() { base.Probability(seg("a")) })
	})

	t.Run("AtomOutsideSupportScoresPrior", func(t *testing.T) {
		base := NewUnigramBase(1.0)
		base.SetSizeOfSupport(2)
		base.Update(seg("a", "b"), 1.0)
		assert.Equal(t, 0.25, base.Probability(seg("q")))
	})
}

func TestDirichletBase(t *testing.T) {
	base := NewDirichletBase(1.0)
	base.SetSizeOfSupport(2)
	assert.Equal(t, 0.5, base.Probability(seg("a")))

	base.Update(seg("a"), 1.0)
	assert.InDelta(t, 2.0/3.0, base.Probability(seg("a")), 1e-12)
	assert.InDelta(t, 1.0/3.0, base.Probability(seg("b")), 1e-12)
	assert.InDelta(t, math.Log(2.0/9.0), base.LogProbability(seg("a", "b")), 1e-12)

	base.Update(seg("a"), -1.0)
	assert.Equal(t, 0.5, base.Probability(seg("a")))

	assertInvariantViolation(t, func() { NewDirichletBase(1.0).Probability(seg("a")) })
}

func TestGenerateBaseDistribution(t *testing.T) {
	base, ok := GenerateBaseDistribution("unigram", 1.0)
	assert.True(t, ok)
	assert.IsType(t, &UnigramBase{}, base)

	base, ok = GenerateBaseDistribution("dirichlet", 1.0)
	assert.True(t, ok)
	assert.IsType(t, &DirichletBase{}, base)

	_, ok = GenerateBaseDistribution("hpylm", 1.0)
	assert.False(t, ok)
}
