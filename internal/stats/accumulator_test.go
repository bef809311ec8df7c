package stats

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// observeAll 是测试辅助函数，把一组值依次写入新累加器。
func observeAll(values ...uint64) Accumulator {
	var acc Accumulator
	for _, value := range values {
		acc.Observe(value)
	}
	return acc
}

func TestAccumulatorEmpty(t *testing.T) {
	t.Parallel()

	var acc Accumulator

	assert.True(t, acc.IsEmpty())
	assert.Zero(t, acc.Count())
	assert.Zero(t, acc.Total())
	assert.Zero(t, acc.Min())
	assert.Zero(t, acc.Max())
	assert.True(t, math.IsNaN(acc.Average()))

	report := acc.Report()
	assert.Nil(t, report.Average)
	assert.Zero(t, report.Count)
}

func TestAccumulatorObserve(t *testing.T) {
	t.Parallel()

	acc := observeAll(6, 0, 12, 6)

	assert.Equal(t, uint64(4), acc.Count())
	assert.Equal(t, uint64(24), acc.Total())
	assert.Equal(t, uint64(0), acc.Min())
	assert.Equal(t, uint64(12), acc.Max())
	assert.InDelta(t, 6.0, acc.Average(), 1e-9)

	report := acc.Report()
	require.NotNil(t, report.Average)
	assert.InDelta(t, 6.0, *report.Average, 1e-9)
	assert.Equal(t, uint64(24), report.Total)
}

func TestAccumulatorFirstObservationSetsExtrema(t *testing.T) {
	t.Parallel()

	acc := observeAll(42)

	assert.Equal(t, uint64(42), acc.Min())
	assert.Equal(t, uint64(42), acc.Max())
}

func TestAccumulatorMergeWithEmpty(t *testing.T) {
	t.Parallel()

	full := observeAll(3, 9)

	left := full
	left.Merge(Accumulator{})
	assert.Equal(t, full, left)

	var right Accumulator
	right.Merge(full)
	assert.Equal(t, full, right)
}

func TestAccumulatorMergeEqualsFold(t *testing.T) {
	t.Parallel()

	merged := observeAll(5, 1, 8)
	merged.Merge(observeAll(2, 13))

	assert.Equal(t, observeAll(5, 1, 8, 2, 13), merged)
}

// randomAccumulator 生成一个随机累加器，可能为空。
func randomAccumulator(rng *rand.Rand) Accumulator {
	var acc Accumulator
	for range rng.IntN(6) {
		acc.Observe(rng.Uint64N(500))
	}
	return acc
}

func TestAccumulatorMergeIsAssociativeAndCommutative(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewPCG(7, 11))

	for range 500 {
		a, b, c := randomAccumulator(rng), randomAccumulator(rng), randomAccumulator(rng)

		left := a
		left.Merge(b)
		left.Merge(c)

		bc := b
		bc.Merge(c)
		right := a
		right.Merge(bc)

		require.Equal(t, left, right, "merge(merge(a,b),c) != merge(a,merge(b,c))")

		ab := a
		ab.Merge(b)
		ba := b
		ba.Merge(a)

		require.Equal(t, ab, ba, "merge(a,b) != merge(b,a)")
	}
}
