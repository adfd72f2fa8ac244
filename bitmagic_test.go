package bitmagic

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shk656461/BitMagic/aggregator"
	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

func sourceWithBits(bits ...uint64) Directory {
	v := NewBitVector()
	for _, b := range bits {
		_ = v.SetBit(b)
	}
	return v.Directory()
}

func testBit(dir Directory, pos uint64) bool {
	blockIdx := pos / uint64(block.Bits)
	i := int(blockIdx / bitvec.SubSize)
	j := int(blockIdx % bitvec.SubSize)
	bit := int(pos % uint64(block.Bits))

	slot := dir.GetBlockPtr(i, j)
	if slot.IsNull() {
		return false
	}
	if slot.IsFullOnes() {
		return true
	}
	if b, ok := slot.PlainBlock(); ok {
		return b.Test(bit)
	}
	if g, ok := slot.GapBlock(); ok {
		return gap.Test(g, bit)
	}
	return false
}

func TestAggregatorCombineOR(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(1, 2), 0)
	_, _ = a.Add(sourceWithBits(3), 0)

	target := NewBitVector().Directory()
	require.NoError(t, a.CombineOR(context.Background(), target))

	assert.True(t, testBit(target, 1))
	assert.True(t, testBit(target, 2))
	assert.True(t, testBit(target, 3))
}

func TestAggregatorCombineANDSUBWithMetrics(t *testing.T) {
	metrics := &BasicMetricsCollector{}
	a := New(WithMetrics(metrics))
	_, _ = a.Add(sourceWithBits(1, 2, 3), 0)
	_, _ = a.Add(sourceWithBits(2), 1)

	target := NewBitVector().Directory()
	found, err := a.CombineANDSUB(context.Background(), target, false)
	require.NoError(t, err)
	assert.True(t, found)

	stats := metrics.GetStats()
	assert.EqualValues(t, 1, stats.Records)
	assert.Zero(t, stats.Errors)
}

func TestAggregatorWithPool(t *testing.T) {
	pool := aggregator.NewPool(2)
	a := New(WithPool(pool))
	defer a.Close()

	_, err := a.Add(sourceWithBits(1), 0)
	require.NoError(t, err)
}

func TestAggregatorFindFirstANDSUB(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(10, 20, 30), 0)
	_, _ = a.Add(sourceWithBits(10), 1)

	idx, ok := a.FindFirstANDSUB(context.Background())
	require.True(t, ok)
	assert.EqualValues(t, 20, idx)
}
