package aggregator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

func sourceWithBits(bits ...uint64) bitvec.Directory {
	v := bitvec.NewBitVector()
	for _, b := range bits {
		_ = v.SetBit(b)
	}
	return v.Directory()
}

func newTree() *bitvec.Tree {
	tr := bitvec.NewTree()
	tr.InitTree()
	return tr
}

func fullOnesSource() bitvec.Directory {
	tr := newTree()
	_ = tr.SetBlockPtr(0, 0, bitvec.FullOnesSlot())
	return tr
}

func TestCombineORFoldsSources(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(1, 2), 0)
	_, _ = a.Add(sourceWithBits(3, 65537), 0)

	target := newTree()
	require.NoError(t, a.CombineOR(target))

	assertBitSet(t, target, 1)
	assertBitSet(t, target, 2)
	assertBitSet(t, target, 3)
	assertBitSet(t, target, 65537)
}

func TestCombineORShortCircuitsOnFullOnes(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(1), 0)
	_, _ = a.Add(fullOnesSource(), 0)

	target := newTree()
	require.NoError(t, a.CombineOR(target))
	slot := target.GetBlockPtr(0, 0)
	assert.True(t, slot.IsFullOnes())
}

func TestCombineANDIntersectsSources(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(1, 2, 3), 0)
	_, _ = a.Add(sourceWithBits(2, 3, 4), 0)

	target := newTree()
	require.NoError(t, a.CombineAND(target))

	assertBitClear(t, target, 1)
	assertBitSet(t, target, 2)
	assertBitSet(t, target, 3)
	assertBitClear(t, target, 4)
}

func TestCombineANDShortCircuitsOnNull(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(1), 0)
	_, _ = a.Add(newTree(), 0)

	target := newTree()
	require.NoError(t, a.CombineAND(target))
	assert.True(t, target.GetBlockPtr(0, 0).IsNull())
}

func TestCombineANDSUBRemovesSubtrahend(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(1, 2, 3), 0)
	_, _ = a.Add(sourceWithBits(2), 1)

	target := newTree()
	found, err := a.CombineANDSUB(target, false)
	require.NoError(t, err)
	assert.True(t, found)

	assertBitSet(t, target, 1)
	assertBitClear(t, target, 2)
	assertBitSet(t, target, 3)
}

func TestCombineANDSUBAnyStopsAtFirstHit(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(70000), 0)

	target := newTree()
	found, err := a.CombineANDSUB(target, true)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestFindFirstANDSUBMinimalResult(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(10, 20, 30), 0)
	_, _ = a.Add(sourceWithBits(10), 1)

	idx, ok := a.FindFirstANDSUB()
	require.True(t, ok)
	assert.EqualValues(t, 20, idx)
}

func TestFindFirstANDSUBNoMatch(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(10), 0)
	_, _ = a.Add(sourceWithBits(10), 1)

	_, ok := a.FindFirstANDSUB()
	assert.False(t, ok)
}

func TestShiftRightAndShiftsThenIntersects(t *testing.T) {
	target := sourceWithBits(5, 10)
	mask := sourceWithBits(6, 11, 20)

	found, err := ShiftRightAnd(target, mask)
	require.NoError(t, err)
	assert.True(t, found)
	assertBitSet(t, target, 6)
	assertBitSet(t, target, 11)
	assertBitClear(t, target, 20)
}

func TestCombineShiftRightANDMatchesTwoSourceShiftRightAnd(t *testing.T) {
	base := sourceWithBits(5, 10)
	mask := sourceWithBits(6, 11, 20)
	want, err := ShiftRightAnd(base, mask)
	require.NoError(t, err)

	a := New()
	_, _ = a.Add(sourceWithBits(5, 10), 0)
	_, _ = a.Add(sourceWithBits(6, 11, 20), 0)

	target := newTree()
	found, err := a.CombineShiftRightAND(target, false)
	require.NoError(t, err)
	assert.Equal(t, want, found)
	assertBitSet(t, target, 6)
	assertBitSet(t, target, 11)
	assertBitClear(t, target, 20)
}

func TestCombineShiftRightANDSingleSourceIsUnshifted(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(5, 10), 0)

	target := newTree()
	found, err := a.CombineShiftRightAND(target, false)
	require.NoError(t, err)
	assert.True(t, found)
	assertBitSet(t, target, 5)
	assertBitSet(t, target, 10)
}

func TestCombineShiftRightANDRevivesZeroAccumulatorFromPendingCarry(t *testing.T) {
	// Column (0,0): source0 has the block's top two bits set; source1 and
	// source2 are FullOnes there. Folding shifts the top bit out through
	// source1 and then through source2, ending the column at zero but
	// leaving both sources with a carry pending into the next column.
	source0 := sourceWithBits(uint64(block.Bits-2), uint64(block.Bits-1))
	source1 := newTree()
	require.NoError(t, source1.SetBlockPtr(0, 0, bitvec.FullOnesSlot()))
	source2 := newTree()
	require.NoError(t, source2.SetBlockPtr(0, 0, bitvec.FullOnesSlot()))
	require.NoError(t, source2.SetBlockPtr(0, 1, bitvec.FullOnesSlot()))

	a := New()
	_, _ = a.Add(source0, 0)
	_, _ = a.Add(source1, 0)
	_, _ = a.Add(source2, 0)

	target := newTree()
	found, err := a.CombineShiftRightAND(target, false)
	require.NoError(t, err)
	assert.True(t, found)

	// Column (0,0) folds to zero...
	assert.True(t, target.GetBlockPtr(0, 0).IsNull())
	// ...but source2 is still FullOnes at column (0,1) and its carry out
	// of column (0,0) was never actually zero, so it must revive bit 0 of
	// the next column rather than being dropped.
	assertBitSet(t, target, uint64(block.Bits))
}

func TestCombineORClearsStaleTargetContent(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(70000), 0)

	target := newTree()
	require.NoError(t, a.CombineOR(target))
	assertBitSet(t, target, 70000)

	a.Reset()
	require.NoError(t, a.CombineOR(target))
	assertBitClear(t, target, 70000)
	assert.Zero(t, target.TopBlockSize())
}

func TestCombineANDClearsStaleTargetContent(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(70000), 0)
	_, _ = a.Add(sourceWithBits(70000), 0)

	target := newTree()
	require.NoError(t, a.CombineAND(target))
	assertBitSet(t, target, 70000)

	a.Reset()
	require.NoError(t, a.CombineAND(target))
	assertBitClear(t, target, 70000)
	assert.Zero(t, target.TopBlockSize())
}

func TestCombineANDSUBClearsStaleTargetContent(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(70000), 0)

	target := newTree()
	found, err := a.CombineANDSUB(target, false)
	require.NoError(t, err)
	assert.True(t, found)
	assertBitSet(t, target, 70000)

	a.Reset()
	found, err = a.CombineANDSUB(target, false)
	require.NoError(t, err)
	assert.False(t, found)
	assertBitClear(t, target, 70000)
	assert.Zero(t, target.TopBlockSize())
}

func TestAddRespectsCapacity(t *testing.T) {
	a := New()
	for i := 0; i < MaxCap; i++ {
		_, err := a.Add(sourceWithBits(uint64(i)), 0)
		require.NoError(t, err)
	}
	_, err := a.Add(sourceWithBits(1), 0)
	assert.Error(t, err)
}

func TestResetDetachesSources(t *testing.T) {
	a := New()
	_, _ = a.Add(sourceWithBits(1), 0)
	_, _ = a.Add(sourceWithBits(1), 1)
	a.Reset()
	assert.Empty(t, a.Group0())
	assert.Empty(t, a.Group1())
}

func TestPoolBoundsConcurrentCheckouts(t *testing.T) {
	p := NewPool(1)
	ctx := context.Background()

	first, err := p.Acquire(ctx)
	require.NoError(t, err)

	_, ok := p.TryAcquire()
	assert.False(t, ok)

	p.Release(first)

	second, ok := p.TryAcquire()
	assert.True(t, ok)
	assert.Empty(t, second.Group0())
	p.Release(second)
}

func assertBitSet(t *testing.T, dir bitvec.Directory, pos uint64) {
	t.Helper()
	assert.True(t, testBit(dir, pos))
}

func assertBitClear(t *testing.T, dir bitvec.Directory, pos uint64) {
	t.Helper()
	assert.False(t, testBit(dir, pos))
}

func testBit(dir bitvec.Directory, pos uint64) bool {
	blockIdx := pos / uint64(block.Bits)
	i := int(blockIdx / bitvec.SubSize)
	j := int(blockIdx % bitvec.SubSize)
	bit := int(pos % uint64(block.Bits))

	slot := dir.GetBlockPtr(i, j)
	switch slot.Kind {
	case bitvec.Null:
		return false
	case bitvec.FullOnes:
		return true
	case bitvec.Plain:
		b, _ := slot.PlainBlock()
		return b.Test(bit)
	case bitvec.GapKind:
		g, _ := slot.GapBlock()
		return gap.Test(g, bit)
	default:
		return false
	}
}
