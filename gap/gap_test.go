package gap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shk656461/BitMagic/block"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	blk := block.New()
	for _, i := range []int{0, 1, 2, 100, 101, 102, 65535} {
		blk.Set(i)
	}
	g := Encode(blk)

	var out block.Block
	Decode(g, &out)
	assert.Equal(t, *blk, out)
}

func TestTestMatchesDecode(t *testing.T) {
	blk := block.New()
	blk.Set(500)
	blk.Set(501)
	g := Encode(blk)

	assert.True(t, Test(g, 500))
	assert.True(t, Test(g, 501))
	assert.False(t, Test(g, 499))
	assert.False(t, Test(g, 502))
}

func TestAllZeroAllOnes(t *testing.T) {
	zero := Encode(block.New())
	assert.True(t, IsAllZero(zero))
	assert.False(t, IsAllOnes(zero))

	full := block.New()
	full.Fill(true)
	ones := Encode(full)
	assert.True(t, IsAllOnes(ones))
	assert.False(t, IsAllZero(ones))
}

func TestShouldDeoptimize(t *testing.T) {
	blk := block.New()
	for i := 0; i < block.Bits; i += 2 {
		blk.Set(i)
	}
	g := Encode(blk)
	assert.True(t, ShouldDeoptimize(g))
}

func TestExpandOrToBitset(t *testing.T) {
	src := block.New()
	src.Set(10)
	g := Encode(src)

	dst := block.New()
	dst.Set(20)
	ExpandOrToBitset(dst, g)
	assert.True(t, dst.Test(10))
	assert.True(t, dst.Test(20))
}

func TestExpandAndToBitsetPrunesDigest(t *testing.T) {
	src := block.New()
	src.Set(10)
	g := Encode(src)

	dst := block.New()
	dst.Set(10)
	dst.Set(2000)
	digest := block.CalcDigest(dst)
	d := ExpandAndToBitset(dst, g, digest)
	require.True(t, dst.Test(10))
	assert.False(t, dst.Test(2000))
	assert.NotZero(t, d)
}

func TestExpandSubToBitset(t *testing.T) {
	src := block.New()
	src.Set(10)
	g := Encode(src)

	dst := block.New()
	dst.Set(10)
	dst.Set(11)
	d := ExpandSubToBitset(dst, g, block.CalcDigest(dst))
	assert.False(t, dst.Test(10))
	assert.True(t, dst.Test(11))
	assert.NotZero(t, d)
}
