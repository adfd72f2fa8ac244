package bitvec

import (
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

// BitVector is the concrete external bit-vector entity: a thin,
// bit-addressable facade over a Directory. Aggregation components accept
// the Directory interface directly; BitVector exists for callers that
// want a normal "set a bit, test a bit" API.
type BitVector struct {
	dir Directory
}

// NewBitVector returns an initialized BitVector backed by a fresh Tree.
func NewBitVector() *BitVector {
	t := NewTree()
	t.InitTree()
	return &BitVector{dir: t}
}

// Directory exposes the underlying Directory for aggregation components.
func (v *BitVector) Directory() Directory { return v.dir }

func topSub(pos uint64) (int, int, int) {
	blockIdx := pos / uint64(block.Bits)
	i := int(blockIdx / SubSize)
	j := int(blockIdx % SubSize)
	bit := int(pos % uint64(block.Bits))
	return i, j, bit
}

// SetBit sets the bit at the given absolute position, materializing
// whatever block it falls in.
func (v *BitVector) SetBit(pos uint64) error {
	i, j, bit := topSub(pos)
	b, err := v.dir.CheckAllocateBlock(i, j)
	if err != nil {
		return err
	}
	b.Set(bit)
	return nil
}

// Test reports the bit at the given absolute position.
func (v *BitVector) Test(pos uint64) bool {
	i, j, bit := topSub(pos)
	slot := v.dir.GetBlockPtr(i, j)
	switch slot.Kind {
	case Null:
		return false
	case FullOnes:
		return true
	case Plain:
		b, _ := slot.PlainBlock()
		return b.Test(bit)
	case GapKind:
		g, _ := slot.GapBlock()
		return gap.Test(g, bit)
	default:
		return false
	}
}

// OptimizeBlock downgrades a Plain block at (i, j) to a Gap or FullOnes
// sentinel when that representation would be cheaper, mirroring the
// aggregation engine's golden-block short-circuit at ingest time.
func (v *BitVector) OptimizeBlock(i, j int) {
	slot := v.dir.GetBlockPtr(i, j)
	b, ok := slot.PlainBlock()
	if !ok {
		return
	}
	if block.Default.IsAllZero(b) {
		v.dir.ZeroBlock(i, j)
		return
	}
	if block.Default.IsAllOnes(b) {
		_ = v.dir.SetBlockPtr(i, j, FullOnesSlot())
		return
	}
	g := gap.Encode(b)
	if !gap.ShouldDeoptimize(g) {
		_ = v.dir.SetBlockPtr(i, j, GapSlot(g))
	}
}
