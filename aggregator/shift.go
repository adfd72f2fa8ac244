package aggregator

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

// ShiftRightAnd shifts target right by one bit across its whole address
// space and ANDs the shifted result with mask, in place: target becomes
// (target >> 1) & mask. It returns whether the result is non-empty.
func ShiftRightAnd(target, mask bitvec.Directory) (bool, error) {
	topBlocks := GrowTargetSize(target, ComputeEffectiveTopBlocks(target, mask))
	last := bitvec.TopSize*bitvec.SubSize - 1
	var carry uint64
	anyBit := false

	for i := 0; i < bitvec.TopSize; i++ {
		if i >= topBlocks && carry == 0 {
			break
		}
		for j := 0; j < bitvec.SubSize; j++ {
			nblock := i*bitvec.SubSize + j
			acc, co, err := shiftRightAndCell(target, mask, i, j, carry, nblock == last)
			if err != nil {
				return false, err
			}
			carry = co
			if acc != 0 {
				anyBit = true
			}
		}
	}
	return anyBit, nil
}

func shiftRightAndCell(target, mask bitvec.Directory, i, j int, carryIn uint64, isLast bool) (acc, carryOut uint64, err error) {
	if target.GetBlockPtr(i, j).IsNull() && carryIn == 0 {
		return 0, 0, nil
	}
	b, err := target.CheckAllocateBlock(i, j)
	if err != nil {
		return 0, 0, err
	}

	maskSlot := mask.GetBlockPtr(i, j)
	switch maskSlot.Kind {
	case bitvec.Null:
		carryOut = b[block.Words-1] >> 63
		b.Clear()
	case bitvec.FullOnes:
		_, carryOut = block.Default.ShiftRight1(b, carryIn)
	case bitvec.Plain:
		m, _ := maskSlot.PlainBlock()
		_, carryOut = block.Default.ShiftRight1And(b, m, carryIn)
	case bitvec.GapKind:
		g, _ := maskSlot.GapBlock()
		var m block.Block
		gap.Decode(g, &m)
		_, carryOut = block.Default.ShiftRight1And(b, &m, carryIn)
	}

	if isLast {
		b[block.Words-1] &^= uint64(1) << 63
	}

	if block.Default.IsAllZero(b) {
		target.ZeroBlock(i, j)
		return 0, carryOut, nil
	}
	return 1, carryOut, nil
}

// CombineShiftRightAND generalizes ShiftRightAnd to N sources: the first
// source is copied or decoded with no shift, establishing the base value,
// and every later source is fused shift-right-then-AND into the running
// block. Each source past the first keeps its own carry bit across the
// whole (i, j) sweep, tracked in carryOvers; the walk can stop once it is
// past every source's reserved range and no carry remains pending.
func CombineShiftRightAND(target bitvec.Directory, sources []bitvec.Directory, any bool) (bool, error) {
	if len(sources) == 0 {
		ApplyTargetSize(target, 0)
		return false, nil
	}
	topBlocks := ApplyTargetSize(target, ComputeEffectiveTopBlocks(sources...))
	carryOvers := bitset.New(uint(len(sources)))
	last := bitvec.TopSize*bitvec.SubSize - 1
	anyBit := false

	for i := 0; i < bitvec.TopSize; i++ {
		if i >= topBlocks && carryOvers.None() {
			break
		}
		for j := 0; j < bitvec.SubSize; j++ {
			nblock := i*bitvec.SubSize + j
			var tmp block.Block
			found := combineShiftRightANDCell(&tmp, sources, i, j, carryOvers)
			if nblock == last {
				tmp[block.Words-1] &^= uint64(1) << 63
				found = !block.Default.IsAllZero(&tmp)
			}
			if !found {
				target.ZeroBlock(i, j)
				continue
			}
			anyBit = true
			if err := target.CopyBitBlock(i, j, &tmp); err != nil {
				return false, err
			}
			if any {
				return true, nil
			}
		}
	}
	return anyBit, nil
}

func combineShiftRightANDCell(dst *block.Block, sources []bitvec.Directory, i, j int, carryOvers *bitset.BitSet) bool {
	zero := false
	for k, src := range sources {
		if k == 0 {
			decodeBase(dst, src.GetBlockPtr(i, j))
			carryOvers.Clear(uint(k))
			zero = block.Default.IsAllZero(dst)
			continue
		}

		// A zero accumulator with no carry pending for this source can
		// only fold to zero again, so it's safe to leave this source
		// untouched. A pending carry can still revive a bit even out of
		// a zero accumulator, so it must be folded in regardless.
		if zero && !carryOvers.Test(uint(k)) {
			continue
		}

		var carryIn uint64
		if carryOvers.Test(uint(k)) {
			carryIn = 1
		}

		slot := src.GetBlockPtr(i, j)
		var co uint64
		switch slot.Kind {
		case bitvec.Null:
			co = dst[block.Words-1] >> 63
			dst.Clear()
		case bitvec.FullOnes:
			_, co = block.Default.ShiftRight1(dst, carryIn)
		case bitvec.Plain:
			p, _ := slot.PlainBlock()
			_, co = block.Default.ShiftRight1And(dst, p, carryIn)
		case bitvec.GapKind:
			g, _ := slot.GapBlock()
			var m block.Block
			gap.Decode(g, &m)
			_, co = block.Default.ShiftRight1And(dst, &m, carryIn)
		}
		setCarry(carryOvers, k, co)
		zero = block.Default.IsAllZero(dst)
	}
	return !zero
}

func decodeBase(dst *block.Block, slot bitvec.Slot) {
	switch slot.Kind {
	case bitvec.Null:
		dst.Clear()
	case bitvec.FullOnes:
		dst.Fill(true)
	case bitvec.Plain:
		p, _ := slot.PlainBlock()
		*dst = *p
	case bitvec.GapKind:
		g, _ := slot.GapBlock()
		gap.Decode(g, dst)
	}
}

func setCarry(carryOvers *bitset.BitSet, k int, co uint64) {
	if co != 0 {
		carryOvers.Set(uint(k))
	} else {
		carryOvers.Clear(uint(k))
	}
}
