package reduce

import (
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

// OR folds s into dst (which is cleared first) using the 5-way/3-way/
// 2-way unrolled plain-block fold, then any GAP blocks. It returns true
// once the result is provably all ones, at which point dst holds an
// all-ones block but the caller should prefer installing the FullOnes
// sentinel instead of materializing it.
func OR(dst *block.Block, s Sorted) bool {
	if s.Golden == GoldenAllOnes {
		dst.Fill(true)
		return true
	}

	dst.Clear()
	if orPlainBlocks(dst, s.Plain) {
		return true
	}
	for _, g := range s.Gaps {
		gap.ExpandOrToBitset(dst, g)
		if block.Default.IsAllOnes(dst) {
			return true
		}
	}
	return false
}

// orPlainBlocks folds blocks into dst using 5-way, then 3-way, then
// single-block OR, returning true as soon as dst becomes all ones.
func orPlainBlocks(dst *block.Block, blocks []*block.Block) bool {
	k := 0
	n := len(blocks)

	for ; k+4 <= n; k += 4 {
		if block.Default.Or5Way(dst, blocks[k], blocks[k+1], blocks[k+2], blocks[k+3]) {
			return true
		}
	}
	for ; k+2 <= n; k += 2 {
		if block.Default.Or3Way(dst, blocks[k], blocks[k+1]) {
			return true
		}
	}
	for ; k < n; k++ {
		if block.Default.Or(dst, blocks[k]) {
			return true
		}
	}
	return false
}
