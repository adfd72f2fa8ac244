package reduce

import (
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

// ANDSUB computes (AND of andSorted) AND-NOT (OR of subSorted) into dst,
// fusing the subtraction into the same digest-pruned pass rather than
// materializing an intermediate AND result.
func ANDSUB(dst *block.Block, andSorted, subSorted Sorted) block.Digest {
	digest := AND(dst, andSorted)
	if digest == block.AllZero {
		return block.AllZero
	}

	if subSorted.Golden == GoldenAllZero {
		dst.Clear()
		return block.AllZero
	}

	for _, p := range subSorted.Plain {
		if digest == block.AllZero {
			break
		}
		digest = block.Default.Sub(dst, p, digest)
	}
	for _, g := range subSorted.Gaps {
		if digest == block.AllZero {
			break
		}
		digest = gap.ExpandSubToBitset(dst, g, digest)
	}
	return digest
}

// FindFirstANDSUB returns the index of the first set bit of the AND-SUB
// of andSorted and subSorted, without the caller needing to keep the
// folded block around afterward.
func FindFirstANDSUB(andSorted, subSorted Sorted) (int, bool) {
	var tmp block.Block
	digest := ANDSUB(&tmp, andSorted, subSorted)
	if digest == block.AllZero {
		return 0, false
	}
	return block.Default.FindFirst(&tmp)
}
