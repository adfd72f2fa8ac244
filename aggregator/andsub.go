package aggregator

import (
	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/reduce"
)

// CombineANDSUB computes (AND of andSources) AND-NOT (OR of subSources)
// into target, coordinate by coordinate. If any is true the walk returns
// as soon as the first non-empty result block is installed.
func CombineANDSUB(target bitvec.Directory, andSources, subSources []bitvec.Directory, any bool) (bool, error) {
	if len(andSources) == 0 {
		ApplyTargetSize(target, 0)
		return false, nil
	}
	topBlocks := ApplyTargetSize(target, ComputeEffectiveTopBlocks(andSources...))
	found := false
	for i := 0; i < topBlocks; i++ {
		rangeJ := EffectiveSubBlockRange(andSources, i)
		for j := 0; j < rangeJ; j++ {
			hit, err := combineANDSUBCell(target, andSources, subSources, i, j)
			if err != nil {
				return false, err
			}
			if hit {
				found = true
				if any {
					return true, nil
				}
			}
		}
	}
	return found, nil
}

func combineANDSUBCell(target bitvec.Directory, andSources, subSources []bitvec.Directory, i, j int) (bool, error) {
	andS := reduce.SortAND(andSources, i, j)
	subS := reduce.SortSUB(subSources, i, j)

	var tmp block.Block
	digest := reduce.ANDSUB(&tmp, andS, subS)
	if digest == block.AllZero {
		target.ZeroBlock(i, j)
		return false, nil
	}
	if err := target.CopyBitBlock(i, j, &tmp); err != nil {
		return false, err
	}
	return true, nil
}

// FindFirstANDSUB returns the absolute bit position of the first set bit
// of (AND of andSources) AND-NOT (OR of subSources), scanning only the
// coordinate range andSources can possibly populate. It never
// materializes a target directory, so it uses the pure half of target
// size harmonization only.
func FindFirstANDSUB(andSources, subSources []bitvec.Directory) (uint64, bool) {
	topBlocks := ComputeEffectiveTopBlocks(andSources...)
	for i := 0; i < topBlocks; i++ {
		rangeJ := EffectiveSubBlockRange(andSources, i)
		for j := 0; j < rangeJ; j++ {
			andS := reduce.SortAND(andSources, i, j)
			subS := reduce.SortSUB(subSources, i, j)
			idx, ok := reduce.FindFirstANDSUB(andS, subS)
			if ok {
				return blockBase(i, j) + uint64(idx), true
			}
		}
	}
	return 0, false
}

func blockBase(i, j int) uint64 {
	return uint64(i)*uint64(bitvec.SubSize)*uint64(block.Bits) + uint64(j)*uint64(block.Bits)
}
