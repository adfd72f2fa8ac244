package aggregator

import (
	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/reduce"
)

// CombineOR grows target to cover every source, then for each (i, j)
// coordinate buckets the sources' blocks with reduce.SortOR and installs
// the folded result (or the FullOnes sentinel, on an OR golden block).
func CombineOR(target bitvec.Directory, sources []bitvec.Directory) error {
	topBlocks := ApplyTargetSize(target, ComputeEffectiveTopBlocks(sources...))
	for i := 0; i < topBlocks; i++ {
		rangeJ := EffectiveSubBlockRange(sources, i)
		for j := 0; j < rangeJ; j++ {
			if _, err := combineORCellStats(target, sources, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// combineORCellStats folds sources at (i, j) into target and reports
// whether the coordinate was golden (decided without folding a block).
func combineORCellStats(target bitvec.Directory, sources []bitvec.Directory, i, j int) (golden bool, err error) {
	s := reduce.SortOR(sources, i, j)
	if s.Golden == reduce.GoldenAllOnes {
		return true, target.SetBlockPtr(i, j, bitvec.FullOnesSlot())
	}
	if len(s.Plain) == 0 && len(s.Gaps) == 0 {
		target.ZeroBlock(i, j)
		return true, nil
	}

	var tmp block.Block
	if reduce.OR(&tmp, s) {
		return false, target.SetBlockPtr(i, j, bitvec.FullOnesSlot())
	}
	return false, target.CopyBitBlock(i, j, &tmp)
}
