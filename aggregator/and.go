package aggregator

import (
	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/reduce"
)

// CombineAND grows target to cover every source, then for each (i, j)
// coordinate buckets the sources' blocks with reduce.SortAND and installs
// the folded result.
func CombineAND(target bitvec.Directory, sources []bitvec.Directory) error {
	topBlocks := ApplyTargetSize(target, ComputeEffectiveTopBlocks(sources...))
	for i := 0; i < topBlocks; i++ {
		rangeJ := EffectiveSubBlockRange(sources, i)
		for j := 0; j < rangeJ; j++ {
			if _, err := combineANDCellStats(target, sources, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// combineANDCellStats folds sources at (i, j) into target and reports
// whether the coordinate was golden (decided without folding a block).
func combineANDCellStats(target bitvec.Directory, sources []bitvec.Directory, i, j int) (golden bool, err error) {
	s := reduce.SortAND(sources, i, j)
	switch s.Golden {
	case reduce.GoldenAllZero:
		target.ZeroBlock(i, j)
		return true, nil
	case reduce.GoldenAllOnes:
		return true, target.SetBlockPtr(i, j, bitvec.FullOnesSlot())
	}

	var tmp block.Block
	digest := reduce.AND(&tmp, s)
	if digest == block.AllZero {
		target.ZeroBlock(i, j)
		return false, nil
	}
	if digest == block.AllSet && block.Default.IsAllOnes(&tmp) {
		return false, target.SetBlockPtr(i, j, bitvec.FullOnesSlot())
	}
	return false, target.CopyBitBlock(i, j, &tmp)
}
