package reduce

import (
	"github.com/shk656461/BitMagic/bitvec"
	"github.com/shk656461/BitMagic/block"
	"github.com/shk656461/BitMagic/gap"
)

// ORHorizontal folds sources into dst one at a time (bv_target |= bv_src[k]
// for each k), rather than sorting all sources' blocks for one coordinate
// before folding. It is a reference implementation used to cross-check
// the multi-way block-sorted reduction, not the production reduction path.
func ORHorizontal(dst bitvec.Directory, sources []bitvec.Directory, topRows int) error {
	for i := 0; i < topRows; i++ {
		for j := 0; j < bitvec.SubSize; j++ {
			if err := orHorizontalCell(dst, sources, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

func orHorizontalCell(dst bitvec.Directory, sources []bitvec.Directory, i, j int) error {
	for _, src := range sources {
		slot := src.GetBlockPtr(i, j)
		if slot.Kind == bitvec.Null {
			continue
		}
		if slot.Kind == bitvec.FullOnes {
			return dst.SetBlockPtr(i, j, bitvec.FullOnesSlot())
		}
		b, err := dst.CheckAllocateBlock(i, j)
		if err != nil {
			return err
		}
		switch slot.Kind {
		case bitvec.Plain:
			pb, _ := slot.PlainBlock()
			if block.Default.Or(b, pb) {
				return dst.SetBlockPtr(i, j, bitvec.FullOnesSlot())
			}
		case bitvec.GapKind:
			g, _ := slot.GapBlock()
			gap.ExpandOrToBitset(b, g)
		}
	}
	return nil
}

// ANDHorizontal folds sources into dst one at a time (bv_target &= bv_src[k]
// for each k). Reference implementation, test-only.
func ANDHorizontal(dst bitvec.Directory, sources []bitvec.Directory, topRows int) error {
	for i := 0; i < topRows; i++ {
		for j := 0; j < bitvec.SubSize; j++ {
			if err := andHorizontalCell(dst, sources, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

func andHorizontalCell(dst bitvec.Directory, sources []bitvec.Directory, i, j int) error {
	b, err := dst.CheckAllocateBlock(i, j)
	if err != nil {
		return err
	}
	block.Default.Set(b, true)
	digest := block.AllSet
	for _, src := range sources {
		if digest == block.AllZero {
			break
		}
		slot := src.GetBlockPtr(i, j)
		switch slot.Kind {
		case bitvec.Null:
			digest = block.AllZero
		case bitvec.FullOnes:
			// AND identity, no-op
		case bitvec.Plain:
			pb, _ := slot.PlainBlock()
			digest = block.Default.And(b, pb, digest)
		case bitvec.GapKind:
			g, _ := slot.GapBlock()
			digest = gap.ExpandAndToBitset(b, g, digest)
		}
	}
	if digest == block.AllZero {
		dst.ZeroBlock(i, j)
	}
	return nil
}

// ANDSUBHorizontal computes (AND of andSources) AND-NOT (OR of subSources)
// one source at a time into dst. Reference implementation, test-only.
func ANDSUBHorizontal(dst bitvec.Directory, andSources, subSources []bitvec.Directory, topRows int) error {
	if err := ANDHorizontal(dst, andSources, topRows); err != nil {
		return err
	}
	for i := 0; i < topRows; i++ {
		for j := 0; j < bitvec.SubSize; j++ {
			if err := subHorizontalCell(dst, subSources, i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

func subHorizontalCell(dst bitvec.Directory, subSources []bitvec.Directory, i, j int) error {
	if dst.GetBlockPtr(i, j).IsNull() {
		return nil
	}
	b, err := dst.DeoptimizeBlock(i, j)
	if err != nil {
		return err
	}
	digest := block.CalcDigest(b)
	for _, src := range subSources {
		if digest == block.AllZero {
			break
		}
		slot := src.GetBlockPtr(i, j)
		switch slot.Kind {
		case bitvec.Null:
			// subtract nothing
		case bitvec.FullOnes:
			digest = block.AllZero
		case bitvec.Plain:
			pb, _ := slot.PlainBlock()
			digest = block.Default.Sub(b, pb, digest)
		case bitvec.GapKind:
			g, _ := slot.GapBlock()
			digest = gap.ExpandSubToBitset(b, g, digest)
		}
	}
	if digest == block.AllZero {
		dst.ZeroBlock(i, j)
	}
	return nil
}
