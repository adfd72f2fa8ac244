package bitvec

import (
	"github.com/shk656461/BitMagic/bmerr"
	"github.com/shk656461/BitMagic/gap"

	"github.com/shk656461/BitMagic/block"
)

// TopSize is the reference number of top-directory rows.
const TopSize = 1024

// SubSize is the reference number of sub-directory entries per row.
const SubSize = 1024

// Directory is the external bit-vector contract the aggregation core
// folds sources through. A concrete implementation is provided by Tree;
// callers embedding this module into a host with its own bit-vector type
// may supply their own.
type Directory interface {
	// TopBlockSize reports how many top-directory rows are currently
	// reserved.
	TopBlockSize() int
	// ReserveTopBlocks grows the top directory to hold at least n rows
	// and returns the resulting size.
	ReserveTopBlocks(n int) int
	// GetBlockPtr returns the slot at (i, j), or the Null sentinel if
	// out of the currently reserved range.
	GetBlockPtr(i, j int) Slot
	// SetBlockPtr installs s at (i, j), growing the directory as needed.
	SetBlockPtr(i, j int, s Slot) error
	// CheckAllocTopSubblock ensures row i's sub-directory is allocated.
	CheckAllocTopSubblock(i int) error
	// CheckAllocateBlock returns a writable Plain block at (i, j),
	// materializing it from whatever sentinel or compressed form
	// currently occupies the slot.
	CheckAllocateBlock(i, j int) (*block.Block, error)
	// CopyBitBlock installs a copy of src as the Plain block at (i, j).
	CopyBitBlock(i, j int, src *block.Block) error
	// ZeroBlock resets (i, j) back to the Null sentinel.
	ZeroBlock(i, j int)
	// Clear resets every row back to the Null sentinel, as if freshly
	// initialized. InitTree/IsInit state is left untouched.
	Clear()
	// DeoptimizeBlock materializes (i, j) as a Plain block regardless of
	// its current representation and returns it.
	DeoptimizeBlock(i, j int) (*block.Block, error)
	// InitTree prepares the directory for first use.
	InitTree()
	// IsInit reports whether InitTree has run.
	IsInit() bool
}

type subRow struct {
	slots [SubSize]Slot
}

// Tree is the default two-level Directory implementation: a lazily grown
// slice of top rows, each holding SubSize slots.
type Tree struct {
	rows []*subRow
	init bool
}

// NewTree returns an uninitialized Tree; call InitTree before use.
func NewTree() *Tree { return &Tree{} }

func (t *Tree) InitTree() {
	if t.rows == nil {
		t.rows = make([]*subRow, 0, 16)
	}
	t.init = true
}

func (t *Tree) IsInit() bool { return t.init }

func (t *Tree) TopBlockSize() int { return len(t.rows) }

func (t *Tree) ReserveTopBlocks(n int) int {
	if n > TopSize {
		n = TopSize
	}
	if n <= len(t.rows) {
		return len(t.rows)
	}
	grown := make([]*subRow, n)
	copy(grown, t.rows)
	t.rows = grown
	return len(t.rows)
}

func (t *Tree) CheckAllocTopSubblock(i int) error {
	if i < 0 || i >= TopSize {
		return bmerr.NewAllocationFailure("bitvec.Tree.CheckAllocTopSubblock", nil)
	}
	if i >= len(t.rows) {
		t.ReserveTopBlocks(i + 1)
	}
	if t.rows[i] == nil {
		t.rows[i] = &subRow{}
	}
	return nil
}

func (t *Tree) GetBlockPtr(i, j int) Slot {
	if i < 0 || i >= len(t.rows) || t.rows[i] == nil {
		return NullSlot()
	}
	if j < 0 || j >= SubSize {
		return NullSlot()
	}
	return t.rows[i].slots[j]
}

func (t *Tree) SetBlockPtr(i, j int, s Slot) error {
	if j < 0 || j >= SubSize {
		return bmerr.NewAllocationFailure("bitvec.Tree.SetBlockPtr", nil)
	}
	if err := t.CheckAllocTopSubblock(i); err != nil {
		return err
	}
	t.rows[i].slots[j] = s
	return nil
}

// CheckAllocateBlock returns a writable Plain block at (i, j). A Null slot
// materializes as a freshly zeroed block; FullOnes materializes as an
// all-ones block; a Gap slot is decoded in place.
func (t *Tree) CheckAllocateBlock(i, j int) (*block.Block, error) {
	slot := t.GetBlockPtr(i, j)
	switch slot.Kind {
	case Plain:
		return slot.plain, nil
	case FullOnes:
		b := block.New()
		b.Fill(true)
		if err := t.SetBlockPtr(i, j, PlainSlot(b)); err != nil {
			return nil, err
		}
		return b, nil
	case GapKind:
		b := block.New()
		gap.Decode(slot.gap, b)
		if err := t.SetBlockPtr(i, j, PlainSlot(b)); err != nil {
			return nil, err
		}
		return b, nil
	default:
		b := block.New()
		if err := t.SetBlockPtr(i, j, PlainSlot(b)); err != nil {
			return nil, err
		}
		return b, nil
	}
}

func (t *Tree) CopyBitBlock(i, j int, src *block.Block) error {
	b := block.New()
	*b = *src
	return t.SetBlockPtr(i, j, PlainSlot(b))
}

func (t *Tree) ZeroBlock(i, j int) {
	_ = t.SetBlockPtr(i, j, NullSlot())
}

// Clear drops every reserved row, leaving the directory as empty as a
// freshly initialized one. The next ReserveTopBlocks allocates a new row
// slice; the dropped rows are not reused.
func (t *Tree) Clear() {
	t.rows = t.rows[:0]
}

// DeoptimizeBlock is CheckAllocateBlock: FullOnes and Gap slots are
// materialized as Plain, a Null slot becomes a zeroed Plain block, and a
// Plain slot is returned unchanged.
func (t *Tree) DeoptimizeBlock(i, j int) (*block.Block, error) {
	return t.CheckAllocateBlock(i, j)
}

var _ Directory = (*Tree)(nil)
