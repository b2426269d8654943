package board

import (
	"hash/maphash"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/packed"
	"golang.org/x/exp/slices"
)

// compareColumns orders columns by their bottom card, then by the cards
// above it. An empty column orders lowest.
func compareColumns(a, b []card.Card) int { return slices.CompareFunc(a, b, card.Compare) }

func (b *Board) sortedProjection() ([]card.Card, [][]card.Card) {
	free := slices.Clone(b.FreeCells)
	slices.SortFunc(free, card.Compare)

	columns := make([][]card.Card, NumColumn)
	copy(columns, b.Columns[:])
	slices.SortFunc(columns, compareColumns)
	return free, columns
}

// Canonical returns a copy of b with sorted free cells and columns. Boards
// differing only in the order of their free cells or columns have the
// same canonical form.
func (b *Board) Canonical() *Board { return FromKey(b.Key()) }

// FromKey returns the board packed in k.
func FromKey(k packed.Key) *Board {
	free, foundation, columns := packed.Unpack(k)
	return &Board{FreeCells: free, Foundation: foundation, Columns: columns}
}

// Key returns the packed canonical form of b.
func (b *Board) Key() packed.Key {
	free, columns := b.sortedProjection()
	return packed.Pack(free, b.Foundation, columns)
}

// Equal returns true if b and o have the same canonical form.
func (b *Board) Equal(o *Board) bool { return b.Key() == o.Key() }

// Hash returns a hash value of the canonical form of b.
func (b *Board) Hash(seed maphash.Seed) uint64 { return b.Key().Hash(seed) }
