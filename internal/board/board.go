// Package board implements the board state of the game: move legality,
// move application and the canonical form used to deduplicate layouts.
package board

import (
	"fmt"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/move"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/packed"
	"golang.org/x/exp/slices"
)

// Board dimensions.
const (
	NumFreeCell   = packed.NumFreeCell
	NumFoundation = packed.NumFoundation
	NumColumn     = packed.NumColumn
	NumDragon     = 4 // dragons per numeric suit
)

// Board is a layout of the game.
type Board struct {
	// FreeCells holds parked cards and face-down placeholders of collected dragons.
	FreeCells []card.Card
	// Foundation holds the highest collected value per suit, indexed by suit.
	Foundation [NumFoundation]uint8
	// Columns are ordered bottom to top.
	Columns [NumColumn][]card.Card
}

// New returns an empty board.
func New() *Board { return &Board{} }

// Clone returns a deep copy of b.
func (b *Board) Clone() *Board {
	c := &Board{
		FreeCells:  slices.Clone(b.FreeCells),
		Foundation: b.Foundation,
	}
	for i, column := range b.Columns {
		c.Columns[i] = slices.Clone(column)
	}
	return c
}

// CardCount returns the number of cards in columns and free cells.
func (b *Board) CardCount() int {
	n := len(b.FreeCells)
	for _, column := range b.Columns {
		n += len(column)
	}
	return n
}

func validColumn(col int) bool { return col >= 0 && col < NumColumn }

func (b *Board) validFreeCell(i int) bool { return i >= 0 && i < len(b.FreeCells) }

func (b *Board) top(col int) (card.Card, bool) {
	if !validColumn(col) || len(b.Columns[col]) == 0 {
		return card.Card{}, false
	}
	column := b.Columns[col]
	return column[len(column)-1], true
}

func (b *Board) pop(col int) card.Card {
	column := b.Columns[col]
	c := column[len(column)-1]
	b.Columns[col] = column[:len(column)-1]
	return c
}

func (b *Board) removeFreeCell(i int) card.Card {
	c := b.FreeCells[i]
	b.FreeCells = slices.Delete(b.FreeCells, i, i+1)
	return c
}

func (b *Board) acceptsFoundation(c card.Card) bool {
	if !c.HasValue() || int(c.Suit) >= NumFoundation {
		return false
	}
	return b.Foundation[c.Suit] == uint8(c.Value)-1
}

func must(ok bool, format string, args ...any) {
	if !ok {
		panic(fmt.Sprintf("board: illegal move: "+format, args...))
	}
}

// IsSolved returns true if every column is empty. It panics if an empty
// board does not hold the completed foundation and three placeholders,
// as such a layout cannot be reached by legal moves.
func (b *Board) IsSolved() bool {
	for _, column := range b.Columns {
		if len(column) != 0 {
			return false
		}
	}

	if b.Foundation != [NumFoundation]uint8{1, 9, 9, 9} {
		panic(fmt.Sprintf("board: inconsistent solved state: foundation %v", b.Foundation))
	}
	if len(b.FreeCells) != NumFreeCell {
		panic(fmt.Sprintf("board: inconsistent solved state: %d free cells", len(b.FreeCells)))
	}
	for _, c := range b.FreeCells {
		if c != card.Placeholder {
			panic(fmt.Sprintf("board: inconsistent solved state: free cell holds %s", c))
		}
	}
	return true
}

// CanSendColumnTopToFoundation returns true if the top card of column col
// may be moved to the foundation.
func (b *Board) CanSendColumnTopToFoundation(col int) bool {
	c, ok := b.top(col)
	if !ok || !c.HasValue() {
		return false
	}
	return c.Value == 1 || b.acceptsFoundation(c)
}

// SendColumnTopToFoundation moves the top card of column col to the foundation.
func (b *Board) SendColumnTopToFoundation(col int) {
	must(b.CanSendColumnTopToFoundation(col), "column %d to foundation", col)
	c := b.pop(col)
	b.Foundation[c.Suit] = uint8(c.Value)
}

// CanSendFreeCellToFoundation returns true if free cell i may be moved to the foundation.
func (b *Board) CanSendFreeCellToFoundation(i int) bool {
	return b.validFreeCell(i) && b.acceptsFoundation(b.FreeCells[i])
}

// SendFreeCellToFoundation moves free cell i to the foundation.
func (b *Board) SendFreeCellToFoundation(i int) {
	must(b.CanSendFreeCellToFoundation(i), "free cell %d to foundation", i)
	c := b.removeFreeCell(i)
	b.Foundation[c.Suit] = uint8(c.Value)
}

// CanSendColumnTopToFreeCell returns true if the top card of column col may be parked.
func (b *Board) CanSendColumnTopToFreeCell(col int) bool {
	_, ok := b.top(col)
	return ok && len(b.FreeCells) < NumFreeCell
}

// SendColumnTopToFreeCell parks the top card of column col in a free cell.
func (b *Board) SendColumnTopToFreeCell(col int) {
	must(b.CanSendColumnTopToFreeCell(col), "column %d to free cell", col)
	b.FreeCells = append(b.FreeCells, b.pop(col))
}

// CanSendFreeCellToColumn returns true if free cell i may be placed on column col.
func (b *Board) CanSendFreeCellToColumn(i, col int) bool {
	if !b.validFreeCell(i) || !validColumn(col) {
		return false
	}
	c := b.FreeCells[i]
	if c.Suit == card.FaceDown {
		return false
	}
	target, ok := b.top(col)
	if !ok {
		return true
	}
	if target.IsDragon() {
		return false
	}
	return c.CanStack(target)
}

// SendFreeCellToColumn places free cell i on column col.
func (b *Board) SendFreeCellToColumn(i, col int) {
	must(b.CanSendFreeCellToColumn(i, col), "free cell %d to column %d", i, col)
	b.Columns[col] = append(b.Columns[col], b.removeFreeCell(i))
}

// CanCollectDragons returns true if all dragons of suit are reachable and
// a free cell is left for the placeholder.
func (b *Board) CanCollectDragons(suit card.Suit) bool {
	if !suit.IsNumeric() {
		return false
	}

	reachable, others := 0, 0
	for _, c := range b.FreeCells {
		if c.IsDragonOf(suit) {
			reachable++
		} else {
			others++
		}
	}
	if others >= NumFreeCell {
		return false
	}

	for col := range b.Columns {
		if c, ok := b.top(col); ok && c.IsDragonOf(suit) {
			reachable++
		}
	}
	return reachable == NumDragon
}

// CollectDragons removes the four dragons of suit and occupies a free cell
// with a face-down placeholder.
func (b *Board) CollectDragons(suit card.Suit) {
	must(b.CanCollectDragons(suit), "collect %s dragons", suit)

	removed := 0
	for col := range b.Columns {
		if c, ok := b.top(col); ok && c.IsDragonOf(suit) {
			b.pop(col)
			removed++
		}
	}
	free := b.FreeCells[:0]
	for _, c := range b.FreeCells {
		if c.IsDragonOf(suit) {
			removed++
			continue
		}
		free = append(free, c)
	}
	b.FreeCells = append(free, card.Placeholder)

	if removed != NumDragon || len(b.FreeCells) > NumFreeCell {
		panic(fmt.Sprintf("board: collected %d %s dragons into %d free cells", removed, suit, len(b.FreeCells)))
	}
}

// RunLength returns the number of cards at the top of column col forming a
// sequence where each card stacks onto the one below.
func (b *Board) RunLength(col int) int {
	if !validColumn(col) {
		return 0
	}
	column := b.Columns[col]
	if len(column) == 0 {
		return 0
	}
	n := 1
	for i := len(column) - 1; i > 0 && column[i].CanStack(column[i-1]); i-- {
		n++
	}
	return n
}

// CanMoveRun returns true if the top size cards of column from may be moved onto column to.
func (b *Board) CanMoveRun(from, to, size int) bool {
	if !validColumn(from) || !validColumn(to) || from == to || size < 1 {
		return false
	}
	if size > b.RunLength(from) {
		return false
	}
	target, ok := b.top(to)
	if !ok {
		return true
	}
	column := b.Columns[from]
	return column[len(column)-size].CanStack(target)
}

// MoveRun moves the top size cards of column from onto column to, keeping their order.
func (b *Board) MoveRun(from, to, size int) {
	must(b.CanMoveRun(from, to, size), "%d cards from column %d to column %d", size, from, to)
	column := b.Columns[from]
	n := len(column) - size
	b.Columns[to] = append(b.Columns[to], column[n:]...)
	b.Columns[from] = column[:n]
}

// CanApply returns true if m is legal on b.
func (b *Board) CanApply(m move.Move) bool {
	switch m.Kind {
	case move.ColumnToFoundation:
		return b.CanSendColumnTopToFoundation(m.Column)
	case move.FreeCellToFoundation:
		return b.CanSendFreeCellToFoundation(m.Index)
	case move.CollectDragons:
		return b.CanCollectDragons(m.Suit)
	case move.RunToColumn:
		return b.CanMoveRun(m.From, m.To, m.Size)
	case move.ColumnToFreeCell:
		return b.CanSendColumnTopToFreeCell(m.Column)
	case move.FreeCellToColumn:
		return b.CanSendFreeCellToColumn(m.Index, m.Column)
	}
	return false
}

// Apply applies m to b. It panics if m is not legal.
func (b *Board) Apply(m move.Move) {
	switch m.Kind {
	case move.ColumnToFoundation:
		b.SendColumnTopToFoundation(m.Column)
	case move.FreeCellToFoundation:
		b.SendFreeCellToFoundation(m.Index)
	case move.CollectDragons:
		b.CollectDragons(m.Suit)
	case move.RunToColumn:
		b.MoveRun(m.From, m.To, m.Size)
	case move.ColumnToFreeCell:
		b.SendColumnTopToFreeCell(m.Column)
	case move.FreeCellToColumn:
		b.SendFreeCellToColumn(m.Index, m.Column)
	default:
		must(false, "%s", m)
	}
}
