package board

import (
	"testing"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/move"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solvedBoard() *Board {
	return MustFromStrings([]string{"xx", "xx", "xx"}, [NumFoundation]uint8{1, 9, 9, 9})
}

func TestIsSolved(t *testing.T) {
	assert.True(t, solvedBoard().IsSolved())

	b := solvedBoard()
	b.Columns[3] = []card.Card{card.New(card.Special, 1)}
	b.Foundation[card.Special] = 0
	assert.False(t, b.IsSolved())

	// empty columns with an incomplete foundation cannot be reached legally
	b = solvedBoard()
	b.Foundation[card.Red] = 8
	assert.Panics(t, func() { b.IsSolved() })

	b = solvedBoard()
	b.FreeCells[1] = card.New(card.Red, 9)
	assert.Panics(t, func() { b.IsSolved() })
}

func TestSendToFoundation(t *testing.T) {
	b := MustFromStrings([]string{"xx", "xx", "xx"}, [NumFoundation]uint8{0, 8, 8, 8},
		[]string{"R9", "G9", "B9", "S1"},
	)

	for i := 0; i < 4; i++ {
		require.False(t, b.IsSolved())
		require.True(t, b.CanSendColumnTopToFoundation(0))
		b.SendColumnTopToFoundation(0)
	}
	assert.True(t, b.IsSolved())
	assert.False(t, b.CanSendColumnTopToFoundation(0))
	assert.False(t, b.CanSendColumnTopToFoundation(-1))
	assert.False(t, b.CanSendColumnTopToFoundation(NumColumn))
}

func TestColumnToFoundationRules(t *testing.T) {
	b := MustFromStrings(nil, [NumFoundation]uint8{0, 2, 0, 0},
		[]string{"R3"},
		[]string{"R4"},
		[]string{"G1"},
		[]string{"Gx"},
		[]string{"B2"},
	)
	assert.True(t, b.CanSendColumnTopToFoundation(0))
	assert.False(t, b.CanSendColumnTopToFoundation(1))
	assert.True(t, b.CanSendColumnTopToFoundation(2), "ones always go up")
	assert.False(t, b.CanSendColumnTopToFoundation(3), "dragons never go up")
	assert.False(t, b.CanSendColumnTopToFoundation(4))
	assert.False(t, b.CanSendColumnTopToFoundation(5), "empty column")

	assert.Panics(t, func() { b.SendColumnTopToFoundation(1) })
}

func TestSendFreeCellToFoundation(t *testing.T) {
	b := MustFromStrings([]string{"xx", "B5", "R2"}, [NumFoundation]uint8{0, 1, 0, 3})

	assert.False(t, b.CanSendFreeCellToFoundation(0), "placeholder")
	assert.False(t, b.CanSendFreeCellToFoundation(1))
	assert.True(t, b.CanSendFreeCellToFoundation(2))
	assert.False(t, b.CanSendFreeCellToFoundation(3))
	assert.False(t, b.CanSendFreeCellToFoundation(-1))

	b.SendFreeCellToFoundation(2)
	assert.Equal(t, [NumFoundation]uint8{0, 2, 0, 3}, b.Foundation)
	assert.Equal(t, []card.Card{card.Placeholder, card.New(card.Black, 5)}, b.FreeCells)
}

func TestFreeCellToColumn(t *testing.T) {
	b := MustFromStrings([]string{"xx", "R5", "Gx"}, [NumFoundation]uint8{},
		[]string{"B6"},
		[]string{"R6"},
		[]string{"Bx"},
		[]string{"S1"},
	)

	assert.False(t, b.CanSendFreeCellToColumn(0, 4), "placeholders stay")
	assert.True(t, b.CanSendFreeCellToColumn(1, 0))
	assert.False(t, b.CanSendFreeCellToColumn(1, 1), "same suit")
	assert.False(t, b.CanSendFreeCellToColumn(1, 2), "onto dragon")
	assert.False(t, b.CanSendFreeCellToColumn(1, 3), "onto special")
	assert.True(t, b.CanSendFreeCellToColumn(1, 4), "empty column")
	assert.True(t, b.CanSendFreeCellToColumn(2, 4), "dragon to empty column")
	assert.False(t, b.CanSendFreeCellToColumn(2, 0), "dragon onto card")
	assert.False(t, b.CanSendFreeCellToColumn(3, 4))
	assert.False(t, b.CanSendFreeCellToColumn(1, NumColumn))

	b.SendFreeCellToColumn(1, 0)
	assert.Equal(t, []card.Card{card.New(card.Black, 6), card.New(card.Red, 5)}, b.Columns[0])
	assert.Equal(t, []card.Card{card.Placeholder, card.Dragon(card.Green)}, b.FreeCells)
}

func TestColumnToFreeCell(t *testing.T) {
	b := MustFromStrings([]string{"xx", "R5"}, [NumFoundation]uint8{},
		[]string{"B6", "Gx"},
	)

	assert.False(t, b.CanSendColumnTopToFreeCell(1), "empty column")
	require.True(t, b.CanSendColumnTopToFreeCell(0))
	b.SendColumnTopToFreeCell(0)
	assert.Equal(t, []card.Card{card.Placeholder, card.New(card.Red, 5), card.Dragon(card.Green)}, b.FreeCells)
	assert.False(t, b.CanSendColumnTopToFreeCell(0), "free cells full")
}

func TestCollectDragons(t *testing.T) {
	b := MustFromStrings([]string{"Rx", "G3"}, [NumFoundation]uint8{},
		[]string{"B6", "Rx"},
		[]string{"Rx"},
		[]string{"R9", "Rx"},
		[]string{"Gx"},
	)

	assert.False(t, b.CanCollectDragons(card.Green))
	assert.False(t, b.CanCollectDragons(card.Special))
	require.True(t, b.CanCollectDragons(card.Red))

	b.CollectDragons(card.Red)
	assert.Equal(t, []card.Card{card.New(card.Green, 3), card.Placeholder}, b.FreeCells)
	assert.Equal(t, []card.Card{card.New(card.Black, 6)}, b.Columns[0])
	assert.Empty(t, b.Columns[1])
	assert.Equal(t, []card.Card{card.New(card.Red, 9)}, b.Columns[2])
	for _, column := range b.Columns {
		for _, c := range column {
			assert.False(t, c.IsDragonOf(card.Red))
		}
	}
}

func TestCollectDragonsBuried(t *testing.T) {
	b := MustFromStrings(nil, [NumFoundation]uint8{},
		[]string{"Rx", "B6"},
		[]string{"Rx"},
		[]string{"Rx"},
		[]string{"Rx"},
	)
	assert.False(t, b.CanCollectDragons(card.Red), "one dragon is covered")
}

func TestCannotCollectDragonsWhenStorageFull(t *testing.T) {
	b := MustFromStrings([]string{"R1", "G1", "B1"}, [NumFoundation]uint8{},
		[]string{"Rx"},
		[]string{"Rx"},
		[]string{"Rx"},
		[]string{"Rx"},
	)
	assert.False(t, b.CanCollectDragons(card.Red))

	// a dragon in a free cell makes room for the placeholder
	b = MustFromStrings([]string{"Rx", "G1", "B1"}, [NumFoundation]uint8{},
		[]string{"Rx"},
		[]string{"Rx"},
		[]string{"Rx"},
	)
	require.True(t, b.CanCollectDragons(card.Red))
	b.CollectDragons(card.Red)
	assert.Equal(t, []card.Card{card.New(card.Green, 1), card.New(card.Black, 1), card.Placeholder}, b.FreeCells)
}

func TestRunLength(t *testing.T) {
	b := MustFromStrings(nil, [NumFoundation]uint8{},
		[]string{"R9", "B8", "R7", "G6"},
		[]string{"G6", "R9", "B8", "R7"},
		[]string{"Bx", "B5"},
		[]string{"R5", "R4"},
	)
	assert.Equal(t, 4, b.RunLength(0))
	assert.Equal(t, 3, b.RunLength(1))
	assert.Equal(t, 1, b.RunLength(2))
	assert.Equal(t, 1, b.RunLength(3))
	assert.Equal(t, 0, b.RunLength(4))
	assert.Equal(t, 0, b.RunLength(-1))
}

func TestMoveRun(t *testing.T) {
	newBoard := func() *Board {
		return MustFromStrings(nil, [NumFoundation]uint8{},
			[]string{"Gx", "R9", "B8", "R7", "G6"},
			[]string{"B9"},
			[]string{"G8"},
			nil,
		)
	}

	b := newBoard()
	assert.False(t, b.CanMoveRun(0, 0, 1), "same column")
	assert.False(t, b.CanMoveRun(0, 3, 5), "longer than run")
	assert.False(t, b.CanMoveRun(0, 3, 0))
	assert.False(t, b.CanMoveRun(0, 1, 3), "B8 onto B9")
	assert.False(t, b.CanMoveRun(0, 1, 1))
	assert.True(t, b.CanMoveRun(0, 2, 2), "R7 onto G8")
	assert.True(t, b.CanMoveRun(0, 3, 4), "empty column")

	for size := 1; size <= 4; size++ {
		b := newBoard()
		require.True(t, b.CanMoveRun(0, 3, size))
		moved := append([]card.Card(nil), b.Columns[0][5-size:]...)
		b.MoveRun(0, 3, size)
		assert.Len(t, b.Columns[0], 5-size)
		assert.Equal(t, moved, b.Columns[3])
	}

	b = newBoard()
	b.MoveRun(0, 2, 2)
	assert.Equal(t, []card.Card{card.New(card.Green, 8), card.New(card.Red, 7), card.New(card.Green, 6)}, b.Columns[2])
	assert.Panics(t, func() { b.MoveRun(0, 1, 1) })
}

func TestApply(t *testing.T) {
	b := MustFromStrings([]string{"R5"}, [NumFoundation]uint8{},
		[]string{"B6"},
		[]string{"G1"},
	)

	for _, m := range []move.Move{
		move.NewFreeCellToColumn(0, 0),
		move.NewColumnToFoundation(1),
		move.NewRunToColumn(0, 1, 2),
		move.NewColumnToFreeCell(1),
	} {
		require.True(t, b.CanApply(m), m.String())
		b.Apply(m)
	}
	assert.Equal(t, []card.Card{card.New(card.Black, 6)}, b.Columns[1])
	assert.Equal(t, []card.Card{card.New(card.Red, 5)}, b.FreeCells)
	assert.Equal(t, uint8(1), b.Foundation[card.Green])

	assert.False(t, b.CanApply(move.NewStart()))
	assert.Panics(t, func() { b.Apply(move.NewStart()) })
	assert.Panics(t, func() { b.Apply(move.NewCollectDragons(card.Red)) })
}

func TestCloneIsIndependent(t *testing.T) {
	b := MustFromStrings([]string{"R5"}, [NumFoundation]uint8{}, []string{"B6", "G5"})
	c := b.Clone()
	c.SendColumnTopToFreeCell(0)
	c.Foundation[1] = 3

	assert.Equal(t, []card.Card{card.New(card.Red, 5)}, b.FreeCells)
	assert.Len(t, b.Columns[0], 2)
	assert.Zero(t, b.Foundation[1])
}

func TestCardCount(t *testing.T) {
	b := MustFromStrings([]string{"R5", "xx"}, [NumFoundation]uint8{}, []string{"B6", "G5"}, nil, []string{"S1"})
	assert.Equal(t, 5, b.CardCount())
}

func TestString(t *testing.T) {
	b := MustFromStrings([]string{"R5"}, [NumFoundation]uint8{1, 0, 2, 0}, []string{"B6", "G5"}, nil, []string{"Rx"})
	want := "========== GAME STATE =========\n" +
		"R5          S1    G2    \n" +
		"B6    Rx\n" +
		"G5\n"
	assert.Equal(t, want, b.String())
}
