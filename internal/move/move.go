// Package move provides the move descriptor recorded along a solution path.
package move

import (
	"encoding/json"
	"fmt"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
)

// Kind identifies the variant of a move.
type Kind uint8

// Move kinds.
const (
	Start Kind = iota
	ColumnToFoundation
	FreeCellToFoundation
	CollectDragons
	RunToColumn
	ColumnToFreeCell
	FreeCellToColumn
	numKind
)

var kindNames = [numKind]string{
	"Start",
	"ColumnToFoundation",
	"FreeCellToFoundation",
	"CollectDragons",
	"RunToColumn",
	"ColumnToFreeCell",
	"FreeCellToColumn",
}

func (k Kind) String() string {
	if k >= numKind {
		return fmt.Sprintf("Kind(%d)", k)
	}
	return kindNames[k]
}

// Move is a closed tagged variant. Only the fields belonging to Kind are
// meaningful:
//
//	ColumnToFoundation    Column
//	FreeCellToFoundation  Index
//	CollectDragons        Suit
//	RunToColumn           From, To, Size
//	ColumnToFreeCell      Column
//	FreeCellToColumn      Index, Column
type Move struct {
	Kind   Kind
	Column int
	Index  int
	Suit   card.Suit
	From   int
	To     int
	Size   int
}

// NewStart returns the sentinel move of the initial node.
func NewStart() Move { return Move{Kind: Start} }

// NewColumnToFoundation returns a move sending the top card of column to the foundation.
func NewColumnToFoundation(column int) Move {
	return Move{Kind: ColumnToFoundation, Column: column}
}

// NewFreeCellToFoundation returns a move sending free cell index to the foundation.
func NewFreeCellToFoundation(index int) Move {
	return Move{Kind: FreeCellToFoundation, Index: index}
}

// NewCollectDragons returns a move collecting the four dragons of suit.
func NewCollectDragons(suit card.Suit) Move { return Move{Kind: CollectDragons, Suit: suit} }

// NewRunToColumn returns a move relocating the top size cards of column from onto column to.
func NewRunToColumn(from, to, size int) Move {
	return Move{Kind: RunToColumn, From: from, To: to, Size: size}
}

// NewColumnToFreeCell returns a move parking the top card of column in a free cell.
func NewColumnToFreeCell(column int) Move { return Move{Kind: ColumnToFreeCell, Column: column} }

// NewFreeCellToColumn returns a move placing free cell index onto column.
func NewFreeCellToColumn(index, column int) Move {
	return Move{Kind: FreeCellToColumn, Index: index, Column: column}
}

func (m Move) String() string {
	switch m.Kind {
	case Start:
		return "start"
	case ColumnToFoundation:
		return fmt.Sprintf("move column %d to foundation", m.Column)
	case FreeCellToFoundation:
		return fmt.Sprintf("move free cell %d to foundation", m.Index)
	case CollectDragons:
		return fmt.Sprintf("collect %s dragons", m.Suit)
	case RunToColumn:
		return fmt.Sprintf("move %d cards from column %d to column %d", m.Size, m.From, m.To)
	case ColumnToFreeCell:
		return fmt.Sprintf("move column %d to free cell", m.Column)
	case FreeCellToColumn:
		return fmt.Sprintf("move free cell %d to column %d", m.Index, m.Column)
	}
	return m.Kind.String()
}

type jsonMove struct {
	Kind   string     `json:"kind"`
	Column *int       `json:"column,omitempty"`
	Index  *int       `json:"index,omitempty"`
	Suit   *card.Suit `json:"suit,omitempty"`
	From   *int       `json:"from,omitempty"`
	To     *int       `json:"to,omitempty"`
	Size   *int       `json:"size,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface.
func (m Move) MarshalJSON() ([]byte, error) {
	if m.Kind >= numKind {
		return nil, fmt.Errorf("invalid move kind %d", m.Kind)
	}
	jm := jsonMove{Kind: m.Kind.String()}
	switch m.Kind {
	case ColumnToFoundation, ColumnToFreeCell:
		jm.Column = &m.Column
	case FreeCellToFoundation:
		jm.Index = &m.Index
	case CollectDragons:
		jm.Suit = &m.Suit
	case RunToColumn:
		jm.From, jm.To, jm.Size = &m.From, &m.To, &m.Size
	case FreeCellToColumn:
		jm.Index, jm.Column = &m.Index, &m.Column
	}
	return json.Marshal(jm)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (m *Move) UnmarshalJSON(b []byte) error {
	var jm jsonMove
	if err := json.Unmarshal(b, &jm); err != nil {
		return err
	}

	kind := numKind
	for i, name := range kindNames {
		if name == jm.Kind {
			kind = Kind(i)
		}
	}
	if kind == numKind {
		return fmt.Errorf("unknown move kind %q", jm.Kind)
	}

	need := func(name string, p *int) (int, error) {
		if p == nil {
			return 0, fmt.Errorf("move %s: missing %s", kind, name)
		}
		return *p, nil
	}

	r := Move{Kind: kind}
	var err error
	switch kind {
	case ColumnToFoundation, ColumnToFreeCell:
		r.Column, err = need("column", jm.Column)
	case FreeCellToFoundation:
		r.Index, err = need("index", jm.Index)
	case CollectDragons:
		if jm.Suit == nil {
			return fmt.Errorf("move %s: missing suit", kind)
		}
		r.Suit = *jm.Suit
	case RunToColumn:
		if r.From, err = need("from", jm.From); err != nil {
			return err
		}
		if r.To, err = need("to", jm.To); err != nil {
			return err
		}
		r.Size, err = need("size", jm.Size)
	case FreeCellToColumn:
		if r.Index, err = need("index", jm.Index); err != nil {
			return err
		}
		r.Column, err = need("column", jm.Column)
	}
	if err != nil {
		return err
	}
	*m = r
	return nil
}
