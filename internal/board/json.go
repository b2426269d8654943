package board

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/packed"
)

// ErrMalformed is returned for serialized boards violating the schema.
var ErrMalformed = errors.New("malformed board")

type jsonBoard struct {
	TopLeftStorage  *[]card.Card   `json:"top_left_storage"`
	TopRightStorage *[]int         `json:"top_right_storage"`
	Columns         *[]*[]card.Card `json:"columns"`
}

// MarshalJSON implements the json.Marshaler interface.
func (b *Board) MarshalJSON() ([]byte, error) {
	free := b.FreeCells
	if free == nil {
		free = []card.Card{}
	}
	foundation := make([]int, NumFoundation)
	for i, v := range b.Foundation {
		foundation[i] = int(v)
	}
	columns := make([]*[]card.Card, NumColumn)
	for i, column := range b.Columns {
		column := column
		if column == nil {
			column = []card.Card{}
		}
		columns[i] = &column
	}
	return json.Marshal(jsonBoard{TopLeftStorage: &free, TopRightStorage: &foundation, Columns: &columns})
}

// UnmarshalJSON implements the json.Unmarshaler interface. Unknown fields,
// missing fields and wrong arities are rejected.
func (b *Board) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var jb jsonBoard
	if err := dec.Decode(&jb); err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	switch {
	case jb.TopLeftStorage == nil:
		return fmt.Errorf("%w: missing top_left_storage", ErrMalformed)
	case jb.TopRightStorage == nil:
		return fmt.Errorf("%w: missing top_right_storage", ErrMalformed)
	case jb.Columns == nil:
		return fmt.Errorf("%w: missing columns", ErrMalformed)
	case len(*jb.TopRightStorage) != NumFoundation:
		return fmt.Errorf("%w: top_right_storage has %d entries, want %d", ErrMalformed, len(*jb.TopRightStorage), NumFoundation)
	case len(*jb.Columns) != NumColumn:
		return fmt.Errorf("%w: columns has %d entries, want %d", ErrMalformed, len(*jb.Columns), NumColumn)
	}

	r := Board{FreeCells: *jb.TopLeftStorage}
	for i, v := range *jb.TopRightStorage {
		if v < 0 || v > int(card.MaxValue) {
			return fmt.Errorf("%w: foundation value %d out of range", ErrMalformed, v)
		}
		r.Foundation[i] = uint8(v)
	}
	for i, column := range *jb.Columns {
		if column == nil {
			return fmt.Errorf("%w: column %d is null", ErrMalformed, i)
		}
		if len(*column) != 0 {
			r.Columns[i] = *column
		}
	}
	if len(r.FreeCells) == 0 {
		r.FreeCells = nil
	}

	if err := r.Validate(); err != nil {
		return err
	}
	*b = r
	return nil
}

// Decode reads one serialized board from r.
func Decode(r io.Reader) (*Board, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses a serialized board.
func Parse(data []byte) (*Board, error) {
	b := New()
	if err := b.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks that b is a layout the game could produce.
func (b *Board) Validate() error {
	if len(b.FreeCells) > NumFreeCell {
		return fmt.Errorf("%w: %d free cells, at most %d allowed", ErrMalformed, len(b.FreeCells), NumFreeCell)
	}
	if n := b.CardCount(); n > packed.MaxCard {
		return fmt.Errorf("%w: %d cards, at most %d allowed", ErrMalformed, n, packed.MaxCard)
	}
	if b.Foundation[card.Special] > 1 {
		return fmt.Errorf("%w: special foundation value %d", ErrMalformed, b.Foundation[card.Special])
	}
	for suit, v := range b.Foundation {
		if v > uint8(card.MaxValue) {
			return fmt.Errorf("%w: %s foundation value %d", ErrMalformed, card.Suit(suit), v)
		}
	}
	for _, c := range b.FreeCells {
		if !c.IsValid() {
			return fmt.Errorf("%w: invalid free cell card %s", ErrMalformed, c)
		}
	}
	for i, column := range b.Columns {
		for _, c := range column {
			if !c.IsValid() || c.Suit == card.FaceDown {
				return fmt.Errorf("%w: invalid card %s in column %d", ErrMalformed, c, i)
			}
		}
	}
	return nil
}

// FromStrings builds a board from cards in their compact text form.
func FromStrings(freeCells []string, foundation [NumFoundation]uint8, columns [][]string) (*Board, error) {
	if len(columns) > NumColumn {
		return nil, fmt.Errorf("%w: %d columns, at most %d allowed", ErrMalformed, len(columns), NumColumn)
	}
	b := &Board{Foundation: foundation}
	for _, s := range freeCells {
		c, err := card.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		b.FreeCells = append(b.FreeCells, c)
	}
	for i, column := range columns {
		for _, s := range column {
			c, err := card.Parse(s)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			b.Columns[i] = append(b.Columns[i], c)
		}
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// MustFromStrings is like FromStrings but panics on error.
func MustFromStrings(freeCells []string, foundation [NumFoundation]uint8, columns ...[]string) *Board {
	b, err := FromStrings(freeCells, foundation, columns)
	if err != nil {
		panic(err)
	}
	return b
}
