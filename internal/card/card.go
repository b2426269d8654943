// Package card provides the card and suit primitives of the game.
package card

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Suit is the suit of a card.
type Suit uint8

// Suits. The order defines the card ordering and the foundation slot index.
const (
	Special Suit = iota
	Red
	Green
	Black
	FaceDown
)

// NumSuits is the number of suits including FaceDown.
const NumSuits = 5

// NumericSuits are the suits forming numeric runs and owning dragons.
var NumericSuits = [...]Suit{Red, Green, Black}

var suitNames = [NumSuits]string{"Special", "Red", "Green", "Black", "FaceDown"}

// short names used by the compact text form
var suitLetters = [NumSuits]byte{'S', 'R', 'G', 'B', 'x'}

// IsValid returns true if s is one of the defined suits.
func (s Suit) IsValid() bool { return s < NumSuits }

// IsNumeric returns true for Red, Green and Black.
func (s Suit) IsNumeric() bool { return s == Red || s == Green || s == Black }

func (s Suit) String() string {
	if !s.IsValid() {
		return fmt.Sprintf("Suit(%d)", s)
	}
	return suitNames[s]
}

// ParseSuit returns the suit for its name.
func ParseSuit(name string) (Suit, error) {
	for i, n := range suitNames {
		if n == name {
			return Suit(i), nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", name)
}

// MarshalJSON implements the json.Marshaler interface.
func (s Suit) MarshalJSON() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid suit %d", s)
	}
	return json.Marshal(suitNames[s])
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (s *Suit) UnmarshalJSON(b []byte) error {
	var name string
	if err := json.Unmarshal(b, &name); err != nil {
		return err
	}
	suit, err := ParseSuit(name)
	if err != nil {
		return err
	}
	*s = suit
	return nil
}

// Value is the numeric value of a card.
type Value uint8

// NoValue is the value of dragons and face-down placeholders. It orders
// lower than every numeric value.
const NoValue Value = 0

// MaxValue is the highest card value.
const MaxValue Value = 9

// Card is an immutable playing card.
type Card struct {
	Suit  Suit
	Value Value
}

// Placeholder is the face-down card left in a free cell by a dragon collection.
var Placeholder = Card{Suit: FaceDown, Value: NoValue}

// Dragon returns the dragon of suit.
func Dragon(suit Suit) Card { return Card{Suit: suit, Value: NoValue} }

// New returns a numeric card.
func New(suit Suit, value Value) Card { return Card{Suit: suit, Value: value} }

// HasValue returns true if the card carries a numeric value.
func (c Card) HasValue() bool { return c.Value != NoValue }

// IsDragon returns true if the card is a dragon.
func (c Card) IsDragon() bool { return c.Value == NoValue && c.Suit != FaceDown }

// IsDragonOf returns true if the card is a dragon of suit.
func (c Card) IsDragonOf(suit Suit) bool { return c.IsDragon() && c.Suit == suit }

// CanStack returns true if c may be placed on top of target in a column.
func (c Card) CanStack(target Card) bool {
	if c.Suit == Special || target.Suit == Special {
		return false
	}
	if c.IsDragon() || target.IsDragon() {
		return false
	}
	if !c.HasValue() || !target.HasValue() { // face-down placeholders
		return false
	}
	return c.Suit != target.Suit && c.Value+1 == target.Value
}

// Compare orders cards by suit and then by value.
func Compare(a, b Card) int {
	switch {
	case a.Suit < b.Suit:
		return -1
	case a.Suit > b.Suit:
		return 1
	case a.Value < b.Value:
		return -1
	case a.Value > b.Value:
		return 1
	}
	return 0
}

// Less returns true if a orders before b.
func (c Card) Less(b Card) bool { return Compare(c, b) < 0 }

// IsValid returns true if suit and value form a card of the game.
func (c Card) IsValid() bool {
	switch {
	case c.Suit == Special:
		return c.Value == 1
	case c.Suit.IsNumeric():
		return c.Value <= MaxValue
	case c.Suit == FaceDown:
		return c.Value == NoValue
	}
	return false
}

// String returns the compact two character form of the card.
func (c Card) String() string {
	if c.Suit == FaceDown {
		return "xx"
	}
	if !c.Suit.IsValid() {
		return "??"
	}
	if !c.HasValue() {
		return string([]byte{suitLetters[c.Suit], 'x'})
	}
	return fmt.Sprintf("%c%d", suitLetters[c.Suit], c.Value)
}

// ErrInvalidCard is returned by Parse for malformed card strings.
var ErrInvalidCard = errors.New("invalid card")

// Parse parses the compact two character form of a card.
func Parse(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	if s == "xx" {
		return Placeholder, nil
	}
	var suit Suit
	switch s[0] {
	case 'S':
		suit = Special
	case 'R':
		suit = Red
	case 'G':
		suit = Green
	case 'B':
		suit = Black
	default:
		return Card{}, fmt.Errorf("%w: unknown suit in %q", ErrInvalidCard, s)
	}
	var c Card
	switch v := s[1]; {
	case v == 'x':
		c = Dragon(suit)
	case v >= '1' && v <= '9':
		c = New(suit, Value(v-'0'))
	default:
		return Card{}, fmt.Errorf("%w: unknown value in %q", ErrInvalidCard, s)
	}
	if !c.IsValid() {
		return Card{}, fmt.Errorf("%w: %q", ErrInvalidCard, s)
	}
	return c, nil
}

type jsonCard struct {
	Suit  *Suit  `json:"suit"`
	Value *uint8 `json:"value"`
}

// MarshalJSON implements the json.Marshaler interface.
func (c Card) MarshalJSON() ([]byte, error) {
	jc := jsonCard{Suit: &c.Suit}
	if c.HasValue() {
		v := uint8(c.Value)
		jc.Value = &v
	}
	return json.Marshal(jc)
}

// UnmarshalJSON implements the json.Unmarshaler interface.
// Both keys are required and no others are accepted.
func (c *Card) UnmarshalJSON(b []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return err
	}
	if fields == nil {
		return fmt.Errorf("%w: null card", ErrInvalidCard)
	}
	for _, key := range []string{"suit", "value"} {
		if _, ok := fields[key]; !ok {
			return fmt.Errorf("%w: missing %s", ErrInvalidCard, key)
		}
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var jc jsonCard
	if err := dec.Decode(&jc); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidCard, err)
	}
	if jc.Suit == nil {
		return fmt.Errorf("%w: null suit", ErrInvalidCard)
	}
	card := Card{Suit: *jc.Suit}
	if jc.Value != nil {
		if *jc.Value == 0 || Value(*jc.Value) > MaxValue {
			return fmt.Errorf("%w: value %d out of range", ErrInvalidCard, *jc.Value)
		}
		card.Value = Value(*jc.Value)
	}
	if !card.IsValid() {
		return fmt.Errorf("%w: %s with value %d", ErrInvalidCard, card.Suit, card.Value)
	}
	*c = card
	return nil
}
