// Package packed provides a memory efficient, comparable representation of a board layout.
package packed

import (
	"hash/maphash"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
)

// Capacities of a packed layout.
const (
	NumFreeCell   = 3
	NumFoundation = 4
	NumColumn     = 8
	MaxCard       = 40 // 3*9 numeric cards, 3*4 dragons, 1 special card

	// KeySize is the number of bytes of a Key: free cells, foundation and
	// all cards with one terminator byte per column.
	KeySize = NumFreeCell + NumFoundation + MaxCard + NumColumn
)

const sep byte = 0 // column terminator and free cell padding

// Key is a compressed representation of a board layout usable as map key.
type Key [KeySize]byte

// Hash returns a hash value of k.
func (k Key) Hash(seed maphash.Seed) uint64 { return maphash.Bytes(seed, k[:]) }

// EncodeCard returns the byte representation of c. Valid cards never encode to zero.
func EncodeCard(c card.Card) byte { return byte(c.Suit)<<4 | byte(c.Value) }

// DecodeCard returns the card encoded in b.
func DecodeCard(b byte) card.Card { return card.Card{Suit: card.Suit(b >> 4), Value: card.Value(b & 0x0f)} }

// Pack returns the packed representation of a layout. The caller is
// responsible for passing free cells and columns in canonical order.
func Pack(freeCells []card.Card, foundation [NumFoundation]uint8, columns [][]card.Card) Key {
	var k Key
	if len(freeCells) > NumFreeCell || len(columns) > NumColumn {
		panic("packed: layout exceeds capacity")
	}
	for i, c := range freeCells {
		k[i] = EncodeCard(c)
	}
	copy(k[NumFreeCell:], foundation[:])

	i := NumFreeCell + NumFoundation
	for _, column := range columns {
		if i+len(column) >= KeySize {
			panic("packed: layout exceeds capacity")
		}
		for _, c := range column {
			k[i] = EncodeCard(c)
			i++
		}
		k[i] = sep
		i++
	}
	return k
}

// Unpack returns the layout stored in k.
func Unpack(k Key) (freeCells []card.Card, foundation [NumFoundation]uint8, columns [NumColumn][]card.Card) {
	for i := 0; i < NumFreeCell && k[i] != sep; i++ {
		freeCells = append(freeCells, DecodeCard(k[i]))
	}
	copy(foundation[:], k[NumFreeCell:NumFreeCell+NumFoundation])

	i := NumFreeCell + NumFoundation
	for col := 0; col < NumColumn; col++ {
		for ; i < KeySize && k[i] != sep; i++ {
			columns[col] = append(columns[col], DecodeCard(k[i]))
		}
		i++ // terminator
	}
	return freeCells, foundation, columns
}
