package board

import (
	"strings"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
	"golang.org/x/exp/slices"
)

const emptyCell = "   "

// String renders b as a grid: free cells and foundation on the top row,
// followed by the columns, three characters per cell.
func (b *Board) String() string {
	var sb strings.Builder
	sb.WriteString("========== GAME STATE =========\n")

	free := slices.Clone(b.FreeCells)
	slices.SortFunc(free, card.Compare)
	for _, c := range free {
		sb.WriteString(c.String())
		sb.WriteByte(' ')
	}
	for i := len(free); i <= NumFreeCell; i++ {
		sb.WriteString(emptyCell)
	}

	for suit, v := range b.Foundation {
		if v == 0 {
			sb.WriteString(emptyCell)
			continue
		}
		sb.WriteString(card.New(card.Suit(suit), card.Value(v)).String())
		sb.WriteByte(' ')
	}
	sb.WriteByte('\n')

	rows := 0
	for _, column := range b.Columns {
		rows = max(rows, len(column))
	}
	for row := 0; row < rows; row++ {
		line := make([]string, 0, NumColumn)
		for _, column := range b.Columns {
			if row < len(column) {
				line = append(line, column[row].String()+" ")
			} else {
				line = append(line, emptyCell)
			}
		}
		sb.WriteString(strings.TrimRight(strings.Join(line, ""), " "))
		sb.WriteByte('\n')
	}
	return sb.String()
}
