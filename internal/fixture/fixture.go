// Package fixture provides sample deals.
package fixture

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/board"
	"gopkg.in/yaml.v3"
)

//go:embed deals.yaml
var defaultDeals []byte

// Deal is a named initial board.
type Deal struct {
	Name  string
	Board *board.Board
}

type yamlDeal struct {
	Name       string     `yaml:"name"`
	FreeCells  []string   `yaml:"free_cells"`
	Foundation []uint8    `yaml:"foundation"`
	Columns    [][]string `yaml:"columns"`
}

type yamlFile struct {
	Deals []yamlDeal `yaml:"deals"`
}

// Load reads deals in YAML form from r.
func Load(r io.Reader) ([]Deal, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f yamlFile
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode deals: %w", err)
	}

	deals := make([]Deal, 0, len(f.Deals))
	for i, yd := range f.Deals {
		name := yd.Name
		if name == "" {
			name = fmt.Sprintf("deal-%d", i+1)
		}

		var foundation [board.NumFoundation]uint8
		switch len(yd.Foundation) {
		case 0:
		case board.NumFoundation:
			copy(foundation[:], yd.Foundation)
		default:
			return nil, fmt.Errorf("deal %s: foundation has %d entries, want %d: %w", name, len(yd.Foundation), board.NumFoundation, board.ErrMalformed)
		}

		b, err := board.FromStrings(yd.FreeCells, foundation, yd.Columns)
		if err != nil {
			return nil, fmt.Errorf("deal %s: %w", name, err)
		}
		deals = append(deals, Deal{Name: name, Board: b})
	}
	return deals, nil
}

// Default returns the embedded reference deals.
func Default() []Deal {
	deals, err := Load(bytes.NewReader(defaultDeals))
	if err != nil {
		panic(err) // embedded file is checked by tests
	}
	return deals
}

// Find returns the deal with name.
func Find(deals []Deal, name string) (Deal, bool) {
	for _, deal := range deals {
		if deal.Name == name {
			return deal, true
		}
	}
	return Deal{}, false
}
