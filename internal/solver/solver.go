// Package solver implements a best-first search over board states.
package solver

import (
	"container/heap"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/board"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/card"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/move"
	"github.com/rs/zerolog/log"
)

// ErrNoSolution is returned if the search space was exhausted, or a limit
// imposed by the caller was hit, before a solved board was reached.
var ErrNoSolution = errors.New("no solution found")

// context is polled every checkInterval expansions
const checkInterval = 1024

// Options configures a search.
type Options struct {
	// MaxExpansions bounds the number of expanded nodes, 0 means unlimited.
	MaxExpansions int
}

// Runner plays a deal.
type Runner interface {
	Play(ctx context.Context, initial *board.Board) (*Result, error)
}

var _ Runner = (*Solver)(nil)

// Solver holds the search configuration. Each Play call owns its open and
// closed sets, so a Solver may be used by several goroutines.
type Solver struct {
	opts Options
}

// New returns a solver.
func New(opts Options) *Solver { return &Solver{opts: opts} }

// Score is the priority of a board, higher is more promising: the sum of
// the foundation minus the cards of all columns holding a dragon.
func Score(b *board.Board) int {
	score := 0
	for _, v := range b.Foundation {
		score += int(v)
	}
	for _, column := range b.Columns {
		for _, c := range column {
			if c.IsDragon() {
				score -= len(column)
				break
			}
		}
	}
	return score
}

// Play searches a path from initial to a solved board. initial is not
// modified. On failure the returned result carries the search statistics
// and the error wraps ErrNoSolution.
func (s *Solver) Play(ctx context.Context, initial *board.Board) (*Result, error) {
	start := time.Now()
	st := newStates(initial)

	log.Debug().
		Int("cards", initial.CardCount()).
		Int("max-expansions", s.opts.MaxExpansions).
		Int("partitions", st.closed.NumPart()).
		Msg("search-started")

	for st.open.Len() > 0 {
		if s.opts.MaxExpansions > 0 && st.expanded >= s.opts.MaxExpansions {
			log.Debug().Int("expanded", st.expanded).Msg("search-limit-reached")
			return st.stats(), fmt.Errorf("%w: expansion limit %d reached", ErrNoSolution, s.opts.MaxExpansions)
		}
		if st.expanded%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				log.Debug().Int("expanded", st.expanded).Err(err).Msg("search-cancelled")
				return st.stats(), fmt.Errorf("%w: %w", ErrNoSolution, err)
			}
		}

		n := heap.Pop(&st.open).(*node)
		if n.board.IsSolved() {
			result, err := st.result(n)
			if err != nil {
				return nil, err
			}
			log.Debug().
				Int("expanded", st.expanded).
				Int("visited", st.closed.Size()).
				Int("steps", len(result.Steps)).
				Dur("duration", time.Since(start)).
				Msg("search-finished")
			return result, nil
		}
		st.expanded++
		st.expand(n)
	}

	log.Debug().Int("expanded", st.expanded).Int("visited", st.closed.Size()).Msg("search-exhausted")
	return st.stats(), ErrNoSolution
}

// expand enqueues the children of n. A legal foundation move is forced:
// it becomes the only child.
func (st *states) expand(n *node) {
	b := n.board

	for col := 0; col < board.NumColumn; col++ {
		if b.CanSendColumnTopToFoundation(col) {
			st.visit(n, move.NewColumnToFoundation(col))
			return
		}
	}
	for i := 0; i < board.NumFreeCell; i++ {
		if b.CanSendFreeCellToFoundation(i) {
			st.visit(n, move.NewFreeCellToFoundation(i))
			return
		}
	}

	for _, suit := range card.NumericSuits {
		if b.CanCollectDragons(suit) {
			st.visit(n, move.NewCollectDragons(suit))
		}
	}

	for from := 0; from < board.NumColumn; from++ {
		runLength := b.RunLength(from)
		for to := 0; to < board.NumColumn; to++ {
			if from == to {
				continue
			}
			for size := runLength; size > 0; size-- {
				if b.CanMoveRun(from, to, size) {
					st.visit(n, move.NewRunToColumn(from, to, size))
				}
			}
		}
	}

	for col := 0; col < board.NumColumn; col++ {
		if b.CanSendColumnTopToFreeCell(col) {
			st.visit(n, move.NewColumnToFreeCell(col))
		}
	}

	for i := 0; i < board.NumFreeCell; i++ {
		for col := 0; col < board.NumColumn; col++ {
			if b.CanSendFreeCellToColumn(i, col) {
				st.visit(n, move.NewFreeCellToColumn(i, col))
			}
		}
	}
}
