package solver

import (
	"container/heap"
	"errors"

	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/board"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/move"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/packed"
	"github.com/Barabas5532/shenzhen-solitaire-solver/internal/partmap"
	"golang.org/x/exp/slices"
)

const numPart = 64

var errInconsistentState = errors.New("inconsistent state")

// Step is one element of a solution: a board and the move that produced it.
type Step struct {
	Board *board.Board `json:"state"`
	Move  move.Move    `json:"move"`
}

// Result is the outcome of a search.
type Result struct {
	// Steps runs from the initial board (move.Start) to the solved board.
	// It is empty if no solution was found.
	Steps []Step
	// Expanded is the number of expanded nodes.
	Expanded int
	// Visited is the number of distinct canonical boards seen.
	Visited int
}

// Moves returns the moves of the solution without the start sentinel.
func (r *Result) Moves() []move.Move {
	if len(r.Steps) == 0 {
		return nil
	}
	moves := make([]move.Move, 0, len(r.Steps)-1)
	for _, step := range r.Steps[1:] {
		moves = append(moves, step.Move)
	}
	return moves
}

// entry records how a node was reached. Boards are not kept for closed
// nodes, the path is rebuilt by replaying moves from the initial board.
type entry struct {
	parent int32
	move   move.Move
}

type states struct {
	initial  *board.Board
	closed   *partmap.Map[packed.Key, int32] // canonical board to arena index
	arena    []entry
	open     queue
	seq      uint64
	expanded int
}

func newStates(initial *board.Board) *states {
	st := &states{
		initial: initial.Clone(),
		closed:  partmap.New[packed.Key, int32](numPart),
		arena:   []entry{{parent: -1, move: move.NewStart()}},
	}
	st.closed.Store(st.initial.Key(), 0)
	heap.Push(&st.open, &node{board: st.initial.Clone(), idx: 0, priority: Score(st.initial)})
	return st
}

// visit applies m to a copy of the board of parent and enqueues the result
// if its canonical form has not been seen yet.
func (st *states) visit(parent *node, m move.Move) {
	b := parent.board.Clone()
	b.Apply(m)

	idx := int32(len(st.arena))
	if !st.closed.Store(b.Key(), idx) {
		return
	}
	st.arena = append(st.arena, entry{parent: parent.idx, move: m})
	st.seq++
	heap.Push(&st.open, &node{board: b, idx: idx, priority: Score(b), seq: st.seq})
}

func (st *states) moves(idx int32) []move.Move {
	var moves []move.Move
	for idx > 0 {
		e := st.arena[idx]
		moves = slices.Insert(moves, 0, e.move)
		idx = e.parent
	}
	return moves
}

func (st *states) stats() *Result {
	return &Result{Expanded: st.expanded, Visited: st.closed.Size()}
}

func (st *states) result(n *node) (*Result, error) {
	r := st.stats()

	b := st.initial.Clone()
	r.Steps = append(r.Steps, Step{Board: b, Move: move.NewStart()})
	for _, m := range st.moves(n.idx) {
		if !b.CanApply(m) {
			return nil, errInconsistentState
		}
		b = b.Clone()
		b.Apply(m)
		if !st.closed.Contains(b.Key()) {
			return nil, errInconsistentState
		}
		r.Steps = append(r.Steps, Step{Board: b, Move: m})
	}

	// the replayed board must be the one stored for n
	key := b.Key()
	if key != n.board.Key() {
		return nil, errInconsistentState
	}
	if idx, ok := st.closed.Load(key); !ok || idx != n.idx {
		return nil, errInconsistentState
	}
	return r, nil
}
