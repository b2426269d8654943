package solver

import "github.com/Barabas5532/shenzhen-solitaire-solver/internal/board"

type node struct {
	board    *board.Board
	idx      int32 // arena index
	priority int
	seq      uint64 // insertion order, breaks priority ties
}

// queue is a max heap on priority, FIFO among equal priorities.
type queue []*node

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority > q[j].priority
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *queue) Push(x any) { *q = append(*q, x.(*node)) }

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return x
}
