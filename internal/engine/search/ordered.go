package search

import (
	"sort"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
)

// Ordered is alpha-beta with moves sorted by a WeightTable, heaviest first.
// Equal weights keep the row-major order.
type Ordered struct {
	*AlphaBeta
	weights *WeightTable
}

func NewOrdered(s *mnk.State, e eval.Evaluator) *Ordered {
	o := &Ordered{
		AlphaBeta: &AlphaBeta{base: base{state: s, eval: e}},
		weights:   NewWeightTable(s),
	}
	o.generate = o.orderedMoves
	return o
}

func (o *Ordered) Weights() *WeightTable {
	return o.weights
}

func (o *Ordered) orderedMoves() mnk.MoveCursor {
	o.weights.Sync()
	moves := mnk.Collect(o.state.Moves())
	sort.SliceStable(moves, func(i, j int) bool {
		return o.weights.Weight(moves[i]) > o.weights.Weight(moves[j])
	})
	return &sliceCursor{moves: moves}
}

type sliceCursor struct {
	moves []int
	next  int
}

func (c *sliceCursor) Next() (int, bool) {
	if c.next >= len(c.moves) {
		return -1, false
	}
	c.next++
	return c.moves[c.next-1], true
}
