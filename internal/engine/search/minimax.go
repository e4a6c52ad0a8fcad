package search

import (
	"context"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
)

// Minimax searches every pseudolegal move to the full depth.
type Minimax struct {
	base
}

func NewMinimax(s *mnk.State, e eval.Evaluator) *Minimax {
	return &Minimax{base: base{state: s, eval: e}}
}

func (m *Minimax) Search(ctx context.Context, depth int) (Result, error) {
	m.nodes.Store(0)
	r, err := m.search(ctx, depth)
	if err != nil {
		return Result{}, cancelled(err)
	}
	return r, nil
}

func (m *Minimax) search(ctx context.Context, depth int) (Result, error) {
	if err := m.enter(ctx); err != nil {
		return Result{}, err
	}
	if r, ok := m.leaf(depth); ok {
		return r, nil
	}

	s := m.state
	mover := s.CurrentPlayer()
	maxi := mover == eval.PlayerMax
	best := worst(maxi)
	var pv []int
	bestProof, allProof := false, true

	moves := s.Moves()
	for sq, ok := moves.Next(); ok; sq, ok = moves.Next() {
		s.DoMove(sq)
		child, err := m.search(ctx, depth-1)
		s.UndoMove()
		if err != nil {
			return Result{}, err
		}
		allProof = allProof && child.Proof
		if better(maxi, child.Score, best) {
			best = child.Score
			pv = extendPV(pv, sq, child.PV)
			bestProof = child.Proof
		}
	}

	return Result{
		Score: normalize(best, depth),
		PV:    pv,
		Proof: proven(bestProof, allProof, best, mover),
	}, nil
}
