package search

import (
	"context"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
)

// AlphaBeta is a fail-soft alpha-beta search over the moves produced by
// generate.
type AlphaBeta struct {
	base
	generate func() mnk.MoveCursor
}

func NewAlphaBeta(s *mnk.State, e eval.Evaluator) *AlphaBeta {
	return &AlphaBeta{
		base:     base{state: s, eval: e},
		generate: func() mnk.MoveCursor { return s.Moves() },
	}
}

// NewInsideOut tries central squares first.
func NewInsideOut(s *mnk.State, e eval.Evaluator) *AlphaBeta {
	return &AlphaBeta{
		base:     base{state: s, eval: e},
		generate: func() mnk.MoveCursor { return s.InsideOutMoves() },
	}
}

func (a *AlphaBeta) Search(ctx context.Context, depth int) (Result, error) {
	a.nodes.Store(0)
	r, err := a.search(ctx, depth, eval.MinScore-1, eval.MaxScore+1)
	if err != nil {
		return Result{}, cancelled(err)
	}
	return r, nil
}

func (a *AlphaBeta) search(ctx context.Context, depth, alpha, beta int) (Result, error) {
	if err := a.enter(ctx); err != nil {
		return Result{}, err
	}
	if r, ok := a.leaf(depth); ok {
		return r, nil
	}

	s := a.state
	mover := s.CurrentPlayer()
	maxi := mover == eval.PlayerMax
	best := worst(maxi)
	var pv []int
	bestProof, allProof := false, true

	moves := a.generate()
	for sq, ok := moves.Next(); ok; sq, ok = moves.Next() {
		s.DoMove(sq)
		child, err := a.search(ctx, depth-1, alpha, beta)
		s.UndoMove()
		if err != nil {
			return Result{}, err
		}
		allProof = allProof && child.Proof
		if !better(maxi, child.Score, best) {
			continue
		}
		best = child.Score
		pv = extendPV(pv, sq, child.PV)
		bestProof = child.Proof
		if maxi {
			alpha = max(alpha, best)
		} else {
			beta = min(beta, best)
		}
		if alpha >= beta {
			break
		}
	}

	return Result{
		Score: normalize(best, depth),
		PV:    pv,
		Proof: proven(bestProof, allProof, best, mover),
	}, nil
}
