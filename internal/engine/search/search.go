package search

import (
	"context"
	"fmt"
	"sync/atomic"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
	errs "mnk_engine/internal/errors"
)

// Result is the outcome of one fixed-depth search. PV is empty only when the
// searched position was a leaf. Proof marks a game-theoretic value.
type Result struct {
	Score int   `json:"score"`
	PV    []int `json:"pv"`
	Proof bool  `json:"proof"`
}

// Move returns the first move of the principal variation or -1.
func (r Result) Move() int {
	if len(r.PV) == 0 {
		return -1
	}
	return r.PV[0]
}

func (r Result) ScoreScaled() float64 {
	return float64(r.Score) / eval.MaxScore
}

// Searcher explores the game tree below the state it was built for. Search
// always leaves the state as it found it, also when ctx is cancelled, in
// which case it returns ErrSearchCancelled and no result. Nodes may be read
// from another goroutine while Search runs.
type Searcher interface {
	Search(ctx context.Context, depth int) (Result, error)
	Nodes() int64
	State() *mnk.State
	Evaluator() eval.Evaluator
}

type base struct {
	state *mnk.State
	eval  eval.Evaluator
	nodes atomic.Int64
}

func (b *base) Nodes() int64              { return b.nodes.Load() }
func (b *base) State() *mnk.State         { return b.state }
func (b *base) Evaluator() eval.Evaluator { return b.eval }

// enter counts the node and reports cancellation.
func (b *base) enter(ctx context.Context) error {
	b.nodes.Add(1)
	return ctx.Err()
}

// leaf scores depth-limited and decided positions.
func (b *base) leaf(depth int) (Result, bool) {
	if b.state.IsGameOver() {
		return Result{Score: b.eval.Evaluate(b.state), Proof: true}, true
	}
	if depth <= 0 {
		return Result{Score: b.eval.Evaluate(b.state)}, true
	}
	return Result{}, false
}

func cancelled(err error) error {
	return fmt.Errorf("%w: %w", errs.ErrSearchCancelled, err)
}

// worst is one step beyond the score range, so any real score improves it.
func worst(maxi bool) int {
	if maxi {
		return eval.MinScore - 1
	}
	return eval.MaxScore + 1
}

func better(maxi bool, score, best int) bool {
	if maxi {
		return score > best
	}
	return score < best
}

// normalize pulls wins and losses that end exactly at the horizon one step
// towards zero, so a shorter win outranks a longer one and a longer loss
// outranks a shorter one.
func normalize(score, depth int) int {
	switch score {
	case eval.MinScore + depth - 1:
		return score + 1
	case eval.MaxScore - depth + 1:
		return score - 1
	}
	return score
}

// proven decides whether a node's value is exact: the best line must be
// proven and either every sibling was proven too or the mover has a forced
// win regardless of the rest.
func proven(bestProof, allProof bool, score int, mover mnk.Player) bool {
	return bestProof && (allProof || eval.IsDecisive(score, mover))
}

func extendPV(pv []int, move int, child []int) []int {
	pv = append(pv[:0], move)
	return append(pv, child...)
}
