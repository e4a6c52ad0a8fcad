package search

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
	errs "mnk_engine/internal/errors"
)

func position(t *testing.T, rules mnk.Rules, moves ...int) *mnk.State {
	t.Helper()
	s, err := mnk.New(rules)
	if err != nil {
		t.Fatal(err)
	}
	for _, sq := range moves {
		if err := s.Place(sq); err != nil {
			t.Fatalf("Place(%d): %v", sq, err)
		}
	}
	return s
}

type stateSnapshot struct {
	board   [][]mnk.Player
	history []int
	turn    mnk.Player
	winner  mnk.Player
}

func snapshotOf(s *mnk.State) stateSnapshot {
	return stateSnapshot{board: s.Board(), history: s.History(), turn: s.CurrentPlayer(), winner: s.Winner()}
}

func mustSearch(t *testing.T, sr Searcher, depth int) Result {
	t.Helper()
	before := snapshotOf(sr.State())
	r, err := sr.Search(context.Background(), depth)
	if err != nil {
		t.Fatalf("Search(%d): %v", depth, err)
	}
	if after := snapshotOf(sr.State()); !reflect.DeepEqual(before, after) {
		t.Fatalf("Search(%d) left the state modified", depth)
	}
	return r
}

func allSearchers(s *mnk.State, e eval.Evaluator) map[string]Searcher {
	out := make(map[string]Searcher)
	for _, name := range Names() {
		sr, _ := New(name, s, e)
		out[name] = sr
	}
	return out
}

func TestImmediateWin(t *testing.T) {
	// X at (0,0) (0,1), O at (1,1) (2,1), X to move
	s := position(t, mnk.DefaultRules(), 0, 4, 1, 7)
	for name, sr := range allSearchers(s, eval.NewTerminal()) {
		for depth := 1; depth <= 5; depth++ {
			if name == NameOrdered && depth > 3 {
				// deeper searches also see the slower forks with the same score
				break
			}
			r := mustSearch(t, sr, depth)
			if r.Move() != 2 || !r.Proof || !eval.IsWin(r.Score) {
				t.Errorf("%s depth %d: move=%d score=%d proof=%v, want the proven win at 2", name, depth, r.Move(), r.Score, r.Proof)
			}
			if depth == 1 && r.Score != eval.MaxScore-1 {
				t.Errorf("%s depth 1: score=%d, want %d", name, r.Score, eval.MaxScore-1)
			}
		}
	}
}

func TestForkWinsInThree(t *testing.T) {
	// X at (0,0) (1,1), O at (0,1) (2,2), X to move; (1,0) and (2,0) fork
	s := position(t, mnk.DefaultRules(), 0, 1, 4, 8)
	for name, sr := range allSearchers(s, eval.NewTerminal()) {
		r := mustSearch(t, sr, 3)
		if r.Score != eval.MaxScore-3 || !r.Proof {
			t.Errorf("%s: score=%d proof=%v, want %d proven", name, r.Score, r.Proof, eval.MaxScore-3)
		}
		if name != NameOrdered && r.Move() != 3 {
			t.Errorf("%s: move=%d, want 3", name, r.Move())
		}
		if m := r.Move(); m != 3 && m != 6 {
			t.Errorf("%s: move=%d is not a fork", name, m)
		}
		if len(r.PV) != 3 {
			t.Errorf("%s: pv=%v, want three moves", name, r.PV)
		}
	}
}

func TestForcedLoss(t *testing.T) {
	// O threatens (0,2) and (2,0) at once
	s := position(t, mnk.DefaultRules(), 4, 0, 7, 1, 5, 3)
	for name, sr := range allSearchers(s, eval.NewTerminal()) {
		r := mustSearch(t, sr, 2)
		if r.Score != eval.MinScore+2 || !r.Proof {
			t.Errorf("%s: score=%d proof=%v, want %d proven", name, r.Score, r.Proof, eval.MinScore+2)
		}
		if len(r.PV) != 2 {
			t.Errorf("%s: pv=%v, want two moves", name, r.PV)
		}
	}
}

func TestEmptyBoardIsDraw(t *testing.T) {
	s := position(t, mnk.DefaultRules())
	for _, name := range []string{NameMinimax, NameAlphaBeta, NameOrdered} {
		sr, err := New(name, s, eval.NewTerminal())
		if err != nil {
			t.Fatal(err)
		}
		r := mustSearch(t, sr, 9)
		if r.Score != 0 || !r.Proof {
			t.Errorf("%s: score=%d proof=%v, want a proven draw", name, r.Score, r.Proof)
		}
		if sr.Nodes() == 0 {
			t.Errorf("%s: no nodes counted", name)
		}
	}
}

func TestLeaves(t *testing.T) {
	s := position(t, mnk.DefaultRules(), 4)
	r := mustSearch(t, NewMinimax(s, eval.NewLine()), 0)
	if r.Score != eval.NewLine().Evaluate(s) || r.Proof || r.Move() != -1 {
		t.Fatalf("depth 0: %+v", r)
	}
	done := position(t, mnk.DefaultRules(), 0, 3, 1, 4, 2)
	r = mustSearch(t, NewAlphaBeta(done, eval.NewTerminal()), 4)
	if r.Score != eval.MaxScore || !r.Proof || len(r.PV) != 0 {
		t.Fatalf("decided game: %+v", r)
	}
}

func TestMateDistanceOrdering(t *testing.T) {
	// score of a line whose final position lies exactly at the horizon
	atHorizon := func(terminal, depth int) int {
		score := terminal
		for d := 1; d <= depth; d++ {
			score = normalize(score, d)
		}
		return score
	}
	if !(atHorizon(eval.MaxScore, 1) > atHorizon(eval.MaxScore, 3)) {
		t.Fatalf("a win in one must outrank a win in three")
	}
	if !(atHorizon(eval.MinScore, 5) > atHorizon(eval.MinScore, 1)) {
		t.Fatalf("a loss in five must outrank a loss in one")
	}
	for d := 1; d <= 8; d++ {
		if got := atHorizon(eval.MaxScore, d); got != eval.MaxScore-d {
			t.Fatalf("win at horizon %d scored %d", d, got)
		}
		if got := atHorizon(eval.MinScore, d); got != eval.MinScore+d {
			t.Fatalf("loss at horizon %d scored %d", d, got)
		}
	}
	if normalize(0, 3) != 0 || normalize(eval.MaxScore, 3) != eval.MaxScore {
		t.Fatal("normalize touched a score away from the horizon")
	}
}

// childValue is what the parent sees for move after a minimax search.
func childValue(t *testing.T, s *mnk.State, e eval.Evaluator, move, depth int) int {
	t.Helper()
	s.DoMove(move)
	defer s.UndoMove()
	r, err := NewMinimax(s, e).Search(context.Background(), depth-1)
	if err != nil {
		t.Fatal(err)
	}
	return r.Score
}

func checkAgainstMinimax(t *testing.T, s *mnk.State, e eval.Evaluator, depth int) {
	t.Helper()
	want := mustSearch(t, NewMinimax(s, e), depth)
	ab := mustSearch(t, NewAlphaBeta(s, e), depth)
	if ab.Score != want.Score || ab.Move() != want.Move() {
		t.Fatalf("history %v depth %d: alphabeta (%d, %d), minimax (%d, %d)",
			s.History(), depth, ab.Score, ab.Move(), want.Score, want.Move())
	}
	if len(want.PV) == 0 {
		return
	}
	wantChild := childValue(t, s, e, want.Move(), depth)
	for name, sr := range map[string]Searcher{
		NameOrdered:   NewOrdered(s, e),
		NameInsideOut: NewInsideOut(s, e),
	} {
		got := mustSearch(t, sr, depth)
		if got.Score != want.Score {
			t.Fatalf("history %v depth %d: %s score %d, minimax %d", s.History(), depth, name, got.Score, want.Score)
		}
		if v := childValue(t, s, e, got.Move(), depth); v != wantChild {
			t.Fatalf("history %v depth %d: %s picked %d worth %d, minimax picked %d worth %d",
				s.History(), depth, name, got.Move(), v, want.Move(), wantChild)
		}
	}
}

func TestAlphaBetaMatchesMinimaxExhaustive(t *testing.T) {
	rules := mnk.DefaultRules()
	e := eval.NewTerminal()
	var visit func(s *mnk.State)
	visit = func(s *mnk.State) {
		for depth := 1; depth <= s.PseudolegalCount(); depth++ {
			checkAgainstMinimax(t, s, e, depth)
		}
		if s.Ply() == 2 {
			return
		}
		for _, sq := range mnk.Collect(s.Moves()) {
			s.DoMove(sq)
			visit(s)
			s.UndoMove()
		}
	}
	visit(position(t, rules))
}

func TestAlphaBetaMatchesMinimaxWithLineEvaluator(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	rules := []mnk.Rules{
		{Cols: 4, Rows: 4, K: 3, PiecesPerTurn: 1, FirstTurnPieces: 1},
		{Cols: 5, Rows: 4, K: 4, PiecesPerTurn: 1, FirstTurnPieces: 1, Drop: true},
		{Cols: 4, Rows: 4, K: 4, PiecesPerTurn: 2, FirstTurnPieces: 1},
	}
	for _, r := range rules {
		for i := 0; i < 15; i++ {
			s := position(t, r)
			plies := 3 + rng.Intn(4)
			for p := 0; p < plies && !s.IsGameOver(); p++ {
				moves := mnk.Collect(s.Moves())
				s.DoMove(moves[rng.Intn(len(moves))])
			}
			for depth := 1; depth <= 3; depth++ {
				checkAgainstMinimax(t, s, eval.NewLine(), depth)
			}
		}
	}
}

func TestSearchCancellation(t *testing.T) {
	s := position(t, mnk.Rules{Cols: 5, Rows: 5, K: 4, PiecesPerTurn: 1, FirstTurnPieces: 1}, 12)
	before := snapshotOf(s)
	for name, sr := range allSearchers(s, eval.NewLine()) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
		r, err := sr.Search(ctx, 12)
		cancel()
		if !errors.Is(err, errs.ErrSearchCancelled) || !errors.Is(err, context.DeadlineExceeded) {
			t.Fatalf("%s: err=%v, want a cancelled search", name, err)
		}
		if r.PV != nil || r.Score != 0 || r.Proof {
			t.Fatalf("%s: cancelled search returned %+v", name, r)
		}
		if !reflect.DeepEqual(snapshotOf(s), before) {
			t.Fatalf("%s: cancellation left the state modified", name)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewMinimax(s, eval.NewTerminal()).Search(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("pre-cancelled context: %v", err)
	}
}

func TestWeightTableNoDrift(t *testing.T) {
	rng := rand.New(rand.NewSource(9))
	s := position(t, mnk.Rules{Cols: 7, Rows: 6, K: 4, PiecesPerTurn: 1, FirstTurnPieces: 1})
	fresh := NewWeightTable(s).Weights()
	w := NewWeightTable(s)
	for i := 0; i < 200; i++ {
		n := 1 + rng.Intn(6)
		for j := 0; j < n && !s.IsGameOver(); j++ {
			moves := mnk.Collect(s.Moves())
			s.DoMove(moves[rng.Intn(len(moves))])
			if rng.Intn(2) == 0 {
				w.Sync()
			}
		}
		w.Sync()
		if got, want := w.Weights(), NewWeightTable(s).Weights(); !reflect.DeepEqual(got, want) {
			t.Fatalf("round %d: synced table %v differs from a rebuilt one %v", i, got, want)
		}
		for s.CanUndo() {
			s.UndoMove()
			if rng.Intn(3) == 0 {
				w.Sync()
			}
		}
		w.Sync()
		if got := w.Weights(); !reflect.DeepEqual(got, fresh) {
			t.Fatalf("round %d: table drifted to %v", i, got)
		}
	}
}

func TestWeightTableValues(t *testing.T) {
	s := position(t, mnk.DefaultRules())
	w := NewWeightTable(s)
	if got, want := w.Weights(), []int{0, 0, 0, 0, 1, 0, 0, 0, 0}; !reflect.DeepEqual(got, want) {
		t.Fatalf("initial weights %v, want %v", got, want)
	}
	s.DoMove(0)
	w.Sync()
	if got, want := w.Weights(), []int{0, 2, 1, 2, 3, 0, 1, 0, 1}; !reflect.DeepEqual(got, want) {
		t.Fatalf("weights after a corner %v, want %v", got, want)
	}
}

func TestRegistry(t *testing.T) {
	if got, want := Names(), []string{"alphabeta", "alphabeta+", "alphabeta-io", "minimax"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	s := position(t, mnk.DefaultRules())
	if _, err := New("mcts", s, eval.NewTerminal()); !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("New(unknown) error = %v", err)
	}
	if !Valid(NameOrdered) || Valid("mcts") {
		t.Fatal("Valid disagrees with the registry")
	}
}
