package engine

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mnk_engine/internal/domain/game"
	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
	"mnk_engine/internal/engine/search"
	errs "mnk_engine/internal/errors"
	"mnk_engine/internal/usecase/ai"
)

func newUseCase() *EngineUseCase {
	cfg := ai.DefaultConfig()
	cfg.MaxTimeMs = 2000
	cfg.LogPV, cfg.LogMove = false, false
	return NewEngineUseCase(cfg, zap.NewNop().Sugar())
}

func moves(pairs ...int) []game.Move {
	out := make([]game.Move, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, game.Move{Row: pairs[i], Col: pairs[i+1]})
	}
	return out
}

func TestAnalyzeImmediateWin(t *testing.T) {
	var streamed []game.DepthReport
	req := game.AnalyzeRequest{
		Rules: mnk.DefaultRules(),
		Moves: moves(0, 0, 1, 1, 0, 1, 2, 1),
	}
	resp, err := newUseCase().Analyze(context.Background(), req, func(r game.DepthReport) {
		streamed = append(streamed, r)
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Fatalf("response id %q: %v", resp.ID, err)
	}
	if resp.Move != (game.Move{Row: 0, Col: 2}) || !resp.Proof || resp.Depth != 1 || resp.Random {
		t.Fatalf("response %+v", resp)
	}
	if resp.Score != eval.MaxScore-1 || resp.CurrentPlayer != int(mnk.Player1) || resp.Winner != int(mnk.None) {
		t.Fatalf("score=%d player=%d winner=%d", resp.Score, resp.CurrentPlayer, resp.Winner)
	}
	if !reflect.DeepEqual(resp.PV, []game.Move{{Row: 0, Col: 2}}) {
		t.Fatalf("pv %v", resp.PV)
	}
	if len(streamed) != 1 || !reflect.DeepEqual(streamed, resp.Reports) {
		t.Fatalf("streamed %+v, response reports %+v", streamed, resp.Reports)
	}
	if r := resp.Reports[0]; r.Outcome != "win" || r.Distance != 1 || !strings.Contains(r.Line, "win-1\t0,2 ") {
		t.Fatalf("report %+v", r)
	}
}

func TestAnalyzeOverrides(t *testing.T) {
	req := game.AnalyzeRequest{
		Rules:     mnk.Rules{Cols: 7, Rows: 6, K: 4, PiecesPerTurn: 1, FirstTurnPieces: 1, Drop: true},
		Moves:     moves(5, 3, 5, 2),
		MaxDepth:  3,
		Evaluator: eval.NameLine,
		Searcher:  search.NameOrdered,
	}
	resp, err := newUseCase().Analyze(context.Background(), req, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Depth != 3 || len(resp.Reports) != 3 || resp.Proof {
		t.Fatalf("depth=%d reports=%d proof=%v", resp.Depth, len(resp.Reports), resp.Proof)
	}
	state, err := Replay(req.Rules, req.Moves)
	if err != nil {
		t.Fatal(err)
	}
	if !state.CanPlaceAt(resp.Move.Row, resp.Move.Col) {
		t.Fatalf("suggested move %+v is not legal", resp.Move)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name string
		req  game.AnalyzeRequest
		want error
	}{
		{"bad rules", game.AnalyzeRequest{Rules: mnk.Rules{Cols: 3, Rows: 3, K: 4, PiecesPerTurn: 1, FirstTurnPieces: 1}}, errs.ErrConfiguration},
		{"occupied square", game.AnalyzeRequest{Rules: mnk.DefaultRules(), Moves: moves(1, 1, 1, 1)}, errs.ErrIllegalMove},
		{"off the board", game.AnalyzeRequest{Rules: mnk.DefaultRules(), Moves: moves(3, 0)}, errs.ErrIllegalMove},
		{"floating piece", game.AnalyzeRequest{Rules: mnk.Rules{Cols: 7, Rows: 6, K: 4, PiecesPerTurn: 1, FirstTurnPieces: 1, Drop: true}, Moves: moves(0, 0)}, errs.ErrIllegalMove},
		{"finished game", game.AnalyzeRequest{Rules: mnk.DefaultRules(), Moves: moves(0, 0, 1, 0, 0, 1, 1, 1, 0, 2)}, errs.ErrNoLegalMoves},
		{"unknown searcher", game.AnalyzeRequest{Rules: mnk.DefaultRules(), Searcher: "mcts"}, errs.ErrConfiguration},
		{"time below minimum", game.AnalyzeRequest{Rules: mnk.DefaultRules(), MaxTimeMs: 1}, errs.ErrConfiguration},
		{"board too large", game.AnalyzeRequest{Rules: mnk.Rules{Cols: 100000, Rows: 100000, K: 5, PiecesPerTurn: 1, FirstTurnPieces: 1}}, errs.ErrConfiguration},
		{"board area overflows", game.AnalyzeRequest{Rules: mnk.Rules{Cols: 3037000500, Rows: 3037000500, K: 3, PiecesPerTurn: 1, FirstTurnPieces: 1}}, errs.ErrConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newUseCase().Analyze(context.Background(), tt.req, nil)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Analyze error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestAnalyzeCapsOverrides(t *testing.T) {
	cfg := ai.DefaultConfig()
	cfg.MaxDepth = 2
	cfg.MaxTimeMs = 100
	cfg.Evaluator = eval.NameLine
	cfg.LogPV, cfg.LogMove = false, false
	uc := NewEngineUseCase(cfg, zap.NewNop().Sugar())

	resp, err := uc.Analyze(context.Background(), game.AnalyzeRequest{
		Rules:    mnk.Rules{Cols: 4, Rows: 4, K: 3, PiecesPerTurn: 1, FirstTurnPieces: 1},
		MaxDepth: 9,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Depth != 2 || len(resp.Reports) != 2 {
		t.Fatalf("depth=%d reports=%d, want the configured limit 2", resp.Depth, len(resp.Reports))
	}

	cfg.MaxDepth = ai.MaxDepth
	uc = NewEngineUseCase(cfg, zap.NewNop().Sugar())
	start := time.Now()
	_, err = uc.Analyze(context.Background(), game.AnalyzeRequest{
		Rules:     mnk.Rules{Cols: 9, Rows: 9, K: 5, PiecesPerTurn: 1, FirstTurnPieces: 1},
		MaxTimeMs: ai.MaxTime,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Fatalf("analysis ran for %v on a 100ms server limit", elapsed)
	}

	if got := uc.configFor(game.AnalyzeRequest{MaxDepth: 3, MaxTimeMs: 50}); got.MaxDepth != 3 || got.MaxTimeMs != 50 {
		t.Fatalf("smaller overrides were not applied: %+v", got)
	}
}

func TestEngines(t *testing.T) {
	resp, err := newUseCase().Engines(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(resp.Evaluators, eval.Names()) || !reflect.DeepEqual(resp.Searchers, search.Names()) {
		t.Fatalf("engines %+v", resp)
	}
}
