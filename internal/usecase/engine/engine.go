package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mnk_engine/internal/domain/game"
	"mnk_engine/internal/domain/mnk"
	"mnk_engine/internal/engine/eval"
	"mnk_engine/internal/engine/search"
	"mnk_engine/internal/usecase/ai"
)

// EngineUseCase answers analysis requests. Every request replays its moves on
// a fresh game, so calls are independent and may run concurrently.
type EngineUseCase struct {
	defaults ai.Config
	log      *zap.SugaredLogger
}

func NewEngineUseCase(defaults ai.Config, log *zap.SugaredLogger) *EngineUseCase {
	return &EngineUseCase{
		defaults: defaults,
		log:      log,
	}
}

func (e *EngineUseCase) Engines(_ context.Context) (game.EnginesResponse, error) {
	return game.EnginesResponse{
		Evaluators: eval.Names(),
		Searchers:  search.Names(),
	}, nil
}

// Analyze picks a move for the player to move after req.Moves. onDepth, when
// set, receives every completed iteration as it finishes.
func (e *EngineUseCase) Analyze(ctx context.Context, req game.AnalyzeRequest, onDepth func(game.DepthReport)) (game.AnalyzeResponse, error) {
	id := uuid.NewString()
	log := e.log.With("analysis_id", id)

	state, err := Replay(req.Rules, req.Moves)
	if err != nil {
		log.Errorw("failed to replay position", "error", err)
		return game.AnalyzeResponse{}, err
	}

	engine, err := ai.New(state, e.configFor(req), log)
	if err != nil {
		log.Errorw("invalid engine settings", "error", err)
		return game.AnalyzeResponse{}, err
	}
	if onDepth != nil {
		engine.OnDepth(func(r ai.DepthReport) {
			onDepth(ToDepthReport(r))
		})
	}

	log.Infow("analysis started",
		"rules", req.Rules,
		"ply", state.Ply(),
		"evaluator", engine.Config().Evaluator,
		"searcher", engine.Config().Searcher,
	)
	decision, err := engine.Think(ctx)
	if err != nil {
		log.Errorw("analysis failed", "error", err)
		return game.AnalyzeResponse{}, err
	}
	log.Infow("analysis finished",
		"depth", decision.Depth,
		"score", decision.Result.Score,
		"proof", decision.Result.Proof,
		"random", decision.Random,
		"nodes", decision.Nodes,
		"elapsed", decision.Elapsed,
	)

	return toResponse(id, state, decision), nil
}

// configFor applies request overrides. The configured depth and time are
// also the ceiling for what a request may ask for.
func (e *EngineUseCase) configFor(req game.AnalyzeRequest) ai.Config {
	cfg := e.defaults
	if req.MaxDepth != 0 {
		cfg.MaxDepth = min(req.MaxDepth, e.defaults.MaxDepth)
	}
	if req.MaxTimeMs != 0 {
		cfg.MaxTimeMs = min(req.MaxTimeMs, e.defaults.MaxTimeMs)
	}
	if req.Evaluator != "" {
		cfg.Evaluator = req.Evaluator
	}
	if req.Searcher != "" {
		cfg.Searcher = req.Searcher
	}
	return cfg
}

// Replay builds a game from rules and checks every move on the way.
func Replay(rules mnk.Rules, moves []game.Move) (*mnk.State, error) {
	state, err := mnk.New(rules)
	if err != nil {
		return nil, err
	}
	for i, m := range moves {
		if err := state.PlaceAt(m.Row, m.Col); err != nil {
			return nil, fmt.Errorf("move %d (%d, %d): %w", i, m.Row, m.Col, err)
		}
	}
	return state, nil
}

func ToDepthReport(r ai.DepthReport) game.DepthReport {
	pv := make([]game.Move, 0, len(r.Variation))
	for _, sq := range r.Variation {
		pv = append(pv, game.Move{Row: sq.Row, Col: sq.Col})
	}
	return game.DepthReport{
		Depth:     r.Depth,
		ElapsedMs: r.Elapsed.Milliseconds(),
		Nodes:     r.Nodes,
		Score:     r.Result.Score,
		Proof:     r.Result.Proof,
		Outcome:   r.Outcome,
		Distance:  r.Distance,
		PV:        pv,
		Line:      r.String(),
		Scaled:    r.Result.ScoreScaled(),
	}
}

func toResponse(id string, state *mnk.State, d ai.Decision) game.AnalyzeResponse {
	resp := game.AnalyzeResponse{
		ID:            id,
		Move:          game.Move{Row: d.Row, Col: d.Col},
		Score:         d.Result.Score,
		ScoreScaled:   d.Result.ScoreScaled(),
		Proof:         d.Result.Proof,
		Depth:         d.Depth,
		Random:        d.Random,
		Nodes:         d.Nodes,
		ElapsedMs:     d.Elapsed.Milliseconds(),
		PV:            make([]game.Move, 0, len(d.Result.PV)),
		Reports:       make([]game.DepthReport, 0, len(d.Reports)),
		CurrentPlayer: int(state.CurrentPlayer()),
		Winner:        int(state.Winner()),
	}
	for _, sq := range d.Result.PV {
		resp.PV = append(resp.PV, game.Move{Row: state.Row(sq), Col: state.Col(sq)})
	}
	for _, r := range d.Reports {
		resp.Reports = append(resp.Reports, ToDepthReport(r))
	}
	return resp
}
