package game

import "mnk_engine/internal/domain/mnk"

// AnalyzeRequest describes a position by its rules and the moves played from
// the empty board. Zero-valued AI settings fall back to the server defaults.
//
// @name AnalyzeRequest
type AnalyzeRequest struct {
	Rules     mnk.Rules `json:"rules"`
	Moves     []Move    `json:"moves"`
	MaxDepth  int       `json:"max_depth,omitempty"`
	MaxTimeMs int       `json:"max_time_ms,omitempty"`
	Evaluator string    `json:"evaluator,omitempty"`
	Searcher  string    `json:"searcher,omitempty"`
}

// @name AnalyzeResponse
type AnalyzeResponse struct {
	ID            string        `json:"id"`
	Move          Move          `json:"move"`
	Score         int           `json:"score"`
	ScoreScaled   float64       `json:"score_scaled"`
	Proof         bool          `json:"proof"`
	Depth         int           `json:"depth"`
	Random        bool          `json:"random"`
	Nodes         int64         `json:"nodes"`
	ElapsedMs     int64         `json:"elapsed_ms"`
	PV            []Move        `json:"pv"`
	Reports       []DepthReport `json:"reports"`
	CurrentPlayer int           `json:"current_player"`
	Winner        int           `json:"winner"`
}

// @name EnginesResponse
type EnginesResponse struct {
	Evaluators []string `json:"evaluators"`
	Searchers  []string `json:"searchers"`
}

// StreamMessage is the envelope for websocket traffic: "depth" carries a
// DepthReport, "result" an AnalyzeResponse and "error" a message.
type StreamMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}
