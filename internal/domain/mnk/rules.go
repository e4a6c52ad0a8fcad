package mnk

import (
	"fmt"

	errs "mnk_engine/internal/errors"
)

// MaxSquares bounds the board area so that a State always fits in memory.
const MaxSquares = 1 << 16

// Rules describe an m,n,k-game with p pieces per turn, q pieces on the
// first turn and optional gravity.
type Rules struct {
	Cols            int  `json:"cols"`
	Rows            int  `json:"rows"`
	K               int  `json:"k"`
	PiecesPerTurn   int  `json:"pieces_per_turn"`
	FirstTurnPieces int  `json:"first_turn_pieces"`
	Drop            bool `json:"drop"`
}

// DefaultRules is tic-tac-toe.
func DefaultRules() Rules {
	return Rules{Cols: 3, Rows: 3, K: 3, PiecesPerTurn: 1, FirstTurnPieces: 1}
}

func (r Rules) Validate() error {
	switch {
	case r.Cols <= 0:
		return fmt.Errorf("%w: cols must be positive, got %d", errs.ErrConfiguration, r.Cols)
	case r.Rows <= 0:
		return fmt.Errorf("%w: rows must be positive, got %d", errs.ErrConfiguration, r.Rows)
	case r.Cols > MaxSquares || r.Rows > MaxSquares || r.Cols*r.Rows > MaxSquares:
		return fmt.Errorf("%w: %dx%d board exceeds %d squares", errs.ErrConfiguration, r.Cols, r.Rows, MaxSquares)
	case r.K <= 0:
		return fmt.Errorf("%w: k must be positive, got %d", errs.ErrConfiguration, r.K)
	case r.K > r.Cols && r.K > r.Rows:
		return fmt.Errorf("%w: k=%d does not fit a %dx%d board", errs.ErrConfiguration, r.K, r.Cols, r.Rows)
	case r.PiecesPerTurn <= 0:
		return fmt.Errorf("%w: pieces per turn must be positive, got %d", errs.ErrConfiguration, r.PiecesPerTurn)
	case r.FirstTurnPieces <= 0:
		return fmt.Errorf("%w: first turn pieces must be positive, got %d", errs.ErrConfiguration, r.FirstTurnPieces)
	}
	return nil
}

func (r Rules) Squares() int {
	return r.Cols * r.Rows
}
