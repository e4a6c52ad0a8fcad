package mnk

import (
	"fmt"

	errs "mnk_engine/internal/errors"
)

// axes are the four line directions as (drow, dcol).
var axes = [4][2]int{{0, 1}, {1, 0}, {1, 1}, {1, -1}}

// State is a mutable m,n,k position. It is not safe for concurrent use;
// a search borrows it and must pair every DoMove with an UndoMove.
type State struct {
	rules   Rules
	board   []Player
	history []int
	ply     int
	turn    Player
	winner  Player
	lines   [][]int
}

func New(rules Rules) (*State, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &State{
		rules:   rules,
		board:   make([]Player, rules.Squares()),
		history: make([]int, 0, rules.Squares()),
		turn:    Player1,
	}, nil
}

func NewGame(cols, rows, k, piecesPerTurn, firstTurnPieces int, drop bool) (*State, error) {
	return New(Rules{
		Cols:            cols,
		Rows:            rows,
		K:               k,
		PiecesPerTurn:   piecesPerTurn,
		FirstTurnPieces: firstTurnPieces,
		Drop:            drop,
	})
}

func (s *State) Rules() Rules { return s.rules }
func (s *State) Cols() int    { return s.rules.Cols }
func (s *State) Rows() int    { return s.rules.Rows }
func (s *State) K() int       { return s.rules.K }
func (s *State) Squares() int { return len(s.board) }

func (s *State) Square(row, col int) int { return row*s.rules.Cols + col }
func (s *State) Row(sq int) int          { return sq / s.rules.Cols }
func (s *State) Col(sq int) int          { return sq % s.rules.Cols }

func (s *State) InBounds(row, col int) bool {
	return row >= 0 && row < s.rules.Rows && col >= 0 && col < s.rules.Cols
}

func (s *State) Piece(sq int) Player         { return s.board[sq] }
func (s *State) PieceAt(row, col int) Player { return s.board[s.Square(row, col)] }

func (s *State) CurrentPlayer() Player { return s.turn }
func (s *State) Winner() Player        { return s.winner }
func (s *State) HasWinner() bool       { return s.winner != None }
func (s *State) Ply() int              { return s.ply }

// OccupiedSquares equals Ply: every placement fills exactly one square.
func (s *State) OccupiedSquares() int { return s.ply }

func (s *State) IsGameOver() bool {
	return s.winner != None || s.OccupiedSquares() == len(s.board)
}

// History returns a copy of the squares played so far.
func (s *State) History() []int {
	out := make([]int, s.ply)
	copy(out, s.history[:s.ply])
	return out
}

func (s *State) HistoryAt(i int) int { return s.history[i] }

// LastMove returns the most recently placed square or -1.
func (s *State) LastMove() int {
	if s.ply == 0 {
		return -1
	}
	return s.history[s.ply-1]
}

// ElapsedTurns counts completed turns.
func (s *State) ElapsedTurns() int {
	q, p := s.rules.FirstTurnPieces, s.rules.PiecesPerTurn
	if s.ply < q {
		return 0
	}
	return 1 + (s.ply-q)/p
}

// TurnRemainingMoves is the number of pieces the current player still places
// before the turn passes.
func (s *State) TurnRemainingMoves() int {
	q, p := s.rules.FirstTurnPieces, s.rules.PiecesPerTurn
	if s.ply < q {
		return q - s.ply
	}
	return p - (s.ply-q)%p
}

func (s *State) Board() [][]Player {
	out := make([][]Player, s.rules.Rows)
	for r := range out {
		out[r] = make([]Player, s.rules.Cols)
		copy(out[r], s.board[r*s.rules.Cols:(r+1)*s.rules.Cols])
	}
	return out
}

// Pseudolegal reports whether sq is empty and, in drop mode, supported.
// It ignores whether the game is already decided.
func (s *State) Pseudolegal(sq int) bool {
	if sq < 0 || sq >= len(s.board) || s.board[sq] != None {
		return false
	}
	if !s.rules.Drop {
		return true
	}
	below := sq + s.rules.Cols
	return below >= len(s.board) || s.board[below] != None
}

func (s *State) CanPlace(sq int) bool {
	return s.winner == None && s.Pseudolegal(sq)
}

func (s *State) CanPlaceAt(row, col int) bool {
	return s.InBounds(row, col) && s.CanPlace(s.Square(row, col))
}

// Place puts the current player's piece on sq, leaving the state unchanged
// when the placement is illegal.
func (s *State) Place(sq int) error {
	if !s.CanPlace(sq) {
		return fmt.Errorf("%w: square %d", errs.ErrIllegalMove, sq)
	}
	s.DoMove(sq)
	return nil
}

func (s *State) PlaceAt(row, col int) error {
	if !s.InBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d) is off the board", errs.ErrIllegalMove, row, col)
	}
	return s.Place(s.Square(row, col))
}

// DoMove places without any legality check.
func (s *State) DoMove(sq int) {
	p := s.turn
	s.board[sq] = p
	s.history = append(s.history[:s.ply], sq)
	s.ply++
	if s.completesLine(sq, p) {
		s.winner = p
	}
	if s.turnEndsAt(s.ply) {
		s.turn = s.turn.Opponent()
	}
}

// Undo takes back the last placement.
func (s *State) Undo() error {
	if !s.CanUndo() {
		return fmt.Errorf("%w: nothing to undo", errs.ErrIllegalMove)
	}
	s.UndoMove()
	return nil
}

func (s *State) CanUndo() bool { return s.ply > 0 }

// UndoMove takes back the last placement without checking history.
func (s *State) UndoMove() {
	if s.turnEndsAt(s.ply) {
		s.turn = s.turn.Opponent()
	}
	s.winner = None
	s.ply--
	s.board[s.history[s.ply]] = None
	s.history = s.history[:s.ply]
}

func (s *State) turnEndsAt(ply int) bool {
	q := s.rules.FirstTurnPieces
	return ply >= q && (ply-q)%s.rules.PiecesPerTurn == 0
}

// completesLine scans the four axes through sq, touching at most 2(k-1)
// squares per axis.
func (s *State) completesLine(sq int, p Player) bool {
	k := s.rules.K
	if k <= 1 {
		return true
	}
	row, col := s.Row(sq), s.Col(sq)
	for _, a := range axes {
		count := 1
		for r, c := row+a[0], col+a[1]; count < k && s.InBounds(r, c) && s.board[s.Square(r, c)] == p; r, c = r+a[0], c+a[1] {
			count++
		}
		for r, c := row-a[0], col-a[1]; count < k && s.InBounds(r, c) && s.board[s.Square(r, c)] == p; r, c = r-a[0], c-a[1] {
			count++
		}
		if count >= k {
			return true
		}
	}
	return false
}

// PseudolegalCount is the number of squares a move cursor would yield.
func (s *State) PseudolegalCount() int {
	n := 0
	if s.rules.Drop {
		for col := 0; col < s.rules.Cols; col++ {
			if s.board[col] == None {
				n++
			}
		}
		return n
	}
	return len(s.board) - s.ply
}

func (s *State) LegalCount() int {
	if s.winner != None {
		return 0
	}
	return s.PseudolegalCount()
}
