package eval

import "mnk_engine/internal/domain/mnk"

// maxShift caps 2^count so that long lines cannot overflow the sum.
const maxShift = 40

// Line rates every line of the board by the threats each player can still
// complete in it. A window of k squares holding c pieces of one player and
// none of the other is worth 2^c-1 to that player; a line is worth the best
// set of non-overlapping windows.
type Line struct{}

func NewLine() *Line {
	return &Line{}
}

func (Line) Evaluate(s *mnk.State) int {
	if s.IsGameOver() {
		return TerminalScore(s)
	}
	k := s.K()
	buf := make([]int, 2*(max(s.Cols(), s.Rows())+1))
	score := 0
	for _, line := range s.Lines() {
		score += linePotential(s, line, k, mnk.Player1, buf)
		score -= linePotential(s, line, k, mnk.Player2, buf)
	}
	return clampHeuristic(score)
}

func linePotential(s *mnk.State, line []int, k int, p mnk.Player, buf []int) int {
	windows := len(line) - k + 1
	if windows <= 0 {
		return 0
	}
	scores, best := buf[:windows], buf[windows:2*windows]

	own, opp := 0, 0
	for i, sq := range line {
		switch s.Piece(sq) {
		case p:
			own++
		case p.Opponent():
			opp++
		}
		if i >= k {
			switch s.Piece(line[i-k]) {
			case p:
				own--
			case p.Opponent():
				opp--
			}
		}
		if w := i - k + 1; w >= 0 {
			scores[w] = 0
			if opp == 0 {
				scores[w] = 1<<min(own, maxShift) - 1
			}
		}
	}

	for i := windows - 1; i >= 0; i-- {
		take := scores[i]
		if i+k < windows {
			take += best[i+k]
		}
		skip := 0
		if i+1 < windows {
			skip = best[i+1]
		}
		best[i] = max(take, skip)
	}
	return best[0]
}
