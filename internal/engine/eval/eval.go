package eval

import "mnk_engine/internal/domain/mnk"

const (
	MaxScore = 1 << 30
	MinScore = -MaxScore

	// heuristic scores stay inside this bound so they never collide with
	// proven results
	HeuristicBound = MaxScore / 2
)

// PlayerMax is the player whose score is maximised.
const PlayerMax = mnk.Player1

// Evaluator scores a position from PlayerMax's point of view.
type Evaluator interface {
	Evaluate(s *mnk.State) int
}

// TerminalScore scores a position purely by its winner.
func TerminalScore(s *mnk.State) int {
	switch s.Winner() {
	case PlayerMax:
		return MaxScore
	case mnk.None:
		return 0
	default:
		return MinScore
	}
}

// IsWin reports a proven win for PlayerMax.
func IsWin(score int) bool { return score > HeuristicBound }

// IsLoss reports a proven win for the minimising player.
func IsLoss(score int) bool { return score < -HeuristicBound }

// IsDecisive reports a proven win for p.
func IsDecisive(score int, p mnk.Player) bool {
	if p == PlayerMax {
		return IsWin(score)
	}
	return IsLoss(score)
}

// MateDistance is the number of plies to the end of a proven win or loss.
func MateDistance(score int) int {
	if score < 0 {
		score = -score
	}
	return MaxScore - score
}

func clampHeuristic(score int) int {
	return max(-HeuristicBound, min(HeuristicBound, score))
}
