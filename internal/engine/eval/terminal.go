package eval

import "mnk_engine/internal/domain/mnk"

// Terminal only recognises decided games. Undecided positions score 0.
type Terminal struct{}

func NewTerminal() *Terminal {
	return &Terminal{}
}

func (Terminal) Evaluate(s *mnk.State) int {
	return TerminalScore(s)
}
