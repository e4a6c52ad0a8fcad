package mnk

// Player occupies a square or is to move. Player1 maximises scores.
type Player int8

const (
	None    Player = 0
	Player1 Player = 1
	Player2 Player = -1
)

func (p Player) Opponent() Player {
	return -p
}

func (p Player) String() string {
	switch p {
	case Player1:
		return "X"
	case Player2:
		return "O"
	default:
		return "."
	}
}
