package eval

import (
	"math/rand"
	"sync"
	"time"

	"mnk_engine/internal/domain/mnk"
)

// Random scores undecided positions with noise in [-HeuristicBound, HeuristicBound).
type Random struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandom() *Random {
	return NewRandomSeeded(time.Now().UnixNano())
}

func NewRandomSeeded(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) Evaluate(s *mnk.State) int {
	if s.HasWinner() {
		return TerminalScore(s)
	}
	if s.IsGameOver() {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rng.Intn(2*HeuristicBound) - HeuristicBound
}
