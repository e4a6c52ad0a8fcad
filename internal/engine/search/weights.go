package search

import "mnk_engine/internal/domain/mnk"

var directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// WeightTable rates squares for move ordering. A square starts at its
// distance to the nearest edge and gains k-d for every piece d steps away
// along a line, d < k. The table tracks the moves it has applied and
// follows the state at ply granularity through Sync.
type WeightTable struct {
	state   *mnk.State
	weights []int
	applied []int
}

func NewWeightTable(s *mnk.State) *WeightTable {
	w := &WeightTable{
		state:   s,
		weights: make([]int, s.Squares()),
	}
	rows, cols := s.Rows(), s.Cols()
	for sq := range w.weights {
		r, c := s.Row(sq), s.Col(sq)
		w.weights[sq] = min(r, c, rows-1-r, cols-1-c)
	}
	w.Sync()
	return w
}

// Sync rewinds the moves that no longer match the state's history and
// replays the ones it has not seen yet.
func (w *WeightTable) Sync() {
	s := w.state
	common := 0
	for common < len(w.applied) && common < s.Ply() && w.applied[common] == s.HistoryAt(common) {
		common++
	}
	for len(w.applied) > common {
		last := len(w.applied) - 1
		w.update(w.applied[last], -1)
		w.applied = w.applied[:last]
	}
	for i := common; i < s.Ply(); i++ {
		sq := s.HistoryAt(i)
		w.update(sq, 1)
		w.applied = append(w.applied, sq)
	}
}

func (w *WeightTable) update(sq, sign int) {
	s := w.state
	k := s.K()
	row, col := s.Row(sq), s.Col(sq)
	for _, d := range directions {
		for j := 1; j < k; j++ {
			r, c := row+d[0]*j, col+d[1]*j
			if !s.InBounds(r, c) {
				break
			}
			w.weights[s.Square(r, c)] += sign * (k - j)
		}
	}
}

func (w *WeightTable) Weight(sq int) int {
	return w.weights[sq]
}

// Weights returns a copy of the table.
func (w *WeightTable) Weights() []int {
	return append([]int(nil), w.weights...)
}
