package mnk

// Lines returns every row, column, diagonal and anti-diagonal that is at
// least k squares long, as ordered square lists. The result is computed once
// and shared; callers must not modify it.
func (s *State) Lines() [][]int {
	if s.lines == nil {
		s.lines = buildLines(s)
	}
	return s.lines
}

func buildLines(s *State) [][]int {
	rows, cols, k := s.rules.Rows, s.rules.Cols, s.rules.K
	var lines [][]int
	add := func(row, col, drow, dcol int) {
		var line []int
		for r, c := row, col; s.InBounds(r, c); r, c = r+drow, c+dcol {
			line = append(line, s.Square(r, c))
		}
		if len(line) >= k {
			lines = append(lines, line)
		}
	}
	for r := 0; r < rows; r++ {
		add(r, 0, 0, 1)
	}
	for c := 0; c < cols; c++ {
		add(0, c, 1, 0)
	}
	// diagonals start on the top row or the left column
	for c := 0; c < cols; c++ {
		add(0, c, 1, 1)
	}
	for r := 1; r < rows; r++ {
		add(r, 0, 1, 1)
	}
	// anti-diagonals start on the top row or the right column
	for c := 0; c < cols; c++ {
		add(0, c, 1, -1)
	}
	for r := 1; r < rows; r++ {
		add(r, cols-1, 1, -1)
	}
	return lines
}
