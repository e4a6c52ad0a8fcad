package mnk

// MoveCursor yields pseudolegal squares once each. A cursor observes a live
// board and must not be used after the board changes underneath it; create
// a new one per search node.
type MoveCursor interface {
	Next() (int, bool)
}

// ScanCursor visits empty squares in row-major order, or the lowest empty
// square of each column from left to right in drop mode.
type ScanCursor struct {
	s    *State
	next int
}

func (s *State) Moves() *ScanCursor {
	return &ScanCursor{s: s}
}

func (c *ScanCursor) Next() (int, bool) {
	s := c.s
	if s.rules.Drop {
		for c.next < s.rules.Cols {
			col := c.next
			c.next++
			if sq, ok := s.dropSquare(col); ok {
				return sq, true
			}
		}
		return -1, false
	}
	for c.next < len(s.board) {
		sq := c.next
		c.next++
		if s.board[sq] == None {
			return sq, true
		}
	}
	return -1, false
}

func (s *State) dropSquare(col int) (int, bool) {
	for row := s.rules.Rows - 1; row >= 0; row-- {
		sq := s.Square(row, col)
		if s.board[sq] == None {
			return sq, true
		}
	}
	return -1, false
}

// RingCursor walks rectangular rings from the centre of the board outwards.
// The innermost ring is the centre square, row or 2-wide block depending on
// the board's shape; each following ring grows by one square on every side.
type RingCursor struct {
	s          *State
	start      int
	index      int
	row, col   int
	nrow, ncol int
}

func (s *State) InsideOutMoves() *RingCursor {
	m, n := s.rules.Cols, s.rules.Rows
	c0 := min((n-1)/2, (m-1)/2)
	even := 0
	if min(m, n)&1 == 0 {
		even = 1
	}
	start := (m + 1) * c0
	return &RingCursor{
		s:     s,
		start: start,
		index: start,
		ncol:  max(0, m-n) + even,
		nrow:  max(0, n-m) + even,
	}
}

func (c *RingCursor) Next() (int, bool) {
	m := c.s.rules.Cols
	for {
		if c.col > c.ncol {
			c.index += m - 1 - c.ncol
			c.col = 0
			c.row++
		}
		if c.row > c.nrow {
			if c.start <= 0 {
				return -1, false
			}
			c.start -= m + 1
			c.index = c.start
			c.row, c.col = 0, 0
			c.ncol += 2
			c.nrow += 2
		}
		sq := c.index
		c.advance()
		if c.s.Pseudolegal(sq) {
			return sq, true
		}
	}
}

// advance steps along the ring, jumping over its interior on middle rows.
func (c *RingCursor) advance() {
	if c.col == 0 && c.row != 0 && c.row != c.nrow && c.ncol != 0 {
		c.index += c.ncol
		c.col += c.ncol
		return
	}
	c.index++
	c.col++
}

type emptyCursor struct{}

func (emptyCursor) Next() (int, bool) { return -1, false }

// LegalMoves is Moves, but yields nothing once the game has a winner.
func (s *State) LegalMoves() MoveCursor {
	if s.winner != None {
		return emptyCursor{}
	}
	return s.Moves()
}

func (s *State) LegalInsideOutMoves() MoveCursor {
	if s.winner != None {
		return emptyCursor{}
	}
	return s.InsideOutMoves()
}

// Collect drains a cursor.
func Collect(c MoveCursor) []int {
	var out []int
	for sq, ok := c.Next(); ok; sq, ok = c.Next() {
		out = append(out, sq)
	}
	return out
}
