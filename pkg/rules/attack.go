package rules

var knightDeltas = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var diagonalDeltas = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

var orthoDeltas = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// IsSquareAttacked returns true iff sq is attacked by color by. Pawn
// attackers are checked from the two diagonal squares in by's attacking
// direction, knights from the 8 L-squares, bishops/queens along diagonal
// rays, rooks/queens along orthogonal rays (a ray stops at the first
// occupied square, and only counts as an attacker if it is the right color
// and kind), and the king from the 8 adjacent squares.
func (b *Board) IsSquareAttacked(sq Square, by Color) bool {
	file, rank := int(sq.File()), int(sq.Rank())

	pawnDirs := [2][2]int{{-1, -1}, {1, -1}}
	if by == Black {
		pawnDirs = [2][2]int{{-1, 1}, {1, 1}}
	}
	for _, d := range pawnDirs {
		if nsq, ok := offset(file, rank, d[0], d[1]); ok && b.pieces[by][Pawn]&BitMask(nsq) != 0 {
			return true
		}
	}

	for _, d := range knightDeltas {
		if nsq, ok := offset(file, rank, d[0], d[1]); ok && b.pieces[by][Knight]&BitMask(nsq) != 0 {
			return true
		}
	}

	for _, d := range diagonalDeltas {
		if b.scanRay(sq, d[0], d[1], by, Bishop) {
			return true
		}
	}
	for _, d := range orthoDeltas {
		if b.scanRay(sq, d[0], d[1], by, Rook) {
			return true
		}
	}

	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			if nsq, ok := offset(file, rank, df, dr); ok && b.pieces[by][King]&BitMask(nsq) != 0 {
				return true
			}
		}
	}
	return false
}

// IsChecked returns true iff color's king is attacked by the opponent.
// Returns false if the king is absent (a transient test-harness state).
func (b *Board) IsChecked(c Color) bool {
	sq, ok := b.kingSquare(c)
	if !ok {
		return false
	}
	return b.IsSquareAttacked(sq, c.Opponent())
}

// scanRay walks from start in direction (df,dr), stopping at the first
// occupied square. That square counts as an attacker iff it is color's
// piece and is either major or a queen.
func (b *Board) scanRay(start Square, df, dr int, color Color, major PieceKind) bool {
	file, rank := int(start.File()), int(start.Rank())
	for {
		file += df
		rank += dr
		if file < 0 || file >= int(NumFiles) || rank < 0 || rank >= int(NumRanks) {
			return false
		}
		sq := NewSquare(File(file), Rank(rank))
		if c, k, ok := b.PieceAt(sq); ok {
			return c == color && (k == Queen || k == major)
		}
	}
}

func offset(file, rank, df, dr int) (Square, bool) {
	nf, nr := file+df, rank+dr
	if nf < 0 || nf >= int(NumFiles) || nr < 0 || nr >= int(NumRanks) {
		return 0, false
	}
	return NewSquare(File(nf), Rank(nr)), true
}
