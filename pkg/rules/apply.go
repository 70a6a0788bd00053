package rules

import "github.com/seekerror/stdlib/pkg/lang"

// ApplyMove mutates the board by playing an already-validated Move. It does
// not re-validate legality; callers must have obtained mv from
// ValidateIntent (or, for castling, validateCastle). Promotions are applied
// separately via PromotePiece once a PendingPromotion move has landed on
// the promotion rank.
func (b *Board) ApplyMove(mv Move) {
	var noSquare lang.Optional[Square]
	b.enPassant = noSquare

	if side, ok := mv.Castle.V(); ok {
		layout := castleLayouts[mv.Color][side]
		b.clear(mv.Color, King, layout.kingFrom)
		b.set(mv.Color, King, layout.kingTo)
		b.clear(mv.Color, Rook, layout.rookFrom)
		b.set(mv.Color, Rook, layout.rookTo)
		b.disableCastling(mv.Color)
	} else {
		b.clear(mv.Color, mv.Piece, mv.From)

		if capture, ok := mv.Capture.V(); ok {
			captureSq := mv.CaptureSquareOrTo()
			b.clear(mv.Color.Opponent(), capture, captureSq)
			b.removeCastlingRights(mv.Color.Opponent(), captureSq)
		}

		b.set(mv.Color, mv.Piece, mv.To)

		switch mv.Piece {
		case King:
			b.disableCastling(mv.Color)
		case Rook:
			b.removeCastlingRights(mv.Color, mv.From)
		}
	}

	if mv.IsDoublePawnPush {
		if ep, ok := b.doublePushTarget(mv); ok {
			b.enPassant = lang.Some(ep)
		}
	}

	if mv.Color == Black {
		b.fullmoveNumber++
	}
	if _, captured := mv.Capture.V(); mv.Piece == Pawn || captured {
		b.halfmoveClock = 0
	} else {
		b.halfmoveClock++
	}
	b.sideToMove = mv.Color.Opponent()
}

// doublePushTarget returns the square behind the pushed pawn, but only if
// an enemy pawn sits adjacent on the landing rank -- the canonical FEN en
// passant target is only recorded when a capture is actually possible, per
// spec.md's FEN emission rule.
func (b *Board) doublePushTarget(mv Move) (Square, bool) {
	dir := 8
	if mv.Color == Black {
		dir = -8
	}
	target := Square(int(mv.From) + dir)

	rank := mv.To.Rank()
	file := int(mv.To.File())
	for _, df := range [2]int{-1, 1} {
		nf := file + df
		if nf < 0 || nf >= int(NumFiles) {
			continue
		}
		sq := NewSquare(File(nf), rank)
		if b.pieces[mv.Color.Opponent()][Pawn]&BitMask(sq) != 0 {
			return target, true
		}
	}
	return 0, false
}

func (b *Board) disableCastling(c Color) {
	if c == White {
		b.castling = b.castling.Clear(WhiteKingSideCastle | WhiteQueenSideCastle)
	} else {
		b.castling = b.castling.Clear(BlackKingSideCastle | BlackQueenSideCastle)
	}
}

// removeCastlingRights clears the single right associated with a rook
// leaving (or being captured on) its home corner. Squares other than the
// four rook home squares are no-ops.
func (b *Board) removeCastlingRights(c Color, sq Square) {
	switch {
	case c == White && sq == A1:
		b.castling = b.castling.Clear(WhiteQueenSideCastle)
	case c == White && sq == H1:
		b.castling = b.castling.Clear(WhiteKingSideCastle)
	case c == Black && sq == A8:
		b.castling = b.castling.Clear(BlackQueenSideCastle)
	case c == Black && sq == H8:
		b.castling = b.castling.Clear(BlackKingSideCastle)
	}
}

// PromotePiece replaces the pawn on sq with newPiece, completing a
// two-phase promotion. Callers must have already validated that sq holds a
// pawn belonging to the side that just moved and that newPiece is one of
// Knight/Bishop/Rook/Queen.
func (b *Board) PromotePiece(sq Square, newPiece PieceKind) error {
	color, piece, ok := b.PieceAt(sq)
	if !ok || piece != Pawn {
		return newError(IllegalMove, "no pending pawn on %v", sq)
	}
	if newPiece == Pawn || newPiece == King {
		return newError(IllegalMove, "invalid promotion piece %v", newPiece)
	}
	b.clear(color, Pawn, sq)
	b.set(color, newPiece, sq)
	return nil
}
