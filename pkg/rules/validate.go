package rules

import "github.com/seekerror/stdlib/pkg/lang"

// ValidateIntent validates a move intent against the current position and
// returns a fully specified Move, or an IllegalMove error. It never
// mutates the board.
func (b *Board) ValidateIntent(intent MoveIntent) (Move, error) {
	if side, ok := intent.Castle.V(); ok {
		return b.validateCastle(side)
	}
	return b.validateStandardMove(intent.From, intent.To, intent.CaptureSquare)
}

func (b *Board) validateStandardMove(from, to Square, captureSquare lang.Optional[Square]) (Move, error) {
	color, piece, ok := b.PieceAt(from)
	if !ok {
		return Move{}, newError(IllegalMove, "no piece on from square %v", from)
	}
	if color != b.sideToMove {
		return Move{}, newError(IllegalMove, "wrong side to move")
	}
	if destColor, _, ok := b.PieceAt(to); ok && destColor == color {
		return Move{}, newError(IllegalMove, "destination occupied by friendly piece")
	}

	mv := Move{
		Color:         color,
		Piece:         piece,
		From:          from,
		To:            to,
		CaptureSquare: captureSquare,
	}

	var err error
	switch piece {
	case Pawn:
		err = b.validatePawnMove(&mv)
	case Knight:
		err = validateKnightPath(from, to)
	case Bishop:
		err = b.validateBishopPath(from, to)
	case Rook:
		err = b.validateRookPath(from, to)
	case Queen:
		switch {
		case isDiagonalMove(from, to):
			err = b.validateBishopPath(from, to)
		case isStraightMove(from, to):
			err = b.validateRookPath(from, to)
		default:
			err = newError(IllegalMove, "invalid queen move")
		}
	case King:
		err = validateKingPath(from, to)
	}
	if err != nil {
		return Move{}, err
	}

	if piece != Pawn {
		if targetColor, targetPiece, ok := b.PieceAt(to); ok {
			if targetColor == color {
				return Move{}, newError(IllegalMove, "destination occupied")
			}
			mv.Capture = lang.Some(targetPiece)
		} else if _, hasCaptureSquare := mv.CaptureSquare.V(); hasCaptureSquare {
			return Move{}, newError(IllegalMove, "capture square empty")
		}
	}

	clone := b.Clone()
	clone.ApplyMove(mv)
	if kingSq, ok := clone.kingSquare(color); ok && clone.IsSquareAttacked(kingSq, color.Opponent()) {
		return Move{}, newError(IllegalMove, "king would be in check")
	}

	return mv, nil
}

func (b *Board) validatePawnMove(mv *Move) error {
	dir := 8
	startRank, promotionRank := Rank2, Rank8
	if mv.Color == Black {
		dir = -8
		startRank, promotionRank = Rank7, Rank1
	}
	fromRank := mv.From.Rank()
	toRank := mv.To.Rank()

	forwardOne := Square(int(mv.From) + dir)

	switch {
	case mv.To == forwardOne:
		if _, ok := mv.CaptureSquare.V(); ok {
			return newError(IllegalMove, "capture square provided for quiet move")
		}
		if b.Occupancy()&BitMask(mv.To) != 0 {
			return newError(IllegalMove, "square occupied")
		}

	case mv.To == Square(int(mv.From)+dir*2):
		if fromRank != startRank {
			return newError(IllegalMove, "double push only from starting rank")
		}
		if _, ok := mv.CaptureSquare.V(); ok {
			return newError(IllegalMove, "double push cannot capture")
		}
		mid := Square(int(mv.From) + dir)
		if b.Occupancy()&BitMask(mid) != 0 || b.Occupancy()&BitMask(mv.To) != 0 {
			return newError(IllegalMove, "path blocked")
		}
		mv.IsDoublePawnPush = true

	default:
		fileDiff := int(mv.To.File()) - int(mv.From.File())
		if fileDiff < 0 {
			fileDiff = -fileDiff
		}
		rankDiff := int(toRank) - int(fromRank)
		expected := 1
		if mv.Color == Black {
			expected = -1
		}
		if fileDiff != 1 || rankDiff != expected {
			return newError(IllegalMove, "invalid pawn capture")
		}

		captureSq := mv.To
		if sq, ok := mv.CaptureSquare.V(); ok {
			captureSq = sq
		}
		targetColor, targetPiece, ok := b.PieceAt(captureSq)
		if !ok {
			return newError(IllegalMove, "missing capture target")
		}
		if targetColor == mv.Color {
			return newError(IllegalMove, "cannot capture own piece")
		}
		mv.Capture = lang.Some(targetPiece)

		if _, hasCaptureSquare := mv.CaptureSquare.V(); hasCaptureSquare {
			if targetPiece != Pawn {
				return newError(IllegalMove, "en passant must capture pawn")
			}
			ep, epOk := b.enPassant.V()
			if !epOk || ep != mv.To {
				return newError(IllegalMove, "en passant target not available")
			}
			mv.IsEnPassant = true
		}
	}

	if toRank == promotionRank {
		mv.RequiresPromotion = true
	}
	return nil
}

func validateKnightPath(from, to Square) error {
	fileDiff := absInt(int(to.File()) - int(from.File()))
	rankDiff := absInt(int(to.Rank()) - int(from.Rank()))
	if (fileDiff == 1 && rankDiff == 2) || (fileDiff == 2 && rankDiff == 1) {
		return nil
	}
	return newError(IllegalMove, "invalid knight move")
}

func (b *Board) validateRookPath(from, to Square) error {
	if !isStraightMove(from, to) {
		return newError(IllegalMove, "rook moves straight")
	}
	if b.pathBlocked(from, to) {
		return newError(IllegalMove, "path blocked")
	}
	return nil
}

func (b *Board) validateBishopPath(from, to Square) error {
	if !isDiagonalMove(from, to) {
		return newError(IllegalMove, "bishop moves diagonal")
	}
	if b.pathBlocked(from, to) {
		return newError(IllegalMove, "path blocked")
	}
	return nil
}

func validateKingPath(from, to Square) error {
	fileDiff := absInt(int(to.File()) - int(from.File()))
	rankDiff := absInt(int(to.Rank()) - int(from.Rank()))
	if fileDiff <= 1 && rankDiff <= 1 && (fileDiff != 0 || rankDiff != 0) {
		return nil
	}
	return newError(IllegalMove, "invalid king move")
}

func (b *Board) pathBlocked(from, to Square) bool {
	fromFile, fromRank := int(from.File()), int(from.Rank())
	toFile, toRank := int(to.File()), int(to.Rank())
	fileStep := signInt(toFile - fromFile)
	rankStep := signInt(toRank - fromRank)

	file, rank := fromFile+fileStep, fromRank+rankStep
	for file != toFile || rank != toRank {
		if b.Occupancy()&BitMask(NewSquare(File(file), Rank(rank))) != 0 {
			return true
		}
		file += fileStep
		rank += rankStep
	}
	return false
}

func isStraightMove(from, to Square) bool {
	return from.File() == to.File() || from.Rank() == to.Rank()
}

func isDiagonalMove(from, to Square) bool {
	return absInt(int(from.File())-int(to.File())) == absInt(int(from.Rank())-int(to.Rank()))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func signInt(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// castleLayout is the fixed geometry for one color/side combination.
type castleLayout struct {
	kingFrom, kingTo Square
	rookFrom, rookTo Square
	between          []Square // must be empty
	attackSquares    []Square // must not be attacked (king origin, transit, destination)
}

var castleLayouts = map[Color]map[CastleSide]castleLayout{
	White: {
		KingSide:  {E1, G1, H1, F1, []Square{F1, G1}, []Square{E1, F1, G1}},
		QueenSide: {E1, C1, A1, D1, []Square{B1, C1, D1}, []Square{E1, D1, C1}},
	},
	Black: {
		KingSide:  {E8, G8, H8, F8, []Square{F8, G8}, []Square{E8, F8, G8}},
		QueenSide: {E8, C8, A8, D8, []Square{B8, C8, D8}, []Square{E8, D8, C8}},
	},
}

func (b *Board) validateCastle(side CastleSide) (Move, error) {
	color := b.sideToMove
	rights := side.Bits(color)
	if !b.castling.IsAllowed(rights) {
		return Move{}, newError(IllegalMove, "castling not permitted")
	}

	layout := castleLayouts[color][side]
	if b.pieces[color][King]&BitMask(layout.kingFrom) == 0 {
		return Move{}, newError(IllegalMove, "king not on expected square")
	}
	if b.pieces[color][Rook]&BitMask(layout.rookFrom) == 0 {
		return Move{}, newError(IllegalMove, "rook missing for castling")
	}
	occ := b.Occupancy()
	for _, sq := range layout.between {
		if occ&BitMask(sq) != 0 {
			return Move{}, newError(IllegalMove, "squares blocked")
		}
	}
	for _, sq := range layout.attackSquares {
		if b.IsSquareAttacked(sq, color.Opponent()) {
			return Move{}, newError(IllegalMove, "cannot castle through check")
		}
	}

	return Move{
		Color:  color,
		Piece:  King,
		From:   layout.kingFrom,
		To:     layout.kingTo,
		Castle: lang.Some(side),
	}, nil
}
