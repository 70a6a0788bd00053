package rules

import (
	"fmt"
	"strings"

	"github.com/seekerror/stdlib/pkg/lang"
)

// Move is a fully specified, validated chess move. It is produced by
// Board.ValidateIntent and consumed by Board.ApplyMove; once appended to
// Engine history it is immutable.
type Move struct {
	Color         Color
	Piece         PieceKind
	From, To      Square
	Capture       lang.Optional[PieceKind] // captured piece kind, if any
	CaptureSquare lang.Optional[Square]    // differs from To only for en passant
	Castle        lang.Optional[CastleSide]

	IsEnPassant      bool
	IsDoublePawnPush bool

	Promotion         lang.Optional[PieceKind]
	RequiresPromotion bool
}

// CaptureSquareOrTo returns the square the captured piece sits on, which
// is To except for en passant captures.
func (m Move) CaptureSquareOrTo() Square {
	if sq, ok := m.CaptureSquare.V(); ok {
		return sq
	}
	return m.To
}

// CoordString renders the move in minimal coordinate PGN form: "e2-e4",
// "O-O"/"O-O-O" for castling, with "=Q" etc. appended on promotion.
func (m Move) CoordString() string {
	if side, ok := m.Castle.V(); ok {
		return side.String()
	}

	var sb strings.Builder
	sb.WriteString(m.From.String())
	sb.WriteRune('-')
	sb.WriteString(m.To.String())
	if promo, ok := m.Promotion.V(); ok {
		sb.WriteRune('=')
		sb.WriteRune(promo.FENSymbol(White)) // promotion letter is always uppercase
	}
	return sb.String()
}

func (m Move) String() string {
	return fmt.Sprintf("%v(%v)", m.CoordString(), m.Piece)
}
