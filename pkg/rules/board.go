package rules

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/seekerror/stdlib/pkg/lang"
)

// InitialFEN is the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board is a chess position: twelve disjoint bitboards (one per color x
// piece kind), side to move, castling rights, en passant target, and the
// two move clocks. It knows FEN round-trip, move validation, attack
// detection, and move application. Values are plain arrays of scalars, so
// a Go struct assignment is already a deep copy -- Clone exists to make
// that copy explicit at call sites that rely on it for king-safety probing.
type Board struct {
	pieces [NumColors][NumPieceKinds]Bitboard

	sideToMove     Color
	castling       Castling
	enPassant      lang.Optional[Square]
	halfmoveClock  int
	fullmoveNumber int
}

// NewStartingBoard returns a board in the standard starting position.
func NewStartingBoard() *Board {
	b, err := ParseFEN(InitialFEN)
	if err != nil {
		panic(err) // InitialFEN is a constant and always valid
	}
	return b
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	clone := *b
	return &clone
}

// Occupancy returns the union of all twelve piece bitboards.
func (b *Board) Occupancy() Bitboard {
	var ret Bitboard
	for c := Color(0); c < NumColors; c++ {
		for k := PieceKind(0); k < NumPieceKinds; k++ {
			ret |= b.pieces[c][k]
		}
	}
	return ret
}

// PieceAt returns the piece on the given square, if any.
func (b *Board) PieceAt(sq Square) (Color, PieceKind, bool) {
	mask := BitMask(sq)
	for c := Color(0); c < NumColors; c++ {
		for k := PieceKind(0); k < NumPieceKinds; k++ {
			if b.pieces[c][k]&mask != 0 {
				return c, k, true
			}
		}
	}
	return 0, 0, false
}

func (b *Board) isEmpty(sq Square) bool {
	_, _, ok := b.PieceAt(sq)
	return !ok
}

// SideToMove returns the color to move.
func (b *Board) SideToMove() Color {
	return b.sideToMove
}

// Castling returns the current castling rights.
func (b *Board) Castling() Castling {
	return b.castling
}

// EnPassant returns the en passant target square, if set.
func (b *Board) EnPassant() (Square, bool) {
	return b.enPassant.V()
}

// HalfmoveClock returns the number of plies since the last pawn move or
// capture.
func (b *Board) HalfmoveClock() int {
	return b.halfmoveClock
}

// FullmoveNumber returns the full move counter (starts at 1, increments
// after Black's move).
func (b *Board) FullmoveNumber() int {
	return b.fullmoveNumber
}

func (b *Board) set(c Color, k PieceKind, sq Square) {
	b.pieces[c][k] |= BitMask(sq)
}

func (b *Board) clear(c Color, k PieceKind, sq Square) {
	b.pieces[c][k] &^= BitMask(sq)
}

// kingSquare returns the color's king square. Callers in the validator may
// assume the king is present; test harnesses constructing partial
// positions transiently may not have one, in which case ok is false.
func (b *Board) kingSquare(c Color) (Square, bool) {
	bb := b.pieces[c][King]
	if bb == EmptyBitboard {
		return 0, false
	}
	return bb.FirstSquare(), true
}

// removedKingSquare returns which of the given squares held the
// side-to-move's king, used by ChangeSet to identify a castling origin.
func (b *Board) removedKingSquare(squares []Square) (Square, bool) {
	for _, sq := range squares {
		if b.pieces[b.sideToMove][King]&BitMask(sq) != 0 {
			return sq, true
		}
	}
	return 0, false
}

// addedKingTarget returns which of the added squares is a known castling
// destination for the king starting at from, used by ChangeSet.
func (b *Board) addedKingTarget(from Square, added []Square) (Square, bool) {
	var targets []Square
	switch {
	case b.sideToMove == White && from == E1:
		targets = []Square{G1, C1}
	case b.sideToMove == Black && from == E8:
		targets = []Square{G8, C8}
	default:
		return 0, false
	}
	for _, sq := range added {
		for _, t := range targets {
			if sq == t {
				return sq, true
			}
		}
	}
	return 0, false
}

// ---- FEN ----

// ParseFEN parses a position from Forsyth-Edwards Notation. FEN must split
// into exactly six whitespace-separated fields.
func ParseFEN(fen string) (*Board, error) {
	fields := strings.Fields(fen)
	if len(fields) != 6 {
		return nil, newError(InvalidFen, "expected 6 fields, got %v", len(fields))
	}

	var b Board

	rank := int(NumRanks) - 1
	file := 0
	for _, r := range fields[0] {
		switch {
		case r == '/':
			if file != int(NumFiles) {
				return nil, newError(InvalidFen, "rank does not contain 8 squares")
			}
			rank--
			file = 0
		case unicode.IsDigit(r):
			file += int(r - '0')
			if file > int(NumFiles) {
				return nil, newError(InvalidFen, "too many squares in rank")
			}
		case unicode.IsLetter(r):
			k, ok := ParsePieceKind(r)
			if !ok {
				return nil, newError(InvalidFen, "invalid piece char %q", r)
			}
			color := White
			if unicode.IsLower(r) {
				color = Black
			}
			if rank < 0 || rank >= int(NumRanks) || file < 0 || file >= int(NumFiles) {
				return nil, newError(InvalidFen, "square out of range")
			}
			b.set(color, k, NewSquare(File(file), Rank(rank)))
			file++
		default:
			return nil, newError(InvalidFen, "invalid character %q", r)
		}
	}
	if rank != 0 || file != int(NumFiles) {
		return nil, newError(InvalidFen, "invalid board layout")
	}

	switch fields[1] {
	case "w":
		b.sideToMove = White
	case "b":
		b.sideToMove = Black
	default:
		return nil, newError(InvalidFen, "invalid side to move %q", fields[1])
	}

	if fields[2] != "-" {
		for _, r := range fields[2] {
			switch r {
			case 'K':
				b.castling |= WhiteKingSideCastle
			case 'Q':
				b.castling |= WhiteQueenSideCastle
			case 'k':
				b.castling |= BlackKingSideCastle
			case 'q':
				b.castling |= BlackQueenSideCastle
			default:
				return nil, newError(InvalidFen, "invalid castling rights %q", fields[2])
			}
		}
	}

	if fields[3] != "-" {
		sq, err := ParseSquareStr(fields[3])
		if err != nil {
			return nil, newError(InvalidFen, "invalid en passant square %q", fields[3])
		}
		b.enPassant = lang.Some(sq)
	}

	hm, err := strconv.Atoi(fields[4])
	if err != nil || hm < 0 {
		return nil, newError(InvalidFen, "invalid halfmove clock %q", fields[4])
	}
	b.halfmoveClock = hm

	fm, err := strconv.Atoi(fields[5])
	if err != nil || fm < 0 {
		return nil, newError(InvalidFen, "invalid fullmove number %q", fields[5])
	}
	b.fullmoveNumber = fm

	return &b, nil
}

// FEN renders the position, deterministically and canonically: castling
// rights in KQkq order, run-lengths compressed, en passant as "-" when
// unset.
func (b *Board) FEN() string {
	var rows []string
	for rank := int(NumRanks) - 1; rank >= 0; rank-- {
		var row strings.Builder
		empty := 0
		for file := 0; file < int(NumFiles); file++ {
			sq := NewSquare(File(file), Rank(rank))
			if c, k, ok := b.PieceAt(sq); ok {
				if empty > 0 {
					row.WriteString(strconv.Itoa(empty))
					empty = 0
				}
				row.WriteRune(k.FENSymbol(c))
			} else {
				empty++
			}
		}
		if empty > 0 {
			row.WriteString(strconv.Itoa(empty))
		}
		rows = append(rows, row.String())
	}

	ep := "-"
	if sq, ok := b.enPassant.V(); ok {
		ep = sq.String()
	}

	return strings.Join(rows, "/") + " " + b.sideToMove.String() + " " + b.castling.String() + " " + ep + " " +
		strconv.Itoa(b.halfmoveClock) + " " + strconv.Itoa(b.fullmoveNumber)
}
