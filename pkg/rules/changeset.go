package rules

import "github.com/seekerror/stdlib/pkg/lang"

// MoveIntent is a partial description of a move inferred from observation:
// either a standard from/to with an optional capture square (needed only
// when the captured piece is not on To, i.e. en passant), or a castling
// side.
type MoveIntent struct {
	From, To      Square
	CaptureSquare lang.Optional[Square]
	Castle        lang.Optional[CastleSide]
}

// ChangeSet classifies the squares touched by one sensor observation,
// relative to the board's last known occupancy, into four transition
// classes (see the table in spec.md §4.2): removedSelf/removedEnemy
// (before=1,after=0, split by which side owned the piece), added
// (before=0,after=1), and replaced (before=1,after=1 -- a piece lifted and
// set back, or a capture the sensor never saw as a lift).
type ChangeSet struct {
	removedSelf  []Square
	removedEnemy []Square
	added        []Square
	replaced     []Square
}

// NewChangeSet diffs previous and state under mask against the board's
// current occupancy and side to move.
func NewChangeSet(mask, previous, state Bitboard, board *Board) (*ChangeSet, error) {
	cs := &ChangeSet{}

	for bits := mask; bits != 0; {
		sq := bits.FirstSquare()
		bits &^= BitMask(sq)

		before := previous.IsSet(sq)
		after := state.IsSet(sq)

		switch {
		case before && !after:
			color, _, ok := board.PieceAt(sq)
			if !ok {
				return nil, newError(InvalidMask, "mask referenced empty square")
			}
			if color == board.SideToMove() {
				cs.removedSelf = append(cs.removedSelf, sq)
			} else {
				cs.removedEnemy = append(cs.removedEnemy, sq)
			}
		case !before && after:
			cs.added = append(cs.added, sq)
		case before && after:
			cs.replaced = append(cs.replaced, sq)
		}
	}

	return cs, nil
}

// RepresentsMove reports whether this observation plausibly represents a
// move of the side to move's own piece.
func (cs *ChangeSet) RepresentsMove() bool {
	return len(cs.removedSelf) > 0
}

// ToIntent classifies the tallied changes into a move intent. Castling is
// the unique pattern touching four squares with two self-removals, two
// additions and no captures; everything else is a one-piece move, possibly
// with a capture square distinct from the destination (en passant) or a
// "replaced" shorthand for a capture the sensor never saw as a lift.
func (cs *ChangeSet) ToIntent(board *Board) (MoveIntent, error) {
	if len(cs.removedSelf) == 2 && len(cs.added) == 2 && len(cs.removedEnemy) == 0 && len(cs.replaced) == 0 {
		return cs.castleIntent(board)
	}
	if len(cs.removedEnemy) > 1 || len(cs.replaced) > 1 {
		return MoveIntent{}, newError(InvalidMask, "too many squares changed")
	}
	if len(cs.removedSelf) != 1 {
		return MoveIntent{}, newError(InvalidMask, "expected a single moving piece")
	}
	from := cs.removedSelf[0]

	if len(cs.replaced) == 1 && len(cs.added) == 0 {
		return MoveIntent{From: from, To: cs.replaced[0]}, nil
	}

	if len(cs.added) == 1 {
		intent := MoveIntent{From: from, To: cs.added[0]}
		if len(cs.removedEnemy) == 1 {
			intent.CaptureSquare = lang.Some(cs.removedEnemy[0])
		}
		return intent, nil
	}

	return MoveIntent{}, newError(InvalidMask, "unrecognized move pattern")
}

func (cs *ChangeSet) castleIntent(board *Board) (MoveIntent, error) {
	kingSquare, ok := board.removedKingSquare(cs.removedSelf)
	if !ok {
		return MoveIntent{}, newError(InvalidMask, "king missing for castle")
	}
	to, ok := board.addedKingTarget(kingSquare, cs.added)
	if !ok {
		return MoveIntent{}, newError(InvalidMask, "castle destination not found")
	}

	var side CastleSide
	switch {
	case kingSquare == E1 && to == G1, kingSquare == E8 && to == G8:
		side = KingSide
	case kingSquare == E1 && to == C1, kingSquare == E8 && to == C8:
		side = QueenSide
	default:
		return MoveIntent{}, newError(InvalidMask, "invalid castling squares")
	}

	return MoveIntent{Castle: lang.Some(side)}, nil
}
