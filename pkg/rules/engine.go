package rules

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// pendingPromotion tracks a move that has landed on the promotion rank and
// is waiting for ConfirmPromotion before it is finalized into history.
type pendingPromotion struct {
	plan Move
}

// Engine is the mutex-guarded façade over a Board: it turns raw sensor
// observations into validated moves, tracks move history for PGN, and
// manages the two-phase promotion protocol. All exported methods are safe
// for concurrent use.
type Engine struct {
	mu sync.Mutex

	board   *Board
	history []Move
	pending *pendingPromotion
}

// Name returns the engine name and version, e.g. "chessrules 0.1.0".
func (e *Engine) Name() string {
	return fmt.Sprintf("chessrules %v", version)
}

// NewEngine returns an Engine in the standard starting position.
func NewEngine() *Engine {
	return &Engine{board: NewStartingBoard()}
}

// NewEngineFromFEN returns an Engine seeded from an arbitrary position.
func NewEngineFromFEN(fen string) (*Engine, error) {
	b, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return &Engine{board: b}, nil
}

// SetPosition resets the engine to an arbitrary position, clearing history
// and any pending promotion.
func (e *Engine) SetPosition(ctx context.Context, fen string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	b, err := ParseFEN(fen)
	if err != nil {
		return err
	}
	e.board = b
	e.history = nil
	e.pending = nil

	logw.Infof(ctx, "Reset to %v", fen)
	return nil
}

// ToFEN returns the current position in Forsyth-Edwards Notation.
func (e *Engine) ToFEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.FEN()
}

// PGN renders the move history in minimal coordinate notation, e.g.
// "1.e2-e4 e7-e5 2.O-O".
func (e *Engine) PGN() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return buildPGN(e.history)
}

// OccupancyMask returns the union of all piece bitboards, as the wire
// format's 64-bit occupancy mask.
func (e *Engine) OccupancyMask() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()

	return uint64(e.board.Occupancy())
}

// PieceAt returns the color and kind of the piece on the given square
// index (0-63, A1=0 per Square's numbering), if any.
func (e *Engine) PieceAt(square uint8) (Color, PieceKind, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.board.PieceAt(Square(square))
}

// SquareFromCoord parses an algebraic coordinate like "e4" into a Square.
func SquareFromCoord(coord string) (Square, error) {
	sq, err := ParseSquareStr(coord)
	if err != nil {
		return 0, newError(InvalidSquare, "%v", err)
	}
	return sq, nil
}

// PromotionRequest describes the pawn awaiting ConfirmPromotion.
type PromotionRequest struct {
	Color  Color
	Square Square
}

// MoveSummary is returned once a move (including a just-confirmed
// promotion) is fully applied.
type MoveSummary struct {
	Move Move
	FEN  string
	PGN  string
}

// EngineUpdateKind distinguishes the three outcomes of Observe.
type EngineUpdateKind uint8

const (
	// NoChange: the observed state matches the current position, or the
	// touched squares do not represent a move of the side to move's piece
	// (e.g. a piece lifted and set back down).
	NoChange EngineUpdateKind = iota
	// MoveApplied: a legal move was inferred, applied, and appended to
	// history.
	MoveApplied
	// PromotionPendingUpdate: a pawn reached the promotion rank; the
	// board has been updated up to (but not including) the promotion
	// piece choice. ConfirmPromotion must be called before another
	// Observe is accepted.
	PromotionPendingUpdate
)

// EngineUpdate is the result of Observe.
type EngineUpdate struct {
	Kind      EngineUpdateKind
	Summary   MoveSummary
	Promotion PromotionRequest
}

// Observe processes one sensor reading: mask identifies which squares the
// reading covers, state is the full board occupancy after the reading
// (bit i set = square i occupied). It
// infers, validates and (if legal) applies at most one move. It returns an
// IllegalMove/InvalidMask error without mutating the board if the reading
// cannot be reconciled into a legal move, and a PendingPromotion error if
// called while a promotion choice is outstanding.
func (e *Engine) Observe(ctx context.Context, mask, state uint64) (EngineUpdate, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending != nil {
		return EngineUpdate{}, ErrPendingPromotion
	}

	expected := e.board.Occupancy()
	if expected == Bitboard(state) {
		return EngineUpdate{Kind: NoChange}, nil
	}

	change, err := NewChangeSet(Bitboard(mask), expected, Bitboard(state), e.board)
	if err != nil {
		return EngineUpdate{}, err
	}
	if !change.RepresentsMove() {
		return EngineUpdate{Kind: NoChange}, nil
	}

	intent, err := change.ToIntent(e.board)
	if err != nil {
		return EngineUpdate{}, err
	}

	plan, err := e.board.ValidateIntent(intent)
	if err != nil {
		return EngineUpdate{}, err
	}

	clone := e.board.Clone()
	clone.ApplyMove(plan)
	if clone.Occupancy() != Bitboard(state) {
		return EngineUpdate{}, newError(InvalidMask, "state does not match move")
	}
	e.board = clone

	if plan.RequiresPromotion {
		e.pending = &pendingPromotion{plan: plan}
		logw.Infof(ctx, "Promotion pending at %v", plan.To)
		return EngineUpdate{
			Kind:      PromotionPendingUpdate,
			Promotion: PromotionRequest{Color: plan.Color, Square: plan.To},
		}, nil
	}

	summary := e.finalizeMove(plan)
	logw.Infof(ctx, "Move applied: %v", plan)
	return EngineUpdate{Kind: MoveApplied, Summary: summary}, nil
}

// ConfirmPromotion completes a pending promotion, choosing the piece the
// pawn becomes. It is an IllegalMove error if there is no pending
// promotion, or if the chosen piece is not knight/bishop/rook/queen.
func (e *Engine) ConfirmPromotion(ctx context.Context, kind PieceKind) (MoveSummary, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.pending == nil {
		return MoveSummary{}, newError(IllegalMove, "no pending promotion")
	}
	pending := e.pending
	if pending.plan.Piece != Pawn {
		return MoveSummary{}, newError(IllegalMove, "pending move is not a pawn promotion")
	}
	if kind == Pawn || kind == King {
		return MoveSummary{}, newError(IllegalMove, "promotion must be to knight, bishop, rook, or queen")
	}

	if err := e.board.PromotePiece(pending.plan.To, kind); err != nil {
		return MoveSummary{}, err
	}

	e.pending = nil
	pending.plan.Promotion = lang.Some(kind)
	pending.plan.RequiresPromotion = false

	summary := e.finalizeMove(pending.plan)
	logw.Infof(ctx, "Promotion confirmed: %v", pending.plan)
	return summary, nil
}

func (e *Engine) finalizeMove(mv Move) MoveSummary {
	e.history = append(e.history, mv)
	return MoveSummary{
		Move: mv,
		FEN:  e.board.FEN(),
		PGN:  buildPGN(e.history),
	}
}

func buildPGN(history []Move) string {
	var sb strings.Builder
	for idx, mv := range history {
		if idx%2 == 0 {
			if sb.Len() > 0 {
				sb.WriteRune(' ')
			}
			turn := idx/2 + 1
			sb.WriteString(strconv.Itoa(turn))
			sb.WriteRune('.')
			sb.WriteString(mv.CoordString())
		} else {
			sb.WriteRune(' ')
			sb.WriteString(mv.CoordString())
		}
	}
	return sb.String()
}
