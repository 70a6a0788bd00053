package rules_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/chessrules/pkg/rules"
)

func sq(t *testing.T, coord string) uint64 {
	t.Helper()
	s, err := rules.SquareFromCoord(coord)
	require.NoError(t, err)
	return uint64(1) << s
}

func TestEngine_OpeningMove(t *testing.T) {
	ctx := context.Background()
	e := rules.NewEngine()

	prev := e.OccupancyMask()
	next := prev ^ sq(t, "e2") ^ sq(t, "e4")
	mask := sq(t, "e2") | sq(t, "e4")

	update, err := e.Observe(ctx, mask, next)
	require.NoError(t, err)
	require.Equal(t, rules.MoveApplied, update.Kind)
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1", update.Summary.FEN)
	assert.Equal(t, "1.e2-e4", update.Summary.PGN)
}

func TestEngine_IllegalKnightMoveRejected(t *testing.T) {
	ctx := context.Background()
	e := rules.NewEngine()

	before := e.ToFEN()
	prev := e.OccupancyMask()
	// b1 knight to b3 is not an L-shape move.
	next := prev ^ sq(t, "b1") ^ sq(t, "b3")
	mask := sq(t, "b1") | sq(t, "b3")

	_, err := e.Observe(ctx, mask, next)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrIllegalMove)
	assert.Equal(t, before, e.ToFEN(), "board must be unchanged after a rejected observation")
}

func TestEngine_FakeEnPassantRejected(t *testing.T) {
	ctx := context.Background()
	// White pawn on e5 beside a black pawn on d5, but the position records
	// no en passant target, so e5 has no en passant capture onto d6.
	e, err := rules.NewEngineFromFEN("rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq - 0 3")
	require.NoError(t, err)

	before := e.ToFEN()
	prev := e.OccupancyMask()
	// Sensor sees the white pawn lift from e5 and the black pawn on d5
	// disappear, landing as if captured en passant onto d6 -- but d5 was
	// never a double-push target, so no en passant is on offer.
	next := prev ^ sq(t, "e5") ^ sq(t, "d5") ^ sq(t, "d6")
	mask := sq(t, "e5") | sq(t, "d5") | sq(t, "d6")

	_, err = e.Observe(ctx, mask, next)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrIllegalMove)
	assert.Equal(t, before, e.ToFEN())
}

func TestEngine_KingExposureRejected(t *testing.T) {
	ctx := context.Background()
	// White king e1, white bishop e2 pinned by black rook on the e-file
	// (black rook e8, nothing else between). Moving the bishop off the
	// file would expose the king to check.
	e, err := rules.NewEngineFromFEN("4r3/8/8/8/8/8/4B3/4K3 w - - 0 1")
	require.NoError(t, err)

	before := e.ToFEN()
	prev := e.OccupancyMask()
	next := prev ^ sq(t, "e2") ^ sq(t, "d3")
	mask := sq(t, "e2") | sq(t, "d3")

	_, err = e.Observe(ctx, mask, next)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrIllegalMove)
	assert.Equal(t, before, e.ToFEN())
}

func TestEngine_Castling(t *testing.T) {
	ctx := context.Background()
	e, err := rules.NewEngineFromFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	prev := e.OccupancyMask()
	next := prev ^ sq(t, "e1") ^ sq(t, "g1") ^ sq(t, "h1") ^ sq(t, "f1")
	mask := sq(t, "e1") | sq(t, "g1") | sq(t, "h1") | sq(t, "f1")

	update, err := e.Observe(ctx, mask, next)
	require.NoError(t, err)
	require.Equal(t, rules.MoveApplied, update.Kind)
	assert.Equal(t, "r3k2r/8/8/8/8/8/8/R4RK1 b kq - 1 1", update.Summary.FEN)
	assert.Equal(t, "1.O-O", update.Summary.PGN)
}

func TestEngine_CastlingThroughCheckRejected(t *testing.T) {
	ctx := context.Background()
	// Black rook on f8 attacks f1, a transit square for white's castle.
	e, err := rules.NewEngineFromFEN("5rk1/8/8/8/8/8/8/R3K2R w KQ - 0 1")
	require.NoError(t, err)

	before := e.ToFEN()
	prev := e.OccupancyMask()
	next := prev ^ sq(t, "e1") ^ sq(t, "g1") ^ sq(t, "h1") ^ sq(t, "f1")
	mask := sq(t, "e1") | sq(t, "g1") | sq(t, "h1") | sq(t, "f1")

	_, err = e.Observe(ctx, mask, next)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrIllegalMove)
	assert.Equal(t, before, e.ToFEN())
}

func TestEngine_Promotion(t *testing.T) {
	ctx := context.Background()
	e, err := rules.NewEngineFromFEN("7k/P7/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	prev := e.OccupancyMask()
	next := prev ^ sq(t, "a7") ^ sq(t, "a8")
	mask := sq(t, "a7") | sq(t, "a8")

	update, err := e.Observe(ctx, mask, next)
	require.NoError(t, err)
	require.Equal(t, rules.PromotionPendingUpdate, update.Kind)
	assert.Equal(t, rules.White, update.Promotion.Color)

	summary, err := e.ConfirmPromotion(ctx, rules.Queen)
	require.NoError(t, err)
	assert.Equal(t, "Q6k/8/8/8/8/8/8/K7 b - - 0 1", summary.FEN)
	assert.Equal(t, "1.a7-a8=Q", summary.PGN)
}

func TestEngine_ObserveWhilePromotionPendingRejected(t *testing.T) {
	ctx := context.Background()
	e, err := rules.NewEngineFromFEN("7k/P7/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	prev := e.OccupancyMask()
	next := prev ^ sq(t, "a7") ^ sq(t, "a8")
	mask := sq(t, "a7") | sq(t, "a8")

	_, err = e.Observe(ctx, mask, next)
	require.NoError(t, err)

	_, err = e.Observe(ctx, mask, next)
	require.Error(t, err)
	assert.ErrorIs(t, err, rules.ErrPendingPromotion)
}

func TestEngine_ConfirmPromotionRejectsPawnAndKing(t *testing.T) {
	ctx := context.Background()
	e, err := rules.NewEngineFromFEN("7k/P7/8/8/8/8/8/K7 w - - 0 1")
	require.NoError(t, err)

	prev := e.OccupancyMask()
	next := prev ^ sq(t, "a7") ^ sq(t, "a8")
	mask := sq(t, "a7") | sq(t, "a8")

	_, err = e.Observe(ctx, mask, next)
	require.NoError(t, err)

	_, err = e.ConfirmPromotion(ctx, rules.Pawn)
	assert.ErrorIs(t, err, rules.ErrIllegalMove)

	_, err = e.ConfirmPromotion(ctx, rules.King)
	assert.ErrorIs(t, err, rules.ErrIllegalMove)

	_, err = e.ConfirmPromotion(ctx, rules.Knight)
	assert.NoError(t, err)
}

func TestEngine_NoChangeWhenStateMatchesOrPieceSetBackDown(t *testing.T) {
	ctx := context.Background()
	e := rules.NewEngine()

	prev := e.OccupancyMask()
	update, err := e.Observe(ctx, sq(t, "e2"), prev)
	require.NoError(t, err)
	assert.Equal(t, rules.NoChange, update.Kind)

	// Lifted and set back down: mask covers e2 but state is unchanged there.
	update, err = e.Observe(ctx, sq(t, "e2"), prev)
	require.NoError(t, err)
	assert.Equal(t, rules.NoChange, update.Kind)
}
