package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/chessrules/pkg/rules"
)

func TestBoard_FENRoundTrip(t *testing.T) {
	tests := []string{
		rules.InitialFEN,
		"r3k2r/ppp2ppp/8/8/8/8/PPP2PPP/R3K2R w KQkq - 0 1",
		"8/8/8/3k4/8/3K4/8/8 w - - 5 42",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/8/PPPP1PPP/RNBQKBNR w KQkq c6 0 2",
	}

	for _, fen := range tests {
		b, err := rules.ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, b.FEN(), fen)
	}
}

func TestBoard_ParseFENRejectsMalformed(t *testing.T) {
	tests := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",    // missing field
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",  // bad side
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",   // short rank
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNRR w KQkq - 0 1", // long rank
	}
	for _, fen := range tests {
		_, err := rules.ParseFEN(fen)
		assert.Error(t, err, fen)
		assert.ErrorIs(t, err, rules.ErrInvalidFen, fen)
	}
}

func TestBoard_PieceAt(t *testing.T) {
	b := rules.NewStartingBoard()

	color, kind, ok := b.PieceAt(rules.E1)
	require.True(t, ok)
	assert.Equal(t, rules.White, color)
	assert.Equal(t, rules.King, kind)

	color, kind, ok = b.PieceAt(rules.E8)
	require.True(t, ok)
	assert.Equal(t, rules.Black, color)
	assert.Equal(t, rules.King, kind)

	_, _, ok = b.PieceAt(rules.E4)
	assert.False(t, ok)
}

func TestBoard_IsCheckedDetectsRookOnOpenFile(t *testing.T) {
	b, err := rules.ParseFEN("4r3/8/8/8/8/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.True(t, b.IsChecked(rules.White))

	b2, err := rules.ParseFEN("4r3/8/8/8/4P3/8/8/4K3 w - - 0 1")
	require.NoError(t, err)
	assert.False(t, b2.IsChecked(rules.White), "pawn on e4 blocks the e-file")
}
