package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herohde/chessrules/pkg/rules"
)

func TestSquare_NumberingIsBitExact(t *testing.T) {
	tests := []struct {
		sq       rules.Square
		expected string
	}{
		{rules.A1, "a1"},
		{rules.H1, "h1"},
		{rules.A8, "a8"},
		{rules.H8, "h8"},
		{rules.E4, "e4"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.sq.String())
	}

	assert.Equal(t, rules.Square(0), rules.A1)
	assert.Equal(t, rules.Square(7), rules.H1)
	assert.Equal(t, rules.Square(56), rules.A8)
	assert.Equal(t, rules.Square(63), rules.H8)
}

func TestSquare_ParseRoundTrip(t *testing.T) {
	for _, coord := range []string{"a1", "e4", "h8", "c6", "g2"} {
		sq, err := rules.ParseSquareStr(coord)
		require.NoError(t, err)
		assert.Equal(t, coord, sq.String())
	}
}

func TestSquare_ParseRejectsInvalid(t *testing.T) {
	for _, coord := range []string{"", "i1", "a9", "a", "aa", "44"} {
		_, err := rules.ParseSquareStr(coord)
		assert.Error(t, err, coord)
	}
}

func TestBitboard_BitMaskRoundTrip(t *testing.T) {
	for sq := rules.A1; sq <= rules.H8; sq++ {
		bb := rules.BitMask(sq)
		assert.True(t, bb.IsSet(sq))
		assert.Equal(t, 1, bb.PopCount())
		assert.Equal(t, sq, bb.FirstSquare())
	}
}
