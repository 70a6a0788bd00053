package rules_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/herohde/chessrules/pkg/rules"
)

func TestError_IsMatchesByKindNotMessage(t *testing.T) {
	_, err := rules.ParseFEN("not a fen")
	assert.True(t, errors.Is(err, rules.ErrInvalidFen))
	assert.False(t, errors.Is(err, rules.ErrIllegalMove))
}

func TestError_StringIncludesKindAndMessage(t *testing.T) {
	_, err := rules.ParseFEN("not a fen")
	assert.Contains(t, err.Error(), "invalid FEN")
}
