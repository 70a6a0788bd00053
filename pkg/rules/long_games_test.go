package rules_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herohde/chessrules/pkg/rules/rulestest"
)

func TestLongGamesReplayMatchesFEN(t *testing.T) {
	data, err := os.ReadFile("testdata/long_games.txt")
	require.NoError(t, err)

	rulestest.RunFixture(t, string(data))
}
