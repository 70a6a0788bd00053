// Package rulestest provides a replay harness for long-form game fixtures:
// alternating move-text/expected-FEN line pairs, games separated by a lone
// "---" line. It lets pkg/rules tests exercise the engine the way a real
// sensor board would, by computing a union mask from the occupancy diff
// plus every coordinate pair named on the move-text line (so `NewChangeSet`
// sees the squares a real reading would cover, not just the net diff).
package rulestest

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/herohde/chessrules/pkg/rules"
)

// RunFixture parses data and replays every game against a fresh rules.Engine,
// asserting the resulting FEN after each move (or, for promotions, after
// confirming the promotion piece named by the move-text's "=Q/R/B/N"
// suffix) matches the line that follows it.
func RunFixture(t *testing.T, data string) {
	t.Helper()
	ctx := context.Background()

	games := parseGames(data)
	require.NotEmpty(t, games, "fixture must contain at least one game")

	for gameIdx, game := range games {
		require.Zerof(t, len(game)%2, "game %d must have move/FEN line pairs", gameIdx+1)

		engine := rules.NewEngine()
		start, err := rules.NewEngineFromFEN(rules.InitialFEN)
		require.NoError(t, err)
		prevState := start.OccupancyMask()

		for pairIdx := 0; pairIdx < len(game); pairIdx += 2 {
			moveText := strings.TrimSpace(game[pairIdx])
			expectedFEN := strings.TrimSpace(game[pairIdx+1])

			next, err := rules.NewEngineFromFEN(expectedFEN)
			require.NoErrorf(t, err, "game %d move %d (%s): invalid expected FEN", gameIdx+1, pairIdx/2+1, moveText)
			nextState := next.OccupancyMask()

			mask, err := computeMask(prevState, nextState, moveText)
			require.NoErrorf(t, err, "game %d move %d (%s): mask error", gameIdx+1, pairIdx/2+1, moveText)

			update, err := engine.Observe(ctx, mask, nextState)
			require.NoErrorf(t, err, "game %d move %d (%s): observe failed", gameIdx+1, pairIdx/2+1, moveText)

			if promo, ok := promotionPiece(moveText); ok {
				require.Equalf(t, rules.PromotionPendingUpdate, update.Kind,
					"game %d move %d (%s): expected promotion pending", gameIdx+1, pairIdx/2+1, moveText)
				summary, err := engine.ConfirmPromotion(ctx, promo)
				require.NoErrorf(t, err, "game %d move %d (%s): confirm promotion failed", gameIdx+1, pairIdx/2+1, moveText)
				require.Equalf(t, expectedFEN, summary.FEN,
					"game %d move %d (%s): FEN mismatch after promotion", gameIdx+1, pairIdx/2+1, moveText)
			} else {
				require.Equalf(t, rules.MoveApplied, update.Kind,
					"game %d move %d (%s): expected move applied, got kind %v", gameIdx+1, pairIdx/2+1, moveText, update.Kind)
				require.Equalf(t, expectedFEN, update.Summary.FEN,
					"game %d move %d (%s): FEN mismatch", gameIdx+1, pairIdx/2+1, moveText)
			}

			prevState = nextState
		}
	}
}

// parseGames splits fixture text into games of trimmed, non-empty lines,
// separated by a line that is exactly "---".
func parseGames(input string) [][]string {
	var games [][]string
	var current []string
	for _, line := range strings.Split(input, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if trimmed == "---" {
			if len(current) > 0 {
				games = append(games, current)
				current = nil
			}
			continue
		}
		current = append(current, trimmed)
	}
	if len(current) > 0 {
		games = append(games, current)
	}
	return games
}

// computeMask unions the net occupancy diff with every from/to coordinate
// named in moveText, since a castle's rook and a captured en passant pawn
// sit outside the plain diff of a single square pair.
func computeMask(prevState, nextState uint64, moveText string) (uint64, error) {
	mask := prevState ^ nextState
	for _, segment := range strings.Split(moveText, ",") {
		segment = strings.TrimSpace(segment)
		if segment == "" {
			continue
		}
		coordPart, _, _ := strings.Cut(segment, "=")
		from, to, ok := strings.Cut(coordPart, "-")
		if !ok {
			return 0, &badSegmentError{segment}
		}
		fromSq, err := rules.SquareFromCoord(from)
		if err != nil {
			return 0, err
		}
		toSq, err := rules.SquareFromCoord(to)
		if err != nil {
			return 0, err
		}
		mask |= uint64(1)<<fromSq | uint64(1)<<toSq
	}
	return mask, nil
}

// promotionPiece extracts the piece named by a "=Q/R/B/N" suffix on any
// segment of moveText, if present.
func promotionPiece(moveText string) (rules.PieceKind, bool) {
	for _, segment := range strings.Split(moveText, ",") {
		_, tail, ok := strings.Cut(segment, "=")
		if !ok || tail == "" {
			continue
		}
		switch tail[0] {
		case 'Q':
			return rules.Queen, true
		case 'R':
			return rules.Rook, true
		case 'B':
			return rules.Bishop, true
		case 'N':
			return rules.Knight, true
		}
	}
	return 0, false
}

type badSegmentError struct {
	segment string
}

func (e *badSegmentError) Error() string {
	return "invalid move segment '" + e.segment + "'"
}
