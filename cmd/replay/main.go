// replay runs a long-games fixture file (move-text/expected-FEN line
// pairs, games separated by "---") against a fresh rules.Engine for each
// game, reporting the first mismatch. It is the CLI form of
// pkg/rules/rulestest's test harness, useful for checking a captured
// fixture without writing a Go test.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/seekerror/logw"

	"github.com/herohde/chessrules/pkg/rules"
)

var path = flag.String("fixture", "", "Path to a long-games fixture file (required)")

func main() {
	ctx := context.Background()
	flag.Parse()

	if *path == "" {
		flag.Usage()
		logw.Exitf(ctx, "Missing -fixture")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		logw.Exitf(ctx, "Read %v failed: %v", *path, err)
	}

	games := parseGames(string(data))
	if len(games) == 0 {
		logw.Exitf(ctx, "%v contains no games", *path)
	}

	total := 0
	for gameIdx, game := range games {
		if len(game)%2 != 0 {
			logw.Exitf(ctx, "game %v has an odd number of lines", gameIdx+1)
		}

		engine := rules.NewEngine()
		for pairIdx := 0; pairIdx < len(game); pairIdx += 2 {
			moveText := game[pairIdx]
			expectedFEN := game[pairIdx+1]

			if err := replayMove(ctx, engine, moveText, expectedFEN); err != nil {
				logw.Exitf(ctx, "game %v move %v (%v): %v", gameIdx+1, pairIdx/2+1, moveText, err)
			}
			total++
		}
		fmt.Printf("game %v: %v moves OK\n", gameIdx+1, len(game)/2)
	}
	fmt.Printf("%v games, %v moves replayed OK\n", len(games), total)
}

func replayMove(ctx context.Context, engine *rules.Engine, moveText, expectedFEN string) error {
	next, err := rules.NewEngineFromFEN(expectedFEN)
	if err != nil {
		return fmt.Errorf("invalid expected FEN: %w", err)
	}
	prevState := engine.OccupancyMask()
	nextState := next.OccupancyMask()

	mask, err := computeMask(prevState, nextState, moveText)
	if err != nil {
		return fmt.Errorf("mask error: %w", err)
	}

	update, err := engine.Observe(ctx, mask, nextState)
	if err != nil {
		return fmt.Errorf("observe failed: %w", err)
	}

	var fen string
	if promo, ok := promotionPiece(moveText); ok {
		if update.Kind != rules.PromotionPendingUpdate {
			return fmt.Errorf("expected promotion pending, got kind %v", update.Kind)
		}
		summary, err := engine.ConfirmPromotion(ctx, promo)
		if err != nil {
			return fmt.Errorf("confirm promotion failed: %w", err)
		}
		fen = summary.FEN
	} else {
		if update.Kind != rules.MoveApplied {
			return fmt.Errorf("expected move applied, got kind %v", update.Kind)
		}
		fen = update.Summary.FEN
	}

	if fen != expectedFEN {
		return fmt.Errorf("FEN mismatch: got %q, want %q", fen, expectedFEN)
	}
	return nil
}

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
			return 0, fmt.Errorf("invalid move segment %q", segment)
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
