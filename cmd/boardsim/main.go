// boardsim serves a long-games fixture file as a sensorfeed websocket
// server, standing in for a physical sensor board: each move/expected-FEN
// pair becomes one Frame (mask = diff plus every named coordinate, state =
// the next position's occupancy), replayed in order to whichever client
// connects. Pairs with boardctl for local end-to-end testing without
// hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/seekerror/logw"

	"github.com/herohde/chessrules/internal/sensorfeed"
	"github.com/herohde/chessrules/pkg/rules"
)

var (
	fixture = flag.String("fixture", "", "Path to a long-games fixture file (required)")
	addr    = flag.String("addr", ":8765", "Listen address")
	game    = flag.Int("game", 1, "1-based game index within the fixture to serve")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	if *fixture == "" {
		flag.Usage()
		logw.Exitf(ctx, "Missing -fixture")
	}

	data, err := os.ReadFile(*fixture)
	if err != nil {
		logw.Exitf(ctx, "Read %v failed: %v", *fixture, err)
	}

	games := parseGames(string(data))
	if *game < 1 || *game > len(games) {
		logw.Exitf(ctx, "%v contains %v games, -game=%v out of range", *fixture, len(games), *game)
	}
	lines := games[*game-1]
	if len(lines)%2 != 0 {
		logw.Exitf(ctx, "game %v has an odd number of lines", *game)
	}

	frames, err := buildFrames(lines)
	if err != nil {
		logw.Exitf(ctx, "Build frames for game %v failed: %v", *game, err)
	}

	server := sensorfeed.NewServer(frames)
	mux := http.NewServeMux()
	mux.Handle("/feed", server.Handler(ctx))

	logw.Infof(ctx, "Serving %v frames from %v (game %v) on %v/feed", len(frames), *fixture, *game, *addr)
	if err := http.ListenAndServe(*addr, mux); err != nil {
		logw.Exitf(ctx, "Listen %v failed: %v", *addr, err)
	}
}

func buildFrames(lines []string) ([]sensorfeed.Frame, error) {
	start, err := rules.NewEngineFromFEN(rules.InitialFEN)
	if err != nil {
		return nil, err
	}
	prevState := start.OccupancyMask()

	var frames []sensorfeed.Frame
	for pairIdx := 0; pairIdx < len(lines); pairIdx += 2 {
		moveText := lines[pairIdx]
		expectedFEN := lines[pairIdx+1]

		next, err := rules.NewEngineFromFEN(expectedFEN)
		if err != nil {
			return nil, fmt.Errorf("move %v (%v): invalid FEN: %w", pairIdx/2+1, moveText, err)
		}
		nextState := next.OccupancyMask()

		mask, err := computeMask(prevState, nextState, moveText)
		if err != nil {
			return nil, fmt.Errorf("move %v (%v): %w", pairIdx/2+1, moveText, err)
		}

		frames = append(frames, sensorfeed.Frame{Mask: mask, State: nextState})
		prevState = nextState
	}
	return frames, nil
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
