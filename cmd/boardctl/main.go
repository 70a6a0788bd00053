// boardctl is an adaptor for driving a rules.Engine from a sensorfeed
// websocket connection: one physical reading in, one Observe call out,
// printing the move and the resulting FEN after each move and prompting on stdin
// when a pawn reaches the promotion rank.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/seekerror/logw"

	"github.com/herohde/chessrules/internal/sensorfeed"
	"github.com/herohde/chessrules/pkg/rules"
)

var (
	addr     = flag.String("addr", "ws://localhost:8765/feed", "Sensor feed websocket address")
	position = flag.String("fen", "", "Start position (default to standard)")
)

func main() {
	ctx := context.Background()
	flag.Parse()

	var e *rules.Engine
	if *position == "" {
		e = rules.NewEngine()
	} else {
		var err error
		e, err = rules.NewEngineFromFEN(*position)
		if err != nil {
			logw.Exitf(ctx, "Invalid fen %q: %v", *position, err)
		}
	}

	client, err := sensorfeed.Dial(ctx, *addr)
	if err != nil {
		logw.Exitf(ctx, "Dial %v failed: %v", *addr, err)
	}
	defer client.Close()

	logw.Infof(ctx, "Connected to %v. Engine: %v", *addr, e.ToFEN())

	prompts := bufio.NewScanner(os.Stdin)
	for frame := range client.Frames() {
		update, err := e.Observe(ctx, frame.Mask, frame.State)
		if err != nil {
			fmt.Printf("rejected: %v\n", err)
			continue
		}

		switch update.Kind {
		case rules.NoChange:
			// nothing to report

		case rules.MoveApplied:
			fmt.Printf("%v\nfen: %v\n", update.Summary.Move.CoordString(), update.Summary.FEN)

		case rules.PromotionPendingUpdate:
			kind := promptPromotion(prompts, update.Promotion)
			summary, err := e.ConfirmPromotion(ctx, kind)
			if err != nil {
				fmt.Printf("rejected: %v\n", err)
				continue
			}
			fmt.Printf("%v\nfen: %v\n", summary.Move.CoordString(), summary.FEN)
		}
	}

	logw.Infof(ctx, "Sensor feed ended. Final fen: %v", e.ToFEN())
}

func promptPromotion(prompts *bufio.Scanner, req rules.PromotionRequest) rules.PieceKind {
	for {
		fmt.Printf("promotion at %v, choose Q/R/B/N: ", req.Square)
		if !prompts.Scan() {
			return rules.Queen
		}
		switch strings.ToUpper(strings.TrimSpace(prompts.Text())) {
		case "Q":
			return rules.Queen
		case "R":
			return rules.Rook
		case "B":
			return rules.Bishop
		case "N":
			return rules.Knight
		}
	}
}
