// board loads a FEN string and prints the resulting position, its legal
// moves and terminal status. Used mainly to visualize positions by hand.
package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/Shadowcat650/rchess/fen"
	"github.com/Shadowcat650/rchess/format"
	"github.com/Shadowcat650/rchess/game"
	"github.com/seekerror/logw"
)

const initialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var startFEN = flag.String("fen", "", "Position to load (defaults to the standard opening position)")

func main() {
	ctx := context.Background()
	flag.Parse()

	f := *startFEN
	if f == "" {
		f = initialFEN
	}

	pos, _, err := fen.Load(f)
	if err != nil {
		logw.Exitf(ctx, "invalid fen %q: %v", f, err)
	}

	fmt.Print(format.Position(pos))

	g := game.New(pos)
	fmt.Printf("legal moves: %d\n", g.Legal.Count)
	if g.Result != nil {
		if g.Result.Draw {
			fmt.Printf("result: draw (%s)\n", g.Result.Reason)
		} else {
			fmt.Printf("result: %s wins by checkmate\n", g.Result.Winner)
		}
	}
}
