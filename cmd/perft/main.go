// perft is a move generator debugging tool. See:
// https://www.chessprogramming.org/Perft_Results.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/Shadowcat650/rchess/fen"
	"github.com/Shadowcat650/rchess/perft"
	"github.com/seekerror/logw"
)

var (
	depth    = flag.Int("depth", 4, "Search depth")
	startFEN = flag.String("fen", "", "Start position (defaults to the standard opening position)")
	divide   = flag.Bool("divide", false, "Print per-root-move node counts at the final depth")
)

const initialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

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

	for i := 1; i <= *depth; i++ {
		start := time.Now()

		if *divide && i == *depth {
			breakdown, total := perft.DebugPerft(pos, i)
			for _, rc := range breakdown {
				fmt.Printf("%s: %d\n", rc.Move, rc.Nodes)
			}
			duration := time.Since(start)
			fmt.Printf("perft,%s,%d,%d,%d\n", f, i, total, duration.Microseconds())
			continue
		}

		nodes := perft.Perft(pos, i)
		duration := time.Since(start)
		fmt.Printf("perft,%s,%d,%d,%d\n", f, i, nodes, duration.Microseconds())
	}
}
