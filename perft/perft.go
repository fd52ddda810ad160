// Package perft walks the move generation tree to a fixed depth and counts
// leaf nodes, the standard correctness probe for a legal move generator.
package perft

import (
	"github.com/Shadowcat650/rchess/movegen"
	"github.com/Shadowcat650/rchess/position"
)

// Perft counts the leaf nodes of the legal-move tree rooted at pos, to the
// given depth. At depth 1 it uses the legal-move count directly rather than
// materializing and counting a slice; at depth 0 it reports a single node
// (the root itself).
func Perft(pos *position.Position, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	list := movegen.GenerateMoves(pos, false)
	if depth == 1 {
		return uint64(list.Count)
	}

	var nodes uint64
	for _, mv := range list.Slice() {
		child := *pos
		child.MakeMove(mv)
		nodes += Perft(&child, depth-1)
	}
	return nodes
}

// RootCount pairs a root move with the leaf-node count of the subtree below
// it, for DebugPerft's per-root-move breakdown.
type RootCount struct {
	Move  string
	Nodes uint64
}

// DebugPerft returns the same total as Perft, plus a per-root-move
// breakdown used to localize a discrepancy against a known-good perft
// value during development.
func DebugPerft(pos *position.Position, depth int) ([]RootCount, uint64) {
	list := movegen.GenerateMoves(pos, false)
	breakdown := make([]RootCount, 0, list.Count)

	var total uint64
	for _, mv := range list.Slice() {
		child := *pos
		child.MakeMove(mv)
		nodes := Perft(&child, depth-1)
		total += nodes
		breakdown = append(breakdown, RootCount{Move: mv.String(), Nodes: nodes})
	}

	return breakdown, total
}
