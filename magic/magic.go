// Package magic holds every precomputed attack table the engine relies on:
// leaper attacks, ray-derived connection tables, and magic-number sliding
// attack tables for bishops and rooks. Tables are built once, at process
// start, and never mutated afterwards; every exported table and function in
// this package is safe for concurrent read-only use.
package magic

import (
	"sync"

	"github.com/Shadowcat650/rchess/types"
)

var initOnce sync.Once

// InitTables builds every attack table in this package. It is idempotent
// and safe to call from multiple packages' init() functions or tests; the
// real work happens exactly once.
func InitTables() {
	initOnce.Do(func() {
		initLeapers()
		initConnections()
		initSliders()
	})
}

func init() {
	InitTables()
}

// IsAttacked reports whether sq is attacked by any piece of color by, under
// the given (possibly hypothetical) occupancy. Passing an occupancy that
// differs from the position's real occupancy lets callers probe king-step
// and castling-transit legality without the king itself obstructing its own
// escape square, or with intervening en-passant squares removed.
func IsAttacked(sq types.Square, by types.Color, occ types.Bitboard,
	pieceBB [types.NumPieceTypes]types.Bitboard, colorBB [2]types.Bitboard) bool {

	theirs := colorBB[by]

	if PawnAttacks[by.Other()][sq].Intersect(pieceBB[types.Pawn]).Intersect(theirs) != 0 {
		return true
	}
	if KnightAttacks[sq].Intersect(pieceBB[types.Knight]).Intersect(theirs) != 0 {
		return true
	}
	if KingAttacks[sq].Intersect(pieceBB[types.King]).Intersect(theirs) != 0 {
		return true
	}
	diagonalAttackers := pieceBB[types.Bishop].Union(pieceBB[types.Queen])
	if BishopAttacks(sq, occ).Intersect(diagonalAttackers).Intersect(theirs) != 0 {
		return true
	}
	straightAttackers := pieceBB[types.Rook].Union(pieceBB[types.Queen])
	if RookAttacks(sq, occ).Intersect(straightAttackers).Intersect(theirs) != 0 {
		return true
	}
	return false
}
